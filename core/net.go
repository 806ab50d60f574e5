//  Copyright (C) 2024-2026 The parity-ethereum authors.
//
//  This program is free software: you can redistribute it and/or modify
//  it under the terms of the GNU Affero General Public License as
//  published by the Free Software Foundation, either version 3 of the
//  License, or (at your option) any later version.
//
//  This program is distributed in the hope that it will be useful,
//  but WITHOUT ANY WARRANTY; without even the implied warranty of
//  MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//  GNU Affero General Public License for more details.
//
//  You should have received a copy of the GNU Affero General Public License
//  along with this program.  If not, see <http://www.gnu.org/licenses/>.

package core

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Method table of the net namespace.
var (
	netVersion   = rpcMethod{name: "net_version"}
	netListening = rpcMethod{name: "net_listening"}
	netPeerCount = rpcMethod{name: "net_peerCount"}
)

// Net is a typed facade over the node's net namespace. Stateless and
// safe for concurrent use.
type Net struct {
	transport Transport
}

func NewNet(t Transport) *Net {
	return &Net{transport: t}
}

// Version returns the network identifier exactly as the node reports
// it.
func (n *Net) Version(ctx context.Context) (string, error) {
	var version string
	if err := netVersion.call(ctx, n.transport, &version); err != nil {
		return "", err
	}
	return version, nil
}

// Listening reports whether the node accepts network connections.
func (n *Net) Listening(ctx context.Context) (bool, error) {
	var listening bool
	if err := netListening.call(ctx, n.transport, &listening); err != nil {
		return false, err
	}
	return listening, nil
}

// PeerCount returns the number of connected peers. The node reports a
// hex quantity; anything else, including an empty string, is rejected.
func (n *Net) PeerCount(ctx context.Context) (*big.Int, error) {
	var raw string
	if err := netPeerCount.call(ctx, n.transport, &raw); err != nil {
		return nil, err
	}
	count, err := hexutil.DecodeBig(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse net_peerCount result %q with error: %v", raw, err)
	}
	return count, nil
}
