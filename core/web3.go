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

	"github.com/defiweb/go-eth/types"
)

// Method table of the web3 namespace.
var (
	web3ClientVersion = rpcMethod{name: "web3_clientVersion"}
	web3Sha3          = rpcMethod{name: "web3_sha3", formatters: []argFormatter{formatHexData}}
)

// Web3 is a typed facade over the node's web3 namespace. It holds
// nothing beyond the transport reference and is safe for concurrent
// use.
type Web3 struct {
	transport Transport
}

func NewWeb3(t Transport) *Web3 {
	return &Web3{transport: t}
}

// ClientVersion returns the node's implementation identifier verbatim.
func (w *Web3) ClientVersion(ctx context.Context) (string, error) {
	var version string
	if err := web3ClientVersion.call(ctx, w.transport, &version); err != nil {
		return "", err
	}
	return version, nil
}

// Sha3 asks the node for the Keccak-256 digest of the given data. The
// input may be raw bytes or a hex string with or without the 0x
// prefix; it is canonicalized before dispatch and fails with
// ErrInvalidInput when that is impossible.
func (w *Web3) Sha3(ctx context.Context, input any) (types.Hash, error) {
	var digest types.Hash
	if err := web3Sha3.call(ctx, w.transport, &digest, input); err != nil {
		return types.Hash{}, err
	}
	return digest, nil
}
