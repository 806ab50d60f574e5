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
	_ "embed"
	"fmt"
	"strings"

	"github.com/defiweb/go-eth/abi"
	"github.com/defiweb/go-eth/types"
	"github.com/ethereum/go-ethereum/crypto"
	logger "github.com/sirupsen/logrus"

	"github.com/alesanro/parity-ethereum/contracts"
)

//go:embed Registry.json
var registryContractJSON []byte

// RegistryContractABI contains the parsed name registry ABI.
var RegistryContractABI = abi.MustParseJSON(registryContractJSON)

// registryAddressKey is the registry column that holds contract
// addresses.
const registryAddressKey = "A"

// RegistryReader resolves names recorded in the on-chain registry.
// Entries are keyed by the Keccak-256 of the plain name.
type RegistryReader struct {
	client  RpcClient
	address types.Address
}

func NewRegistryReader(client RpcClient, address types.Address) *RegistryReader {
	return &RegistryReader{
		client:  client,
		address: address,
	}
}

// Resolve looks up the address registered under the given name.
func (r *RegistryReader) Resolve(ctx context.Context, name string) (types.Address, error) {
	getAddress := RegistryContractABI.Methods["getAddress"]

	var nameHash [32]byte
	copy(nameHash[:], crypto.Keccak256([]byte(name)))

	calldata, err := getAddress.EncodeArgs(nameHash, registryAddressKey)
	if err != nil {
		return types.ZeroAddress, fmt.Errorf("failed to encode getAddress args: %v", err)
	}
	b, _, err := r.client.Call(ctx, types.Call{
		To:    &r.address,
		Input: calldata,
	}, types.LatestBlockNumber)

	if err != nil {
		return types.ZeroAddress, fmt.Errorf("failed to call getAddress with error: %v", err)
	}

	var resolved types.Address
	if err := getAddress.DecodeValues(b, &resolved); err != nil {
		return types.ZeroAddress, fmt.Errorf("failed to decode getAddress result with error: %v", err)
	}
	if resolved == types.ZeroAddress {
		return types.ZeroAddress, fmt.Errorf("%w: %q", ErrUnregisteredName, name)
	}

	logger.
		WithField("registry", r.address).
		Debugf("resolved %q to %v", name, resolved)
	return resolved, nil
}

// Reserved reports whether the given name is already taken.
func (r *RegistryReader) Reserved(ctx context.Context, name string) (bool, error) {
	reserved := RegistryContractABI.Methods["reserved"]

	var nameHash [32]byte
	copy(nameHash[:], crypto.Keccak256([]byte(name)))

	calldata, err := reserved.EncodeArgs(nameHash)
	if err != nil {
		return false, fmt.Errorf("failed to encode reserved args: %v", err)
	}
	b, _, err := r.client.Call(ctx, types.Call{
		To:    &r.address,
		Input: calldata,
	}, types.LatestBlockNumber)

	if err != nil {
		return false, fmt.Errorf("failed to call reserved with error: %v", err)
	}

	var taken bool
	if err := reserved.DecodeValues(b, &taken); err != nil {
		return false, fmt.Errorf("failed to decode reserved result with error: %v", err)
	}
	return taken, nil
}

// ResolveLinks fills in the library addresses a template needs. Symbols
// already present in have win; the rest are looked up in the registry
// under their lowercased names.
func (r *RegistryReader) ResolveLinks(ctx context.Context, tmpl contracts.Template, have contracts.LinkMap) (contracts.LinkMap, error) {
	links := make(contracts.LinkMap, len(tmpl.Slots))
	for symbol, addr := range have {
		links[symbol] = addr
	}

	for _, symbol := range tmpl.Symbols() {
		if _, ok := links[symbol]; ok {
			continue
		}
		resolved, err := r.Resolve(ctx, strings.ToLower(symbol))
		if err != nil {
			return nil, fmt.Errorf("failed to resolve library %q: %w", symbol, err)
		}
		links[symbol] = resolved.String()
	}
	return links, nil
}
