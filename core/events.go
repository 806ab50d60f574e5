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
	"fmt"
	"math/big"

	"github.com/defiweb/go-eth/types"
)

type DepositEvent struct {
	BlockNumber *big.Int      `abi:"blockNumber"` // uint256
	From        types.Address `abi:"_from"`       // address
	Value       *big.Int      `abi:"value"`       // uint256
}

type OwnerChangedEvent struct {
	BlockNumber *big.Int      `abi:"blockNumber"` // uint256
	OldOwner    types.Address `abi:"oldOwner"`    // address
	NewOwner    types.Address `abi:"newOwner"`    // address
}

// DecodeDepositEvent decodes a wallet Deposit log entry.
func DecodeDepositEvent(log types.Log) (*DepositEvent, error) {
	event := WalletContractABI.Events["Deposit"]

	var from types.Address
	var value big.Int
	// Deposit(address,uint256)
	if err := event.DecodeValues(log.Topics, log.Data, &from, &value); err != nil {
		return nil, fmt.Errorf("failed to decode event data with error: %v", err)
	}
	return &DepositEvent{
		BlockNumber: log.BlockNumber,
		From:        from,
		Value:       &value,
	}, nil
}

// DecodeOwnerChangedEvent decodes a wallet OwnerChanged log entry.
func DecodeOwnerChangedEvent(log types.Log) (*OwnerChangedEvent, error) {
	event := WalletContractABI.Events["OwnerChanged"]

	var oldOwner, newOwner types.Address
	// OwnerChanged(address,address)
	if err := event.DecodeValues(log.Topics, log.Data, &oldOwner, &newOwner); err != nil {
		return nil, fmt.Errorf("failed to decode event data with error: %v", err)
	}
	return &OwnerChangedEvent{
		BlockNumber: log.BlockNumber,
		OldOwner:    oldOwner,
		NewOwner:    newOwner,
	}, nil
}
