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
	"math/big"

	"github.com/defiweb/go-eth/abi"
	"github.com/defiweb/go-eth/types"
	logger "github.com/sirupsen/logrus"
)

//go:embed Wallet.json
var walletContractJSON []byte

// WalletContractABI contains the parsed wallet contract ABI.
var WalletContractABI = abi.MustParseJSON(walletContractJSON)

// WalletReader provides typed read access to a deployed wallet.
type WalletReader struct {
	client  RpcClient
	address types.Address
}

func NewWalletReader(client RpcClient, address types.Address) *WalletReader {
	return &WalletReader{
		client:  client,
		address: address,
	}
}

// Address returns the wallet contract address the reader is bound to.
func (w *WalletReader) Address() types.Address {
	return w.address
}

// Required returns the number of owner confirmations a spend above the
// daily limit needs.
func (w *WalletReader) Required(ctx context.Context) (*big.Int, error) {
	return w.uint256Getter(ctx, "m_required")
}

// NumOwners returns the current owner count.
func (w *WalletReader) NumOwners(ctx context.Context) (*big.Int, error) {
	return w.uint256Getter(ctx, "m_numOwners")
}

// DailyLimit returns the wei the wallet may spend per day without
// multi-owner confirmation.
func (w *WalletReader) DailyLimit(ctx context.Context) (*big.Int, error) {
	return w.uint256Getter(ctx, "m_dailyLimit")
}

func (w *WalletReader) uint256Getter(ctx context.Context, name string) (*big.Int, error) {
	method := WalletContractABI.Methods[name]
	calldata, err := method.EncodeArgs()
	if err != nil {
		panic(err)
	}
	b, _, err := w.client.Call(ctx, types.Call{
		To:    &w.address,
		Input: calldata,
	}, types.LatestBlockNumber)

	if err != nil {
		return nil, fmt.Errorf("failed to call %s with error: %v", name, err)
	}

	var value big.Int
	if err := method.DecodeValues(b, &value); err != nil {
		return nil, fmt.Errorf("failed to decode %s result with error: %v", name, err)
	}
	return &value, nil
}

// IsOwner reports whether addr is one of the wallet owners.
func (w *WalletReader) IsOwner(ctx context.Context, addr types.Address) (bool, error) {
	isOwner := WalletContractABI.Methods["isOwner"]
	calldata, err := isOwner.EncodeArgs(addr)
	if err != nil {
		return false, fmt.Errorf("failed to encode isOwner args: %v", err)
	}
	b, _, err := w.client.Call(ctx, types.Call{
		To:    &w.address,
		Input: calldata,
	}, types.LatestBlockNumber)

	if err != nil {
		return false, fmt.Errorf("failed to call isOwner with error: %v", err)
	}

	var res bool
	if err := isOwner.DecodeValues(b, &res); err != nil {
		return false, fmt.Errorf("failed to decode isOwner result with error: %v", err)
	}
	return res, nil
}

// HasConfirmed reports whether owner already confirmed the pending
// operation.
func (w *WalletReader) HasConfirmed(ctx context.Context, operation types.Hash, owner types.Address) (bool, error) {
	hasConfirmed := WalletContractABI.Methods["hasConfirmed"]
	calldata, err := hasConfirmed.EncodeArgs(operation, owner)
	if err != nil {
		return false, fmt.Errorf("failed to encode hasConfirmed args: %v", err)
	}
	b, _, err := w.client.Call(ctx, types.Call{
		To:    &w.address,
		Input: calldata,
	}, types.LatestBlockNumber)

	if err != nil {
		return false, fmt.Errorf("failed to call hasConfirmed with error: %v", err)
	}

	var res bool
	if err := hasConfirmed.DecodeValues(b, &res); err != nil {
		return false, fmt.Errorf("failed to decode hasConfirmed result with error: %v", err)
	}
	return res, nil
}

// OwnerAt returns the owner address stored at the given index, starting
// from zero.
func (w *WalletReader) OwnerAt(ctx context.Context, index *big.Int) (types.Address, error) {
	getOwner := WalletContractABI.Methods["getOwner"]
	calldata, err := getOwner.EncodeArgs(index)
	if err != nil {
		return types.ZeroAddress, fmt.Errorf("failed to encode getOwner args: %v", err)
	}
	b, _, err := w.client.Call(ctx, types.Call{
		To:    &w.address,
		Input: calldata,
	}, types.LatestBlockNumber)

	if err != nil {
		return types.ZeroAddress, fmt.Errorf("failed to call getOwner with error: %v", err)
	}

	var owner types.Address
	if err := getOwner.DecodeValues(b, &owner); err != nil {
		return types.ZeroAddress, fmt.Errorf("failed to decode getOwner result with error: %v", err)
	}
	return owner, nil
}

// Owners lists the wallet owners in storage order.
func (w *WalletReader) Owners(ctx context.Context) ([]types.Address, error) {
	count, err := w.NumOwners(ctx)
	if err != nil {
		return nil, err
	}

	var owners []types.Address
	for i := int64(0); i < count.Int64(); i++ {
		owner, err := w.OwnerAt(ctx, big.NewInt(i))
		if err != nil {
			return nil, err
		}
		owners = append(owners, owner)
	}
	return owners, nil
}

// Info reads the wallet settings in one snapshot.
func (w *WalletReader) Info(ctx context.Context) (*WalletInfo, error) {
	required, err := w.Required(ctx)
	if err != nil {
		return nil, err
	}
	numOwners, err := w.NumOwners(ctx)
	if err != nil {
		return nil, err
	}
	limit, err := w.DailyLimit(ctx)
	if err != nil {
		return nil, err
	}
	return &WalletInfo{
		Required:   required,
		NumOwners:  numOwners,
		DailyLimit: limit,
	}, nil
}

// DepositsBetween returns the wallet's Deposit events within the given
// block range.
func (w *WalletReader) DepositsBetween(ctx context.Context, fromBlock, toBlock *big.Int) ([]*DepositEvent, error) {
	event := WalletContractABI.Events["Deposit"]

	depositLogs, err := w.client.GetLogs(ctx, types.FilterLogsQuery{
		Address:   []types.Address{w.address},
		FromBlock: types.BlockNumberFromBigIntPtr(fromBlock),
		ToBlock:   types.BlockNumberFromBigIntPtr(toBlock),
		Topics:    [][]types.Hash{{event.Topic0()}},
	})

	if err != nil {
		return nil, fmt.Errorf("failed to get Deposit events with error: %v", err)
	}

	var result []*DepositEvent
	for _, depositLog := range depositLogs {
		decoded, err := DecodeDepositEvent(depositLog)
		if err != nil {
			logger.
				WithField("address", w.address).
				Errorf("Failed to decode Deposit event with error: %v", err)
			continue
		}
		result = append(result, decoded)
	}
	return result, nil
}

// OwnerChangesBetween returns the wallet's OwnerChanged events within
// the given block range.
func (w *WalletReader) OwnerChangesBetween(ctx context.Context, fromBlock, toBlock *big.Int) ([]*OwnerChangedEvent, error) {
	event := WalletContractABI.Events["OwnerChanged"]

	changeLogs, err := w.client.GetLogs(ctx, types.FilterLogsQuery{
		Address:   []types.Address{w.address},
		FromBlock: types.BlockNumberFromBigIntPtr(fromBlock),
		ToBlock:   types.BlockNumberFromBigIntPtr(toBlock),
		Topics:    [][]types.Hash{{event.Topic0()}},
	})

	if err != nil {
		return nil, fmt.Errorf("failed to get OwnerChanged events with error: %v", err)
	}

	var result []*OwnerChangedEvent
	for _, changeLog := range changeLogs {
		decoded, err := DecodeOwnerChangedEvent(changeLog)
		if err != nil {
			logger.
				WithField("address", w.address).
				Errorf("Failed to decode OwnerChanged event with error: %v", err)
			continue
		}
		result = append(result, decoded)
	}
	return result, nil
}

// RecentDeposits returns Deposit events from the trailing lookback
// blocks.
func (w *WalletReader) RecentDeposits(ctx context.Context, lookback uint64) ([]*DepositEvent, error) {
	latest, err := w.client.BlockNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest block number with error: %v", err)
	}

	from := new(big.Int).Sub(latest, new(big.Int).SetUint64(lookback))
	if from.Sign() < 0 {
		from.SetInt64(0)
	}
	return w.DepositsBetween(ctx, from, latest)
}
