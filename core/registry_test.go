package core

import (
	"context"
	"fmt"
	"testing"

	"github.com/defiweb/go-eth/hexutil"
	"github.com/defiweb/go-eth/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/alesanro/parity-ethereum/contracts"
)

var testRegistryAddress = types.MustAddressFromHex("0x3bB2bb5C6c9C9b7F4ef430b47DC7e026310042ea")

func TestRegistryResolve(t *testing.T) {
	mockRpcClient := new(mockRpcClient)
	registry := NewRegistryReader(mockRpcClient, testRegistryAddress)
	require.NotNil(t, registry)

	// resolves a registered name
	call := mockRpcClient.On("Call", mock.Anything, mock.Anything, types.LatestBlockNumber).
		Return(
			hexutil.MustHexToBytes("0x0000000000000000000000007e5f4552091a69125d5dfcb7b8c2659029395bdf"),
			&types.Call{},
			nil,
		)
	addr, err := registry.Resolve(context.TODO(), "walletlibrary")
	assert.NoError(t, err)
	assert.Equal(t, types.MustAddressFromHex("0x7e5F4552091A69125d5DfCb7b8C2659029395Bdf"), addr)
	mockRpcClient.AssertExpectations(t)
	call.Unset()

	// unknown names resolve to the zero address
	call = mockRpcClient.On("Call", mock.Anything, mock.Anything, types.LatestBlockNumber).
		Return(
			hexutil.MustHexToBytes("0x0000000000000000000000000000000000000000000000000000000000000000"),
			&types.Call{},
			nil,
		)
	_, err = registry.Resolve(context.TODO(), "nosuchname")
	assert.ErrorIs(t, err, ErrUnregisteredName)
	mockRpcClient.AssertExpectations(t)
	call.Unset()

	// error on call
	call = mockRpcClient.On("Call", mock.Anything, mock.Anything, mock.Anything).
		Return([]byte{}, nil, fmt.Errorf("error"))
	_, err = registry.Resolve(context.TODO(), "walletlibrary")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnregisteredName)
	mockRpcClient.AssertExpectations(t)
	call.Unset()
}

func TestRegistryReserved(t *testing.T) {
	mockRpcClient := new(mockRpcClient)
	registry := NewRegistryReader(mockRpcClient, testRegistryAddress)

	// taken name
	call := mockRpcClient.On("Call", mock.Anything, mock.Anything, types.LatestBlockNumber).
		Return(
			hexutil.MustHexToBytes("0x0000000000000000000000000000000000000000000000000000000000000001"),
			&types.Call{},
			nil,
		)
	taken, err := registry.Reserved(context.TODO(), "walletlibrary")
	assert.NoError(t, err)
	assert.True(t, taken)
	mockRpcClient.AssertExpectations(t)
	call.Unset()

	// free name
	call = mockRpcClient.On("Call", mock.Anything, mock.Anything, types.LatestBlockNumber).
		Return(
			hexutil.MustHexToBytes("0x0000000000000000000000000000000000000000000000000000000000000000"),
			&types.Call{},
			nil,
		)
	taken, err = registry.Reserved(context.TODO(), "nosuchname")
	assert.NoError(t, err)
	assert.False(t, taken)
	mockRpcClient.AssertExpectations(t)
	call.Unset()
}

func TestRegistryResolveLinks(t *testing.T) {
	mockRpcClient := new(mockRpcClient)
	registry := NewRegistryReader(mockRpcClient, testRegistryAddress)

	// symbols already resolved by the caller are kept as they are
	have := contracts.LinkMap{
		contracts.WalletLibrarySymbol: "0x1111111111111111111111111111111111111111",
	}
	links, err := registry.ResolveLinks(context.TODO(), contracts.Wallet, have)
	assert.NoError(t, err)
	assert.Equal(t, have[contracts.WalletLibrarySymbol], links[contracts.WalletLibrarySymbol])
	mockRpcClient.AssertNotCalled(t, "Call", mock.Anything, mock.Anything, mock.Anything)

	// missing symbols are looked up under their lowercased names
	call := mockRpcClient.On("Call", mock.Anything, mock.Anything, types.LatestBlockNumber).
		Return(
			hexutil.MustHexToBytes("0x0000000000000000000000007e5f4552091a69125d5dfcb7b8c2659029395bdf"),
			&types.Call{},
			nil,
		)
	links, err = registry.ResolveLinks(context.TODO(), contracts.Wallet, nil)
	require.NoError(t, err)
	assert.Equal(t, types.MustAddressFromHex("0x7e5F4552091A69125d5DfCb7b8C2659029395Bdf").String(), links[contracts.WalletLibrarySymbol])
	mockRpcClient.AssertExpectations(t)
	call.Unset()

	// the resolved map links the template cleanly
	_, err = contracts.Wallet.Link(links)
	assert.NoError(t, err)

	// resolution failures surface
	call = mockRpcClient.On("Call", mock.Anything, mock.Anything, types.LatestBlockNumber).
		Return(
			hexutil.MustHexToBytes("0x0000000000000000000000000000000000000000000000000000000000000000"),
			&types.Call{},
			nil,
		)
	_, err = registry.ResolveLinks(context.TODO(), contracts.Wallet, nil)
	assert.ErrorIs(t, err, ErrUnregisteredName)
	mockRpcClient.AssertExpectations(t)
	call.Unset()
}
