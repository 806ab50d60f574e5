package core

import (
	"context"
	"math/big"

	"github.com/defiweb/go-eth/types"
)

// Transport executes a single JSON-RPC method call against a remote
// node. The go-eth transports satisfy it, as do in-process stubs.
type Transport interface {
	Call(ctx context.Context, result any, method string, args ...any) error
}

// RpcClient is the part of the go-eth RPC client surface the toolkit
// depends on.
type RpcClient interface {
	Accounts(ctx context.Context) ([]types.Address, error)

	BlockNumber(ctx context.Context) (*big.Int, error)

	SendTransaction(ctx context.Context, tx types.Transaction) (*types.Hash, *types.Transaction, error)

	Call(ctx context.Context, call types.Call, block types.BlockNumber) ([]byte, *types.Call, error)

	GetLogs(ctx context.Context, query types.FilterLogsQuery) ([]types.Log, error)

	GetTransactionReceipt(ctx context.Context, hash types.Hash) (*types.TransactionReceipt, error)
}
