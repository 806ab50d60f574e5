package core

import (
	"context"
	"fmt"
	"time"

	"github.com/defiweb/go-eth/types"
	logger "github.com/sirupsen/logrus"
)

// Receipts land at block pace, so poll roughly once per slot.
const receiptPollInterval = 12 * time.Second

// WaitForTxConfirmation polls for the receipt of the given transaction
// until it is mined or the timeout expires. The first check happens
// right away, then once per poll interval.
func WaitForTxConfirmation(
	ctx context.Context,
	client RpcClient,
	txHash *types.Hash,
	timeout time.Duration,
) (*types.TransactionReceipt, error) {
	if client == nil {
		return nil, fmt.Errorf("rpc client not set")
	}
	if txHash == nil {
		return nil, fmt.Errorf("tx hash is nil")
	}

	ticker := time.NewTicker(receiptPollInterval)
	defer ticker.Stop()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	for {
		logger.WithField("txHash", txHash).Tracef("checking transaction confirmation")

		receipt, err := client.GetTransactionReceipt(ctx, *txHash)
		switch {
		case err != nil:
			logger.WithField("txHash", txHash).Errorf("failed to get transaction receipt: %v", err)
		case receipt == nil || receipt.Status == nil || receipt.TransactionHash.IsZero():
			logger.WithField("txHash", txHash).Tracef("transaction is not yet confirmed")
		default:
			return receipt, nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("failed to wait for confirmation of transaction %v", txHash.String())
		case <-ticker.C:
		}
	}
}
