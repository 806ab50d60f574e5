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
	"time"

	"github.com/defiweb/go-eth/hexutil"
	"github.com/defiweb/go-eth/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
	logger "github.com/sirupsen/logrus"

	"github.com/alesanro/parity-ethereum/contracts"
)

// DefaultConfirmTimeout bounds how long a deployment waits for its
// creation transaction to be mined.
const DefaultConfirmTimeout = 5 * time.Minute

// Deployer links bytecode templates and drives their creation
// transactions to confirmation. It holds no per-deployment state, so a
// single value can serve concurrent deployments.
type Deployer struct {
	client         RpcClient
	web3           *Web3
	confirmTimeout time.Duration
	verifyDigest   bool
}

func NewDeployer(client RpcClient, web3 *Web3, confirmTimeout time.Duration, verifyDigest bool) *Deployer {
	if confirmTimeout <= 0 {
		confirmTimeout = DefaultConfirmTimeout
	}
	return &Deployer{
		client:         client,
		web3:           web3,
		confirmTimeout: confirmTimeout,
		verifyDigest:   verifyDigest,
	}
}

// Deploy links the template against the given resolutions, optionally
// cross-checks the linked image against the node's own digest, submits
// the creation transaction and blocks until it is mined. ctorArgs are
// ABI-encoded constructor arguments appended to the creation code.
func (d *Deployer) Deploy(ctx context.Context, tmpl contracts.Template, links contracts.LinkMap, ctorArgs []byte) (*Deployment, error) {
	id := uuid.New()
	log := logger.
		WithField("contract", tmpl.Name).
		WithField("deployment", id)

	linked, err := tmpl.Link(links)
	if err != nil {
		ErrorsCounter.WithLabelValues(tmpl.Name, "link").Inc()
		return nil, fmt.Errorf("failed to link %s bytecode: %w", tmpl.Name, err)
	}
	code := hexutil.MustHexToBytes("0x" + linked)
	LinkedBytesGauge.WithLabelValues(tmpl.Name).Set(float64(len(code)))
	log.Debugf("Linked %d bytes of creation code", len(code))

	if d.verifyDigest {
		if err := d.verifyRemoteDigest(ctx, code); err != nil {
			ErrorsCounter.WithLabelValues(tmpl.Name, "digest").Inc()
			return nil, fmt.Errorf("failed to verify %s bytecode digest: %w", tmpl.Name, err)
		}
		log.Debugf("Node digest matches the linked bytecode")
	}

	data := make([]byte, 0, len(code)+len(ctorArgs))
	data = append(data, code...)
	data = append(data, ctorArgs...)

	// A creation transaction carries no destination address.
	tx := (&types.Transaction{}).SetInput(data)

	txHash, _, err := d.client.SendTransaction(ctx, *tx)
	if err != nil {
		ErrorsCounter.WithLabelValues(tmpl.Name, "send").Inc()
		return nil, fmt.Errorf("failed to send %s creation transaction with error: %v", tmpl.Name, err)
	}
	log.Infof("Creation transaction hash: %v", txHash.String())

	receipt, err := WaitForTxConfirmation(ctx, d.client, txHash, d.confirmTimeout)
	if err != nil {
		ErrorsCounter.WithLabelValues(tmpl.Name, "confirm").Inc()
		return nil, fmt.Errorf("failed to confirm %s creation transaction with error: %v", tmpl.Name, err)
	}
	if *receipt.Status != 1 {
		DeploymentsCounter.WithLabelValues(tmpl.Name, "reverted").Inc()
		return nil, fmt.Errorf("%w: %s creation transaction %v", ErrDeploymentReverted, tmpl.Name, txHash.String())
	}
	if receipt.ContractAddress == nil {
		DeploymentsCounter.WithLabelValues(tmpl.Name, "reverted").Inc()
		return nil, fmt.Errorf("%w: receipt for %v carries no contract address", ErrDeploymentReverted, txHash.String())
	}

	DeploymentsCounter.WithLabelValues(tmpl.Name, "confirmed").Inc()
	log.
		WithField("address", *receipt.ContractAddress).
		Infof("Contract deployed in block %v", receipt.BlockHash.String())

	return &Deployment{
		ID:        id,
		Contract:  tmpl.Name,
		Address:   *receipt.ContractAddress,
		TxHash:    *txHash,
		BlockHash: receipt.BlockHash,
	}, nil
}

// DeployBundle deploys the wallet described by the manifest. The wallet
// library is reused when the manifest pins its address or names a
// registry that knows it; otherwise a fresh copy is deployed first.
func (d *Deployer) DeployBundle(ctx context.Context, m *Manifest) (*BundleDeployment, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	var bundle BundleDeployment
	links := contracts.LinkMap{}

	switch {
	case m.Library != "":
		addr, err := m.LibraryAddress()
		if err != nil {
			return nil, err
		}
		links[contracts.WalletLibrarySymbol] = addr.String()
		logger.Infof("Reusing wallet library at %v", addr)

	case m.Registry != "":
		addr, err := m.RegistryAddress()
		if err != nil {
			return nil, err
		}
		registry := NewRegistryReader(d.client, addr)
		links, err = registry.ResolveLinks(ctx, contracts.Wallet, links)
		if err != nil {
			return nil, err
		}

	default:
		library, err := d.Deploy(ctx, contracts.WalletLibrary, nil, nil)
		if err != nil {
			return nil, err
		}
		bundle.Library = library
		links[contracts.WalletLibrarySymbol] = library.Address.String()
	}

	owners, err := m.OwnerAddresses()
	if err != nil {
		return nil, err
	}
	gethOwners := make([]common.Address, len(owners))
	for i, owner := range owners {
		gethOwners[i] = common.HexToAddress(owner.String())
	}
	dayLimit, err := m.DayLimitWei()
	if err != nil {
		return nil, err
	}
	ctorArgs, err := contracts.WalletConstructorArgs(gethOwners, big.NewInt(int64(m.Required)), dayLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to encode wallet constructor args: %w", err)
	}

	wallet, err := d.Deploy(ctx, contracts.Wallet, links, ctorArgs)
	if err != nil {
		return nil, err
	}
	bundle.Wallet = wallet
	return &bundle, nil
}

// verifyRemoteDigest asks the node to hash the linked bytecode and
// compares the answer against a locally computed Keccak-256 digest. A
// mismatch means the payload got mangled on its way to the node.
func (d *Deployer) verifyRemoteDigest(ctx context.Context, code []byte) error {
	if d.web3 == nil {
		return fmt.Errorf("web3 facade not set")
	}
	remote, err := d.web3.Sha3(ctx, code)
	if err != nil {
		return fmt.Errorf("failed to fetch node digest with error: %v", err)
	}
	local, err := types.HashFromBytes(crypto.Keccak256(code), types.PadLeft)
	if err != nil {
		return fmt.Errorf("failed to compute local digest with error: %v", err)
	}
	if remote.String() != local.String() {
		return fmt.Errorf("%w: node digest %v, local digest %v", ErrDigestMismatch, remote.String(), local.String())
	}
	return nil
}
