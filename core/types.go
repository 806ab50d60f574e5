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
	"math/big"

	"github.com/defiweb/go-eth/types"
	"github.com/google/uuid"
)

// Deployment describes one confirmed contract creation.
type Deployment struct {
	// ID tags the deployment attempt across logs and metrics.
	ID uuid.UUID

	// Contract is the artifact name of the deployed template.
	Contract string

	Address   types.Address
	TxHash    types.Hash
	BlockHash types.Hash
}

// BundleDeployment is the outcome of a full wallet rollout. Library is
// nil when an already deployed library was reused.
type BundleDeployment struct {
	Library *Deployment
	Wallet  *Deployment
}

// WalletInfo is a snapshot of a deployed wallet's settings.
type WalletInfo struct {
	Required   *big.Int
	NumOwners  *big.Int
	DailyLimit *big.Int
}
