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

package contracts

import (
	"fmt"
	"math/big"
	"strings"

	gethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// WalletLibrarySymbol is the name the wallet template references its
// shared logic library under.
const WalletLibrarySymbol = "WalletLibrary"

// Creation bytecode of the bundled wallet contracts, solc output kept
// verbatim. The wallet holds its logic in a shared library: its image
// carries two WalletLibrary slots, the constructor init delegatecall
// and the runtime fallback target. The library image links clean.
const (
	walletLibraryBin = "6060604052341561000f57600080fd5b6104e88061001e6000396000f30060606040526000357c010000000000000000000000000000000000000000000000000000000090048063e46dcfeb1461007d57632f54bf6e146101975763173825d91461023157637065cb48146102f95763f00d4b5d1461037f5763b61d27f6146104495763797af627146104d75763b75c7dc6146105f35763cbf0b0c01461071b5763b20d30a91461076f57634123cb6b146107bd5763c2cf73261461088d575b33600160a060020a0373ffffffffffffffffffffffffffffffffffffffff168054600133600160a060020a03602060243581526020565b005b6040906101000a8152602004600190810190556000905b73ffffffffffffffffffffffffffffffffffffffff166040515b60008181525460010190555060405460ff165b565b005b81526020019150509081526020016000205460ff16906101000a6001815260200191505033600160a060020a035b600160a060020a0333166000908152602081905260409020806000525b565b005b60019081526020016000205460ff1673ffffffffffffffffffffffffffffffffffffffff169250929050565b60405190558152602001915050818152546001019055508054600191909101905b6001600080fd5b8054600435604081526020019150509055602082810191909152604091820152815190819003600160a060020a0333166000908152602081905260409020600160a060020a033316600090815260208190526040902060243590815260405190819003602001902060408054600160a060020a033316600090815260208190526040902033600160a060020a0333600160a060020a03604080549250929050565b600160a060020a03331660009081526020819052604090208054806000525b60405180910390f35b906101000a9055806000525b60208281019190915260409182015281519081900360016020828101919091526040918201528151908190039081526040519081900360200190206001600080fd5b04600190810190556000905b6040602435806000525b600160a060020a03331660009081526020819052604090205b60405180910390f35b9250929050565b04600190810190556000905b91909101905b6020828101919091526040918201528151908190038181525460010190555090815260405190819003602001902091909101905b5460ff165b6020600190815260405190819003602001902060208281019190915260409182015281519081900333600160a060020a036020565b005b6040516040519081526040519081900360200190209081526020016000205460ff16806000525b805490559081526020016000205460ff165460ff165b5460ff165b600060405180910390f35b80545460ff165b6040515460ff165b9081526020016000205460ff16815260209081526020016000205460ff1680548181525460010190555081815254600101905550604051806000525b81526020019150509081526020016000205460ff16600080fd5b33600160a060020a0360405160405460ff165b33600160a060020a03908152604051908190036020019020600435906101000a600160409250929050565b9250929050565b9055600160a060020a033316600090815260208190526040902073ffffffffffffffffffffffff00a165627a7a723058203a253d47f67f3a66a2bd8785005066917c510a616f61cdd01cd74569fd6e518b0029"

	walletBin = "6060604052341561000f57600080fd5b6004359055600060005b60405181526020815260200191505090815260405190819003602001902060208281019190915260409182015281519081900304600190810190556000905b604060243560405180910390f35b600080fd5b04600190810190556000905b600080fd5b602060018152602001915050818152546001019055600036600060405180806020018381038252848482818152602001925080828437820191505094505050505060405180910390207f3414f98f2e9a3d1b5600249ccb93273b95c0af8af40ae29b90f8df8519b00f9860003660405180838380828437919091019283900390912091909152905073__WalletLibrary_________________________6000368080601f016020809104026020016040519081016040528181529291906020840183838082843750949594505050505050f415156100eb57600080fd5b61031d806101686000396000f30060606040526000357c0100000000000000000000000000000000000000000000000000000000900480634123cb6b1461007d5763746c91711461013d5763f1736d86146101c557632f54bf6e146102b95763c2cf7326146103dd576368f8fc101461044f575b73ffffffffffffffffffffffffffffffffffffffff16600080fd5b60208281019190915260409182015281519081900381526020019150506001565b005b60043533600160a060020a036020828101919091526040918201528151908190039081526020016000205460ff16806000525b906101000a91909101905b6040519055565b005b602060015460ff165b565b005b815260209081526040519081900360200190205460ff165b815260205b600180546020600160a060020a03331660009081526020819052604090208152602081815254600101905550565b005b5460ff165b9055806000525b600080fd5b5b600160a060020a033316600090815260208190526040902073ffffffffffffffffffffffffffffffffffffffff169081526020016000205460ff1673ffffffffffffffffffffffffffffffffffffffff16565b005b5b73ffffffffffffffffffffffffffffffffffffffff16600435565b005b815260206040604051600080fd5b6024359250929050565b81526020019150509055602082810191909152604091820152815190819003906101000a565b005b815260200191505033600160a060020a03815260208181525460010190555b36600080376000803660007f4631aea4e8ae91bed5cdbab5bfa318c4ee6836d87eb02277e8ce462f2e7887fa1673__WalletLibrary_________________________5af43d6000803e80801561826457600160a060020a0333166000908152602081905260409020600160a060020a033316600090815260208190526040902060405160405b600060405180910390f35b6040519081526040519081900360200190209081526020016000205460ff166040600435906101000a906101000a604090555b6020604000a165627a7a723058206fe44b64b6079c9b5a5f1faf8ed68128f6a00d98224a3ca87d311a12181e5d680029"
)

// WalletLibrary is the shared wallet logic contract.
var WalletLibrary = Template{
	Name: "WalletLibrary",
	Hex:  walletLibraryBin,
}

// Wallet is the multi-signature wallet stub that delegates to
// WalletLibrary. Must be linked before deployment.
var Wallet = Template{
	Name: "Wallet",
	Hex:  walletBin,
	Slots: []LinkSlot{
		{Symbol: WalletLibrarySymbol, Offset: 262},
		{Symbol: WalletLibrarySymbol, Offset: 959},
	},
}

// Templates lists the bundled artifacts in deployment order.
func Templates() []Template {
	return []Template{WalletLibrary, Wallet}
}

// ByName returns a bundled template by its artifact name.
func ByName(name string) (Template, bool) {
	switch strings.ToLower(name) {
	case "wallet":
		return Wallet, true
	case "walletlibrary":
		return WalletLibrary, true
	}
	return Template{}, false
}

const walletConstructorJSON = `[{"type":"constructor","payable":false,"inputs":[{"name":"_owners","type":"address[]"},{"name":"_required","type":"uint256"},{"name":"_daylimit","type":"uint256"}]}]`

var walletConstructorABI = mustABI(walletConstructorJSON)

func mustABI(s string) gethabi.ABI {
	a, err := gethabi.JSON(strings.NewReader(s))
	if err != nil {
		panic(err)
	}
	return a
}

// WalletConstructorArgs encodes the wallet constructor arguments that
// get appended to the linked creation bytecode.
func WalletConstructorArgs(owners []common.Address, required, dayLimit *big.Int) ([]byte, error) {
	if len(owners) == 0 {
		return nil, fmt.Errorf("wallet needs at least one owner")
	}
	if required == nil || required.Sign() < 1 || required.Cmp(big.NewInt(int64(len(owners)))) > 0 {
		return nil, fmt.Errorf("required confirmations must be between 1 and %d", len(owners))
	}
	if dayLimit == nil || dayLimit.Sign() < 0 {
		return nil, fmt.Errorf("daily limit must not be negative")
	}
	return walletConstructorABI.Pack("", owners, required, dayLimit)
}
