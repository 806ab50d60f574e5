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
	"os"
	"strings"

	"github.com/defiweb/go-eth/types"
	"gopkg.in/yaml.v3"
)

// Manifest describes the wallet to deploy. Owners and Required mirror
// the wallet constructor; DayLimit is in wei, decimal or 0x-prefixed
// hex. Library pins an already deployed wallet library, Registry names
// a registry contract to resolve it from; with neither set a fresh
// library is deployed alongside the wallet.
type Manifest struct {
	Owners   []string `yaml:"owners"`
	Required int      `yaml:"required"`
	DayLimit string   `yaml:"daylimit,omitempty"`
	Library  string   `yaml:"library,omitempty"`
	Registry string   `yaml:"registry,omitempty"`
}

// LoadManifest reads and validates a manifest from a YAML file.
func LoadManifest(path string) (*Manifest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s with error: %v", path, err)
	}
	var m Manifest
	if err := yaml.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s with error: %v", path, err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid manifest %s: %w", path, err)
	}
	return &m, nil
}

func (m *Manifest) Validate() error {
	if len(m.Owners) == 0 {
		return fmt.Errorf("manifest lists no owners")
	}
	owners, err := m.OwnerAddresses()
	if err != nil {
		return err
	}
	seen := make(map[types.Address]bool, len(owners))
	for _, owner := range owners {
		if seen[owner] {
			return fmt.Errorf("owner %v listed twice", owner)
		}
		seen[owner] = true
	}
	if m.Required < 1 || m.Required > len(m.Owners) {
		return fmt.Errorf("required confirmations %d out of range for %d owners", m.Required, len(m.Owners))
	}
	if _, err := m.DayLimitWei(); err != nil {
		return err
	}
	if m.Library != "" && m.Registry != "" {
		return fmt.Errorf("library and registry are mutually exclusive")
	}
	if m.Library != "" {
		if _, err := m.LibraryAddress(); err != nil {
			return err
		}
	}
	if m.Registry != "" {
		if _, err := m.RegistryAddress(); err != nil {
			return err
		}
	}
	return nil
}

func (m *Manifest) OwnerAddresses() ([]types.Address, error) {
	owners := make([]types.Address, len(m.Owners))
	for i, owner := range m.Owners {
		addr, err := types.AddressFromHex(owner)
		if err != nil {
			return nil, fmt.Errorf("invalid owner address %q: %v", owner, err)
		}
		owners[i] = addr
	}
	return owners, nil
}

// DayLimitWei parses the daily spend limit. An empty limit means zero,
// which the wallet treats as no under-limit spending at all.
func (m *Manifest) DayLimitWei() (*big.Int, error) {
	if m.DayLimit == "" {
		return big.NewInt(0), nil
	}
	s, base := m.DayLimit, 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s, base = s[2:], 16
	}
	limit, ok := new(big.Int).SetString(s, base)
	if !ok {
		return nil, fmt.Errorf("invalid day limit %q", m.DayLimit)
	}
	if limit.Sign() < 0 {
		return nil, fmt.Errorf("day limit %q is negative", m.DayLimit)
	}
	return limit, nil
}

func (m *Manifest) LibraryAddress() (types.Address, error) {
	addr, err := types.AddressFromHex(m.Library)
	if err != nil {
		return types.ZeroAddress, fmt.Errorf("invalid library address %q: %v", m.Library, err)
	}
	return addr, nil
}

func (m *Manifest) RegistryAddress() (types.Address, error) {
	addr, err := types.AddressFromHex(m.Registry)
	if err != nil {
		return types.ZeroAddress, fmt.Errorf("invalid registry address %q: %v", m.Registry, err)
	}
	return addr, nil
}
