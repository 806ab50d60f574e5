// Copyright (C) 2024-2026 The parity-ethereum authors.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package core

import (
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/defiweb/go-eth/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wallet.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadManifest(t *testing.T) {
	path := writeManifest(t, `
owners:
  - "0x1F7acDa376eF37EC371235a094113dF9Cb4EfEe1"
  - "0x7e5F4552091A69125d5DfCb7b8C2659029395Bdf"
required: 2
daylimit: "1000000000000000000"
`)

	m, err := LoadManifest(path)
	require.NoError(t, err)
	assert.Len(t, m.Owners, 2)
	assert.Equal(t, 2, m.Required)

	owners, err := m.OwnerAddresses()
	require.NoError(t, err)
	assert.Equal(t, []types.Address{testOwnerOne, testOwnerTwo}, owners)

	limit, err := m.DayLimitWei()
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1000000000000000000), limit)
}

func TestLoadManifestErrors(t *testing.T) {
	// missing file
	_, err := LoadManifest(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)

	// broken yaml
	_, err = LoadManifest(writeManifest(t, "owners: ["))
	assert.Error(t, err)

	// loads but fails validation
	_, err = LoadManifest(writeManifest(t, `
owners:
  - "0x1F7acDa376eF37EC371235a094113dF9Cb4EfEe1"
required: 2
`))
	assert.Error(t, err)
}

func TestManifestValidate(t *testing.T) {
	valid := Manifest{
		Owners:   []string{"0x1F7acDa376eF37EC371235a094113dF9Cb4EfEe1"},
		Required: 1,
	}
	assert.NoError(t, valid.Validate())

	// no owners
	m := valid
	m.Owners = nil
	assert.Error(t, m.Validate())

	// malformed owner address
	m = valid
	m.Owners = []string{"0x123"}
	assert.Error(t, m.Validate())

	// the same owner twice, case notwithstanding
	m = valid
	m.Owners = []string{
		"0x1F7acDa376eF37EC371235a094113dF9Cb4EfEe1",
		"0x1f7acda376ef37ec371235a094113df9cb4efee1",
	}
	assert.Error(t, m.Validate())

	// required outside 1..len(owners)
	m = valid
	m.Required = 0
	assert.Error(t, m.Validate())
	m.Required = 2
	assert.Error(t, m.Validate())

	// day limit must be a non-negative integer
	m = valid
	m.DayLimit = "-5"
	assert.Error(t, m.Validate())
	m.DayLimit = "12x4"
	assert.Error(t, m.Validate())
	m.DayLimit = "0xde0b6b3a7640000"
	assert.NoError(t, m.Validate())

	// library and registry are mutually exclusive
	m = valid
	m.Library = "0x1111111111111111111111111111111111111111"
	m.Registry = "0x2222222222222222222222222222222222222222"
	assert.Error(t, m.Validate())

	// malformed library and registry addresses
	m = valid
	m.Library = "not-an-address"
	assert.Error(t, m.Validate())
	m = valid
	m.Registry = "0xzz"
	assert.Error(t, m.Validate())
}

func TestManifestDayLimitWei(t *testing.T) {
	m := Manifest{}

	// empty means zero
	limit, err := m.DayLimitWei()
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(0), limit)

	// hex with 0x prefix
	m.DayLimit = "0xde0b6b3a7640000"
	limit, err = m.DayLimitWei()
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1000000000000000000), limit)
}
