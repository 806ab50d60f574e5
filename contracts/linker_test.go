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

package contracts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustPlaceholder(t *testing.T, symbol string) string {
	t.Helper()
	p, err := placeholder(symbol)
	require.NoError(t, err)
	return p
}

func TestLinkSingleSlot(t *testing.T) {
	prefix := strings.Repeat("ab", 20)
	suffix := strings.Repeat("cd", 10)
	tmpl := Template{
		Name:  "Test",
		Hex:   prefix + mustPlaceholder(t, "Lib") + suffix,
		Slots: []LinkSlot{{Symbol: "Lib", Offset: 20}},
	}

	linked, err := tmpl.Link(LinkMap{"Lib": "0x1111111111111111111111111111111111111111"})
	require.NoError(t, err)
	assert.Equal(t, prefix+strings.Repeat("1", SlotWidth)+suffix, linked)
	assert.Len(t, linked, len(tmpl.Hex))
}

func TestLinkRepeatedSymbol(t *testing.T) {
	ph := mustPlaceholder(t, "Shared")
	tmpl := Template{
		Name:  "Test",
		Hex:   "6060" + ph + "5050" + ph + "00",
		Slots: []LinkSlot{{Symbol: "Shared", Offset: 2}, {Symbol: "Shared", Offset: 24}},
	}

	// Mixed-case input must still splice lowercase hex.
	linked, err := tmpl.Link(LinkMap{"Shared": "0xDeaDbeefdEAdbeefDEadBEEFdeadbeEFdeADBeeF"})
	require.NoError(t, err)

	want := strings.Repeat("deadbeef", 5)
	assert.Equal(t, "6060"+want+"5050"+want+"00", linked)
	assert.NotContains(t, linked, Filler)
}

func TestLinkIsDeterministic(t *testing.T) {
	tmpl := Template{
		Name:  "Test",
		Hex:   "73" + mustPlaceholder(t, "Lib") + "f4",
		Slots: []LinkSlot{{Symbol: "Lib", Offset: 1}},
	}
	resolutions := LinkMap{"Lib": "2222222222222222222222222222222222222222"}

	first, err := tmpl.Link(resolutions)
	require.NoError(t, err)
	second, err := tmpl.Link(resolutions)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	// Neither the template nor the resolutions may change.
	assert.Equal(t, "73"+mustPlaceholder(t, "Lib")+"f4", tmpl.Hex)
	assert.Equal(t, "2222222222222222222222222222222222222222", resolutions["Lib"])
}

func TestLinkNoSlots(t *testing.T) {
	tmpl := Template{Name: "Test", Hex: "6060604052"}

	linked, err := tmpl.Link(nil)
	require.NoError(t, err)
	assert.Equal(t, tmpl.Hex, linked)
	assert.True(t, tmpl.Linked())
}

func TestLinkUnresolvedSymbol(t *testing.T) {
	tmpl := Template{
		Name:  "Test",
		Hex:   mustPlaceholder(t, "Lib"),
		Slots: []LinkSlot{{Symbol: "Lib", Offset: 0}},
	}

	linked, err := tmpl.Link(LinkMap{"Other": "0x1111111111111111111111111111111111111111"})
	assert.ErrorIs(t, err, ErrUnresolvedSymbol)
	assert.Empty(t, linked)
}

func TestLinkInvalidAddress(t *testing.T) {
	// A bad resolution is rejected no matter what the template holds,
	// even when nothing references the symbol.
	tmpl := Template{Name: "Test", Hex: "6060"}

	for _, addr := range []string{
		"0x1111",
		strings.Repeat("11", 19),
		strings.Repeat("11", 21),
		"0xzz11111111111111111111111111111111111111",
		"0x0X" + strings.Repeat("11", 20),
		"",
	} {
		linked, err := tmpl.Link(LinkMap{"Lib": addr})
		assert.ErrorIs(t, err, ErrInvalidAddress, "address %q", addr)
		assert.Empty(t, linked)
	}
}

func TestLinkIgnoresUnusedResolutions(t *testing.T) {
	tmpl := Template{
		Name:  "Test",
		Hex:   mustPlaceholder(t, "Lib") + "00",
		Slots: []LinkSlot{{Symbol: "Lib", Offset: 0}},
	}

	linked, err := tmpl.Link(LinkMap{
		"Lib":    "0x1111111111111111111111111111111111111111",
		"Unused": "0x2222222222222222222222222222222222222222",
	})
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("1", SlotWidth)+"00", linked)
}

func TestLinkMalformedTemplate(t *testing.T) {
	addr := "0x1111111111111111111111111111111111111111"
	ph := mustPlaceholder(t, "Lib")

	for name, tmpl := range map[string]Template{
		"odd hex length": {
			Name: "T", Hex: "606",
		},
		"slot out of range": {
			Name: "T", Hex: "6060",
			Slots: []LinkSlot{{Symbol: "Lib", Offset: 1}},
		},
		"negative offset": {
			Name: "T", Hex: ph,
			Slots: []LinkSlot{{Symbol: "Lib", Offset: -1}},
		},
		"slot without placeholder": {
			Name: "T", Hex: strings.Repeat("00", 25),
			Slots: []LinkSlot{{Symbol: "Lib", Offset: 0}},
		},
		"overlapping slots": {
			Name: "T", Hex: ph + ph,
			Slots: []LinkSlot{{Symbol: "Lib", Offset: 0}, {Symbol: "Lib", Offset: 10}},
		},
		"symbol too long for the slot": {
			Name: "T", Hex: strings.Repeat("00", 30),
			Slots: []LinkSlot{{Symbol: strings.Repeat("L", SlotWidth-1), Offset: 0}},
		},
		"stray non-hex outside slots": {
			Name: "T", Hex: "zz" + ph,
			Slots: []LinkSlot{{Symbol: "Lib", Offset: 1}},
		},
	} {
		t.Run(name, func(t *testing.T) {
			linked, err := tmpl.Link(LinkMap{"Lib": addr, strings.Repeat("L", SlotWidth-1): addr})
			assert.ErrorIs(t, err, ErrMalformedTemplate)
			assert.Empty(t, linked)
		})
	}
}

func TestLinkIncompleteLinkage(t *testing.T) {
	// The image carries a slot the symbol table misses. Linking must
	// refuse to produce bytecode for it.
	tmpl := Template{
		Name:  "Test",
		Hex:   mustPlaceholder(t, "Known") + "6060" + mustPlaceholder(t, "Forgotten"),
		Slots: []LinkSlot{{Symbol: "Known", Offset: 0}},
	}

	linked, err := tmpl.Link(LinkMap{
		"Known":     "0x1111111111111111111111111111111111111111",
		"Forgotten": "0x2222222222222222222222222222222222222222",
	})
	assert.ErrorIs(t, err, ErrIncompleteLinkage)
	assert.Empty(t, linked)
}

func TestTemplateSymbols(t *testing.T) {
	tmpl := Template{
		Name: "Test",
		Slots: []LinkSlot{
			{Symbol: "B", Offset: 0},
			{Symbol: "A", Offset: 20},
			{Symbol: "B", Offset: 40},
		},
	}
	assert.Equal(t, []string{"B", "A"}, tmpl.Symbols())
	assert.False(t, tmpl.Linked())

	assert.Nil(t, Template{Name: "Empty"}.Symbols())
}

func TestPlaceholder(t *testing.T) {
	p, err := placeholder("Lib")
	require.NoError(t, err)
	assert.Len(t, p, SlotWidth)
	assert.Equal(t, "__Lib", p[:5])
	assert.Equal(t, strings.Repeat(Filler, SlotWidth-5), p[5:])

	_, err = placeholder("")
	assert.Error(t, err)
	_, err = placeholder(strings.Repeat("x", SlotWidth-1))
	assert.Error(t, err)
}
