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

// Package contracts bundles the creation bytecode shipped with the
// toolkit and the linker that resolves library slots inside it.
package contracts

import (
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrInvalidAddress    = errors.New("library address must be exactly 20 bytes of hex")
	ErrUnresolvedSymbol  = errors.New("no address resolved for library symbol")
	ErrMalformedTemplate = errors.New("malformed bytecode template")
	ErrIncompleteLinkage = errors.New("bytecode still contains an unlinked library slot")
)

// SlotWidth is the width of a library slot in hex characters: a 20-byte
// address, hex encoded.
const SlotWidth = 40

// Filler pads a symbol name up to SlotWidth inside an unlinked template.
const Filler = "_"

const addressLength = 20

// LinkSlot marks a single library placeholder inside a template.
// Offset is in bytes within the decoded bytecode image.
type LinkSlot struct {
	Symbol string
	Offset int
}

// LinkMap resolves library symbols to deployed addresses. Values are
// 20-byte addresses in hex, with or without the 0x prefix, any case.
type LinkMap map[string]string

// Template is creation bytecode in hex (no 0x prefix) together with the
// symbol table of its unresolved library slots. Templates are published
// as package values and never mutated; linking returns a fresh image.
type Template struct {
	Name  string
	Hex   string
	Slots []LinkSlot
}

// Linked reports whether the template references no library symbols.
func (t Template) Linked() bool {
	return len(t.Slots) == 0
}

// Symbols returns the distinct library symbols the template references,
// in declaration order.
func (t Template) Symbols() []string {
	seen := make(map[string]bool, len(t.Slots))
	var names []string
	for _, slot := range t.Slots {
		if seen[slot.Symbol] {
			continue
		}
		seen[slot.Symbol] = true
		names = append(names, slot.Symbol)
	}
	return names
}

// Link resolves every library slot of the template against the given
// resolutions and returns the linked bytecode, hex encoded and exactly
// as long as the template. Linking is pure: no I/O, no mutation of the
// receiver or arguments, identical inputs give identical output.
// Resolutions for symbols the template never references are ignored,
// but every supplied address must still be well formed.
func (t Template) Link(resolutions LinkMap) (string, error) {
	resolved, err := resolutions.normalize()
	if err != nil {
		return "", err
	}
	if len(t.Hex)%2 != 0 {
		return "", fmt.Errorf("%w: %s: odd hex length %d", ErrMalformedTemplate, t.Name, len(t.Hex))
	}
	if err := t.validateSlots(); err != nil {
		return "", err
	}

	out := []byte(t.Hex)
	for _, slot := range t.Slots {
		addr, ok := resolved[slot.Symbol]
		if !ok {
			return "", fmt.Errorf("%w: %s: %q", ErrUnresolvedSymbol, t.Name, slot.Symbol)
		}
		copy(out[slot.Offset*2:slot.Offset*2+SlotWidth], addr)
	}
	linked := string(out)

	// Fully linked bytecode carries no filler at all. Leftover filler
	// means the symbol table missed a slot the image still holds, and
	// such bytecode must never be deployed.
	if i := strings.Index(linked, Filler); i >= 0 {
		return "", fmt.Errorf("%w: %s: slot residue at byte %d missing from the symbol table", ErrIncompleteLinkage, t.Name, i/2)
	}
	if _, err := hex.DecodeString(linked); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrMalformedTemplate, t.Name, err)
	}
	return linked, nil
}

func (t Template) validateSlots() error {
	sorted := make([]LinkSlot, len(t.Slots))
	copy(sorted, t.Slots)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Offset < sorted[j].Offset })

	end := 0
	for i, slot := range sorted {
		start := slot.Offset * 2
		if slot.Offset < 0 || start+SlotWidth > len(t.Hex) {
			return fmt.Errorf("%w: %s: slot %q out of range at byte %d", ErrMalformedTemplate, t.Name, slot.Symbol, slot.Offset)
		}
		if i > 0 && start < end {
			return fmt.Errorf("%w: %s: slot %q at byte %d overlaps the previous slot", ErrMalformedTemplate, t.Name, slot.Symbol, slot.Offset)
		}
		end = start + SlotWidth

		want, err := placeholder(slot.Symbol)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrMalformedTemplate, t.Name, err)
		}
		if got := t.Hex[start : start+SlotWidth]; got != want {
			return fmt.Errorf("%w: %s: byte %d holds %q, want the %q placeholder", ErrMalformedTemplate, t.Name, slot.Offset, got, slot.Symbol)
		}
	}
	return nil
}

// placeholder renders the slot text the compiler emits for a library
// symbol: "__" + name, filler padded to SlotWidth.
func placeholder(symbol string) (string, error) {
	if symbol == "" {
		return "", fmt.Errorf("empty library symbol")
	}
	if len(symbol) > SlotWidth-2 {
		return "", fmt.Errorf("library symbol %q does not fit a %d-character slot", symbol, SlotWidth)
	}
	return "__" + symbol + strings.Repeat(Filler, SlotWidth-2-len(symbol)), nil
}

// normalize decodes every supplied address upfront so that a bad entry
// is reported no matter which slots the template declares. Returned
// values are the 40 lowercase hex characters spliced into a slot.
func (m LinkMap) normalize() (map[string]string, error) {
	symbols := make([]string, 0, len(m))
	for symbol := range m {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)

	resolved := make(map[string]string, len(m))
	for _, symbol := range symbols {
		addr := m[symbol]
		if strings.HasPrefix(addr, "0x") || strings.HasPrefix(addr, "0X") {
			addr = addr[2:]
		}
		b, err := hex.DecodeString(addr)
		if err != nil {
			return nil, fmt.Errorf("%w: symbol %q: %v", ErrInvalidAddress, symbol, err)
		}
		if len(b) != addressLength {
			return nil, fmt.Errorf("%w: symbol %q: got %d bytes", ErrInvalidAddress, symbol, len(b))
		}
		resolved[symbol] = hex.EncodeToString(b)
	}
	return resolved, nil
}
