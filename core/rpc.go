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
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/defiweb/go-eth/types"
)

// argFormatter canonicalizes one positional argument to its wire form.
type argFormatter func(arg any) (any, error)

// rpcMethod pairs a remote method name with per-argument formatters.
// Each namespace declares its methods as a static table; decoding the
// result stays with the typed pointer the caller hands in.
type rpcMethod struct {
	name       string
	formatters []argFormatter
}

// call formats every argument and performs a single transport round
// trip. Transport failures come back untouched: the facade never
// retries and never rewraps them.
func (m rpcMethod) call(ctx context.Context, t Transport, result any, args ...any) error {
	if len(args) != len(m.formatters) {
		return fmt.Errorf("%w: %s takes %d arguments, got %d", ErrInvalidInput, m.name, len(m.formatters), len(args))
	}
	wire := make([]any, len(args))
	for i, arg := range args {
		f := m.formatters[i]
		if f == nil {
			wire[i] = arg
			continue
		}
		v, err := f(arg)
		if err != nil {
			return fmt.Errorf("%w: %s argument %d: %v", ErrInvalidInput, m.name, i, err)
		}
		wire[i] = v
	}
	return t.Call(ctx, result, m.name, wire...)
}

// formatHexData canonicalizes byte-like input to lowercase 0x-prefixed
// even-length hex. Canonical input passes through unchanged.
func formatHexData(arg any) (any, error) {
	switch v := arg.(type) {
	case []byte:
		return "0x" + hex.EncodeToString(v), nil
	case types.Bytes:
		return "0x" + hex.EncodeToString(v), nil
	case string:
		s := v
		if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
			s = s[2:]
		}
		if len(s)%2 != 0 {
			return nil, fmt.Errorf("odd hex length %d", len(s))
		}
		b, err := hex.DecodeString(s)
		if err != nil {
			return nil, err
		}
		return "0x" + hex.EncodeToString(b), nil
	default:
		return nil, fmt.Errorf("cannot encode %T as hex data", arg)
	}
}
