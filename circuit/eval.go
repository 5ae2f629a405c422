//
// eval.go
//
// Copyright (c) 2025 yaovote authors
//
// All rights reserved.
//

package circuit

import (
	"fmt"

	"github.com/sfevote/yaovote/params"
)

// Eval evaluates every gate of the circuit in order, given the input
// wires already populated in wires, and fills in every other wire's
// label. XOR gates compute their output label as the XOR of their
// input labels (free-XOR, no table lookup); AND/NOT gates trial-decrypt
// every entry of their garbled table and accept the unique entry whose
// trailing LabelTagLength bytes are all zero (spec.md §4.4). A gate
// with no validly-tagged entry means the garbling was corrupted and is
// fatal.
func Eval(pp *params.Params, c *Circuit, tables map[int]GarbledTable, wires map[int]Label) error {
	for gi, g := range c.Gates {
		switch g.Type {
		case Xor:
			a, ok := wires[g.LHS]
			if !ok {
				return fmt.Errorf("circuit: %w: gate %d missing lhs wire", ErrCircuitMalformed, gi)
			}
			b, ok := wires[g.RHS]
			if !ok {
				return fmt.Errorf("circuit: %w: gate %d missing rhs wire", ErrCircuitMalformed, gi)
			}
			wires[g.Output] = a.Xor(b)

		case And:
			a, ok := wires[g.LHS]
			if !ok {
				return fmt.Errorf("circuit: %w: gate %d missing lhs wire", ErrCircuitMalformed, gi)
			}
			b, ok := wires[g.RHS]
			if !ok {
				return fmt.Errorf("circuit: %w: gate %d missing rhs wire", ErrCircuitMalformed, gi)
			}
			table, ok := tables[gi]
			if !ok {
				return fmt.Errorf("circuit: %w: gate %d has no garbled table", ErrCircuitMalformed, gi)
			}
			out, err := trialDecrypt(pp, a, b, gi, table)
			if err != nil {
				return err
			}
			wires[g.Output] = out

		case Not:
			a, ok := wires[g.LHS]
			if !ok {
				return fmt.Errorf("circuit: %w: gate %d missing lhs wire", ErrCircuitMalformed, gi)
			}
			table, ok := tables[gi]
			if !ok {
				return fmt.Errorf("circuit: %w: gate %d has no garbled table", ErrCircuitMalformed, gi)
			}
			out, err := trialDecrypt(pp, a, Label(pp.DummyRHS), gi, table)
			if err != nil {
				return err
			}
			wires[g.Output] = out

		default:
			return fmt.Errorf("circuit: %w: gate %d has type %d", ErrCircuitMalformed, gi, g.Type)
		}
	}
	return nil
}

func trialDecrypt(pp *params.Params, l, r Label, tweak int, table GarbledTable) (Label, error) {
	for _, entry := range table {
		if out, ok := gateDecrypt(pp, l, r, tweak, entry); ok {
			return out, nil
		}
	}
	return nil, fmt.Errorf("circuit: %w: gate %d: no table entry decrypted", ErrCircuitMalformed, tweak)
}

// DecodeOutput matches each label on the circuit's output wires to the
// corresponding wire's zero/one label, recovering the output bit
// string. This replaces the teacher's known bug (spec.md §9) of
// re-scanning all non-input wires for every output label, which
// produced duplicated bits: here exactly one bit is emitted per output
// wire, matched only against that wire's own label pair.
func DecodeOutput(labels *GarbledLabels, c *Circuit, received map[int]Label) (string, error) {
	out := make([]byte, c.OutputLength)
	for i, wire := range c.OutputWires() {
		got, ok := received[wire]
		if !ok {
			return "", fmt.Errorf("circuit: missing output label for wire %d", wire)
		}
		pair := labels.Wires[wire]
		switch {
		case got.Equal(pair.Zero):
			out[i] = '0'
		case got.Equal(pair.One):
			out[i] = '1'
		default:
			return "", fmt.Errorf("circuit: unknown label for output wire %d", wire)
		}
	}
	return string(out), nil
}
