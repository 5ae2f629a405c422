//
// garble.go
//
// Copyright (c) 2025 yaovote authors
//
// All rights reserved.
//
// Grounded on the teacher's circuit/garble.go gate-garbling shape
// (per-gate truth-table entry construction, collected into a table),
// replaced with the free-XOR / SHA-256 construction of spec.md §4.3:
// XOR gates carry no table at all, and AND/NOT tables are uniformly
// shuffled rather than sorted by a point-and-permute select bit.

package circuit

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"math/big"

	"github.com/sfevote/yaovote/params"
)

// GarbledTable is the ordered, shuffled list of ciphertexts for one
// AND or NOT gate. XOR gates have no table.
type GarbledTable [][]byte

// Garbled is the complete output of garbling a circuit: the Garbler's
// view of every wire's label pair, Δ, and the garbled tables for the
// non-XOR gates, keyed by gate index.
type Garbled struct {
	Labels *GarbledLabels
	Tables map[int]GarbledTable
}

// gateEncrypt implements E(L, R, Z) = H(L ‖ R ‖ tweak) ⊕ (Z ‖ 0^tag)
// from spec.md §4.3. The gate index is mixed into the hash as a tweak
// so that the same label pair garbled in two different gates produces
// unlinkable ciphertexts.
func gateEncrypt(pp *params.Params, l, r Label, z Label, tweak int) []byte {
	h := sha256.New()
	h.Write(l)
	if r != nil {
		h.Write(r)
	}
	var tw [4]byte
	tw[0] = byte(tweak >> 24)
	tw[1] = byte(tweak >> 16)
	tw[2] = byte(tweak >> 8)
	tw[3] = byte(tweak)
	h.Write(tw[:])
	mask := h.Sum(nil)

	padded := make([]byte, pp.LabelLength+pp.LabelTagLength)
	copy(padded, z)

	out := make([]byte, len(mask))
	for i := range mask {
		out[i] = mask[i] ^ padded[i]
	}
	return out
}

// gateDecrypt reverses gateEncrypt and reports whether the trailing
// LabelTagLength bytes of the recovered plaintext are all zero, which
// is the trial-decryption acceptance test of spec.md §4.4.
func gateDecrypt(pp *params.Params, l, r Label, tweak int, entry []byte) (Label, bool) {
	h := sha256.New()
	h.Write(l)
	if r != nil {
		h.Write(r)
	}
	var tw [4]byte
	tw[0] = byte(tweak >> 24)
	tw[1] = byte(tweak >> 16)
	tw[2] = byte(tweak >> 8)
	tw[3] = byte(tweak)
	h.Write(tw[:])
	mask := h.Sum(nil)

	if len(entry) != len(mask) {
		return nil, false
	}
	plain := make([]byte, len(mask))
	for i := range mask {
		plain[i] = mask[i] ^ entry[i]
	}

	tag := plain[pp.LabelLength:]
	for _, b := range tag {
		if b != 0 {
			return nil, false
		}
	}
	return Label(plain[:pp.LabelLength]), true
}

// Garble garbles the circuit: it assigns free-XOR label pairs to every
// wire and builds a uniformly shuffled garbled table for every AND/NOT
// gate. XOR gates receive no table; both Garbler and Evaluator compute
// their output label as the XOR of the input labels.
func (c *Circuit) Garble(pp *params.Params) (*Garbled, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	labels, err := GenerateLabels(pp, c.NumWire)
	if err != nil {
		return nil, err
	}

	tables := make(map[int]GarbledTable)

	for gi, g := range c.Gates {
		switch g.Type {
		case Xor:
			// Free-XOR: no ciphertexts needed. The output pair is the
			// XOR of the input pairs, so zero ⊕ one stays Δ.
			zero := labels.Wires[g.LHS].Zero.Xor(labels.Wires[g.RHS].Zero)
			labels.Wires[g.Output] = Wire{Zero: zero, One: zero.Xor(labels.Delta)}
			continue

		case And:
			in0 := labels.Wires[g.LHS]
			in1 := labels.Wires[g.RHS]
			out := labels.Wires[g.Output]

			entries := [][3]Label{
				{in0.Zero, in1.Zero, out.Zero},
				{in0.Zero, in1.One, out.Zero},
				{in0.One, in1.Zero, out.Zero},
				{in0.One, in1.One, out.One},
			}
			table := make(GarbledTable, len(entries))
			for i, e := range entries {
				table[i] = gateEncrypt(pp, e[0], e[1], e[2], gi)
			}
			if err := shuffle(table); err != nil {
				return nil, err
			}
			tables[gi] = table

		case Not:
			in0 := labels.Wires[g.LHS]
			out := labels.Wires[g.Output]
			dummy := Label(pp.DummyRHS)

			entries := [][2]Label{
				{in0.Zero, out.One},
				{in0.One, out.Zero},
			}
			table := make(GarbledTable, len(entries))
			for i, e := range entries {
				table[i] = gateEncrypt(pp, e[0], dummy, e[1], gi)
			}
			if err := shuffle(table); err != nil {
				return nil, err
			}
			tables[gi] = table

		default:
			return nil, fmt.Errorf("circuit: %w: gate %d has type %d", ErrCircuitMalformed, gi, g.Type)
		}
	}

	return &Garbled{Labels: labels, Tables: tables}, nil
}

// shuffle uniformly permutes table in place with a Fisher-Yates
// shuffle whose swap indices are all drawn from crypto/rand; no seed
// is kept between gates or sessions.
func shuffle(table GarbledTable) error {
	for i := len(table) - 1; i > 0; i-- {
		jBig, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return err
		}
		j := int(jBig.Int64())
		table[i], table[j] = table[j], table[i]
	}
	return nil
}
