//
// label.go
//
// Copyright (c) 2025 yaovote authors
//
// All rights reserved.
//
// Adapted from the teacher's ot/label.go 128-bit wire label, moved
// into the circuit package since the OT driver in this rewrite moves
// generic byte-string messages rather than GC labels specifically.

package circuit

import (
	"crypto/rand"
	"fmt"

	"github.com/sfevote/yaovote/params"
)

// Label is an opaque garbled-circuit wire label.
type Label []byte

// NewLabel draws a fresh uniformly random label of pp's configured
// length.
func NewLabel(pp *params.Params) (Label, error) {
	l := make(Label, pp.LabelLength)
	if _, err := rand.Read(l); err != nil {
		return nil, err
	}
	return l, nil
}

// Xor returns the XOR of two labels of equal length.
func (l Label) Xor(o Label) Label {
	out := make(Label, len(l))
	for i := range l {
		out[i] = l[i] ^ o[i]
	}
	return out
}

// Equal reports whether two labels are identical.
func (l Label) Equal(o Label) bool {
	if len(l) != len(o) {
		return false
	}
	for i := range l {
		if l[i] != o[i] {
			return false
		}
	}
	return true
}

func (l Label) String() string {
	return fmt.Sprintf("%x", []byte(l))
}

// Wire holds the pair of labels a Garbler assigns to one wire: the
// label meaning "0" and the label meaning "1".
type Wire struct {
	Zero Label
	One  Label
}

// GarbledLabels holds the Garbler's zero/one label pair for every wire
// in a circuit, plus the free-XOR offset Δ relating them
// (zero[i] ⊕ one[i] = Δ for every wire i). Ephemeral per SFE session;
// never persisted.
type GarbledLabels struct {
	Delta Label
	Wires []Wire
}

// newDelta draws a fresh Δ with its top-order bit forced to 1, as
// spec.md §4.3 requires so that Δ can double as a point-and-permute
// reserved bit if a future implementation wants one; this
// implementation does not rely on that bit itself since it shuffles
// table entries instead of sorting by a select bit.
func newDelta(pp *params.Params) (Label, error) {
	d, err := NewLabel(pp)
	if err != nil {
		return nil, err
	}
	d[0] |= 0x80
	return d, nil
}

// GenerateLabels assigns a fresh (zero, one) label pair to every wire
// of the circuit under the free-XOR scheme: one global Δ is sampled,
// and for each wire a random zero label is drawn with one = zero ⊕ Δ.
func GenerateLabels(pp *params.Params, numWire int) (*GarbledLabels, error) {
	delta, err := newDelta(pp)
	if err != nil {
		return nil, err
	}

	wires := make([]Wire, numWire)
	for i := range wires {
		zero, err := NewLabel(pp)
		if err != nil {
			return nil, err
		}
		wires[i] = Wire{Zero: zero, One: zero.Xor(delta)}
	}

	return &GarbledLabels{Delta: delta, Wires: wires}, nil
}
