//
// encode.go
//
// Copyright (c) 2025 yaovote authors
//
// All rights reserved.
//
// Canonical wire encodings for VoteCiphertext and VoteZKP. Both the
// blind-signing and verification paths MUST serialize a vote the same
// way; spec.md §9 calls out a source bug where the signer and verifier
// disagreed on the encoding. These Bytes() methods are the single
// source of truth both sides call.

package election

import (
	"encoding/binary"
	"math/big"
)

func appendInt(buf []byte, n *big.Int) []byte {
	b := n.Bytes()
	var length [4]byte
	binary.BigEndian.PutUint32(length[:], uint32(len(b)))
	buf = append(buf, length[:]...)
	return append(buf, b...)
}

// Bytes returns the canonical length-prefixed encoding of a
// VoteCiphertext: len(a) || a || len(b) || b.
func (c *VoteCiphertext) Bytes() []byte {
	var buf []byte
	buf = appendInt(buf, c.A)
	buf = appendInt(buf, c.B)
	return buf
}

// Bytes returns the canonical length-prefixed encoding of a VoteZKP,
// field order matching its struct declaration.
func (z *VoteZKP) Bytes() []byte {
	var buf []byte
	for _, n := range []*big.Int{z.A0, z.B0, z.A1, z.B1, z.C0, z.C1, z.R0, z.R1} {
		buf = appendInt(buf, n)
	}
	return buf
}
