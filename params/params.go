//
// params.go
//
// Copyright (c) 2025 yaovote authors
//
// All rights reserved.
//

// Package params holds the process-wide cryptographic parameters used
// by every other package in this module: the fixed DH/ElGamal group
// (P, Q, G) and the garbled-circuit label sizes. It is a read-only
// configuration record, constructed once and threaded through
// constructors, never consulted as ambient global state.
package params

import "math/big"

// Params is the shared cryptographic configuration record.
type Params struct {
	// P is the safe prime modulus of the multiplicative group.
	P *big.Int
	// Q is the order of the prime-order subgroup, (P-1)/2.
	Q *big.Int
	// G is a generator of the order-Q subgroup.
	G *big.Int

	// LabelLength is the size, in bytes, of a garbled-circuit wire
	// label.
	LabelLength int
	// LabelTagLength is the size, in bytes, of the verification tag
	// appended to a garbled wire label before encryption. Chosen so
	// that LabelLength+LabelTagLength equals the SHA-256 output size.
	LabelTagLength int
	// DummyRHS is the fixed public right-hand label NOT gates use in
	// place of a real second input.
	DummyRHS []byte
}

// modp2048 is the RFC 3526 Group 14 2048-bit MODP prime.
const modp2048 = "" +
	"FFFFFFFFFFFFFFFFC90FDAA22168C234C4C6628B80DC1CD" +
	"129024E088A67CC74020BBEA63B139B22514A08798E3404" +
	"DDEF9519B3CD3A431B302B0A6DF25F14374FE1356D6D51C" +
	"245E485B576625E7EC6F44C42E9A637ED6B0BFF5CB6F406" +
	"B7EDEE386BFB5A899FA5AE9F24117C4B1FE649286651ECE" +
	"45B3DC2007CB8A163BF0598DA48361C55D39A69163FA8FD" +
	"24CF5F83655D23DCA3AD961C62F356208552BB9ED529077" +
	"096966D670C354E4ABC9804F1746C08CA18217C32905E46" +
	"2E36CE3BE39E772C180E86039B2783A2EC07A28FB5C55DF" +
	"06F4C52C9DE2BCBF6955817183995497CEA956AE515D226" +
	"1898FA051015728E5A8AACAA68FFFFFFFFFFFFFFFF"

// Default returns the default system-wide parameters: the RFC 3526
// 2048-bit safe prime group with generator G=4 (a quadratic residue,
// hence a generator of the order-Q subgroup of quadratic residues),
// and 128-bit garbled-circuit labels with a 128-bit verification tag
// so that LabelLength+LabelTagLength matches the 32-byte SHA-256
// output used by the gate encryption function.
func Default() *Params {
	p, ok := new(big.Int).SetString(modp2048, 16)
	if !ok {
		panic("params: invalid embedded MODP prime")
	}
	q := new(big.Int).Rsh(p, 1) // q = (p-1)/2 for a safe prime p = 2q+1

	return &Params{
		P:              p,
		Q:              q,
		G:              big.NewInt(4),
		LabelLength:    16,
		LabelTagLength: 16,
		DummyRHS:       make([]byte, 16),
	}
}
