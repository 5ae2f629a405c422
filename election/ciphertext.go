//
// ciphertext.go
//
// Copyright (c) 2025 yaovote authors
//
// All rights reserved.
//
// Package election implements the ElGamal homomorphic-tally e-voting
// primitives of spec.md §4.5: single-bit vote encryption with a
// disjunctive zero-knowledge proof, homomorphic combination of
// ciphertexts, per-arbiter partial decryption with a Chaum-Pedersen
// DLEQ proof, and final-tally recovery by a bounded discrete-log
// search. The modular-exponentiation idiom is grounded on the
// teacher's raw big.Int arithmetic style, generalized from an RSA
// group to the prime-order subgroup described by params.Params.
package election

import (
	"fmt"
	"math/big"

	"github.com/sfevote/yaovote/params"
)

// VoteCiphertext is an ElGamal encryption of a single bit: a = G^r,
// b = pk^r * G^v.
type VoteCiphertext struct {
	A *big.Int
	B *big.Int
}

// VoteZKP is a non-interactive disjunctive proof that a VoteCiphertext
// encrypts 0 or 1, without revealing which.
type VoteZKP struct {
	A0, B0 *big.Int
	A1, B1 *big.Int
	C0, C1 *big.Int
	R0, R1 *big.Int
}

// EncryptVote encrypts a single-bit vote v under the election public
// key pk and produces a disjunctive proof that the result encrypts 0
// or 1.
func EncryptVote(pp *params.Params, pk *big.Int, v int) (*VoteCiphertext, *VoteZKP, error) {
	if v != 0 && v != 1 {
		return nil, nil, fmt.Errorf("election: vote must be 0 or 1, got %d", v)
	}

	r, err := randMod(pp.Q)
	if err != nil {
		return nil, nil, fmt.Errorf("election: %w", err)
	}

	a := new(big.Int).Exp(pp.G, r, pp.P)
	gv := new(big.Int).Exp(pp.G, big.NewInt(int64(v)), pp.P)
	b := new(big.Int).Mod(new(big.Int).Mul(new(big.Int).Exp(pk, r, pp.P), gv), pp.P)
	ct := &VoteCiphertext{A: a, B: b}

	other := 1 - v

	// Honest branch for v.
	rv, err := randMod(pp.Q)
	if err != nil {
		return nil, nil, fmt.Errorf("election: %w", err)
	}
	Av := new(big.Int).Exp(pp.G, rv, pp.P)
	Bv := new(big.Int).Exp(pk, rv, pp.P)

	// Simulated branch for 1-v.
	cOther, err := randMod(pp.Q)
	if err != nil {
		return nil, nil, fmt.Errorf("election: %w", err)
	}
	rOther, err := randMod(pp.Q)
	if err != nil {
		return nil, nil, fmt.Errorf("election: %w", err)
	}

	aInv := modInverse(a, pp.P)
	Aother := new(big.Int).Mod(new(big.Int).Mul(
		new(big.Int).Exp(pp.G, rOther, pp.P),
		new(big.Int).Exp(aInv, cOther, pp.P),
	), pp.P)

	gOther := new(big.Int).Exp(pp.G, big.NewInt(int64(other)), pp.P)
	bOverGOther := new(big.Int).Mod(new(big.Int).Mul(b, modInverse(gOther, pp.P)), pp.P)
	bOverGOtherInv := modInverse(bOverGOther, pp.P)
	Bother := new(big.Int).Mod(new(big.Int).Mul(
		new(big.Int).Exp(pk, rOther, pp.P),
		new(big.Int).Exp(bOverGOtherInv, cOther, pp.P),
	), pp.P)

	var A0, B0, A1, B1 *big.Int
	if v == 0 {
		A0, B0 = Av, Bv
		A1, B1 = Aother, Bother
	} else {
		A1, B1 = Av, Bv
		A0, B0 = Aother, Bother
	}

	c := fiatShamir(pp, "yaovote/election/vote-zkp", pk, a, b, A0, B0, A1, B1)
	cv := new(big.Int).Mod(new(big.Int).Sub(c, cOther), pp.Q)
	rv2 := new(big.Int).Mod(new(big.Int).Add(rv, new(big.Int).Mul(cv, r)), pp.Q)

	var c0, c1, r0, r1 *big.Int
	if v == 0 {
		c0, r0 = cv, rv2
		c1, r1 = cOther, rOther
	} else {
		c1, r1 = cv, rv2
		c0, r0 = cOther, rOther
	}

	return ct, &VoteZKP{A0: A0, B0: B0, A1: A1, B1: B1, C0: c0, C1: c1, R0: r0, R1: r1}, nil
}

// modInverse returns x^-1 mod m, panicking if x shares a factor with m
// (which would mean the group parameters themselves are broken, not a
// recoverable runtime condition).
func modInverse(x, m *big.Int) *big.Int {
	inv := new(big.Int).ModInverse(x, m)
	if inv == nil {
		panic("election: modular inverse does not exist")
	}
	return inv
}
