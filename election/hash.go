//
// hash.go
//
// Copyright (c) 2025 yaovote authors
//
// All rights reserved.
//
// Shared Fiat-Shamir challenge hash for the disjunctive vote proof and
// the Chaum-Pedersen DLEQ proof: SHA-256 over a domain label followed
// by the big-endian bytes of each part, reduced mod Q. Each proof
// system passes its own domain label, which keeps the two from ever
// hashing to the same challenge.

package election

import (
	"crypto/rand"
	"crypto/sha256"
	"math/big"

	"github.com/sfevote/yaovote/params"
)

func fiatShamir(pp *params.Params, domain string, parts ...*big.Int) *big.Int {
	h := sha256.New()
	h.Write([]byte(domain))
	for _, p := range parts {
		h.Write(p.Bytes())
	}
	return new(big.Int).Mod(new(big.Int).SetBytes(h.Sum(nil)), pp.Q)
}

// randMod draws a uniformly random integer in [0, q).
func randMod(q *big.Int) (*big.Int, error) {
	return rand.Int(rand.Reader, q)
}
