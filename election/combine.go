//
// combine.go
//
// Copyright (c) 2025 yaovote authors
//
// All rights reserved.
//

package election

import (
	"math/big"

	"github.com/sfevote/yaovote/params"
)

// CombineVotes homomorphically combines a set of vote ciphertexts into
// one ciphertext encrypting the sum of the individual plaintexts mod
// Q: combine({(a_i,b_i)}) = (prod a_i, prod b_i) mod P.
func CombineVotes(pp *params.Params, votes []*VoteCiphertext) *VoteCiphertext {
	a := big.NewInt(1)
	b := big.NewInt(1)
	for _, v := range votes {
		a.Mod(a.Mul(a, v.A), pp.P)
		b.Mod(b.Mul(b, v.B), pp.P)
	}
	return &VoteCiphertext{A: a, B: b}
}
