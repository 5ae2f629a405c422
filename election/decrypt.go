//
// decrypt.go
//
// Copyright (c) 2025 yaovote authors
//
// All rights reserved.
//
// Per-arbiter partial decryption with a Chaum-Pedersen DLEQ proof, and
// final-tally recovery by a bounded discrete-log search. CombineResults
// bounds its search by the caller-supplied ballot count, resolving the
// "astronomically large DL_Q" issue named in spec.md §9.

package election

import (
	"fmt"
	"math/big"

	"github.com/sfevote/yaovote/params"
)

// PartialDecryption is one arbiter's share of decrypting an aggregate
// ciphertext: d = a^sk_i mod P, together with the aggregate (a, b) it
// was computed over.
type PartialDecryption struct {
	D *big.Int
	A *big.Int
	B *big.Int
}

// DecryptionZKP is a Chaum-Pedersen proof that log_a(d) = log_G(pk_i).
type DecryptionZKP struct {
	U *big.Int
	V *big.Int
	S *big.Int
}

// PartialDecrypt computes arbiter i's partial decryption of the
// aggregate ciphertext and a DLEQ proof that it was computed honestly
// under the secret share ski whose public share is pki = G^ski.
func PartialDecrypt(pp *params.Params, aggregate *VoteCiphertext, ski, pki *big.Int) (*PartialDecryption, *DecryptionZKP, error) {
	d := new(big.Int).Exp(aggregate.A, ski, pp.P)

	r, err := randMod(pp.Q)
	if err != nil {
		return nil, nil, fmt.Errorf("election: %w", err)
	}
	u := new(big.Int).Exp(aggregate.A, r, pp.P)
	v := new(big.Int).Exp(pp.G, r, pp.P)

	sigma := fiatShamir(pp, "yaovote/election/dleq", pki, aggregate.A, aggregate.B, u, v)
	s := new(big.Int).Mod(new(big.Int).Add(r, new(big.Int).Mul(sigma, ski)), pp.Q)

	pd := &PartialDecryption{D: d, A: aggregate.A, B: aggregate.B}
	zkp := &DecryptionZKP{U: u, V: v, S: s}
	return pd, zkp, nil
}

// VerifyPartialDecryption checks a DLEQ proof attached to a partial
// decryption, returning nil on success or an error wrapping
// ErrZKPInvalid naming the failing clause.
func VerifyPartialDecryption(pp *params.Params, pki *big.Int, pd *PartialDecryption, zkp *DecryptionZKP) error {
	sigma := fiatShamir(pp, "yaovote/election/dleq", pki, pd.A, pd.B, zkp.U, zkp.V)

	lhs := new(big.Int).Exp(pd.A, zkp.S, pp.P)
	rhs := new(big.Int).Mod(new(big.Int).Mul(zkp.U, new(big.Int).Exp(pd.D, sigma, pp.P)), pp.P)
	if lhs.Cmp(rhs) != 0 {
		return fmt.Errorf("election: clause a^s != u*d^sigma: %w", ErrZKPInvalid)
	}

	lhs = new(big.Int).Exp(pp.G, zkp.S, pp.P)
	rhs = new(big.Int).Mod(new(big.Int).Mul(zkp.V, new(big.Int).Exp(pki, sigma, pp.P)), pp.P)
	if lhs.Cmp(rhs) != 0 {
		return fmt.Errorf("election: clause G^s != v*pk_i^sigma: %w", ErrZKPInvalid)
	}

	return nil
}

// CombineResults recovers the plaintext tally from the aggregate
// ciphertext and the set of (already-verified) partial decryptions, by
// searching for tally in [0, maxBallots] such that G^tally = b / D,
// where D is the product of the partial decryptions. maxBallots SHOULD
// be the number of accepted ballots, not the full group order, per
// spec.md §9.
func CombineResults(pp *params.Params, aggregate *VoteCiphertext, partials []*PartialDecryption, maxBallots int) (int, error) {
	d := big.NewInt(1)
	for _, pd := range partials {
		d.Mod(d.Mul(d, pd.D), pp.P)
	}

	gTally := new(big.Int).Mod(new(big.Int).Mul(aggregate.B, modInverse(d, pp.P)), pp.P)

	candidate := big.NewInt(1) // G^0
	if maxBallots < 0 {
		return 0, fmt.Errorf("election: negative search bound %d", maxBallots)
	}
	for tally := 0; tally <= maxBallots; tally++ {
		if candidate.Cmp(gTally) == 0 {
			return tally, nil
		}
		candidate.Mod(candidate.Mul(candidate, pp.G), pp.P)
	}
	return 0, fmt.Errorf("election: no match for any tally in [0,%d]: %w", maxBallots, ErrTallyRecovery)
}
