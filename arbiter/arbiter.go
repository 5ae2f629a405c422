//
// arbiter.go
//
// Copyright (c) 2025 yaovote authors
//
// All rights reserved.
//
// Package arbiter implements an Arbiter's adjudication step of
// spec.md §4.5/§4.6: read every persisted vote row, drop any that
// fail its registrar blind signature, its Tallyer signature, or its
// disjunctive ZKP, homomorphically combine the survivors, and publish
// a partial decryption with a DLEQ proof. Grounded on
// original_source/src/pkg/arbiter.cxx's HandleAdjudicate.
package arbiter

import (
	"crypto/rsa"
	"fmt"
	"math/big"

	"github.com/sfevote/yaovote/crypto"
	"github.com/sfevote/yaovote/election"
	"github.com/sfevote/yaovote/params"
	"github.com/sfevote/yaovote/store"
)

// Arbiter holds one participant's secret share of the election key.
type Arbiter struct {
	pp          *params.Params
	id          string
	sk          *big.Int
	pk          *big.Int
	electionPK  *big.Int
	registrarPK *rsa.PublicKey
	tallyerPK   *rsa.PublicKey
}

// New creates an Arbiter with secret share sk, public share pk = G^sk,
// the combined election public key electionPK = prod(pk_i), and the
// registrar/tallyer verification keys needed to validate vote rows
// before adjudicating them.
func New(pp *params.Params, id string, sk, pk, electionPK *big.Int, registrarPK, tallyerPK *rsa.PublicKey) *Arbiter {
	return &Arbiter{pp: pp, id: id, sk: sk, pk: pk, electionPK: electionPK, registrarPK: registrarPK, tallyerPK: tallyerPK}
}

// Keygen samples a fresh ElGamal secret/public share pair (sk, G^sk)
// for one arbiter.
func Keygen(pp *params.Params) (sk, pk *big.Int, err error) {
	kp, err := crypto.DHInitialize(pp)
	if err != nil {
		return nil, nil, fmt.Errorf("arbiter: %w", err)
	}
	return kp.Priv, kp.Public, nil
}

// Adjudicate reads every row of votes, drops any that fail
// verification, combines the survivors, computes this arbiter's
// partial decryption of the combination, and appends it to pds.
func (a *Arbiter) Adjudicate(votes store.VoteStore, pds store.PartialDecryptionStore) (*election.PartialDecryption, error) {
	rows, err := votes.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("arbiter: snapshot votes: %w", err)
	}

	var valid []*election.VoteCiphertext
	for _, row := range rows {
		if !a.rowIsValid(row) {
			continue
		}
		valid = append(valid, row.Vote)
	}

	combined := election.CombineVotes(a.pp, valid)

	pd, zkp, err := election.PartialDecrypt(a.pp, combined, a.sk, a.pk)
	if err != nil {
		return nil, fmt.Errorf("arbiter: partial decrypt: %w", err)
	}

	if err := pds.Append(store.PartialDecryptionRow{ArbiterID: a.id, PD: pd, ZKP: zkp}); err != nil {
		return nil, fmt.Errorf("arbiter: persist partial decryption: %w", err)
	}
	return pd, nil
}

func (a *Arbiter) rowIsValid(row store.VoteRow) bool {
	return election.VerifyRow(a.pp, a.electionPK, a.registrarPK, a.tallyerPK,
		row.Vote, row.ZKP, row.UnblindedSignature, row.TallyerSignature)
}
