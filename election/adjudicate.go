//
// adjudicate.go
//
// Copyright (c) 2025 yaovote authors
//
// All rights reserved.
//
// VerifyRow is the shared per-ballot admission check used by both the
// arbiter and voter packages before a row is folded into a tally: it
// must carry a valid registrar blind signature, a valid Tallyer
// signature over (vote, zkp, signature), and a valid disjunctive ZKP.
// Kept here, rather than duplicated per caller, so the three checks
// and their order never drift between adjudication and verification.

package election

import (
	"crypto/rsa"
	"math/big"

	"github.com/sfevote/yaovote/crypto"
	"github.com/sfevote/yaovote/params"
)

// VerifyRow reports whether one persisted ballot passes all three
// admission checks of spec.md §4.6/§7. A failing row is excluded from
// tallying, not treated as a hard error.
func VerifyRow(pp *params.Params, electionPK *big.Int, registrarPK, tallyerPK *rsa.PublicKey, vote *VoteCiphertext, zkp *VoteZKP, unblindedSignature *big.Int, tallyerSignature []byte) bool {
	if !crypto.BlindVerify(registrarPK, vote.Bytes(), unblindedSignature) {
		return false
	}

	payload := append([]byte{}, vote.Bytes()...)
	payload = append(payload, zkp.Bytes()...)
	payload = append(payload, unblindedSignature.Bytes()...)
	if !crypto.Verify(tallyerPK, payload, tallyerSignature) {
		return false
	}

	if err := VerifyVote(pp, electionPK, vote, zkp); err != nil {
		return false
	}
	return true
}
