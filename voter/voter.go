//
// voter.go
//
// Copyright (c) 2025 yaovote authors
//
// All rights reserved.
//
// Package voter implements the Voter-side actor logic of spec.md
// §4.1/§4.6 and the supplemental verify flow of SPEC_FULL.md §4.7:
// register (blind-sign a freshly encrypted ballot), vote (submit it to
// the Tallyer), and verify (recompute the tally from a vote-store
// snapshot). Grounded on original_source/src/pkg/voter.cxx's
// HandleRegister/HandleVote/HandleVerify, restated over
// crypto.FramedConn rather than a REPL-bound network driver.
package voter

import (
	"crypto/rsa"
	"fmt"
	"math/big"

	"github.com/sfevote/yaovote/crypto"
	"github.com/sfevote/yaovote/election"
	"github.com/sfevote/yaovote/params"
	"github.com/sfevote/yaovote/store"
)

// RegistrarKeys are the Registrar's two RSA public keys: the one that
// authenticates its server-signed DH handshake, and the one under
// which it blind-signs ciphertexts. A deployment MAY use the same key
// for both.
type RegistrarKeys struct {
	HandshakePK *rsa.PublicKey
	BlindPK     *rsa.PublicKey
}

// Registration is the result of a successful Register call: the raw
// vote's ciphertext and ZKP, plus the registrar's unblinded signature
// over the ciphertext, ready to submit to the Tallyer via Vote.
type Registration struct {
	Vote               *election.VoteCiphertext
	ZKP                *election.VoteZKP
	UnblindedSignature *big.Int
}

// Register performs the full client side of spec.md §4.6's
// registration: handshake with the Registrar, encrypt and prove the
// raw vote, blind it, send (voterID, blinded vote), and unblind the
// returned signature.
func Register(pp *params.Params, conn crypto.FramedConn, keys RegistrarKeys, electionPK *big.Int, voterID string, rawVote int) (*Registration, error) {
	ch, err := crypto.ServerSignedHandshakeClient(pp, conn, keys.HandshakePK)
	if err != nil {
		return nil, fmt.Errorf("voter: handshake: %w", err)
	}
	defer ch.Close()

	ct, zkp, err := election.EncryptVote(pp, electionPK, rawVote)
	if err != nil {
		return nil, fmt.Errorf("voter: encrypt vote: %w", err)
	}

	blinded, r, err := crypto.Blind(keys.BlindPK, ct.Bytes())
	if err != nil {
		return nil, fmt.Errorf("voter: blind vote: %w", err)
	}

	if err := ch.Send([]byte(voterID)); err != nil {
		return nil, fmt.Errorf("voter: send voter id: %w", err)
	}
	if err := ch.Send(blinded.Bytes()); err != nil {
		return nil, fmt.Errorf("voter: send blinded vote: %w", err)
	}

	sigBytes, err := ch.Receive()
	if err != nil {
		return nil, fmt.Errorf("voter: receive blind signature: %w", err)
	}
	blindSig := new(big.Int).SetBytes(sigBytes)

	unblinded, err := crypto.Unblind(keys.BlindPK, blindSig, r)
	if err != nil {
		return nil, fmt.Errorf("voter: unblind signature: %w", err)
	}

	return &Registration{Vote: ct, ZKP: zkp, UnblindedSignature: unblinded}, nil
}

// Vote submits a completed registration to the Tallyer and reports
// whether it was accepted.
func Vote(pp *params.Params, conn crypto.FramedConn, tallyerHandshakePK *rsa.PublicKey, reg *Registration) (accepted bool, err error) {
	ch, err := crypto.ServerSignedHandshakeClient(pp, conn, tallyerHandshakePK)
	if err != nil {
		return false, fmt.Errorf("voter: handshake: %w", err)
	}
	defer ch.Close()

	if err := election.SendVote(ch, reg.Vote, reg.ZKP); err != nil {
		return false, fmt.Errorf("voter: send vote: %w", err)
	}
	if err := election.SendBigInt(ch, reg.UnblindedSignature); err != nil {
		return false, fmt.Errorf("voter: send signature: %w", err)
	}

	ack, err := ch.Receive()
	if err != nil {
		return false, fmt.Errorf("voter: receive ack: %w", err)
	}
	return string(ack) == "ACCEPTED", nil
}

// Verify recomputes the election tally from a vote-store snapshot and
// the given (already-verified) arbiter partial decryptions. Rows
// failing their registrar signature, Tallyer signature, or disjunctive
// ZKP are silently excluded. It returns the recovered yes-vote count,
// the number of ballots the tally was computed over, and whether
// recovery succeeded; a failed discrete-log search is a hard error
// per spec.md §7.
func Verify(pp *params.Params, electionPK *big.Int, registrarPK, tallyerPK *rsa.PublicKey, votes store.VoteStore, partials []*election.PartialDecryption) (yesVotes, totalVotes int, ok bool, err error) {
	rows, err := votes.Snapshot()
	if err != nil {
		return 0, 0, false, fmt.Errorf("voter: snapshot votes: %w", err)
	}

	var valid []*election.VoteCiphertext
	for _, row := range rows {
		if !election.VerifyRow(pp, electionPK, registrarPK, tallyerPK, row.Vote, row.ZKP, row.UnblindedSignature, row.TallyerSignature) {
			continue
		}
		valid = append(valid, row.Vote)
	}

	combined := election.CombineVotes(pp, valid)
	tally, err := election.CombineResults(pp, combined, partials, len(valid))
	if err != nil {
		return 0, len(valid), false, fmt.Errorf("voter: %w", err)
	}

	return tally, len(valid), true, nil
}
