//
// tallyer.go
//
// Copyright (c) 2025 yaovote authors
//
// All rights reserved.
//
// Package tallyer implements the Tallyer side of spec.md §4.6: verify
// a submitted vote's disjunctive ZKP and its registrar blind signature,
// then co-sign and persist it. Grounded on
// original_source/src/pkg/tallyer.cxx's verify-then-sign-then-persist
// sequence.
package tallyer

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"math/big"

	"github.com/sfevote/yaovote/crypto"
	"github.com/sfevote/yaovote/election"
	"github.com/sfevote/yaovote/params"
	"github.com/sfevote/yaovote/store"
)

// Tallyer verifies and co-signs accepted ballots.
type Tallyer struct {
	pp          *params.Params
	serverSK    *rsa.PrivateKey
	sk          *rsa.PrivateKey
	registrarPK *rsa.PublicKey
	electionPK  *big.Int
	votes       store.VoteStore
}

// New creates a Tallyer. serverSK authenticates the handshake; sk
// signs accepted VoteRows; registrarPK verifies each voter's blind
// signature; electionPK verifies each vote's disjunctive ZKP.
func New(pp *params.Params, serverSK, sk *rsa.PrivateKey, registrarPK *rsa.PublicKey, electionPK *big.Int, vs store.VoteStore) *Tallyer {
	return &Tallyer{pp: pp, serverSK: serverSK, sk: sk, registrarPK: registrarPK, electionPK: electionPK, votes: vs}
}

// accepted/rejected acknowledgement bytes sent back to the submitting
// voter.
var (
	ackAccepted = []byte("ACCEPTED")
	ackRejected = []byte("REJECTED")
)

// Handle services one accepted connection: handshake, receive a vote
// submission, verify it, and either persist and acknowledge it or
// reject it without persisting.
func (t *Tallyer) Handle(conn crypto.FramedConn) error {
	ch, err := crypto.ServerSignedHandshakeServer(t.pp, conn, t.serverSK)
	if err != nil {
		return fmt.Errorf("tallyer: handshake: %w", err)
	}
	defer ch.Close()

	vote, zkp, err := election.ReceiveVote(ch)
	if err != nil {
		return fmt.Errorf("tallyer: receive vote: %w", err)
	}
	unblindedSignature, err := election.ReceiveBigInt(ch)
	if err != nil {
		return fmt.Errorf("tallyer: receive unblinded signature: %w", err)
	}
	row := &submission{vote: vote, zkp: zkp, unblindedSignature: unblindedSignature}

	if err := t.verify(row); err != nil {
		if sendErr := ch.Send(ackRejected); sendErr != nil {
			return sendErr
		}
		if errors.Is(err, election.ErrZKPInvalid) || errors.Is(err, crypto.ErrBlindSignatureInvalid) {
			return nil
		}
		return err
	}

	sig, err := crypto.Sign(t.sk, row.signingPayload())
	if err != nil {
		return fmt.Errorf("tallyer: sign vote row: %w", err)
	}

	if err := t.votes.Append(store.VoteRow{
		Vote:               row.vote,
		ZKP:                row.zkp,
		UnblindedSignature: row.unblindedSignature,
		TallyerSignature:   sig,
	}); err != nil {
		return fmt.Errorf("tallyer: persist vote row: %w", err)
	}

	return ch.Send(ackAccepted)
}

// verify checks the vote's disjunctive ZKP under the election key and
// its registrar blind signature over the ciphertext encoding.
func (t *Tallyer) verify(row *submission) error {
	if err := election.VerifyVote(t.pp, t.electionPK, row.vote, row.zkp); err != nil {
		return err
	}
	if !crypto.BlindVerify(t.registrarPK, row.vote.Bytes(), row.unblindedSignature) {
		return fmt.Errorf("tallyer: %w", crypto.ErrBlindSignatureInvalid)
	}
	return nil
}

type submission struct {
	vote               *election.VoteCiphertext
	zkp                *election.VoteZKP
	unblindedSignature *big.Int
}

func (s *submission) signingPayload() []byte {
	buf := append([]byte{}, s.vote.Bytes()...)
	buf = append(buf, s.zkp.Bytes()...)
	buf = append(buf, s.unblindedSignature.Bytes()...)
	return buf
}
