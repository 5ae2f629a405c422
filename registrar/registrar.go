//
// registrar.go
//
// Copyright (c) 2025 yaovote authors
//
// All rights reserved.
//
// Package registrar implements the Registrar side of the blind-signing
// flow of spec.md §4.6: authenticate via the server-signed DH
// handshake, then blind-sign each voter's ciphertext exactly once,
// returning the same signature on any later re-registration. Actor
// logic is grounded on original_source/src/pkg/registrar.cxx's
// accept/handshake/read/sign/respond sequence, restated as plain Go
// over the crypto.FramedConn capability rather than a REPL-bound
// network driver.
package registrar

import (
	"crypto/rsa"
	"fmt"
	"math/big"

	"github.com/sfevote/yaovote/crypto"
	"github.com/sfevote/yaovote/params"
	"github.com/sfevote/yaovote/store"
)

// Registrar blind-signs voter ciphertexts under sk, persisting one
// signature per voter id.
type Registrar struct {
	pp       *params.Params
	sk       *rsa.PrivateKey
	serverSK *rsa.PrivateKey
	store    store.VoterStore
}

// New creates a Registrar. serverSK authenticates the DH handshake;
// sk is the RSA key used for blind-signing voter ciphertexts (the two
// MAY be the same key, but are kept distinct here since a compromised
// blind-signing key should not also unmask the server's handshake
// identity).
func New(pp *params.Params, serverSK, sk *rsa.PrivateKey, vs store.VoterStore) *Registrar {
	return &Registrar{pp: pp, sk: sk, serverSK: serverSK, store: vs}
}

// Handle services one accepted connection end to end: handshake,
// receive (voter_id, blinded_vote), sign or return the existing
// signature, and reply.
func (r *Registrar) Handle(conn crypto.FramedConn) error {
	ch, err := crypto.ServerSignedHandshakeServer(r.pp, conn, r.serverSK)
	if err != nil {
		return fmt.Errorf("registrar: handshake: %w", err)
	}
	defer ch.Close()

	idBytes, err := ch.Receive()
	if err != nil {
		return fmt.Errorf("registrar: receive voter id: %w", err)
	}
	blindedBytes, err := ch.Receive()
	if err != nil {
		return fmt.Errorf("registrar: receive blinded vote: %w", err)
	}
	blinded := new(big.Int).SetBytes(blindedBytes)

	sig, err := r.register(string(idBytes), blinded)
	if err != nil {
		return err
	}

	if err := ch.Send(sig.Bytes()); err != nil {
		return fmt.Errorf("registrar: send signature: %w", err)
	}
	return nil
}

// register is the idempotent core: the first call for a given voter
// id signs and persists; every later call for the same id returns the
// signature already on file, without re-signing (spec.md §4.6 step 3).
func (r *Registrar) register(voterID string, blinded *big.Int) (*big.Int, error) {
	if existing, ok, err := r.store.Get(voterID); err != nil {
		return nil, fmt.Errorf("registrar: store lookup: %w", err)
	} else if ok {
		return existing, nil
	}

	sig := crypto.BlindSign(r.sk, blinded)
	stored, err := r.store.PutIfAbsent(voterID, sig)
	if err != nil {
		return nil, fmt.Errorf("registrar: store write: %w", err)
	}
	return stored, nil
}
