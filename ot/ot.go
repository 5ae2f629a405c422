//
// ot.go
//
// Copyright (c) 2025 yaovote authors
//
// All rights reserved.
//

// Package ot implements the Bellare-Micali style 1-out-of-2 Oblivious
// Transfer protocol of spec.md §4.2, layered atop an already
// established authenticated channel. The sender transfers one of two
// byte-string messages; the receiver learns only the one it selected.
package ot

import (
	"fmt"
	"math/big"

	"github.com/sfevote/yaovote/crypto"
	"github.com/sfevote/yaovote/params"
)

// Channel is the narrow capability the OT driver depends on: an
// already-authenticated message channel. Every message exchanged by
// Send/Receive below MUST already be passing through
// encrypt_and_tag/decrypt_and_verify, which crypto.SecureChannel does;
// an invalid MAC surfaces as crypto.ErrMACMismatch and is always
// fatal to the session.
type Channel interface {
	Send([]byte) error
	Receive() ([]byte, error)
}

// Sender runs the sender side of the OT protocol.
type Sender struct {
	pp *params.Params
	ch Channel
}

// NewSender creates an OT sender over the given authenticated channel.
func NewSender(pp *params.Params, ch Channel) *Sender {
	return &Sender{pp: pp, ch: ch}
}

// Send transfers (m0, m1) such that the receiver obtains exactly the
// message it chose and learns nothing about the other.
func (s *Sender) Send(m0, m1 []byte) error {
	a, err := crypto.DHInitialize(s.pp)
	if err != nil {
		return fmt.Errorf("ot: %w", err)
	}
	if err := s.ch.Send(a.Public.Bytes()); err != nil {
		return err
	}

	bBytes, err := s.ch.Receive()
	if err != nil {
		return err
	}
	b := new(big.Int).SetBytes(bBytes)

	aInv := new(big.Int).ModInverse(a.Public, s.pp.P)
	if aInv == nil {
		return fmt.Errorf("ot: sender public value not invertible mod P")
	}

	k0Point := new(big.Int).Exp(b, a.Priv, s.pp.P)
	bOverA := new(big.Int).Mod(new(big.Int).Mul(b, aInv), s.pp.P)
	k1Point := new(big.Int).Exp(bOverA, a.Priv, s.pp.P)

	k0, err := crypto.DeriveKey(k0Point, "yaovote/ot/k0", 32)
	if err != nil {
		return err
	}
	k1, err := crypto.DeriveKey(k1Point, "yaovote/ot/k1", 32)
	if err != nil {
		return err
	}

	iv0, ct0, err := crypto.AESEncryptCBC(k0, m0)
	if err != nil {
		return err
	}
	iv1, ct1, err := crypto.AESEncryptCBC(k1, m1)
	if err != nil {
		return err
	}

	for _, part := range [][]byte{ct0, iv0, ct1, iv1} {
		if err := s.ch.Send(part); err != nil {
			return err
		}
	}
	return nil
}

// Receiver runs the receiver side of the OT protocol.
type Receiver struct {
	pp *params.Params
	ch Channel
}

// NewReceiver creates an OT receiver over the given authenticated
// channel.
func NewReceiver(pp *params.Params, ch Channel) *Receiver {
	return &Receiver{pp: pp, ch: ch}
}

// Receive obtains m_choice without revealing choice to the sender and
// without learning the other message.
func (r *Receiver) Receive(choice int) ([]byte, error) {
	if choice != 0 && choice != 1 {
		return nil, fmt.Errorf("ot: choice must be 0 or 1, got %d", choice)
	}

	aBytes, err := r.ch.Receive()
	if err != nil {
		return nil, err
	}
	a := new(big.Int).SetBytes(aBytes)

	b, err := crypto.DHInitialize(r.pp)
	if err != nil {
		return nil, fmt.Errorf("ot: %w", err)
	}

	var bPublic *big.Int
	if choice == 0 {
		bPublic = b.Public
	} else {
		bPublic = new(big.Int).Mod(new(big.Int).Mul(a, b.Public), r.pp.P)
	}
	if err := r.ch.Send(bPublic.Bytes()); err != nil {
		return nil, err
	}

	kPoint := new(big.Int).Exp(a, b.Priv, r.pp.P)

	ct0, err := r.ch.Receive()
	if err != nil {
		return nil, err
	}
	iv0, err := r.ch.Receive()
	if err != nil {
		return nil, err
	}
	ct1, err := r.ch.Receive()
	if err != nil {
		return nil, err
	}
	iv1, err := r.ch.Receive()
	if err != nil {
		return nil, err
	}

	var info string
	var iv, ct []byte
	if choice == 0 {
		info, iv, ct = "yaovote/ot/k0", iv0, ct0
	} else {
		info, iv, ct = "yaovote/ot/k1", iv1, ct1
	}
	k, err := crypto.DeriveKey(kPoint, info, 32)
	if err != nil {
		return nil, err
	}
	return crypto.AESDecryptCBC(k, iv, ct)
}
