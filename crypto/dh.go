//
// dh.go
//
// Copyright (c) 2025 yaovote authors
//
// All rights reserved.
//

package crypto

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/sfevote/yaovote/params"
)

// DHKeyPair is one party's ephemeral Diffie-Hellman key pair: a
// uniformly random exponent in [2, Q-1] and its public value G^a mod
// P.
type DHKeyPair struct {
	Priv   *big.Int
	Public *big.Int
}

// DHInitialize samples a fresh DH key pair over the group described by
// pp.
func DHInitialize(pp *params.Params) (*DHKeyPair, error) {
	a, err := randRange(pp.Q)
	if err != nil {
		return nil, fmt.Errorf("dh: %w", err)
	}
	pub := new(big.Int).Exp(pp.G, a, pp.P)
	return &DHKeyPair{Priv: a, Public: pub}, nil
}

// DHShared computes the shared secret peer^a mod P for this party's
// exponent a and the peer's public DH value.
func DHShared(pp *params.Params, kp *DHKeyPair, peer *big.Int) *big.Int {
	return new(big.Int).Exp(peer, kp.Priv, pp.P)
}

// randRange samples a uniformly random integer in [2, q-1].
func randRange(q *big.Int) (*big.Int, error) {
	span := new(big.Int).Sub(q, big.NewInt(2)) // upper bound for [0, q-3]
	if span.Sign() < 0 {
		return nil, fmt.Errorf("dh: group order too small")
	}
	r, err := rand.Int(rand.Reader, span)
	if err != nil {
		return nil, err
	}
	return r.Add(r, big.NewInt(2)), nil
}
