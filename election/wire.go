//
// wire.go
//
// Copyright (c) 2025 yaovote authors
//
// All rights reserved.
//
// Frame-at-a-time helpers for sending/receiving the election types
// over an already-established secure channel. Each big.Int travels as
// its own frame; crypto.SecureChannel's encrypt-and-tag framing
// already gives every frame integrity, so there is no need for a
// self-describing envelope on top.

package election

import "math/big"

// Channel is the narrow capability these helpers depend on:
// crypto.SecureChannel satisfies it.
type Channel interface {
	Send([]byte) error
	Receive() ([]byte, error)
}

// SendBigInt sends n as one frame.
func SendBigInt(ch Channel, n *big.Int) error {
	return ch.Send(n.Bytes())
}

// ReceiveBigInt receives one frame and parses it as a big-endian
// unsigned integer.
func ReceiveBigInt(ch Channel) (*big.Int, error) {
	b, err := ch.Receive()
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(b), nil
}

// SendVote sends a VoteCiphertext and its VoteZKP as ten consecutive
// frames (A, B, A0, B0, A1, B1, C0, C1, R0, R1).
func SendVote(ch Channel, ct *VoteCiphertext, zkp *VoteZKP) error {
	for _, n := range []*big.Int{ct.A, ct.B, zkp.A0, zkp.B0, zkp.A1, zkp.B1, zkp.C0, zkp.C1, zkp.R0, zkp.R1} {
		if err := SendBigInt(ch, n); err != nil {
			return err
		}
	}
	return nil
}

// ReceiveVote receives the ten frames SendVote writes.
func ReceiveVote(ch Channel) (*VoteCiphertext, *VoteZKP, error) {
	vals := make([]*big.Int, 10)
	for i := range vals {
		n, err := ReceiveBigInt(ch)
		if err != nil {
			return nil, nil, err
		}
		vals[i] = n
	}
	ct := &VoteCiphertext{A: vals[0], B: vals[1]}
	zkp := &VoteZKP{A0: vals[2], B0: vals[3], A1: vals[4], B1: vals[5], C0: vals[6], C1: vals[7], R0: vals[8], R1: vals[9]}
	return ct, zkp, nil
}
