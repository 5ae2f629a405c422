//
// securechannel.go
//
// Copyright (c) 2025 yaovote authors
//
// All rights reserved.
//

package crypto

import (
	"fmt"
	"math/big"

	"github.com/sfevote/yaovote/params"
)

// FramedConn is the narrow transport capability a SecureChannel is
// layered over: send one message, receive one message, close. p2p.Conn
// satisfies this.
type FramedConn interface {
	Send([]byte) error
	Receive() ([]byte, error)
	Close() error
}

// SecureChannel is the authenticated-channel capability described in
// spec.md §4.1: every message is encrypted with AES-CBC and tagged
// with HMAC-SHA256 under a pair of keys derived from a prior DH
// handshake. It is the "Channel {send, read, close}" capability that
// the OT driver and the election actors depend on (spec.md §9).
type SecureChannel struct {
	conn    FramedConn
	aesKey  []byte
	hmacKey []byte
}

// NewSecureChannel wraps conn with the given channel keys.
func NewSecureChannel(conn FramedConn, aesKey, hmacKey []byte) *SecureChannel {
	return &SecureChannel{conn: conn, aesKey: aesKey, hmacKey: hmacKey}
}

// Send encrypts-and-tags msg and sends it as one framed message.
func (c *SecureChannel) Send(msg []byte) error {
	frame, err := EncryptAndTag(c.aesKey, c.hmacKey, msg)
	if err != nil {
		return err
	}
	return c.conn.Send(frame)
}

// Receive reads one framed message and decrypts-and-verifies it. A MAC
// mismatch is always fatal: the caller must close the channel and
// abort the session.
func (c *SecureChannel) Receive() ([]byte, error) {
	frame, err := c.conn.Receive()
	if err != nil {
		return nil, err
	}
	msg, err := DecryptAndVerify(c.aesKey, c.hmacKey, frame)
	if err != nil {
		c.conn.Close()
		return nil, fmt.Errorf("securechannel: %w", ErrMACMismatch)
	}
	return msg, nil
}

// Close closes the underlying transport.
func (c *SecureChannel) Close() error {
	return c.conn.Close()
}

// EstablishClient performs the client side of an (unsigned) DH key
// agreement over conn and returns the resulting SecureChannel. Used by
// peer-to-peer sessions (Garbler/Evaluator) that have no server
// identity to authenticate.
func EstablishClient(pp *params.Params, conn FramedConn) (*SecureChannel, error) {
	kp, err := DHInitialize(pp)
	if err != nil {
		return nil, err
	}
	if err := conn.Send(kp.Public.Bytes()); err != nil {
		return nil, err
	}
	peerBytes, err := conn.Receive()
	if err != nil {
		return nil, err
	}
	peer := new(big.Int).SetBytes(peerBytes)
	shared := DHShared(pp, kp, peer)
	aesKey, hmacKey, err := DeriveChannelKeys(shared)
	if err != nil {
		return nil, err
	}
	return NewSecureChannel(conn, aesKey, hmacKey), nil
}

// EstablishServer performs the server side of the same unsigned DH key
// agreement.
func EstablishServer(pp *params.Params, conn FramedConn) (*SecureChannel, error) {
	kp, err := DHInitialize(pp)
	if err != nil {
		return nil, err
	}
	peerBytes, err := conn.Receive()
	if err != nil {
		return nil, err
	}
	if err := conn.Send(kp.Public.Bytes()); err != nil {
		return nil, err
	}
	peer := new(big.Int).SetBytes(peerBytes)
	shared := DHShared(pp, kp, peer)
	aesKey, hmacKey, err := DeriveChannelKeys(shared)
	if err != nil {
		return nil, err
	}
	return NewSecureChannel(conn, aesKey, hmacKey), nil
}
