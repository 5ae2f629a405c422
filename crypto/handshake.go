//
// handshake.go
//
// Copyright (c) 2025 yaovote authors
//
// All rights reserved.
//

package crypto

import (
	"bytes"
	"crypto/rsa"
	"math/big"

	"github.com/sfevote/yaovote/params"
)

// ServerSignedHandshakeServer performs the server side of the
// server-signed DH handshake (spec.md §4.6): the server sends
// (G^b, G^a, Sign_skServer(G^b || G^a)) so that the client can
// authenticate the server and detect tampering of its own public
// value. Grounded on the teacher's Peer.init() key-exchange-on-accept
// pattern (p2p/network.go), generalized from an RSA-OT public key
// exchange to a signed DH exchange.
func ServerSignedHandshakeServer(pp *params.Params, conn FramedConn, serverSK *rsa.PrivateKey) (*SecureChannel, error) {
	peerPubBytes, err := conn.Receive()
	if err != nil {
		return nil, err
	}

	kp, err := DHInitialize(pp)
	if err != nil {
		return nil, err
	}

	transcript := append(append([]byte{}, kp.Public.Bytes()...), peerPubBytes...)
	sig, err := Sign(serverSK, transcript)
	if err != nil {
		return nil, err
	}

	if err := conn.Send(kp.Public.Bytes()); err != nil {
		return nil, err
	}
	if err := conn.Send(peerPubBytes); err != nil {
		return nil, err
	}
	if err := conn.Send(sig); err != nil {
		return nil, err
	}

	peer := new(big.Int).SetBytes(peerPubBytes)
	shared := DHShared(pp, kp, peer)
	aesKey, hmacKey, err := DeriveChannelKeys(shared)
	if err != nil {
		return nil, err
	}
	return NewSecureChannel(conn, aesKey, hmacKey), nil
}

// ServerSignedHandshakeClient performs the client side of the
// handshake. It verifies the server's signature over (G^b || G^a) and
// that the server echoed back the client's own G^a unmodified;
// ErrHandshakeSignature is fatal and the caller must abort.
func ServerSignedHandshakeClient(pp *params.Params, conn FramedConn, serverPK *rsa.PublicKey) (*SecureChannel, error) {
	kp, err := DHInitialize(pp)
	if err != nil {
		return nil, err
	}
	ownPub := kp.Public.Bytes()

	if err := conn.Send(ownPub); err != nil {
		return nil, err
	}

	serverPubBytes, err := conn.Receive()
	if err != nil {
		return nil, err
	}
	echoedOwn, err := conn.Receive()
	if err != nil {
		return nil, err
	}
	sig, err := conn.Receive()
	if err != nil {
		return nil, err
	}

	if !bytes.Equal(echoedOwn, ownPub) {
		return nil, ErrHandshakeSignature
	}
	transcript := append(append([]byte{}, serverPubBytes...), echoedOwn...)
	if !Verify(serverPK, transcript, sig) {
		return nil, ErrHandshakeSignature
	}

	peer := new(big.Int).SetBytes(serverPubBytes)
	shared := DHShared(pp, kp, peer)
	aesKey, hmacKey, err := DeriveChannelKeys(shared)
	if err != nil {
		return nil, err
	}
	return NewSecureChannel(conn, aesKey, hmacKey), nil
}
