//
// errors.go
//
// Copyright (c) 2025 yaovote authors
//
// All rights reserved.
//

package crypto

import "errors"

// ErrMACMismatch is returned by DecryptAndVerify when the HMAC tag does
// not authenticate the ciphertext. Callers MUST close the connection
// and abort the session; this is always fatal.
var ErrMACMismatch = errors.New("crypto: MAC verification failed")

// ErrHandshakeSignature is returned when a server-signed DH handshake's
// signature does not verify, or the server did not echo the client's
// own public DH value. Fatal to the session.
var ErrHandshakeSignature = errors.New("crypto: handshake signature invalid")

// ErrBlindSignatureInvalid is returned when a blind signature fails
// BlindVerify. The offending vote is rejected, not persisted; it is
// not fatal to the listener.
var ErrBlindSignatureInvalid = errors.New("crypto: blind signature invalid")
