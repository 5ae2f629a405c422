//
// rsa.go
//
// Copyright (c) 2025 yaovote authors
//
// All rights reserved.
//

package crypto

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"fmt"
)

// Sign produces a PKCS#1 v1.5 RSA signature over the SHA-256 digest of
// msg.
func Sign(priv *rsa.PrivateKey, msg []byte) ([]byte, error) {
	digest := sha256.Sum256(msg)
	sig, err := rsa.SignPKCS1v15(rand.Reader, priv, crypto.SHA256, digest[:])
	if err != nil {
		return nil, fmt.Errorf("rsa: sign: %w", err)
	}
	return sig, nil
}

// Verify checks a PKCS#1 v1.5 RSA signature over the SHA-256 digest of
// msg.
func Verify(pub *rsa.PublicKey, msg, sig []byte) bool {
	digest := sha256.Sum256(msg)
	return rsa.VerifyPKCS1v15(pub, crypto.SHA256, digest[:], sig) == nil
}
