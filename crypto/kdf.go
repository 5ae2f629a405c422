//
// kdf.go
//
// Copyright (c) 2025 yaovote authors
//
// All rights reserved.
//

package crypto

import (
	"crypto/sha256"
	"io"
	"math/big"

	"golang.org/x/crypto/hkdf"
)

// DeriveKey derives a single domain-separated symmetric key of the
// given length from a DH shared secret, using HKDF-SHA256 with info as
// the domain-separation label. Used by the OT driver to turn a group
// element into a one-time encryption key for a transferred message.
func DeriveKey(secret *big.Int, info string, length int) ([]byte, error) {
	kdf := hkdf.New(sha256.New, secret.Bytes(), nil, []byte(info))
	key := make([]byte, length)
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, err
	}
	return key, nil
}

// DeriveChannelKeys derives the independent AES-256 and HMAC-SHA256
// keys used by the authenticated channel from a DH shared secret, by
// distinct domain-separated HKDF expansions of the same secret.
func DeriveChannelKeys(secret *big.Int) (aesKey, hmacKey []byte, err error) {
	aesKey, err = DeriveKey(secret, "yaovote/channel/aes", 32)
	if err != nil {
		return nil, nil, err
	}
	hmacKey, err = DeriveKey(secret, "yaovote/channel/hmac", 32)
	if err != nil {
		return nil, nil, err
	}
	return aesKey, hmacKey, nil
}
