//
// channel.go
//
// Copyright (c) 2025 yaovote authors
//
// All rights reserved.
//

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
)

// EncryptAndTag implements the encrypt-then-MAC authenticated message
// primitive: iv || AES-CBC(aesKey, iv, msg) || HMAC-SHA256(hmacKey, iv||ct).
func EncryptAndTag(aesKey, hmacKey, msg []byte) ([]byte, error) {
	block, err := aes.NewCipher(aesKey)
	if err != nil {
		return nil, fmt.Errorf("channel: %w", err)
	}

	padded := pkcs7Pad(msg, block.BlockSize())

	iv := make([]byte, block.BlockSize())
	if _, err := rand.Read(iv); err != nil {
		return nil, fmt.Errorf("channel: %w", err)
	}

	ct := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ct, padded)

	mac := hmac.New(sha256.New, hmacKey)
	mac.Write(iv)
	mac.Write(ct)
	tag := mac.Sum(nil)

	out := make([]byte, 0, len(iv)+len(ct)+len(tag))
	out = append(out, iv...)
	out = append(out, ct...)
	out = append(out, tag...)
	return out, nil
}

// DecryptAndVerify verifies the HMAC tag of an encrypt-then-MAC frame
// and, if it authenticates, decrypts and unpads it. It returns
// ErrMACMismatch when the frame length is malformed, the MAC does not
// verify, or the decrypted padding is invalid; callers MUST treat that
// as fatal to the session.
func DecryptAndVerify(aesKey, hmacKey, frame []byte) (plaintext []byte, err error) {
	block, err := aes.NewCipher(aesKey)
	if err != nil {
		return nil, fmt.Errorf("channel: %w", err)
	}
	blockSize := block.BlockSize()
	const tagLen = sha256.Size

	if len(frame) < blockSize+tagLen || (len(frame)-blockSize-tagLen)%blockSize != 0 {
		return nil, ErrMACMismatch
	}

	iv := frame[:blockSize]
	ct := frame[blockSize : len(frame)-tagLen]
	tag := frame[len(frame)-tagLen:]

	mac := hmac.New(sha256.New, hmacKey)
	mac.Write(iv)
	mac.Write(ct)
	expected := mac.Sum(nil)
	if !hmac.Equal(expected, tag) {
		return nil, ErrMACMismatch
	}

	padded := make([]byte, len(ct))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(padded, ct)

	plaintext, err = pkcs7Unpad(padded)
	if err != nil {
		return nil, ErrMACMismatch
	}
	return plaintext, nil
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	padLen := blockSize - len(data)%blockSize
	padded := make([]byte, len(data)+padLen)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(padLen)
	}
	return padded
}

func pkcs7Unpad(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("channel: empty padded block")
	}
	padLen := int(data[len(data)-1])
	if padLen == 0 || padLen > len(data) {
		return nil, fmt.Errorf("channel: invalid padding")
	}
	return data[:len(data)-padLen], nil
}
