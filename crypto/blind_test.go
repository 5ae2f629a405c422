//
// blind_test.go
//
// Copyright (c) 2025 yaovote authors
//
// All rights reserved.
//

package crypto

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
)

func TestBlindSignRoundTrip(t *testing.T) {
	priv, err := rsa.GenerateKey(rand.Reader, 1024)
	if err != nil {
		t.Fatal(err)
	}
	pub := &priv.PublicKey

	msg := []byte("vote ciphertext encoding")

	blinded, r, err := Blind(pub, msg)
	if err != nil {
		t.Fatal(err)
	}
	blindSig := BlindSign(priv, blinded)
	sig, err := Unblind(pub, blindSig, r)
	if err != nil {
		t.Fatal(err)
	}

	if !BlindVerify(pub, msg, sig) {
		t.Fatal("blind signature failed to verify")
	}
}

func TestBlindVerifyRejectsWrongMessage(t *testing.T) {
	priv, err := rsa.GenerateKey(rand.Reader, 1024)
	if err != nil {
		t.Fatal(err)
	}
	pub := &priv.PublicKey

	blinded, r, err := Blind(pub, []byte("vote=0"))
	if err != nil {
		t.Fatal(err)
	}
	blindSig := BlindSign(priv, blinded)
	sig, err := Unblind(pub, blindSig, r)
	if err != nil {
		t.Fatal(err)
	}

	if BlindVerify(pub, []byte("vote=1"), sig) {
		t.Fatal("blind signature verified against a different message")
	}
}

func TestSignVerifyRoundTrip(t *testing.T) {
	priv, err := rsa.GenerateKey(rand.Reader, 1024)
	if err != nil {
		t.Fatal(err)
	}
	msg := []byte("tallyer accepts this ballot")

	sig, err := Sign(priv, msg)
	if err != nil {
		t.Fatal(err)
	}
	if !Verify(&priv.PublicKey, msg, sig) {
		t.Fatal("signature failed to verify")
	}
	if Verify(&priv.PublicKey, []byte("different"), sig) {
		t.Fatal("signature verified over the wrong message")
	}
}
