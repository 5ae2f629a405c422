//
// blind.go
//
// Copyright (c) 2025 yaovote authors
//
// All rights reserved.
//

package crypto

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"fmt"
	"math/big"

	"github.com/sfevote/yaovote/pkcs1"
)

// HashForBlindSignature maps an arbitrary message to a full-domain
// hash reduced into Z_N: a SHA-256 digest of msg, formatted into an
// RFC 2313 Type 1 (BT1) encryption block the width of N, the same
// deterministic padding RSA signatures use. Blind and BlindVerify
// both call this same function on the same encoding of the message,
// so the value that gets signed and the value that gets verified
// always come from one serialization.
func HashForBlindSignature(n *big.Int, msg []byte) *big.Int {
	need := (n.BitLen() + 7) / 8
	digest := sha256.Sum256(msg)
	block, err := pkcs1.NewEncryptionBlock(pkcs1.BT1, need, digest[:])
	if err != nil {
		panic(fmt.Sprintf("blind: modulus too small for full-domain hash: %v", err))
	}
	return new(big.Int).Mod(new(big.Int).SetBytes(block), n)
}

// Blind blinds message m under the Registrar's RSA public key,
// returning the blinded value H(m)*r^e mod N, where H is
// HashForBlindSignature, and the blinding factor r
// used to unblind the eventual signature.
func Blind(pub *rsa.PublicKey, m []byte) (blinded, r *big.Int, err error) {
	n := pub.N
	h := HashForBlindSignature(n, m)

	for {
		r, err = rand.Int(rand.Reader, n)
		if err != nil {
			return nil, nil, fmt.Errorf("blind: %w", err)
		}
		if r.Sign() == 0 {
			continue
		}
		if new(big.Int).GCD(nil, nil, r, n).Cmp(big.NewInt(1)) == 0 {
			break
		}
	}

	e := big.NewInt(int64(pub.E))
	rToE := new(big.Int).Exp(r, e, n)
	blinded = new(big.Int).Mod(new(big.Int).Mul(h, rToE), n)
	return blinded, r, nil
}

// BlindSign computes the Registrar's blind signature s' = m'^d mod N
// over an already-blinded message.
func BlindSign(priv *rsa.PrivateKey, blinded *big.Int) *big.Int {
	return new(big.Int).Exp(blinded, priv.D, priv.N)
}

// Unblind removes the blinding factor from a blind signature:
// s = s' * r^-1 mod N.
func Unblind(pub *rsa.PublicKey, blindSig, r *big.Int) (*big.Int, error) {
	rInv := new(big.Int).ModInverse(r, pub.N)
	if rInv == nil {
		return nil, fmt.Errorf("unblind: r not invertible mod N")
	}
	return new(big.Int).Mod(new(big.Int).Mul(blindSig, rInv), pub.N), nil
}

// BlindVerify checks that sig is a valid unblinded RSA signature over
// m's full-domain hash: sig^e ≡ H(m) (mod N).
func BlindVerify(pub *rsa.PublicKey, m []byte, sig *big.Int) bool {
	h := HashForBlindSignature(pub.N, m)
	e := big.NewInt(int64(pub.E))
	got := new(big.Int).Exp(sig, e, pub.N)
	return got.Cmp(h) == 0
}
