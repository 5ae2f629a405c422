//
// decrypt_test.go
//
// Copyright (c) 2025 yaovote authors
//
// All rights reserved.
//

package election

import (
	"errors"
	"math/big"
	"testing"

	"github.com/sfevote/yaovote/params"
)

// TestVoteTallyThreeVotersTwoArbiters matches spec.md §8's end-to-end
// scenario: 3 voters cast (0,1,1) under a 2-arbiter threshold key;
// CombineResults recovers 2.
func TestVoteTallyThreeVotersTwoArbiters(t *testing.T) {
	pp := params.Default()

	numArbiters := 2
	sks := make([]*big.Int, numArbiters)
	pks := make([]*big.Int, numArbiters)
	pk := big.NewInt(1)
	for i := range sks {
		sk, arbiterPk := testKeyPair(t, pp)
		sks[i] = sk
		pks[i] = arbiterPk
		pk.Mod(pk.Mul(pk, arbiterPk), pp.P)
	}

	votes := []int{0, 1, 1}
	var cts []*VoteCiphertext
	for _, v := range votes {
		ct, zkp, err := EncryptVote(pp, pk, v)
		if err != nil {
			t.Fatal(err)
		}
		if err := VerifyVote(pp, pk, ct, zkp); err != nil {
			t.Fatalf("vote %d failed verification: %v", v, err)
		}
		cts = append(cts, ct)
	}

	aggregate := CombineVotes(pp, cts)

	var partials []*PartialDecryption
	for i := range sks {
		pd, zkp, err := PartialDecrypt(pp, aggregate, sks[i], pks[i])
		if err != nil {
			t.Fatal(err)
		}
		if err := VerifyPartialDecryption(pp, pks[i], pd, zkp); err != nil {
			t.Fatalf("arbiter %d: DLEQ verify failed: %v", i, err)
		}
		partials = append(partials, pd)
	}

	tally, err := CombineResults(pp, aggregate, partials, len(votes))
	if err != nil {
		t.Fatal(err)
	}
	if tally != 2 {
		t.Fatalf("tally = %d, want 2", tally)
	}
}

func TestVerifyPartialDecryptionRejectsTamperedD(t *testing.T) {
	pp := params.Default()
	sk, pk := testKeyPair(t, pp)

	_, votePk := testKeyPair(t, pp)
	ct, _, err := EncryptVote(pp, votePk, 1)
	if err != nil {
		t.Fatal(err)
	}

	pd, zkp, err := PartialDecrypt(pp, ct, sk, pk)
	if err != nil {
		t.Fatal(err)
	}
	pd.D.Add(pd.D, big.NewInt(1))

	err = VerifyPartialDecryption(pp, pk, pd, zkp)
	if err == nil {
		t.Fatal("expected verify to reject tampered partial decryption")
	}
	if !errors.Is(err, ErrZKPInvalid) {
		t.Fatalf("expected ErrZKPInvalid, got %v", err)
	}
}

func TestCombineResultsFailsWithoutMatch(t *testing.T) {
	pp := params.Default()
	aggregate := &VoteCiphertext{A: big.NewInt(1), B: big.NewInt(12345)}
	if _, err := CombineResults(pp, aggregate, nil, 3); !errors.Is(err, ErrTallyRecovery) {
		t.Fatalf("expected ErrTallyRecovery, got %v", err)
	}
}
