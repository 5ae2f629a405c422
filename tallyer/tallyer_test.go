//
// tallyer_test.go
//
// Copyright (c) 2025 yaovote authors
//
// All rights reserved.
//

package tallyer

import (
	"crypto/rand"
	"crypto/rsa"
	"math/big"
	"sync"
	"testing"

	"github.com/sfevote/yaovote/crypto"
	"github.com/sfevote/yaovote/election"
	"github.com/sfevote/yaovote/p2p"
	"github.com/sfevote/yaovote/params"
	"github.com/sfevote/yaovote/store"
)

func runSubmit(t *testing.T, tl *Tallyer, pp *params.Params, serverPK *rsa.PublicKey, ct *election.VoteCiphertext, zkp *election.VoteZKP, unblinded *big.Int) string {
	t.Helper()
	conn0, conn1 := p2p.Pipe()

	var wg sync.WaitGroup
	wg.Add(2)

	var serveErr error
	go func() {
		defer wg.Done()
		serveErr = tl.Handle(conn0)
	}()

	var ack string
	var clientErr error
	go func() {
		defer wg.Done()
		ch, err := crypto.ServerSignedHandshakeClient(pp, conn1, serverPK)
		if err != nil {
			clientErr = err
			return
		}
		defer ch.Close()
		if err := election.SendVote(ch, ct, zkp); err != nil {
			clientErr = err
			return
		}
		if err := election.SendBigInt(ch, unblinded); err != nil {
			clientErr = err
			return
		}
		ackBytes, err := ch.Receive()
		if err != nil {
			clientErr = err
			return
		}
		ack = string(ackBytes)
	}()

	wg.Wait()
	if serveErr != nil {
		t.Fatalf("tallyer: %v", serveErr)
	}
	if clientErr != nil {
		t.Fatalf("client: %v", clientErr)
	}
	return ack
}

func TestTallyerAcceptsValidVote(t *testing.T) {
	pp := params.Default()
	serverSK, err := rsa.GenerateKey(rand.Reader, 1024)
	if err != nil {
		t.Fatal(err)
	}
	registrarSK, err := rsa.GenerateKey(rand.Reader, 1024)
	if err != nil {
		t.Fatal(err)
	}

	kp, err := crypto.DHInitialize(pp)
	if err != nil {
		t.Fatal(err)
	}
	electionPK := kp.Public

	ct, zkp, err := election.EncryptVote(pp, electionPK, 1)
	if err != nil {
		t.Fatal(err)
	}
	blinded, r, err := crypto.Blind(&registrarSK.PublicKey, ct.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	blindSig := crypto.BlindSign(registrarSK, blinded)
	unblinded, err := crypto.Unblind(&registrarSK.PublicKey, blindSig, r)
	if err != nil {
		t.Fatal(err)
	}

	vs := store.NewMemVoteStore()
	tl := New(pp, serverSK, serverSK, &registrarSK.PublicKey, electionPK, vs)

	ack := runSubmit(t, tl, pp, &serverSK.PublicKey, ct, zkp, unblinded)
	if ack != "ACCEPTED" {
		t.Fatalf("ack = %q, want ACCEPTED", ack)
	}

	rows, err := vs.Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1", len(rows))
	}

	row := rows[0]
	payload := append([]byte{}, row.Vote.Bytes()...)
	payload = append(payload, row.ZKP.Bytes()...)
	payload = append(payload, row.UnblindedSignature.Bytes()...)
	if !crypto.Verify(&serverSK.PublicKey, payload, row.TallyerSignature) {
		t.Fatal("persisted TallyerSignature does not verify")
	}
}

func TestTallyerRejectsUnblindSignatureMismatch(t *testing.T) {
	pp := params.Default()
	serverSK, err := rsa.GenerateKey(rand.Reader, 1024)
	if err != nil {
		t.Fatal(err)
	}
	registrarSK, err := rsa.GenerateKey(rand.Reader, 1024)
	if err != nil {
		t.Fatal(err)
	}

	kp, err := crypto.DHInitialize(pp)
	if err != nil {
		t.Fatal(err)
	}
	electionPK := kp.Public

	ct, zkp, err := election.EncryptVote(pp, electionPK, 0)
	if err != nil {
		t.Fatal(err)
	}
	blinded, r, err := crypto.Blind(&registrarSK.PublicKey, ct.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	blindSig := crypto.BlindSign(registrarSK, blinded)
	unblinded, err := crypto.Unblind(&registrarSK.PublicKey, blindSig, r)
	if err != nil {
		t.Fatal(err)
	}
	unblinded.Add(unblinded, big.NewInt(1))

	vs := store.NewMemVoteStore()
	tl := New(pp, serverSK, serverSK, &registrarSK.PublicKey, electionPK, vs)

	ack := runSubmit(t, tl, pp, &serverSK.PublicKey, ct, zkp, unblinded)
	if ack != "REJECTED" {
		t.Fatalf("ack = %q, want REJECTED", ack)
	}

	rows, err := vs.Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 0 {
		t.Fatalf("len(rows) = %d, want 0", len(rows))
	}
}

func TestTallyerRejectsTamperedZKP(t *testing.T) {
	pp := params.Default()
	serverSK, err := rsa.GenerateKey(rand.Reader, 1024)
	if err != nil {
		t.Fatal(err)
	}
	registrarSK, err := rsa.GenerateKey(rand.Reader, 1024)
	if err != nil {
		t.Fatal(err)
	}

	kp, err := crypto.DHInitialize(pp)
	if err != nil {
		t.Fatal(err)
	}
	electionPK := kp.Public

	ct, zkp, err := election.EncryptVote(pp, electionPK, 1)
	if err != nil {
		t.Fatal(err)
	}
	zkp.C0.Add(zkp.C0, big.NewInt(1))

	blinded, r, err := crypto.Blind(&registrarSK.PublicKey, ct.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	blindSig := crypto.BlindSign(registrarSK, blinded)
	unblinded, err := crypto.Unblind(&registrarSK.PublicKey, blindSig, r)
	if err != nil {
		t.Fatal(err)
	}

	vs := store.NewMemVoteStore()
	tl := New(pp, serverSK, serverSK, &registrarSK.PublicKey, electionPK, vs)

	ack := runSubmit(t, tl, pp, &serverSK.PublicKey, ct, zkp, unblinded)
	if ack != "REJECTED" {
		t.Fatalf("ack = %q, want REJECTED", ack)
	}
}
