//
// integration_test.go
//
// Copyright (c) 2025 yaovote authors
//
// All rights reserved.
//
// End-to-end election scenario matching spec.md §8: three voters cast
// (0, 1, 1) under a two-arbiter threshold key; the recovered tally is
// 2 out of 3 valid ballots.

package voter

import (
	"crypto/rand"
	"crypto/rsa"
	"math/big"
	"sync"
	"testing"

	"github.com/sfevote/yaovote/arbiter"
	"github.com/sfevote/yaovote/election"
	"github.com/sfevote/yaovote/p2p"
	"github.com/sfevote/yaovote/params"
	"github.com/sfevote/yaovote/registrar"
	"github.com/sfevote/yaovote/store"
	"github.com/sfevote/yaovote/tallyer"
)

func doRegister(t *testing.T, pp *params.Params, reg *registrar.Registrar, keys RegistrarKeys, electionPK *big.Int, id string, v int) *Registration {
	t.Helper()
	conn0, conn1 := p2p.Pipe()

	var wg sync.WaitGroup
	wg.Add(2)

	var serveErr error
	go func() {
		defer wg.Done()
		serveErr = reg.Handle(conn0)
	}()

	var result *Registration
	var clientErr error
	go func() {
		defer wg.Done()
		result, clientErr = Register(pp, conn1, keys, electionPK, id, v)
	}()

	wg.Wait()
	if serveErr != nil {
		t.Fatalf("registrar: %v", serveErr)
	}
	if clientErr != nil {
		t.Fatalf("voter register: %v", clientErr)
	}
	return result
}

func doVote(t *testing.T, pp *params.Params, tl *tallyer.Tallyer, handshakePK *rsa.PublicKey, reg *Registration) bool {
	t.Helper()
	conn0, conn1 := p2p.Pipe()

	var wg sync.WaitGroup
	wg.Add(2)

	var serveErr error
	go func() {
		defer wg.Done()
		serveErr = tl.Handle(conn0)
	}()

	var accepted bool
	var clientErr error
	go func() {
		defer wg.Done()
		accepted, clientErr = Vote(pp, conn1, handshakePK, reg)
	}()

	wg.Wait()
	if serveErr != nil {
		t.Fatalf("tallyer: %v", serveErr)
	}
	if clientErr != nil {
		t.Fatalf("voter vote: %v", clientErr)
	}
	return accepted
}

func TestElectionEndToEnd(t *testing.T) {
	pp := params.Default()

	registrarKey, err := rsa.GenerateKey(rand.Reader, 1024)
	if err != nil {
		t.Fatal(err)
	}
	tallyerKey, err := rsa.GenerateKey(rand.Reader, 1024)
	if err != nil {
		t.Fatal(err)
	}

	const numArbiters = 2
	type arbiterKeys struct {
		id string
		sk *big.Int
		pk *big.Int
	}
	arbiters := make([]arbiterKeys, numArbiters)
	electionPK := big.NewInt(1)
	for i := range arbiters {
		sk, pk, err := arbiter.Keygen(pp)
		if err != nil {
			t.Fatal(err)
		}
		arbiters[i] = arbiterKeys{id: string(rune('A' + i)), sk: sk, pk: pk}
		electionPK.Mod(electionPK.Mul(electionPK, pk), pp.P)
	}

	voterStore := store.NewMemVoterStore()
	voteStore := store.NewMemVoteStore()
	pdStore := store.NewMemPartialDecryptionStore()

	reg := registrar.New(pp, registrarKey, registrarKey, voterStore)
	tl := tallyer.New(pp, tallyerKey, tallyerKey, &registrarKey.PublicKey, electionPK, voteStore)

	regKeys := RegistrarKeys{HandshakePK: &registrarKey.PublicKey, BlindPK: &registrarKey.PublicKey}

	votes := []struct {
		id string
		v  int
	}{
		{"voter-0", 0},
		{"voter-1", 1},
		{"voter-2", 1},
	}

	for _, tc := range votes {
		registration := doRegister(t, pp, reg, regKeys, electionPK, tc.id, tc.v)
		accepted := doVote(t, pp, tl, &tallyerKey.PublicKey, registration)
		if !accepted {
			t.Fatalf("vote for %s was not accepted", tc.id)
		}
	}

	var partials []*election.PartialDecryption
	for _, ak := range arbiters {
		a := arbiter.New(pp, ak.id, ak.sk, ak.pk, electionPK, &registrarKey.PublicKey, &tallyerKey.PublicKey)
		pd, err := a.Adjudicate(voteStore, pdStore)
		if err != nil {
			t.Fatalf("arbiter %s: %v", ak.id, err)
		}
		partials = append(partials, pd)
	}

	yes, total, ok, err := Verify(pp, electionPK, &registrarKey.PublicKey, &tallyerKey.PublicKey, voteStore, partials)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("Verify returned ok=false")
	}
	if total != 3 {
		t.Fatalf("total = %d, want 3", total)
	}
	if yes != 2 {
		t.Fatalf("yes = %d, want 2", yes)
	}
}

func TestElectionDropsTamperedVote(t *testing.T) {
	pp := params.Default()

	registrarKey, err := rsa.GenerateKey(rand.Reader, 1024)
	if err != nil {
		t.Fatal(err)
	}
	tallyerKey, err := rsa.GenerateKey(rand.Reader, 1024)
	if err != nil {
		t.Fatal(err)
	}

	sk, pk, err := arbiter.Keygen(pp)
	if err != nil {
		t.Fatal(err)
	}
	electionPK := pk

	voterStore := store.NewMemVoterStore()
	voteStore := store.NewMemVoteStore()
	pdStore := store.NewMemPartialDecryptionStore()

	reg := registrar.New(pp, registrarKey, registrarKey, voterStore)
	tl := tallyer.New(pp, tallyerKey, tallyerKey, &registrarKey.PublicKey, electionPK, voteStore)
	regKeys := RegistrarKeys{HandshakePK: &registrarKey.PublicKey, BlindPK: &registrarKey.PublicKey}

	good := doRegister(t, pp, reg, regKeys, electionPK, "voter-0", 1)
	if !doVote(t, pp, tl, &tallyerKey.PublicKey, good) {
		t.Fatal("expected good vote to be accepted")
	}

	tampered := doRegister(t, pp, reg, regKeys, electionPK, "voter-1", 1)
	tampered.ZKP.C0.Add(tampered.ZKP.C0, big.NewInt(1))
	if doVote(t, pp, tl, &tallyerKey.PublicKey, tampered) {
		t.Fatal("expected tampered vote to be rejected")
	}

	a := arbiter.New(pp, "A", sk, pk, electionPK, &registrarKey.PublicKey, &tallyerKey.PublicKey)
	pd, err := a.Adjudicate(voteStore, pdStore)
	if err != nil {
		t.Fatal(err)
	}

	yes, total, ok, err := Verify(pp, electionPK, &registrarKey.PublicKey, &tallyerKey.PublicKey, voteStore, []*election.PartialDecryption{pd})
	if err != nil {
		t.Fatal(err)
	}
	if !ok || total != 1 || yes != 1 {
		t.Fatalf("got yes=%d total=%d ok=%v, want 1/1/true", yes, total, ok)
	}
}
