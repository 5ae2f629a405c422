//
// handshake_test.go
//
// Copyright (c) 2025 yaovote authors
//
// All rights reserved.
//

package crypto

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"sync"
	"testing"

	"github.com/sfevote/yaovote/p2p"
	"github.com/sfevote/yaovote/params"
)

func TestDHSharedAgrees(t *testing.T) {
	pp := params.Default()

	a, err := DHInitialize(pp)
	if err != nil {
		t.Fatal(err)
	}
	b, err := DHInitialize(pp)
	if err != nil {
		t.Fatal(err)
	}

	sharedA := DHShared(pp, a, b.Public)
	sharedB := DHShared(pp, b, a.Public)
	if sharedA.Cmp(sharedB) != 0 {
		t.Fatal("DH shared secrets disagree")
	}
}

func TestServerSignedHandshake(t *testing.T) {
	pp := params.Default()
	serverSK, err := rsa.GenerateKey(rand.Reader, 1024)
	if err != nil {
		t.Fatal(err)
	}

	c0, c1 := p2p.Pipe()

	var wg sync.WaitGroup
	wg.Add(2)

	var serverCh, clientCh *SecureChannel
	var serverErr, clientErr error

	go func() {
		defer wg.Done()
		serverCh, serverErr = ServerSignedHandshakeServer(pp, c0, serverSK)
	}()
	go func() {
		defer wg.Done()
		clientCh, clientErr = ServerSignedHandshakeClient(pp, c1, &serverSK.PublicKey)
	}()
	wg.Wait()

	if serverErr != nil {
		t.Fatalf("server: %v", serverErr)
	}
	if clientErr != nil {
		t.Fatalf("client: %v", clientErr)
	}

	sendErr := make(chan error, 1)
	go func() { sendErr <- serverCh.Send([]byte("ping")) }()
	got, err := clientCh.Receive()
	if err != nil {
		t.Fatal(err)
	}
	if err := <-sendErr; err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, []byte("ping")) {
		t.Fatalf("got %q", got)
	}
}

func TestServerSignedHandshakeRejectsWrongKey(t *testing.T) {
	pp := params.Default()
	serverSK, err := rsa.GenerateKey(rand.Reader, 1024)
	if err != nil {
		t.Fatal(err)
	}
	impostorSK, err := rsa.GenerateKey(rand.Reader, 1024)
	if err != nil {
		t.Fatal(err)
	}

	c0, c1 := p2p.Pipe()

	var wg sync.WaitGroup
	wg.Add(2)

	var clientErr error
	go func() {
		defer wg.Done()
		ServerSignedHandshakeServer(pp, c0, serverSK)
	}()
	go func() {
		defer wg.Done()
		_, clientErr = ServerSignedHandshakeClient(pp, c1, &impostorSK.PublicKey)
	}()
	wg.Wait()

	if clientErr != ErrHandshakeSignature {
		t.Fatalf("expected ErrHandshakeSignature, got %v", clientErr)
	}
}
