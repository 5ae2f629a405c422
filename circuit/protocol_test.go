//
// protocol_test.go
//
// Copyright (c) 2025 yaovote authors
//
// All rights reserved.
//
// End-to-end Garbler/Evaluator scenarios, matching spec.md §8's
// canonical Yao-AND, Yao-XOR, and Yao-NOT cases.

package circuit

import (
	"math/big"
	"sync"
	"testing"

	"github.com/sfevote/yaovote/p2p"
	"github.com/sfevote/yaovote/params"
)

func runProtocol(t *testing.T, c *Circuit, garblerInput, evaluatorInput int64) (string, string) {
	t.Helper()
	pp := params.Default()
	conn0, conn1 := p2p.Pipe()

	var wg sync.WaitGroup
	wg.Add(2)

	var garblerOut string
	var garblerErr error
	go func() {
		defer wg.Done()
		garblerOut, garblerErr = Garbler(pp, conn0, c, big.NewInt(garblerInput))
	}()

	var evaluatorOut string
	var evaluatorErr error
	go func() {
		defer wg.Done()
		evaluatorOut, evaluatorErr = Evaluator(pp, conn1, c, big.NewInt(evaluatorInput))
	}()

	wg.Wait()

	if garblerErr != nil {
		t.Fatalf("garbler: %v", garblerErr)
	}
	if evaluatorErr != nil {
		t.Fatalf("evaluator: %v", evaluatorErr)
	}
	return garblerOut, evaluatorOut
}

func TestProtocolYaoAnd(t *testing.T) {
	garblerOut, evaluatorOut := runProtocol(t, andCircuit(), 1, 1)
	if garblerOut != "1" {
		t.Errorf("garbler output = %q, want %q", garblerOut, "1")
	}
	if evaluatorOut != "1" {
		t.Errorf("evaluator output = %q, want %q", evaluatorOut, "1")
	}
}

func TestProtocolYaoXor(t *testing.T) {
	garblerOut, evaluatorOut := runProtocol(t, xorCircuit(), 1, 0)
	if garblerOut != "1" {
		t.Errorf("garbler output = %q, want %q", garblerOut, "1")
	}
	if evaluatorOut != "1" {
		t.Errorf("evaluator output = %q, want %q", evaluatorOut, "1")
	}
}

func TestProtocolYaoNot(t *testing.T) {
	garblerOut, evaluatorOut := runProtocol(t, notCircuit(), 0, 0)
	if garblerOut != "1" {
		t.Errorf("garbler output = %q, want %q", garblerOut, "1")
	}
	if evaluatorOut != "1" {
		t.Errorf("evaluator output = %q, want %q", evaluatorOut, "1")
	}
}

func TestProtocolYaoAndZero(t *testing.T) {
	garblerOut, evaluatorOut := runProtocol(t, andCircuit(), 1, 0)
	if garblerOut != "0" || evaluatorOut != "0" {
		t.Errorf("AND(1,0) = garbler %q evaluator %q, want 0/0", garblerOut, evaluatorOut)
	}
}
