//
// protocol.go
//
// Copyright (c) 2025 yaovote authors
//
// All rights reserved.
//
// Grounded on the teacher's circuit/garbler.go and circuit/evaluator.go
// message sequencing (send tables, send garbler-input labels, OT the
// evaluator-input labels, receive and decode output), rewritten for
// spec.md §4.3-§4.4's free-XOR construction and fixing the known
// output-decoding bug named in spec.md §9.

package circuit

import (
	"fmt"
	"math/big"

	"github.com/sfevote/yaovote/crypto"
	"github.com/sfevote/yaovote/ot"
	"github.com/sfevote/yaovote/params"
)

// Garbler runs the garbler side of the two-party secure function
// evaluation protocol over conn: it performs the DH handshake, garbles
// the circuit, sends the garbled tables and its own input labels, acts
// as OT sender for each evaluator-input wire, and finally decodes and
// returns the circuit's output bit string (which it also sends back to
// the Evaluator, per spec.md §4.3 step 7).
func Garbler(pp *params.Params, conn crypto.FramedConn, circ *Circuit, garblerInput *big.Int) (string, error) {
	ch, err := crypto.EstablishServer(pp, conn)
	if err != nil {
		return "", fmt.Errorf("circuit: garbler handshake: %w", err)
	}

	garbled, err := circ.Garble(pp)
	if err != nil {
		return "", err
	}

	for gi, g := range circ.Gates {
		if g.Type == Xor {
			if err := sendUint32(ch, 0); err != nil {
				return "", err
			}
			continue
		}
		table := garbled.Tables[gi]
		if err := sendUint32(ch, len(table)); err != nil {
			return "", err
		}
		for _, entry := range table {
			if err := sendBytes(ch, entry); err != nil {
				return "", err
			}
		}
	}

	for i, wire := range circ.GarblerInputWires() {
		var label Label
		if garblerInput.Bit(i) == 1 {
			label = garbled.Labels.Wires[wire].One
		} else {
			label = garbled.Labels.Wires[wire].Zero
		}
		if err := sendBytes(ch, label); err != nil {
			return "", err
		}
	}

	for _, wire := range circ.EvaluatorInputWires() {
		pair := garbled.Labels.Wires[wire]
		sender := ot.NewSender(pp, ch)
		if err := sender.Send(pair.Zero, pair.One); err != nil {
			return "", err
		}
	}

	received := make(map[int]Label)
	for _, wire := range circ.OutputWires() {
		label, err := receiveBytes(ch)
		if err != nil {
			return "", err
		}
		received[wire] = Label(label)
	}

	output, err := DecodeOutput(garbled.Labels, circ, received)
	if err != nil {
		return "", err
	}

	if err := ch.Send([]byte(output)); err != nil {
		return "", err
	}
	return output, nil
}

// Evaluator runs the evaluator side of the protocol over conn,
// returning the same output bit string the Garbler computed.
func Evaluator(pp *params.Params, conn crypto.FramedConn, circ *Circuit, evaluatorInput *big.Int) (string, error) {
	ch, err := crypto.EstablishClient(pp, conn)
	if err != nil {
		return "", fmt.Errorf("circuit: evaluator handshake: %w", err)
	}

	tables := make(map[int]GarbledTable)
	for gi, g := range circ.Gates {
		n, err := receiveUint32(ch)
		if err != nil {
			return "", err
		}
		if g.Type == Xor {
			continue
		}
		table := make(GarbledTable, n)
		for j := 0; j < n; j++ {
			entry, err := receiveBytes(ch)
			if err != nil {
				return "", err
			}
			table[j] = entry
		}
		tables[gi] = table
	}

	wires := make(map[int]Label)
	for _, wire := range circ.GarblerInputWires() {
		label, err := receiveBytes(ch)
		if err != nil {
			return "", err
		}
		wires[wire] = Label(label)
	}

	for i, wire := range circ.EvaluatorInputWires() {
		bit := 0
		if evaluatorInput.Bit(i) == 1 {
			bit = 1
		}
		receiver := ot.NewReceiver(pp, ch)
		label, err := receiver.Receive(bit)
		if err != nil {
			return "", err
		}
		wires[wire] = Label(label)
	}

	if err := Eval(pp, circ, tables, wires); err != nil {
		return "", err
	}

	for _, wire := range circ.OutputWires() {
		if err := sendBytes(ch, wires[wire]); err != nil {
			return "", err
		}
	}

	outputBytes, err := receiveBytes(ch)
	if err != nil {
		return "", err
	}
	return string(outputBytes), nil
}
