//
// wire_codec.go
//
// Copyright (c) 2025 yaovote authors
//
// All rights reserved.
//

package circuit

import (
	"encoding/binary"
	"fmt"
)

// secureChannel is the capability the Garbler/Evaluator drivers need:
// an authenticated request-response message channel. crypto.SecureChannel
// satisfies it.
type secureChannel interface {
	Send([]byte) error
	Receive() ([]byte, error)
}

func sendUint32(ch secureChannel, v int) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(v))
	return ch.Send(buf[:])
}

func receiveUint32(ch secureChannel) (int, error) {
	msg, err := ch.Receive()
	if err != nil {
		return 0, err
	}
	if len(msg) != 4 {
		return 0, fmt.Errorf("circuit: expected 4-byte uint32 frame, got %d bytes", len(msg))
	}
	return int(binary.BigEndian.Uint32(msg)), nil
}

func sendBytes(ch secureChannel, data []byte) error {
	return ch.Send(data)
}

func receiveBytes(ch secureChannel) ([]byte, error) {
	return ch.Receive()
}
