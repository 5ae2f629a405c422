//
// pipe.go
//
// Copyright (c) 2025 yaovote authors
//
// All rights reserved.
//

package p2p

import "io"

// Pipe creates a pair of connected in-memory Conns, used to drive
// two-party protocols end to end in tests without real sockets.
// Anything sent to the first endpoint is received from the second,
// and vice versa.
func Pipe() (*Conn, *Conn) {
	var p0, p1 pipeHalf

	p0.r, p1.w = io.Pipe()
	p1.r, p0.w = io.Pipe()

	return NewConn(&p0), NewConn(&p1)
}

type pipeHalf struct {
	r *io.PipeReader
	w *io.PipeWriter
}

func (p *pipeHalf) Read(data []byte) (int, error) {
	return p.r.Read(data)
}

func (p *pipeHalf) Write(data []byte) (int, error) {
	return p.w.Write(data)
}

func (p *pipeHalf) Close() error {
	if err := p.r.Close(); err != nil {
		return err
	}
	return p.w.Close()
}
