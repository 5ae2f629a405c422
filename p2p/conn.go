//
// conn.go
//
// Copyright (c) 2025 yaovote authors
//
// All rights reserved.
//

// Package p2p implements the length-prefixed framed message transport
// shared by every two-party and client-server protocol in this
// module. It knows nothing about garbled circuits, OT, or elections:
// it is the narrow "framed message channel" collaborator named in
// spec.md's scope.
package p2p

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"sync/atomic"
)

// Conn implements a length-prefixed protocol connection around an
// underlying byte stream.
type Conn struct {
	r     *bufio.Reader
	w     *bufio.Writer
	c     io.Closer
	Stats IOStats
}

// IOStats tracks bytes sent and received over a Conn.
type IOStats struct {
	Sent  atomic.Uint64
	Recvd atomic.Uint64
}

// Sum returns the total bytes transferred in both directions.
func (s *IOStats) Sum() uint64 {
	return s.Sent.Load() + s.Recvd.Load()
}

// NewConn wraps an io.ReadWriter (optionally an io.Closer) into a
// framed Conn.
func NewConn(rw io.ReadWriter) *Conn {
	c, _ := rw.(io.Closer)
	return &Conn{
		r: bufio.NewReader(rw),
		w: bufio.NewWriter(rw),
		c: c,
	}
}

// Close closes the underlying connection, if closeable.
func (c *Conn) Close() error {
	if c.c != nil {
		return c.c.Close()
	}
	return nil
}

// Flush flushes any buffered output to the underlying connection.
func (c *Conn) Flush() error {
	return c.w.Flush()
}

// SendUint32 sends a 32 bit value.
func (c *Conn) SendUint32(val int) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(val))
	if _, err := c.w.Write(buf[:]); err != nil {
		return err
	}
	c.Stats.Sent.Add(4)
	return nil
}

// ReceiveUint32 receives a 32 bit value.
func (c *Conn) ReceiveUint32() (int, error) {
	var buf [4]byte
	if _, err := io.ReadFull(c.r, buf[:]); err != nil {
		return 0, err
	}
	c.Stats.Recvd.Add(4)
	return int(binary.BigEndian.Uint32(buf[:])), nil
}

// SendData sends a length-prefixed byte block.
func (c *Conn) SendData(val []byte) error {
	if err := c.SendUint32(len(val)); err != nil {
		return err
	}
	if _, err := c.w.Write(val); err != nil {
		return err
	}
	c.Stats.Sent.Add(uint64(len(val)))
	return nil
}

// ReceiveData receives a length-prefixed byte block.
func (c *Conn) ReceiveData() ([]byte, error) {
	n, err := c.ReceiveUint32()
	if err != nil {
		return nil, err
	}
	if n < 0 || n > 64*1024*1024 {
		return nil, fmt.Errorf("p2p: implausible frame length %d", n)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(c.r, buf); err != nil {
		return nil, err
	}
	c.Stats.Recvd.Add(uint64(n))
	return buf, nil
}

// Send sends a framed message and flushes immediately. It is the
// narrow "send" half of the Channel capability that the OT driver and
// the election actors depend on.
func (c *Conn) Send(msg []byte) error {
	if err := c.SendData(msg); err != nil {
		return err
	}
	return c.Flush()
}

// Receive reads one framed message. It is the narrow "receive" half of
// the Channel capability.
func (c *Conn) Receive() ([]byte, error) {
	return c.ReceiveData()
}
