package dummy

import (
	"bytes"
	"io"
	"net"
	"time"
)

// Conn replays the data it was initialized with, piece by piece, and journals everything
// written into it.
type Conn struct {
	pieces  [][]byte
	written bytes.Buffer
	closed  bool
	// writeErr is returned by every write once writesLeft successful writes are done.
	writeErr   error
	writesLeft int
	deadlines  int
}

func NewConn(pieces ...[]byte) *Conn {
	return &Conn{pieces: pieces}
}

func (c *Conn) Read(b []byte) (n int, err error) {
	if c.closed {
		return 0, net.ErrClosed
	}

	if len(c.pieces) == 0 {
		return 0, io.EOF
	}

	n = copy(b, c.pieces[0])
	if c.pieces[0] = c.pieces[0][n:]; len(c.pieces[0]) == 0 {
		c.pieces = c.pieces[1:]
	}

	return n, nil
}

func (c *Conn) Write(b []byte) (n int, err error) {
	if c.writeErr != nil {
		if c.writesLeft == 0 {
			return 0, c.writeErr
		}

		c.writesLeft--
	}

	return c.written.Write(b)
}

// Written returns everything written so far.
func (c *Conn) Written() string {
	return c.written.String()
}

// Closed reports whether Close was called.
func (c *Conn) Closed() bool {
	return c.closed
}

func (c *Conn) Close() error {
	c.closed = true
	return nil
}

func (c *Conn) LocalAddr() net.Addr {
	return nil
}

func (c *Conn) RemoteAddr() net.Addr {
	return nil
}

func (c *Conn) SetDeadline(time.Time) error {
	return nil
}

func (c *Conn) SetReadDeadline(time.Time) error {
	c.deadlines++
	return nil
}

// ReadDeadlines returns how many times the read deadline was set.
func (c *Conn) ReadDeadlines() int {
	return c.deadlines
}

func (c *Conn) SetWriteDeadline(time.Time) error {
	return nil
}

// FailWrites makes every write after the first n successful ones fail with err.
func (c *Conn) FailWrites(n int, err error) *Conn {
	c.writesLeft, c.writeErr = n, err
	return c
}
