package transport

import (
	"io"
	"net"
	"time"
)

type Client interface {
	Read() ([]byte, error)
	Write([]byte) (int, error)
	ReadFrom(io.Reader) (int64, error)
	Remote() net.Addr
	Close() error
}

type client struct {
	conn    net.Conn
	buff    []byte
	timeout time.Duration
	armed   bool
}

func NewClient(conn net.Conn, timeout time.Duration, buff []byte) Client {
	return &client{
		buff:    buff,
		conn:    conn,
		timeout: timeout,
	}
}

// Read reads data into the internal buffer and returns a piece of it back. The returned
// slice is valid only until the next read. The read deadline is set once, by the first
// read, so the timeout bounds the whole exchange rather than every single read.
func (c *client) Read() ([]byte, error) {
	if !c.armed {
		if err := c.conn.SetReadDeadline(time.Now().Add(c.timeout)); err != nil {
			return nil, err
		}

		c.armed = true
	}

	n, err := c.conn.Read(c.buff)
	return c.buff[:n], err
}

// Write writes data into the underlying connection.
func (c *client) Write(b []byte) (int, error) {
	return c.conn.Write(b)
}

// ReadFrom transfers everything from the reader into the connection. For *net.TCPConn and
// a file (possibly limited by io.LimitReader) this goes through sendfile(2) on Linux.
func (c *client) ReadFrom(r io.Reader) (int64, error) {
	return io.Copy(c.conn, r)
}

// Remote returns the remote address of the connection.
func (c *client) Remote() net.Addr {
	return c.conn.RemoteAddr()
}

// Close closes the connection.
func (c *client) Close() error {
	return c.conn.Close()
}
