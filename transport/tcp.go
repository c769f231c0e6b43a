package transport

import (
	"errors"
	"net"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/indigo-web/httpd/config"
	"github.com/rs/zerolog"
)

type listener interface {
	net.Listener
	SetDeadline(t time.Time) error
}

// TCP accepts connections until stopped. Stopping doesn't interrupt connections being
// served, Wait must be used to join them.
type TCP struct {
	l      listener
	log    zerolog.Logger
	wg     *sync.WaitGroup
	stop   *atomic.Bool
	closed *atomic.Bool
}

func NewTCP(log zerolog.Logger) *TCP {
	tcp := newTCP(nil, log)
	return &tcp
}

func newTCP(l listener, log zerolog.Logger) TCP {
	return TCP{
		l:      l,
		log:    log,
		wg:     new(sync.WaitGroup),
		stop:   new(atomic.Bool),
		closed: new(atomic.Bool),
	}
}

func bindTCP(addr string) (*net.TCPListener, error) {
	tcpaddr, err := net.ResolveTCPAddr("tcp", addr)
	if err != nil {
		return nil, err
	}

	return net.ListenTCP("tcp", tcpaddr)
}

func (t *TCP) Bind(addr string) (err error) {
	t.l, err = bindTCP(addr)
	return err
}

// Addr returns the bound address. Useful when bound to the port 0.
func (t *TCP) Addr() net.Addr {
	return t.l.Addr()
}

const (
	minAcceptBackoff = 5 * time.Millisecond
	maxAcceptBackoff = time.Second
)

// Listen runs the accept loop. The run flag is checked at least once per
// AcceptLoopInterruptPeriod, and Stop interrupts a pending accept immediately. Failed accepts
// are logged and retried with a growing delay, whereas closing the listener ends the loop.
func (t *TCP) Listen(cfg config.NET, cb func(conn net.Conn)) error {
	var backoff time.Duration

	for {
		err := t.l.SetDeadline(time.Now().Add(cfg.AcceptLoopInterruptPeriod))
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}

			return err
		}

		// checked after the deadline is set, so a concurrent Stop always overrides it
		if t.stop.Load() {
			return nil
		}

		conn, err := t.l.Accept()
		if err != nil {
			switch {
			case errors.Is(err, os.ErrDeadlineExceeded):
				continue
			case errors.Is(err, net.ErrClosed):
				return nil
			}

			backoff = min(max(2*backoff, minAcceptBackoff), maxAcceptBackoff)
			t.log.Error().Err(err).Dur("retry_in", backoff).Msg("accept failed")
			time.Sleep(backoff)
			continue
		}

		backoff = 0

		if t.stop.Load() {
			_ = conn.Close()
			return nil
		}

		t.wg.Add(1)
		if cfg.Sequential {
			t.serve(conn, cb)
			continue
		}

		go t.serve(conn, cb)
	}
}

func (t *TCP) serve(conn net.Conn, cb func(conn net.Conn)) {
	defer t.wg.Done()
	cb(conn)
	_ = conn.Close()
}

// Stop clears the run flag and interrupts the pending accept. Connections being served
// aren't affected. Listen must return before Wait is called.
func (t *TCP) Stop() {
	t.stop.Store(true)
	if t.l != nil {
		_ = t.l.SetDeadline(time.Now())
	}
}

func (t *TCP) Close() {
	if t.l != nil && !t.closed.Swap(true) {
		_ = t.l.Close()
	}
}

func (t *TCP) Wait() {
	t.wg.Wait()
}
