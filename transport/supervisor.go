package transport

import (
	"net"
	"sync/atomic"

	"github.com/indigo-web/httpd/config"
)

type Transport interface {
	Bind(addr string) error
	Listen(cfg config.NET, cb func(conn net.Conn)) error
	Stop()
	Close()
	Wait()
}

// Supervisor runs multiple transports at once. The first one failing stops the rest.
type Supervisor struct {
	stopped *atomic.Bool
	running *atomic.Bool
	ts      []boundTransport
	stopch  chan struct{}
	done    chan struct{}
}

func NewSupervisor() Supervisor {
	return Supervisor{
		stopped: new(atomic.Bool),
		running: new(atomic.Bool),
		stopch:  make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Add binds the transport to the address. On failure, all the transports bound so far are closed.
func (s *Supervisor) Add(addr string, transport Transport, cb func(net.Conn)) error {
	err := transport.Bind(addr)
	if err != nil {
		s.close()
		return err
	}

	s.ts = append(s.ts, boundTransport{
		cb: cb,
		t:  transport,
	})

	return nil
}

// Run blocks until either Stop is called or any of the transports returns. In both cases,
// every transport is stopped, its accept loop is joined, its connections are waited for and
// it's closed before return.
func (s *Supervisor) Run(cfg config.NET) error {
	if len(s.ts) == 0 {
		return nil
	}

	errch := make(chan error)
	s.running.Store(true)
	defer close(s.done)

	for _, t := range s.ts {
		go func(t boundTransport) {
			errch <- t.t.Listen(cfg, t.cb)
		}(t)
	}

	// every accept loop must be done before the transports are waited for, otherwise a
	// connection accepted late could escape the wait.
	select {
	case err := <-errch:
		s.stop()
		drain(errch, len(s.ts)-1)
		s.join()

		return err
	case <-s.stopch:
		s.stop()
		drain(errch, len(s.ts))
		s.join()
		s.stopch <- struct{}{}

		return nil
	}
}

// Stop gracefully stops the running supervisor and blocks until it's done. Called before Run,
// it just closes the bound transports.
func (s *Supervisor) Stop() {
	if !s.running.Load() {
		s.close()
		return
	}

	select {
	case s.stopch <- struct{}{}:
		<-s.stopch
	case <-s.done:
	}
}

func (s *Supervisor) stop() {
	if s.stopped.Load() {
		return
	}

	s.stopped.Store(true)

	for _, t := range s.ts {
		t.t.Stop()
	}
}

func (s *Supervisor) join() {
	for _, t := range s.ts {
		t.t.Wait()
		t.t.Close()
	}
}

func (s *Supervisor) close() {
	for _, t := range s.ts {
		t.t.Close()
	}
}

type boundTransport struct {
	cb func(conn net.Conn)
	t  Transport
}

func drain(ch <-chan error, n int) {
	for range n {
		<-ch
	}
}
