package transport

import (
	"errors"
	"fmt"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/indigo-web/httpd/config"
	"github.com/indigo-web/httpd/http/status"
	"github.com/stretchr/testify/require"
)

var errListen = errors.New("listen failed")

type transportMock struct {
	stopped     *atomic.Bool
	closed      bool
	bound       bool
	once        bool
	loop        time.Duration
	returnError error
}

func newMock(loop time.Duration, returnError error, once bool) *transportMock {
	return &transportMock{
		stopped:     new(atomic.Bool),
		once:        once,
		loop:        loop,
		returnError: returnError,
	}
}

func (t *transportMock) Bind(string) error {
	t.bound = true
	return nil
}

func (t *transportMock) Listen(config.NET, func(conn net.Conn)) error {
	for !t.stopped.Load() && !t.once {
		time.Sleep(t.loop)
	}

	return t.returnError
}

func (t *transportMock) Stop() {
	t.stopped.Store(true)
}

func (t *transportMock) Close() {
	t.closed = true
}

func (t *transportMock) Wait() {
	for !t.stopped.Load() {
		time.Sleep(1 * time.Millisecond)
	}
}

func runParallel(fn func() error) chan error {
	c := make(chan error)

	go func() {
		c <- fn()
	}()

	return c
}

func runAtMost(sup *Supervisor, timeout time.Duration) error {
	select {
	case err := <-runParallel(func() error {
		return sup.Run(config.Default().NET)
	}):
		return err
	case <-time.After(timeout):
		return fmt.Errorf("supervisor timeouted")
	}
}

func TestSupervisor(t *testing.T) {
	newSupervisor := func(ts ...*transportMock) (*Supervisor, error) {
		sup := NewSupervisor()
		for _, transport := range ts {
			if err := sup.Add("", transport, nil); err != nil {
				return nil, err
			}
		}

		return &sup, nil
	}

	t.Run("die without error", func(t *testing.T) {
		sup, err := newSupervisor(
			newMock(100*time.Millisecond, nil, false),
			newMock(200*time.Millisecond, nil, true),
		)
		require.NoError(t, err)
		require.NoError(t, runAtMost(sup, 300*time.Millisecond))
	})

	t.Run("die with error", func(t *testing.T) {
		sup, err := newSupervisor(
			newMock(100*time.Millisecond, nil, false),
			newMock(200*time.Millisecond, errListen, true),
		)
		require.NoError(t, err)
		require.EqualError(t, runAtMost(sup, 300*time.Millisecond), errListen.Error())
	})

	t.Run("stop", func(t *testing.T) {
		sup, err := newSupervisor(
			newMock(100*time.Millisecond, nil, false),
			newMock(200*time.Millisecond, nil, false),
		)
		require.NoError(t, err)
		c := runParallel(func() error {
			return sup.Run(config.Default().NET)
		})
		time.Sleep(200 * time.Millisecond)
		c2 := runParallel(func() error {
			sup.Stop()
			return nil
		})

		select {
		case err = <-c2:
			require.NoError(t, err)
		case <-time.After(300 * time.Millisecond):
			require.Fail(t, "supervisor did not stop on time")
		}

		select {
		case err = <-c:
			require.NoError(t, err)
		case <-time.After(50 * time.Millisecond):
			require.Fail(t, "supervisor did not stop running on time")
		}

		require.NotPanics(t, sup.Stop)
	})

	t.Run("stop before run", func(t *testing.T) {
		mock := newMock(10*time.Millisecond, nil, false)
		sup, err := newSupervisor(mock)
		require.NoError(t, err)
		sup.Stop()
		require.True(t, mock.closed)
	})

	t.Run("bind failure closes bound transports", func(t *testing.T) {
		first := newMock(10*time.Millisecond, nil, false)
		sup := NewSupervisor()
		require.NoError(t, sup.Add("", first, nil))
		require.Error(t, sup.Add("", &failingBind{}, nil))
		require.True(t, first.closed)
	})
}

// orderedMock records whether Wait was called only after Listen had returned.
type orderedMock struct {
	*transportMock
	listening   *atomic.Bool
	waitedEarly *atomic.Bool
}

func (o orderedMock) Listen(cfg config.NET, cb func(conn net.Conn)) error {
	o.listening.Store(true)
	defer o.listening.Store(false)
	err := o.transportMock.Listen(cfg, cb)
	time.Sleep(20 * time.Millisecond)

	return err
}

func (o orderedMock) Wait() {
	if o.listening.Load() {
		o.waitedEarly.Store(true)
	}
}

func TestSupervisor_JoinsAcceptLoops(t *testing.T) {
	mocks := []orderedMock{
		{newMock(5*time.Millisecond, nil, false), new(atomic.Bool), new(atomic.Bool)},
		{newMock(5*time.Millisecond, nil, false), new(atomic.Bool), new(atomic.Bool)},
	}

	sup := NewSupervisor()
	for _, mock := range mocks {
		require.NoError(t, sup.Add("", mock, nil))
	}

	errch := runParallel(func() error {
		return sup.Run(config.Default().NET)
	})
	time.Sleep(30 * time.Millisecond)
	sup.Stop()
	require.NoError(t, <-errch)

	for _, mock := range mocks {
		require.False(t, mock.waitedEarly.Load())
		require.True(t, mock.closed)
	}
}

type failingBind struct {
	transportMock
}

func (*failingBind) Bind(string) error {
	return status.ErrGeneral
}
