package httpd

import (
	"net"

	"github.com/indigo-web/httpd/config"
	"github.com/indigo-web/httpd/internal/server"
	"github.com/indigo-web/httpd/transport"
	"github.com/rs/zerolog"
)

// App binds the listeners of the configured virtual hosts and serves them until stopped.
type App struct {
	cfg   *config.Config
	log   zerolog.Logger
	sup   transport.Supervisor
	tcps  []*transport.TCP
	hooks hooks
}

// New returns a new App instance. The config must be already validated.
func New(cfg *config.Config, log zerolog.Logger) *App {
	return &App{
		cfg: cfg,
		log: log,
		sup: transport.NewSupervisor(),
	}
}

// NotifyOnStart calls the callback at the moment, when all the listeners are bound and the
// accept loops are about to start.
func (a *App) NotifyOnStart(cb func()) *App {
	a.hooks.OnStart = cb
	return a
}

// NotifyOnStop calls the callback at the moment, when all the listeners are closed and every
// connection is served.
func (a *App) NotifyOnStop(cb func()) *App {
	a.hooks.OnStop = cb
	return a
}

// Bind binds every address the dispatch mode requires. It's called by Serve if wasn't
// called explicitly before.
func (a *App) Bind() error {
	if len(a.tcps) > 0 {
		return nil
	}

	srv := server.New(a.cfg, a.log)

	for _, addr := range a.cfg.Addrs() {
		tcp := transport.NewTCP(a.log)
		if err := a.sup.Add(addr, tcp, srv.Serve); err != nil {
			a.tcps = nil
			return err
		}

		a.tcps = append(a.tcps, tcp)
		a.log.Info().Str("addr", tcp.Addr().String()).Msg("listening")
	}

	return nil
}

// Addrs returns the addresses actually bound. Empty until bound.
func (a *App) Addrs() []net.Addr {
	addrs := make([]net.Addr, len(a.tcps))
	for i, tcp := range a.tcps {
		addrs[i] = tcp.Addr()
	}

	return addrs
}

// Serve binds the listeners, if not bound yet, and blocks until either Stop is called or
// any of the listeners fails.
func (a *App) Serve() error {
	if err := a.Bind(); err != nil {
		return err
	}

	callIfNotNil(a.hooks.OnStart)
	err := a.sup.Run(a.cfg.NET)
	callIfNotNil(a.hooks.OnStop)

	if err != nil {
		a.log.Error().Err(err).Msg("stopped with an error")
	} else {
		a.log.Info().Msg("stopped")
	}

	return err
}

// Stop stops accepting new connections and blocks until the ones being served are done.
func (a *App) Stop() {
	a.sup.Stop()
}

type hooks struct {
	OnStart, OnStop func()
}

func callIfNotNil(f func()) {
	if f != nil {
		f()
	}
}
