// Package server serves a single connection: it receives the request head, resolves it
// against the filesystem, writes the response head and, if applicable, the file.
package server

import (
	"errors"
	"net"
	"time"

	"github.com/dchest/uniuri"
	"github.com/indigo-web/httpd/config"
	"github.com/indigo-web/httpd/http"
	"github.com/indigo-web/httpd/http/method"
	"github.com/indigo-web/httpd/http/status"
	"github.com/indigo-web/httpd/internal/bytetok"
	"github.com/indigo-web/httpd/internal/parser"
	"github.com/indigo-web/httpd/internal/resolve"
	"github.com/indigo-web/httpd/internal/vhost"
	"github.com/indigo-web/httpd/transport"
	"github.com/rs/zerolog"
)

const connIDLength = 8

type Server struct {
	cfg    *config.Config
	log    zerolog.Logger
	vhosts *vhost.Selector
	// Now is used for the Date header. time.Now if nil.
	Now func() time.Time
}

// New returns the server. The config is expected to be already validated.
func New(cfg *config.Config, log zerolog.Logger) *Server {
	return &Server{
		cfg:    cfg,
		log:    log,
		vhosts: vhost.New(cfg.HTTP.Dispatch, cfg.VHosts),
	}
}

// Serve handles the connection from the beginning till the end. It never closes the
// connection itself, which is up to the caller.
func (s *Server) Serve(conn net.Conn) {
	client := transport.NewClient(conn, s.cfg.NET.ReadTimeout, make([]byte, s.cfg.NET.ReadBufferSize))
	log := s.log.With().Str("conn", uniuri.NewLen(connIDLength)).Logger()
	if remote := client.Remote(); remote != nil {
		log = log.With().Str("remote", remote.String()).Logger()
	}

	s.serve(client, log)
}

func (s *Server) serve(client transport.Client, log zerolog.Logger) {
	var (
		start = time.Now()
		req   *http.Request
		resp  *http.Response
	)

	defer func() {
		req.Release()
		resp.Release()
	}()

	raw, err := receive(client, s.cfg.NET.MaxRequestSize)
	switch {
	case err == nil:
		req, err = parser.Parse(raw)
		raw.Release()
		if err != nil {
			log.Debug().Err(err).Msg("malformed request")
		}

		resp = s.builder(req).Build(req)
	case errors.Is(err, status.ErrRequestEntityTooLarge):
		log.Warn().Int("limit", s.cfg.NET.MaxRequestSize).Msg("request head is too large")
		resp = s.builder(nil).Fail(err)
	case errors.Is(err, errNothingReceived):
		log.Debug().Msg("closed without a request")
		return
	default:
		log.Info().Err(err).Msg("failed to receive the request")
		return
	}

	if err = newSerializer(client, make([]byte, 0, 256)).Write(resp); err != nil {
		log.Info().Err(err).Msg("failed to write the response")
		return
	}

	var sent int64
	if req != nil && req.Method == method.GET && resp.Code == status.OK {
		sent, err = transfer(client, resp.Path, resp.ContentLength, s.cfg.NET.TransferChunkSize)
		if err != nil {
			log.Warn().Err(err).
				Int64("sent", sent).
				Int64("length", resp.ContentLength).
				Msg("transfer aborted")
		}
	}

	event := log.Info()
	if req != nil {
		event = event.
			Str("method", req.Method.String()).
			Str("target", req.Target.String())
	}

	event.
		Int("status", int(status.Wire(resp.Code))).
		Int64("bytes", sent).
		Dur("duration", time.Since(start)).
		Msg("served")
}

// builder returns the response builder for the virtual host serving the request.
func (s *Server) builder(req *http.Request) resolve.Builder {
	var host bytetok.Token
	if req != nil {
		host = req.Host
	}

	vh := s.vhosts.Select(host)

	return resolve.Builder{
		Root:        vh.RootDir,
		DefaultFile: vh.DefaultFile,
		Confine:     s.cfg.HTTP.Confine,
		Strict:      s.cfg.HTTP.Strict,
		Now:         s.Now,
	}
}
