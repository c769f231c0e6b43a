// Package logging builds the server logger out of the global settings.
package logging

import (
	"io"
	"os"

	"github.com/indigo-web/httpd/config"
	"github.com/rs/zerolog"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New returns the logger along with the closer of its destination. A disabled log results in
// a no-op logger, a log file is opened in append mode, otherwise the log goes to stderr.
func New(cfg config.Global) (zerolog.Logger, io.Closer, error) {
	if !cfg.Log {
		return zerolog.Nop(), nopCloser{}, nil
	}

	if len(cfg.LogFile) == 0 {
		return newLogger(os.Stderr), nopCloser{}, nil
	}

	file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, err
	}

	return newLogger(file), file, nil
}

func newLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}
