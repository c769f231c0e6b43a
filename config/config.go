package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"
)

// Dispatch selects how a request is matched against virtual hosts.
type Dispatch string

const (
	// DispatchFirst resolves every request against the first virtual host, no matter which
	// host was requested.
	DispatchFirst Dispatch = "first"
	// DispatchHost picks the virtual host whose server name matches the Host header, falling
	// back to the first one.
	DispatchHost Dispatch = "host"
)

type (
	Global struct {
		// PIDFile is where the process id is stored. Mandatory.
		PIDFile string `json:"pid_file" test:"nullable"`
		// LogFile redirects logs into the file. Logs go to stderr if unset.
		LogFile string `json:"log_file,omitempty" test:"nullable"`
		// Log enables logging at all.
		Log bool `json:"log"`
	}

	// VHost describes a single served site.
	VHost struct {
		ServerName  string `json:"server_name"`
		IP          string `json:"ip"`
		Port        string `json:"port"`
		RootDir     string `json:"root_dir"`
		DefaultFile string `json:"default_file,omitempty"`
	}

	NET struct {
		// MaxRequestSize is the hard limit of the request head. Requests growing over it without
		// reaching the empty line are answered with 413.
		MaxRequestSize int `json:"max_request_size"`
		// ReadBufferSize is how many bytes are read from the socket at once.
		ReadBufferSize int `json:"read_buffer_size"`
		// ReadTimeout limits how long the whole request head may take to arrive.
		ReadTimeout time.Duration `json:"read_timeout"`
		// AcceptLoopInterruptPeriod controls how often will the Accept() call be interrupted
		// in order to check whether it's time to stop.
		AcceptLoopInterruptPeriod time.Duration `json:"accept_loop_interrupt_period"`
		// TransferChunkSize is the most bytes a single file-to-socket transfer may move.
		TransferChunkSize int64 `json:"transfer_chunk_size"`
		// Sequential disables per-connection goroutines: every connection is served till the
		// end before the next one is accepted.
		Sequential bool `json:"sequential" test:"nullable"`
	}

	HTTP struct {
		Dispatch Dispatch `json:"dispatch"`
		// Strict answers unsupported methods with 405 and unsupported protocol versions with 505
		// instead of serving them as usual.
		Strict bool `json:"strict" test:"nullable"`
		// Confine normalizes the request target before joining it with the root directory, so
		// it can never escape the root.
		Confine bool `json:"confine" test:"nullable"`
	}
)

// Config holds everything the server consumes. Always start from Default() and only then
// override what's needed.
type Config struct {
	Global Global  `json:"global"`
	VHosts []VHost `json:"vhosts" test:"nullable"`
	NET    NET     `json:"net"`
	HTTP   HTTP    `json:"http"`
}

// Default returns default config. Virtual hosts and the PID file must be set separately.
func Default() *Config {
	return &Config{
		Global: Global{
			Log: true,
		},
		NET: NET{
			MaxRequestSize:            8 * 1024,
			ReadBufferSize:            2 * 1024,
			ReadTimeout:               30 * time.Second,
			AcceptLoopInterruptPeriod: 500 * time.Millisecond,
			TransferChunkSize:         64 * 1024,
		},
		HTTP: HTTP{
			Dispatch: DispatchFirst,
		},
	}
}

var (
	ErrNoPIDFile        = errors.New("pid_file is mandatory")
	ErrNoVHosts         = errors.New("at least one vhost must be specified")
	ErrIncompleteVHost  = errors.New("vhost misses a mandatory field")
	ErrBadPort          = errors.New("bad port")
	ErrUnknownDispatch  = errors.New("unknown dispatch mode")
	ErrBadNETSettings   = errors.New("network settings must be positive")
	ErrRequestSizeLimit = errors.New("read buffer must not be greater than max request size")
)

// Validate checks that all the mandatory fields are present and sane.
func (c *Config) Validate() error {
	if len(c.Global.PIDFile) == 0 {
		return ErrNoPIDFile
	}

	if len(c.VHosts) == 0 {
		return ErrNoVHosts
	}

	for i, vhost := range c.VHosts {
		if err := vhost.validate(); err != nil {
			return fmt.Errorf("vhost #%d: %w", i+1, err)
		}
	}

	switch c.HTTP.Dispatch {
	case DispatchFirst, DispatchHost:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDispatch, c.HTTP.Dispatch)
	}

	n := c.NET
	if n.MaxRequestSize <= 0 || n.ReadBufferSize <= 0 || n.ReadTimeout <= 0 ||
		n.AcceptLoopInterruptPeriod <= 0 || n.TransferChunkSize <= 0 {
		return ErrBadNETSettings
	}

	if n.ReadBufferSize > n.MaxRequestSize {
		return ErrRequestSizeLimit
	}

	return nil
}

func (v VHost) validate() error {
	for field, value := range map[string]string{
		"server_name": v.ServerName,
		"ip":          v.IP,
		"port":        v.Port,
		"root_dir":    v.RootDir,
	} {
		if len(value) == 0 {
			return fmt.Errorf("%w: %s", ErrIncompleteVHost, field)
		}
	}

	if port, err := strconv.ParseUint(v.Port, 10, 16); err != nil || port == 0 && v.Port != "0" {
		return fmt.Errorf("%w: %q", ErrBadPort, v.Port)
	}

	return nil
}

// Addr returns the address the vhost is bound to.
func (v VHost) Addr() string {
	return net.JoinHostPort(v.IP, v.Port)
}

// Addrs returns every distinct address that must be bound with the dispatch mode in use.
// The first vhost always comes first.
func (c *Config) Addrs() []string {
	if len(c.VHosts) == 0 {
		return nil
	}

	if c.HTTP.Dispatch != DispatchHost {
		return []string{c.VHosts[0].Addr()}
	}

	var addrs []string
	seen := make(map[string]struct{}, len(c.VHosts))

	for _, vhost := range c.VHosts {
		addr := vhost.Addr()
		if _, found := seen[addr]; found {
			continue
		}

		seen[addr] = struct{}{}
		addrs = append(addrs, addr)
	}

	return addrs
}
