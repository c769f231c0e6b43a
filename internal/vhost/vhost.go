// Package vhost picks the virtual host a request is resolved against.
package vhost

import (
	"net"

	"github.com/indigo-web/httpd/config"
	"github.com/indigo-web/httpd/internal/bytetok"
	"github.com/indigo-web/utils/strcomp"
	"github.com/indigo-web/utils/uf"
)

type Selector struct {
	mode  config.Dispatch
	hosts []config.VHost
}

// New returns a selector over the hosts. The hosts must not be empty.
func New(mode config.Dispatch, hosts []config.VHost) *Selector {
	return &Selector{
		mode:  mode,
		hosts: hosts,
	}
}

// Select returns the virtual host serving the request with the Host header value passed.
// In config.DispatchFirst mode, as well as when nothing matches, the first host is returned.
func (s *Selector) Select(host bytetok.Token) config.VHost {
	if s.mode != config.DispatchHost || len(host) == 0 {
		return s.hosts[0]
	}

	name := stripPort(uf.B2S(host))
	for _, vhost := range s.hosts {
		if strcomp.EqualFold(vhost.ServerName, name) {
			return vhost
		}
	}

	return s.hosts[0]
}

func stripPort(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}

	return host
}
