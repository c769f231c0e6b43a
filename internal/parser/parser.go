// Package parser turns a raw request into an http.Request. The input is expected to hold the
// whole request head: the request line and header lines, each terminated by CRLF.
package parser

import (
	"github.com/indigo-web/httpd/http"
	"github.com/indigo-web/httpd/http/method"
	"github.com/indigo-web/httpd/http/status"
	"github.com/indigo-web/httpd/internal/bytetok"
)

var (
	crlf  = bytetok.Token("\r\n")
	space = bytetok.Token(" ")
	colon = bytetok.Token(":")
)

const (
	hostKey          = "Host"
	contentLengthKey = "Content-Length"
)

// Parse parses the request. In case the request is empty, has no line terminators at all
// or lacks the request-target, status.ErrBadRequest is returned along with a nil request.
func Parse(raw []byte) (*http.Request, error) {
	data := bytetok.Create(raw)
	if len(data) == 0 {
		return nil, status.ErrBadRequest
	}

	lines := bytetok.NewCursor(data)
	defer lines.Release()

	requestLine, ok := lines.NextPattern(crlf)
	if !ok {
		return nil, status.ErrBadRequest
	}

	request := http.NewRequest()
	parseRequestLine(request, requestLine)
	if request.Target == nil {
		return nil, status.ErrBadRequest
	}

	for {
		line, ok := lines.NextPattern(crlf)
		if !ok {
			break
		}

		parseHeader(request, line)
	}

	return request, nil
}

// parseRequestLine fills method, target and protocol in this order. Extra fields are ignored.
func parseRequestLine(request *http.Request, line bytetok.Token) {
	fields := bytetok.NewCursor(line)

	for i := 0; ; i++ {
		field, ok := fields.NextDelim(space)
		if !ok {
			return
		}

		switch i {
		case 0:
			request.Method = method.FromBytes(field)
		case 1:
			request.Target = field.Clone()
		case 2:
			request.Protocol = field.Clone()
		}
	}
}

// parseHeader splits the line once by colon and takes the first space-delimited token after it
// as the value. Only Host and Content-Length are kept; the rest is dropped.
func parseHeader(request *http.Request, line bytetok.Token) {
	fields := bytetok.NewCursor(line)

	key, ok := fields.NextDelim(colon)
	if !ok {
		return
	}

	value, ok := fields.NextDelim(space)
	if !ok {
		return
	}

	switch {
	case isKey(key, hostKey):
		request.Host = value.Clone()
	case isKey(key, contentLengthKey):
		request.ContentLength = value.Clone()
	}
}

func isKey(key bytetok.Token, literal string) bool {
	return len(key) == len(literal) && bytetok.Compare(key, literal, len(literal)) == 0
}
