package http

import (
	"github.com/indigo-web/httpd/http/method"
	"github.com/indigo-web/httpd/http/proto"
	"github.com/indigo-web/httpd/internal/bytetok"
)

// Request represents a parsed HTTP request. It's created once per connection and is never
// modified after parsing.
type Request struct {
	// Method is GET, HEAD or Unknown for anything else.
	Method method.Method
	// Target is the request-target exactly as it was received. Nil if absent.
	Target bytetok.Token
	// Protocol is the raw protocol version token, e.g. HTTP/1.1. Nil if absent.
	Protocol bytetok.Token
	// Host is the value of the Host header. Nil if absent.
	Host bytetok.Token
	// ContentLength is the unparsed value of the Content-Length header. Nil if absent.
	ContentLength bytetok.Token
}

func NewRequest() *Request {
	return &Request{
		Method: method.Unknown,
	}
}

// Proto recognizes the protocol version token.
func (r *Request) Proto() proto.Protocol {
	return proto.FromBytes(r.Protocol)
}

// Release drops all the owned tokens. Safe to call on nil.
func (r *Request) Release() {
	if r == nil {
		return
	}

	r.Target.Release()
	r.Protocol.Release()
	r.Host.Release()
	r.ContentLength.Release()
}
