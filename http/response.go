package http

import (
	"github.com/indigo-web/httpd/http/proto"
	"github.com/indigo-web/httpd/http/status"
)

// Response is the outcome of resolving a request against the filesystem. It's built fresh
// for every request and must not be modified once writing has begun.
type Response struct {
	Protocol string
	Code     status.Code
	Phrase   status.Status
	// Date is the local time the response was built at, already formatted.
	Date string
	// ContentLength is the size of the file to be transmitted. Meaningful only for
	// status.OK, otherwise it's -1.
	ContentLength int64
	// Connection is always "close", as no connection is ever kept alive.
	Connection string
	// Path is the resolved filesystem path the body is streamed from.
	Path string
}

// NewResponse returns a response with status.OK and no content length.
func NewResponse() *Response {
	return &Response{
		Protocol:      proto.HTTP11.String(),
		Code:          status.OK,
		Phrase:        status.Text(status.OK),
		ContentLength: -1,
		Connection:    "close",
	}
}

// WithCode sets the status code along with its reason phrase. Any previously set content
// length is dropped unless the code is status.OK.
func (r *Response) WithCode(code status.Code) *Response {
	r.Code = code
	r.Phrase = status.Text(code)
	if code != status.OK {
		r.ContentLength = -1
	}

	return r
}

// WithError is the same as WithCode, but takes the code from the error.
func (r *Response) WithError(err error) *Response {
	return r.WithCode(status.CodeOf(err))
}

// HasContentLength reports whether the Content-Length header must be sent.
func (r *Response) HasContentLength() bool {
	return r.Code == status.OK && r.ContentLength >= 0
}

// Release resets the response, leaving it unusable. Safe to call on nil.
func (r *Response) Release() {
	if r == nil {
		return
	}

	*r = Response{}
}
