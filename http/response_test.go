package http

import (
	"testing"

	"github.com/indigo-web/httpd/http/method"
	"github.com/indigo-web/httpd/http/proto"
	"github.com/indigo-web/httpd/http/status"
	"github.com/indigo-web/httpd/internal/bytetok"
	"github.com/stretchr/testify/require"
)

func TestResponse(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		resp := NewResponse()
		require.Equal(t, "HTTP/1.1", resp.Protocol)
		require.Equal(t, "close", resp.Connection)
		require.Equal(t, status.OK, resp.Code)
		require.False(t, resp.HasContentLength())
	})

	t.Run("error drops content length", func(t *testing.T) {
		resp := NewResponse()
		resp.ContentLength = 5
		require.True(t, resp.HasContentLength())
		resp.WithError(status.ErrNotFound)
		require.Equal(t, status.NotFound, resp.Code)
		require.Equal(t, status.Status("not found"), resp.Phrase)
		require.False(t, resp.HasContentLength())
		require.Equal(t, int64(-1), resp.ContentLength)
	})

	t.Run("release", func(t *testing.T) {
		var nilresp *Response
		require.NotPanics(t, nilresp.Release)
		resp := NewResponse()
		resp.Release()
		require.Empty(t, resp.Connection)
	})
}

func TestRequest(t *testing.T) {
	req := NewRequest()
	require.Equal(t, method.Unknown, req.Method)
	require.Equal(t, proto.Unknown, req.Proto())

	req.Protocol = bytetok.Token("HTTP/1.0")
	req.Target = bytetok.Token("/")
	require.Equal(t, proto.HTTP10, req.Proto())

	req.Release()
	require.Nil(t, req.Target)
	require.Nil(t, req.Protocol)

	var nilreq *Request
	require.NotPanics(t, nilreq.Release)
}
