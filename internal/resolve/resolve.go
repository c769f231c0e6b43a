// Package resolve maps a parsed request onto the filesystem and decides the response status.
package resolve

import (
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/indigo-web/httpd/http"
	"github.com/indigo-web/httpd/http/method"
	"github.com/indigo-web/httpd/http/proto"
	"github.com/indigo-web/httpd/http/status"
	"github.com/indigo-web/utils/uf"
)

// DateLayout is how the Date header is formatted.
const DateLayout = "Mon, 02 Jan 2006 15:04:05 MST"

type Builder struct {
	// Root is the directory requested targets are appended to.
	Root string
	// DefaultFile is served instead of a requested directory. Directories are forbidden if empty.
	DefaultFile string
	// Confine cleans the target so it can't climb above Root.
	Confine bool
	// Strict rejects methods other than GET and HEAD, as well as protocols other than HTTP/1.x.
	Strict bool
	// Now is time.Now if nil.
	Now func() time.Time
}

// Build returns the response to the request. Nil request is answered with status.BadRequest.
// The file is opened only to classify the outcome and obtain its size; it's closed before return.
func (b Builder) Build(req *http.Request) *http.Response {
	if req == nil {
		return b.Fail(status.ErrBadRequest)
	}

	resp := b.newResponse()

	if b.Strict {
		switch {
		case req.Method == method.Unknown:
			return resp.WithError(status.ErrMethodNotAllowed)
		case req.Proto()&proto.HTTP1 == 0:
			return resp.WithError(status.ErrHTTPVersionNotSupported)
		}
	}

	filename := b.path(uf.B2S(req.Target))
	size, err := stat(filename)
	if errors.Is(err, errIsDir) {
		if len(b.DefaultFile) == 0 {
			return resp.WithError(status.ErrForbidden)
		}

		filename = filepath.Join(filename, b.DefaultFile)
		size, err = stat(filename)
	}

	if err != nil {
		return resp.WithError(classify(err))
	}

	resp.ContentLength = size
	resp.Path = filename

	return resp
}

// Fail returns a dated response carrying the error's status code.
func (b Builder) Fail(err error) *http.Response {
	return b.newResponse().WithError(err)
}

func (b Builder) newResponse() *http.Response {
	resp := http.NewResponse()
	resp.Date = b.now().Format(DateLayout)

	return resp
}

func (b Builder) path(target string) string {
	if b.Confine {
		target = path.Clean("/" + target)
	}

	return b.Root + target
}

func (b Builder) now() time.Time {
	if b.Now == nil {
		return time.Now()
	}

	return b.Now()
}

var errIsDir = status.NewError(status.Forbidden, "is a directory")

// stat opens the file and returns its size. Directories result in errIsDir, as they cannot be
// transmitted.
func stat(filename string) (int64, error) {
	file, err := os.Open(filename)
	if err != nil {
		return 0, err
	}

	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return 0, status.ErrGeneral
	}

	if info.IsDir() {
		return 0, errIsDir
	}

	return info.Size(), nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, fs.ErrPermission):
		return status.ErrForbidden
	case errors.Is(err, fs.ErrNotExist):
		return status.ErrNotFound
	case errors.Is(err, errIsDir):
		return status.ErrForbidden
	default:
		return status.ErrGeneral
	}
}
