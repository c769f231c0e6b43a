package server

import (
	"errors"
	"io"

	"github.com/indigo-web/httpd/http/status"
	"github.com/indigo-web/httpd/internal/bytetok"
	"github.com/indigo-web/httpd/transport"
)

var terminator = bytetok.Token("\r\n\r\n")

// errNothingReceived means the peer went away before sending a single byte.
var errNothingReceived = errors.New("connection closed before any data was received")

// receive reads until the empty line terminating the request head. Reaching limit bytes
// without the terminator results in status.ErrRequestEntityTooLarge. If the peer closes the
// connection earlier, whatever was received so far is returned. Anything following the
// terminator is discarded, as request bodies aren't consumed.
func receive(client transport.Client, limit int) (bytetok.Token, error) {
	var buff bytetok.Token

	for {
		data, err := client.Read()
		if len(data) > 0 {
			// the terminator may straddle two reads
			from := max(0, len(buff)-len(terminator)+1)
			buff.Concat(data)

			if offset := bytetok.Index(buff[from:], terminator); offset != -1 {
				end := from + offset + len(terminator)
				if end <= limit {
					return buff[:end], nil
				}
			}

			if len(buff) >= limit {
				buff.Release()
				return nil, status.ErrRequestEntityTooLarge
			}
		}

		switch {
		case err == nil:
		case errors.Is(err, io.EOF):
			if len(buff) == 0 {
				return nil, errNothingReceived
			}

			return buff, nil
		default:
			buff.Release()
			return nil, err
		}
	}
}
