package server

import (
	"errors"
	"io"
	"os"

	"github.com/indigo-web/httpd/transport"
)

var errPrematureEOF = errors.New("file ended before the announced length was transmitted")

// transfer streams exactly length bytes of the file into the client, at most chunk bytes per
// step. Every step goes through the client's ReadFrom, engaging sendfile(2) where available.
// The number of bytes transmitted is returned along with the reason of falling short, if any.
func transfer(client transport.Client, filename string, length, chunk int64) (total int64, err error) {
	file, err := os.Open(filename)
	if err != nil {
		return 0, err
	}

	defer file.Close()

	for total < length {
		n, err := client.ReadFrom(io.LimitReader(file, min(chunk, length-total)))
		total += n

		switch {
		case err != nil:
			return total, err
		case n == 0:
			return total, errPrematureEOF
		}
	}

	return total, nil
}
