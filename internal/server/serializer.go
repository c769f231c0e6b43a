package server

import (
	"strconv"

	"github.com/indigo-web/httpd/http"
	"github.com/indigo-web/httpd/http/status"
	"github.com/indigo-web/httpd/transport"
)

// serializer renders the response head into a reusable buffer and writes it at once.
type serializer struct {
	client transport.Client
	buff   []byte
}

func newSerializer(client transport.Client, buff []byte) *serializer {
	return &serializer{
		client: client,
		buff:   buff[:0],
	}
}

// Write writes the status line along with the Date, Content-Length (only for status.OK) and
// Connection headers, terminated by an empty line.
func (s *serializer) Write(resp *http.Response) error {
	s.appendProtocol(resp.Protocol)
	s.appendStatus(resp)
	s.appendKnownHeader("Date: ", resp.Date)

	if resp.HasContentLength() {
		s.appendContentLength(resp.ContentLength)
	}

	s.appendKnownHeader("Connection: ", resp.Connection)
	s.crlf()

	return s.flush()
}

func (s *serializer) flush() (err error) {
	if len(s.buff) > 0 {
		_, err = s.client.Write(s.buff)
		s.buff = s.buff[:0]
	}

	return err
}

func (s *serializer) appendProtocol(protocol string) {
	s.buff = append(s.buff, protocol...)
	s.sp()
}

func (s *serializer) appendStatus(resp *http.Response) {
	s.buff = append(s.buff, status.StringCode(resp.Code)...)
	s.sp()

	phrase := resp.Phrase
	if len(phrase) == 0 {
		phrase = status.Text(resp.Code)
	}

	s.buff = append(s.buff, phrase...)
	s.crlf()
}

// appendKnownHeader expects the key to already have a colon and a space included.
func (s *serializer) appendKnownHeader(key, value string) {
	s.buff = append(s.buff, key...)
	s.buff = append(s.buff, value...)
	s.crlf()
}

func (s *serializer) appendContentLength(value int64) {
	s.buff = append(s.buff, "Content-Length: "...)
	s.buff = strconv.AppendInt(s.buff, value, 10)
	s.crlf()
}

func (s *serializer) sp() {
	s.buff = append(s.buff, ' ')
}

const crlf = "\r\n"

func (s *serializer) crlf() {
	s.buff = append(s.buff, crlf...)
}
