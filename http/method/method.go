package method

import "github.com/indigo-web/utils/uf"

type Method uint8

const (
	// Unknown is any method the server doesn't serve. It's still answered, however a body
	// is never transmitted for it.
	Unknown Method = iota
	GET
	HEAD
)

func (m Method) String() string {
	switch m {
	case GET:
		return "GET"
	case HEAD:
		return "HEAD"
	default:
		return "OTHER"
	}
}

// Parse recognizes the method case-sensitively.
func Parse(str string) Method {
	switch str {
	case "GET":
		return GET
	case "HEAD":
		return HEAD
	}

	return Unknown
}

// FromBytes is the same as Parse, but doesn't copy the input.
func FromBytes(raw []byte) Method {
	return Parse(uf.B2S(raw))
}
