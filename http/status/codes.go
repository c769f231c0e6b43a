package status

import "strconv"

type (
	Code   uint16
	Status string
)

const (
	// Error is the catch-all outcome of a resolution the server couldn't classify. It has no
	// registered counterpart, so it goes to the wire as 500.
	Error Code = 0

	OK Code = 200 // RFC 9110, 15.3.1

	BadRequest            Code = 400 // RFC 9110, 15.5.1
	Forbidden             Code = 403 // RFC 9110, 15.5.4
	NotFound              Code = 404 // RFC 9110, 15.5.5
	MethodNotAllowed      Code = 405 // RFC 9110, 15.5.6
	RequestEntityTooLarge Code = 413 // RFC 9110, 15.5.14

	InternalServerError     Code = 500 // RFC 9110, 15.6.1
	HTTPVersionNotSupported Code = 505 // RFC 9110, 15.6.6
)

// Text returns the reason phrase for the code.
func Text(code Code) Status {
	switch code {
	case OK:
		return "ok"
	case BadRequest:
		return "bad request"
	case Forbidden:
		return "access denied"
	case NotFound:
		return "not found"
	case MethodNotAllowed:
		return "method not allowed"
	case RequestEntityTooLarge:
		return "request entity too large"
	case HTTPVersionNotSupported:
		return "http version not supported"
	default:
		return "a general error occured"
	}
}

// Wire returns the numeric code as it must be transmitted.
func Wire(code Code) Code {
	if code == Error {
		return InternalServerError
	}

	return code
}

// StringCode returns the decimal representation of the code as it's sent over the wire.
func StringCode(code Code) string {
	switch code = Wire(code); code {
	case OK:
		return "200"
	case BadRequest:
		return "400"
	case Forbidden:
		return "403"
	case NotFound:
		return "404"
	case MethodNotAllowed:
		return "405"
	case RequestEntityTooLarge:
		return "413"
	case InternalServerError:
		return "500"
	case HTTPVersionNotSupported:
		return "505"
	default:
		return strconv.Itoa(int(code))
	}
}
