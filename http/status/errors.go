package status

type HTTPError struct {
	Message string
	Code    Code
}

func NewError(code Code, message string) error {
	return HTTPError{
		Code:    code,
		Message: message,
	}
}

func (h HTTPError) Error() string {
	return h.Message
}

var (
	ErrBadRequest              = NewError(BadRequest, "bad request")
	ErrForbidden               = NewError(Forbidden, "access denied")
	ErrNotFound                = NewError(NotFound, "not found")
	ErrGeneral                 = NewError(Error, "a general error occured")
	ErrMethodNotAllowed        = NewError(MethodNotAllowed, "method not allowed")
	ErrRequestEntityTooLarge   = NewError(RequestEntityTooLarge, "request entity too large")
	ErrHTTPVersionNotSupported = NewError(HTTPVersionNotSupported, "http version not supported")
)

// CodeOf extracts the status code from an error. Errors that aren't an HTTPError are
// general errors.
func CodeOf(err error) Code {
	if httpErr, ok := err.(HTTPError); ok {
		return httpErr.Code
	}

	return Error
}
