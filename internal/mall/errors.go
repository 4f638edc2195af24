package mall

import (
	"errors"
)

// RequestError reports a response outside the 2xx range. The message is a
// fixed per-operation string; the server's own error body is discarded.
type RequestError struct {
	Message string
	Status  int
}

func (e *RequestError) Error() string {
	return e.Message
}

// IsRequestFailed reports whether err is a rejected-status failure rather
// than a transport failure.
func IsRequestFailed(err error) bool {
	var re *RequestError
	return errors.As(err, &re)
}
