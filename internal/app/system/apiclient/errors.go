package apiclient

import (
	"errors"
	"fmt"
)

// ErrNoToken is returned by Login when the API accepted the credentials but
// sent no token back.
var ErrNoToken = errors.New("apiclient: login response carried no token")

// NetworkError reports a request that never produced a usable response:
// the transport failed, the context ended, or the body could not be decoded.
type NetworkError struct {
	Method   string
	Resource string
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("apiclient: %s %s: %v", e.Method, e.Resource, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// StatusError reports a non-2xx response. Body holds a bounded excerpt of
// the response for logging; it is never interpreted.
type StatusError struct {
	Method     string
	Resource   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("apiclient: %s %s: status %d", e.Method, e.Resource, e.StatusCode)
}

// IsNetwork reports whether err is (or wraps) a *NetworkError.
func IsNetwork(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// IsRejected reports whether err is (or wraps) a *StatusError.
func IsRejected(err error) bool {
	var se *StatusError
	return errors.As(err, &se)
}

// StatusCode returns the upstream status carried by err, or 0.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}
