package statsapi

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a single-record endpoint answers with an empty envelope.
var ErrNotFound = errors.New("statsapi: not found")

// StatusError captures a non-2xx upstream response.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("statsapi %s: unexpected status %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("statsapi %s: unexpected status %d: %s", e.Endpoint, e.StatusCode, e.Body)
}

// AsStatusError attempts to unwrap an error into a StatusError.
func AsStatusError(err error) (*StatusError, bool) {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr, true
	}
	return nil, false
}

// IsNotFound reports whether err means the requested record does not exist.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrNotFound) {
		return true
	}
	statusErr, ok := AsStatusError(err)
	return ok && statusErr.StatusCode == 404
}
