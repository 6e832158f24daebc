package registry

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrMalformedResponse is returned when the registry answers with a 2xx
// status but the body is missing an expected field or is not valid JSON.
var ErrMalformedResponse = errors.New("malformed schema registry response")

// StatusError is returned when the registry answers with a non-2xx status.
// It carries the decoded status code and the raw response body so callers
// can distinguish, for example, an unknown subject (404) from an auth
// failure (401).
type StatusError struct {
	// StatusCode is the HTTP status returned by the registry.
	StatusCode int

	// Body is the raw response body, useful for diagnostics.
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("schema registry returned status %d: %s", e.StatusCode, e.Body)
}

// TransportError is returned when the request never produced an HTTP
// response: connection refused, DNS failure, timeout, and the like.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("schema registry request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether the error is a registry 404, meaning the
// requested schema ID, subject, or version is not known to the registry.
func IsNotFound(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound
}

// IsStatusError reports whether the error carries a non-2xx registry status.
func IsStatusError(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr)
}

// IsTransportError reports whether the error is a network-level failure
// rather than a registry response.
func IsTransportError(err error) bool {
	var transportErr *TransportError
	return errors.As(err, &transportErr)
}

// IsMalformedResponse reports whether the error indicates a 2xx response
// whose body could not be interpreted.
func IsMalformedResponse(err error) bool {
	return errors.Is(err, ErrMalformedResponse)
}
