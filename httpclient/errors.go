package httpclient

import (
	"errors"
	"fmt"
)

// Sentinel errors for client operations.
var (
	// ErrMissingBaseURL is returned by New when no base URL is configured.
	ErrMissingBaseURL = errors.New("httpclient: base URL is required")

	// ErrHTTPStatus matches, via errors.Is, every *StatusError returned for
	// a non-2xx response.
	ErrHTTPStatus = errors.New("httpclient: unexpected status")
)

// StatusError reports a non-2xx response. Body holds a capped excerpt of the
// response body for diagnostics.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("httpclient: %s %s returned %d", e.Method, e.URL, e.StatusCode)
}

// Is reports whether target is ErrHTTPStatus.
func (e *StatusError) Is(target error) bool {
	return target == ErrHTTPStatus
}

// Retryable reports whether the status indicates a transient condition worth
// retrying: server errors and 429.
func (e *StatusError) Retryable() bool {
	return e.StatusCode >= 500 || e.StatusCode == 429
}
