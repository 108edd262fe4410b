package llm

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrNoContent indicates a success response that carried no completion choice.
var ErrNoContent = errors.New("llm response has no completion content")

// TransportError is returned when the chat-completion call itself fails:
// either the endpoint answered with a non-success status, or the request
// never produced a response (Status == 0).
type TransportError struct {
	// Status is the HTTP status code, or 0 for network-level failures.
	Status int

	// Body is the response body (or the provider's error message).
	Body string

	// RetryAfter is the server-suggested wait for 429 responses, if known.
	RetryAfter time.Duration

	Err error
}

func (e *TransportError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("llm transport failed: %v", e.Err)
	}
	if e.Body == "" {
		return fmt.Sprintf("llm transport failed: %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("llm transport failed: %d %s - %s", e.Status, http.StatusText(e.Status), e.Body)
}

func (e *TransportError) Unwrap() error { return e.Err }

// RateLimited reports whether the endpoint rejected the call with 429.
func (e *TransportError) RateLimited() bool {
	return e.Status == http.StatusTooManyRequests
}

// Temporary reports whether the failure is plausibly transient
// (network failure, 429 or 5xx).
func (e *TransportError) Temporary() bool {
	return e.Status == 0 || e.RateLimited() || e.Status >= 500
}
