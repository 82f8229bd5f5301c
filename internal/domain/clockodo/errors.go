package clockodo

import (
	"fmt"
)

// UpstreamRequestError is returned when the upstream answers with a non-2xx
// status, or when the request never got an answer (StatusCode 0).
type UpstreamRequestError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
	Err        error
}

func (e *UpstreamRequestError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("clockodo request %s %s failed: %v", e.Method, e.URL, e.Err)
	}
	if e.Body == "" {
		return fmt.Sprintf("clockodo request %s %s returned status %d", e.Method, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("clockodo request %s %s returned status %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
}

func (e *UpstreamRequestError) Unwrap() error {
	return e.Err
}

// UpstreamFormatError is returned when a response body violates the envelope
// contract expected for its family.
type UpstreamFormatError struct {
	Family Family
	Reason string
}

func (e *UpstreamFormatError) Error() string {
	return fmt.Sprintf("unexpected clockodo response for %s: %s", e.Family, e.Reason)
}
