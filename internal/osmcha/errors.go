package osmcha

import (
	"fmt"
	"strings"
)

// ValidationError reports a request descriptor that failed pre-dispatch checks.
type ValidationError struct {
	// Fields lists the violated descriptor fields.
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid request: missing %s", strings.Join(e.Fields, ", "))
}

// RequestError reports a failed HTTP exchange with the OSMCHA API.
type RequestError struct {
	URL string
	// StatusCode is zero when the request never produced a response.
	StatusCode int
	Err        error
}

func (e *RequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("request %s failed: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("request %s failed: unexpected status %d", e.URL, e.StatusCode)
}

func (e *RequestError) Unwrap() error { return e.Err }
