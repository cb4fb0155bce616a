package osmcha

import "strings"

// Request describes a single outbound API request before dispatch.
type Request struct {
	// URL is the absolute request address.
	URL string
	// Method is the HTTP method, e.g. "GET".
	Method string
	// Authorization carries the raw API token. The client prepends the
	// "Token " scheme immediately before dispatch, never earlier.
	Authorization string
	// ContentType is an optional Content-Type header value.
	ContentType string
}

// Validate checks that the request carries every field required for dispatch.
// All violated fields are aggregated into a single ValidationError.
func (r Request) Validate() error {
	var missing []string
	if strings.TrimSpace(r.URL) == "" {
		missing = append(missing, "url")
	}
	if strings.TrimSpace(r.Method) == "" {
		missing = append(missing, "method")
	}
	if strings.TrimSpace(r.Authorization) == "" {
		missing = append(missing, "authorization")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}
