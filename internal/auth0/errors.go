package auth0

import "fmt"

// UpstreamError is a non-2xx response from the Auth0 Management API.
// Callers decide whether it is fatal: the reconciliation layer treats
// mirroring failures as log-and-continue.
type UpstreamError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("auth0 %s: status %d: %s", e.Op, e.StatusCode, e.Body)
}
