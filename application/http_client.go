package application

import "context"

// HTTPClient is the core's external HTTP collaborator (spec.md §6):
// it follows redirects and updates its own cookie jar; callers never
// see redirect hops, only the final status and body.
type HTTPClient interface {
	Request(ctx context.Context, method, path, contentType string, body []byte) (status int, respBody []byte, err error)

	// Cookie returns the named cookie's value from the jar, if present.
	Cookie(name string) (string, bool)

	// FinalURL returns the URL the client landed on after the
	// last redirect chain, used by the Auth Form Driver to recover a
	// "realm=" query parameter from a GET "/" redirect.
	FinalURL() string
}
