// Package transport decorates outgoing API requests with the bearer
// credential of the current session.
package transport

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// TokenSource yields the current bearer token, or "" when logged out.
// The session store implements it.
type TokenSource interface {
	Token() string
}

// TokenFunc adapts a plain function to a TokenSource.
type TokenFunc func() string

// Token implements TokenSource.
func (f TokenFunc) Token() string { return f() }

// publicPrefixes are the route suffixes that must never carry a credential,
// so that login and account recovery work from a logged-out state.
var publicPrefixes = []string{
	"/auth/login",
	"/auth/register",
	"/auth/request-reset",
	"/auth/unlock",
}

// Authorizer is an http.RoundTripper that attaches
// "Authorization: Bearer <token>" to authenticated API calls. The token is
// read from the source on every request, so a token obtained mid-session is
// used by the very next call.
type Authorizer struct {
	// Tokens provides the current session token.
	Tokens TokenSource
	// Base is the underlying transport. Defaults to http.DefaultTransport.
	Base http.RoundTripper
}

// RoundTrip implements http.RoundTripper.
func (a *Authorizer) RoundTrip(req *http.Request) (*http.Response, error) {
	base := a.Base
	if base == nil {
		base = http.DefaultTransport
	}

	// Per RoundTripper contract the request must not be mutated in place.
	clone := req.Clone(req.Context())
	clone.Header.Set("X-Request-ID", uuid.NewString())

	if isPublic(req.URL.Path) {
		return base.RoundTrip(clone)
	}

	if token := a.Tokens.Token(); token != "" {
		clone.Header.Set("Authorization", "Bearer "+token)
	}
	// Without a token the request goes out unmodified; the server rejects it
	// if the endpoint requires auth.
	return base.RoundTrip(clone)
}

func isPublic(path string) bool {
	for _, p := range publicPrefixes {
		if strings.Contains(path, p) {
			return true
		}
	}
	return false
}
