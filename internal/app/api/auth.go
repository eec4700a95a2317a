package api

import (
	"net/http"
	"strings"

	apperrors "batch-whisper/internal/app/errors"
)

// AuthScheme selects how the API key travels to the remote service.
type AuthScheme string

const (
	AuthBearer AuthScheme = "bearer"
	AuthAPIKey AuthScheme = "api-key"

	DefaultAPIKeyHeader = "x-api-key"
)

// ParseAuthScheme accepts "bearer" or "api-key", case-insensitively. An empty
// value means bearer.
func ParseAuthScheme(s string) (AuthScheme, error) {
	switch AuthScheme(strings.ToLower(strings.TrimSpace(s))) {
	case "", AuthBearer:
		return AuthBearer, nil
	case AuthAPIKey:
		return AuthAPIKey, nil
	default:
		return "", apperrors.InvalidField("auth scheme", s)
	}
}

// Auth describes the credential header.
type Auth struct {
	Scheme AuthScheme
	// Header is the header name used by the api-key scheme.
	Header string
}

// BearerAuth is the default Authorization: Bearer scheme.
func BearerAuth() Auth {
	return Auth{Scheme: AuthBearer}
}

func (a Auth) headerName() string {
	if a.Header == "" {
		return DefaultAPIKeyHeader
	}
	return a.Header
}

// Apply sets the credential on h.
func (a Auth) Apply(h http.Header, apiKey string) {
	if a.Scheme == AuthAPIKey {
		h.Del("Authorization")
		h.Set(a.headerName(), apiKey)
		return
	}
	h.Set("Authorization", "Bearer "+apiKey)
}

// Transport wraps base so that requests carrying an Authorization bearer token
// are rewritten to the configured scheme. SDK clients that always send a
// bearer token use it to speak the api-key scheme.
func (a Auth) Transport(base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	if a.Scheme != AuthAPIKey {
		return base
	}
	return &authTransport{auth: a, base: base}
}

type authTransport struct {
	auth Auth
	base http.RoundTripper
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	token := strings.TrimPrefix(req.Header.Get("Authorization"), "Bearer ")
	if token == "" {
		return t.base.RoundTrip(req)
	}
	clone := req.Clone(req.Context())
	t.auth.Apply(clone.Header, token)
	return t.base.RoundTrip(clone)
}
