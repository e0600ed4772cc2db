// Package common contains shared constants and sentinel errors used across
// the communityfeed client components.
package common

// AuthorizationHeaderName is the HTTP header used to carry the access token
// on outbound API requests.
const AuthorizationHeaderName = "Authorization"

// BearerScheme prefixes the access token in the authorization header.
const BearerScheme = "Bearer"

// RequestIDHeaderName tags every outbound API request with a unique id.
const RequestIDHeaderName = "X-Request-ID"

// Storage keys.
const (
	// SessionStorageKey holds the JSON snapshot of the session in persistent storage.
	SessionStorageKey = "cp_auth"
	// RedirectStorageKey holds the pending post-login path in session-scoped storage.
	RedirectStorageKey = "cp_redirect_url"
)

// Well-known client routes.
const (
	LoginPath    = "/login"
	RegisterPath = "/register"
	LandingPath  = "/feed"
)
