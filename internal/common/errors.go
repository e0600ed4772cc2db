package common

import "errors"

var (
	// Session errors.
	ErrInvalidSession = errors.New("invalid session: empty access token")
	ErrStaleSession   = errors.New("stale session update discarded")

	// Lifecycle errors.
	ErrMissingRefreshToken = errors.New("missing refresh token")
)
