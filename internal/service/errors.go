package service

import "errors"

// Service-level failure conditions the HTTP layer maps onto statuses.
var (
	// ErrSessionNotFound covers both a missing session and a session owned
	// by someone else, so the API never leaks which one it was.
	ErrSessionNotFound = errors.New("session not found or access denied")

	// ErrEmptyHistory rejects a regenerate on a transcript with no prior
	// user turn. Raised before any provider call.
	ErrEmptyHistory = errors.New("no history to regenerate")
)
