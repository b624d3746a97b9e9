package domain

import "errors"

// Lookup errors.
var (
	// ErrNotFound signals that a requested slug has no match. It is a
	// terminal outcome, not a retryable error.
	ErrNotFound = errors.New("not found")
)

// Configuration errors.
var (
	// ErrNotConfigured is returned by clients constructed without their
	// required credentials. Construction itself never fails.
	ErrNotConfigured = errors.New("client not configured")
)
