package session

import (
	"errors"
	"fmt"
)

// ErrNotConfigured is returned by Start when the transport credential is
// missing. It is detected before any network activity, so the caller can
// distinguish a configuration gap from a failed connection attempt.
var ErrNotConfigured = errors.New("session: transport is not configured")

// ErrAlreadyActive is returned by Start when the session is not idle.
var ErrAlreadyActive = errors.New("session: already active")

// ConnectionError wraps a failed connection attempt. It is distinct from
// ErrNotConfigured: the credential was present but the call could not be
// established.
type ConnectionError struct {
	Err error
}

// Error implements the error interface.
func (e *ConnectionError) Error() string {
	return fmt.Sprintf("session: connect: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *ConnectionError) Unwrap() error { return e.Err }
