package services

import (
	"errors"
	"fmt"
)

// ErrNoRankConfigured is returned when the ladder is empty or a step value
// matches no interval. The ladder invariant makes the latter unreachable, but
// callers still handle it defensively.
var ErrNoRankConfigured = errors.New("no rank configured for step count")

// ValidationError reports bad input to a core operation. It is surfaced
// synchronously, before any I/O is attempted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// PersistenceError reports a failed store read or write.
type PersistenceError struct {
	Op         string
	Collection string
	ID         string
	Err        error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s/%s failed: %v", e.Op, e.Collection, e.ID, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// AuthError reports a rejection from the identity provider. Message is the
// single human-readable string shown by the sign-in/sign-up screens.
type AuthError struct {
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	return e.Message
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

func persistence(op, collection, id string, err error) error {
	return &PersistenceError{Op: op, Collection: collection, ID: id, Err: err}
}
