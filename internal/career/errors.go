// Package career holds the account-level workflows behind the API: onboarding,
// industry insights, resume persistence and cover letters.
package career

import (
	"errors"
	"fmt"
)

// ErrNoIdentity is returned when a workflow is invoked without an authenticated user
var ErrNoIdentity = errors.New("unauthorized")

// ValidationError is returned for input that can't be accepted as is
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// PersistenceError is a failed write. Nothing was changed locally, so the
// caller may retry.
type PersistenceError struct {
	Op    string
	Cause error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Cause)
}

func (e *PersistenceError) Unwrap() error {
	return e.Cause
}

// NotFoundError is returned when the requested resource doesn't exist for the caller
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}
