package store

import (
	"errors"
	"fmt"
)

// ErrAuthRequired is returned when no authenticated user scopes the call.
var ErrAuthRequired = errors.New("authentication required")

// MissingParameterError names a required identifier that was absent.
type MissingParameterError struct {
	Parameter string
}

func (e *MissingParameterError) Error() string {
	return "missing required parameter: " + e.Parameter
}

// ValidationError is a client-side, pre-persistence rejection of a payload.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError covers both "no such record" and "record not owned by this
// user" — the two are indistinguishable to callers on purpose.
type NotFoundError struct {
	Kind Kind
	ID   uint
}

func (e *NotFoundError) Error() string {
	if e.ID == 0 {
		return string(e.Kind) + " not found"
	}
	return fmt.Sprintf("%s %d not found", e.Kind, e.ID)
}

// BackendError wraps an opaque storage/transport failure.
type BackendError struct {
	Op  string
	Err error
}

func (e *BackendError) Error() string {
	return "backend failure during " + e.Op + ": " + e.Err.Error()
}

func (e *BackendError) Unwrap() error { return e.Err }
