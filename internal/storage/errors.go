package storage

import (
	"errors"
	"fmt"
)

// ErrorKind classifies persistence failures. Callers decide retry policy from
// the kind, never from the backend identity.
type ErrorKind string

const (
	ErrKindConfiguration     ErrorKind = "configuration"
	ErrKindUnavailable       ErrorKind = "unavailable"
	ErrKindTimeout           ErrorKind = "timeout"
	ErrKindIntegrity         ErrorKind = "integrity"
	ErrKindCorrupted         ErrorKind = "corrupted"
	ErrKindPermission        ErrorKind = "permission"
	ErrKindInsufficientSpace ErrorKind = "insufficient_space"
	ErrKindNotFound          ErrorKind = "not_found"
	ErrKindAlreadyExists     ErrorKind = "already_exists"
	ErrKindInternal          ErrorKind = "internal"
)

// Error is the common persistence failure type every backend wraps its
// concrete failures into. It carries enough context (operation, entity id,
// backend) for a caller to log and to pick a retry policy.
type Error struct {
	Kind     ErrorKind
	Op       string
	Backend  Kind
	EntityID string
	Err      error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s %s: %s backend: %s", e.Op, e.EntityID, e.Backend, e.Kind)
	if e.EntityID == "" {
		msg = fmt.Sprintf("%s: %s backend: %s", e.Op, e.Backend, e.Kind)
	}

	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}

	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Retryable reports whether the failure is transient by convention: only
// timeouts and backend unavailability qualify.
func (e *Error) Retryable() bool {
	return e.Kind == ErrKindTimeout || e.Kind == ErrKindUnavailable
}

func newError(kind ErrorKind, op string, backend Kind, entityID string, err error) *Error {
	return &Error{
		Kind:     kind,
		Op:       op,
		Backend:  backend,
		EntityID: entityID,
		Err:      err,
	}
}

// KindOf returns the persistence error kind, or ErrKindInternal for errors
// that did not originate in a backend.
func KindOf(err error) ErrorKind {
	var storageErr *Error
	if errors.As(err, &storageErr) {
		return storageErr.Kind
	}

	return ErrKindInternal
}

// IsRetryable reports whether the error is a transient persistence failure.
func IsRetryable(err error) bool {
	var storageErr *Error
	if errors.As(err, &storageErr) {
		return storageErr.Retryable()
	}

	return false
}

// IsNotFound reports whether the error is a missing-entity persistence failure.
func IsNotFound(err error) bool {
	return KindOf(err) == ErrKindNotFound
}

// IsAlreadyExists reports whether the error is a duplicate-entity persistence failure.
func IsAlreadyExists(err error) bool {
	return KindOf(err) == ErrKindAlreadyExists
}
