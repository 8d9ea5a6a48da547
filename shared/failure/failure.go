package failure

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is a machine-checkable classification of a Failure, independent of the
// HTTP code used to render it.
type Kind string

const (
	KindValidation        Kind = "validation"
	KindConflict          Kind = "conflict"
	KindRoomConflict      Kind = "room_conflict"
	KindProviderConflict  Kind = "provider_conflict"
	KindRoomUnavailable   Kind = "room_unavailable"
	KindInvalidTransition Kind = "invalid_transition"
	KindNotFound          Kind = "not_found"
	KindDuplicate         Kind = "duplicate"
	KindBackendMismatch   Kind = "backend_mismatch"
	KindBadRequest        Kind = "bad_request"
	KindInternal          Kind = "internal"
)

// Failure is a wrapper for error messages, kinds and codes using standard HTTP response codes.
type Failure struct {
	Code    int    `json:"code"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

// Error returns the failure message.
func (e *Failure) Error() string {
	return e.Message
}

// BadRequest returns a new Failure with code for bad requests.
func BadRequest(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusBadRequest,
			Kind:    KindBadRequest,
			Message: err.Error(),
		}
	}

	return nil
}

// BadRequestFromString returns a new Failure with code for bad requests with message set from string.
func BadRequestFromString(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Kind:    KindBadRequest,
		Message: msg,
	}
}

// Validation returns a new Failure for an invalid create/update input, naming
// the offending field.
func Validation(field, reason string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Kind:    KindValidation,
		Message: fmt.Sprintf("%s: %s", field, reason),
	}
}

// Conflict returns a new Failure for business-rule rejections such as
// double-booking a room or a provider.
func Conflict(message string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Kind:    KindConflict,
		Message: message,
	}
}

// RoomConflict returns a new Failure for a room already holding an active
// appointment at the exact requested time.
func RoomConflict(message string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Kind:    KindRoomConflict,
		Message: message,
	}
}

// ProviderConflict returns a new Failure for a provider already holding an
// active appointment at the exact requested time.
func ProviderConflict(message string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Kind:    KindProviderConflict,
		Message: message,
	}
}

// RoomUnavailable returns a new Failure for an attempt to schedule a room that
// is already occupied.
func RoomUnavailable(message string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Kind:    KindRoomUnavailable,
		Message: message,
	}
}

// InvalidTransition returns a new Failure for a lifecycle state machine violation.
func InvalidTransition(message string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Kind:    KindInvalidTransition,
		Message: message,
	}
}

// NotFound returns a new Failure with code for entity not found.
func NotFound(entityName string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Kind:    KindNotFound,
		Message: entityName,
	}
}

// Duplicate returns a new Failure for an entity that already exists.
func Duplicate(message string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Kind:    KindDuplicate,
		Message: message,
	}
}

// BackendMismatch returns a new Failure for an attempt to rebind the scheduling
// engine to a different storage backend within the same process.
func BackendMismatch(message string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Kind:    KindBackendMismatch,
		Message: message,
	}
}

// InternalError returns a new Failure with code for internal error and message derived from an error interface.
func InternalError(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusInternalServerError,
			Kind:    KindInternal,
			Message: err.Error(),
		}
	}

	return nil
}

// GetCode returns the error code of an error interface.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// GetKind returns the failure kind of an error interface, or KindInternal for
// errors that are not failures.
func GetKind(err error) Kind {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Kind
	}

	return KindInternal
}

// IsKind reports whether the error is a Failure of the given kind.
func IsKind(err error, kind Kind) bool {
	return GetKind(err) == kind
}
