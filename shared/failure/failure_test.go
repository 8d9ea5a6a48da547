package failure_test

import (
	"errors"
	"net/http"
	"testing"

	"medsched/shared/failure"
)

func TestFailure_Error(t *testing.T) {
	f := &failure.Failure{
		Code:    http.StatusBadRequest,
		Kind:    failure.KindValidation,
		Message: "test error message",
	}

	if f.Error() != "test error message" {
		t.Errorf("expected error message to be 'test error message', got %s", f.Error())
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		kind    failure.Kind
		message string
	}{
		{
			name:    "Validation",
			err:     failure.Validation("patientRef", "must not be empty"),
			code:    http.StatusBadRequest,
			kind:    failure.KindValidation,
			message: "patientRef: must not be empty",
		},
		{
			name:    "Conflict",
			err:     failure.Conflict("room already booked at this time"),
			code:    http.StatusConflict,
			kind:    failure.KindConflict,
			message: "room already booked at this time",
		},
		{
			name:    "RoomConflict",
			err:     failure.RoomConflict("room 'R1' is already booked at this time"),
			code:    http.StatusConflict,
			kind:    failure.KindRoomConflict,
			message: "room 'R1' is already booked at this time",
		},
		{
			name:    "ProviderConflict",
			err:     failure.ProviderConflict("provider 'DR-1' is already booked at this time"),
			code:    http.StatusConflict,
			kind:    failure.KindProviderConflict,
			message: "provider 'DR-1' is already booked at this time",
		},
		{
			name:    "RoomUnavailable",
			err:     failure.RoomUnavailable("room 'R1' is not available"),
			code:    http.StatusConflict,
			kind:    failure.KindRoomUnavailable,
			message: "room 'R1' is not available",
		},
		{
			name:    "InvalidTransition",
			err:     failure.InvalidTransition("appointment already cancelled"),
			code:    http.StatusConflict,
			kind:    failure.KindInvalidTransition,
			message: "appointment already cancelled",
		},
		{
			name:    "NotFound",
			err:     failure.NotFound("room not found"),
			code:    http.StatusNotFound,
			kind:    failure.KindNotFound,
			message: "room not found",
		},
		{
			name:    "Duplicate",
			err:     failure.Duplicate("room 'R1' already exists"),
			code:    http.StatusConflict,
			kind:    failure.KindDuplicate,
			message: "room 'R1' already exists",
		},
		{
			name:    "BackendMismatch",
			err:     failure.BackendMismatch("engine already bound to memory backend"),
			code:    http.StatusConflict,
			kind:    failure.KindBackendMismatch,
			message: "engine already bound to memory backend",
		},
		{
			name:    "BadRequestFromString",
			err:     failure.BadRequestFromString("custom bad request"),
			code:    http.StatusBadRequest,
			kind:    failure.KindBadRequest,
			message: "custom bad request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ok := tt.err.(*failure.Failure)
			if !ok {
				t.Fatalf("expected *failure.Failure, got %T", tt.err)
			}
			if f.Code != tt.code {
				t.Errorf("expected code to be %d, got %d", tt.code, f.Code)
			}
			if f.Kind != tt.kind {
				t.Errorf("expected kind to be %s, got %s", tt.kind, f.Kind)
			}
			if f.Message != tt.message {
				t.Errorf("expected message to be %s, got %s", tt.message, f.Message)
			}
		})
	}
}

func TestBadRequest(t *testing.T) {
	if failure.BadRequest(nil) != nil {
		t.Error("expected nil for nil error")
	}

	err := failure.BadRequest(errors.New("validation failed"))
	if failure.GetCode(err) != http.StatusBadRequest {
		t.Errorf("expected code %d, got %d", http.StatusBadRequest, failure.GetCode(err))
	}
}

func TestInternalError(t *testing.T) {
	if failure.InternalError(nil) != nil {
		t.Error("expected nil for nil error")
	}

	err := failure.InternalError(errors.New("boom"))
	if failure.GetCode(err) != http.StatusInternalServerError {
		t.Errorf("expected code %d, got %d", http.StatusInternalServerError, failure.GetCode(err))
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected int
	}{
		{
			name:     "failure error",
			input:    &failure.Failure{Code: http.StatusBadRequest, Message: "test"},
			expected: http.StatusBadRequest,
		},
		{
			name:     "wrapped failure error",
			input:    failure.NotFound("test"),
			expected: http.StatusNotFound,
		},
		{
			name:     "regular error",
			input:    errors.New("regular error"),
			expected: http.StatusInternalServerError,
		},
		{
			name:     "nil error",
			input:    nil,
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := failure.GetCode(tt.input)
			if result != tt.expected {
				t.Errorf("expected code to be %d, got %d", tt.expected, result)
			}
		})
	}
}

func TestGetKind(t *testing.T) {
	if failure.GetKind(failure.Conflict("x")) != failure.KindConflict {
		t.Error("expected conflict kind")
	}
	if failure.GetKind(errors.New("plain")) != failure.KindInternal {
		t.Error("expected internal kind for plain error")
	}
	if !failure.IsKind(failure.Validation("f", "r"), failure.KindValidation) {
		t.Error("expected IsKind to match validation")
	}
}
