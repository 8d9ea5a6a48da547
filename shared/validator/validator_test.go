package validator_test

import (
	"strings"
	"testing"

	"medsched/shared/validator"
)

type createRoomBody struct {
	ID       string `validate:"required"              json:"id"`
	Name     string `validate:"required,max=100"      json:"name"`
	Capacity int    `validate:"required,gte=1"        json:"capacity"`
	Category string `validate:"omitempty,max=40"      json:"category"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name        string
		data        createRoomBody
		expectError bool
	}{
		{
			name: "valid body",
			data: createRoomBody{
				ID:       "R1",
				Name:     "Consultation Room 1",
				Capacity: 4,
				Category: "CONSULTATION",
			},
			expectError: false,
		},
		{
			name: "missing id",
			data: createRoomBody{
				Name:     "Consultation Room 1",
				Capacity: 4,
			},
			expectError: true,
		},
		{
			name: "zero capacity",
			data: createRoomBody{
				ID:   "R1",
				Name: "Consultation Room 1",
			},
			expectError: true,
		},
		{
			name: "negative capacity",
			data: createRoomBody{
				ID:       "R1",
				Name:     "Consultation Room 1",
				Capacity: -2,
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.data)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name        string
		field       interface{}
		tag         string
		expectError bool
	}{
		{
			name:        "valid required string",
			field:       "ROOM001",
			tag:         "required",
			expectError: false,
		},
		{
			name:        "empty required string",
			field:       "",
			tag:         "required",
			expectError: true,
		},
		{
			name:        "capacity in range",
			field:       10,
			tag:         "gte=1,lte=100",
			expectError: false,
		},
		{
			name:        "capacity out of range",
			field:       150,
			tag:         "gte=1,lte=100",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		jsonBody    string
		expectError bool
	}{
		{
			name:        "valid JSON",
			jsonBody:    `{"id":"R1","name":"Consultation Room 1","capacity":4,"category":"CONSULTATION"}`,
			expectError: false,
		},
		{
			name:        "invalid body",
			jsonBody:    `{"id":"R1","name":"Consultation Room 1","capacity":0}`,
			expectError: true,
		},
		{
			name:        "malformed JSON",
			jsonBody:    `{"id":"R1","name":}`,
			expectError: true,
		},
		{
			name:        "empty JSON",
			jsonBody:    `{}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := strings.NewReader(tt.jsonBody)
			var data createRoomBody
			err := validator.Validate(reader, &data)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidationMessages(t *testing.T) {
	data := &createRoomBody{}
	err := validator.ValidateStruct(data)

	if err == nil {
		t.Fatal("expected validation error for empty struct")
	}

	errorMsg := err.Error()

	if !strings.Contains(errorMsg, "required") || errorMsg == "" {
		t.Errorf("expected descriptive error message containing 'required', got: %s", errorMsg)
	}
}
