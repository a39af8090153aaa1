package validator_test

import (
	"strings"
	"testing"

	"fleetrent/shared/validator"
)

type createRequest struct {
	Name     string `validate:"required" json:"name"`
	Email    string `validate:"required,email" json:"email"`
	Year     int    `validate:"gte=1950,lte=2100" json:"year"`
	Category string `validate:"oneof=sedan suv hatchback" json:"category"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name        string
		data        *createRequest
		expectError bool
	}{
		{
			name: "valid struct",
			data: &createRequest{
				Name:     "Avanza",
				Email:    "fleet@example.com",
				Year:     2022,
				Category: "suv",
			},
			expectError: false,
		},
		{
			name: "missing required field",
			data: &createRequest{
				Email:    "fleet@example.com",
				Year:     2022,
				Category: "suv",
			},
			expectError: true,
		},
		{
			name: "invalid email",
			data: &createRequest{
				Name:     "Avanza",
				Email:    "invalid-email",
				Year:     2022,
				Category: "suv",
			},
			expectError: true,
		},
		{
			name: "year out of range",
			data: &createRequest{
				Name:     "Avanza",
				Email:    "fleet@example.com",
				Year:     2150,
				Category: "suv",
			},
			expectError: true,
		},
		{
			name: "invalid category",
			data: &createRequest{
				Name:     "Avanza",
				Email:    "fleet@example.com",
				Year:     2022,
				Category: "invalid",
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(tt.data)

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
			field:       "test",
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
			name:        "valid email",
			field:       "test@example.com",
			tag:         "email",
			expectError: false,
		},
		{
			name:        "invalid email",
			field:       "invalid-email",
			tag:         "email",
			expectError: true,
		},
		{
			name:        "valid oneof",
			field:       "pending",
			tag:         "oneof=pending active",
			expectError: false,
		},
		{
			name:        "invalid oneof",
			field:       "archived",
			tag:         "oneof=pending active",
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
			jsonBody:    `{"name":"Avanza","email":"fleet@example.com","year":2022,"category":"suv"}`,
			expectError: false,
		},
		{
			name:        "invalid field value",
			jsonBody:    `{"name":"Avanza","email":"invalid-email","year":2022,"category":"suv"}`,
			expectError: true,
		},
		{
			name:        "malformed JSON",
			jsonBody:    `{"name":"Avanza","email":}`,
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
			var data createRequest
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
	data := &createRequest{}
	err := validator.ValidateStruct(data)

	if err == nil {
		t.Fatal("expected validation error for empty struct")
	}

	errorMsg := err.Error()

	if !strings.Contains(errorMsg, "required") || errorMsg == "" {
		t.Errorf("expected descriptive error message containing 'required', got: %s", errorMsg)
	}
}
