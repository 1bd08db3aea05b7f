package apperrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorError(t *testing.T) {
	tests := []struct {
		name     string
		appError *AppError
		expected string
	}{
		{
			name: "With Code",
			appError: &AppError{
				Code:    "TEST_CODE",
				Message: "This is a test error",
			},
			expected: "[TEST_CODE] This is a test error",
		},
		{
			name: "Without Code",
			appError: &AppError{
				Message: "This is a test error without code",
			},
			expected: "This is a test error without code",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.appError.Error()
			if result != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("customerName", "Please enter customer name")

	assert.True(t, errors.Is(err, ErrValidation))
	ve, ok := AsValidationError(err)
	assert.True(t, ok)
	assert.Equal(t, "customerName", ve.Field)
	assert.Equal(t, "Please enter customer name", ve.Message)
	assert.Contains(t, err.Error(), "validation failed for field 'customerName'")
}

func TestValidationErrorWithoutField(t *testing.T) {
	ve := &ValidationError{Message: "bad input"}
	assert.Equal(t, "validation failed: bad input", ve.Error())
}

func TestWrapRequestFailure(t *testing.T) {
	cause := errors.New("connection refused")
	err := WrapRequestFailure("list customers", cause)

	assert.True(t, errors.Is(err, ErrRequestFailed))
	assert.True(t, errors.Is(err, cause))
	assert.False(t, errors.Is(err, ErrValidation))
	assert.Equal(t, "[GATEWAY_ERROR] list customers failed", err.Error())

	_, ok := AsValidationError(err)
	assert.False(t, ok)
}

func TestWrapDatabaseError(t *testing.T) {
	err := WrapDatabaseError(errors.New("boom"), "insert snapshot")
	assert.True(t, errors.Is(err, ErrDatabase))
	assert.Equal(t, "[DB_ERROR] insert snapshot", err.Error())
}
