package validator

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

type registerInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
	Points   int    `validate:"min=0"`
}

func TestFormatValidationError(t *testing.T) {
	v := validator.New()

	err := v.Struct(registerInput{Email: "not-an-email", Password: "123", Points: -1})
	msg := FormatValidationError(err)

	assert.Contains(t, msg, "Email must be a valid email")
	assert.Contains(t, msg, "Password must be at least 6 characters")
	assert.Contains(t, msg, "Points must be at least 0")
}

func TestFormatValidationErrorPassThrough(t *testing.T) {
	assert.Equal(t, "EOF", FormatValidationError(errors.New("EOF")))
}
