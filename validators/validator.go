package validators

import (
	"github.com/go-playground/validator/v10"
)

// Validator adapts go-playground/validator to Echo's Validator interface
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a Validator with a shared validate instance
func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

// Validate runs struct validation on a bound request payload
func (v *Validator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}
