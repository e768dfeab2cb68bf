// Package validator adapts go-playground/validator to Echo.
package validator

import (
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	domainerrors "pricecompare/internal/domain/errors"
)

// FieldError describes one failed validation rule in a request body.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

// CustomValidator implements echo.Validator.
type CustomValidator struct {
	validate *validator.Validate
}

// New creates a validator that reports field names from json tags.
func New() *CustomValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonTagName)

	return &CustomValidator{validate: v}
}

// Validate returns ErrValidationFailed carrying every failed field.
func (cv *CustomValidator) Validate(i any) error {
	err := cv.validate.Struct(i)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return errors.Wrap(err, "validator misuse")
	}

	fields := make([]FieldError, 0, len(validationErrs))
	for _, fe := range validationErrs {
		fields = append(fields, FieldError{
			Field: fe.Field(),
			Rule:  fe.Tag(),
			Param: fe.Param(),
		})
	}

	return domainerrors.ErrValidationFailed.WithDetails(map[string]any{"fields": fields})
}
