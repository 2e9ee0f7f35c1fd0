package models

import (
	"errors"
	"fmt"
)

// ValidationError marks caller mistakes (inputs below minimum size,
// out-of-range options). Handlers surface the message directly with a 400;
// anything else is treated as an internal computation failure.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
