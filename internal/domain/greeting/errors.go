package greeting

import (
	"errors"
	"fmt"
)

// ErrMissingField is matched by errors.Is for any absent required form field.
var ErrMissingField = errors.New("missing form field")

// MissingFieldError names the required field that was not submitted.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: %q", ErrMissingField.Error(), e.Field)
}

// Unwrap lets errors.Is match ErrMissingField.
func (e *MissingFieldError) Unwrap() error { return ErrMissingField }
