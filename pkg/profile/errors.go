package profile

import (
	"errors"
	"fmt"
)

// ErrProfileNotFound is returned when no profile exists for the given id.
var ErrProfileNotFound = errors.New("profile not found")

// ValidationError reports a field-level validation failure. Any single
// failure aborts the whole operation with no partial state change.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// ErrEmailExists is returned when a profile's email collides
// case-insensitively with another profile's. It is a specialization of
// a validation failure on the email field.
type ErrEmailExists struct {
	Email string
}

func (e ErrEmailExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// IsValidationError reports whether err is a field validation failure,
// including email uniqueness conflicts.
func IsValidationError(err error) bool {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return true
	}
	var ee ErrEmailExists
	return errors.As(err, &ee)
}
