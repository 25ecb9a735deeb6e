package models

import (
	"errors"
	"fmt"
)

// Domain errors shared by repositories, services and handlers.
var (
	ErrNotFound        = errors.New("requested item not found")
	ErrUnauthenticated = errors.New("authentication required")
	ErrValidation      = errors.New("validation failed")
)

type validationError struct{ msg string }

func (e validationError) Error() string { return e.msg }

func (e validationError) Is(target error) bool { return target == ErrValidation }

// Invalid returns an error carrying only the formatted message that still
// matches ErrValidation under errors.Is.
func Invalid(format string, args ...interface{}) error {
	return validationError{msg: fmt.Sprintf(format, args...)}
}
