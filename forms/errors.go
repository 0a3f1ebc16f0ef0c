package forms

import (
	"errors"
	"fmt"
)

// ValidationError reports malformed construction or reconstruction
// arguments: missing elements or spaces, or incompatible value shapes.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return "forms: " + e.Msg }

func validationErrorf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IsValidationError reports whether err is a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// TypeMismatchError reports an operand of the wrong kind, such as
// taking the derivative with respect to a coefficient that is not a
// discrete function.
type TypeMismatchError struct {
	Msg string
}

func (e *TypeMismatchError) Error() string { return "forms: " + e.Msg }

func typeMismatchErrorf(format string, args ...any) error {
	return &TypeMismatchError{Msg: fmt.Sprintf(format, args...)}
}

// IsTypeMismatch reports whether err is a TypeMismatchError.
func IsTypeMismatch(err error) bool {
	var te *TypeMismatchError
	return errors.As(err, &te)
}
