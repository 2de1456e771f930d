package siwe

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidField is matched by every *InvalidFieldError through errors.Is.
	ErrInvalidField = errors.New("invalid siwe message field")
	// ErrInvalidAddress is returned when the address cannot be normalized.
	ErrInvalidAddress = errors.New("invalid ethereum address")
	// ErrMissingField is returned when a parsed message lacks a required field.
	ErrMissingField = errors.New("missing siwe message field")
)

// InvalidFieldError reports the first message field that failed validation.
type InvalidFieldError struct {
	Field  string
	Value  string
	Reason string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("%s %q: %s (provided value: %s)", ErrInvalidField, e.Field, e.Reason, e.Value)
}

// Is makes errors.Is(err, ErrInvalidField) hold for any field error.
func (e *InvalidFieldError) Is(target error) bool {
	return target == ErrInvalidField
}

func invalidField(field, value, reason string) *InvalidFieldError {
	return &InvalidFieldError{Field: field, Value: value, Reason: reason}
}
