package budget

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is matched by every ValidationError.
	ErrValidation = errors.New("invalid input")
	// ErrDuplicateCategory is returned when adding a category that is already active.
	ErrDuplicateCategory = errors.New("category already exists")
	// ErrUnknownCategory is returned when an action names a category outside the active set.
	ErrUnknownCategory = errors.New("unknown category")
)

// ValidationError describes rejected user input.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("%s %q: %s", e.Field, e.Value, e.Reason)
}

// Unwrap lets errors.Is(err, ErrValidation) match.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func invalid(field, value, reason string) error {
	return &ValidationError{Field: field, Value: value, Reason: reason}
}

func duplicate(name string) error {
	return fmt.Errorf("%w: %q", ErrDuplicateCategory, name)
}

func unknown(name string) error {
	return fmt.Errorf("%w: %q", ErrUnknownCategory, name)
}
