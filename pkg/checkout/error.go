package checkout

import (
	"errors"
	"fmt"
)

var (
	// -- Validation --
	ErrInvalidType  = errors.New("invalid type")
	ErrInvalidValue = errors.New("invalid value")
	ErrImmutable    = errors.New("attribute is immutable")

	// -- Lookup --
	ErrItemNotFound = errors.New("cart item not found")
)

// ValidationError describes a rejected construction or mutation. It unwraps
// to ErrInvalidType, ErrInvalidValue or ErrImmutable.
type ValidationError struct {
	Field   string
	Message string
	Kind    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}

func typeError(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...), Kind: ErrInvalidType}
}

func valueError(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...), Kind: ErrInvalidValue}
}
