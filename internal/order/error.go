package order

import (
	"errors"
	"strings"
)

var (
	ErrEmptyCart    = errors.New("cart is empty")
	ErrMissingField = errors.New("missing required field")
)

// MissingFieldError lists every blank required contact field in form order.
type MissingFieldError struct {
	Fields []string
}

func (e *MissingFieldError) Error() string {
	return ErrMissingField.Error() + ": " + strings.Join(e.Fields, ", ")
}

// Field is the first missing field.
func (e *MissingFieldError) Field() string {
	if len(e.Fields) == 0 {
		return ""
	}
	return e.Fields[0]
}

func (e *MissingFieldError) Unwrap() error {
	return ErrMissingField
}
