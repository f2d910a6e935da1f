package pamenv

import (
	"errors"
	"fmt"
)

// ErrInvalidText is returned when a stored name or value is not valid UTF-8.
var ErrInvalidText = errors.New("environment entry is not valid text")

// Field identifies which half of an entry failed validation.
type Field string

const (
	// FieldName is the part before the first '='.
	FieldName Field = "name"
	// FieldValue is the part after the first '='.
	FieldValue Field = "value"
)

// DecodeError reports the entry that could not be converted to text.
type DecodeError struct {
	Index int
	Field Field
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("environment entry %d: %s: %v", e.Index, e.Field, ErrInvalidText)
}

// Unwrap returns ErrInvalidText so callers can use errors.Is.
func (e *DecodeError) Unwrap() error {
	return ErrInvalidText
}
