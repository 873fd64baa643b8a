package mesh

import (
	"errors"
	"fmt"
)

// ErrMalformed is wrapped by every connectivity validation failure
var ErrMalformed = errors.New("malformed mesh connectivity")

// ValidationError describes which connectivity array failed validation and where.
type ValidationError struct {
	Field  string // Connectivity field (e.g., "CellsOnCell")
	Index  int    // Element index in that field, -1 if not element specific
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("%s[%d]: %s", e.Field, e.Index, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Unwrap lets errors.Is match ErrMalformed.
func (e *ValidationError) Unwrap() error {
	return ErrMalformed
}

func invalid(field string, index int, format string, args ...any) error {
	return &ValidationError{Field: field, Index: index, Reason: fmt.Sprintf(format, args...)}
}
