package mask

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by the pipeline
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrTraceFailure  = errors.New("boundary trace failed")
	ErrConfiguration = errors.New("invalid configuration")
)

// Error carries structured context for a failed pipeline operation.
type Error struct {
	Op       string // Operation that failed (e.g., "trace", "floodfill")
	Kind     string // Subject of the failure (e.g., "cell", "segment", "region")
	Cell     int    // Cell index, -1 if not applicable
	Source   int    // Trace source cell, -1 if not applicable
	Target   int    // Trace target cell, -1 if not applicable
	Boundary int    // Boundary loop index, -1 if not applicable
	Context  string // Additional context
	Cause    error  // Underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Op
	if e.Kind != "" {
		msg += " " + e.Kind
	}
	if e.Boundary >= 0 {
		msg += fmt.Sprintf(" (boundary %d)", e.Boundary)
	}
	switch {
	case e.Source >= 0 && e.Target >= 0:
		msg += fmt.Sprintf(" %d -> %d", e.Source, e.Target)
	case e.Cell >= 0:
		msg += fmt.Sprintf(" %d", e.Cell)
	}
	if e.Context != "" {
		msg += " (" + e.Context + ")"
	}
	return fmt.Sprintf("%s: %v", msg, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error's cause.
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

// ErrorBuilder provides a fluent interface for building Errors.
type ErrorBuilder struct {
	err Error
}

// NewError creates a new error builder with the given operation.
func NewError(op string) *ErrorBuilder {
	return &ErrorBuilder{err: Error{Op: op, Cell: -1, Source: -1, Target: -1, Boundary: -1}}
}

// Cell sets the subject to the given cell.
func (b *ErrorBuilder) Cell(c int) *ErrorBuilder {
	b.err.Kind = "cell"
	b.err.Cell = c
	return b
}

// Trace sets the subject to the segment from src to dst.
func (b *ErrorBuilder) Trace(src, dst int) *ErrorBuilder {
	b.err.Kind = "segment"
	b.err.Source = src
	b.err.Target = dst
	return b
}

// Region sets the subject to the named region.
func (b *ErrorBuilder) Region(name string) *ErrorBuilder {
	b.err.Kind = "region"
	if name != "" {
		b.err.Kind = fmt.Sprintf("region %q", name)
	}
	return b
}

// Boundary records which boundary loop was being processed.
func (b *ErrorBuilder) Boundary(i int) *ErrorBuilder {
	b.err.Boundary = i
	return b
}

// Context sets additional context information.
func (b *ErrorBuilder) Context(format string, args ...any) *ErrorBuilder {
	b.err.Context = fmt.Sprintf(format, args...)
	return b
}

// Cause sets the underlying error cause.
func (b *ErrorBuilder) Cause(err error) *ErrorBuilder {
	b.err.Cause = err
	return b
}

// Build returns the constructed Error.
func (b *ErrorBuilder) Build() *Error {
	return &b.err
}

// Err returns the error as an error interface.
func (b *ErrorBuilder) Err() error {
	return &b.err
}

// invalidInput wraps cause so that it matches ErrInvalidInput.
func invalidInput(cause error) error {
	if errors.Is(cause, ErrInvalidInput) {
		return cause
	}
	return fmt.Errorf("%w: %w", ErrInvalidInput, cause)
}

// IsInvalidInput returns true if err stems from malformed mesh, region or cell input.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsTraceFailure returns true if a boundary walk could not reach its target.
func IsTraceFailure(err error) bool {
	return errors.Is(err, ErrTraceFailure)
}

// IsConfigurationError returns true if err stems from a rejected Config.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrConfiguration)
}
