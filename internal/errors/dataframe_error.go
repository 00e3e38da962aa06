// Package errors provides standardized error types for analyzer operations.
// This package defines DataFrameError for consistent error handling across
// all public APIs, with operation context and error wrapping support.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind classifies a DataFrameError.
type Kind int

const (
	// KindInvalidInput marks malformed arguments.
	KindInvalidInput Kind = iota
	// KindNotFound marks lookups of columns that have no entry.
	KindNotFound
	// KindValidation marks inputs that are well formed but violate a rule.
	KindValidation
	// KindUnsupportedType marks values of a type the operation cannot handle.
	KindUnsupportedType
	// KindInternal marks failures of an underlying library or I/O layer.
	KindInternal
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid input"
	case KindNotFound:
		return "not found"
	case KindValidation:
		return "validation"
	case KindUnsupportedType:
		return "unsupported type"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// DataFrameError represents standardized errors across all operations
type DataFrameError struct {
	Op      string // Operation name (e.g., "StatsFor", "Clean", "Select")
	Column  string // Column name if applicable
	Message string // Human-readable error description
	Kind    Kind   // Error classification
	Hint    string // Optional suggestion shown after the message
	Cause   error  // Underlying error cause
}

// Error implements the error interface
func (e *DataFrameError) Error() string {
	var msg string
	if e.Column != "" {
		msg = fmt.Sprintf("%s operation failed on column '%s': %s", e.Op, e.Column, e.Message)
	} else {
		msg = fmt.Sprintf("%s operation failed: %s", e.Op, e.Message)
	}
	if e.Hint != "" {
		msg += ". Hint: " + e.Hint
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error wrapping support
func (e *DataFrameError) Unwrap() error {
	return e.Cause
}

// Is implements error equality checking for errors.Is()
func (e *DataFrameError) Is(target error) bool {
	if df, ok := target.(*DataFrameError); ok {
		return e.Op == df.Op && e.Column == df.Column && e.Message == df.Message
	}
	return false
}

// WithHint returns a copy of the error carrying a hint
func (e *DataFrameError) WithHint(hint string) *DataFrameError {
	clone := *e
	clone.Hint = hint
	return &clone
}

// Common error constructors for consistent error creation

// NewNotFoundError creates an error for lookups of columns that have no entry,
// either because the column does not exist or because it holds no statistics.
func NewNotFoundError(op, column string) *DataFrameError {
	return &DataFrameError{
		Op:      op,
		Column:  column,
		Message: "no statistics for column",
		Kind:    KindNotFound,
	}
}

// NewColumnNotFoundError creates an error for operations on non-existent columns
func NewColumnNotFoundError(op, column string) *DataFrameError {
	return &DataFrameError{
		Op:      op,
		Column:  column,
		Message: "column does not exist",
		Kind:    KindNotFound,
	}
}

// NewInvalidInputError creates an error for invalid operation inputs
func NewInvalidInputError(op, message string) *DataFrameError {
	return &DataFrameError{
		Op:      op,
		Message: message,
		Kind:    KindInvalidInput,
	}
}

// NewUnsupportedTypeError creates an error for unsupported data types
func NewUnsupportedTypeError(op, typeName string) *DataFrameError {
	return &DataFrameError{
		Op:      op,
		Message: fmt.Sprintf("unsupported type: %s", typeName),
		Kind:    KindUnsupportedType,
	}
}

// NewValidationError creates an error for input validation failures
func NewValidationError(op, column, message string) *DataFrameError {
	return &DataFrameError{
		Op:      op,
		Column:  column,
		Message: message,
		Kind:    KindValidation,
	}
}

// NewInternalError creates an error for internal operation failures
func NewInternalError(op string, cause error) *DataFrameError {
	return &DataFrameError{
		Op:      op,
		Message: "internal error occurred",
		Kind:    KindInternal,
		Cause:   cause,
	}
}

// IsNotFound reports whether err, or any error it wraps, is a not-found DataFrameError.
func IsNotFound(err error) bool {
	return hasKind(err, KindNotFound)
}

// IsValidation reports whether err, or any error it wraps, is a validation DataFrameError.
func IsValidation(err error) bool {
	return hasKind(err, KindValidation)
}

func hasKind(err error, kind Kind) bool {
	var dfErr *DataFrameError
	if stderrors.As(err, &dfErr) {
		return dfErr.Kind == kind
	}
	return false
}
