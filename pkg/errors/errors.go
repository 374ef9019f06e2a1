// Package errors provides custom error types for the bookroll system.
// These errors enable programmatic error checking across the sheet store,
// the source readers, and the reconciliation engine.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Is is an alias for the standard library errors.Is.
var Is = errors.Is

// As is an alias for the standard library errors.As.
var As = errors.As

// Common sentinel errors for the bookroll system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrRateLimited indicates the backing store throttled the request
	ErrRateLimited = errors.New("rate limited")

	// ErrServiceBusy indicates the backing store stayed throttled through
	// every retry attempt; user-visible "service busy" failure
	ErrServiceBusy = errors.New("service busy")

	// ErrMissingColumn indicates a required column is absent from a source
	ErrMissingColumn = errors.New("missing column")

	// ErrReadOnly indicates an attempt to modify a read-only resource
	ErrReadOnly = errors.New("read only")
)

// NotFoundError represents an error when a resource is not found
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// SchemaError represents a malformed source schema: a column the merge
// depends on is missing from a source sheet. Always fatal for that call.
type SchemaError struct {
	Source string // sheet/source name, e.g. "DB_History"
	Column string // the missing column
}

// Error implements the error interface
func (e *SchemaError) Error() string {
	return fmt.Sprintf("source %s is missing required column %q", e.Source, e.Column)
}

// Is implements errors.Is support
func (e *SchemaError) Is(target error) bool {
	return target == ErrMissingColumn
}

// NewSchemaError creates a new SchemaError
func NewSchemaError(source, column string) *SchemaError {
	return &SchemaError{Source: source, Column: column}
}

// SheetError represents an error from the backing tabular store
type SheetError struct {
	Operation string // "read_all", "append_row", "update_row", "delete_row"
	Sheet     string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *SheetError) Error() string {
	if e.Sheet != "" {
		return fmt.Sprintf("sheet error during %s of %s: %s", e.Operation, e.Sheet, e.Message)
	}
	return fmt.Sprintf("sheet error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *SheetError) Unwrap() error {
	return e.Err
}

// NewSheetError creates a new SheetError
func NewSheetError(operation, sheet string, err error) *SheetError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &SheetError{
		Operation: operation,
		Sheet:     sheet,
		Message:   message,
		Err:       err,
	}
}

// MergeError represents a failure while reconciling the three sources.
// It names the source tier so user-visible failures can state which
// source/operation failed.
type MergeError struct {
	Source  string
	Message string
	Err     error
}

// Error implements the error interface
func (e *MergeError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("merge failed reading %s: %s", e.Source, e.Message)
	}
	return fmt.Sprintf("merge failed: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *MergeError) Unwrap() error {
	return e.Err
}

// NewMergeError creates a new MergeError
func NewMergeError(source string, err error) *MergeError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &MergeError{Source: source, Message: message, Err: err}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "delete", "open", "close"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsRateLimited checks if an error is a rate limit error
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// IsServiceBusy checks if an error means retries were exhausted against
// a throttling backend
func IsServiceBusy(err error) bool {
	return errors.Is(err, ErrServiceBusy)
}

// IsMissingColumn checks if an error is a source schema error
func IsMissingColumn(err error) bool {
	return errors.Is(err, ErrMissingColumn)
}

// Helper wrapping functions for common patterns

// WrapValidation wraps an error as a ValidationError
func WrapValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error()}
}

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapSheet wraps an error as a SheetError
func WrapSheet(operation, sheet string, err error) error {
	if err == nil {
		return nil
	}
	return NewSheetError(operation, sheet, err)
}

// WrapMerge wraps an error as a MergeError
func WrapMerge(source string, err error) error {
	if err == nil {
		return nil
	}
	return NewMergeError(source, err)
}
