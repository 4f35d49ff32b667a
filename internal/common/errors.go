package common

import (
	"errors"
	"fmt"
)

// Common error types used across the application
var (
	// ErrSourceUnavailable indicates the input dataset cannot be scanned
	ErrSourceUnavailable = errors.New("source unavailable")
	// ErrDestinationWrite indicates the destination URI cannot be written
	ErrDestinationWrite = errors.New("destination write failure")
	// ErrInvalidConfiguration indicates configuration issues
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// WrapError wraps an error with additional context information
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// WrapErrorf wraps an error with formatted context information
func WrapErrorf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// NewError creates a new error with a formatted message
func NewError(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

// ValidationError represents validation errors with field-specific information
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field '%s': %s (value: %v)", e.Field, e.Message, e.Value)
}

// NewValidationError creates a new validation error
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// MalformedRecordError describes an index record missing a field that is
// required for filtering or projection. Such records are skipped and
// counted rather than failing the run.
type MalformedRecordError struct {
	Field string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record: missing field '%s'", e.Field)
}

// NewMalformedRecordError creates a new malformed record error
func NewMalformedRecordError(field string) *MalformedRecordError {
	return &MalformedRecordError{Field: field}
}
