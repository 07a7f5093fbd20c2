// Package errors provides structured error types for the sketchflow engine.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI and API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - CONFLICT: re-binding an already occupied containment slot
//   - INVALID_REFERENCE: binding against an element id that does not exist
//   - STATE_ERROR: unbalanced group start/end calls
//   - VALIDATION_ERROR: referential-integrity failures found at assembly
//   - INVALID_*: input validation failures (manifest, format, pattern)
//
// # Usage
//
//	err := errors.New(errors.ErrCodeConflict, "shape %s already contains text", id)
//	if errors.Is(err, errors.ErrCodeConflict) {
//	    // Handle the occupied slot
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidManifest, origErr, "parse %s", path)
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Binding errors
	ErrCodeConflict         Code = "CONFLICT"
	ErrCodeInvalidReference Code = "INVALID_REFERENCE"
	ErrCodeStateError       Code = "STATE_ERROR"
	ErrCodeValidation       Code = "VALIDATION_ERROR"

	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidManifest Code = "INVALID_MANIFEST"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidPattern  Code = "INVALID_PATTERN"

	// Resource not found errors
	ErrCodeNotFound Code = "NOT_FOUND"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// ValidationError aggregates every violation found during a document
// integrity pass. The assembler collects all broken references and group
// cycles before failing, so callers see the complete picture rather than
// just the first problem.
type ValidationError struct {
	Violations []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	switch len(e.Violations) {
	case 0:
		return string(ErrCodeValidation)
	case 1:
		return fmt.Sprintf("%s: %s", ErrCodeValidation, e.Violations[0])
	default:
		return fmt.Sprintf("%s: %d violations: %s",
			ErrCodeValidation, len(e.Violations), strings.Join(e.Violations, "; "))
	}
}

// Code returns the error code for this error type.
func (e *ValidationError) Code() Code {
	return ErrCodeValidation
}

// AsValidation reports whether err is (or wraps) a ValidationError and
// returns it for inspection of the individual violations.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
