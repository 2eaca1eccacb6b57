// Package errors provides structured error types for the inkpress renderer.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI and API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes map onto the renderer's failure taxonomy:
//   - STRUCTURAL: malformed element shape (wrong arity, bad child type)
//   - UNKNOWN_ELEMENT: unsupported element tag
//   - INVALID_ATTRIBUTE: missing or invalid element attribute
//   - UNSUPPORTED_TRANSFORM: unrecognized transform operation
//   - RESOURCE_LOAD: image/emoji resource lookup failure
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnknownElement, "unknown element tag: %s", tag)
//	if errors.Is(err, errors.ErrCodeUnknownElement) {
//	    // Handle unknown tag
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeResourceLoad, origErr, "decode %s", src)
//
// Propagation is fail-fast everywhere: any error aborts the whole
// render/assembly with no partial output. Callers catch at the top-level
// entry points (CLI, API, pipeline).
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Element tree errors
	ErrCodeStructural     Code = "STRUCTURAL"
	ErrCodeUnknownElement Code = "UNKNOWN_ELEMENT"

	// Attribute validation errors
	ErrCodeInvalidAttribute Code = "INVALID_ATTRIBUTE"
	ErrCodeInvalidColor     Code = "INVALID_COLOR"

	// Transform errors
	ErrCodeUnsupportedTransform Code = "UNSUPPORTED_TRANSFORM"

	// Resource errors (image/emoji extension)
	ErrCodeResourceLoad     Code = "RESOURCE_LOAD"
	ErrCodeResourceNotFound Code = "RESOURCE_NOT_FOUND"

	// Input surface errors
	ErrCodeInvalidManifest Code = "INVALID_MANIFEST"
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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
