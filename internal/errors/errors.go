// Package errors provides the error kinds raised by geoascii.
//
// Every failure in the rendering core is fail-fast: it is returned at the
// point of detection with a machine-readable Code so callers can tell a bad
// geometry from a bad width without matching on message text.
//
//	err := errors.New(errors.ErrCodeInvalidConfiguration, "width must be positive, got %d", w)
//	if errors.Is(err, errors.ErrCodeInvalidConfiguration) {
//	    // fix the flags
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

const (
	// An item has no recognizable geometry, feature or geo-interface shape.
	ErrCodeInvalidInput Code = "INVALID_INPUT"
	// Width, fill, char or style settings are unusable.
	ErrCodeInvalidConfiguration Code = "INVALID_CONFIGURATION"
	// No geometries to compute a bounding box from and none supplied.
	ErrCodeEmptyBounds Code = "EMPTY_BOUNDS"
	// Grids passed to the stacker differ in width or height.
	ErrCodeDimensionMismatch Code = "DIMENSION_MISMATCH"

	// Loader errors
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeFileNotFound  Code = "FILE_NOT_FOUND"
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

// UserMessage returns the message chain without code prefixes for *Error
// values and the plain error string otherwise.
func UserMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + UserMessage(e.Cause)
}
