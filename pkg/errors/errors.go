// Package errors provides structured error types for tikzdoc.
//
// Every failure surfaced by the document model, the scene loader and the
// compiler wrapper carries a machine-readable [Code]. Callers branch on the
// code, not on the message:
//
//	lines, err := doc.Export()
//	if errors.Is(err, errors.ErrCodeNoPoints) {
//	    // a drawable without points was found somewhere in the tree
//	}
//
// # Error Codes
//
// The codes mirror the failure kinds of the export protocol:
//   - FORMATTING_FAILURE: writing rendered text to a buffer failed
//   - NO_POINTS, NOT_FINITE_FLOAT, INVALID_OPTION, INVALID_OVERLAY:
//     primitive errors raised while exporting a single part
//   - PATH_IS_NO_FILE: an output path without a file-name component
//   - IO_FAILURE: file writes and subprocess invocation
//   - INVALID_SCENE, NOT_FOUND: input and environment problems
//
// # Wrapping
//
// Errors raised deep in a part tree are re-labelled by every enclosing
// container with [Prefix], so the outermost error still reports the leaf code
// while its message names the full part path.
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Rendering errors
	ErrCodeFormatting Code = "FORMATTING_FAILURE"

	// Primitive errors, raised while exporting a single part
	ErrCodeNoPoints       Code = "NO_POINTS"
	ErrCodeNotFiniteFloat Code = "NOT_FINITE_FLOAT"
	ErrCodeInvalidOption  Code = "INVALID_OPTION"
	ErrCodeInvalidOverlay Code = "INVALID_OVERLAY"

	// Output errors
	ErrCodePathIsNoFile Code = "PATH_IS_NO_FILE"
	ErrCodeIO           Code = "IO_FAILURE"

	// Input and environment errors
	ErrCodeInvalidScene Code = "INVALID_SCENE"
	ErrCodeNotFound     Code = "NOT_FOUND"
)

// primitiveCodes is the PrimitiveError family.
var primitiveCodes = map[Code]bool{
	ErrCodeNoPoints:       true,
	ErrCodeNotFiniteFloat: true,
	ErrCodeInvalidOption:  true,
	ErrCodeInvalidOverlay: true,
}

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

// Prefix returns err with segment prepended to its message, keeping the code
// and cause of err. It is used to record where in a part tree an error was
// raised: each enclosing container prefixes its own position, so the final
// message reads like "frame[0] > tikzpicture[1] > polygon[0] > no points".
// Errors without a code are wrapped as formatting failures.
func Prefix(err error, segment string) *Error {
	var e *Error
	if errors.As(err, &e) {
		return &Error{
			Code:    e.Code,
			Message: segment + " > " + e.Message,
			Cause:   e.Cause,
		}
	}
	return Wrap(ErrCodeFormatting, err, "%s", segment)
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

// As is the standard library's errors.As, so callers need only this package.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// IsPrimitive reports whether err belongs to the primitive error family
// (NO_POINTS, NOT_FINITE_FLOAT, INVALID_OPTION, INVALID_OVERLAY).
func IsPrimitive(err error) bool {
	return primitiveCodes[GetCode(err)]
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
