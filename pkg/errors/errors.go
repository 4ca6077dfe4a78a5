// Package errors provides structured error types for conceptmap.
//
// Every failure the engine can report carries a machine-readable [Code] so the
// CLI, the HTTP API and embedding callers can decide how to degrade:
//   - MALFORMED_JSON: the text held no parseable object, even after repair.
//     Callers fall back to plain-text rendering. [Error.Snippet] holds the
//     first characters of the offending text.
//   - EMPTY_SPEC: the object had no usable nodes. Callers render nothing.
//
// Non-fatal findings (dropped edges, duplicate nodes, an unresolved comparison)
// are reported as [Diagnostic] values next to the result, never as errors.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeEmptySpec, "spec has no nodes")
//	if errors.Is(err, errors.ErrCodeEmptySpec) {
//	    // render nothing
//	}
//
//	err := errors.Wrap(errors.ErrCodeMalformedJSON, cause, "decode spec").WithSnippet(text)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Engine error and diagnostic codes.
const (
	ErrCodeMalformedJSON        Code = "MALFORMED_JSON"
	ErrCodeEmptySpec            Code = "EMPTY_SPEC"
	ErrCodeUnresolvedComparison Code = "UNRESOLVED_COMPARISON"
	ErrCodeDanglingEdge         Code = "DANGLING_EDGE"
	ErrCodeDuplicateNode        Code = "DUPLICATE_NODE"
)

// Infrastructure error codes.
const (
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeNotFound      Code = "NOT_FOUND"
	ErrCodeInternal      Code = "INTERNAL_ERROR"
)

// SnippetLength is the maximum number of characters kept in [Error.Snippet].
const SnippetLength = 200

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
	Snippet string // Leading part of the offending input (optional)
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

// WithSnippet records the first SnippetLength characters of text and returns e.
func (e *Error) WithSnippet(text string) *Error {
	e.Snippet = Truncate(text, SnippetLength)
	return e
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

// SnippetOf returns the snippet attached to err, or "".
func SnippetOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Snippet
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

// Truncate returns at most n runes of s.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// Diagnostic is a non-fatal finding produced while resolving a spec.
type Diagnostic struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

// Diagnosef builds a Diagnostic with a formatted message.
func Diagnosef(code Code, format string, args ...any) Diagnostic {
	return Diagnostic{Code: code, Message: fmt.Sprintf(format, args...)}
}

// String returns "CODE: message".
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Code, d.Message)
}
