// Package errors provides structured error types for tcgraph.
//
// Every failure the loader, the graph container, the attribute store and the
// renderer can produce is an [*Error] carrying a machine-readable [Code]. The
// codes let callers (and tests) branch on the kind of failure without string
// matching, while the message names the offending node, attribute or kind.
//
// # Error Codes
//
// Model-content violations found while building a graph:
//   - DECODE_FAILURE: the input bytes are not a valid model
//   - EMPTY_OPERATION_NAME, DUPLICATE_OPERATION_NAME
//   - UNSUPPORTED_OPERATOR_KIND, UNSUPPORTED_ATTRIBUTE_TYPE
//   - CONFLICTING_INITIALIZER_DATA
//
// Contract violations by a caller of the container or attribute store:
//   - EMPTY_NODE_NAME, NODE_KIND_CONFLICT, INVALID_REFERENCE
//   - ATTRIBUTE_TYPE_MISMATCH
//
// # Usage
//
//	err := errors.New(errors.ErrCodeDuplicateOperationName, "operation %q already exists", name)
//	if errors.Is(err, errors.ErrCodeDuplicateOperationName) {
//	    // Handle the duplicate
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeDecodeFailure, origErr, "decode model")
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Source model errors
	ErrCodeDecodeFailure = Code("DECODE_FAILURE")
	ErrCodeMissingGraph  = Code("MISSING_GRAPH")

	// Graph construction errors
	ErrCodeEmptyOperationName         = Code("EMPTY_OPERATION_NAME")
	ErrCodeDuplicateOperationName     = Code("DUPLICATE_OPERATION_NAME")
	ErrCodeUnsupportedOperatorKind    = Code("UNSUPPORTED_OPERATOR_KIND")
	ErrCodeUnsupportedAttributeType   = Code("UNSUPPORTED_ATTRIBUTE_TYPE")
	ErrCodeConflictingInitializerData = Code("CONFLICTING_INITIALIZER_DATA")

	// Container and accessor contract errors
	ErrCodeEmptyNodeName         = Code("EMPTY_NODE_NAME")
	ErrCodeNodeKindConflict      = Code("NODE_KIND_CONFLICT")
	ErrCodeInvalidReference      = Code("INVALID_REFERENCE")
	ErrCodeAttributeTypeMismatch = Code("ATTRIBUTE_TYPE_MISMATCH")

	// Input validation errors
	ErrCodeInvalidInput  = Code("INVALID_INPUT")
	ErrCodeInvalidFormat = Code("INVALID_FORMAT")
	ErrCodeFileNotFound  = Code("FILE_NOT_FOUND")

	// Internal errors
	ErrCodeInternal = Code("INTERNAL_ERROR")
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
// It walks the whole chain, so a code wrapped under a different outer code
// still matches.
func Is(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

// GetCode extracts the outermost error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message (and the cause's user message, if any)
// without code prefixes. For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return e.Message + ": " + UserMessage(e.Cause)
		}
		return e.Message
	}
	return err.Error()
}
