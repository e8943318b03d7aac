// Package errors provides structured error types for scriptify.
package errors

import (
	"fmt"
)

// ErrorCode identifies specific error conditions
type ErrorCode string

const (
	ErrCodeValidation ErrorCode = "VALIDATION_ERROR"
	ErrCodeNotFound   ErrorCode = "NOT_FOUND"
	ErrCodeParse      ErrorCode = "PARSE_ERROR"
	ErrCodeClassify   ErrorCode = "CLASSIFY_ERROR"
	ErrCodeOrigin     ErrorCode = "ORIGIN_ERROR"
	ErrCodeStore      ErrorCode = "STORE_ERROR"
)

// Error is the base error type for scriptify
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
	Details map[string]interface{}
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new error with the given code and message
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Wrap creates a new error wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
		Details: make(map[string]interface{}),
	}
}

// WithDetails adds details to an error
func (e *Error) WithDetails(details map[string]interface{}) *Error {
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail adds a single detail to an error
func (e *Error) WithDetail(key string, value interface{}) *Error {
	e.Details[key] = value
	return e
}

// ValidationError creates a validation error
func ValidationError(message string, details map[string]interface{}) *Error {
	return &Error{
		Code:    ErrCodeValidation,
		Message: message,
		Details: details,
	}
}

// ClassifyError creates an error for a resource id whose kind is unknown
func ClassifyError(resourceID string) *Error {
	return &Error{
		Code:    ErrCodeClassify,
		Message: fmt.Sprintf("cannot determine resource kind of %q", resourceID),
		Details: map[string]interface{}{
			"resource_id": resourceID,
		},
	}
}

// OriginError creates an error for a parent combination outside the origin table
func OriginError(childKind string, parentKinds []string) *Error {
	return &Error{
		Code:    ErrCodeOrigin,
		Message: fmt.Sprintf("no origin rule for %s with parents %v", childKind, parentKinds),
		Details: map[string]interface{}{
			"child_kind":   childKind,
			"parent_kinds": parentKinds,
		},
	}
}

// ParseError creates a parse error
func ParseError(filePath string, err error) *Error {
	return &Error{
		Code:    ErrCodeParse,
		Message: fmt.Sprintf("failed to parse %s", filePath),
		Cause:   err,
		Details: map[string]interface{}{
			"file": filePath,
		},
	}
}

// StoreError creates a store backend error
func StoreError(backend string, operation string, err error) *Error {
	return &Error{
		Code:    ErrCodeStore,
		Message: fmt.Sprintf("store backend %s failed during %s", backend, operation),
		Cause:   err,
		Details: map[string]interface{}{
			"backend":   backend,
			"operation": operation,
		},
	}
}

// Is checks if the error matches the given code
func Is(err error, code ErrorCode) bool {
	if e, ok := err.(*Error); ok {
		return e.Code == code
	}
	return false
}
