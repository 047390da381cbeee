// Package errors defines the coded errors that cross the service and
// API boundaries. Services return *Error; the API layer maps Code to an
// HTTP status and a machine-readable body.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Stdlib re-exports so callers need only this package.
var (
	Is = errors.Is
	As = errors.As
)

// Code is a machine-readable error class.
type Code string

const (
	CodeNotFound     Code = "NOT_FOUND"
	CodeValidation   Code = "VALIDATION"
	CodeConflict     Code = "CONFLICT"
	CodeStoreFailure Code = "STORE_FAILURE"
	CodeInternal     Code = "INTERNAL"
)

var codeStatus = map[Code]int{
	CodeNotFound:     http.StatusNotFound,
	CodeValidation:   http.StatusBadRequest,
	CodeConflict:     http.StatusConflict,
	CodeStoreFailure: http.StatusBadGateway,
}

// HTTPStatus maps the code to its HTTP status; unknown codes are 500.
func (c Code) HTTPStatus() int {
	if status, ok := codeStatus[c]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// Error carries a code, a user-facing message, and optional structured
// details (field errors, failed operation reports).
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// Is matches any *Error carrying the same code, so
// errors.Is(err, ErrValidation) works regardless of message.
func (e *Error) Is(target error) bool {
	var other *Error
	return errors.As(target, &other) && e.Code == other.Code
}

func (e *Error) HTTPStatus() int { return e.Code.HTTPStatus() }

// WithDetails copies the error with structured details attached.
func (e *Error) WithDetails(details any) *Error {
	clone := *e
	clone.Details = details
	return &clone
}

// WithCause copies the error wrapping an underlying cause.
func (e *Error) WithCause(err error) *Error {
	clone := *e
	clone.cause = err
	return &clone
}

// Sentinels for errors.Is checks against a whole class.
var (
	ErrNotFound     = &Error{Code: CodeNotFound, Message: "not found"}
	ErrValidation   = &Error{Code: CodeValidation, Message: "validation failed"}
	ErrConflict     = &Error{Code: CodeConflict, Message: "conflict"}
	ErrStoreFailure = &Error{Code: CodeStoreFailure, Message: "store operation failed"}
)

func NotFound(msg string) *Error {
	return &Error{Code: CodeNotFound, Message: msg}
}

func Validation(msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg}
}

// ValidationWithDetails is Validation plus per-field details.
func ValidationWithDetails(msg string, details any) *Error {
	return &Error{Code: CodeValidation, Message: msg, Details: details}
}

func Conflict(msg string) *Error {
	return &Error{Code: CodeConflict, Message: msg}
}

// StoreFailure reports that the authoritative store rejected an
// operation; the cause keeps the driver error for logs.
func StoreFailure(msg string, cause error) *Error {
	return &Error{Code: CodeStoreFailure, Message: msg, cause: cause}
}

func Internal(msg string) *Error {
	return &Error{Code: CodeInternal, Message: msg}
}
