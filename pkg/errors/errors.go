// Package errors provides structured error handling for the application,
// trimmed to the four-bucket taxonomy spec.md §7 names.
package errors

import (
	"fmt"
	"net/http"
	"runtime"
	"strings"
)

// ErrorCode represents one of the four taxonomy buckets.
type ErrorCode string

const (
	// CodeInvalidArgument — caller-supplied constraint violated. 400, never retried.
	CodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	// CodeNotFound — named recipe or resource absent. 404.
	CodeNotFound ErrorCode = "NOT_FOUND"
	// CodeDegraded marks a collaborator-unavailable condition. No service
	// returns it: degraded search paths answer with a 200 response carrying
	// a warning field and no error.
	CodeDegraded ErrorCode = "DEGRADED"
	// CodeInternal — RS failure or unexpected exception. 500, not retried.
	CodeInternal ErrorCode = "INTERNAL"
)

// AppError represents an application error with structured information.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
	Cause   error      `json:"-"`
}

func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Cause }

// StatusCode returns the HTTP status code for the error's bucket. Degraded
// errors are not meant to reach this path (callers should intercept them
// before writing a response), but StatusCode still resolves them to 200 so
// a forgotten check never regresses to a 500.
func (e *AppError) StatusCode() int {
	switch e.Code {
	case CodeInvalidArgument:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeDegraded:
		return http.StatusOK
	default:
		return http.StatusInternalServerError
	}
}

func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

func NewAppError(code ErrorCode, message, details string) *AppError {
	return &AppError{Code: code, Message: message, Details: details}
}

func NewInvalidArgument(message string) *AppError {
	return NewAppError(CodeInvalidArgument, message, "")
}

func NewNotFound(resource string) *AppError {
	message := "resource not found"
	if resource != "" {
		message = fmt.Sprintf("%s not found", resource)
	}
	return NewAppError(CodeNotFound, message, "")
}

func NewDegraded(collaborator string, cause error) *AppError {
	return NewAppError(
		CodeDegraded,
		fmt.Sprintf("%s unavailable", collaborator),
		"",
	).WithCause(cause)
}

func NewInternal(message string) *AppError {
	if message == "" {
		message = "an unexpected error occurred"
	}
	return NewAppError(CodeInternal, message, "")
}

// Wrap converts any error into an AppError, defaulting to Internal unless it
// already carries a taxonomy code.
func Wrap(err error, message string) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return NewInternal(message).WithCause(err)
}

// Is reports whether err carries the given taxonomy code.
func Is(err error, code ErrorCode) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == code
	}
	return false
}

func GetCode(err error) ErrorCode {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return CodeInternal
}

// CallerLine returns "file:line" one frame above the caller, used sparingly
// in degraded-path logging where the stack itself isn't worth carrying.
func CallerLine() string {
	_, file, line, ok := runtime.Caller(1)
	if !ok {
		return "unknown"
	}
	parts := strings.Split(file, "/")
	if len(parts) > 2 {
		file = strings.Join(parts[len(parts)-2:], "/")
	}
	return fmt.Sprintf("%s:%d", file, line)
}
