package errx

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	// SystemErrorMessage is a user-facing fallback when internal errors occur.
	SystemErrorMessage = "an internal error occurred"
	// LedgerUnavailableMessage describes an unreachable ledger service.
	LedgerUnavailableMessage = "the blockchain service is unavailable"
	// RedisErrorMessage describes Redis related failures.
	RedisErrorMessage = "redis operation failed"
	// RedisNotFoundMessage describes a missing Redis key.
	RedisNotFoundMessage = "key not found"
)

// AppError wraps an underlying error with an HTTP status and safe message.
// The message is what callers may see; the wrapped error stays in the logs.
type AppError struct {
	Err     error
	Status  int
	Message string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap exposes the underlying error for errors.Is / errors.As support.
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether the target matches the underlying error or the AppError itself.
func (e *AppError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// As allows casting to AppError or the wrapped error in a chain.
func (e *AppError) As(target any) bool {
	if errors.As(e.Err, target) {
		return true
	}
	if t, ok := target.(**AppError); ok {
		*t = e
		return true
	}
	return false
}

// New creates a new AppError with the provided information.
func New(err error, status int, message string) *AppError {
	return &AppError{
		Err:     err,
		Status:  status,
		Message: message,
	}
}

// ServiceUnavailable marks a collaborator as unreachable (transport failure).
func ServiceUnavailable(err error, message string) *AppError {
	return New(err, http.StatusServiceUnavailable, message)
}

// Upstream marks a collaborator that answered with a non-2xx status. The
// message carries the upstream detail since it is part of the contract.
func Upstream(err error, message string) *AppError {
	return New(err, http.StatusBadGateway, message)
}

// Invalid marks a collaborator response that violates the expected shape.
func Invalid(err error, message string) *AppError {
	return New(err, http.StatusInternalServerError, message)
}

// NotFound marks a lookup that completed without a match.
func NotFound(message string) *AppError {
	return New(nil, http.StatusNotFound, message)
}

// Internal wraps any other unexpected failure with a generic safe message.
func Internal(err error) *AppError {
	return New(err, http.StatusInternalServerError, SystemErrorMessage)
}

// StatusOf extracts the HTTP status from an error chain, defaulting to 500.
func StatusOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return http.StatusInternalServerError
}

// MessageOf extracts the safe message from an error chain.
func MessageOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return SystemErrorMessage
}
