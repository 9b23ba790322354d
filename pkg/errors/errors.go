package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors for common scenarios.
var (
	ErrInvalidCredentials = New("INVALID_CREDENTIALS", http.StatusUnauthorized, "invalid email or password")
	ErrInactiveAccount    = New("ACCOUNT_INACTIVE", http.StatusForbidden, "account is inactive")
	ErrNotFound           = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrForbidden          = New("FORBIDDEN", http.StatusForbidden, "forbidden")
	ErrUnauthorized       = New("UNAUTHORIZED", http.StatusUnauthorized, "unauthorized")
	ErrValidation         = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrConflict           = New("CONFLICT", http.StatusConflict, "resource already exists")
	ErrInternal           = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
	ErrCacheMiss          = New("CACHE_MISS", http.StatusNotFound, "cache miss")
)

// Lunch record lifecycle errors. All user-facing and non-retryable.
var (
	ErrNoEmployeeIdentity  = New("NO_EMPLOYEE_IDENTITY", http.StatusUnprocessableEntity, "no employee linked with your user account")
	ErrDuplicateRecord     = New("DUPLICATE_RECORD", http.StatusConflict, "lunch already recorded for this employee on this date")
	ErrHoliday             = New("HOLIDAY", http.StatusUnprocessableEntity, "Saturday is a holiday, no lunch record allowed")
	ErrInvalidState        = New("INVALID_STATE", http.StatusConflict, "operation not allowed in the current state")
	ErrOutOfWindow         = New("OUT_OF_WINDOW", http.StatusUnprocessableEntity, "confirmation is outside the allowed time window")
	ErrTimingNotConfigured = New("TIMING_NOT_CONFIGURED", http.StatusPreconditionFailed, "lunch timing is not configured")
	ErrAlreadyCancelled    = New("ALREADY_CANCELLED", http.StatusConflict, "this record is already cancelled")
	ErrImmutableState      = New("IMMUTABLE_STATE", http.StatusConflict, "confirmed or requested records cannot be edited")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}
