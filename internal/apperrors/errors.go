package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a referenced resource (document, bank account,
// cash box, payment method, cost center, ledger entry) does not exist.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks
// (malformed upload, zero valid rows, bad date/value formats).
var ErrValidation = errors.New("validation error")

// ErrConflict indicates an operation attempted against a resource whose
// current state forbids it (already settled, not settled, missing value).
var ErrConflict = errors.New("conflicting state")

// ErrInternal indicates an unexpected failure inside an atomic step. The
// underlying cause is logged but never surfaced to the caller.
var ErrInternal = errors.New("internal error")

// ErrDuplicate indicates an attempt to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// AppError wraps an underlying error with a status code and a message safe
// to surface to callers.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is maps the wrapped status code onto the sentinel taxonomy, so callers
// can match repository failures with errors.Is without knowing which layer
// produced them.
func (e *AppError) Is(target error) bool {
	switch target {
	case ErrInternal:
		return e.Code >= 500
	case ErrNotFound:
		return e.Code == 404
	case ErrConflict:
		return e.Code == 409
	default:
		return false
	}
}

// NewAppError creates an AppError wrapping cause. Repositories use this to
// convert raw store failures so callers never observe driver errors.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
