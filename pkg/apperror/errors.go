package apperror

import (
	"errors"
	"net/http"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
	cause   error
}

// FieldError describes a single invalid request field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause for errors.Is/errors.As chains
func (e *AppError) Unwrap() error {
	return e.cause
}

// Is matches on code and message so a sentinel wrapped via WithCause still
// satisfies errors.Is against the original sentinel.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// WithCause returns a copy of the error carrying the underlying cause.
// The sentinel itself is never mutated.
func (e *AppError) WithCause(cause error) *AppError {
	return &AppError{
		Code:    e.Code,
		Message: e.Message,
		cause:   cause,
	}
}

// Common errors
var (
	ErrNotFound           = &AppError{Code: http.StatusNotFound, Message: "Resource not found"}
	ErrUnauthorized       = &AppError{Code: http.StatusUnauthorized, Message: "Unauthorized"}
	ErrForbidden          = &AppError{Code: http.StatusForbidden, Message: "Forbidden"}
	ErrBadRequest         = &AppError{Code: http.StatusBadRequest, Message: "Bad request"}
	ErrInternalServer     = &AppError{Code: http.StatusInternalServerError, Message: "Internal server error"}
	ErrInvalidCredentials = &AppError{Code: http.StatusUnauthorized, Message: "Invalid cashier name or PIN"}
	ErrTokenExpired       = &AppError{Code: http.StatusUnauthorized, Message: "Token has expired"}
	ErrInvalidToken       = &AppError{Code: http.StatusUnauthorized, Message: "Invalid token"}
)

// Commit engine errors. These map 1:1 to the failure modes of the
// receipt commit path; everything else becomes a generic CommitFailed.
var (
	// ErrStorageUnavailable means the receipt database could not be opened.
	// Fatal for the operation, reported to the user, never retried automatically.
	ErrStorageUnavailable = &AppError{Code: http.StatusServiceUnavailable, Message: "Receipt storage is unavailable"}

	// ErrTransactionAlreadyOpen is a programmer error: a scoped transaction
	// was requested while another one is already open on the same context.
	ErrTransactionAlreadyOpen = &AppError{Code: http.StatusInternalServerError, Message: "A transaction is already open"}

	// ErrNoOpenTransaction is the dual misuse: a component that must
	// participate in a caller-open transaction was invoked without one.
	ErrNoOpenTransaction = &AppError{Code: http.StatusInternalServerError, Message: "No open transaction"}

	// ErrDailySequenceExhausted means more than 9999 receipts were issued
	// in a single calendar day. Operator intervention required.
	ErrDailySequenceExhausted = &AppError{Code: http.StatusConflict, Message: "Daily receipt sequence exhausted"}

	ErrReceiptNotFound = &AppError{Code: http.StatusNotFound, Message: "Receipt not found"}
	ErrReceiptNotHeld  = &AppError{Code: http.StatusConflict, Message: "Receipt is not held for payment"}

	// ErrCommitInProgress rejects a payment request that arrives while a
	// previous commit is still in flight on this process.
	ErrCommitInProgress = &AppError{Code: http.StatusConflict, Message: "A payment is already being processed"}
)

// NewAppError creates a new application error
func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// NewCommitFailedError wraps an unexpected write failure (constraint
// violation, I/O error) behind the generic user-facing commit error.
// The cause stays attached for out-of-band logging.
func NewCommitFailedError(cause error) *AppError {
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: "Failed to commit sale",
		cause:   cause,
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Message: resource + " not found",
	}
}

// NewConflictError creates a conflict error with a custom message
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Message: message,
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
	}
}
