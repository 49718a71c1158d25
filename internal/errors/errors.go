package errors

import (
	"fmt"
)

type ErrorCode string

const (
	AccountNotFound ErrorCode = "account_not_found"
	AccountNotEmpty ErrorCode = "account_not_empty"
	InvalidInput    ErrorCode = "invalid_input"
	InternalError   ErrorCode = "internal_error"
)

// AppError is the hard-failure type for caller/API-misuse errors. Business
// rule rejections are never AppErrors; they surface as FAILED transaction
// records instead.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is matches any AppError carrying the same code, so callers can use
// errors.Is against the predefined sentinel values.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

func NewAppError(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

func NewAppErrorf(code ErrorCode, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

// Predefined errors for common cases
var (
	ErrAccountNotFound = NewAppError(AccountNotFound, "account not found")
	ErrAccountNotEmpty = NewAppError(AccountNotEmpty, "account balance must be zero before closing")
	ErrInvalidInput    = NewAppError(InvalidInput, "invalid input")
)
