package errors

import (
	"fmt"
	"net/http"
)

// AppError represents a structured application error with user-friendly and technical details.
type AppError struct {
	TechnicalMessage string
	UserMessage      string
	Code             string
	HTTPStatus       int
	OriginalError    error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %v", e.UserMessage, e.OriginalError)
}

// Unwrap returns the original error for error chaining.
func (e *AppError) Unwrap() error {
	return e.OriginalError
}

// NewAppError creates a new AppError instance.
func NewAppError(technicalMessage, userMessage, code string, status int, originalErr error) *AppError {
	return &AppError{
		TechnicalMessage: technicalMessage,
		UserMessage:      userMessage,
		Code:             code,
		HTTPStatus:       status,
		OriginalError:    originalErr,
	}
}

// Common error codes
const (
	ErrCodeInvalidIdentifier = "INVALID_IDENTIFIER"
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeValidationFailure = "VALIDATION_FAILURE"
	ErrCodeStoreFailure      = "STORE_FAILURE"
)

// NewInvalidIdentifier flags a malformed reference id supplied by the caller.
func NewInvalidIdentifier(userMessage string) *AppError {
	return &AppError{
		TechnicalMessage: userMessage,
		UserMessage:      userMessage,
		Code:             ErrCodeInvalidIdentifier,
		HTTPStatus:       http.StatusBadRequest,
	}
}

// NewNotFound flags a lookup that matched no entity. Never cached.
func NewNotFound(userMessage string) *AppError {
	return &AppError{
		TechnicalMessage: userMessage,
		UserMessage:      userMessage,
		Code:             ErrCodeNotFound,
		HTTPStatus:       http.StatusNotFound,
	}
}

// NewValidationFailure flags a request rejected before any mutation happened.
func NewValidationFailure(userMessage string) *AppError {
	return &AppError{
		TechnicalMessage: userMessage,
		UserMessage:      userMessage,
		Code:             ErrCodeValidationFailure,
		HTTPStatus:       http.StatusBadRequest,
	}
}

// NewStoreFailure wraps an underlying store error.
func NewStoreFailure(technicalMessage string, originalErr error) *AppError {
	return &AppError{
		TechnicalMessage: technicalMessage,
		UserMessage:      MsgInternalError,
		Code:             ErrCodeStoreFailure,
		HTTPStatus:       http.StatusInternalServerError,
		OriginalError:    originalErr,
	}
}
