package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	// Transient analysis failures, eligible for retry with backoff.
	ErrorTypeQuotaExceeded ErrorType = "quota_exceeded"
	ErrorTypeUnavailable   ErrorType = "unavailable"
	ErrorTypeTimeout       ErrorType = "timeout"

	// Permanent analysis failures, never retried.
	ErrorTypeInvalidImage ErrorType = "invalid_image"
	ErrorTypeUnauthorized ErrorType = "unauthorized"

	// Local failures.
	ErrorTypeSynthesis  ErrorType = "synthesis"
	ErrorTypeFilesystem ErrorType = "filesystem"
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeInternal   ErrorType = "internal"
)

// AppError represents a structured application error
type AppError struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
	Cause   error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Transient reports whether this error category is worth retrying.
func (e *AppError) Transient() bool {
	switch e.Type {
	case ErrorTypeQuotaExceeded, ErrorTypeUnavailable, ErrorTypeTimeout:
		return true
	}
	return false
}

// NewQuotaError creates a quota-exhaustion error (transient)
func NewQuotaError(message string, cause error) *AppError {
	return &AppError{Type: ErrorTypeQuotaExceeded, Message: message, Cause: cause}
}

// NewUnavailableError creates a service-unavailable error (transient)
func NewUnavailableError(message string, cause error) *AppError {
	return &AppError{Type: ErrorTypeUnavailable, Message: message, Cause: cause}
}

// NewTimeoutError creates a timeout error (transient)
func NewTimeoutError(message string, cause error) *AppError {
	return &AppError{Type: ErrorTypeTimeout, Message: message, Cause: cause}
}

// NewInvalidImageError creates an invalid-image error (permanent)
func NewInvalidImageError(message string, cause error) *AppError {
	return &AppError{Type: ErrorTypeInvalidImage, Message: message, Cause: cause}
}

// NewUnauthorizedError creates an authentication error (permanent)
func NewUnauthorizedError(message string, cause error) *AppError {
	return &AppError{Type: ErrorTypeUnauthorized, Message: message, Cause: cause}
}

// NewSynthesisError creates a metadata-synthesis error
func NewSynthesisError(message string, cause error) *AppError {
	return &AppError{Type: ErrorTypeSynthesis, Message: message, Cause: cause}
}

// NewFilesystemError creates a filesystem error
func NewFilesystemError(message string, cause error) *AppError {
	return &AppError{Type: ErrorTypeFilesystem, Message: message, Cause: cause}
}

// NewValidationError creates a validation error
func NewValidationError(message string, cause error) *AppError {
	return &AppError{Type: ErrorTypeValidation, Message: message, Cause: cause}
}

// NewInternalError creates an internal error
func NewInternalError(message string, cause error) *AppError {
	return &AppError{Type: ErrorTypeInternal, Message: message, Cause: cause}
}

// IsType checks if the error is of a specific type
func IsType(err error, errorType ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errorType
	}
	return false
}

// IsTransient checks if the error is a retryable analysis failure
func IsTransient(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Transient()
	}
	return false
}
