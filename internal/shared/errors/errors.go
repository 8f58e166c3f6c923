// Package errors provides application-level error types and utilities.
// It defines the error taxonomy shared by use cases and HTTP handlers: validation,
// authorization, quota, upstream, signature and configuration failures.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrorTypeValidation       ErrorType = "validation_error"
	ErrorTypeNotFound         ErrorType = "not_found"
	ErrorTypeConflict         ErrorType = "conflict"
	ErrorTypeUnauthorized     ErrorType = "unauthorized"
	ErrorTypeForbidden        ErrorType = "forbidden"
	ErrorTypeInternal         ErrorType = "internal_error"
	ErrorTypeBadRequest       ErrorType = "bad_request"
	ErrorTypeQuotaExhausted   ErrorType = "quota_exhausted"
	ErrorTypeUpstream         ErrorType = "upstream_error"
	ErrorTypeSignatureInvalid ErrorType = "signature_invalid"
	ErrorTypeMisconfiguration ErrorType = "misconfiguration"
	ErrorTypeTooManyRequests  ErrorType = "too_many_requests"
)

// AppError represents an application error with additional context
type AppError struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
	Code    int       `json:"code"`
	Details string    `json:"details,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func newAppError(errType ErrorType, code int, message string, details []string) *AppError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AppError{
		Type:    errType,
		Message: message,
		Code:    code,
		Details: detail,
	}
}

// NewValidationError creates a new validation error (missing or malformed input)
func NewValidationError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeValidation, http.StatusBadRequest, message, details)
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeNotFound, http.StatusNotFound, message, details)
}

// NewConflictError creates a new conflict error
func NewConflictError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeConflict, http.StatusConflict, message, details)
}

// NewUnauthorizedError creates a new unauthorized error
func NewUnauthorizedError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeUnauthorized, http.StatusUnauthorized, message, details)
}

// NewForbiddenError creates a new forbidden error
func NewForbiddenError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeForbidden, http.StatusForbidden, message, details)
}

// NewInternalError creates a new internal error
func NewInternalError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeInternal, http.StatusInternalServerError, message, details)
}

// NewBadRequestError creates a new bad request error
func NewBadRequestError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeBadRequest, http.StatusBadRequest, message, details)
}

// NewQuotaExhaustedError creates an error for a free tier with no insights left.
func NewQuotaExhaustedError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeQuotaExhausted, http.StatusForbidden, message, details)
}

// NewUpstreamError creates an error for a failed call to the AI service or payment processor.
// Upstream errors leave no partial state behind and are safe to retry.
func NewUpstreamError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeUpstream, http.StatusInternalServerError, message, details)
}

// NewSignatureInvalidError creates an error for a webhook whose signature does not verify.
func NewSignatureInvalidError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeSignatureInvalid, http.StatusBadRequest, message, details)
}

// NewMisconfigurationError creates an error for a missing credential or secret.
func NewMisconfigurationError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeMisconfiguration, http.StatusInternalServerError, message, details)
}

// NewTooManyRequestsError creates a rate limit error
func NewTooManyRequestsError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeTooManyRequests, http.StatusTooManyRequests, message, details)
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extracts AppError from error
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

func isType(err error, errType ErrorType) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == errType
}

// IsConflictError checks if the error is a conflict error
func IsConflictError(err error) bool {
	return isType(err, ErrorTypeConflict)
}

// IsNotFoundError checks if the error is a not found error
func IsNotFoundError(err error) bool {
	return isType(err, ErrorTypeNotFound)
}

// IsValidationError checks if the error is a validation error
func IsValidationError(err error) bool {
	return isType(err, ErrorTypeValidation)
}

// IsQuotaExhaustedError checks if the error is a quota exhausted error
func IsQuotaExhaustedError(err error) bool {
	return isType(err, ErrorTypeQuotaExhausted)
}

// IsUpstreamError checks if the error is an upstream error
func IsUpstreamError(err error) bool {
	return isType(err, ErrorTypeUpstream)
}

// IsSignatureInvalidError checks if the error is a webhook signature error
func IsSignatureInvalidError(err error) bool {
	return isType(err, ErrorTypeSignatureInvalid)
}

// IsDuplicateError checks if the error is a database duplicate key error
func IsDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	// MySQL duplicate entry error
	if strings.Contains(errStr, "Duplicate entry") || strings.Contains(errStr, "duplicate key") {
		return true
	}
	// PostgreSQL unique violation
	if strings.Contains(errStr, "unique constraint") || strings.Contains(errStr, "violates unique constraint") {
		return true
	}
	// SQLite
	if strings.Contains(errStr, "UNIQUE constraint failed") {
		return true
	}
	return false
}
