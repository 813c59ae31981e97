package models

import (
	"net/http"
	"time"
)

// Error codes
const (
	// General errors
	ErrCodeInvalidRequest     = "INVALID_REQUEST"
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeConflict           = "CONFLICT"
	ErrCodeRateLimited        = "RATE_LIMIT_EXCEEDED"
	ErrCodeInternalError      = "INTERNAL_ERROR"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"

	// Authentication errors
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeMissingHeader      = "MISSING_AUTHORIZATION"
	ErrCodeMalformedHeader    = "MALFORMED_AUTHORIZATION"
	ErrCodeInvalidToken       = "INVALID_TOKEN"
)

// APIError represents a structured API error
type APIError struct {
	Code       string            `json:"code"`
	Message    string            `json:"message"`
	Details    string            `json:"details,omitempty"`
	Fields     map[string]string `json:"fields,omitempty"`
	StatusCode int               `json:"-"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError creates a new API error
func NewAPIError(code, message string, statusCode int) *APIError {
	return &APIError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// WithDetails adds details to the error
func (e *APIError) WithDetails(details string) *APIError {
	e.Details = details
	return e
}

// WithField adds a field error
func (e *APIError) WithField(field, message string) *APIError {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	e.Fields[field] = message
	return e
}

// Response renders the error in the standard envelope
func (e *APIError) Response(requestID string) BaseResponse {
	return BaseResponse{
		Success: false,
		Error: &ErrorInfo{
			Code:    e.Code,
			Message: e.Message,
			Details: e.Details,
			Fields:  e.Fields,
		},
		Timestamp: time.Now().Unix(),
		RequestID: requestID,
	}
}

// Common errors
var (
	ErrInvalidCredentials = func() *APIError {
		return NewAPIError(ErrCodeInvalidCredentials, "Invalid email or password", http.StatusUnauthorized)
	}
	ErrInvalidRefreshToken = func() *APIError {
		return NewAPIError(ErrCodeUnauthorized, "Invalid or expired refresh token", http.StatusUnauthorized)
	}
	ErrNotAuthenticated = func() *APIError {
		return NewAPIError(ErrCodeUnauthorized, "Authentication required", http.StatusUnauthorized)
	}
	ErrEmailTaken = func() *APIError {
		return NewAPIError(ErrCodeConflict, "Email is already registered", http.StatusConflict)
	}
	ErrInternal = func() *APIError {
		return NewAPIError(ErrCodeInternalError, "Internal server error", http.StatusInternalServerError)
	}
)
