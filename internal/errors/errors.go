package errors

import (
	"net/http"
)

// ErrorCode represents a standardized error code
type ErrorCode string

const (
	// Request errors (400xx)
	ErrInvalidRequest   ErrorCode = "40001"
	ErrValidationFailed ErrorCode = "40002"
	ErrAlreadyProcessed ErrorCode = "40003"

	// Authentication errors (401xx)
	ErrInvalidCredentials ErrorCode = "40101"
	ErrSessionExpired     ErrorCode = "40102"

	// Authorization errors (403xx)
	ErrForbidden ErrorCode = "40301"

	// Resource errors (404xx)
	ErrUserNotFound    ErrorCode = "40401"
	ErrWorkerNotFound  ErrorCode = "40402"
	ErrProfileNotFound ErrorCode = "40403"
	ErrRequestNotFound ErrorCode = "40404"

	// Conflict errors (409xx)
	ErrAlreadyConnected ErrorCode = "40901"
	ErrRequestPending   ErrorCode = "40902"
	ErrEmailTaken       ErrorCode = "40903"

	// Server errors (500xx)
	ErrInternalServer ErrorCode = "50001"
)

// APIError represents a standardized API error
type APIError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	HTTPStatus int       `json:"-"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// ErrorResponse is the JSON body returned for every failed request.
// Message is always a human-readable string.
type ErrorResponse struct {
	Message   string    `json:"message"`
	Code      ErrorCode `json:"code"`
	RequestID string    `json:"request_id,omitempty"`
}

// NewErrorResponse builds the response body for an APIError
func NewErrorResponse(err *APIError, requestID string) ErrorResponse {
	return ErrorResponse{
		Message:   err.Message,
		Code:      err.Code,
		RequestID: requestID,
	}
}

// Common errors
var (
	ErrInvalidCredentialsError = &APIError{
		Code:       ErrInvalidCredentials,
		Message:    "Incorrect password.",
		HTTPStatus: http.StatusUnauthorized,
	}

	ErrSessionExpiredError = &APIError{
		Code:       ErrSessionExpired,
		Message:    "Your session has expired. Please sign in again.",
		HTTPStatus: http.StatusUnauthorized,
	}

	ErrUserNotFoundError = &APIError{
		Code:       ErrUserNotFound,
		Message:    "User not found.",
		HTTPStatus: http.StatusNotFound,
	}

	ErrWorkerNotFoundError = &APIError{
		Code:       ErrWorkerNotFound,
		Message:    "Worker not found.",
		HTTPStatus: http.StatusNotFound,
	}

	ErrInternalServerError = &APIError{
		Code:       ErrInternalServer,
		Message:    "Something went wrong on our side. Please try again.",
		HTTPStatus: http.StatusInternalServerError,
	}
)

// NewValidationError creates a validation error (400)
func NewValidationError(message string) *APIError {
	return &APIError{
		Code:       ErrValidationFailed,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewInvalidRequestError creates an invalid request error (400)
func NewInvalidRequestError(message string) *APIError {
	return &APIError{
		Code:       ErrInvalidRequest,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewForbiddenError creates an authorization error (403)
func NewForbiddenError(message string) *APIError {
	return &APIError{
		Code:       ErrForbidden,
		Message:    message,
		HTTPStatus: http.StatusForbidden,
	}
}

// NewNotFoundError creates a not-found error (404)
func NewNotFoundError(code ErrorCode, message string) *APIError {
	return &APIError{
		Code:       code,
		Message:    message,
		HTTPStatus: http.StatusNotFound,
	}
}

// NewConflictError creates a conflict error (409)
func NewConflictError(code ErrorCode, message string) *APIError {
	return &APIError{
		Code:       code,
		Message:    message,
		HTTPStatus: http.StatusConflict,
	}
}
