package core

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError carries an error class, the message shown to clients and the
// underlying cause, which is only ever logged.
type AppError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Err.Error())
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new application error
func NewAppError(code, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeDuplicate          = "DUPLICATE"
	ErrCodeUploadFailed       = "UPLOAD_FAILED"
	ErrCodeInternal           = "INTERNAL_ERROR"
	ErrCodeDatabase           = "DATABASE_ERROR"
	ErrCodeConfiguration      = "CONFIGURATION_ERROR"
	ErrCodeFeature            = "FEATURE_ERROR"
)

// Client-facing messages
const (
	MsgInternal           = "Internal Server Error"
	MsgUnauthorized       = "Unauthorized"
	MsgInvalidCredentials = "Invalid credentials"
	MsgInvalidBody        = "Invalid request body"
)

func NewValidationError(message string, err error) *AppError {
	return NewAppError(ErrCodeValidation, message, err)
}

func NewNotFoundError(message string, err error) *AppError {
	return NewAppError(ErrCodeNotFound, message, err)
}

func NewUnauthorizedError(err error) *AppError {
	return NewAppError(ErrCodeUnauthorized, MsgUnauthorized, err)
}

func NewInvalidCredentialsError(err error) *AppError {
	return NewAppError(ErrCodeInvalidCredentials, MsgInvalidCredentials, err)
}

func NewDuplicateError(message string, err error) *AppError {
	return NewAppError(ErrCodeDuplicate, message, err)
}

func NewUploadError(message string, err error) *AppError {
	return NewAppError(ErrCodeUploadFailed, message, err)
}

func NewInternalError(err error) *AppError {
	return NewAppError(ErrCodeInternal, MsgInternal, err)
}

func NewDatabaseError(err error) *AppError {
	return NewAppError(ErrCodeDatabase, MsgInternal, err)
}

func NewConfigurationError(message string, err error) *AppError {
	return NewAppError(ErrCodeConfiguration, message, err)
}

func NewFeatureError(featureName, message string, err error) *AppError {
	return NewAppError(ErrCodeFeature, fmt.Sprintf("[%s] %s", featureName, message), err)
}

// GetHTTPStatusCode returns the appropriate HTTP status code for an error
func GetHTTPStatusCode(err *AppError) int {
	switch err.Code {
	case ErrCodeValidation, ErrCodeDuplicate:
		return http.StatusBadRequest
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeUnauthorized, ErrCodeInvalidCredentials:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// AsAppError converts any error into an AppError. Unclassified errors become
// internal errors so their details never reach the client.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewInternalError(err)
}
