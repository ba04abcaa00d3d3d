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
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Common errors
var (
	ErrTokenExpired = &AppError{Code: http.StatusUnauthorized, Message: "Token has expired"}
	ErrInvalidToken = &AppError{Code: http.StatusUnauthorized, Message: "Invalid token"}

	// ErrNetwork covers transport failures reaching the sale service. The
	// message is deliberately generic and retry-prompting: local state is
	// untouched, the cashier just clicks again.
	ErrNetwork = &AppError{Code: http.StatusBadGateway, Message: "No se pudo contactar el servicio de ventas. Intenta nuevamente."}
)

// NewAppError creates a new application error
func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a new validation error with a message shown to
// the cashier. Validation errors always leave the checkout usable.
func NewValidationError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message)
}

// NewRemoteError wraps a non-success answer from the sale service,
// preserving its status and human-readable message.
func NewRemoteError(code int, message string) *AppError {
	if message == "" {
		message = "El servicio de ventas rechazó la operación."
	}
	return NewAppError(code, message)
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(message string) *AppError {
	return NewAppError(http.StatusNotFound, message)
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message)
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
