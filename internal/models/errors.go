package models

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse represents a standardized API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// FieldErrors maps input field names to validation messages. It is rendered
// verbatim as the JSON error body, e.g. {"email": "Email already exists"}.
type FieldErrors map[string]string

// AppError represents a custom application error. When Field is set the error
// is rendered as a single-entry field map instead of the generic envelope.
type AppError struct {
	Code    string
	Field   string
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

// Predefined error constructors
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

// NewFieldNotFoundError reports a missing resource as a field map, matching
// the legacy wire shape (e.g. {"noprofile": "There is no profile for this user"}).
func NewFieldNotFoundError(field, message string) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Field:   field,
		Message: message,
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    "VALIDATION_ERROR",
		Message: message,
	}
}

// NewConflictError reports duplicate state (email/handle taken, already liked)
// as a field map.
func NewConflictError(field, message string) *AppError {
	return &AppError{
		Code:    "CONFLICT",
		Field:   field,
		Message: message,
	}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:    "UNAUTHORIZED",
		Message: message,
	}
}

// NewNotAuthorizedError reports an ownership violation as a field map,
// e.g. {"notauthorized": "User not authorized"}.
func NewNotAuthorizedError() *AppError {
	return &AppError{
		Code:    "UNAUTHORIZED",
		Field:   "notauthorized",
		Message: "User not authorized",
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: "Internal server error",
		Err:     err,
	}
}

// RespondWithError creates a standardized error response
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	if appErr, ok := err.(*AppError); ok {
		if appErr.Field != "" {
			return c.Status(status).JSON(FieldErrors{appErr.Field: appErr.Message})
		}
		response := ErrorResponse{
			Error: appErr.Message,
			Code:  appErr.Code,
		}
		if appErr.Err != nil {
			response.Details = appErr.Err.Error()
		}
		return c.Status(status).JSON(response)
	}

	return c.Status(status).JSON(ErrorResponse{Error: err.Error()})
}
