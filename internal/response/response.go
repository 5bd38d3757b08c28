// Package response defines the JSON envelope and the error taxonomy
// shared by the service and the HTTP surface.
package response

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

// Error codes used across the service
const (
	ErrCodeValidation        = "VALIDATION_ERROR"
	ErrCodeInvalidFileType   = "INVALID_FILE_TYPE"
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeStore             = "STORE_ERROR"
	ErrCodeAttachmentCleanup = "ATTACHMENT_CLEANUP_FAILED"
	ErrCodeInternal          = "INTERNAL_ERROR"
)

// AppError is a service-layer error carrying an error code. Details is
// internal diagnostic context: it is logged server-side and never sent
// to the caller.
type AppError struct {
	Code    string
	Message string
	Details string
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewAppError creates a new AppError
func NewAppError(code, message, details string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// ErrorResponse represents an error response body
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains the caller-facing error fields
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SuccessResponse represents a success response body
type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// SendError sends an error response
func SendError(c *gin.Context, status int, code, message string) {
	c.JSON(status, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}

// SendSuccess sends a success response with data only
func SendSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, SuccessResponse{
		Success: true,
		Data:    data,
	})
}

// SendMessage sends a success response with a message and optional data
func SendMessage(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, SuccessResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}
