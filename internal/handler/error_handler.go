package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"counselor-api/internal/repository"
	"counselor-api/internal/response"
)

// handleServiceError maps service layer errors to HTTP responses. The
// full error is logged server-side; the caller only sees the code and
// message, never internal detail.
func handleServiceError(c *gin.Context, logger *zap.Logger, err error) {
	logger.Error("Service error",
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.Error(err))

	if errors.Is(err, repository.ErrNotFound) {
		response.SendError(c, http.StatusNotFound, response.ErrCodeNotFound, "Resource not found")
		return
	}

	var appErr *response.AppError
	if errors.As(err, &appErr) {
		response.SendError(c, mapErrorCodeToHTTPStatus(appErr.Code), appErr.Code, appErr.Message)
		return
	}

	response.SendError(c, http.StatusInternalServerError, response.ErrCodeInternal, "Unexpected error occurred")
}

// mapErrorCodeToHTTPStatus maps error codes to HTTP status codes
func mapErrorCodeToHTTPStatus(code string) int {
	switch code {
	case response.ErrCodeNotFound:
		return http.StatusNotFound
	case response.ErrCodeValidation, response.ErrCodeInvalidFileType:
		return http.StatusBadRequest
	case response.ErrCodeStore, response.ErrCodeAttachmentCleanup:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
