// Package httputil provides HTTP utility functions for request and response handling.
package httputil

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/paylink/terminal/internal/errors"
)

// ErrorResponse represents a structured error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}

// Resolve maps an error onto an HTTP status code and the response body that
// may safely be shown to the caller. Internal details are never part of the
// response except for invalid input, whose message is the validation result.
func Resolve(err error) (int, ErrorResponse) {
	switch {
	case apperrors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound, ErrorResponse{
			Error:   "not_found",
			Message: "The requested resource was not found",
		}

	case apperrors.Is(err, apperrors.ErrInvalidInput):
		return http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "invalid_input",
			Message: err.Error(),
		}

	case apperrors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "Authentication is required",
		}

	case apperrors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden, ErrorResponse{
			Error:   "forbidden",
			Message: "The request could not be authenticated",
		}

	case apperrors.Is(err, apperrors.ErrExpired):
		return http.StatusGone, ErrorResponse{
			Error:   "expired",
			Message: "The link has expired",
		}

	case apperrors.Is(err, apperrors.ErrBadGateway):
		return http.StatusBadGateway, ErrorResponse{
			Error:   "bad_gateway",
			Message: "The payment gateway could not complete the request",
		}

	case apperrors.Is(err, apperrors.ErrTooManyRequests):
		return http.StatusTooManyRequests, ErrorResponse{
			Error:   "rate_limit_exceeded",
			Message: "Too many requests. Please retry later.",
		}

	default:
		return http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "An internal error occurred",
		}
	}
}

// StatusCode returns the HTTP status code for err.
func StatusCode(err error) int {
	status, _ := Resolve(err)
	return status
}

// LogError logs a failed request. Server-side failures are logged at error
// level, rejected requests at warn level.
func LogError(ctx context.Context, logger *slog.Logger, err error, statusCode int, errorCode string) {
	if logger == nil {
		return
	}

	level := slog.LevelWarn
	if statusCode >= http.StatusInternalServerError {
		level = slog.LevelError
	}

	logger.Log(ctx, level, "request failed",
		slog.Int("status_code", statusCode),
		slog.String("error_code", errorCode),
		slog.Any("error", err),
	)
}

// HandleErrorGin maps domain errors to HTTP status codes and returns a JSON response using Gin.
func HandleErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	statusCode, errorResponse := Resolve(err)
	LogError(c.Request.Context(), logger, err, statusCode, errorResponse.Error)

	c.JSON(statusCode, errorResponse)
}

// HandleBadRequestGin writes a 400 Bad Request response for malformed JSON or parameters using Gin.
func HandleBadRequestGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("bad request", slog.Any("error", err))
	}

	errorResponse := ErrorResponse{
		Error:   "bad_request",
		Message: err.Error(),
	}

	c.JSON(http.StatusBadRequest, errorResponse)
}
