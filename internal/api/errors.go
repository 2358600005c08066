// errors.go - Structured error handling for API responses
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/machine-dashboard/backend/internal/storage"
)

// APIError represents a structured API error response
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Error constructors for consistent error handling

// NewBadRequestError creates a 400 Bad Request error
func NewBadRequestError(message string, cause error) *APIError {
	err := &APIError{
		Status:  http.StatusBadRequest,
		Code:    "BAD_REQUEST",
		Message: message,
	}
	if cause != nil {
		err.Details = cause.Error()
	}
	return err
}

// NewValidationError creates a 400 validation error for a specific field
func NewValidationError(field string) *APIError {
	return &APIError{
		Status:  http.StatusBadRequest,
		Code:    "VALIDATION_ERROR",
		Message: fmt.Sprintf("validation failed for field: %s", field),
	}
}

// NewInternalError creates a 500 Internal Server Error
func NewInternalError(message string, cause error) *APIError {
	err := &APIError{
		Status:  http.StatusInternalServerError,
		Code:    "INTERNAL_ERROR",
		Message: message,
	}
	if cause != nil {
		err.Details = cause.Error()
	}
	return err
}

// NewServiceUnavailableError creates a 503 Service Unavailable error
func NewServiceUnavailableError(message string) *APIError {
	return &APIError{
		Status:  http.StatusServiceUnavailable,
		Code:    "SERVICE_UNAVAILABLE",
		Message: message,
	}
}

// serviceError maps dashboard service failures onto API errors.
func serviceError(message string, err error) *APIError {
	switch {
	case errors.Is(err, storage.ErrNotLoaded):
		return NewServiceUnavailableError("activity data not loaded")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return NewServiceUnavailableError("request cancelled")
	default:
		return NewInternalError(message, err)
	}
}

// NewErrorHandler returns the central error handler for Echo. Details of
// unexpected errors are only exposed in development mode.
// Usage: e.HTTPErrorHandler = api.NewErrorHandler(devMode)
func NewErrorHandler(development bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var apiErr *APIError
		var httpErr *echo.HTTPError

		switch {
		case errors.As(err, &apiErr):
		case errors.As(err, &httpErr):
			apiErr = &APIError{
				Status:  httpErr.Code,
				Code:    "HTTP_ERROR",
				Message: fmt.Sprintf("%v", httpErr.Message),
			}
		default:
			apiErr = &APIError{
				Status:  http.StatusInternalServerError,
				Code:    "UNKNOWN_ERROR",
				Message: "An unexpected error occurred",
			}
			if development {
				apiErr.Details = err.Error()
			}
		}

		if apiErr.Status >= http.StatusInternalServerError {
			log.Error().
				Err(err).
				Str("method", c.Request().Method).
				Str("uri", c.Request().RequestURI).
				Int("status", apiErr.Status).
				Msg("request failed")
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(apiErr.Status)
			return
		}
		_ = c.JSON(apiErr.Status, apiErr)
	}
}
