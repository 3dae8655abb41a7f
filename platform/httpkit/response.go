// Package httpkit provides shared HTTP helpers: response envelopes,
// middleware, and request identity extraction.
package httpkit

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"leadflow_backend/platform/apperr"
)

// Response is the standard API response envelope.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError carries error information in a response.
type APIError struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// JSON writes a success response with the given status and payload.
func JSON(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Response{Success: true, Data: data})
}

// OK writes a 200 success response.
func OK(c *gin.Context, data interface{}) {
	JSON(c, http.StatusOK, data)
}

// Created writes a 201 success response.
func Created(c *gin.Context, data interface{}) {
	JSON(c, http.StatusCreated, data)
}

// NoContent writes a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error writes an error response with the given status.
func Error(c *gin.Context, status int, message string, details interface{}) {
	c.JSON(status, Response{Success: false, Error: &APIError{Message: message, Details: details}})
}

// HandleError maps a domain error to the appropriate HTTP response.
// apperr.Error values use their kind's status; anything else is a 500
// with a generic message so internal details never leak to clients.
func HandleError(c *gin.Context, err error) {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		Error(c, appErr.HTTPStatus(), appErr.Message, appErr.Details)
		return
	}
	Error(c, http.StatusInternalServerError, "internal server error", nil)
}
