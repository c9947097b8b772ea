// Package handlers provides HTTP handler implementations for the public
// API.
//
// This file defines the standard response utilities used across all
// endpoints. Every JSON endpoint answers with the same envelope so clients
// can branch on a single boolean:
//
//	HTTP/1.1 200 OK
//	{ "success": true, "message": "Your message has been sent successfully!" }
//
//	HTTP/1.1 400 Bad Request
//	{ "success": false, "error": "please fill all fields" }
//
// fail() centralizes error formatting and ensures 5xx responses are logged
// with request context; the message passed for 5xx must already be generic
// (no internal detail reaches the caller).
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cbouguerba/portfolio-backend/internal/http/middleware"
)

// ErrorResponse is the standard error envelope returned by all endpoints.
type ErrorResponse struct {
	Success bool `json:"success" example:"false"`
	// Human-readable message (safe to show to users)
	Error string `json:"error" example:"please fill all fields"`
}

// SuccessResponse is the envelope for operations that answer with a
// confirmation message rather than a resource body.
type SuccessResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"Your message has been sent successfully!"`
}

// fail aborts the request with a structured error.
//
// Server errors (>=500) are logged using the request-scoped logger from
// middleware; the JSON body never carries internal detail for those.
func fail(c *gin.Context, status int, msg string) {
	if status >= http.StatusInternalServerError {
		lg := middleware.LoggerFrom(c)
		lg.Error().
			Int("status", status).
			Str("message", msg).
			Msg("api error")
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Success: false, Error: msg})
}

// Fail is the exported variant of fail().
//
// External packages (e.g., router setup) should call Fail to return
// consistent error envelopes without depending on unexported helpers.
func Fail(c *gin.Context, status int, msg string) { fail(c, status, msg) }

// ok writes a success JSON response with an arbitrary body.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// confirm writes the confirmation envelope for successful mutations.
func confirm(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, SuccessResponse{Success: true, Message: msg})
}
