// Copyright (c) 2026 Hortus. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the centralized error type shared by the REST client
and the local web shell.

It bridges the gap between the garden API's JSON error envelopes and the
responses the front-end renders for its own routes.

Architecture:

  - AppError: A struct containing machine-readable Code and a user-facing message.
  - Decoding: [FromResponse] turns a non-2xx API response into an AppError.
  - Mapping: Explicit mapping from AppError to HTTP status codes for the web shell.

Every error that leaves the REST client for a non-2xx status is an [AppError],
so callers can branch on HTTPStatus without parsing bodies again.
*/
package apperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// AppError is the canonical error type for Hortus.
//
// It carries an HTTP status code, a machine-readable code, a user-facing
// message, and an optional slice of field-level validation errors.
//
// # Security
//
// The Cause field is for logging only and is never rendered to the browser.
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "NOT_FOUND", "CONFLICT").
	Code string `json:"code"`
	// Message is a human-readable description safe to show to the operator.
	Message string `json:"error"`
	// HTTPStatus is the HTTP response status code.
	HTTPStatus int `json:"-"`
	// Cause is the underlying error, used for logging only.
	Cause error `json:"-"`
	// Details holds per-field validation errors for VALIDATION_ERROR responses.
	Details []FieldError `json:"details,omitempty"`
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	// Field is the JSON field name that failed validation.
	Field string `json:"field"`
	// Message is the human-readable description of the failure.
	Message string `json:"message"`
}

// Error implements the error interface. It returns the user-facing message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// # Client Errors (4xx)

// NotFound creates a 404 [AppError] for a named resource.
//
// Example:
//
//	apperr.NotFound("Plant") // Returns "Plant not found"
func NotFound(resource string) *AppError {
	return &AppError{
		Code:       "NOT_FOUND",
		Message:    resource + " not found",
		HTTPStatus: http.StatusNotFound,
	}
}

// Unauthorized creates a 401 [AppError].
func Unauthorized(msg string) *AppError {
	return &AppError{
		Code:       "UNAUTHORIZED",
		Message:    msg,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// Forbidden creates a 403 [AppError].
func Forbidden(msg string) *AppError {
	return &AppError{
		Code:       "FORBIDDEN",
		Message:    msg,
		HTTPStatus: http.StatusForbidden,
	}
}

// Conflict creates a 409 [AppError] for duplicate records.
func Conflict(msg string) *AppError {
	return &AppError{
		Code:       "CONFLICT",
		Message:    msg,
		HTTPStatus: http.StatusConflict,
	}
}

// ValidationError creates a 400 [AppError] with optional per-field details.
func ValidationError(msg string, details ...FieldError) *AppError {
	return &AppError{
		Code:       "VALIDATION_ERROR",
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

// # Server Errors (5xx)

// Internal creates a 500 [AppError] wrapping an unexpected error.
// The cause is stored for logging but is never rendered.
func Internal(cause error) *AppError {
	return &AppError{
		Code:       "INTERNAL_ERROR",
		Message:    "An unexpected error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// CodeUnavailable marks errors raised locally because the API gave no usable answer.
const CodeUnavailable = "API_UNAVAILABLE"

// Unavailable creates a 502 [AppError] for an unreachable garden API.
func Unavailable(cause error) *AppError {
	return &AppError{
		Code:       CodeUnavailable,
		Message:    "The garden API is not reachable",
		HTTPStatus: http.StatusBadGateway,
		Cause:      cause,
	}
}

// # Response Decoding

// envelope matches the error bodies the garden API emits. Older endpoints
// use "message", newer ones use "error".
type envelope struct {
	Message string       `json:"message"`
	Error   string       `json:"error"`
	Code    string       `json:"code"`
	Details []FieldError `json:"details"`
}

// FromResponse converts a non-2xx API response body into an [AppError].
//
// The message falls back to the HTTP status text when the body is empty or
// not JSON; callers that need a friendlier fallback check [AppError.Message]
// against [http.StatusText].
func FromResponse(status int, body []byte) *AppError {
	appError := &AppError{
		Code:       codeForStatus(status),
		HTTPStatus: status,
	}

	var decoded envelope
	if err := json.Unmarshal(body, &decoded); err == nil {
		appError.Message = strings.TrimSpace(decoded.Message)
		if appError.Message == "" {
			appError.Message = strings.TrimSpace(decoded.Error)
		}
		if decoded.Code != "" {
			appError.Code = decoded.Code
		}
		appError.Details = decoded.Details
	}

	if appError.Message == "" {
		appError.Message = http.StatusText(status)
		appError.Cause = fmt.Errorf("apperr: status %d without message", status)
	}

	return appError
}

// codeForStatus maps an HTTP status to the default machine-readable code.
func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "VALIDATION_ERROR"
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusForbidden:
		return "FORBIDDEN"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusConflict:
		return "CONFLICT"
	case http.StatusTooManyRequests:
		return "RATE_LIMITED"
	}
	if status >= 500 {
		return "UPSTREAM_ERROR"
	}
	return "REQUEST_FAILED"
}

// # Helpers

// IsAppError reports whether err (or any error in its chain) is an [*AppError].
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// Status returns the HTTP status carried by err, or 0 when err is not an [AppError].
func Status(err error) int {
	if ae := As(err); ae != nil {
		return ae.HTTPStatus
	}
	return 0
}

// ServerMessage returns the message the API supplied for err, or "" when
// the error did not come from an API response or the API gave no message.
func ServerMessage(err error) string {
	ae := As(err)
	if ae == nil || ae.Code == CodeUnavailable {
		return ""
	}
	if ae.Message == http.StatusText(ae.HTTPStatus) {
		return ""
	}
	return ae.Message
}
