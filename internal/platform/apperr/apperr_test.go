// Copyright (c) 2026 Hortus. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/hortus/internal/platform/apperr"
)

/*
TestFromResponse decodes the API error envelopes into AppError values.
*/
func TestFromResponse(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantCode    string
		wantMessage string
		wantServer  string
	}{
		{"message_field", http.StatusUnauthorized, `{"message":"Invalid credentials"}`, "UNAUTHORIZED", "Invalid credentials", "Invalid credentials"},
		{"error_field_and_code", http.StatusConflict, `{"error":"Username taken","code":"USERNAME_TAKEN"}`, "USERNAME_TAKEN", "Username taken", "Username taken"},
		{"empty_body", http.StatusInternalServerError, ``, "UPSTREAM_ERROR", "Internal Server Error", ""},
		{"html_body", http.StatusBadGateway, `<html>bad gateway</html>`, "UPSTREAM_ERROR", "Bad Gateway", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appError := apperr.FromResponse(tt.status, []byte(tt.body))

			assert.Equal(t, tt.status, appError.HTTPStatus)
			assert.Equal(t, tt.wantCode, appError.Code)
			assert.Equal(t, tt.wantMessage, appError.Message)
			assert.Equal(t, tt.wantServer, apperr.ServerMessage(appError))
		})
	}
}

/*
TestFromResponse_Details keeps field-level validation errors.
*/
func TestFromResponse_Details(t *testing.T) {
	body := `{"message":"Validation failed","details":[{"field":"genus","message":"This field is required"}]}`
	appError := apperr.FromResponse(http.StatusBadRequest, []byte(body))

	require.Len(t, appError.Details, 1)
	assert.Equal(t, "genus", appError.Details[0].Field)
}

/*
TestAs_WrappedChain finds an AppError behind fmt.Errorf wrapping.
*/
func TestAs_WrappedChain(t *testing.T) {
	wrapped := fmt.Errorf("plant_store_get_failed: %w", apperr.NotFound("Plant"))

	assert.True(t, apperr.IsAppError(wrapped))
	assert.Equal(t, http.StatusNotFound, apperr.Status(wrapped))
	assert.Equal(t, "Plant not found", apperr.As(wrapped).Message)

	plain := errors.New("dial tcp: connection refused")
	assert.Nil(t, apperr.As(plain))
	assert.Zero(t, apperr.Status(plain))
	assert.Empty(t, apperr.ServerMessage(plain))
}

/*
TestServerMessage_IgnoresLocalUnavailable never treats a network failure as an API message.
*/
func TestServerMessage_IgnoresLocalUnavailable(t *testing.T) {
	err := apperr.Unavailable(errors.New("dial tcp: connection refused"))

	assert.Equal(t, http.StatusBadGateway, apperr.Status(err))
	assert.Empty(t, apperr.ServerMessage(err))
}
