package folioapi

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *APIError
		expected string
	}{
		{
			name:     "with message",
			err:      &APIError{StatusCode: 400, Message: "Missing symbol or name"},
			expected: "API error (400): Missing symbol or name",
		},
		{
			name:     "without message uses status text",
			err:      &APIError{StatusCode: 404},
			expected: "API error (404): Not Found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestCheckResponse(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantErr     bool
		wantMessage string
		wantCode    string
	}{
		{"200 OK", 200, `{"status":"success"}`, false, "", ""},
		{"204 No Content", 204, "", false, "", ""},
		{"message field", 400, `{"message":"Missing symbol"}`, true, "Missing symbol", ""},
		{"error field wins", 500, `{"error":"boom","message":"ignored","code":"E1"}`, true, "boom", "E1"},
		{"html body", 404, `<html>Not Found</html>`, true, "", ""},
		{"empty body", 503, "", true, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkResponse(tt.status, []byte(tt.body), "/api/test")
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			apiErr, ok := AsAPIError(err)
			require.True(t, ok)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantMessage, apiErr.Message)
			assert.Equal(t, tt.wantCode, apiErr.Code)
		})
	}
}

func TestTransportError_Unwrap(t *testing.T) {
	inner := errors.New("connection refused")
	err := fmt.Errorf("failed to fetch holdings: %w", &TransportError{Op: "GET /api/stocks", Err: inner})

	assert.True(t, IsTransport(err))
	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "GET /api/stocks: connection refused")
}
