package folioapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/bytedance/sonic"
)

// APIError is an application-level failure: the backend answered with a
// non-success status.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Endpoint   string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("API error (%d): %s", e.StatusCode, msg)
}

// IsNotFound returns true if the error is a 404 Not Found.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsBadRequest returns true if the error is a 400 Bad Request.
func (e *APIError) IsBadRequest() bool {
	return e.StatusCode == http.StatusBadRequest
}

// TransportError is a failure to complete the exchange at all: the request
// could not be built or sent, or the response could not be read or decoded.
type TransportError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTransport reports whether err is, or wraps, a TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// AsAPIError returns the APIError wrapped by err, if any.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// errorResponse represents the JSON structure of backend error responses.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// checkResponse returns an APIError for non-2xx statuses, using the
// "error" or "message" field of a JSON body when one can be decoded.
func checkResponse(statusCode int, body []byte, endpoint string) error {
	if statusCode >= 200 && statusCode < 300 {
		return nil
	}

	apiErr := &APIError{
		StatusCode: statusCode,
		Endpoint:   endpoint,
	}
	if len(body) == 0 {
		return apiErr
	}

	var errResp errorResponse
	if err := sonic.Unmarshal(body, &errResp); err != nil {
		// Body is not JSON (e.g. an HTML error page)
		return apiErr
	}

	if errResp.Error != "" {
		apiErr.Message = errResp.Error
	} else if errResp.Message != "" {
		apiErr.Message = errResp.Message
	}
	apiErr.Code = errResp.Code

	return apiErr
}
