// ABOUTME: Typed API error with envelope-aware message extraction
// ABOUTME: Falls back to generic HTTP status messages when the body is not an envelope

package client

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Katya1803/nullpointer-cli/models"
)

// APIError is a definitive failure from the backend. Credential and
// validation errors surface as APIError for the caller to render;
// transport errors never convert to APIError.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Details    []models.ErrorDetail
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// FieldError returns the message for a named field from the validation
// details, or "" when the field has no error.
func (e *APIError) FieldError(field string) string {
	for _, d := range e.Details {
		if d.Field == field {
			return d.Message
		}
	}
	return ""
}

// newAPIError builds an APIError from a non-2xx response body. The
// envelope shape {success:false, data:{code, message, details}} is
// checked first, then a bare {message}, then the status-based fallback.
func newAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode}

	var env models.Envelope
	if err := json.Unmarshal(body, &env); err == nil && !env.Success && len(env.Data) > 0 {
		var errBody models.ErrorBody
		if err := json.Unmarshal(env.Data, &errBody); err == nil && errBody.Message != "" {
			apiErr.Code = errBody.Code
			apiErr.Message = errBody.Message
			apiErr.Details = errBody.Details
			return apiErr
		}
	}

	var bare struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &bare); err == nil && bare.Message != "" {
		apiErr.Message = bare.Message
		return apiErr
	}

	apiErr.Message = statusMessage(statusCode)
	return apiErr
}

// statusMessage maps an HTTP status to a generic user-facing message.
func statusMessage(statusCode int) string {
	switch statusCode {
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusForbidden:
		return "forbidden"
	case http.StatusNotFound:
		return "not found"
	case http.StatusInternalServerError:
		return "server error"
	default:
		return http.StatusText(statusCode)
	}
}
