// ABOUTME: API envelope and pagination types shared by all NullPointer endpoints
// ABOUTME: Every backend response is wrapped in {success, message, data, timestamp}

package models

import "encoding/json"

// Envelope is the wrapper the backend puts around every response body.
// On success Data holds the payload; on failure Data holds an ErrorBody.
type Envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message,omitempty"`
	Data      json.RawMessage `json:"data"`
	Timestamp string          `json:"timestamp"`
	Path      string          `json:"path,omitempty"`
	TraceID   string          `json:"traceId,omitempty"`
}

// ErrorBody is the payload carried in Envelope.Data when success is false.
type ErrorBody struct {
	Code    string        `json:"code"`
	Message string        `json:"message"`
	Details []ErrorDetail `json:"details,omitempty"`
}

// ErrorDetail is a field-level validation error.
type ErrorDetail struct {
	Field         string `json:"field"`
	Message       string `json:"message"`
	RejectedValue any    `json:"rejectedValue,omitempty"`
}

// Page is the backend's pagination wrapper (Spring-style).
type Page[T any] struct {
	Content       []T  `json:"content"`
	Page          int  `json:"page"`
	Size          int  `json:"size"`
	TotalElements int  `json:"totalElements"`
	TotalPages    int  `json:"totalPages"`
	First         bool `json:"first"`
	Last          bool `json:"last"`
}
