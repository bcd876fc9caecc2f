package dispatch

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/averath/reqops/inflight"
)

// Sentinel errors for client construction.
var (
	ErrMissingBaseURL = errors.New("dispatch: base URL is required")
	ErrInvalidBaseURL = errors.New("dispatch: base URL is invalid")
)

// genericFailure is the message of last resort when neither the server
// nor the transport supplied one.
const genericFailure = "request failed"

// APIError is the single error shape surfaced to callers for every
// non-cancellation failure: network faults, non-2xx statuses and
// serialization faults all normalize to it.
type APIError struct {
	// Message is the best available description, preferring the server's
	// detail or message field over transport error text.
	Message string `json:"message"`

	// Status is the HTTP status code, or 0 when no response was received.
	Status int `json:"status,omitempty"`

	// Data is the raw response body, when one was received.
	Data json.RawMessage `json:"data,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("dispatch: %s (status %d)", e.Message, e.Status)
	}
	return "dispatch: " + e.Message
}

// Ensure APIError implements error
var _ error = (*APIError)(nil)

// IsCancelled reports whether err is the cancellation outcome of a
// dispatched call, whatever triggered it: supersession, bulk teardown or
// the caller's own context.
func IsCancelled(err error) bool {
	return inflight.IsCancellation(err)
}

// normalizeStatusError builds an APIError from a non-2xx response.
// Message ladder: server "detail" field, server "message" field, the
// standard status text, then a generic fallback.
func normalizeStatusError(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status}
	if len(body) > 0 {
		apiErr.Data = json.RawMessage(body)
	}

	var payload struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		switch {
		case payload.Detail != "":
			apiErr.Message = payload.Detail
		case payload.Message != "":
			apiErr.Message = payload.Message
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	if apiErr.Message == "" {
		apiErr.Message = genericFailure
	}
	return apiErr
}

// normalizeTransportError builds an APIError from a failure that produced
// no response at all.
func normalizeTransportError(err error) *APIError {
	msg := genericFailure
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return &APIError{Message: msg}
}
