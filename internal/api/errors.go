package api

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies API client failures
type ErrorKind string

const (
	// KindNetwork indicates the request never completed (connection failure)
	KindNetwork ErrorKind = "network"

	// KindTimeout indicates the request exceeded its time bound
	KindTimeout ErrorKind = "timeout"

	// KindHTTPStatus indicates a non-2xx HTTP response
	KindHTTPStatus ErrorKind = "http_status"

	// KindServerRejected indicates an explicit success:false response
	KindServerRejected ErrorKind = "server_rejected"

	// KindDecode indicates a response body that does not match the expected shape
	KindDecode ErrorKind = "decode"

	// KindValidation indicates bad input caught before any request was issued
	KindValidation ErrorKind = "validation"
)

// APIError represents a classified failure of a backend call
type APIError struct {
	// Kind categorizes the error
	Kind ErrorKind `json:"kind"`

	// Message provides human-readable error description
	Message string `json:"message"`

	// Endpoint names the call that failed (health, analyze)
	Endpoint string `json:"endpoint,omitempty"`

	// StatusCode for HTTP status errors
	StatusCode int `json:"status_code,omitempty"`

	// Underlying error that caused this error
	Cause error `json:"-"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	var parts []string

	if e.Endpoint != "" {
		parts = append(parts, fmt.Sprintf("endpoint=%s", e.Endpoint))
	}

	parts = append(parts, fmt.Sprintf("kind=%s", e.Kind))

	if e.StatusCode > 0 {
		parts = append(parts, fmt.Sprintf("status=%d", e.StatusCode))
	}

	parts = append(parts, e.Message)

	if e.Cause != nil {
		parts = append(parts, fmt.Sprintf("cause=%s", e.Cause.Error()))
	}

	return strings.Join(parts, ": ")
}

// Unwrap returns the underlying error
func (e *APIError) Unwrap() error {
	return e.Cause
}

// Is matches on error kind so callers can use errors.Is with a sentinel
func (e *APIError) Is(target error) bool {
	if ae, ok := target.(*APIError); ok {
		return e.Kind == ae.Kind
	}
	return false
}

// UserMessage returns the message shown on the error surface for this kind
func (e *APIError) UserMessage() string {
	switch e.Kind {
	case KindNetwork:
		return "Cannot reach the analysis backend. Check your connection and try again."
	case KindTimeout:
		return "The request timed out. The backend may be busy; try again."
	case KindHTTPStatus:
		return fmt.Sprintf("The backend returned an unexpected status (%d).", e.StatusCode)
	case KindServerRejected:
		return fmt.Sprintf("Analysis failed: %s", e.Message)
	case KindDecode:
		return "The backend returned an unreadable response."
	case KindValidation:
		return e.Message
	default:
		return e.Message
	}
}

// NewError creates a classified API error
func NewError(kind ErrorKind, endpoint, message string) *APIError {
	return &APIError{
		Kind:     kind,
		Message:  message,
		Endpoint: endpoint,
	}
}

// NewErrorWithCause creates a classified API error wrapping an underlying cause
func NewErrorWithCause(kind ErrorKind, endpoint, message string, cause error) *APIError {
	return &APIError{
		Kind:     kind,
		Message:  message,
		Endpoint: endpoint,
		Cause:    cause,
	}
}

// NewStatusError creates an error for a non-2xx response
func NewStatusError(endpoint string, statusCode int) *APIError {
	return &APIError{
		Kind:       KindHTTPStatus,
		Message:    fmt.Sprintf("request failed with status %d", statusCode),
		Endpoint:   endpoint,
		StatusCode: statusCode,
	}
}

// classifyTransportError separates timeouts from plain connection failures.
// A context deadline crossing is the timeout boundary; everything else on the
// transport is a network failure.
func classifyTransportError(endpoint string, err error) *APIError {
	if errors.Is(err, context.DeadlineExceeded) {
		return NewErrorWithCause(KindTimeout, endpoint, "request exceeded its time bound", err)
	}
	return NewErrorWithCause(KindNetwork, endpoint, "request failed", err)
}

// classifyDecodeError separates a deadline crossing the body read from a
// genuinely malformed response. The transport classifier only sees errors
// from the request itself; a timeout can also fire mid-decode.
func classifyDecodeError(endpoint string, err error) *APIError {
	if errors.Is(err, context.DeadlineExceeded) {
		return NewErrorWithCause(KindTimeout, endpoint, "request exceeded its time bound", err)
	}
	return NewErrorWithCause(KindDecode, endpoint, "failed to decode response", err)
}

// KindOf extracts the error kind, or empty string for foreign errors
func KindOf(err error) ErrorKind {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return ""
}

// IsTimeout checks whether an error is a timeout-classified API error
func IsTimeout(err error) bool {
	return KindOf(err) == KindTimeout
}

// IsNetwork checks whether an error is a network-classified API error
func IsNetwork(err error) bool {
	return KindOf(err) == KindNetwork
}

// IsValidation checks whether an error is a local validation error
func IsValidation(err error) bool {
	return KindOf(err) == KindValidation
}
