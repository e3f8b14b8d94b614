// Package errors provides the typed error model shared by the TasteBuds
// API client and every command that consumes it.
package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
)

// ==========================
// 1. Error Kinds
// ==========================

// Kind classifies an API failure so callers can branch on the category
// instead of parsing message text.
type Kind string

const (
	KindValidation   Kind = "VALIDATION"
	KindUnauthorized Kind = "UNAUTHORIZED"
	KindForbidden    Kind = "FORBIDDEN"
	KindNotFound     Kind = "NOT_FOUND"
	KindConflict     Kind = "CONFLICT"
	KindRateLimited  Kind = "RATE_LIMITED"
	KindServer       Kind = "SERVER"
	KindNetwork      Kind = "NETWORK"
	KindUnknown      Kind = "UNKNOWN"
)

// KindForStatus maps an HTTP status code to its error kind.
func KindForStatus(status int) Kind {
	switch {
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return KindValidation
	case status == http.StatusUnauthorized:
		return KindUnauthorized
	case status == http.StatusForbidden:
		return KindForbidden
	case status == http.StatusNotFound:
		return KindNotFound
	case status == http.StatusConflict:
		return KindConflict
	case status == http.StatusTooManyRequests:
		return KindRateLimited
	case status >= 500:
		return KindServer
	default:
		return KindUnknown
	}
}

// ==========================
// 2. APIError
// ==========================

// APIError is the single error type surfaced by the API client. Network
// failures carry KindNetwork and a zero StatusCode.
type APIError struct {
	Kind       Kind
	StatusCode int
	Message    string
	RequestID  string
	Err        error // underlying transport error, if any
}

// Error renders the message. 404s keep the historical "404: " prefix so
// callers that still match on the message string keep working.
func (e *APIError) Error() string {
	if e.StatusCode == http.StatusNotFound {
		return "404: " + e.Message
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// backendError is the error envelope FastAPI-style backends return. The
// detail field may be a string or a structured validation payload.
type backendError struct {
	Detail  json.RawMessage `json:"detail"`
	Message string          `json:"message"`
}

// FromResponse normalizes a non-2xx response into an APIError.
//
// Message selection order: JSON "detail" (stringified when not a plain
// string), then JSON "message", then "<status> <statusText>". A body that
// fails to parse as JSON never causes a secondary error.
func FromResponse(status int, statusText string, body []byte) *APIError {
	if statusText == "" {
		statusText = http.StatusText(status)
	}
	msg := fmt.Sprintf("HTTP %d: %s", status, statusText)

	var envelope backendError
	if err := json.Unmarshal(body, &envelope); err == nil {
		switch {
		case len(envelope.Detail) > 0:
			var s string
			if err := json.Unmarshal(envelope.Detail, &s); err == nil {
				msg = s
			} else {
				msg = string(envelope.Detail)
			}
		case envelope.Message != "":
			msg = envelope.Message
		}
	} else {
		msg = fmt.Sprintf("%d %s", status, statusText)
	}

	return &APIError{
		Kind:       KindForStatus(status),
		StatusCode: status,
		Message:    msg,
	}
}

// NewNetworkError wraps a transport-level failure (connection refused,
// timeout, DNS) where no HTTP response was received.
func NewNetworkError(err error) *APIError {
	return &APIError{
		Kind:    KindNetwork,
		Message: fmt.Sprintf("request failed: %v", err),
		Err:     err,
	}
}

// ==========================
// 3. Helpers
// ==========================

// AsAPIError extracts an *APIError from an error chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

func isKind(err error, kind Kind) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Kind == kind
}

func IsNotFound(err error) bool     { return isKind(err, KindNotFound) }
func IsUnauthorized(err error) bool { return isKind(err, KindUnauthorized) }
func IsNetwork(err error) bool      { return isKind(err, KindNetwork) }
func IsServer(err error) bool       { return isKind(err, KindServer) }
func IsRateLimited(err error) bool  { return isKind(err, KindRateLimited) }
