// Copyright 2025 The Saaristo Authors
// SPDX-License-Identifier: Apache-2.0

package geocode

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

// GeocodingError represents a failed lookup.
type GeocodingError struct {
	Type    ErrorType
	Message string
	Err     error
}

// ErrorType classifies geocoding failures.
type ErrorType int

const (
	// ErrorTypeUnknown unexpected failure, treated as a transport error.
	ErrorTypeUnknown ErrorType = iota
	// ErrorTypeRateLimit the service throttled us.
	ErrorTypeRateLimit
	// ErrorTypeQuotaExceeded access denied or usage policy violated.
	ErrorTypeQuotaExceeded
	// ErrorTypeTimeout the request did not complete in time.
	ErrorTypeTimeout
	// ErrorTypeNotFound the service returned no match.
	ErrorTypeNotFound
	// ErrorTypeInvalidRequest the query was rejected before or by the service.
	ErrorTypeInvalidRequest
	// ErrorTypeNetworkError the connection failed or the service is unavailable.
	ErrorTypeNetworkError
	// ErrorTypeInvalidResponse the body could not be understood.
	ErrorTypeInvalidResponse
)

var errorTypeNames = map[ErrorType]string{
	ErrorTypeUnknown:         "unknown",
	ErrorTypeRateLimit:       "rate_limit",
	ErrorTypeQuotaExceeded:   "quota_exceeded",
	ErrorTypeTimeout:         "timeout",
	ErrorTypeNotFound:        "not_found",
	ErrorTypeInvalidRequest:  "invalid_request",
	ErrorTypeNetworkError:    "network",
	ErrorTypeInvalidResponse: "invalid_response",
}

func (t ErrorType) String() string {
	if s, ok := errorTypeNames[t]; ok {
		return s
	}

	return fmt.Sprintf("ErrorType(%d)", int(t))
}

func (e *GeocodingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *GeocodingError) Unwrap() error {
	return e.Err
}

func errorType(err error) (ErrorType, bool) {
	var geoErr *GeocodingError
	if errors.As(err, &geoErr) {
		return geoErr.Type, true
	}

	return ErrorTypeUnknown, false
}

// IsNotFound reports whether the service answered with no match.
func IsNotFound(err error) bool {
	t, ok := errorType(err)

	return ok && t == ErrorTypeNotFound
}

// IsTransportError reports whether err is a lookup failure other than a
// plain miss: network problems, timeouts, non-2xx answers or garbage bodies.
func IsTransportError(err error) bool {
	if err == nil {
		return false
	}

	return !IsNotFound(err)
}

// IsRateLimitError verifies if the error is caused by throttling.
func IsRateLimitError(err error) bool {
	if err == nil {
		return false
	}

	if t, ok := errorType(err); ok {
		return t == ErrorTypeRateLimit
	}

	errStr := strings.ToLower(err.Error())

	return strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "too many requests") ||
		strings.Contains(errStr, "429")
}

// IsTimeoutError verifies if the error is caused by a timeout.
func IsTimeoutError(err error) bool {
	if err == nil {
		return false
	}

	if t, ok := errorType(err); ok {
		return t == ErrorTypeTimeout
	}

	errStr := strings.ToLower(err.Error())

	return strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "deadline exceeded")
}

// ClassifyHTTPError maps a non-2xx status code to a geocoding error.
func ClassifyHTTPError(statusCode int, body string) *GeocodingError {
	var e *GeocodingError

	switch statusCode {
	case http.StatusTooManyRequests: // 429
		e = &GeocodingError{Type: ErrorTypeRateLimit, Message: "rate limit reached"}
	case http.StatusForbidden: // 403
		e = &GeocodingError{Type: ErrorTypeQuotaExceeded, Message: "access denied by usage policy"}
	case http.StatusBadRequest: // 400
		e = &GeocodingError{Type: ErrorTypeInvalidRequest, Message: "invalid request"}
	case http.StatusServiceUnavailable, http.StatusBadGateway, http.StatusGatewayTimeout:
		e = &GeocodingError{
			Type:    ErrorTypeNetworkError,
			Message: fmt.Sprintf("service unavailable (status %d)", statusCode),
		}
	default:
		e = &GeocodingError{Type: ErrorTypeUnknown, Message: fmt.Sprintf("HTTP error %d", statusCode)}
	}

	if body != "" {
		e.Err = errors.New(body)
	}

	return e
}

// classifyTransportError wraps an error returned by the HTTP client.
func classifyTransportError(err error) *GeocodingError {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &GeocodingError{Type: ErrorTypeTimeout, Message: "request timed out", Err: err}
	}

	return &GeocodingError{Type: ErrorTypeNetworkError, Message: "request failed", Err: err}
}
