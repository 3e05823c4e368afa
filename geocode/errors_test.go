// Copyright 2025 The Saaristo Authors
// SPDX-License-Identifier: Apache-2.0

package geocode

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

type errorCheckTestCase struct {
	name string
	err  error
	want bool
}

func runErrorCheckTest(t *testing.T, tests []errorCheckTestCase, checkFunc func(error) bool) {
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := checkFunc(tt.err); got != tt.want {
				t.Errorf("checkFunc() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsRateLimitError(t *testing.T) {
	tests := []errorCheckTestCase{
		{
			name: "rate limit error type",
			err:  &GeocodingError{Type: ErrorTypeRateLimit, Message: "rate limit reached"},
			want: true,
		},
		{
			name: "error message contains too many requests",
			err:  errors.New("too many requests"),
			want: true,
		},
		{
			name: "error message contains 429",
			err:  errors.New("nominatim returned status 429"),
			want: true,
		},
		{
			name: "other error type",
			err:  &GeocodingError{Type: ErrorTypeNotFound, Message: "no results found"},
			want: false,
		},
		{
			name: "unrelated error",
			err:  errors.New("some other error"),
			want: false,
		},
	}

	runErrorCheckTest(t, tests, IsRateLimitError)
}

func TestIsTimeoutError(t *testing.T) {
	tests := []errorCheckTestCase{
		{
			name: "timeout error type",
			err:  &GeocodingError{Type: ErrorTypeTimeout, Message: "request timed out"},
			want: true,
		},
		{
			name: "wrapped timeout error type",
			err:  fmt.Errorf("query %q: %w", "Utö", &GeocodingError{Type: ErrorTypeTimeout}),
			want: true,
		},
		{
			name: "error message contains deadline exceeded",
			err:  context.DeadlineExceeded,
			want: true,
		},
		{
			name: "other error type",
			err:  &GeocodingError{Type: ErrorTypeNetworkError, Message: "request failed"},
			want: false,
		},
		{
			name: "unrelated error",
			err:  errors.New("some other error"),
			want: false,
		},
	}

	runErrorCheckTest(t, tests, IsTimeoutError)
}

func TestIsNotFound(t *testing.T) {
	tests := []errorCheckTestCase{
		{
			name: "not found error type",
			err:  &GeocodingError{Type: ErrorTypeNotFound, Message: "no results found"},
			want: true,
		},
		{
			name: "wrapped",
			err:  fmt.Errorf("lookup: %w", &GeocodingError{Type: ErrorTypeNotFound}),
			want: true,
		},
		{
			name: "message alone is not enough",
			err:  errors.New("not found"),
			want: false,
		},
		{
			name: "nil",
			err:  nil,
			want: false,
		},
	}

	runErrorCheckTest(t, tests, IsNotFound)
}

func TestIsTransportError(t *testing.T) {
	tests := []errorCheckTestCase{
		{
			name: "not found is a miss",
			err:  &GeocodingError{Type: ErrorTypeNotFound},
			want: false,
		},
		{
			name: "network",
			err:  &GeocodingError{Type: ErrorTypeNetworkError},
			want: true,
		},
		{
			name: "invalid response",
			err:  &GeocodingError{Type: ErrorTypeInvalidResponse},
			want: true,
		},
		{
			name: "plain error",
			err:  errors.New("connection reset by peer"),
			want: true,
		},
		{
			name: "nil",
			err:  nil,
			want: false,
		},
	}

	runErrorCheckTest(t, tests, IsTransportError)
}

func TestClassifyHTTPError(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
		wantType   ErrorType
	}{
		{
			name:       "429 too many requests",
			statusCode: 429,
			wantType:   ErrorTypeRateLimit,
		},
		{
			name:       "403 forbidden",
			statusCode: 403,
			body:       "Access blocked",
			wantType:   ErrorTypeQuotaExceeded,
		},
		{
			name:       "400 bad request",
			statusCode: 400,
			wantType:   ErrorTypeInvalidRequest,
		},
		{
			name:       "503 service unavailable",
			statusCode: 503,
			wantType:   ErrorTypeNetworkError,
		},
		{
			name:       "502 bad gateway",
			statusCode: 502,
			wantType:   ErrorTypeNetworkError,
		},
		{
			name:       "504 gateway timeout",
			statusCode: 504,
			wantType:   ErrorTypeNetworkError,
		},
		{
			name:       "500 internal server error",
			statusCode: 500,
			wantType:   ErrorTypeUnknown,
		},
		{
			name:       "404 is not a miss",
			statusCode: 404,
			wantType:   ErrorTypeUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ClassifyHTTPError(tt.statusCode, tt.body)
			if err.Type != tt.wantType {
				t.Errorf("ClassifyHTTPError() type = %v, want %v", err.Type, tt.wantType)
			}

			if tt.body != "" && err.Err == nil {
				t.Errorf("ClassifyHTTPError() dropped body %q", tt.body)
			}

			if !IsTransportError(err) {
				t.Errorf("ClassifyHTTPError(%d) is not a transport error", tt.statusCode)
			}
		})
	}
}

func TestGeocodingErrorMessage(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := &GeocodingError{Type: ErrorTypeNetworkError, Message: "request failed", Err: cause}

	if got, want := err.Error(), "request failed: dial tcp: connection refused"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	if !errors.Is(err, cause) {
		t.Error("Unwrap() does not expose the cause")
	}

	if got := (&GeocodingError{Message: "no results found"}).Error(); got != "no results found" {
		t.Errorf("Error() = %q", got)
	}
}

func TestErrorTypeString(t *testing.T) {
	tests := map[ErrorType]string{
		ErrorTypeRateLimit: "rate_limit",
		ErrorTypeNotFound:  "not_found",
		ErrorType(99):      "ErrorType(99)",
	}

	for in, want := range tests {
		if got := in.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", int(in), got, want)
		}
	}
}
