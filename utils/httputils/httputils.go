// Copyright 2025 The Saaristo Authors
// SPDX-License-Identifier: Apache-2.0

// Package httputils provides http.RoundTripper decorators for API clients.
package httputils

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"strings"
	"time"
)

const maxTraceLines, maxTraceChars = 256, 512

// LoggingRoundTripper dumps requests and responses to Writer. A nil Writer
// disables tracing.
type LoggingRoundTripper struct {
	Transport http.RoundTripper
	Writer    io.Writer
	DumpBody  bool
}

// abbreviate prefixes every line and truncates long dumps.
func abbreviate(lines []string, prefix rune) []string {
	if len(lines) > maxTraceLines {
		lines = append(lines[:maxTraceLines], "…")
	}

	for i, line := range lines {
		if len(line) > maxTraceChars {
			line = line[:maxTraceChars] + "…"
		}

		lines[i] = fmt.Sprintf("%c %s", prefix, line)
	}

	return lines
}

func (t *LoggingRoundTripper) write(lines []string) error {
	lines = append(lines, "")
	_, err := fmt.Fprint(t.Writer, strings.Join(lines, "\n"))

	return err
}

// RoundTrip implements the http.RoundTripper interface.
func (t *LoggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.Writer == nil {
		return t.Transport.RoundTrip(req)
	}

	dump, err := httputil.DumpRequestOut(req, t.DumpBody)
	if err != nil {
		return nil, fmt.Errorf("tracing HTTP request: %w", err)
	}

	if err := t.write(abbreviate(strings.Split(string(dump), "\n"), '>')); err != nil {
		return nil, fmt.Errorf("tracing HTTP request: %w", err)
	}

	start := time.Now()

	resp, err := t.Transport.RoundTrip(req)
	if err != nil {
		_, _ = fmt.Fprintf(t.Writer, "< ERROR: [%v] %v\n", time.Since(start), err)

		return nil, err
	}

	dump, err = httputil.DumpResponse(resp, t.DumpBody)
	if err != nil {
		resp.Body.Close()

		return nil, fmt.Errorf("tracing HTTP response: %w", err)
	}

	lines := append(
		[]string{fmt.Sprintf("RESPONSE: [%v]", time.Since(start))},
		strings.Split(string(dump), "\n")...,
	)
	if err := t.write(abbreviate(lines, '<')); err != nil {
		resp.Body.Close()

		return nil, fmt.Errorf("tracing HTTP response: %w", err)
	}

	return resp, nil
}

// AppendRequestHeadersRoundTripper sets fixed headers on every request.
type AppendRequestHeadersRoundTripper struct {
	Transport http.RoundTripper
	Headers   map[string]string
}

// RoundTrip implements the http.RoundTripper interface. The caller's request
// is left untouched.
func (t *AppendRequestHeadersRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	for k, v := range t.Headers {
		req.Header.Set(k, v)
	}

	return t.Transport.RoundTrip(req)
}
