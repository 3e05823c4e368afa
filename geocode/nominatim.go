// Copyright 2025 The Saaristo Authors
// SPDX-License-Identifier: Apache-2.0

package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jcodagnone/saaristo/spatial"
	"github.com/jcodagnone/saaristo/utils/httputils"
	"github.com/jcodagnone/saaristo/utils/textutils"
)

const (
	// DefaultEndpoint is the public OpenStreetMap Nominatim instance.
	DefaultEndpoint = "https://nominatim.openstreetmap.org"
	// DefaultTimeout bounds every lookup.
	DefaultTimeout = 10 * time.Second

	defaultUserAgent = "saaristo/unknown"
	maxBodyBytes     = 1 << 20
	maxErrorBody     = 256
)

// Options configures a NominatimGeocoder.
type Options struct {
	// Endpoint is the base URL of the Nominatim instance
	Endpoint string

	// UserAgent identifies this client, as required by the Nominatim usage policy
	UserAgent string

	// Timeout for a single request, DefaultTimeout when zero
	Timeout time.Duration

	// Enables light tracing of HTTP requests and responses
	EnableHTTPTrace bool

	// Enables full HTTP body tracing
	EnableHTTPBodyTrace bool

	// TraceWriter receives the HTTP trace, os.Stderr when nil
	TraceWriter io.Writer
}

// NominatimGeocoder queries the Nominatim search API.
type NominatimGeocoder struct {
	endpoint   string
	httpClient *http.Client
}

type nominatimMatch struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// NewNominatimGeocoder creates a geocoder. Every request carries the
// configured User-Agent.
func NewNominatimGeocoder(options *Options) *NominatimGeocoder {
	if options == nil {
		options = &Options{}
	}

	endpoint := strings.TrimRight(options.Endpoint, "/")
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	timeout := options.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	var traceWriter io.Writer
	if options.EnableHTTPTrace || options.EnableHTTPBodyTrace {
		traceWriter = options.TraceWriter
		if traceWriter == nil {
			traceWriter = os.Stderr
		}
	}

	userAgent := defaultUserAgent
	if options.UserAgent != "" {
		userAgent = options.UserAgent
	}

	transport := &httputils.AppendRequestHeadersRoundTripper{
		Headers: map[string]string{
			"User-Agent": userAgent,
			"Accept":     "application/json",
		},
		Transport: &httputils.LoggingRoundTripper{
			Writer:    traceWriter,
			DumpBody:  options.EnableHTTPBodyTrace,
			Transport: http.DefaultTransport,
		},
	}

	return &NominatimGeocoder{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

// Geocode asks for at most one match for query.
func (g *NominatimGeocoder) Geocode(ctx context.Context, query string, countryCode string) (spatial.Point, error) {
	query = textutils.CollapseSpaces(query)
	if query == "" {
		return spatial.Point{}, &GeocodingError{Type: ErrorTypeInvalidRequest, Message: "empty query"}
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "1")

	if countryCode != "" {
		params.Set("countrycodes", strings.ToLower(countryCode))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.endpoint+"/search?"+params.Encode(), nil)
	if err != nil {
		return spatial.Point{}, &GeocodingError{Type: ErrorTypeInvalidRequest, Message: "building request", Err: err}
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return spatial.Point{}, classifyTransportError(err)
	}
	defer resp.Body.Close()

	body := io.LimitReader(resp.Body, maxBodyBytes)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(body, maxErrorBody))

		return spatial.Point{}, ClassifyHTTPError(resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var matches []nominatimMatch
	if err := json.NewDecoder(body).Decode(&matches); err != nil {
		if IsTimeoutError(err) {
			return spatial.Point{}, classifyTransportError(err)
		}

		return spatial.Point{}, &GeocodingError{Type: ErrorTypeInvalidResponse, Message: "decoding response", Err: err}
	}

	if len(matches) == 0 {
		return spatial.Point{}, &GeocodingError{
			Type:    ErrorTypeNotFound,
			Message: fmt.Sprintf("no results found for %q", query),
		}
	}

	return matches[0].point()
}

func (m nominatimMatch) point() (spatial.Point, error) {
	lat, err := strconv.ParseFloat(strings.TrimSpace(m.Lat), 64)
	if err != nil {
		return spatial.Point{}, &GeocodingError{Type: ErrorTypeInvalidResponse, Message: "parsing lat", Err: err}
	}

	lng, err := strconv.ParseFloat(strings.TrimSpace(m.Lon), 64)
	if err != nil {
		return spatial.Point{}, &GeocodingError{Type: ErrorTypeInvalidResponse, Message: "parsing lon", Err: err}
	}

	p := spatial.Point{Lat: lat, Lng: lng}
	if err := p.Validate(); err != nil {
		return spatial.Point{}, &GeocodingError{Type: ErrorTypeInvalidResponse, Message: "invalid coordinates", Err: err}
	}

	return p, nil
}
