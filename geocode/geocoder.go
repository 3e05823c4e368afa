// Copyright 2025 The Saaristo Authors
// SPDX-License-Identifier: Apache-2.0

// Package geocode turns free-text place descriptions into coordinates.
package geocode

import (
	"context"

	"github.com/jcodagnone/saaristo/spatial"
)

// Geocoder resolves one query string.
type Geocoder interface {
	// Geocode returns the best match for query, optionally restricted to an
	// ISO 3166-1 country code. A miss is reported as an error of type
	// ErrorTypeNotFound; every other error is a transport error.
	Geocode(ctx context.Context, query string, countryCode string) (spatial.Point, error)
}

// Observer is notified of every query a resolver issues.
type Observer interface {
	QueryAttempted(query string)
	QueryFailed(query string, err error)
}

type nopObserver struct{}

func (nopObserver) QueryAttempted(string)     {}
func (nopObserver) QueryFailed(string, error) {}
