// Copyright 2025 The Saaristo Authors
// SPDX-License-Identifier: Apache-2.0

package geocode

import (
	"context"
	"strings"

	"github.com/jcodagnone/saaristo/catalog"
	"github.com/jcodagnone/saaristo/spatial"
	"github.com/jcodagnone/saaristo/utils/textutils"
)

// Region is the country every query is anchored to.
type Region struct {
	// Country is appended to the query text, e.g. "Finland"
	Country string
	// CountryCode restricts the search, e.g. "fi"
	CountryCode string
}

// VariantResolver tries increasingly loose phrasings of a place until the
// geocoder finds one. The first success wins.
type VariantResolver struct {
	geocoder Geocoder
	limiter  *RateLimiter
	region   Region
	observer Observer
}

// ResolverOption configures a VariantResolver.
type ResolverOption func(*VariantResolver)

// WithObserver reports every query attempt and failure to o.
func WithObserver(o Observer) ResolverOption {
	return func(r *VariantResolver) {
		if o != nil {
			r.observer = o
		}
	}
}

// NewVariantResolver creates a resolver. The limiter is consulted before
// every geocoder call.
func NewVariantResolver(g Geocoder, limiter *RateLimiter, region Region, opts ...ResolverOption) *VariantResolver {
	if limiter == nil {
		limiter = NewRateLimiter(DefaultInterval, nil)
	}

	r := &VariantResolver{
		geocoder: g,
		limiter:  limiter,
		region:   region,
		observer: nopObserver{},
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Variants returns the queries tried for a place, most specific first:
//
//	"{name}, {city}, {country}"
//	"{name}, {city}"
//	"{name} {country}"
//
// Missing components are skipped and repeated queries collapsed.
func (r *VariantResolver) Variants(place *catalog.Place) []string {
	name := textutils.CollapseSpaces(place.Name)
	city := textutils.CollapseSpaces(place.City)
	country := textutils.CollapseSpaces(r.region.Country)

	candidates := []string{
		joinNonEmpty(", ", name, city, country),
		joinNonEmpty(", ", name, city),
		joinNonEmpty(" ", name, country),
	}

	seen := make(map[string]struct{}, len(candidates))
	out := make([]string, 0, len(candidates))

	for _, q := range candidates {
		if q == "" {
			continue
		}

		if _, ok := seen[q]; ok {
			continue
		}

		seen[q] = struct{}{}
		out = append(out, q)
	}

	return out
}

func joinNonEmpty(sep string, parts ...string) string {
	nonEmpty := parts[:0:0]

	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}

	return strings.Join(nonEmpty, sep)
}

// ResolvePlace implements catalog.Resolver.
func (r *VariantResolver) ResolvePlace(ctx context.Context, place *catalog.Place) (spatial.Point, bool) {
	if place == nil || textutils.CollapseSpaces(place.Name) == "" {
		return spatial.Point{}, false
	}

	for _, query := range r.Variants(place) {
		if err := r.limiter.Wait(ctx); err != nil {
			r.observer.QueryFailed(query, err)

			return spatial.Point{}, false
		}

		r.observer.QueryAttempted(query)

		p, err := r.geocoder.Geocode(ctx, query, r.region.CountryCode)
		if err == nil {
			return p, true
		}

		r.observer.QueryFailed(query, err)
	}

	return spatial.Point{}, false
}
