// Copyright 2025 The Saaristo Authors
// SPDX-License-Identifier: Apache-2.0

package geocode

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jcodagnone/saaristo/catalog"
	"github.com/jcodagnone/saaristo/spatial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockGeocoder answers from a table keyed by query. Queries missing from the
// table are not found; entries in failures return that error instead.
type mockGeocoder struct {
	matches  map[string]spatial.Point
	failures map[string]error
	clock    *fakeClock
	queries  []string
	codes    []string
	times    []time.Time
}

func (m *mockGeocoder) Geocode(_ context.Context, query, countryCode string) (spatial.Point, error) {
	m.queries = append(m.queries, query)
	m.codes = append(m.codes, countryCode)

	if m.clock != nil {
		m.times = append(m.times, m.clock.Now())
	}

	if err, ok := m.failures[query]; ok {
		return spatial.Point{}, err
	}

	if p, ok := m.matches[query]; ok {
		return p, nil
	}

	return spatial.Point{}, &GeocodingError{Type: ErrorTypeNotFound, Message: "no results found"}
}

type recordingObserver struct {
	attempted []string
	failed    []string
}

func (o *recordingObserver) QueryAttempted(q string)       { o.attempted = append(o.attempted, q) }
func (o *recordingObserver) QueryFailed(q string, _ error) { o.failed = append(o.failed, q) }

var finland = Region{Country: "Finland", CountryCode: "fi"}

func newTestResolver(g *mockGeocoder, opts ...ResolverOption) (*VariantResolver, *fakeClock) {
	clock := newFakeClock()
	g.clock = clock

	return NewVariantResolver(g, NewRateLimiter(time.Second, clock), finland, opts...), clock
}

func TestVariants(t *testing.T) {
	r := NewVariantResolver(&mockGeocoder{}, nil, finland)

	tests := []struct {
		name  string
		place catalog.Place
		want  []string
	}{
		{
			"full",
			catalog.Place{Name: "Kaunissaari", City: "Sipoo"},
			[]string{"Kaunissaari, Sipoo, Finland", "Kaunissaari, Sipoo", "Kaunissaari Finland"},
		},
		{
			"no city",
			catalog.Place{Name: "Kaunissaari"},
			[]string{"Kaunissaari, Finland", "Kaunissaari", "Kaunissaari Finland"},
		},
		{
			"extra spaces",
			catalog.Place{Name: " Pirtti  saari ", City: "Porvoo "},
			[]string{"Pirtti saari, Porvoo, Finland", "Pirtti saari, Porvoo", "Pirtti saari Finland"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, r.Variants(&tc.place)); diff != "" {
				t.Errorf("Variants() mismatch (-want +got):\n%s", diff)
			}
		})
	}

	noCountry := NewVariantResolver(&mockGeocoder{}, nil, Region{})
	assert.Equal(t, []string{"A, X", "A"}, noCountry.Variants(&catalog.Place{Name: "A", City: "X"}))
}

func TestResolvePlaceFirstVariantWins(t *testing.T) {
	g := &mockGeocoder{matches: map[string]spatial.Point{
		"A, X, Finland": {Lat: 61.0, Lng: 24.0},
		"A, X":          {Lat: 1, Lng: 1},
		"A Finland":     {Lat: 2, Lng: 2},
	}}
	r, _ := newTestResolver(g)

	p, ok := r.ResolvePlace(context.Background(), &catalog.Place{Name: "A", City: "X"})
	require.True(t, ok)

	assert.Equal(t, spatial.Point{Lat: 61.0, Lng: 24.0}, p)
	assert.Equal(t, []string{"A, X, Finland"}, g.queries)
	assert.Equal(t, []string{"fi"}, g.codes)
}

func TestResolvePlaceFallsThrough(t *testing.T) {
	tests := []struct {
		name     string
		matches  map[string]spatial.Point
		failures map[string]error
		want     spatial.Point
		queries  []string
	}{
		{
			name:    "second variant",
			matches: map[string]spatial.Point{"A, X": {Lat: 60.5, Lng: 25.5}, "A Finland": {Lat: 9, Lng: 9}},
			want:    spatial.Point{Lat: 60.5, Lng: 25.5},
			queries: []string{"A, X, Finland", "A, X"},
		},
		{
			name:    "last variant",
			matches: map[string]spatial.Point{"A Finland": {Lat: 60.7, Lng: 25.1}},
			want:    spatial.Point{Lat: 60.7, Lng: 25.1},
			queries: []string{"A, X, Finland", "A, X", "A Finland"},
		},
		{
			name:     "transport error is skipped",
			matches:  map[string]spatial.Point{"A, X": {Lat: 60.5, Lng: 25.5}},
			failures: map[string]error{"A, X, Finland": &GeocodingError{Type: ErrorTypeTimeout, Message: "timeout"}},
			want:     spatial.Point{Lat: 60.5, Lng: 25.5},
			queries:  []string{"A, X, Finland", "A, X"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := &mockGeocoder{matches: tc.matches, failures: tc.failures}
			obs := &recordingObserver{}
			r, _ := newTestResolver(g, WithObserver(obs))

			p, ok := r.ResolvePlace(context.Background(), &catalog.Place{Name: "A", City: "X"})
			require.True(t, ok)

			assert.Equal(t, tc.want, p)
			assert.Equal(t, tc.queries, g.queries)
			assert.Equal(t, tc.queries, obs.attempted)
			assert.Equal(t, tc.queries[:len(tc.queries)-1], obs.failed)
		})
	}
}

func TestResolvePlaceAllVariantsFail(t *testing.T) {
	g := &mockGeocoder{failures: map[string]error{
		"B, Y": errors.New("connection reset"),
	}}
	obs := &recordingObserver{}
	r, clock := newTestResolver(g, WithObserver(obs))

	_, ok := r.ResolvePlace(context.Background(), &catalog.Place{Name: "B", City: "Y"})
	assert.False(t, ok)

	want := []string{"B, Y, Finland", "B, Y", "B Finland"}
	assert.Equal(t, want, g.queries)
	assert.Equal(t, want, obs.failed)

	// one wait before every call, including retries for the same place
	require.Len(t, g.times, 3)
	for i := 1; i < len(g.times); i++ {
		assert.GreaterOrEqual(t, g.times[i].Sub(g.times[i-1]), time.Second)
	}

	assert.Equal(t, []time.Duration{time.Second, time.Second}, clock.sleeps)
}

func TestResolvePlacePacesAcrossPlaces(t *testing.T) {
	g := &mockGeocoder{matches: map[string]spatial.Point{
		"A, X, Finland": {Lat: 61, Lng: 24},
		"B, Y, Finland": {Lat: 62, Lng: 25},
	}}
	r, _ := newTestResolver(g)

	for _, p := range []*catalog.Place{{Name: "A", City: "X"}, {Name: "B", City: "Y"}} {
		_, ok := r.ResolvePlace(context.Background(), p)
		require.True(t, ok)
	}

	require.Len(t, g.times, 2)
	assert.GreaterOrEqual(t, g.times[1].Sub(g.times[0]), time.Second)
}

func TestResolvePlaceCancelled(t *testing.T) {
	g := &mockGeocoder{}
	r, _ := newTestResolver(g)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// the first permission is free, the second wait observes the cancellation
	_, ok := r.ResolvePlace(ctx, &catalog.Place{Name: "A", City: "X"})
	assert.False(t, ok)
	assert.Equal(t, []string{"A, X, Finland"}, g.queries)
}

func TestResolvePlaceEmptyName(t *testing.T) {
	g := &mockGeocoder{}
	r, _ := newTestResolver(g)

	_, ok := r.ResolvePlace(context.Background(), &catalog.Place{City: "X"})
	assert.False(t, ok)
	assert.Empty(t, g.queries)
}

func TestResolveAllWithVariantResolver(t *testing.T) {
	c, err := catalog.New("Finland", "fi", []catalog.Place{
		{Name: "A", City: "X"},
		{Name: "B", City: "Y"},
	})
	require.NoError(t, err)

	g := &mockGeocoder{matches: map[string]spatial.Point{"A, X, Finland": {Lat: 61.0, Lng: 24.0}}}
	r, _ := newTestResolver(g)

	tally := c.ResolveAll(context.Background(), r, nil)
	assert.Equal(t, catalog.Tally{Resolved: 1, Total: 2}, tally)

	places := c.Places()
	require.NotNil(t, places[0].Point)
	assert.Equal(t, spatial.Point{Lat: 61.0, Lng: 24.0}, *places[0].Point)
	assert.Nil(t, places[1].Point)
	assert.Equal(t, []string{"A, X, Finland", "B, Y, Finland", "B, Y", "B Finland"}, g.queries)
}
