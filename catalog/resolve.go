// Copyright 2025 The Saaristo Authors
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"context"

	"github.com/jcodagnone/saaristo/spatial"
)

// Resolver finds the coordinates of a single place.
type Resolver interface {
	// ResolvePlace returns the coordinates of the place, or false when no
	// lookup succeeded. Lookup failures are not errors.
	ResolvePlace(ctx context.Context, place *Place) (spatial.Point, bool)
}

// Reporter observes the progress of ResolveAll. Query level events are
// emitted by resolvers that accept an observer.
type Reporter interface {
	PlaceStarted(index, total int, place *Place)
	QueryAttempted(query string)
	QueryFailed(query string, err error)
	PlaceResolved(place *Place)
	PlaceUnresolved(place *Place)
	Finished(tally Tally)
}

// Tally counts the outcome of a resolution run.
type Tally struct {
	Resolved int
	Total    int
}

// Unresolved returns the number of places without coordinates.
func (t Tally) Unresolved() int {
	return t.Total - t.Resolved
}

// NopReporter discards every event.
type NopReporter struct{}

func (NopReporter) PlaceStarted(int, int, *Place) {}
func (NopReporter) QueryAttempted(string)         {}
func (NopReporter) QueryFailed(string, error)     {}
func (NopReporter) PlaceResolved(*Place)          {}
func (NopReporter) PlaceUnresolved(*Place)        {}
func (NopReporter) Finished(Tally)                {}

// ResolveAll asks the resolver for every place in catalog order and records
// the coordinates of the ones found. Places already resolved are counted and
// not looked up again.
func (c *Catalog) ResolveAll(ctx context.Context, r Resolver, rep Reporter) Tally {
	if rep == nil {
		rep = NopReporter{}
	}

	tally := Tally{Total: len(c.places)}

	for i, p := range c.places {
		rep.PlaceStarted(i+1, tally.Total, p)

		if p.Resolved() {
			tally.Resolved++
			rep.PlaceResolved(p)

			continue
		}

		pt, ok := r.ResolvePlace(ctx, p)
		if ok {
			ok = p.SetPoint(pt) == nil
		}

		if ok {
			tally.Resolved++
			rep.PlaceResolved(p)
		} else {
			rep.PlaceUnresolved(p)
		}
	}

	rep.Finished(tally)

	return tally
}
