// Copyright 2025 The Saaristo Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"io"
	"log"

	"github.com/jcodagnone/saaristo/catalog"
	"github.com/jcodagnone/saaristo/geocode"
	"github.com/schollz/progressbar/v3"
)

// consoleReporter shows resolution progress. Interactive sessions get a
// progress bar; otherwise every step is logged.
type consoleReporter struct {
	writer      io.Writer
	interactive bool
	bar         *progressbar.ProgressBar
	failures    int
}

func newConsoleReporter(w io.Writer, interactive bool) *consoleReporter {
	return &consoleReporter{writer: w, interactive: interactive}
}

func (r *consoleReporter) PlaceStarted(index, total int, place *catalog.Place) {
	if !r.interactive {
		log.Printf("[%d/%d] Processing %s...", index, total, place.Name)

		return
	}

	if r.bar == nil {
		r.bar = progressbar.NewOptions(total,
			progressbar.OptionSetDescription("Locating places"),
			progressbar.OptionSetWriter(r.writer),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	r.bar.Describe(place.Name)
}

func (r *consoleReporter) QueryAttempted(query string) {
	if !r.interactive {
		log.Printf("  Searching for: %s", query)
	}
}

func (r *consoleReporter) QueryFailed(query string, err error) {
	if geocode.IsNotFound(err) {
		return
	}

	r.failures++

	if !r.interactive {
		log.Printf("  Lookup of %q failed: %v", query, err)
	}
}

func (r *consoleReporter) PlaceResolved(place *catalog.Place) {
	if r.bar != nil {
		_ = r.bar.Add(1)

		return
	}

	log.Printf("  ✓ Found: %s", place.Point)
}

func (r *consoleReporter) PlaceUnresolved(_ *catalog.Place) {
	if r.bar != nil {
		_ = r.bar.Add(1)

		return
	}

	log.Print("  ✗ Not found")
}

func (r *consoleReporter) Finished(tally catalog.Tally) {
	if r.bar != nil {
		_ = r.bar.Finish()
	}

	if r.failures > 0 {
		log.Printf("%d lookups failed with transport errors", r.failures)
	}

	log.Printf("Located %d of %d places", tally.Resolved, tally.Total)
}
