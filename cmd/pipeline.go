// Copyright 2025 The Saaristo Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jcodagnone/saaristo/catalog"
	"github.com/jcodagnone/saaristo/geocode"
	"github.com/mattn/go-isatty"
)

// locate resolves every place of c against Nominatim, reporting progress
// on stderr.
func locate(ctx context.Context, opts *options, c *catalog.Catalog) catalog.Tally {
	geoOpts := opts.Options
	geoOpts.UserAgent = userAgent()

	interactive := !opts.Verbose && !opts.EnableHTTPTrace && isatty.IsTerminal(os.Stderr.Fd())
	rep := newConsoleReporter(os.Stderr, interactive)

	resolver := geocode.NewVariantResolver(
		geocode.NewNominatimGeocoder(&geoOpts),
		geocode.NewRateLimiter(opts.Interval, nil),
		geocode.Region{Country: c.Country, CountryCode: c.CountryCode},
		geocode.WithObserver(rep),
	)

	return c.ResolveAll(ctx, resolver, rep)
}

// printResults writes every place and the final tally.
func printResults(w io.Writer, c *catalog.Catalog, tally catalog.Tally) {
	fmt.Fprintf(w, "\n%s\nRESULTS:\n%s\n", strings.Repeat("=", 60), strings.Repeat("=", 60))

	for i, p := range c.Places() {
		fmt.Fprintf(w, "\n%d. %s\n", i+1, p)
	}

	fmt.Fprintf(w, "\nSuccessfully found coordinates for %d/%d places\n", tally.Resolved, tally.Total)
}
