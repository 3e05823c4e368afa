// Copyright 2025 The Saaristo Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jcodagnone/saaristo/catalog"
	"github.com/jcodagnone/saaristo/mapview"
	"github.com/spf13/cobra"
)

type mapOptions struct {
	Output  string
	GeoJSON string
}

var mapOpts = &mapOptions{}

var mapCmd = &cobra.Command{
	Use:   "map",
	Short: "Locates the catalog and writes the interactive map",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return runMap(ctx, rootOptions, mapOpts, cmd.OutOrStdout())
	},
}

func runMap(ctx context.Context, opts *options, mo *mapOptions, out io.Writer) error {
	c, err := catalog.Load(opts.CatalogPath)
	if err != nil {
		return err
	}

	log.Printf("Searching coordinates for %d places in %s", c.Len(), c.Country)

	tally := locate(ctx, opts, c)
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("interrupted: %w", err)
	}

	printResults(out, c, tally)

	a, ok := mapview.NewBuilder().Build(c)
	if !ok {
		fmt.Fprintln(out, "\nNo places resolved, map not created.")

		return nil
	}

	if err := mapview.WriteFile(mo.Output, mapview.HTMLSerializer{}, a); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nMap saved as '%s'\n", mo.Output)

	if mo.GeoJSON != "" {
		if err := mapview.WriteFile(mo.GeoJSON, mapview.GeoJSONSerializer{Indent: "  "}, a); err != nil {
			return err
		}

		fmt.Fprintf(out, "GeoJSON saved as '%s'\n", mo.GeoJSON)
	}

	return nil
}

func init() {
	rootCmd.AddCommand(mapCmd)
	mapCmd.Flags().StringVarP(
		&mapOpts.Output,
		"output",
		"o",
		mapview.DefaultOutput,
		"HTML file to write",
	)
	mapCmd.Flags().StringVar(
		&mapOpts.GeoJSON,
		"geojson",
		"",
		"Also write the markers as GeoJSON to this file",
	)
}
