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

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Locates the catalog and serves the map for preview",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		s, err := newPreviewServer(ctx, rootOptions, cmd.OutOrStdout())
		if err != nil {
			return err
		}

		// interrupts stop the server from here on
		stop()
		log.Printf("Serving map on http://%s/", serveAddr)

		return s.Run(serveAddr)
	},
}

func newPreviewServer(ctx context.Context, opts *options, out io.Writer) (*mapview.Server, error) {
	c, err := catalog.Load(opts.CatalogPath)
	if err != nil {
		return nil, err
	}

	tally := locate(ctx, opts, c)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("interrupted: %w", err)
	}

	printResults(out, c, tally)

	a, ok := mapview.NewBuilder().Build(c)
	if !ok {
		log.Print("No places resolved, serving an empty map")
	}

	return mapview.NewServer(c, a)
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(
		&serveAddr,
		"addr",
		mapview.DefaultAddr,
		"Address to listen on",
	)
}
