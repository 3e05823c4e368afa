// Copyright 2025 The Saaristo Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/jcodagnone/saaristo/catalog"
	"github.com/spf13/cobra"
)

var placesCmd = &cobra.Command{
	Use:   "places",
	Short: "Lists the places of the catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := catalog.Load(rootOptions.CatalogPath)
		if err != nil {
			return err
		}

		printPlaces(cmd.OutOrStdout(), c)

		return nil
	},
}

const notesWidth = 40

func printPlaces(w io.Writer, c *catalog.Catalog) {
	a, b, d, e := strings.Repeat("─", 2), strings.Repeat("─", 16), strings.Repeat("─", 12), strings.Repeat("─", notesWidth)
	fmt.Fprintf(w, "Places in %s (%s):\n", c.Country, c.CountryCode)
	fmt.Fprintf(w, "╭─%2s─┬─%-16s─┬─%-12s─┬─%s─╮\n", a, b, d, e)
	fmt.Fprintf(w, "│ %2s │ %-16s │ %-12s │ %-40s │\n", "#", "Name", "City", "Notes")
	fmt.Fprintf(w, "├─%2s─┼─%-16s─┼─%-12s─┼─%s─┤\n", a, b, d, e)

	for i, p := range c.Places() {
		fmt.Fprintf(w, "│ %2d │ %-16s │ %-12s │ %-40s │\n", i+1, p.Name, p.City, truncate(p.Notes, notesWidth))
	}

	fmt.Fprintf(w, "╰─%2s─┴─%-16s─┴─%-12s─┴─%s─╯\n", a, b, d, e)
}

// truncate shortens s to at most n runes on a single line.
func truncate(s string, n int) string {
	r := []rune(strings.Join(strings.Fields(s), " "))
	if len(r) <= n {
		return string(r)
	}

	return string(r[:n-1]) + "…"
}

func init() {
	rootCmd.AddCommand(placesCmd)
}
