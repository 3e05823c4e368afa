// Copyright 2025 The Saaristo Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"time"

	"github.com/jcodagnone/saaristo/geocode"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type logWriter struct {
	writer io.Writer
}

func (w *logWriter) Write(bytes []byte) (int, error) {
	return fmt.Fprintf(w.writer, "%s %s", time.Now().Format("2006-01-02 15:04:05"), string(bytes))
}

func init() {
	log.SetFlags(0)
	log.SetOutput(&logWriter{writer: os.Stderr})
}

// options shared by every command.
type options struct {
	CatalogPath string
	Interval    time.Duration
	Verbose     bool
	geocode.Options
}

var rootOptions = &options{}

var rootCmd = &cobra.Command{
	Use:   "saaristo",
	Short: "recreational islands on a map",
	Long: `
saaristo locates a catalog of named places, recreational islands of the
Finnish archipelago by default, through OpenStreetMap Nominatim and renders
them on an interactive map.
`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.Printf("Ignoring .env file: %v", err)
		}

		return applyEnv(cmd.Flags(), os.Getenv)
	},
}

// envBindings maps environment variables to the flags they default.
var envBindings = []struct {
	env  string
	flag string
}{
	{"SAARISTO_CATALOG", "catalog"},
	{"SAARISTO_ENDPOINT", "endpoint"},
	{"SAARISTO_USER_AGENT", "user-agent"},
	{"SAARISTO_INTERVAL", "interval"},
	{"SAARISTO_OUTPUT", "output"},
}

// applyEnv sets every flag not given on the command line from its
// environment variable, when present.
func applyEnv(flags *pflag.FlagSet, getenv func(string) string) error {
	for _, b := range envBindings {
		f := flags.Lookup(b.flag)
		if f == nil || f.Changed {
			continue
		}

		v := getenv(b.env)
		if v == "" {
			continue
		}

		if err := flags.Set(b.flag, v); err != nil {
			return fmt.Errorf("invalid %s: %w", b.env, err)
		}
	}

	return nil
}

var Version = "dev"

func userAgent() string {
	if rootOptions.UserAgent != "" {
		return rootOptions.UserAgent
	}

	return fmt.Sprintf("saaristo/%s (+https://github.com/jcodagnone/saaristo)", Version)
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&rootOptions.CatalogPath,
		"catalog",
		"",
		"YAML catalog of places. Defaults to the built-in islands catalog",
	)
	rootCmd.PersistentFlags().StringVar(
		&rootOptions.Endpoint,
		"endpoint",
		geocode.DefaultEndpoint,
		"Nominatim base URL",
	)
	rootCmd.PersistentFlags().StringVar(
		&rootOptions.UserAgent,
		"user-agent",
		"",
		"User-Agent sent to Nominatim. Defaults to saaristo/<version>",
	)
	rootCmd.PersistentFlags().DurationVar(
		&rootOptions.Interval,
		"interval",
		geocode.DefaultInterval,
		"Minimum time between two geocoding requests",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&rootOptions.Verbose,
		"verbose",
		"v",
		false,
		"Log every query instead of showing a progress bar",
	)
	rootCmd.PersistentFlags().BoolVar(
		&rootOptions.EnableHTTPTrace,
		"trace-http",
		false,
		"Display HTTP requests-responses",
	)
	rootCmd.PersistentFlags().BoolVar(
		&rootOptions.EnableHTTPBodyTrace,
		"trace-http-body",
		false,
		"Display HTTP requests-responses bodies",
	)
}

func Execute(version string) {
	Version = version

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
