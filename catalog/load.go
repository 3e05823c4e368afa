// Copyright 2025 The Saaristo Authors
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed islands.yaml
var defaultCatalog []byte

// File is the on-disk catalog format.
type File struct {
	Country     string  `yaml:"country"`
	CountryCode string  `yaml:"country_code"`
	Places      []Place `yaml:"places"`
}

// Default returns the built-in catalog of recreational islands.
func Default() (*Catalog, error) {
	c, err := Parse(bytes.NewReader(defaultCatalog))
	if err != nil {
		return nil, fmt.Errorf("parsing built-in catalog: %w", err)
	}

	return c, nil
}

// Load reads a catalog from a YAML file. An empty path selects the built-in catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}

	f, err := os.Open(path) // #nosec G304 - path is provided by the operator
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}
	defer f.Close()

	c, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("loading catalog %s: %w", path, err)
	}

	return c, nil
}

// Parse decodes and validates a YAML catalog. Unknown fields are rejected.
func Parse(r io.Reader) (*Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var file File
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("catalog is empty")
		}

		return nil, fmt.Errorf("decoding catalog: %w", err)
	}

	return New(file.Country, file.CountryCode, file.Places)
}
