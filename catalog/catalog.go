// Copyright 2025 The Saaristo Authors
// SPDX-License-Identifier: Apache-2.0

// Package catalog holds the ordered collection of places to be located.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jcodagnone/saaristo/spatial"
	"github.com/jcodagnone/saaristo/utils/textutils"
)

// ErrAlreadyResolved is returned when a place is assigned coordinates twice.
var ErrAlreadyResolved = errors.New("place already resolved")

// Place describes a named place and, once resolved, where it is.
type Place struct {
	Name  string `yaml:"name"`
	City  string `yaml:"city"`
	Notes string `yaml:"notes"`

	// nil until the resolution pipeline finds the place
	Point *spatial.Point `yaml:"-"`
}

// Resolved reports whether the place has coordinates.
func (p *Place) Resolved() bool {
	return p.Point != nil
}

// SetPoint assigns the coordinates of the place. A place is written at most once.
func (p *Place) SetPoint(pt spatial.Point) error {
	if p.Point != nil {
		return fmt.Errorf("%s: %w", p.Name, ErrAlreadyResolved)
	}

	if err := pt.Validate(); err != nil {
		return fmt.Errorf("%s: %w", p.Name, err)
	}

	p.Point = &pt

	return nil
}

// String mirrors the console results block.
func (p *Place) String() string {
	coords := "Not found"
	if p.Point != nil {
		coords = p.Point.String()
	}

	return fmt.Sprintf("%s, %s\n  Notes: %s\n  Coordinates: %s", p.Name, p.City, p.Notes, coords)
}

// Catalog is the ordered set of places located in a given country.
// Insertion order is preserved and is the display order.
type Catalog struct {
	// Country is the human readable country name used in queries.
	Country string
	// CountryCode is the ISO 3166-1 alpha-2 code used to restrict searches.
	CountryCode string

	places []*Place
}

// New validates the places and returns a catalog owning copies of them.
func New(country, countryCode string, places []Place) (*Catalog, error) {
	c := &Catalog{
		Country:     strings.TrimSpace(country),
		CountryCode: strings.ToLower(strings.TrimSpace(countryCode)),
		places:      make([]*Place, 0, len(places)),
	}

	for _, p := range places {
		c.places = append(c.places, &Place{
			Name:  textutils.CollapseSpaces(p.Name),
			City:  textutils.CollapseSpaces(p.City),
			Notes: strings.TrimSpace(p.Notes),
		})
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate checks the catalog configuration and reports every problem found.
func (c *Catalog) Validate() error {
	var errs []error

	if c.CountryCode != "" && !isCountryCode(c.CountryCode) {
		errs = append(errs, fmt.Errorf("invalid country code %q: expected two letters", c.CountryCode))
	}

	if len(c.places) == 0 {
		errs = append(errs, errors.New("catalog has no places"))
	}

	seen := make(map[string]int, len(c.places))

	for i, p := range c.places {
		if p.Name == "" {
			errs = append(errs, fmt.Errorf("place #%d: name cannot be empty", i+1))

			continue
		}

		key := textutils.LowerASCIIFolding(p.Name) + "|" + textutils.LowerASCIIFolding(p.City)
		if j, ok := seen[key]; ok {
			errs = append(errs, fmt.Errorf("place #%d: %q duplicates place #%d", i+1, p.Name, j+1))

			continue
		}

		seen[key] = i
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid catalog: %w", errors.Join(errs...))
	}

	return nil
}

func isCountryCode(s string) bool {
	if len(s) != 2 {
		return false
	}

	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}

	return true
}

// Len returns the number of places.
func (c *Catalog) Len() int {
	return len(c.places)
}

// Places returns the places in catalog order. The slice is a copy but the
// places are shared with the catalog.
func (c *Catalog) Places() []*Place {
	out := make([]*Place, len(c.places))
	copy(out, c.places)

	return out
}

// Resolved returns the places that have coordinates, in catalog order.
func (c *Catalog) Resolved() []*Place {
	var out []*Place

	for _, p := range c.places {
		if p.Resolved() {
			out = append(out, p)
		}
	}

	return out
}
