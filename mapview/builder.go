// Copyright 2025 The Saaristo Authors
// SPDX-License-Identifier: Apache-2.0

// Package mapview turns a resolved catalog into a map artifact and renders it.
package mapview

import (
	"bytes"
	"fmt"
	"html/template"
	"log"

	"github.com/jcodagnone/saaristo/catalog"
	"github.com/jcodagnone/saaristo/spatial"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"
)

// DefaultTitle is the page title of rendered maps.
const DefaultTitle = "Recreational islands"

// Marker is a single resolved place on the map.
type Marker struct {
	Point spatial.Point `json:"point"`
	// Label is shown as tooltip.
	Label string `json:"label"`
	City  string `json:"city,omitempty"`
	Notes string `json:"notes,omitempty"`
	// Popup is an HTML fragment. Every catalog value in it is escaped.
	Popup string `json:"popup"`
	// Cell is the H3 index of the point, empty if it could not be computed.
	Cell string `json:"h3,omitempty"`
}

// Artifact is the in-memory map handed to a Serializer.
type Artifact struct {
	Title   string        `json:"title"`
	Center  spatial.Point `json:"center"`
	Zoom    int           `json:"zoom"`
	Markers []Marker      `json:"markers"`
}

// Builder creates artifacts from catalogs.
type Builder struct {
	Title string
	md    goldmark.Markdown
}

// NewBuilder returns a builder with the default title.
func NewBuilder() *Builder {
	return &Builder{
		Title: DefaultTitle,
		// raw HTML in notes is dropped, not passed through
		md: goldmark.New(goldmark.WithRendererOptions(html.WithHardWraps())),
	}
}

// Build creates the artifact for the resolved places of c, in catalog order.
// It returns false when no place is resolved; that is not an error.
func (b *Builder) Build(c *catalog.Catalog) (*Artifact, bool) {
	resolved := c.Resolved()
	if len(resolved) == 0 {
		return nil, false
	}

	points := make([]spatial.Point, 0, len(resolved))
	markers := make([]Marker, 0, len(resolved))

	for _, p := range resolved {
		pt := *p.Point
		points = append(points, pt)
		markers = append(markers, b.marker(p, pt))
	}

	center, _ := spatial.Centroid(points)

	return &Artifact{
		Title:   b.Title,
		Center:  center,
		Zoom:    zoomFor(center, points),
		Markers: markers,
	}, true
}

func (b *Builder) marker(p *catalog.Place, pt spatial.Point) Marker {
	m := Marker{
		Point: pt,
		Label: p.Name,
		City:  p.City,
		Notes: p.Notes,
	}

	if cell, err := pt.Cell(); err != nil {
		log.Printf("h3 cell for %q: %v", p.Name, err)
	} else {
		m.Cell = cell.String()
	}

	m.Popup = b.popup(p, pt)

	return m
}

func (b *Builder) popup(p *catalog.Place, pt spatial.Point) string {
	var sb bytes.Buffer

	fmt.Fprintf(&sb, "<h4>%s</h4>", template.HTMLEscapeString(p.Name))

	if p.City != "" {
		fmt.Fprintf(&sb, "<p><b>City:</b> %s</p>", template.HTMLEscapeString(p.City))
	}

	if p.Notes != "" {
		sb.WriteString(`<div class="notes">`)

		if err := b.md.Convert([]byte(p.Notes), &sb); err != nil {
			log.Printf("rendering notes of %q: %v", p.Name, err)
			sb.WriteString(template.HTMLEscapeString(p.Notes))
		}

		sb.WriteString("</div>")
	}

	fmt.Fprintf(&sb, "<p><b>Coordinates:</b> %.6f, %.6f</p>", pt.Lat, pt.Lng)

	return sb.String()
}

// zoom levels by the largest distance from the center, in meters
var zoomSteps = []struct {
	maxDistance float64
	zoom        int
}{
	{15_000, 10},
	{35_000, 9},
	{80_000, 8},
	{160_000, 7},
	{350_000, 6},
	{700_000, 5},
}

const minZoom = 4

func zoomFor(center spatial.Point, points []spatial.Point) int {
	var spread float64

	for i := range points {
		if d := center.HaversineDistance(&points[i]); d > spread {
			spread = d
		}
	}

	for _, s := range zoomSteps {
		if spread <= s.maxDistance {
			return s.zoom
		}
	}

	return minZoom
}
