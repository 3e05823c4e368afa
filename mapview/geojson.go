// Copyright 2025 The Saaristo Authors
// SPDX-License-Identifier: Apache-2.0

package mapview

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// GeoJSONSerializer renders the markers as a FeatureCollection of points.
type GeoJSONSerializer struct {
	// Indent pretty prints the output when not empty.
	Indent string
}

// FeatureCollection converts the markers of the artifact, in order.
func FeatureCollection(a *Artifact) *geojson.FeatureCollection {
	fc := &geojson.FeatureCollection{
		Features: make([]*geojson.Feature, 0, len(a.Markers)),
	}

	bounds := geom.NewBounds(geom.XY)

	for i, m := range a.Markers {
		pt := geom.NewPointFlat(geom.XY, []float64{m.Point.Lng, m.Point.Lat})
		bounds.Extend(pt)

		props := map[string]any{
			"name": m.Label,
		}

		if m.City != "" {
			props["city"] = m.City
		}

		if m.Notes != "" {
			props["notes"] = m.Notes
		}

		if m.Cell != "" {
			props["h3"] = m.Cell
		}

		fc.Features = append(fc.Features, &geojson.Feature{
			ID:         strconv.Itoa(i + 1),
			Geometry:   pt,
			Properties: props,
		})
	}

	if len(a.Markers) > 0 {
		fc.BBox = bounds
	}

	return fc
}

func (s GeoJSONSerializer) Write(w io.Writer, a *Artifact) error {
	data, err := json.Marshal(FeatureCollection(a))
	if err != nil {
		return fmt.Errorf("encoding geojson: %w", err)
	}

	if s.Indent != "" {
		var buf bytes.Buffer
		if err := json.Indent(&buf, data, "", s.Indent); err != nil {
			return err
		}

		data = buf.Bytes()
	}

	data = append(data, '\n')

	_, err = w.Write(data)

	return err
}
