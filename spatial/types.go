// Copyright 2025 The Saaristo Authors
//
// SPDX-License-Identifier: Apache-2.0
package spatial

import (
	"fmt"
	"math"

	"github.com/uber/h3-go/v4"
)

const earthRadius = 6371e3 // meters

// CellResolution is the H3 resolution used to tag resolved places.
const CellResolution = 8

// Point represents a geographical point with latitude and longitude.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// String returns a string representation of the Point.
func (p Point) String() string {
	return fmt.Sprintf("%.6f, %.6f", p.Lat, p.Lng)
}

// Validate reports whether the point lies within the WGS84 ranges.
func (p Point) Validate() error {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lng) {
		return fmt.Errorf("spatial: NaN coordinate in %v", p)
	}

	if p.Lat < -90 || p.Lat > 90 {
		return fmt.Errorf("spatial: latitude %f out of range", p.Lat)
	}

	if p.Lng < -180 || p.Lng > 180 {
		return fmt.Errorf("spatial: longitude %f out of range", p.Lng)
	}

	return nil
}

// Cell returns the H3 cell containing the point at CellResolution.
func (p Point) Cell() (h3.Cell, error) {
	cell, err := h3.LatLngToCell(h3.NewLatLng(p.Lat, p.Lng), CellResolution)
	if err != nil {
		return 0, fmt.Errorf("error converting to h3 cell at res %d: %w", CellResolution, err)
	}

	return cell, nil
}

// HaversineDistance calculates the distance between two points on Earth in meters.
func (p *Point) HaversineDistance(other *Point) float64 {
	lat1 := p.Lat * math.Pi / 180
	lat2 := other.Lat * math.Pi / 180
	dLat := (other.Lat - p.Lat) * math.Pi / 180
	dLng := (other.Lng - p.Lng) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadius * c
}

// Centroid returns the flat arithmetic mean of latitudes and of longitudes.
// It is meant for small extents and does not account for the antimeridian.
// The boolean is false when points is empty.
func Centroid(points []Point) (Point, bool) {
	if len(points) == 0 {
		return Point{}, false
	}

	var sumLat, sumLng float64

	for _, p := range points {
		sumLat += p.Lat
		sumLng += p.Lng
	}

	n := float64(len(points))

	return Point{Lat: sumLat / n, Lng: sumLng / n}, true
}
