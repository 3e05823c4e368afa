// Copyright 2025 The Saaristo Authors
// SPDX-License-Identifier: Apache-2.0

package mapview

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jcodagnone/saaristo/catalog"
	"github.com/jcodagnone/saaristo/spatial"
)

// DefaultAddr is where the preview server listens.
const DefaultAddr = "localhost:8080"

// Server previews a resolved catalog: the rendered map, its GeoJSON and the
// status of every place.
type Server struct {
	catalog  *catalog.Catalog
	artifact *Artifact
	page     []byte
	geojson  []byte
}

// PlaceStatus is the /api/places view of a place.
type PlaceStatus struct {
	Name     string         `json:"name"`
	City     string         `json:"city"`
	Notes    string         `json:"notes,omitempty"`
	Resolved bool           `json:"resolved"`
	Point    *spatial.Point `json:"point,omitempty"`
}

// NewServer renders the artifact once. A nil artifact is served as an empty map.
func NewServer(c *catalog.Catalog, a *Artifact) (*Server, error) {
	s := &Server{catalog: c, artifact: a}

	if a == nil {
		return s, nil
	}

	var page, gj bytes.Buffer

	if err := (HTMLSerializer{}).Write(&page, a); err != nil {
		return nil, fmt.Errorf("rendering map: %w", err)
	}

	if err := (GeoJSONSerializer{}).Write(&gj, a); err != nil {
		return nil, fmt.Errorf("rendering geojson: %w", err)
	}

	s.page = page.Bytes()
	s.geojson = gj.Bytes()

	return s, nil
}

// Handler returns the gin engine serving the preview routes.
func (s *Server) Handler() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/", s.mapView)
	r.GET("/api/markers", s.markers)
	r.GET("/api/places", s.places)

	return r
}

// Run listens on addr until the process ends.
func (s *Server) Run(addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}

	return s.Handler().Run(addr)
}

func (s *Server) mapView(ctx *gin.Context) {
	if s.artifact == nil {
		ctx.String(http.StatusNotFound, "no places resolved, map not created\n")

		return
	}

	ctx.Data(http.StatusOK, "text/html; charset=utf-8", s.page)
}

func (s *Server) markers(ctx *gin.Context) {
	if s.artifact == nil {
		ctx.Data(http.StatusOK, "application/geo+json", []byte(`{"type":"FeatureCollection","features":[]}`))

		return
	}

	ctx.Data(http.StatusOK, "application/geo+json", s.geojson)
}

func (s *Server) places(ctx *gin.Context) {
	places := s.catalog.Places()
	out := make([]PlaceStatus, 0, len(places))

	for _, p := range places {
		out = append(out, PlaceStatus{
			Name:     p.Name,
			City:     p.City,
			Notes:    p.Notes,
			Resolved: p.Resolved(),
			Point:    p.Point,
		})
	}

	ctx.JSON(http.StatusOK, out)
}
