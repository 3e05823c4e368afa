// Copyright 2025 The Saaristo Authors
// SPDX-License-Identifier: Apache-2.0

package mapview

import (
	"embed"
	"html/template"
	"io"
)

//go:embed templates/map.html.tmpl
var templatesFS embed.FS

var mapTemplate = template.Must(template.ParseFS(templatesFS, "templates/map.html.tmpl"))

// LeafletVersion is the Leaflet release referenced by rendered pages.
const LeafletVersion = "1.9.4"

// HTMLSerializer renders a standalone Leaflet page. Tiles and the Leaflet
// library are loaded from their public CDNs when the page is opened.
type HTMLSerializer struct{}

type htmlPage struct {
	*Artifact
	LeafletVersion string
}

func (HTMLSerializer) Write(w io.Writer, a *Artifact) error {
	return mapTemplate.Execute(w, htmlPage{Artifact: a, LeafletVersion: LeafletVersion})
}
