// Copyright 2025 The Saaristo Authors
// SPDX-License-Identifier: Apache-2.0

package mapview

import (
	"bytes"
	"encoding/json"
	"strconv"
	"testing"

	"github.com/jcodagnone/saaristo/catalog"
	"github.com/jcodagnone/saaristo/spatial"
	"github.com/jcodagnone/saaristo/utils/htmlutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func renderHTML(t *testing.T, a *Artifact) *html.Node {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, HTMLSerializer{}.Write(&buf, a))

	n, err := htmlutils.AsNode(&buf)
	require.NoError(t, err)

	return n
}

func sampleArtifact(t *testing.T) *Artifact {
	t.Helper()

	c := newCatalog(t,
		catalog.Place{Name: "Kaunissaari", City: "Sipoo", Notes: "Ferry from Kalkkiranta"},
		catalog.Place{Name: "Pirttisaari", City: "Porvoo", Notes: "</script><b>x</b>"},
	)
	resolve(t, c, map[string]spatial.Point{
		"Kaunissaari": {Lat: 60.0, Lng: 25.0},
		"Pirttisaari": {Lat: 60.2, Lng: 25.4},
	})

	a, ok := NewBuilder().Build(c)
	require.True(t, ok)

	return a
}

func TestHTMLSerializerMapSettings(t *testing.T) {
	a := sampleArtifact(t)
	doc := renderHTML(t, a)

	title := htmlutils.FindElement(doc, "title", "")
	require.NotNil(t, title)

	text, err := htmlutils.Text(title)
	require.NoError(t, err)
	assert.Equal(t, DefaultTitle, text)

	div := htmlutils.FindElement(doc, "div", "map")
	require.NotNil(t, div)

	lat, _ := htmlutils.Attr(div, "data-lat")
	lng, _ := htmlutils.Attr(div, "data-lng")
	zoom, _ := htmlutils.Attr(div, "data-zoom")

	assert.Equal(t, "60.100000", lat)
	assert.Equal(t, "25.200000", lng)
	assert.Equal(t, strconv.Itoa(a.Zoom), zoom)

	var leaflet bool

	for _, s := range htmlutils.FindAll(doc, "script") {
		if src, ok := htmlutils.Attr(s, "src"); ok && src == "https://unpkg.com/leaflet@"+LeafletVersion+"/dist/leaflet.js" {
			leaflet = true
		}
	}

	assert.True(t, leaflet, "leaflet script not referenced")
}

func TestHTMLSerializerMarkers(t *testing.T) {
	a := sampleArtifact(t)
	doc := renderHTML(t, a)

	script := htmlutils.FindElement(doc, "script", "markers")
	require.NotNil(t, script)

	var got []Marker
	require.NoError(t, json.Unmarshal([]byte(htmlutils.RawText(script)), &got))

	assert.Equal(t, a.Markers, got)
	assert.Equal(t, "Kaunissaari", got[0].Label)
	assert.Contains(t, got[0].Popup, "60.000000, 25.000000")

	// notes cannot close the data block early
	assert.Len(t, htmlutils.FindAll(doc, "b"), 0)
}
