// Copyright 2025 The Saaristo Authors
// SPDX-License-Identifier: Apache-2.0

package mapview

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
)

// DefaultOutput is the file name of the rendered map.
const DefaultOutput = "islands_map.html"

// Serializer renders an artifact to a concrete format.
type Serializer interface {
	Write(w io.Writer, a *Artifact) error
}

// WriteFile renders the artifact and replaces the file at path. Nothing is
// written if rendering fails.
func WriteFile(path string, s Serializer, a *Artifact) error {
	if a == nil {
		return errors.New("no artifact to write")
	}

	var buf bytes.Buffer
	if err := s.Write(&buf, a); err != nil {
		return fmt.Errorf("rendering %s: %w", path, err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil { //nolint:gosec // the map is meant to be shared
		return fmt.Errorf("writing %s: %w", path, err)
	}

	return nil
}
