// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package manifest reads and writes world manifest files.
//
// A manifest is the JSON (or YAML) form of a world: explicit map entries and
// filename patterns, using camelCase field names. Decoding turns it into a
// world.World with compiled patterns.
package manifest

import (
	"github.com/samber/oops"

	"github.com/holomush/tmxworld/internal/world"
)

// Document is the on-disk representation of a world manifest.
type Document struct {
	Type                 string         `json:"type,omitempty" yaml:"type,omitempty" jsonschema:"enum=world"`
	Maps                 []MapEntry     `json:"maps,omitempty" yaml:"maps,omitempty"`
	Patterns             []PatternEntry `json:"patterns,omitempty" yaml:"patterns,omitempty"`
	OnlyShowAdjacentMaps bool           `json:"onlyShowAdjacentMaps,omitempty" yaml:"onlyShowAdjacentMaps,omitempty"`
}

// MapEntry places one map explicitly.
type MapEntry struct {
	FileName string `json:"fileName" yaml:"fileName" jsonschema:"minLength=1"`
	X        int32  `json:"x" yaml:"x"`
	Y        int32  `json:"y" yaml:"y"`
	Width    *int32 `json:"width,omitempty" yaml:"width,omitempty"`
	Height   *int32 `json:"height,omitempty" yaml:"height,omitempty"`
}

// PatternEntry derives map placements from filenames. The first two capture
// groups of Regexp are the x and y indices.
type PatternEntry struct {
	Regexp      string `json:"regexp" yaml:"regexp" jsonschema:"minLength=1"`
	MultiplierX int32  `json:"multiplierX" yaml:"multiplierX"`
	MultiplierY int32  `json:"multiplierY" yaml:"multiplierY"`
	OffsetX     int32  `json:"offsetX" yaml:"offsetX"`
	OffsetY     int32  `json:"offsetY" yaml:"offsetY"`
}

// Validate checks the constraints the decoder cannot express: the document
// type and non-empty file names and regexps.
func (d *Document) Validate() error {
	if d.Type != "" && d.Type != "world" {
		return oops.With("type", d.Type).Errorf("type must be %q, got %q", "world", d.Type)
	}
	for i, m := range d.Maps {
		if m.FileName == "" {
			return oops.With("map_index", i).Errorf("maps[%d]: fileName is required", i)
		}
	}
	for i, p := range d.Patterns {
		if p.Regexp == "" {
			return oops.With("pattern_index", i).Errorf("patterns[%d]: regexp is required", i)
		}
	}
	return nil
}

// World converts the document into a world loaded from source. It fails when
// a pattern's regexp does not compile.
func (d *Document) World(source string) (*world.World, error) {
	w := &world.World{Source: source}

	if len(d.Maps) > 0 {
		w.Maps = make([]world.Map, len(d.Maps))
		for i, e := range d.Maps {
			w.Maps[i] = world.Map{
				Filename: e.FileName,
				X:        e.X,
				Y:        e.Y,
				Width:    e.Width,
				Height:   e.Height,
			}
		}
	}

	if len(d.Patterns) > 0 {
		w.Patterns = make([]world.Pattern, len(d.Patterns))
		for i, e := range d.Patterns {
			p, err := world.NewPattern(e.Regexp, e.MultiplierX, e.MultiplierY, e.OffsetX, e.OffsetY)
			if err != nil {
				return nil, oops.
					With("pattern_index", i).
					With("regexp", e.Regexp).
					Wrapf(err, "patterns[%d]: invalid regexp", i)
			}
			w.Patterns[i] = p
		}
	}

	return w, nil
}

// FromWorld builds the document form of w.
func FromWorld(w *world.World) Document {
	doc := Document{Type: "world"}

	for _, m := range w.Maps {
		doc.Maps = append(doc.Maps, MapEntry{
			FileName: m.Filename,
			X:        m.X,
			Y:        m.Y,
			Width:    m.Width,
			Height:   m.Height,
		})
	}

	for _, p := range w.Patterns {
		entry := PatternEntry{
			MultiplierX: p.MultiplierX,
			MultiplierY: p.MultiplierY,
			OffsetX:     p.OffsetX,
			OffsetY:     p.OffsetY,
		}
		if p.Regexp != nil {
			entry.Regexp = p.Regexp.String()
		}
		doc.Patterns = append(doc.Patterns, entry)
	}

	return doc
}
