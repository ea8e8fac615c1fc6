// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/samber/oops"
	"gopkg.in/yaml.v3"

	"github.com/holomush/tmxworld/internal/world"
)

// Format is a manifest encoding.
type Format string

// Supported manifest encodings.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Field names of each manifest object. Keys are matched exactly.
var (
	documentKeys = []string{"type", "maps", "patterns", "onlyShowAdjacentMaps"}
	mapKeys      = []string{"fileName", "x", "y", "width", "height"}
	patternKeys  = []string{"regexp", "multiplierX", "multiplierY", "offsetX", "offsetY"}
)

// FormatFor picks the encoding from a file name. Tiled's ".world" files and
// anything unrecognised are JSON.
func FormatFor(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Decode parses a manifest body into a World whose Source is source.
//
// The body must be an object carrying every required field of each map and
// pattern, spelled exactly. Every failure has code WORLD_JSON_DECODING.
func Decode(source string, data []byte, format Format) (*world.World, error) {
	doc, err := decodeDocument(data, format)
	if err != nil {
		return nil, world.ErrJSONDecoding(source, err)
	}

	w, err := doc.World(source)
	if err != nil {
		return nil, world.ErrJSONDecoding(source, err)
	}
	return w, nil
}

func decodeDocument(data []byte, format Format) (*Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, oops.Errorf("manifest data is empty")
	}

	instance, err := parseInstance(data, format)
	if err != nil {
		return nil, err
	}
	if instance == nil {
		return nil, oops.Errorf("manifest must be an object, got null")
	}
	if err := checkKeys(instance); err != nil {
		return nil, err
	}
	if err := validateInstance(instance); err != nil {
		return nil, err
	}

	var doc Document
	if format == FormatYAML {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, oops.Wrapf(err, "invalid YAML")
		}
	} else if err := json.Unmarshal(data, &doc); err != nil {
		return nil, oops.Wrapf(err, "invalid JSON")
	}

	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// checkKeys rejects keys that differ from a manifest field name only by
// case. The JSON decoder would otherwise accept them.
func checkKeys(instance any) error {
	root, ok := instance.(map[string]any)
	if !ok {
		return nil
	}
	if err := exactKeys(root, documentKeys, "manifest"); err != nil {
		return err
	}

	for _, section := range []struct {
		field string
		known []string
	}{{"maps", mapKeys}, {"patterns", patternKeys}} {
		field, known := section.field, section.known
		items, _ := root[field].([]any)
		for i, item := range items {
			obj, ok := item.(map[string]any)
			if !ok {
				continue
			}
			if err := exactKeys(obj, known, fmt.Sprintf("%s[%d]", field, i)); err != nil {
				return err
			}
		}
	}
	return nil
}

func exactKeys(obj map[string]any, known []string, where string) error {
	for key := range obj {
		for _, name := range known {
			if key != name && strings.EqualFold(key, name) {
				return oops.
					With("key", key).
					With("want", name).
					Errorf("%s: key %q must be spelled %q", where, key, name)
			}
		}
	}
	return nil
}

// Marshal encodes doc. JSON output uses Tiled's four-space indentation.
func Marshal(doc Document, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		data, err := yaml.Marshal(doc)
		if err != nil {
			return nil, oops.Wrapf(err, "encoding YAML manifest")
		}
		return data, nil
	case FormatJSON, "":
		data, err := json.MarshalIndent(doc, "", "    ")
		if err != nil {
			return nil, oops.Wrapf(err, "encoding JSON manifest")
		}
		return append(data, '\n'), nil
	default:
		return nil, oops.With("format", string(format)).Errorf("unsupported manifest format %q", format)
	}
}
