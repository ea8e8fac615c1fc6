// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package manifest

import (
	"bytes"
	"encoding/json"
	"strings"
	"sync"

	"github.com/invopop/jsonschema"
	jschema "github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

// compiledSchema compiles the manifest schema once per process.
var compiledSchema = sync.OnceValues(compileSchema)

// SchemaID returns the schema $id for world manifests.
func SchemaID() string {
	return "https://holomush.dev/schemas/world.schema.json"
}

// GenerateSchema generates a JSON Schema from the Document struct.
func GenerateSchema() ([]byte, error) {
	r := jsonschema.Reflector{
		DoNotReference:            true,
		AllowAdditionalProperties: true,
	}
	schema := r.Reflect(&Document{})

	schema.ID = jsonschema.ID(SchemaID())
	schema.Title = "Tiled World Manifest"
	schema.Description = "Schema for .world files laying out maps on a shared grid"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, oops.Wrapf(err, "failed to marshal schema")
	}
	return data, nil
}

// ValidateSchema validates a manifest body against the world JSON Schema.
func ValidateSchema(data []byte, format Format) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return oops.Errorf("manifest data is empty")
	}

	instance, err := parseInstance(data, format)
	if err != nil {
		return err
	}
	return validateInstance(instance)
}

// parseInstance decodes a manifest body into generic JSON values.
func parseInstance(data []byte, format Format) (any, error) {
	switch format {
	case FormatYAML:
		var raw any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, oops.Wrapf(err, "invalid YAML")
		}
		return convertToJSONTypes(raw), nil
	case FormatJSON, "":
		v, err := jschema.UnmarshalJSON(bytes.NewReader(data))
		if err != nil {
			return nil, oops.Wrapf(err, "invalid JSON")
		}
		return v, nil
	default:
		return nil, oops.With("format", string(format)).Errorf("unsupported manifest format %q", format)
	}
}

func validateInstance(instance any) error {
	sch, err := compiledSchema()
	if err != nil {
		return oops.Wrapf(err, "failed to compile schema")
	}

	if err := sch.Validate(instance); err != nil {
		return oops.Wrapf(err, "schema validation failed")
	}
	return nil
}

func compileSchema() (*jschema.Schema, error) {
	schemaBytes, err := GenerateSchema()
	if err != nil {
		return nil, err
	}

	schemaData, err := jschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
	if err != nil {
		return nil, oops.Wrapf(err, "failed to parse schema JSON")
	}

	c := jschema.NewCompiler()
	if err := c.AddResource("world.schema.json", schemaData); err != nil {
		return nil, oops.Wrapf(err, "failed to add schema resource")
	}

	sch, err := c.Compile("world.schema.json")
	if err != nil {
		return nil, oops.Wrapf(err, "failed to compile schema")
	}
	return sch, nil
}

// convertToJSONTypes rewrites YAML-decoded values into the shapes a JSON
// decoder would produce.
func convertToJSONTypes(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = convertToJSONTypes(item)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			if s, ok := k.(string); ok {
				out[s] = convertToJSONTypes(item)
			}
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = convertToJSONTypes(item)
		}
		return out
	default:
		return val
	}
}

// FormatSchemaError strips the validation prefix from a schema error for
// display.
func FormatSchemaError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if i := strings.Index(msg, "schema validation failed: "); i >= 0 {
		msg = msg[i+len("schema validation failed: "):]
	}
	return msg
}
