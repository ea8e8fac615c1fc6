// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package manifest

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/holomush/tmxworld/internal/observability"
	"github.com/holomush/tmxworld/internal/resource"
	"github.com/holomush/tmxworld/internal/world"
)

var tracer = otel.Tracer("tmxworld/manifest")

type loadOptions struct {
	validate bool
	format   Format
	logger   *slog.Logger
}

// Option configures Load.
type Option func(*loadOptions)

// WithSchemaValidation validates the manifest against the JSON Schema
// before decoding it.
func WithSchemaValidation() Option {
	return func(o *loadOptions) { o.validate = true }
}

// WithFormat overrides the encoding inferred from the path.
func WithFormat(f Format) Option {
	return func(o *loadOptions) { o.format = f }
}

// WithLogger sets the logger used for load diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(o *loadOptions) { o.logger = l }
}

// Load reads the manifest at path through r and decodes it. The returned
// World's Source is path.
//
// Read failures have code WORLD_RESOURCE_LOADING, schema violations
// WORLD_SCHEMA_INVALID and decode failures WORLD_JSON_DECODING.
func Load(ctx context.Context, r resource.Reader, path string, opts ...Option) (w *world.World, err error) {
	o := loadOptions{format: FormatFor(path), logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	ctx, span := tracer.Start(ctx, "manifest.load",
		trace.WithAttributes(
			attribute.String("world.source", path),
			attribute.String("world.format", string(o.format)),
		),
	)
	defer func() {
		observability.RecordManifestLoad(err)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	data, err := resource.ReadAll(ctx, r, path)
	if err != nil {
		return nil, world.ErrResourceLoading(path, err)
	}

	if o.validate {
		if err := ValidateSchema(data, o.format); err != nil {
			return nil, world.ErrSchemaInvalid(path, err)
		}
	}

	w, err = Decode(path, data, o.format)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("world.maps", len(w.Maps)),
		attribute.Int("world.patterns", len(w.Patterns)),
	)
	o.logger.DebugContext(ctx, "world loaded",
		"source", path,
		"maps", len(w.Maps),
		"patterns", len(w.Patterns),
	)
	return w, nil
}
