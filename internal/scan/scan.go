// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package scan lays out the maps of a directory on a world's grid.
package scan

import (
	"context"
	"io/fs"
	"slices"

	"github.com/gobwas/glob"
	"github.com/samber/oops"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/holomush/tmxworld/internal/observability"
	"github.com/holomush/tmxworld/internal/world"
)

// DefaultInclude matches Tiled map files.
const DefaultInclude = "*.tmx"

var tracer = otel.Tracer("tmxworld/scan")

// Options configures a Scanner.
type Options struct {
	// Include lists globs matched against file base names. Empty means
	// DefaultInclude.
	Include []string
	// Recursive descends into subdirectories.
	Recursive bool
}

// Scanner finds map files and resolves them against a world.
type Scanner struct {
	include   []glob.Glob
	recursive bool
}

// Layout is the result of scanning a directory.
type Layout struct {
	// Explicit are the world's explicitly placed maps, in manifest order.
	Explicit []world.Map
	// Derived are candidates placed by a pattern, in path order.
	Derived []world.Map
	// Skipped are candidates no pattern matched.
	Skipped []string
}

// All returns the explicit maps followed by the derived ones.
func (l Layout) All() []world.Map {
	return slices.Concat(l.Explicit, l.Derived)
}

// New compiles the include globs. '*' does not cross '/'.
func New(opts Options) (*Scanner, error) {
	patterns := opts.Include
	if len(patterns) == 0 {
		patterns = []string{DefaultInclude}
	}

	s := &Scanner{recursive: opts.Recursive}
	for i, p := range patterns {
		if p == "" {
			return nil, oops.With("include_index", i).Errorf("include %d: empty glob", i)
		}
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, oops.With("include_index", i).With("glob", p).Wrapf(err, "include %d (%q)", i, p)
		}
		s.include = append(s.include, g)
	}
	return s, nil
}

// Candidates returns the files under dir whose base name matches an include
// glob, relative to dir and sorted.
func (s *Scanner) Candidates(ctx context.Context, fsys fs.FS, dir string) ([]string, error) {
	if dir == "" {
		dir = "."
	}

	var out []string
	err := fs.WalkDir(fsys, dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() {
			if p != dir && !s.recursive {
				return fs.SkipDir
			}
			return nil
		}
		if !s.matches(d.Name()) {
			return nil
		}
		rel := p
		if dir != "." {
			rel = p[len(dir)+1:]
		}
		out = append(out, rel)
		return nil
	})
	if err != nil {
		return nil, oops.With("dir", dir).Wrapf(err, "listing %s", dir)
	}

	slices.Sort(out)
	return out, nil
}

func (s *Scanner) matches(name string) bool {
	for _, g := range s.include {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// Layout places every map of w found under dir. Explicit maps come first;
// each candidate that is not already placed explicitly is resolved through
// w's patterns. Candidates no pattern matches are recorded in Skipped; any
// other resolution error aborts the scan.
func (s *Scanner) Layout(ctx context.Context, w *world.World, fsys fs.FS, dir string) (l Layout, err error) {
	ctx, span := tracer.Start(ctx, "scan.layout",
		trace.WithAttributes(
			attribute.String("world.source", w.Source),
			attribute.String("scan.dir", dir),
		),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	candidates, err := s.Candidates(ctx, fsys, dir)
	if err != nil {
		return Layout{}, err
	}

	l.Explicit = slices.Clone(w.Maps)
	for _, c := range candidates {
		if _, ok := w.Lookup(c); ok {
			continue
		}
		m, err := w.MatchPath(c)
		observability.RecordResolution(err)
		switch {
		case err == nil:
			l.Derived = append(l.Derived, m)
		case world.IsNoMatch(err):
			l.Skipped = append(l.Skipped, c)
		default:
			return Layout{}, err
		}
	}

	span.SetAttributes(
		attribute.Int("scan.candidates", len(candidates)),
		attribute.Int("scan.derived", len(l.Derived)),
		attribute.Int("scan.skipped", len(l.Skipped)),
	)
	return l, nil
}
