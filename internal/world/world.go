// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package world resolves map files onto the grid described by a world
// manifest.
//
// A World lists maps explicitly, derives their positions from filename
// patterns, or both. Resolution is pure: a World is never modified after it
// is built and may be shared between goroutines.
package world

import "slices"

// World is a decoded world manifest.
type World struct {
	// Source is the path the manifest was loaded from.
	Source string
	// Maps are the explicitly placed maps, in manifest order.
	Maps []Map
	// Patterns are tried in order; the first match wins.
	Patterns []Pattern
}

// MatchResult is the outcome of resolving one path in a batch.
type MatchResult struct {
	Path string
	Map  Map
	Err  error
}

// MatchPath resolves path against the world's patterns in declared order.
//
// The first pattern that matches decides the placement. A pattern that does
// not match is skipped; any other failure stops resolution and is returned
// as is. When no pattern matches the error has code WORLD_NO_MATCH.
// Explicit Maps are not consulted.
func (w *World) MatchPath(path string) (Map, error) {
	for _, p := range w.Patterns {
		o := p.match(path)
		switch o.kind {
		case outcomeMatched, outcomeFailed:
			return o.result(path)
		case outcomeNoMatch:
			continue
		}
	}
	return Map{}, ErrNoMatchFound(path)
}

// MatchPaths resolves each path independently and returns one result per
// input, in input order.
func (w *World) MatchPaths(paths []string) []MatchResult {
	results := make([]MatchResult, len(paths))
	for i, path := range paths {
		m, err := w.MatchPath(path)
		results[i] = MatchResult{Path: path, Map: m, Err: err}
	}
	return results
}

// Lookup returns the explicit map entry with the given filename.
func (w *World) Lookup(filename string) (Map, bool) {
	i := slices.IndexFunc(w.Maps, func(m Map) bool { return m.Filename == filename })
	if i < 0 {
		return Map{}, false
	}
	return w.Maps[i], true
}

// Equal reports whether w and other have the same source, maps and patterns.
func (w *World) Equal(other *World) bool {
	if w == nil || other == nil {
		return w == other
	}
	return w.Source == other.Source &&
		slices.EqualFunc(w.Maps, other.Maps, Map.Equal) &&
		slices.EqualFunc(w.Patterns, other.Patterns, Pattern.Equal)
}
