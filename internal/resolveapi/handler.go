// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package resolveapi exposes world path resolution over HTTP.
package resolveapi

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/holomush/tmxworld/internal/observability"
	"github.com/holomush/tmxworld/internal/world"
	"github.com/holomush/tmxworld/pkg/errutil"
)

// Path is the route the handler serves.
const Path = "/v1/resolve"

var tracer = otel.Tracer("tmxworld/resolveapi")

// Response is the body of a resolve request.
type Response struct {
	Results []Result `json:"results"`
}

// Result is the resolution of one requested path. Exactly one of Map and
// Error is set.
type Result struct {
	Path  string     `json:"path"`
	Map   *MapJSON   `json:"map,omitempty"`
	Error *ErrorJSON `json:"error,omitempty"`
}

// MapJSON is a placed map in the manifest's field naming.
type MapJSON struct {
	FileName string `json:"fileName"`
	X        int32  `json:"x"`
	Y        int32  `json:"y"`
	Width    *int32 `json:"width,omitempty"`
	Height   *int32 `json:"height,omitempty"`
}

// ErrorJSON describes a failed resolution.
type ErrorJSON struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type handler struct {
	world  *world.World
	logger *slog.Logger
}

// NewHandler returns a handler resolving the query's path parameters
// against w. A nil logger uses slog.Default.
func NewHandler(w *world.World, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &handler{world: w, logger: logger}
}

func (h *handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	id := newRequestID().String()
	rw.Header().Set(RequestIDHeader, id)

	ctx, span := tracer.Start(r.Context(), "resolveapi.resolve",
		trace.WithAttributes(attribute.String("request.id", id)),
	)
	defer span.End()

	if r.Method != http.MethodGet {
		rw.Header().Set("Allow", http.MethodGet)
		writeError(rw, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	paths := r.URL.Query()["path"]
	if len(paths) == 0 {
		writeError(rw, http.StatusBadRequest, "missing path parameter")
		return
	}
	span.SetAttributes(attribute.Int("resolve.paths", len(paths)))

	results := h.world.MatchPaths(paths)
	for _, res := range results {
		observability.RecordResolution(res.Err)
		if res.Err != nil && !world.IsNoMatch(res.Err) {
			h.logger.WarnContext(ctx, "path resolution failed",
				append([]any{"request_id", id}, errutil.Attrs(res.Err)...)...)
		}
	}

	writeJSON(rw, http.StatusOK, NewResponse(results))
}

// NewResponse converts batch results into the response body, keeping their
// order.
func NewResponse(results []world.MatchResult) Response {
	resp := Response{Results: make([]Result, 0, len(results))}
	for _, res := range results {
		resp.Results = append(resp.Results, NewResult(res))
	}
	return resp
}

// NewResult converts one resolution into its JSON form.
func NewResult(res world.MatchResult) Result {
	out := Result{Path: res.Path}
	if res.Err != nil {
		out.Error = &ErrorJSON{Code: errutil.Code(res.Err), Message: res.Err.Error()}
		return out
	}
	m := NewMapJSON(res.Map)
	out.Map = &m
	return out
}

// NewMapJSON converts a placed map into its JSON form.
func NewMapJSON(m world.Map) MapJSON {
	return MapJSON{
		FileName: m.Filename,
		X:        m.X,
		Y:        m.Y,
		Width:    m.Width,
		Height:   m.Height,
	}
}

func writeError(rw http.ResponseWriter, status int, msg string) {
	writeJSON(rw, status, map[string]string{"error": msg})
}

func writeJSON(rw http.ResponseWriter, status int, v any) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)
	//nolint:errcheck // client may disconnect
	json.NewEncoder(rw).Encode(v)
}
