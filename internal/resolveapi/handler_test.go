// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package resolveapi_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holomush/tmxworld/internal/resolveapi"
	"github.com/holomush/tmxworld/internal/world"
)

func testWorld(t *testing.T) *world.World {
	t.Helper()
	grid, err := world.NewPattern(`map_(-?\d+)_(-?\d+)\.tmx`, 320, 240, 0, 0)
	require.NoError(t, err)
	huge, err := world.NewPattern(`huge_(\d+)_(\d+)\.tmx`, 2147483647, 1, 0, 0)
	require.NoError(t, err)
	return &world.World{Source: "test.world", Patterns: []world.Pattern{grid, huge}}
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandler_ResolvesInOrder(t *testing.T) {
	h := resolveapi.NewHandler(testWorld(t), nil)

	rec := get(t, h, "/v1/resolve?path=map_1_2.tmx&path=town.tmx&path=map_-1_0.tmx")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp resolveapi.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Results, 3)

	assert.Equal(t, "map_1_2.tmx", resp.Results[0].Path)
	require.NotNil(t, resp.Results[0].Map)
	assert.Equal(t, resolveapi.MapJSON{FileName: "map_1_2.tmx", X: 320, Y: 480}, *resp.Results[0].Map)
	assert.Nil(t, resp.Results[0].Error)

	assert.Equal(t, "town.tmx", resp.Results[1].Path)
	assert.Nil(t, resp.Results[1].Map)
	require.NotNil(t, resp.Results[1].Error)
	assert.Equal(t, world.CodeNoMatchFound, resp.Results[1].Error.Code)
	assert.Contains(t, resp.Results[1].Error.Message, "town.tmx")

	require.NotNil(t, resp.Results[2].Map)
	assert.Equal(t, int32(-320), resp.Results[2].Map.X)
}

func TestHandler_ReportsOverflow(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	h := resolveapi.NewHandler(testWorld(t), logger)

	rec := get(t, h, "/v1/resolve?path=huge_2_0.tmx")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp resolveapi.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 1)
	require.NotNil(t, resp.Results[0].Error)
	assert.Equal(t, world.CodeArithmeticOverflow, resp.Results[0].Error.Code)
	assert.Contains(t, logs.String(), "path resolution failed")
}

func TestHandler_Errors(t *testing.T) {
	h := resolveapi.NewHandler(testWorld(t), nil)

	t.Run("missing path", func(t *testing.T) {
		rec := get(t, h, "/v1/resolve")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error": "missing path parameter"}`, rec.Body.String())
	})

	t.Run("wrong method", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/resolve?path=map_1_1.tmx", nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
		assert.Equal(t, http.MethodGet, rec.Header().Get("Allow"))
	})
}

func TestHandler_RequestID(t *testing.T) {
	h := resolveapi.NewHandler(testWorld(t), nil)

	first := get(t, h, "/v1/resolve?path=map_0_0.tmx").Header().Get(resolveapi.RequestIDHeader)
	second := get(t, h, "/v1/resolve?path=map_0_0.tmx").Header().Get(resolveapi.RequestIDHeader)

	a, err := ulid.Parse(first)
	require.NoError(t, err)
	b, err := ulid.Parse(second)
	require.NoError(t, err)
	assert.Equal(t, -1, a.Compare(b), "request ids are monotonic")
}

func TestNewResponse_Empty(t *testing.T) {
	data, err := json.Marshal(resolveapi.NewResponse(nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"results": []}`, string(data))
}
