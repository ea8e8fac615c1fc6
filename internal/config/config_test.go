// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holomush/tmxworld/internal/config"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	config.RegisterFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(newFlags(t), "", false)
	require.NoError(t, err)

	assert.Equal(t, &config.Config{
		LogFormat: "text",
		LogLevel:  "info",
		Include:   []string{"*.tmx"},
		Addr:      config.DefaultAddr,
	}, cfg)
}

func TestLoad_Precedence(t *testing.T) {
	path := writeConfig(t, `
log-level: debug
log-format: json
include: ["*.tmx", "*.json"]
recursive: true
addr: 0.0.0.0:9000
`)

	t.Run("file over defaults", func(t *testing.T) {
		cfg, err := config.Load(newFlags(t), path, true)
		require.NoError(t, err)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "json", cfg.LogFormat)
		assert.Equal(t, []string{"*.tmx", "*.json"}, cfg.Include)
		assert.True(t, cfg.Recursive)
		assert.Equal(t, "0.0.0.0:9000", cfg.Addr)
		assert.False(t, cfg.ValidateSchema)
	})

	t.Run("flags over file", func(t *testing.T) {
		cfg, err := config.Load(newFlags(t, "--log-level=warn", "--recursive=false"), path, true)
		require.NoError(t, err)
		assert.Equal(t, "warn", cfg.LogLevel)
		assert.False(t, cfg.Recursive)
		assert.Equal(t, "json", cfg.LogFormat)
	})

	t.Run("env over flags", func(t *testing.T) {
		t.Setenv("TMXWORLD_LOG_LEVEL", "error")
		t.Setenv("TMXWORLD_INCLUDE", "a_*.tmx,b_*.tmx")
		t.Setenv("TMXWORLD_VALIDATE_SCHEMA", "true")

		cfg, err := config.Load(newFlags(t, "--log-level=warn"), path, true)
		require.NoError(t, err)
		assert.Equal(t, "error", cfg.LogLevel)
		assert.Equal(t, []string{"a_*.tmx", "b_*.tmx"}, cfg.Include)
		assert.True(t, cfg.ValidateSchema)
	})
}

func TestLoad_MissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.yaml")

	_, err := config.Load(newFlags(t), missing, false)
	assert.NoError(t, err, "implicit config file is optional")

	_, err = config.Load(newFlags(t), missing, true)
	assert.Error(t, err, "explicit config file must exist")
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		args []string
	}{
		{name: "bad yaml", body: "log-level: [\n"},
		{name: "bad log format", body: "log-format: xml\n"},
		{name: "bad log level", args: []string{"--log-level=loud"}},
		{name: "bad glob", args: []string{"--include=[a-"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := ""
			if tt.body != "" {
				path = writeConfig(t, tt.body)
			}
			_, err := config.Load(newFlags(t, tt.args...), path, true)
			assert.Error(t, err)
		})
	}
}

func TestLoad_BadEnv(t *testing.T) {
	t.Setenv("TMXWORLD_RECURSIVE", "sometimes")

	_, err := config.Load(newFlags(t), "", false)
	assert.Error(t, err)
}
