// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package config assembles tmxworld settings from flags, a YAML file and the
// environment.
//
// Later sources win: flag defaults, then the config file, then flags set on
// the command line, then TMXWORLD_* environment variables.
package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"

	"github.com/holomush/tmxworld/internal/logging"
	"github.com/holomush/tmxworld/internal/scan"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "TMXWORLD_"

// Flag names, which double as config file keys.
const (
	FlagConfig         = "config"
	FlagLogFormat      = "log-format"
	FlagLogLevel       = "log-level"
	FlagInclude        = "include"
	FlagRecursive      = "recursive"
	FlagValidateSchema = "validate-schema"
	FlagAddr           = "addr"
)

// DefaultAddr is the listen address of the serve command.
const DefaultAddr = "127.0.0.1:8080"

// Config holds the resolved settings.
type Config struct {
	LogFormat      string   `koanf:"log-format" env:"LOG_FORMAT"`
	LogLevel       string   `koanf:"log-level" env:"LOG_LEVEL"`
	Include        []string `koanf:"include" env:"INCLUDE" envSeparator:","`
	Recursive      bool     `koanf:"recursive" env:"RECURSIVE"`
	ValidateSchema bool     `koanf:"validate-schema" env:"VALIDATE_SCHEMA"`
	Addr           string   `koanf:"addr" env:"ADDR"`
}

// RegisterFlags adds the config flags and their defaults to flags.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.String(FlagConfig, "", "config file path (default $XDG_CONFIG_HOME/tmxworld/config.yaml)")
	flags.String(FlagLogFormat, "text", "log format (json or text)")
	flags.String(FlagLogLevel, "info", "log level (debug, info, warn, error)")
	flags.StringSlice(FlagInclude, []string{scan.DefaultInclude}, "globs selecting map files when scanning")
	flags.Bool(FlagRecursive, false, "scan subdirectories")
	flags.Bool(FlagValidateSchema, false, "validate manifests against the JSON Schema before decoding")
	flags.String(FlagAddr, DefaultAddr, "listen address for serve")
}

// Load resolves the configuration. path is the config file; when explicit is
// false a missing file is ignored.
func Load(flags *pflag.FlagSet, path string, explicit bool) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := loadFile(k, path, explicit); err != nil {
			return nil, err
		}
	}

	if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
		return nil, oops.Wrapf(err, "loading flags")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, oops.Wrapf(err, "decoding config")
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, oops.Wrapf(err, "parsing environment")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadFile(k *koanf.Koanf, path string, explicit bool) error {
	if _, err := os.Stat(path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return oops.With("path", path).Wrapf(err, "config file")
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return oops.With("path", path).Wrapf(err, "loading config file")
	}
	return nil
}

// Validate checks the settings for values no command can use.
func (c *Config) Validate() error {
	if !logging.ValidFormat(c.LogFormat) {
		return oops.With("log_format", c.LogFormat).Errorf("log-format must be json or text, got %q", c.LogFormat)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return oops.Wrapf(err, "log-level")
	}
	if _, err := scan.New(c.ScanOptions()); err != nil {
		return oops.Wrapf(err, "include")
	}
	return nil
}

// ScanOptions returns the scanner settings.
func (c *Config) ScanOptions() scan.Options {
	return scan.Options{Include: c.Include, Recursive: c.Recursive}
}
