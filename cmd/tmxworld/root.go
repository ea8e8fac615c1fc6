// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/holomush/tmxworld/internal/config"
	"github.com/holomush/tmxworld/internal/logging"
	"github.com/holomush/tmxworld/internal/manifest"
	"github.com/holomush/tmxworld/internal/resource"
	"github.com/holomush/tmxworld/internal/world"
	"github.com/holomush/tmxworld/internal/xdg"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	reader resource.Reader
}

// NewRootCmd creates the root command for the tmxworld CLI.
func NewRootCmd() *cobra.Command {
	a := &app{reader: resource.NewOSReader()}

	cmd := &cobra.Command{
		Use:   "tmxworld",
		Short: "Place Tiled maps on a world grid",
		Long: `tmxworld reads Tiled .world manifests and works out where each map
sits on the shared grid, from explicit entries or filename patterns.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	config.RegisterFlags(cmd.PersistentFlags())

	cmd.AddCommand(newResolveCmd(a))
	cmd.AddCommand(newScanCmd(a))
	cmd.AddCommand(newValidateCmd(a))
	cmd.AddCommand(newSchemaCmd())
	cmd.AddCommand(newServeCmd(a))

	return cmd
}

// setup loads configuration and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	path, err := cmd.Flags().GetString(config.FlagConfig)
	if err != nil {
		return err //nolint:wrapcheck // flag is registered on the root command
	}
	explicit := path != ""
	if !explicit {
		path = xdg.DefaultConfigFile()
	}

	cfg, err := config.Load(cmd.Flags(), path, explicit)
	if err != nil {
		return err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logging.Setup(logging.Options{
		Service: "tmxworld",
		Version: version,
		Format:  cfg.LogFormat,
		Level:   level,
		Writer:  cmd.ErrOrStderr(),
	})
	slog.SetDefault(a.logger)
	return nil
}

// loadWorld loads the manifest at path with the configured options.
func (a *app) loadWorld(ctx context.Context, path string) (*world.World, error) {
	opts := []manifest.Option{manifest.WithLogger(a.logger)}
	if a.cfg.ValidateSchema {
		opts = append(opts, manifest.WithSchemaValidation())
	}
	return manifest.Load(ctx, a.reader, path, opts...)
}
