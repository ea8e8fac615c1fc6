// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"github.com/spf13/cobra"

	"github.com/holomush/tmxworld/internal/manifest"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate WORLD...",
		Short: "Check world manifests against the schema",
		Long: `Validate each WORLD against the world JSON Schema, then decode it and
compile its patterns.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var firstErr error
			for _, path := range args {
				if err := validateWorld(cmd, a, path); err != nil {
					cmd.PrintErrf("%s: %s\n", path, err)
					if firstErr == nil {
						firstErr = err
					}
				}
			}
			return firstErr
		},
	}
}

func validateWorld(cmd *cobra.Command, a *app, path string) error {
	w, err := manifest.Load(cmd.Context(), a.reader, path,
		manifest.WithSchemaValidation(),
		manifest.WithLogger(a.logger),
	)
	if err != nil {
		return err
	}

	cmd.Printf("%s: ok (%d maps, %d patterns)\n", path, len(w.Maps), len(w.Patterns))
	return nil
}
