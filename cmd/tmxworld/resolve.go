// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/holomush/tmxworld/internal/observability"
	"github.com/holomush/tmxworld/internal/resolveapi"
	"github.com/holomush/tmxworld/internal/world"
	"github.com/holomush/tmxworld/pkg/errutil"
)

type resolveConfig struct {
	allowUnmatched bool
	jsonOutput     bool
}

func newResolveCmd(a *app) *cobra.Command {
	cfg := &resolveConfig{}

	cmd := &cobra.Command{
		Use:   "resolve WORLD PATH...",
		Short: "Resolve map paths through a world's patterns",
		Long: `Resolve each PATH against the patterns of the WORLD manifest and print
its grid position. Patterns are tried in order and the first match wins.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, a, cfg, args[0], args[1:])
		},
	}

	cmd.Flags().BoolVar(&cfg.allowUnmatched, "allow-unmatched", false, "do not fail when a path matches no pattern")
	cmd.Flags().BoolVar(&cfg.jsonOutput, "json", false, "output results as JSON")

	return cmd
}

func runResolve(cmd *cobra.Command, a *app, cfg *resolveConfig, worldPath string, paths []string) error {
	w, err := a.loadWorld(cmd.Context(), worldPath)
	if err != nil {
		return err
	}

	results := w.MatchPaths(paths)
	failed := 0
	for _, res := range results {
		observability.RecordResolution(res.Err)
		if res.Err == nil || (cfg.allowUnmatched && world.IsNoMatch(res.Err)) {
			continue
		}
		failed++
	}

	if cfg.jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(resolveapi.NewResponse(results)); err != nil {
			return oops.Wrapf(err, "failed to encode results")
		}
	} else {
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		for _, res := range results {
			if res.Err != nil {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", res.Path, errutil.Code(res.Err), res.Err.Error())
				continue
			}
			fmt.Fprintf(tw, "%s\t%d\t%d\n", res.Path, res.Map.X, res.Map.Y)
		}
		if err := tw.Flush(); err != nil {
			return oops.Wrapf(err, "failed to write results")
		}
	}

	if failed > 0 {
		return oops.With("failed", failed).Errorf("%d of %d paths failed to resolve", failed, len(paths))
	}
	return nil
}
