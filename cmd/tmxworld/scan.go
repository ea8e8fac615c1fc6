// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/holomush/tmxworld/internal/manifest"
	"github.com/holomush/tmxworld/internal/resolveapi"
	"github.com/holomush/tmxworld/internal/scan"
	"github.com/holomush/tmxworld/internal/world"
)

// Scan output formats.
const (
	outputText  = "text"
	outputJSON  = "json"
	outputWorld = "world"
)

type scanConfig struct {
	output string
}

// scanResult is the JSON form of a scan.
type scanResult struct {
	Explicit []resolveapi.MapJSON `json:"explicit"`
	Derived  []resolveapi.MapJSON `json:"derived"`
	Skipped  []string             `json:"skipped"`
}

func newScanCmd(a *app) *cobra.Command {
	cfg := &scanConfig{}

	cmd := &cobra.Command{
		Use:   "scan WORLD [DIR]",
		Short: "Lay out the maps in a directory",
		Long: `List the WORLD's explicit maps followed by every map file in DIR that a
pattern places. DIR defaults to the directory holding WORLD. Files are
selected with the include globs.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := filepath.Dir(args[0])
			if len(args) == 2 {
				dir = args[1]
			}
			return runScan(cmd, a, cfg, args[0], dir)
		},
	}

	cmd.Flags().StringVarP(&cfg.output, "output", "o", outputText, "output format (text, json or world)")

	return cmd
}

func runScan(cmd *cobra.Command, a *app, cfg *scanConfig, worldPath, dir string) error {
	switch cfg.output {
	case outputText, outputJSON, outputWorld:
	default:
		return oops.With("output", cfg.output).Errorf("unknown output format %q", cfg.output)
	}

	w, err := a.loadWorld(cmd.Context(), worldPath)
	if err != nil {
		return err
	}

	s, err := scan.New(a.cfg.ScanOptions())
	if err != nil {
		return err
	}

	layout, err := s.Layout(cmd.Context(), w, os.DirFS(dir), ".")
	if err != nil {
		return err
	}
	for _, name := range layout.Skipped {
		a.logger.Debug("no pattern matches map file", "file", name)
	}

	out := cmd.OutOrStdout()
	switch cfg.output {
	case outputJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(newScanResult(layout)); err != nil {
			return oops.Wrapf(err, "failed to encode layout")
		}
	case outputWorld:
		data, err := manifest.Marshal(manifest.FromWorld(&world.World{Maps: layout.All()}), manifest.FormatJSON)
		if err != nil {
			return err
		}
		if _, err := out.Write(data); err != nil {
			return oops.Wrapf(err, "failed to write manifest")
		}
	default:
		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "FILE\tX\tY\tPLACED BY")
		for _, m := range layout.Explicit {
			fmt.Fprintf(tw, "%s\t%d\t%d\t%s\n", m.Filename, m.X, m.Y, "manifest")
		}
		for _, m := range layout.Derived {
			fmt.Fprintf(tw, "%s\t%d\t%d\t%s\n", m.Filename, m.X, m.Y, "pattern")
		}
		if err := tw.Flush(); err != nil {
			return oops.Wrapf(err, "failed to write layout")
		}
		if n := len(layout.Skipped); n > 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "%d file(s) matched no pattern\n", n)
		}
	}
	return nil
}

func newScanResult(l scan.Layout) scanResult {
	res := scanResult{
		Explicit: make([]resolveapi.MapJSON, 0, len(l.Explicit)),
		Derived:  make([]resolveapi.MapJSON, 0, len(l.Derived)),
		Skipped:  l.Skipped,
	}
	if res.Skipped == nil {
		res.Skipped = []string{}
	}
	for _, m := range l.Explicit {
		res.Explicit = append(res.Explicit, resolveapi.NewMapJSON(m))
	}
	for _, m := range l.Derived {
		res.Derived = append(res.Derived, resolveapi.NewMapJSON(m))
	}
	return res
}
