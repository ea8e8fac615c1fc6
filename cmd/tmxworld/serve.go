// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"context"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/holomush/tmxworld/internal/observability"
	"github.com/holomush/tmxworld/internal/resolveapi"
	"github.com/holomush/tmxworld/pkg/errutil"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve WORLD",
		Short: "Serve path resolution over HTTP",
		Long: `Load WORLD and serve GET /v1/resolve?path=... together with /metrics and
health probes on the configured address.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cmd, a, args[0])
		},
	}
}

func runServe(ctx context.Context, cmd *cobra.Command, a *app, worldPath string) error {
	var ready atomic.Bool

	w, err := a.loadWorld(ctx, worldPath)
	if err != nil {
		return err
	}

	srv := observability.NewServer(a.cfg.Addr, ready.Load)
	srv.Handle(resolveapi.Path, resolveapi.NewHandler(w, a.logger))

	errCh, err := srv.Start()
	if err != nil {
		return oops.Wrapf(err, "failed to start server")
	}
	ready.Store(true)

	cmd.Printf("serving %s on %s\n", worldPath, srv.Addr())
	a.logger.Info("world server ready",
		"world", worldPath,
		"maps", len(w.Maps),
		"patterns", len(w.Patterns),
		"addr", srv.Addr(),
	)

	var serveErr error
	select {
	case <-ctx.Done():
		a.logger.Info("shutting down")
	case err, ok := <-errCh:
		if ok && err != nil {
			errutil.LogError(a.logger, "server error, shutting down", err)
			serveErr = oops.Wrapf(err, "server error")
		}
	}

	ready.Store(false)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		errutil.LogError(a.logger, "error stopping server", err)
	}
	return serveErr
}
