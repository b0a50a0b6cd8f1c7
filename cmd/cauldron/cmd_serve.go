// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"

	"github.com/AleutianAI/cauldron/pkg/ux"
	"github.com/AleutianAI/cauldron/services/cauldron/api"
	"github.com/AleutianAI/cauldron/services/cauldron/solver"
	"github.com/AleutianAI/cauldron/services/cauldron/telemetry"
)

// shutdownTimeout bounds graceful shutdown of the HTTP server.
const shutdownTimeout = 10 * time.Second

type serveOptions struct {
	address string
}

func newServeCmd(app *cliApp) *cobra.Command {
	opts := &serveOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve path lookups over HTTP",
		Long: `Run the search once and serve the table over HTTP until interrupted.

Routes:
  GET  /health
  GET  /metrics
  GET  /v1/states/:state
  POST /v1/brew
  GET  /v1/summary

Examples:
  cauldron serve
  cauldron serve --address :9000`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.address == "" {
				opts.address = app.cfg.Server.Address
			}
			return runServe(cmd.Context(), app, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.address, "address", "a", "",
		"Listen address (default from config, 127.0.0.1:8087)")
	return cmd
}

func runServe(ctx context.Context, app *cliApp, opts *serveOptions) error {
	logger := app.log()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	shutdown, err := app.startTelemetry(ctx, "", reg)
	if err != nil {
		return err
	}
	defer app.shutdownTelemetry(shutdown)

	table, err := solver.New(
		solver.WithLogger(logger),
		solver.WithMetrics(solver.NewMetrics(reg)),
	).Run(ctx)
	if err != nil {
		return err
	}

	httpMetrics, err := telemetry.NewMetrics(otel.Meter("cauldron.api"))
	if err != nil {
		return err
	}

	gin.SetMode(gin.ReleaseMode)
	router := api.NewRouter(
		api.NewHandlers(table, httpMetrics, logger),
		api.RouterConfig{Gatherer: reg, Metrics: httpMetrics, Logger: logger},
	)

	listener, err := net.Listen("tcp", opts.address)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", opts.address, err)
	}
	return serveUntilDone(ctx, listener, router, logger)
}

// serveUntilDone serves handler on listener until ctx is cancelled, then
// shuts down gracefully.
func serveUntilDone(ctx context.Context, listener net.Listener, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(listener)
	}()

	addr := listener.Addr().String()
	logger.Info("lookup service listening", slog.String("address", addr))
	ux.Success("serving on http://" + addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down lookup service")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
