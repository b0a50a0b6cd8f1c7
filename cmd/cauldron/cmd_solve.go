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
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/AleutianAI/cauldron/pkg/ux"
	"github.com/AleutianAI/cauldron/services/cauldron/results"
	"github.com/AleutianAI/cauldron/services/cauldron/solver"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

type solveOptions struct {
	out             string
	persist         bool
	metricsTextfile string
	traceExporter   string
}

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

func newSolveCmd(app *cliApp) *cobra.Command {
	opts := &solveOptions{}
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Find the shortest path from water to every reachable value",
		Long: `Run the breadth-first search over all 32768 liquid values and write
one "SSSSS, PATH" line per reachable value, in ascending order.

Examples:
  cauldron solve
  cauldron solve --out /tmp/results.txt --persist
  cauldron solve --metrics-textfile /var/lib/node_exporter/cauldron.prom`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(cmd, app, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.out, "out", "o", "",
		"Results file (default from config, results.txt)")
	cmd.Flags().BoolVar(&opts.persist, "persist", false,
		"Also save the table to the store")
	cmd.Flags().StringVar(&opts.metricsTextfile, "metrics-textfile", "",
		"Write solver metrics in Prometheus text format to this file")
	cmd.Flags().StringVar(&opts.traceExporter, "trace-exporter", "",
		"Trace exporter: none, stdout, otlp (overrides config)")
	return cmd
}

// =============================================================================
// COMMAND IMPLEMENTATION
// =============================================================================

func runSolve(cmd *cobra.Command, app *cliApp, opts *solveOptions) error {
	ctx := cmd.Context()
	logger := app.log()

	out := opts.out
	if out == "" {
		out = app.cfg.Output.ResultsPath
	}
	textfile := opts.metricsTextfile
	if textfile == "" {
		textfile = app.cfg.Output.MetricsTextfile
	}

	reg := prometheus.NewRegistry()
	shutdown, err := app.startTelemetry(ctx, opts.traceExporter, reg)
	if err != nil {
		return err
	}
	defer app.shutdownTelemetry(shutdown)

	start := time.Now()
	table, err := solver.New(
		solver.WithLogger(logger),
		solver.WithMetrics(solver.NewMetrics(reg)),
	).Run(ctx)
	if err != nil {
		return err
	}

	if err := results.WriteFile(out, table); err != nil {
		return err
	}
	logger.Info("results written", slog.String("path", out))

	var runID string
	if opts.persist || app.cfg.Store.Enabled {
		st, db, err := app.openStore()
		if err != nil {
			return err
		}
		meta, saveErr := st.SaveTable(ctx, table)
		if closeErr := db.Close(); saveErr == nil && closeErr != nil {
			saveErr = fmt.Errorf("close store: %w", closeErr)
		}
		if saveErr != nil {
			return saveErr
		}
		runID = meta.ID
	}

	if textfile != "" {
		if err := prometheus.WriteToTextfile(textfile, reg); err != nil {
			return fmt.Errorf("write metrics textfile: %w", err)
		}
	}

	summary := results.Summarize(table)
	if ux.IsMachine() {
		ux.Info(summary.String())
		if runID != "" {
			ux.KeyValues([][2]string{{"run", runID}})
		}
		return nil
	}

	stats := table.Stats()
	lines := fmt.Sprintf("%s\nrounds      %d\nunreached   %d\nelapsed     %s\nwritten to  %s",
		summary, stats.Rounds, stats.Unreached, time.Since(start).Round(time.Millisecond), out)
	if runID != "" {
		lines += "\nstored as   " + runID
	}
	ux.Box(string(ux.IconFlask)+" Search complete", lines)
	return nil
}
