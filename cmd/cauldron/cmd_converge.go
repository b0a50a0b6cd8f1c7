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
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/AleutianAI/cauldron/pkg/ux"
	"github.com/AleutianAI/cauldron/services/cauldron/analysis"
)

type convergeOptions struct {
	workers int
}

func newConvergeCmd(app *cliApp) *cobra.Command {
	opts := &convergeOptions{}
	cmd := &cobra.Command{
		Use:   "converge",
		Short: "Run the fungal automaton from every 15-bit seed",
		Long: `Converge the automaton from all 32768 seeds and report how many
generations each needed before reaching a fixed point.

Examples:
  cauldron converge
  cauldron converge --workers 4`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("workers") {
				opts.workers = app.cfg.Analysis.Workers
			}
			return runConverge(cmd, app, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 0,
		"Concurrent workers; 0 means one per CPU (default from config)")
	return cmd
}

func runConverge(cmd *cobra.Command, app *cliApp, opts *convergeOptions) error {
	if opts.workers < 0 {
		return newUsageError("--workers must not be negative, got %d", opts.workers)
	}
	ctx := cmd.Context()

	shutdown, err := app.startTelemetry(ctx, "", prometheus.NewRegistry())
	if err != nil {
		return err
	}
	defer app.shutdownTelemetry(shutdown)

	report, err := analysis.ScanConvergence(ctx, opts.workers)
	if err != nil {
		return err
	}
	app.log().Info("convergence scan complete",
		"seeds", report.Seeds,
		"max_generations", report.MaxGenerations,
	)

	slowest := make([]string, len(report.Slowest))
	for i, seed := range report.Slowest {
		slowest[i] = fmt.Sprintf("%05d", seed)
	}

	ux.Title("Fungal automaton convergence")
	ux.KeyValues([][2]string{
		{"seeds", strconv.Itoa(report.Seeds)},
		{"max_generations", strconv.Itoa(report.MaxGenerations)},
		{"fixed_points", strconv.Itoa(report.FixedPoints)},
		{"slowest", strings.Join(slowest, ",")},
	})

	gens := report.Generations()
	labels := make([]string, len(gens))
	counts := make([]int, len(gens))
	for i, g := range gens {
		labels[i] = strconv.Itoa(g)
		counts[i] = report.Histogram[g]
	}
	ux.Histogram(labels, counts, 40)
	return nil
}
