// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package analysis runs whole-space checks over the liquid automaton.
package analysis

import (
	"context"
	"fmt"
	"runtime"
	"slices"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/AleutianAI/cauldron/services/cauldron/liquid"
)

var tracer = otel.Tracer("cauldron.analysis")

// chunkSize is the number of seeds a worker converges between context
// checks.
const chunkSize = 1024

// ConvergenceReport summarises Converge over every 15-bit seed.
type ConvergenceReport struct {
	// Seeds is the number of patterns evaluated.
	Seeds int `json:"seeds"`

	// MaxGenerations is the largest generation count seen.
	MaxGenerations int `json:"max_generations"`

	// Histogram maps a generation count to the number of seeds needing it.
	Histogram map[int]int `json:"histogram"`

	// FixedPoints is the number of seeds that are already fixed points.
	FixedPoints int `json:"fixed_points"`

	// Slowest lists, ascending, the seeds that needed MaxGenerations.
	Slowest []uint16 `json:"slowest"`
}

// ScanConvergence runs liquid.Converge for every seed in [0, 32768).
//
// # Description
//
// The seed range is split into fixed chunks handed to at most workers
// goroutines. Each chunk builds its own partial report; partials are
// merged under a mutex. The result does not depend on workers.
//
// # Inputs
//
//   - ctx: Checked before each chunk.
//   - workers: Maximum concurrent goroutines. Values below 1 mean
//     runtime.GOMAXPROCS(0).
//
// # Outputs
//
//   - *ConvergenceReport: Complete report. Nil on error.
//   - error: The context's error, wrapped, if cancelled.
func ScanConvergence(ctx context.Context, workers int) (*ConvergenceReport, error) {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	ctx, span := tracer.Start(ctx, "analysis.ScanConvergence",
		trace.WithAttributes(attribute.Int("workers", workers)),
	)
	defer span.End()

	report := &ConvergenceReport{Histogram: make(map[int]int)}
	var mu sync.Mutex

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for lo := 0; lo < liquid.StateCount; lo += chunkSize {
		hi := min(lo+chunkSize, liquid.StateCount)
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			partial := scanRange(lo, hi)

			mu.Lock()
			report.merge(partial)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		span.AddEvent("cancelled")
		return nil, fmt.Errorf("convergence scan: %w", err)
	}

	slices.Sort(report.Slowest)
	report.FixedPoints = report.Histogram[0]
	span.SetAttributes(
		attribute.Int("max_generations", report.MaxGenerations),
		attribute.Int("slowest", len(report.Slowest)),
	)
	return report, nil
}

func scanRange(lo, hi int) *ConvergenceReport {
	r := &ConvergenceReport{Histogram: make(map[int]int)}
	for v := lo; v < hi; v++ {
		seed := uint16(v)
		_, gens := liquid.Converge(seed)
		r.Seeds++
		r.Histogram[gens]++
		switch {
		case gens > r.MaxGenerations:
			r.MaxGenerations = gens
			r.Slowest = []uint16{seed}
		case gens == r.MaxGenerations:
			r.Slowest = append(r.Slowest, seed)
		}
	}
	return r
}

func (r *ConvergenceReport) merge(o *ConvergenceReport) {
	r.Seeds += o.Seeds
	for gens, n := range o.Histogram {
		r.Histogram[gens] += n
	}
	switch {
	case o.MaxGenerations > r.MaxGenerations:
		r.MaxGenerations = o.MaxGenerations
		r.Slowest = append([]uint16(nil), o.Slowest...)
	case o.MaxGenerations == r.MaxGenerations:
		r.Slowest = append(r.Slowest, o.Slowest...)
	}
}

// Generations returns the histogram keys in ascending order.
func (r *ConvergenceReport) Generations() []int {
	keys := make([]int, 0, len(r.Histogram))
	for k := range r.Histogram {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
