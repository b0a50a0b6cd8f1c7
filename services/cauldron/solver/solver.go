// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package solver

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/AleutianAI/cauldron/services/cauldron/action"
	"github.com/AleutianAI/cauldron/services/cauldron/liquid"
)

var tracer = otel.Tracer("cauldron.solver")

// =============================================================================
// Options
// =============================================================================

// Option configures a Solver.
type Option func(*Solver)

// WithLogger sets the logger. Round progress is logged at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Solver) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics records run and round figures into m.
func WithMetrics(m *Metrics) Option {
	return func(s *Solver) {
		s.metrics = m
	}
}

// WithActions replaces the action set. Order matters: it decides which
// of several equally short paths is kept.
func WithActions(actions []action.Action) Option {
	return func(s *Solver) {
		s.actions = append([]action.Action(nil), actions...)
	}
}

// WithStart sets the state every path begins from. Defaults to water.
func WithStart(start liquid.Data) Option {
	return func(s *Solver) {
		s.start = start
	}
}

// =============================================================================
// Solver
// =============================================================================

// Solver runs the breadth-first search over the liquid state space.
type Solver struct {
	logger  *slog.Logger
	metrics *Metrics
	actions []action.Action
	start   liquid.Data
}

// New creates a Solver with the canonical action set starting from water.
func New(opts ...Option) *Solver {
	s := &Solver{
		logger:  slog.Default(),
		actions: action.All(),
		start:   liquid.Water,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type frontierEntry struct {
	path  action.Path
	state liquid.Data
}

// Run explores every state reachable from the start state.
//
// # Description
//
// The frontier is processed one round at a time. For each entry, in the
// order it was enqueued, every action is applied in configured order and
// the result is recorded only if its state has no entry yet. Newly
// recorded states form the next round's frontier. The search ends when a
// round records nothing.
//
// # Inputs
//
//   - ctx: Checked between rounds. A round, once started, always
//     completes.
//
// # Outputs
//
//   - *Table: The finished table. Nil on error.
//   - error: ErrCancelled wrapping ctx.Err(), ErrNoActions or
//     ErrInvalidStart.
func (s *Solver) Run(ctx context.Context) (*Table, error) {
	ctx, span := tracer.Start(ctx, "Solver.Run",
		trace.WithAttributes(
			attribute.Int("start", int(s.start)),
			attribute.Int("actions", len(s.actions)),
		),
	)
	defer span.End()

	began := time.Now()

	if len(s.actions) == 0 {
		span.SetStatus(codes.Error, ErrNoActions.Error())
		s.metrics.RecordRun(StatusError, Stats{Duration: time.Since(began)})
		return nil, ErrNoActions
	}
	if !s.start.Valid() {
		err := fmt.Errorf("%w: %d", ErrInvalidStart, int(s.start))
		span.SetStatus(codes.Error, err.Error())
		s.metrics.RecordRun(StatusError, Stats{Duration: time.Since(began)})
		return nil, err
	}

	table := newTable(s.start)
	table.record(s.start, action.Path{})
	frontier := []frontierEntry{{path: action.Path{}, state: s.start}}

	for len(frontier) > 0 {
		if err := ctx.Err(); err != nil {
			span.AddEvent("cancelled", trace.WithAttributes(
				attribute.Int("rounds_completed", table.rounds),
				attribute.Int("states_reached", table.count),
			))
			span.SetStatus(codes.Error, "cancelled")
			s.metrics.RecordRun(StatusCancelled, Stats{Duration: time.Since(began)})
			return nil, fmt.Errorf("%w after %d rounds: %w", ErrCancelled, table.rounds, err)
		}

		s.metrics.RecordRound(len(frontier))

		var next []frontierEntry
		for _, entry := range frontier {
			for _, a := range s.actions {
				result := a.Apply(entry.state)
				if table.reached[result] {
					continue
				}
				p := entry.path.Extend(a)
				table.record(result, p)
				next = append(next, frontierEntry{path: p, state: result})
			}
		}

		table.rounds++
		s.logger.Debug("solver round complete",
			slog.Int("round", table.rounds),
			slog.Int("expanded", len(frontier)),
			slog.Int("discovered", len(next)),
			slog.Int("reached", table.count),
		)
		span.AddEvent("round", trace.WithAttributes(
			attribute.Int("round", table.rounds),
			attribute.Int("discovered", len(next)),
		))
		frontier = next
	}

	table.elapsed = time.Since(began)
	stats := table.Stats()
	s.metrics.RecordRun(StatusSuccess, stats)

	span.SetAttributes(
		attribute.Int("states_reached", stats.Reached),
		attribute.Int("max_path_length", stats.MaxLength),
		attribute.Int("rounds", stats.Rounds),
	)
	s.logger.Info("solver finished",
		slog.Int("reached", stats.Reached),
		slog.Int("unreached", stats.Unreached),
		slog.Int("max_length", stats.MaxLength),
		slog.Duration("duration", stats.Duration),
	)
	return table, nil
}

// RunSearch runs the canonical search from water with default settings.
//
// It cannot fail: the canonical action set is non-empty, water is a
// valid state and the background context is never cancelled. An error
// from Run here would be an invariant violation, so it panics instead
// of returning one. Use New(...).Run for searches that can fail.
func RunSearch() *Table {
	table, err := New(WithLogger(slog.New(slog.DiscardHandler))).Run(context.Background())
	if err != nil {
		panic(fmt.Sprintf("solver: canonical search failed: %v", err))
	}
	return table
}
