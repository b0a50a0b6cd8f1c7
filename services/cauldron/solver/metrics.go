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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// =============================================================================
// Metric Definitions
// =============================================================================

const (
	metricsNamespace = "cauldron"
	solverSubsystem  = "solver"
)

// Run outcome label values.
const (
	StatusSuccess   = "success"
	StatusCancelled = "cancelled"
	StatusError     = "error"
)

// Metrics holds the Prometheus instruments for solver runs.
//
// # Fields
//
//   - RunsTotal: Counter of runs by status (success, cancelled, error)
//   - StatesReached: Gauge of states reached by the last successful run
//   - MaxPathLength: Gauge of the longest path of the last successful run
//   - RunDurationSeconds: Histogram of wall time per run
//   - RoundFrontierSize: Histogram of frontier sizes, one sample per round
//
// # Thread Safety
//
// All operations are thread-safe.
type Metrics struct {
	RunsTotal          *prometheus.CounterVec
	StatesReached      prometheus.Gauge
	MaxPathLength      prometheus.Gauge
	RunDurationSeconds prometheus.Histogram
	RoundFrontierSize  prometheus.Histogram
}

// NewMetrics creates the solver metrics and registers them with reg.
//
// # Inputs
//
//   - reg: Registry to register with. Nil means prometheus.DefaultRegisterer.
//
// # Limitations
//
//   - Panics if the metrics are already registered with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		RunsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: solverSubsystem,
				Name:      "runs_total",
				Help:      "Total number of solver runs by status",
			},
			[]string{"status"},
		),

		StatesReached: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Subsystem: solverSubsystem,
				Name:      "states_reached",
				Help:      "States reached by the most recent successful run",
			},
		),

		MaxPathLength: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Subsystem: solverSubsystem,
				Name:      "max_path_length",
				Help:      "Longest shortest path found by the most recent successful run",
			},
		),

		RunDurationSeconds: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: solverSubsystem,
				Name:      "run_duration_seconds",
				Help:      "Wall time of a solver run in seconds",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
		),

		RoundFrontierSize: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: solverSubsystem,
				Name:      "round_frontier_size",
				Help:      "Number of states expanded per search round",
				Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
	}
}

// RecordRun updates the run counters. stats is only read for successful
// runs.
func (m *Metrics) RecordRun(status string, stats Stats) {
	if m == nil {
		return
	}
	m.RunsTotal.WithLabelValues(status).Inc()
	m.RunDurationSeconds.Observe(stats.Duration.Seconds())
	if status == StatusSuccess {
		m.StatesReached.Set(float64(stats.Reached))
		m.MaxPathLength.Set(float64(stats.MaxLength))
	}
}

// RecordRound observes the size of one frontier.
func (m *Metrics) RecordRound(frontier int) {
	if m == nil {
		return
	}
	m.RoundFrontierSize.Observe(float64(frontier))
}
