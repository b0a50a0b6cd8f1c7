// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/AleutianAI/cauldron/services/cauldron/action"
	"github.com/AleutianAI/cauldron/services/cauldron/liquid"
	"github.com/AleutianAI/cauldron/services/cauldron/results"
	"github.com/AleutianAI/cauldron/services/cauldron/solver"
	"github.com/AleutianAI/cauldron/services/cauldron/telemetry"
)

// Handlers serves lookups against one finished solution table.
//
// # Thread Safety
//
// The table is read-only, so handlers are safe for concurrent use.
type Handlers struct {
	table   *solver.Table
	metrics *telemetry.Metrics
	logger  *slog.Logger
	started time.Time
}

// NewHandlers creates handlers over table. metrics may be nil.
func NewHandlers(table *solver.Table, metrics *telemetry.Metrics, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{
		table:   table,
		metrics: metrics,
		logger:  logger,
		started: time.Now(),
	}
}

// HealthCheck handles GET /health.
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": time.Since(h.started).Round(time.Second).String(),
	})
}

// GetState handles GET /v1/states/:state.
//
// # Response
//
//	200 OK: StateResponse
//	400 Bad Request: state is not an integer in [0, 32767]
//	404 Not Found: state was not reached by the search
func (h *Handlers) GetState(c *gin.Context) {
	d, err := liquid.ParseData(c.Param("state"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: CodeInvalidState})
		return
	}

	path, ok := h.table.Lookup(d)
	h.countLookup(c, ok)
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error: "state " + d.String() + " is not reachable",
			Code:  CodeUnreached,
		})
		return
	}

	c.JSON(http.StatusOK, StateResponse{
		State:   int(d),
		Binary:  d.Binary(),
		Reached: true,
		Path:    action.Render(path),
		Length:  len(path),
	})
}

// Brew handles POST /v1/brew.
//
// # Response
//
//	200 OK: BrewResponse
//	400 Bad Request: malformed body, bad start state or unknown code
func (h *Handlers) Brew(c *gin.Context) {
	logger := telemetry.LoggerWithTrace(c.Request.Context(), h.logger)

	var req BrewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.countBrew(c, "invalid")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Code: CodeInvalidRequest})
		return
	}

	from := liquid.Water
	if req.From != nil {
		if *req.From < 0 || *req.From > int(liquid.MaxData) {
			h.countBrew(c, "invalid")
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error: (&liquid.OutOfRangeError{Value: *req.From}).Error(),
				Code:  CodeInvalidState,
			})
			return
		}
		from = liquid.Data(*req.From)
	}

	path, err := action.Parse(req.Path)
	if err != nil {
		h.countBrew(c, "invalid")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: CodeInvalidPath})
		return
	}

	states := path.Trace(from)
	trace := make([]int, len(states))
	for i, d := range states {
		trace[i] = int(d)
	}
	result := states[len(states)-1]

	h.countBrew(c, "ok")
	logger.Debug("brew evaluated",
		slog.Int("from", int(from)),
		slog.String("path", action.Render(path)),
		slog.Int("state", int(result)),
	)
	c.JSON(http.StatusOK, BrewResponse{
		From:   int(from),
		State:  int(result),
		Binary: result.Binary(),
		Trace:  trace,
	})
}

// GetSummary handles GET /v1/summary.
func (h *Handlers) GetSummary(c *gin.Context) {
	stats := h.table.Stats()
	c.JSON(http.StatusOK, SummaryResponse{
		Summary:   results.Summarize(h.table).String(),
		Reached:   stats.Reached,
		Unreached: stats.Unreached,
		MaxLength: stats.MaxLength,
		Depths:    h.table.Depths(),
	})
}

func (h *Handlers) countLookup(c *gin.Context, hit bool) {
	if h.metrics == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	h.metrics.LookupsTotal.Add(c.Request.Context(), 1,
		metric.WithAttributes(attribute.String("result", result)))
}

func (h *Handlers) countBrew(c *gin.Context, outcome string) {
	if h.metrics == nil {
		return
	}
	h.metrics.BrewsTotal.Add(c.Request.Context(), 1,
		metric.WithAttributes(attribute.String("outcome", outcome)))
}
