// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package api exposes a finished solution table over HTTP.
//
// # Endpoints
//
//	GET  /health              liveness
//	GET  /v1/states/:state    shortest path for one state
//	POST /v1/brew             apply a code string to a state
//	GET  /v1/summary          reached count, longest path, depth counts
//	GET  /metrics             Prometheus exposition
package api

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/AleutianAI/cauldron/services/cauldron/telemetry"
)

// ServiceName is reported by the tracing middleware.
const ServiceName = "cauldron-api"

// RouterConfig holds what NewRouter needs beyond the handlers.
type RouterConfig struct {
	// Gatherer backs /metrics. Nil means prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer

	// Metrics records per-request OTel instruments. Nil disables them.
	Metrics *telemetry.Metrics

	// Logger receives request logs. Nil means slog.Default().
	Logger *slog.Logger
}

// NewRouter builds a gin engine with recovery, tracing and request
// metrics, and registers every route.
func NewRouter(h *Handlers, cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(ServiceName))
	if cfg.Metrics != nil {
		router.Use(RequestMetrics(cfg.Metrics))
	}
	router.Use(requestLogger(cfg.Logger))

	SetupRoutes(router, h, cfg.Gatherer)
	return router
}

// SetupRoutes registers the API on router.
func SetupRoutes(router *gin.Engine, h *Handlers, gatherer prometheus.Gatherer) {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	router.GET("/health", h.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	v1 := router.Group("/v1")
	{
		v1.GET("/states/:state", h.GetState)
		v1.POST("/brew", h.Brew)
		v1.GET("/summary", h.GetSummary)
	}
}

// RequestMetrics records request count, latency and in-flight requests.
// Routes are labelled by their pattern, not the raw path, so state
// lookups share one series.
func RequestMetrics(m *telemetry.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		start := time.Now()

		m.HTTPActiveRequests.Add(ctx, 1)
		defer m.HTTPActiveRequests.Add(ctx, -1)

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		attrs := metric.WithAttributes(
			attribute.String("method", c.Request.Method),
			attribute.String("route", route),
			attribute.String("status", strconv.Itoa(c.Writer.Status())),
		)
		m.HTTPRequestsTotal.Add(ctx, 1, attrs)
		m.HTTPRequestDuration.Record(ctx, time.Since(start).Seconds(), attrs)
	}
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		telemetry.LoggerWithTrace(c.Request.Context(), logger).Debug("request served",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", time.Since(start)),
		)
	}
}
