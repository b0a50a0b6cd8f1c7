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
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/AleutianAI/cauldron/cmd/cauldron/config"
	"github.com/AleutianAI/cauldron/pkg/logging"
	"github.com/AleutianAI/cauldron/pkg/ux"
	cbadger "github.com/AleutianAI/cauldron/services/cauldron/storage/badger"
	"github.com/AleutianAI/cauldron/services/cauldron/store"
	"github.com/AleutianAI/cauldron/services/cauldron/telemetry"
)

// version is reported as service.version in telemetry.
var version = "0.1.0"

// cliApp carries the global flags and what PersistentPreRunE builds
// from them. Each command tree gets its own instance.
type cliApp struct {
	configPath  string
	logLevel    string
	personality string

	cfg    config.CauldronConfig
	logger *logging.Logger
}

// =============================================================================
// ROOT COMMAND
// =============================================================================

func newRootCmd() *cobra.Command {
	app := &cliApp{}

	root := &cobra.Command{
		Use:   "cauldron",
		Short: "Explore the 15-bit cauldron liquid space",
		Long: `Cauldron models a liquid as a 15-bit value changed by six ingredients,
dilution and a catalyst driven by a circular fungal automaton.

It finds the shortest action sequence from water to every reachable
value and answers questions about the result.`,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: app.setup,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return app.teardown()
		},
	}
	root.SetFlagErrorFunc(flagError)

	root.PersistentFlags().StringVar(&app.configPath, "config", "",
		"Config file (default ~/.cauldron/cauldron.yaml)")
	root.PersistentFlags().StringVar(&app.logLevel, "log-level", "",
		"Log level: debug, info, warn, error (overrides config)")
	root.PersistentFlags().StringVar(&app.personality, "personality", "",
		"Output style: full, standard, minimal, machine")

	root.AddCommand(
		newSolveCmd(app),
		newBrewCmd(app),
		newLookupCmd(app),
		newConvergeCmd(app),
		newServeCmd(app),
		newRunsCmd(app),
		newConfigCmd(app),
	)
	return root
}

// setup loads config, picks the output personality and builds the
// logger. Runs before every subcommand.
func (a *cliApp) setup(cmd *cobra.Command, args []string) error {
	ux.InitPersonality(a.personality)

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	levelName := cfg.Log.Level
	if a.logLevel != "" {
		levelName = a.logLevel
	}
	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return &usageError{err: err}
	}

	a.logger = logging.New(logging.Config{
		Level:   level,
		LogDir:  cfg.Log.Dir,
		Service: "cauldron",
		JSON:    cfg.Log.JSON,
		Output:  cmd.ErrOrStderr(),
	})
	slog.SetDefault(a.logger.Slog())
	return nil
}

func (a *cliApp) teardown() error {
	if a.logger == nil {
		return nil
	}
	return a.logger.Close()
}

// log returns the command logger, or slog.Default before setup ran.
func (a *cliApp) log() *slog.Logger {
	if a.logger == nil {
		return slog.Default()
	}
	return a.logger.Slog()
}

// startTelemetry installs the exporters from config. traceExporter, when
// not empty, replaces the configured trace exporter. reg receives the
// OTel Prometheus collector when the metric exporter is prometheus.
func (a *cliApp) startTelemetry(ctx context.Context, traceExporter string, reg prometheus.Registerer) (func(context.Context) error, error) {
	tcfg := telemetry.DefaultConfig()
	tcfg.ServiceVersion = version
	tcfg.TraceExporter = a.cfg.Telemetry.TraceExporter
	tcfg.MetricExporter = a.cfg.Telemetry.MetricExporter
	tcfg.OTLPEndpoint = a.cfg.Telemetry.OTLPEndpoint
	tcfg.Registerer = reg
	if traceExporter != "" {
		tcfg.TraceExporter = traceExporter
	}

	shutdown, err := telemetry.Init(ctx, tcfg)
	if err != nil {
		return nil, fmt.Errorf("start telemetry: %w", err)
	}
	return shutdown, nil
}

// openStore opens the on-disk table store at the configured path.
// Callers must close the returned DB.
func (a *cliApp) openStore() (*store.Store, *cbadger.DB, error) {
	dbCfg := cbadger.DefaultConfig()
	dbCfg.Path = a.cfg.Store.Path
	dbCfg.Logger = a.log()

	db, err := cbadger.Open(dbCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}
	return store.New(db, a.log()), db, nil
}

// shutdownTelemetry flushes exporters and logs rather than fails.
func (a *cliApp) shutdownTelemetry(shutdown func(context.Context) error) {
	if err := shutdown(context.Background()); err != nil {
		a.log().Warn("telemetry shutdown failed", slog.String("error", err.Error()))
	}
}
