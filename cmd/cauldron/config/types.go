// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package config loads the cauldron CLI configuration from YAML.
package config

import (
	"os"
	"path/filepath"
)

// CauldronConfig is the root of cauldron.yaml.
type CauldronConfig struct {
	// Output: where solve writes its artifacts
	Output OutputConfig `yaml:"output"`

	// Log: console and file logging
	Log LogConfig `yaml:"log"`

	// Store: persistent solution tables in BadgerDB
	Store StoreConfig `yaml:"store"`

	// Telemetry: trace and metric exporters
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Server: the HTTP lookup service
	Server ServerConfig `yaml:"server"`

	// Analysis: the convergence scan
	Analysis AnalysisConfig `yaml:"analysis"`
}

type OutputConfig struct {
	ResultsPath     string `yaml:"results_path" validate:"required"`
	MetricsTextfile string `yaml:"metrics_textfile,omitempty"` // e.g. /var/lib/node_exporter/cauldron.prom
}

type LogConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn warning error"`
	JSON  bool   `yaml:"json"`
	Dir   string `yaml:"dir,omitempty"` // e.g. ~/.cauldron/logs
}

type StoreConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path" validate:"required_if=Enabled true"`
}

type TelemetryConfig struct {
	TraceExporter  string `yaml:"trace_exporter" validate:"oneof=none stdout otlp"`
	MetricExporter string `yaml:"metric_exporter" validate:"oneof=none stdout prometheus"`
	OTLPEndpoint   string `yaml:"otlp_endpoint" validate:"required_if=TraceExporter otlp"`
}

type ServerConfig struct {
	Address string `yaml:"address" validate:"required,hostname_port"`
}

type AnalysisConfig struct {
	// Workers bounds the convergence scan; 0 means one per CPU.
	Workers int `yaml:"workers" validate:"gte=0,lte=1024"`
}

// DefaultDir returns ~/.cauldron, or .cauldron when the home directory
// is unknown.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".cauldron"
	}
	return filepath.Join(home, ".cauldron")
}

// DefaultPath is the config file used when --config is not given.
func DefaultPath() string {
	return filepath.Join(DefaultDir(), "cauldron.yaml")
}

// DefaultConfig returns the configuration used for anything the file
// leaves out.
func DefaultConfig() CauldronConfig {
	return CauldronConfig{
		Output: OutputConfig{
			ResultsPath: "results.txt",
		},
		Log: LogConfig{
			Level: "info",
		},
		Store: StoreConfig{
			Enabled: false,
			Path:    filepath.Join(DefaultDir(), "store"),
		},
		Telemetry: TelemetryConfig{
			TraceExporter:  "none",
			MetricExporter: "none",
			OTLPEndpoint:   "localhost:4317",
		},
		Server: ServerConfig{
			Address: "127.0.0.1:8087",
		},
		Analysis: AnalysisConfig{
			Workers: 0,
		},
	}
}
