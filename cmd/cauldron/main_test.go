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
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/cauldron/pkg/ux"
)

// =============================================================================
// TEST HARNESS
// =============================================================================

// cliEnv is a scratch directory with a config pointing every output
// into it.
type cliEnv struct {
	dir        string
	configPath string
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	dir := t.TempDir()
	env := &cliEnv{dir: dir, configPath: filepath.Join(dir, "cauldron.yaml")}
	body := fmt.Sprintf("output:\n  results_path: %s\nstore:\n  path: %s\n",
		filepath.Join(dir, "results.txt"), filepath.Join(dir, "store"))
	require.NoError(t, os.WriteFile(env.configPath, []byte(body), 0644))
	return env
}

func (e *cliEnv) path(name string) string {
	return filepath.Join(e.dir, name)
}

// cliResult holds the outcome of one CLI invocation.
type cliResult struct {
	code   int
	stdout string
	stderr string
}

// run executes the CLI in machine mode with quiet logging.
func (e *cliEnv) run(t *testing.T, args ...string) cliResult {
	t.Helper()

	var out, errOut bytes.Buffer
	prevLevel := ux.GetPersonality()
	prevLogger := slog.Default()
	ux.SetOutput(&out, &errOut)
	t.Cleanup(func() {
		ux.SetOutput(os.Stdout, os.Stderr)
		ux.SetPersonality(prevLevel)
		slog.SetDefault(prevLogger)
	})

	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	full := append([]string{
		"--personality", "machine",
		"--log-level", "error",
		"--config", e.configPath,
	}, args...)

	code := execute(context.Background(), root, full)
	return cliResult{code: code, stdout: out.String(), stderr: errOut.String()}
}

// =============================================================================
// SOLVE
// =============================================================================

func TestSolve_WritesResultsAndSummary(t *testing.T) {
	env := newCLIEnv(t)

	res := env.run(t, "solve")
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Equal(t, "found 5624 solutions, at most 25 long\n", res.stdout)

	data, err := os.ReadFile(env.path("results.txt"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	require.Len(t, lines, 5624)
	assert.Equal(t, "00000, ", lines[0])
	assert.Equal(t, "00001, S", lines[1])
	assert.Equal(t, "32767, SENSNSCNSNSGEFC", lines[len(lines)-1])
}

func TestSolve_OutFlagAndMetricsTextfile(t *testing.T) {
	env := newCLIEnv(t)
	out := env.path("nested/out.txt")
	prom := env.path("cauldron.prom")

	res := env.run(t, "solve", "--out", out, "--metrics-textfile", prom)
	require.Equal(t, exitOK, res.code, res.stderr)

	assert.FileExists(t, out)
	assert.NoFileExists(t, env.path("results.txt"))

	metrics, err := os.ReadFile(prom)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), "cauldron_solver_states_reached 5624")
	assert.Contains(t, string(metrics), "cauldron_solver_max_path_length 25")
	assert.Contains(t, string(metrics), `cauldron_solver_runs_total{status="success"} 1`)
}

func TestSolve_UnwritableOutput(t *testing.T) {
	env := newCLIEnv(t)
	blocker := env.path("file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	res := env.run(t, "solve", "--out", filepath.Join(blocker, "results.txt"))
	assert.Equal(t, exitError, res.code)
	assert.Contains(t, res.stderr, "ERROR:")
}

func TestSolve_PersistThenLookupAndList(t *testing.T) {
	env := newCLIEnv(t)

	res := env.run(t, "solve", "--persist")
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "run=")

	res = env.run(t, "lookup", "64", "--run", "latest")
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Equal(t, "state=00064\npath=SENGENW\nlength=7\n", res.stdout)

	res = env.run(t, "runs")
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "reached=5624\n")
	assert.Contains(t, res.stdout, "max_length=25\n")

	res = env.run(t, "lookup", "64", "--run", "no-such-run")
	assert.Equal(t, exitError, res.code)
	assert.Contains(t, res.stderr, "run not found")
}

func TestSolve_ExtraArgsIsUsageError(t *testing.T) {
	env := newCLIEnv(t)
	res := env.run(t, "solve", "extra")
	assert.Equal(t, exitUsage, res.code)
}

// =============================================================================
// BREW
// =============================================================================

func TestBrew(t *testing.T) {
	env := newCLIEnv(t)
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"water", []string{"brew"}, "state=00000\nbinary=000000000000000\n"},
		{"eye then catalyst", []string{"brew", "EN"}, "state=01088\nbinary=000010001000000\n"},
		{"lowercase with spaces", []string{"brew", "e n"}, "state=01088\nbinary=000010001000000\n"},
		{"dilute from fermented", []string{"brew", "W", "--from", "16896"}, "state=16384\nbinary=100000000000000\n"},
		{"long path", []string{"brew", "SGCNSW"}, "state=20485\nbinary=101000000000101\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := env.run(t, tt.args...)
			require.Equal(t, exitOK, res.code, res.stderr)
			assert.Equal(t, tt.want, res.stdout)
		})
	}
}

func TestBrew_Explain(t *testing.T) {
	env := newCLIEnv(t)
	res := env.run(t, "brew", "EN", "--explain")
	require.Equal(t, exitOK, res.code, res.stderr)

	assert.Contains(t, res.stdout, "start=00000 000000000000000\n")
	assert.Contains(t, res.stdout, "step 1=E add(spider_eye)")
	assert.Contains(t, res.stdout, "01184")
	assert.Contains(t, res.stdout, "step 2=N catalyst")
	assert.Contains(t, res.stdout, "(shift 01184, settle 01088)")
	assert.True(t, strings.HasSuffix(res.stdout, "state=01088\nbinary=000010001000000\n"))
}

func TestBrew_UsageErrors(t *testing.T) {
	env := newCLIEnv(t)
	for _, args := range [][]string{
		{"brew", "EX"},
		{"brew", "W", "--from", "32768"},
		{"brew", "W", "--from", "water"},
		{"brew", "S", "G"},
		{"brew", "--bogus"},
	} {
		res := env.run(t, args...)
		assert.Equal(t, exitUsage, res.code, args)
		assert.Contains(t, res.stderr, "ERROR:", args)
	}
}

// =============================================================================
// LOOKUP
// =============================================================================

func TestLookup_FreshSearch(t *testing.T) {
	env := newCLIEnv(t)

	res := env.run(t, "lookup", "20485")
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Equal(t, "state=20485\npath=SGCNSW\nlength=6\n", res.stdout)

	res = env.run(t, "lookup", "0")
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Equal(t, "state=00000\npath=\nlength=0\n", res.stdout)
}

func TestLookup_Unreached(t *testing.T) {
	env := newCLIEnv(t)
	res := env.run(t, "lookup", "8192")
	assert.Equal(t, exitError, res.code)
	assert.Contains(t, res.stderr, "not reachable from water")
}

func TestLookup_FromResultsFile(t *testing.T) {
	env := newCLIEnv(t)
	require.Equal(t, exitOK, env.run(t, "solve").code)

	res := env.run(t, "lookup", "1088", "--results", env.path("results.txt"))
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Equal(t, "state=01088\npath=EN\nlength=2\n", res.stdout)

	res = env.run(t, "lookup", "1088", "--results", env.path("missing.txt"))
	assert.Equal(t, exitError, res.code)
}

func TestLookup_UsageErrors(t *testing.T) {
	env := newCLIEnv(t)
	assert.Equal(t, exitUsage, env.run(t, "lookup").code)
	assert.Equal(t, exitUsage, env.run(t, "lookup", "40000").code)
	assert.Equal(t, exitUsage, env.run(t, "lookup", "-3").code)
}

// =============================================================================
// CONVERGE
// =============================================================================

func TestConverge(t *testing.T) {
	env := newCLIEnv(t)
	res := env.run(t, "converge", "--workers", "2")
	require.Equal(t, exitOK, res.code, res.stderr)

	assert.Contains(t, res.stdout, "seeds=32768\n")
	assert.Contains(t, res.stdout, "max_generations=13\n")
	assert.Contains(t, res.stdout, "fixed_points=4610\n")
	assert.Contains(t, res.stdout, "slowest=16383,24575,")
	assert.Contains(t, res.stdout, "\n0 4610\n")
	assert.True(t, strings.HasSuffix(res.stdout, "\n13 15\n"))
}

func TestConverge_NegativeWorkers(t *testing.T) {
	env := newCLIEnv(t)
	assert.Equal(t, exitUsage, env.run(t, "converge", "--workers", "-1").code)
}

// =============================================================================
// GLOBAL FLAGS AND CONFIG
// =============================================================================

func TestRoot_BadLogLevel(t *testing.T) {
	env := newCLIEnv(t)
	res := env.run(t, "--log-level", "loud", "brew")
	assert.Equal(t, exitUsage, res.code)
	assert.Contains(t, res.stderr, "unknown log level")
}

func TestRoot_InvalidConfig(t *testing.T) {
	env := newCLIEnv(t)
	require.NoError(t, os.WriteFile(env.configPath, []byte("log:\n  level: loud\n"), 0644))

	res := env.run(t, "brew")
	assert.Equal(t, exitError, res.code)
	assert.Contains(t, res.stderr, "invalid config")
}

func TestConfigInit(t *testing.T) {
	env := newCLIEnv(t)
	env.configPath = env.path("fresh/cauldron.yaml")

	res := env.run(t, "config", "init")
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.FileExists(t, env.configPath)

	res = env.run(t, "config", "init")
	assert.Equal(t, exitError, res.code)
}

func TestRuns_Empty(t *testing.T) {
	env := newCLIEnv(t)
	res := env.run(t, "runs")
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Contains(t, res.stderr, "WARN: no stored runs")
}

// =============================================================================
// SERVE
// =============================================================================

func TestServeUntilDone(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})

	var out bytes.Buffer
	ux.SetOutput(&out, io.Discard)
	t.Cleanup(func() { ux.SetOutput(os.Stdout, os.Stderr) })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- serveUntilDone(ctx, listener, handler, slog.New(slog.DiscardHandler))
	}()

	resp, err := http.Get("http://" + listener.Addr().String() + "/")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, "ok", string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
