// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Command cauldron explores the 15-bit cauldron liquid space.
//
// It finds the shortest action sequence from water to every reachable
// liquid value, replays code strings, scans the fungal automaton and
// serves lookups over HTTP.
//
// Usage:
//
//	cauldron solve --out results.txt
//	cauldron brew SENGENW --explain
//	cauldron lookup 20485
//	cauldron converge --workers 8
//	cauldron serve --address 127.0.0.1:8087
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/cauldron/pkg/ux"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, newRootCmd(), os.Args[1:])
	stop()
	os.Exit(code)
}

// execute runs root with args and maps the outcome to an exit code.
func execute(ctx context.Context, root *cobra.Command, args []string) int {
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		ux.Error(err.Error())
		var usage *usageError
		if errors.As(err, &usage) {
			return exitUsage
		}
		return exitError
	}
	return exitOK
}
