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
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/cauldron/pkg/ux"
	"github.com/AleutianAI/cauldron/services/cauldron/action"
	"github.com/AleutianAI/cauldron/services/cauldron/liquid"
	"github.com/AleutianAI/cauldron/services/cauldron/results"
	"github.com/AleutianAI/cauldron/services/cauldron/solver"
)

// errUnreached is returned when the requested value has no path.
var errUnreached = errors.New("not reachable from water")

type lookupOptions struct {
	resultsPath string
	runID       string
}

func newLookupCmd(app *cliApp) *cobra.Command {
	opts := &lookupOptions{}
	cmd := &cobra.Command{
		Use:   "lookup STATE",
		Short: "Print the shortest path to a value",
		Long: `Print the shortest code string that brews STATE from water.

The path comes from a results file (--results), a stored run (--run,
"latest" for the newest) or, by default, a fresh in-memory search.

Examples:
  cauldron lookup 20485
  cauldron lookup 1088 --results results.txt
  cauldron lookup 64 --run latest`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(cmd.Context(), app, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.resultsPath, "results", "",
		"Read paths from this results file")
	cmd.Flags().StringVar(&opts.runID, "run", "",
		`Read paths from this stored run ("latest" for the newest)`)
	cmd.MarkFlagsMutuallyExclusive("results", "run")
	return cmd
}

func runLookup(ctx context.Context, app *cliApp, opts *lookupOptions, arg string) error {
	state, err := liquid.ParseData(arg)
	if err != nil {
		return &usageError{err: err}
	}

	var (
		path  action.Path
		found bool
	)
	switch {
	case opts.resultsPath != "":
		paths, err := results.ReadFile(opts.resultsPath)
		if err != nil {
			return err
		}
		path, found = paths[state]
	case opts.runID != "":
		path, found, err = lookupStored(ctx, app, opts.runID, state)
		if err != nil {
			return err
		}
	default:
		table, err := solver.New(solver.WithLogger(app.log())).Run(ctx)
		if err != nil {
			return err
		}
		path, found = table.Lookup(state)
	}

	if !found {
		return fmt.Errorf("state %s: %w", state, errUnreached)
	}

	ux.KeyValues([][2]string{
		{"state", state.String()},
		{"path", action.Render(path)},
		{"length", strconv.Itoa(len(path))},
	})
	return nil
}

func lookupStored(ctx context.Context, app *cliApp, runID string, state liquid.Data) (action.Path, bool, error) {
	st, db, err := app.openStore()
	if err != nil {
		return nil, false, err
	}
	defer db.Close()

	if runID == "latest" {
		meta, err := st.Latest(ctx)
		if err != nil {
			return nil, false, err
		}
		runID = meta.ID
	}
	return st.Lookup(ctx, runID, state)
}
