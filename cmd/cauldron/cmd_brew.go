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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/cauldron/pkg/ux"
	"github.com/AleutianAI/cauldron/services/cauldron/action"
	"github.com/AleutianAI/cauldron/services/cauldron/liquid"
)

type brewOptions struct {
	from    string
	explain bool
}

func newBrewCmd(app *cliApp) *cobra.Command {
	opts := &brewOptions{}
	cmd := &cobra.Command{
		Use:   "brew [CODES]",
		Short: "Apply a code string and print the resulting value",
		Long: `Apply a sequence of action codes to a starting value.

Codes:
  S sugar  G ghast tear  E spider eye  F fermented spider eye
  B blaze powder  C magma cream  W dilute  N catalyst

Codes are case-insensitive and whitespace is ignored. With no CODES
the starting value is printed unchanged.

Examples:
  cauldron brew SENGENW
  cauldron brew "S E N" --explain
  cauldron brew W --from 16896`,
		Args: usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			codes := ""
			if len(args) == 1 {
				codes = args[0]
			}
			return runBrew(app, opts, codes)
		},
	}

	cmd.Flags().StringVar(&opts.from, "from", "0",
		"Starting value, 0 to 32767")
	cmd.Flags().BoolVar(&opts.explain, "explain", false,
		"Print every intermediate value, including the catalyst stages")
	return cmd
}

func runBrew(app *cliApp, opts *brewOptions, codes string) error {
	from, err := liquid.ParseData(opts.from)
	if err != nil {
		return &usageError{err: err}
	}
	path, err := action.Parse(codes)
	if err != nil {
		return &usageError{err: err}
	}

	if opts.explain {
		explainBrew(from, path)
	}

	final := path.Apply(from)
	app.log().Debug("brewed", "from", from.String(), "codes", action.Render(path), "state", final.String())

	ux.KeyValues([][2]string{
		{"state", final.String()},
		{"binary", final.Binary()},
	})
	return nil
}

// explainBrew prints one line per action. Catalyst steps also show the
// value after the shift stage.
func explainBrew(from liquid.Data, path action.Path) {
	pairs := make([][2]string, 0, len(path)+1)
	pairs = append(pairs, [2]string{"start", fmt.Sprintf("%s %s", from, from.Binary())})

	current := from
	for i, a := range path {
		next := a.Apply(current)
		line := fmt.Sprintf("%c %-24s %s %s", a.Code(), a, next, next.Binary())
		if a.Kind() == action.KindCatalyst {
			shifted := current.CatalystShift()
			line += fmt.Sprintf("  (shift %s, settle %s)", shifted, shifted.CatalystSettle())
		}
		pairs = append(pairs, [2]string{fmt.Sprintf("step %d", i+1), line})
		current = next
	}
	ux.KeyValues(pairs)
}
