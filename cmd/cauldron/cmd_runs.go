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
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/cauldron/pkg/ux"
)

func newRunsCmd(app *cliApp) *cobra.Command {
	return &cobra.Command{
		Use:   "runs",
		Short: "List solution tables saved with solve --persist",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, db, err := app.openStore()
			if err != nil {
				return err
			}
			defer db.Close()

			runs, err := st.ListRuns(cmd.Context())
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				ux.Warning("no stored runs")
				return nil
			}
			for _, run := range runs {
				ux.KeyValues([][2]string{
					{"id", run.ID},
					{"created", run.CreatedAt.Format(time.RFC3339)},
					{"reached", strconv.Itoa(run.Reached)},
					{"max_length", strconv.Itoa(run.MaxLength)},
				})
			}
			return nil
		},
	}
}
