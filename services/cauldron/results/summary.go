// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package results

import (
	"fmt"

	"github.com/AleutianAI/cauldron/services/cauldron/solver"
)

// Summary is the closing report of a search.
type Summary struct {
	Reached   int `json:"reached"`
	MaxLength int `json:"max_length"`
}

// Summarize extracts the summary figures of t.
func Summarize(t *solver.Table) Summary {
	return Summary{Reached: t.Reached(), MaxLength: t.MaxLength()}
}

// String returns e.g. "found 5624 solutions, at most 25 long".
func (s Summary) String() string {
	return fmt.Sprintf("found %d solutions, at most %d long", s.Reached, s.MaxLength)
}
