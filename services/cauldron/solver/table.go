// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package solver

import (
	"time"

	"github.com/AleutianAI/cauldron/services/cauldron/action"
	"github.com/AleutianAI/cauldron/services/cauldron/liquid"
)

// Table records, for each of the 32768 liquid values, the shortest path
// found from the start state. Unreached values have no entry.
type Table struct {
	start   liquid.Data
	paths   []action.Path
	reached []bool
	count   int
	rounds  int
	elapsed time.Duration
}

func newTable(start liquid.Data) *Table {
	return &Table{
		start:   start,
		paths:   make([]action.Path, liquid.StateCount),
		reached: make([]bool, liquid.StateCount),
	}
}

// record stores p for d unless d already has an entry. It reports
// whether the entry was new.
func (t *Table) record(d liquid.Data, p action.Path) bool {
	if t.reached[d] {
		return false
	}
	t.reached[d] = true
	t.paths[d] = p
	t.count++
	return true
}

// Start returns the state every path begins from.
func (t *Table) Start() liquid.Data {
	return t.start
}

// Lookup returns the recorded path for d. ok is false when d was not
// reached or is out of range.
func (t *Table) Lookup(d liquid.Data) (path action.Path, ok bool) {
	if !d.Valid() || !t.reached[d] {
		return nil, false
	}
	return t.paths[d], true
}

// Reached returns the number of states with an entry, the start included.
func (t *Table) Reached() int {
	return t.count
}

// MaxLength returns the length of the longest recorded path.
func (t *Table) MaxLength() int {
	longest := 0
	for d, ok := range t.reached {
		if ok && len(t.paths[d]) > longest {
			longest = len(t.paths[d])
		}
	}
	return longest
}

// Depths returns the number of states at each path length. Index k holds
// the count of states first reached after k actions.
func (t *Table) Depths() []int {
	depths := make([]int, t.MaxLength()+1)
	for d, ok := range t.reached {
		if ok {
			depths[len(t.paths[d])]++
		}
	}
	return depths
}

// Each calls fn for every reached state in ascending numeric order.
func (t *Table) Each(fn func(d liquid.Data, p action.Path)) {
	for d, ok := range t.reached {
		if ok {
			fn(liquid.Data(d), t.paths[d])
		}
	}
}

// Unreached returns every state without an entry, ascending.
func (t *Table) Unreached() []liquid.Data {
	out := make([]liquid.Data, 0, liquid.StateCount-t.count)
	for d, ok := range t.reached {
		if !ok {
			out = append(out, liquid.Data(d))
		}
	}
	return out
}

// Stats summarises a finished search.
type Stats struct {
	Reached   int
	Unreached int
	MaxLength int
	Rounds    int
	Duration  time.Duration
}

// Stats returns the summary figures of t.
func (t *Table) Stats() Stats {
	return Stats{
		Reached:   t.count,
		Unreached: liquid.StateCount - t.count,
		MaxLength: t.MaxLength(),
		Rounds:    t.rounds,
		Duration:  t.elapsed,
	}
}
