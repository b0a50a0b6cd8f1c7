// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package solver finds the shortest action sequence that brews every
// reachable liquid, starting from water.
//
// # Architecture
//
//	         ┌────────────────────────────┐
//	Run ───▶ │ frontier (path, state)     │  round k
//	         └─────────────┬──────────────┘
//	                       │ for each entry, for each action in
//	                       │ canonical order (S G E F B C W N)
//	                       ▼
//	         ┌────────────────────────────┐
//	         │ Table: first write wins    │──▶ next frontier, round k+1
//	         └────────────────────────────┘
//
// The search is level synchronised: every state recorded in round k has
// a path of exactly k actions, so each recorded path is minimal. Ties
// between equally short paths go to the path discovered first, which
// follows canonical action order applied to the previous frontier in
// its own discovery order.
//
// # Thread Safety
//
// A Solver may be reused for several runs, but a single Run is
// sequential. A finished Table is read-only and safe for concurrent
// readers.
package solver
