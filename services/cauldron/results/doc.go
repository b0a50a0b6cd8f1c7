// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package results writes and reads the solution artifact.
//
// The artifact has one line per reached state, ascending by value:
//
//	00000,
//	00001, S
//	00004, SENSENGNW
//
// Each line is the state as five zero-padded digits, a comma, a space
// and the action codes of its shortest path. The start state has an
// empty path, so its line ends right after the comma and space.
package results
