// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package action defines the eight moves a brewer can make and the
// single-character code table used to write them down.
//
// An Action is a closed tagged union: six ingredient additions, Dilute
// and AddCatalyst. Every action is total over liquid.Data; Apply never
// fails. The canonical ordering returned by All is the tie-breaking
// order used by the solver:
//
//	S  sugar                  G  ghast tear
//	E  spider eye             F  fermented spider eye
//	B  blaze powder           C  magma cream
//	W  dilute (water)         N  catalyst (nether wart)
//
// A Path is a sequence of actions. Render and Parse convert between a
// Path and its code string, e.g. "SENSNSCNSNSGEFC".
package action
