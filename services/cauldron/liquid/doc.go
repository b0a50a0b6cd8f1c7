// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package liquid models the 15-bit liquid data of a cauldron.
//
// A cauldron's contents are a single 15-bit value. Three kinds of
// transition change it:
//
//   - ApplyIngredient ORs in the fixed bit set of one of six ingredients.
//   - Dilute clears the odd bits {1,3,5,7,9,11,13}.
//   - ApplyCatalyst runs a carry/shift step followed by a circular
//     cellular automaton that is iterated until it stops changing.
//
// # Architecture
//
//	┌──────────────┐    ┌──────────────────┐    ┌─────────────────────┐
//	│  Data (u15)  │───▶│  CatalystShift   │───▶│   CatalystSettle    │
//	│              │    │  (stage 1)       │    │   (stage 2)         │
//	└──────────────┘    └──────────────────┘    └─────────────────────┘
//	                                                      │
//	                                                      ▼
//	                                            ┌─────────────────────┐
//	                                            │ Automaton.Next loop │
//	                                            │ until fixed point   │
//	                                            └─────────────────────┘
//
// # Thread Safety
//
// Every type in this package is an immutable value. All functions are
// pure and safe for concurrent use.
package liquid
