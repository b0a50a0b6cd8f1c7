// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package liquid

// MaxGenerations bounds Converge. The automaton has 2^15 configurations,
// so a run that has not settled after this many steps is cycling.
const MaxGenerations = 1 << Width

// Automaton is the 15-cell circular automaton driven by the catalyst.
//
// # Description
//
// Cell i corresponds to bit i of a liquid value. Neighbour lookups wrap
// around the ring in both directions. The zero value has every cell
// clear.
//
// # Thread Safety
//
// Automaton is a value type; Next returns a new generation and never
// modifies the receiver.
type Automaton [Width]bool

// AutomatonFromBits builds an automaton with cell i set iff bit i of v is set.
func AutomatonFromBits(v uint16) Automaton {
	var a Automaton
	for i := 0; i < Width; i++ {
		a[i] = v&(1<<i) != 0
	}
	return a
}

// Bits converts the automaton back to its 15-bit value.
func (a Automaton) Bits() uint16 {
	var v uint16
	for i := 0; i < Width; i++ {
		if a[i] {
			v |= 1 << i
		}
	}
	return v
}

// Cell reports whether cell i is set. i may be any integer; it wraps.
func (a Automaton) Cell(i int) bool {
	return a[Wrap(i)]
}

// Next computes the following generation.
//
// # Description
//
// A set cell survives when it is supported on both sides: on the right
// either cell i+1 is set or cell i+2 is clear, and on the left either
// cell i-1 is set or cell i-2 is clear. A clear cell becomes set when
// both direct neighbours are set.
//
// # Outputs
//
//   - Automaton: The next generation. The receiver is unchanged.
func (a Automaton) Next() Automaton {
	var next Automaton
	for i := 0; i < Width; i++ {
		if a[i] {
			right := a.Cell(i+1) || !a.Cell(i+2)
			left := a.Cell(i-1) || !a.Cell(i-2)
			next[i] = right && left
		} else {
			next[i] = a.Cell(i-1) && a.Cell(i+1)
		}
	}
	return next
}

// Converge iterates the automaton seeded from pattern until a generation
// equals the one before it.
//
// # Description
//
// The previous generation is tracked explicitly; the loop stops as soon
// as Next returns the generation it was given. generations counts the
// steps that changed the pattern, so an input that is already a fixed
// point reports zero.
//
// # Inputs
//
//   - pattern: The 15-bit seed. Bits above bit 14 are ignored.
//
// # Outputs
//
//   - uint16: The fixed point reached.
//   - int: The number of generations that changed the pattern.
//
// # Limitations
//
//   - Stops after MaxGenerations steps even without a fixed point. The
//     returned pattern is then the last generation computed, not a fixed
//     point, and the count equals MaxGenerations. Every 15-bit seed
//     settles well before that bound.
func Converge(pattern uint16) (uint16, int) {
	current := AutomatonFromBits(pattern & Mask)
	generations := 0
	for generations < MaxGenerations {
		next := current.Next()
		if next == current {
			break
		}
		current = next
		generations++
	}
	return current.Bits(), generations
}
