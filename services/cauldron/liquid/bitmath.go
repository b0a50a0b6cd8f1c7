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

import "math/bits"

const (
	// Width is the number of significant bits in a liquid value.
	Width = 15

	// Mask keeps the low Width bits.
	Mask uint16 = 1<<Width - 1

	// NoBit is returned by HighestSetBit for a zero value.
	NoBit = -1
)

// HighestSetBit returns the position of the highest set bit of v within
// the low 15 bits, or NoBit when none is set.
func HighestSetBit(v uint16) int {
	v &= Mask
	return 15 - bits.LeadingZeros16(v)
}

// Wrap maps any integer index onto [0, Width).
//
// Negative indices wrap the same way positive ones do, so Wrap(-1) is 14
// and Wrap(15) is 0.
func Wrap(i int) int {
	r := i % Width
	if r < 0 {
		r += Width
	}
	return r
}
