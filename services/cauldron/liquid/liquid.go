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

import (
	"fmt"
	"strconv"
)

const (
	// Water is plain water, the all-zero starting state.
	Water Data = 0

	// MaxData is the largest valid liquid value.
	MaxData Data = Data(Mask)

	// StateCount is the number of distinct liquid values.
	StateCount = int(Mask) + 1
)

// diluteMask holds the bits that Dilute clears.
const diluteMask uint16 = 1<<1 | 1<<3 | 1<<5 | 1<<7 | 1<<9 | 1<<11 | 1<<13

// Data is the 15-bit liquid value of a cauldron.
//
// Data is immutable: every transition returns a new value.
type Data uint16

// Valid reports whether d fits in 15 bits.
func (d Data) Valid() bool {
	return uint16(d)&^Mask == 0
}

// ApplyIngredient sets every bit listed for ingredient.
func (d Data) ApplyIngredient(ingredient Ingredient) Data {
	return Data((uint16(d) | ingredient.mask()) & Mask)
}

// Dilute clears bits 1, 3, 5, 7, 9, 11 and 13.
func (d Data) Dilute() Data {
	return Data(uint16(d) &^ diluteMask & Mask)
}

// ApplyCatalyst runs both catalyst stages.
func (d Data) ApplyCatalyst() Data {
	return d.CatalystShift().CatalystSettle()
}

// CatalystShift is the first catalyst stage.
//
// # Description
//
// Applies only when bit 0 is set and the top of the value reads "10",
// that is the highest set bit P is at least 2 and bit P-1 is clear. In
// that case bit P is cleared, the value is shifted left by one and bits
// P-1 and P are set. Otherwise the value is returned unchanged.
func (d Data) CatalystShift() Data {
	v := uint16(d) & Mask
	if v&1 == 0 {
		return Data(v)
	}
	top := HighestSetBit(v)
	if top < 2 || v&(1<<(top-1)) != 0 {
		return Data(v)
	}
	v &^= 1 << top
	v <<= 1
	v |= 0b11 << (top - 1)
	return Data(v & Mask)
}

// CatalystSettle is the second catalyst stage.
//
// # Description
//
// The highest set bit is held aside and the remaining bits seed the
// automaton, which is run to its fixed point by Converge. The held bit
// is then restored. A zero value has no held bit and settles to zero.
func (d Data) CatalystSettle() Data {
	v := uint16(d) & Mask
	top := HighestSetBit(v)
	residual := v
	if top != NoBit {
		residual &^= 1 << top
	}
	settled, _ := Converge(residual)
	if top != NoBit {
		settled |= 1 << top
	}
	return Data(settled & Mask)
}

// Has reports whether bit is set.
func (d Data) Has(bit int) bool {
	if bit < 0 || bit >= Width {
		return false
	}
	return uint16(d)&(1<<bit) != 0
}

// Binary renders the value as 15 binary digits, bit 14 first.
func (d Data) Binary() string {
	return fmt.Sprintf("%015b", uint16(d)&Mask)
}

// String renders the value the way result files do, e.g. "01088".
func (d Data) String() string {
	return fmt.Sprintf("%05d", uint16(d))
}

// ParseData parses a decimal state value and checks its range.
func ParseData(s string) (Data, error) {
	n, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("parse liquid data %q: %w", s, err)
	}
	d := Data(n)
	if !d.Valid() {
		return 0, &OutOfRangeError{Value: int(n)}
	}
	return d, nil
}

// OutOfRangeError is returned when a value does not fit in 15 bits.
type OutOfRangeError struct {
	Value int
}

// Error implements the error interface.
func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("liquid data %d out of range [0, %d]", e.Value, MaxData)
}
