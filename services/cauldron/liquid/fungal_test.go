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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHighestSetBit(t *testing.T) {
	tests := []struct {
		in   uint16
		want int
	}{
		{0, NoBit},
		{1, 0},
		{0b110, 2},
		{1 << 14, 14},
		{Mask, 14},
		// Bits above the low fifteen are ignored.
		{1 << 15, NoBit},
		{1<<15 | 1<<3, 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HighestSetBit(tt.in), "HighestSetBit(%016b)", tt.in)
	}
}

func TestWrap(t *testing.T) {
	assert.Equal(t, 14, Wrap(-1))
	assert.Equal(t, 13, Wrap(-2))
	assert.Equal(t, 0, Wrap(15))
	assert.Equal(t, 1, Wrap(16))
	assert.Equal(t, 0, Wrap(-15))
	assert.Equal(t, 7, Wrap(7))
	assert.Equal(t, 14, Wrap(-31))
}

func TestAutomaton_RoundTrip(t *testing.T) {
	for v := 0; v < StateCount; v++ {
		if got := AutomatonFromBits(uint16(v)).Bits(); got != uint16(v) {
			t.Fatalf("round trip of %d gave %d", v, got)
		}
	}
}

func TestAutomaton_CellWraps(t *testing.T) {
	a := AutomatonFromBits(1<<0 | 1<<14)
	assert.True(t, a.Cell(-1))
	assert.True(t, a.Cell(15))
	assert.False(t, a.Cell(-2))
}

func TestAutomaton_Next(t *testing.T) {
	tests := []struct {
		name string
		in   uint16
		want uint16
	}{
		{"empty stays empty", 0, 0},
		{"full stays full", Mask, Mask},
		{"lone cell survives", 1, 1},
		{"gap of one fills and outer cells drop", 0b101, 0b010},
		{"neighbours across the wrap", 1<<14 | 1<<1, 1 << 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AutomatonFromBits(tt.in).Next().Bits())
		})
	}
}

func TestAutomaton_NextDoesNotMutate(t *testing.T) {
	a := AutomatonFromBits(0b101)
	_ = a.Next()
	assert.Equal(t, uint16(0b101), a.Bits())
}

func TestConverge_Examples(t *testing.T) {
	got, gens := Converge(0b1010_0000)
	assert.Equal(t, uint16(64), got)
	assert.Equal(t, 1, gens)

	got, gens = Converge(0b111)
	assert.Equal(t, uint16(0b111), got)
	assert.Equal(t, 0, gens)
}

// TestConverge_AllSeedsSettle runs every 15-bit seed to its fixed point
// and checks the generation histogram.
func TestConverge_AllSeedsSettle(t *testing.T) {
	histogram := make(map[int]int)
	maxGens := 0
	for v := 0; v < StateCount; v++ {
		settled, gens := Converge(uint16(v))
		require.Less(t, gens, MaxGenerations, "seed %d did not settle", v)

		a := AutomatonFromBits(settled)
		if a.Next() != a {
			t.Fatalf("Converge(%d) = %d is not a fixed point", v, settled)
		}
		histogram[gens]++
		if gens > maxGens {
			maxGens = gens
		}
	}

	t.Logf("max generations: %d", maxGens)
	assert.Equal(t, 13, maxGens)
	assert.Equal(t, map[int]int{
		0: 4610, 1: 2348, 2: 4820, 3: 5930, 4: 5220, 5: 3360, 6: 2280,
		7: 1950, 8: 1095, 9: 585, 10: 345, 11: 195, 12: 15, 13: 15,
	}, histogram)

	_, gens := Converge(16383)
	assert.Equal(t, 13, gens)
}

func TestConverge_ResultIsFixedPoint(t *testing.T) {
	for v := 0; v < StateCount; v++ {
		result, gens := Converge(uint16(v))
		require.Less(t, gens, MaxGenerations, "seed %d hit the generation bound", v)
		a := AutomatonFromBits(result)
		if a.Next() != a {
			t.Fatalf("Converge(%d) = %015b is not a fixed point", v, result)
		}
	}
}
