// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/cauldron/services/cauldron/liquid"
)

func TestScanConvergence(t *testing.T) {
	report, err := ScanConvergence(context.Background(), 4)
	require.NoError(t, err)

	assert.Equal(t, liquid.StateCount, report.Seeds)
	assert.Equal(t, 13, report.MaxGenerations)
	assert.Equal(t, 4610, report.FixedPoints)
	assert.Equal(t, map[int]int{
		0: 4610, 1: 2348, 2: 4820, 3: 5930, 4: 5220, 5: 3360, 6: 2280,
		7: 1950, 8: 1095, 9: 585, 10: 345, 11: 195, 12: 15, 13: 15,
	}, report.Histogram)

	// The slowest seeds are the full ring with exactly one cell cleared.
	require.Len(t, report.Slowest, liquid.Width)
	for i, seed := range report.Slowest {
		if i > 0 {
			assert.Less(t, report.Slowest[i-1], seed)
		}
		assert.Equal(t, liquid.Width-1, popcount(seed), "seed %015b", seed)
	}
	assert.Equal(t, uint16(16383), report.Slowest[0])
}

func TestScanConvergence_WorkerCountIndependent(t *testing.T) {
	one, err := ScanConvergence(context.Background(), 1)
	require.NoError(t, err)
	many, err := ScanConvergence(context.Background(), 0)
	require.NoError(t, err)

	assert.Equal(t, one, many)
}

func TestScanConvergence_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := ScanConvergence(ctx, 2)
	assert.Nil(t, report)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConvergenceReport_Generations(t *testing.T) {
	r := &ConvergenceReport{Histogram: map[int]int{3: 1, 0: 2, 13: 1}}
	assert.Equal(t, []int{0, 3, 13}, r.Generations())
}

func popcount(v uint16) int {
	n := 0
	for ; v != 0; v &= v - 1 {
		n++
	}
	return n
}
