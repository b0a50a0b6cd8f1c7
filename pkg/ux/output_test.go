// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package ux

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// capture redirects output for one test at the given level.
func capture(t *testing.T, level PersonalityLevel) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	prev := GetPersonality()
	var out, errOut bytes.Buffer
	SetOutput(&out, &errOut)
	SetPersonality(level)
	t.Cleanup(func() {
		SetOutput(os.Stdout, os.Stderr)
		SetPersonality(prev)
	})
	return &out, &errOut
}

func TestMachineMode(t *testing.T) {
	out, errOut := capture(t, PersonalityMachine)

	Title("Cauldron")
	Muted("flavor text")
	Success("wrote results.txt")
	Info("found 5624 solutions, at most 25 long")
	Warning("store disabled")
	Error("cannot write")
	Box("summary", "reached 5624\nlongest 25")

	assert.Equal(t,
		"OK: wrote results.txt\n"+
			"found 5624 solutions, at most 25 long\n"+
			"summary: reached 5624\n"+
			"summary: longest 25\n",
		out.String())
	assert.Equal(t, "WARN: store disabled\nERROR: cannot write\n", errOut.String())
}

func TestMinimalMode(t *testing.T) {
	out, errOut := capture(t, PersonalityMinimal)

	Success("done")
	Error("bad")

	assert.Equal(t, "✓ done\n", out.String())
	assert.Equal(t, "✗ bad\n", errOut.String())
}

func TestStandardMode(t *testing.T) {
	out, _ := capture(t, PersonalityStandard)

	Title("Cauldron")
	Box("Search complete", "found 5624 solutions")

	assert.Contains(t, out.String(), "Cauldron")
	assert.Contains(t, out.String(), "Search complete")
	assert.Contains(t, out.String(), "found 5624 solutions")
	assert.Contains(t, out.String(), "╭")
}

func TestKeyValues(t *testing.T) {
	out, _ := capture(t, PersonalityMachine)
	KeyValues([][2]string{{"state", "01088"}, {"binary", "000010001000000"}})
	assert.Equal(t, "state=01088\nbinary=000010001000000\n", out.String())

	out, _ = capture(t, PersonalityMinimal)
	KeyValues([][2]string{{"a", "1"}, {"long", "2"}})
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "1")
}

func TestHistogram(t *testing.T) {
	out, _ := capture(t, PersonalityMachine)
	Histogram([]string{"0", "1", "13"}, []int{4610, 2348, 15}, 40)
	assert.Equal(t, "0 4610\n1 2348\n13 15\n", out.String())

	out, _ = capture(t, PersonalityStandard)
	Histogram([]string{"0", "13"}, []int{4610, 15}, 40)
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, 40, strings.Count(lines[0], "█"))
	assert.Equal(t, 1, strings.Count(lines[1], "█"))
}

func TestIcon_Render(t *testing.T) {
	assert.Contains(t, IconSuccess.Render(), "✓")
	assert.Equal(t, "•", IconBullet.Render())
}
