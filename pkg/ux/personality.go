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
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
)

// PersonalityLevel controls how much styling console output carries.
type PersonalityLevel string

const (
	// PersonalityFull enables colors, icons, boxes and flavor text.
	PersonalityFull PersonalityLevel = "full"

	// PersonalityStandard enables colors, icons and boxes.
	PersonalityStandard PersonalityLevel = "standard"

	// PersonalityMinimal uses icons and plain text only.
	PersonalityMinimal PersonalityLevel = "minimal"

	// PersonalityMachine prints unstyled, line-oriented text for scripts.
	PersonalityMachine PersonalityLevel = "machine"
)

// PersonalityEnv overrides the detected level when set.
const PersonalityEnv = "CAULDRON_PERSONALITY"

var (
	currentLevel  = PersonalityStandard
	personalityMu sync.RWMutex
)

// GetPersonality returns the active level.
func GetPersonality() PersonalityLevel {
	personalityMu.RLock()
	defer personalityMu.RUnlock()
	return currentLevel
}

// SetPersonality replaces the active level.
func SetPersonality(level PersonalityLevel) {
	personalityMu.Lock()
	defer personalityMu.Unlock()
	currentLevel = level
}

// ParsePersonalityLevel maps user input to a level. Unknown input falls
// back to standard.
func ParsePersonalityLevel(s string) PersonalityLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "full", "f":
		return PersonalityFull
	case "minimal", "min", "m":
		return PersonalityMinimal
	case "machine", "quiet", "q":
		return PersonalityMachine
	default:
		return PersonalityStandard
	}
}

// InitPersonality picks the level at startup. Precedence: explicit flag
// value, then CAULDRON_PERSONALITY, then machine when stdout is not a
// terminal, then full.
func InitPersonality(flagValue string) PersonalityLevel {
	level := PersonalityFull
	switch {
	case flagValue != "":
		level = ParsePersonalityLevel(flagValue)
	case os.Getenv(PersonalityEnv) != "":
		level = ParsePersonalityLevel(os.Getenv(PersonalityEnv))
	case !isTerminal(os.Stdout.Fd()):
		level = PersonalityMachine
	}
	SetPersonality(level)
	return level
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// IsMachine reports whether output should be unstyled.
func IsMachine() bool {
	return GetPersonality() == PersonalityMachine
}
