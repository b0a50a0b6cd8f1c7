// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package action

import (
	"strings"
	"unicode"

	"github.com/AleutianAI/cauldron/services/cauldron/liquid"
)

// Path is an ordered sequence of actions applied from some start state.
type Path []Action

// Render writes p as a string of action codes. An empty path renders
// as the empty string.
func Render(p Path) string {
	var sb strings.Builder
	sb.Grow(len(p))
	for _, a := range p {
		sb.WriteByte(a.Code())
	}
	return sb.String()
}

// Parse is the inverse of Render.
//
// # Description
//
// Codes are matched case-insensitively and whitespace anywhere in s is
// skipped, so "se n" parses the same as "SEN".
//
// # Outputs
//
//   - Path: The parsed actions. Never nil on success, even for "".
//   - error: An *UnknownCodeError naming the offending byte and its
//     offset in s. It unwraps to ErrUnknownCode.
func Parse(s string) (Path, error) {
	p := make(Path, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 0x80 && unicode.IsSpace(rune(c)) {
			continue
		}
		a, err := FromCode(c)
		if err != nil {
			return nil, &UnknownCodeError{Code: c, Position: i}
		}
		p = append(p, a)
	}
	return p, nil
}

// Apply folds every action of p over start.
func (p Path) Apply(start liquid.Data) liquid.Data {
	d := start
	for _, a := range p {
		d = a.Apply(d)
	}
	return d
}

// Trace returns the state after each action. The result has len(p)+1
// entries; the first is start.
func (p Path) Trace(start liquid.Data) []liquid.Data {
	out := make([]liquid.Data, 0, len(p)+1)
	out = append(out, start)
	d := start
	for _, a := range p {
		d = a.Apply(d)
		out = append(out, d)
	}
	return out
}

// Extend returns a new path with a appended. p is not modified, and the
// result never shares a backing array with p.
func (p Path) Extend(a Action) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, a)
}

// String renders p with Render.
func (p Path) String() string {
	return Render(p)
}
