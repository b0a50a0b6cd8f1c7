// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package results

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AleutianAI/cauldron/services/cauldron/action"
	"github.com/AleutianAI/cauldron/services/cauldron/liquid"
)

// ErrMalformed is wrapped by every ParseError.
var ErrMalformed = errors.New("malformed results line")

// ParseError reports the 1-based line of an artifact that could not be
// parsed.
type ParseError struct {
	Line   int
	Reason string
	Err    error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("line %d: %s: %v", e.Line, e.Reason, e.Err)
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

// Unwrap returns both ErrMalformed and the underlying cause, if any.
func (e *ParseError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrMalformed, e.Err}
	}
	return []error{ErrMalformed}
}

// Read parses an artifact written by Write.
//
// # Description
//
// Blank lines are skipped. Every other line must hold a state, a comma
// and a code string. Lines must be strictly ascending by state and each
// state may appear only once.
//
// # Outputs
//
//   - map[liquid.Data]action.Path: Path per listed state.
//   - error: A *ParseError for malformed content, or the reader's error.
func Read(r io.Reader) (map[liquid.Data]action.Path, error) {
	out := make(map[liquid.Data]action.Path)
	scanner := bufio.NewScanner(r)
	lineNo := 0
	last := -1

	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		stateText, codes, found := strings.Cut(line, ",")
		if !found {
			return nil, &ParseError{Line: lineNo, Reason: "missing comma"}
		}
		d, err := liquid.ParseData(strings.TrimSpace(stateText))
		if err != nil {
			return nil, &ParseError{Line: lineNo, Reason: "bad state", Err: err}
		}
		if int(d) <= last {
			return nil, &ParseError{Line: lineNo, Reason: fmt.Sprintf("state %s out of order", d)}
		}
		p, err := action.Parse(codes)
		if err != nil {
			return nil, &ParseError{Line: lineNo, Reason: "bad path", Err: err}
		}

		out[d] = p
		last = int(d)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read results: %w", err)
	}
	return out, nil
}

// ReadFile opens path and parses it with Read.
func ReadFile(path string) (map[liquid.Data]action.Path, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open results file: %w", err)
	}
	defer f.Close()
	return Read(f)
}
