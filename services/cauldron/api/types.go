// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package api

// StateResponse is returned by GET /v1/states/:state.
type StateResponse struct {
	// State is the numeric liquid value.
	State int `json:"state"`

	// Binary is the 15-digit binary form, bit 14 first.
	Binary string `json:"binary"`

	// Reached is true when the search found a path to State.
	Reached bool `json:"reached"`

	// Path is the shortest action code string, empty for the start state.
	Path string `json:"path"`

	// Length is the number of actions in Path.
	Length int `json:"length"`
}

// BrewRequest is the body of POST /v1/brew.
type BrewRequest struct {
	// From is the starting liquid. Defaults to water.
	From *int `json:"from,omitempty"`

	// Path is the action code string to apply, e.g. "WENF".
	Path string `json:"path"`
}

// BrewResponse is returned by POST /v1/brew.
type BrewResponse struct {
	From   int    `json:"from"`
	State  int    `json:"state"`
	Binary string `json:"binary"`

	// Trace lists the liquid after each action, starting with From.
	Trace []int `json:"trace"`
}

// SummaryResponse is returned by GET /v1/summary.
type SummaryResponse struct {
	Summary   string `json:"summary"`
	Reached   int    `json:"reached"`
	Unreached int    `json:"unreached"`
	MaxLength int    `json:"max_length"`
	Depths    []int  `json:"depths"`
}

// ErrorResponse is the body of every 4xx and 5xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// Error codes carried in ErrorResponse.Code.
const (
	CodeInvalidState   = "INVALID_STATE"
	CodeInvalidPath    = "INVALID_PATH"
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeUnreached      = "STATE_UNREACHED"
)
