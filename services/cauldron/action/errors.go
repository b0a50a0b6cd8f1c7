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
	"errors"
	"fmt"
)

// ErrUnknownCode indicates a byte that is not one of the eight codes.
var ErrUnknownCode = errors.New("unknown action code")

// UnknownCodeError carries the offending byte and, when parsing a
// string, its offset. Position is -1 for a standalone FromCode call.
type UnknownCodeError struct {
	Code     byte
	Position int
}

// Error implements the error interface.
func (e *UnknownCodeError) Error() string {
	if e.Position < 0 {
		return fmt.Sprintf("%s %q", ErrUnknownCode, e.Code)
	}
	return fmt.Sprintf("%s %q at offset %d", ErrUnknownCode, e.Code, e.Position)
}

// Unwrap returns ErrUnknownCode.
func (e *UnknownCodeError) Unwrap() error {
	return ErrUnknownCode
}
