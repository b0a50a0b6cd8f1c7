// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package solver

import "errors"

var (
	// ErrCancelled is returned by Run when its context ends before the
	// frontier is exhausted. The context's own error is wrapped too.
	ErrCancelled = errors.New("search cancelled")

	// ErrNoActions is returned by Run when the solver has no actions.
	ErrNoActions = errors.New("no actions configured")

	// ErrInvalidStart is returned by Run when the start state is not a
	// 15-bit value.
	ErrInvalidStart = errors.New("start state out of range")
)
