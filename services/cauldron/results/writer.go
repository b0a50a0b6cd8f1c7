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
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/AleutianAI/cauldron/services/cauldron/action"
	"github.com/AleutianAI/cauldron/services/cauldron/liquid"
	"github.com/AleutianAI/cauldron/services/cauldron/solver"
)

// DefaultFileName is the artifact name used when none is configured.
const DefaultFileName = "results.txt"

// Write emits one line per reached state of t to w, ascending.
func Write(w io.Writer, t *solver.Table) error {
	var werr error
	t.Each(func(d liquid.Data, p action.Path) {
		if werr != nil {
			return
		}
		_, werr = fmt.Fprintf(w, "%s, %s\n", d, action.Render(p))
	})
	if werr != nil {
		return fmt.Errorf("write results: %w", werr)
	}
	return nil
}

// WriteFile writes the artifact for t to path.
//
// # Description
//
// Parent directories are created as needed. The file is truncated,
// written through a buffer, flushed, synced and closed. Any failure
// along the way is returned; a partially written file may remain.
//
// # Inputs
//
//   - path: Destination file. Empty means DefaultFileName in the working
//     directory.
//   - t: A finished table.
func WriteFile(path string, t *solver.Table) (err error) {
	if path == "" {
		path = DefaultFileName
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create results directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create results file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close results file: %w", cerr)
		}
	}()

	bw := bufio.NewWriter(f)
	if err := Write(bw, t); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush results file: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("sync results file: %w", err)
	}
	return nil
}
