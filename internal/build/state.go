// SPDX-License-Identifier: MPL-2.0

package build

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// State is the externally observable build state of a project.
type State struct {
	// ArchivePath is the packaged artifact doubling as the build marker.
	ArchivePath string
	// MarkerPresent is true when ArchivePath exists as a regular file.
	MarkerPresent bool
	// Force requests recompilation regardless of the marker.
	Force bool
}

// Observe reads the marker state for archivePath.
func Observe(archivePath string, force bool) State {
	info, err := os.Stat(archivePath)
	return State{
		ArchivePath:   archivePath,
		MarkerPresent: err == nil && info.Mode().IsRegular(),
		Force:         force,
	}
}

// NeedsCompile reports whether the discover and compile stages must run.
func (s State) NeedsCompile() bool {
	return s.Force || !s.MarkerPresent
}

// String describes the state for logs.
func (s State) String() string {
	switch {
	case s.Force:
		return "forced"
	case s.MarkerPresent:
		return "compiled"
	default:
		return "not compiled"
	}
}

// Clean removes the output directory and everything in it. A missing
// directory is not an error.
func Clean(outputDir string) error {
	if outputDir == "" {
		return errors.New("refusing to clean an empty output path")
	}
	abs, err := filepath.Abs(outputDir)
	if err != nil {
		return fmt.Errorf("failed to resolve output directory: %w", err)
	}
	if abs == filepath.Dir(abs) {
		return fmt.Errorf("refusing to clean filesystem root %s", abs)
	}
	if err := os.RemoveAll(abs); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to clean %s: %w", abs, err)
	}
	return nil
}
