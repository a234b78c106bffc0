// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSources is returned when a project contains no Java, Kotlin or
	// Scala sources.
	ErrNoSources = errors.New("no recognizable source files")
	// ErrProjectNotFound is returned when the project root does not exist or
	// is not a directory.
	ErrProjectNotFound = errors.New("project directory not found")
)

// DiscoveryError reports a project whose language could not be determined.
// It is not fatal: callers report it and stop the run without compiling.
//
//nolint:revive // DiscoveryError reads better than Error at call sites
type DiscoveryError struct {
	// Root is the scanned project directory.
	Root string
	// Err is ErrNoSources or ErrProjectNotFound, possibly wrapping a cause.
	Err error
}

// Error implements the error interface.
func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("discovery failed for %s: %v", e.Root, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As.
func (e *DiscoveryError) Unwrap() error { return e.Err }
