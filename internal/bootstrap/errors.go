// SPDX-License-Identifier: MPL-2.0

package bootstrap

import (
	"errors"
	"fmt"
)

var (
	// ErrBootstrapFailed is wrapped by every BootstrapError.
	ErrBootstrapFailed = errors.New("runtime bootstrap failed")
	// ErrNoBundle is returned when the binary carries no embedded toolchain
	// bundle and no bundle file is configured.
	ErrNoBundle = errors.New("no toolchain bundle available")
	// ErrUnsafeEntry is returned for archive entries that would escape the
	// installation directory.
	ErrUnsafeEntry = errors.New("unsafe archive entry")
	// ErrEntryTooLarge is returned when an entry exceeds the per-entry size cap.
	ErrEntryTooLarge = errors.New("archive entry exceeds size limit")
)

// BootstrapError reports a failure to install the toolchains. It is fatal for
// the run: nothing can be compiled or executed without them.
//
//nolint:revive // BootstrapError reads better than Error at call sites
type BootstrapError struct {
	// Dir is the installation directory being populated.
	Dir string
	// Step names the failing step (open bundle, decompress, extract, permissions).
	Step string
	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *BootstrapError) Error() string {
	return fmt.Sprintf("runtime bootstrap failed (%s) at %s: %v", e.Step, e.Dir, e.Err)
}

// Unwrap exposes both ErrBootstrapFailed and the cause to errors.Is/As.
func (e *BootstrapError) Unwrap() []error {
	return []error{ErrBootstrapFailed, e.Err}
}
