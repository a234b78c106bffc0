// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"errors"
	"fmt"
)

var (
	// ErrPackagingFailed is wrapped by every PackagingError.
	ErrPackagingFailed = errors.New("packaging failed")
	// ErrUnsafeEntry is returned for archive entries or class files that
	// resolve outside the output directory.
	ErrUnsafeEntry = errors.New("path escapes output directory")
	// ErrEntryTooLarge is returned when a runtime archive entry exceeds
	// MaxEntryBytes.
	ErrEntryTooLarge = errors.New("archive entry exceeds size limit")
)

// PackagingError reports a failure to build or read an archive. It aborts the
// current compile attempt but not the process.
//
//nolint:revive // PackagingError reads better than Error at call sites
type PackagingError struct {
	// Op names the failing operation (package, merge, list).
	Op string
	// Path is the archive or file concerned.
	Path string
	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *PackagingError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap exposes both ErrPackagingFailed and the cause to errors.Is/As.
func (e *PackagingError) Unwrap() []error {
	return []error{ErrPackagingFailed, e.Err}
}
