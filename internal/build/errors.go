// SPDX-License-Identifier: MPL-2.0

package build

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BendyLand/MyJVM/pkg/types"
)

var (
	// ErrCompileFailed is wrapped by every CompileError.
	ErrCompileFailed = errors.New("compilation failed")
	// ErrUnknownExtension is returned when the project language has no
	// compile strategy. Nothing is compiled.
	ErrUnknownExtension = errors.New("unknown extension, no files compiled")
)

// CompileError reports a compiler run that exited nonzero or could not be
// launched. It is recoverable: the run stops before execution but the
// captured diagnostics are shown to the user.
//
//nolint:revive // CompileError reads better than Error at call sites
type CompileError struct {
	// Language is the language being compiled.
	Language types.Language
	// ExitCode is the compiler's exit status.
	ExitCode types.ExitCode
	// Output is the compiler's merged stdout and stderr.
	Output string
	// Err is set when the compiler could not be launched.
	Err error
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s compilation failed (exit code %d)", e.Language.DisplayName(), e.ExitCode)
	if e.Err != nil {
		fmt.Fprintf(&sb, ": %v", e.Err)
	}
	if out := strings.TrimSpace(e.Output); out != "" {
		sb.WriteString("\n")
		sb.WriteString(out)
	}
	return sb.String()
}

// Unwrap exposes ErrCompileFailed and the launch error, if any.
func (e *CompileError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrCompileFailed}
	}
	return []error{ErrCompileFailed, e.Err}
}
