// SPDX-License-Identifier: MPL-2.0

package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/BendyLand/MyJVM/pkg/types"

	"github.com/charmbracelet/log"
)

type (
	// Result is the outcome of one external invocation.
	Result struct {
		// ExitCode is the child's exit status. It is ExitFailure when the child
		// could not be launched.
		ExitCode types.ExitCode
		// Output is stdout and stderr merged in arrival order.
		Output string
		// Err is set only when the child could not be launched or waited on.
		// A nonzero exit status is not an error.
		Err error
	}

	// Runner executes a CommandSpec and blocks until the child exits.
	Runner interface {
		Run(ctx context.Context, cmd CommandSpec) Result
	}

	// ExecRunner runs commands with os/exec, capturing merged output.
	ExecRunner struct {
		// Logger receives the command line at debug level. Nil disables logging.
		Logger *log.Logger
		// Echo, when set, receives a copy of the merged output as it is produced.
		Echo io.Writer
	}
)

// Success reports whether the child ran and exited with status 0.
func (r Result) Success() bool {
	return r.Err == nil && r.ExitCode.IsSuccess()
}

// NewExecRunner creates an ExecRunner that logs command lines to logger.
func NewExecRunner(logger *log.Logger) *ExecRunner {
	return &ExecRunner{Logger: logger}
}

// Run launches cmd and waits for it to finish. The context is consulted only
// before launch; a running child is never interrupted.
func (r *ExecRunner) Run(ctx context.Context, cmd CommandSpec) Result {
	if err := ctx.Err(); err != nil {
		return Result{ExitCode: types.ExitFailure, Err: fmt.Errorf("command not started: %w", err)}
	}
	if r.Logger != nil {
		r.Logger.Debug("exec", "cmd", cmd.String(), "dir", cmd.Dir)
	}

	c := exec.Command(cmd.Path, cmd.Args...) //nolint:gosec // argv built from the toolchain descriptor
	c.Dir = cmd.Dir
	c.Env = mergeEnv(cmd.Env)

	var merged bytes.Buffer
	var out io.Writer = &merged
	if r.Echo != nil {
		out = io.MultiWriter(&merged, r.Echo)
	}
	// Same writer for both streams: os/exec serializes the writes.
	c.Stdout = out
	c.Stderr = out

	return resultFrom(c.Run(), merged.String())
}

// resultFrom converts the error returned by exec.Cmd.Run/Wait into a Result.
func resultFrom(err error, output string) Result {
	res := Result{Output: output}
	if err == nil {
		return res
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// The child ran; a nonzero (or signal, reported as -1) status is data.
		res.ExitCode = types.ExitCode(exitErr.ExitCode()).Normalize()
		return res
	}

	res.ExitCode = types.ExitFailure
	res.Err = fmt.Errorf("failed to execute command: %w", err)
	return res
}

// mergeEnv returns nil (inherit) when there is nothing to add, otherwise the
// parent environment followed by extra, so extra wins on duplicate keys.
func mergeEnv(extra []string) []string {
	if len(extra) == 0 {
		return nil
	}
	env := os.Environ()
	return append(env, extra...)
}
