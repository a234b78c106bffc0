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
	"syscall"

	"github.com/BendyLand/MyJVM/pkg/types"

	"github.com/charmbracelet/log"
	"github.com/creack/pty"
)

// PTYRunner runs commands attached to a pseudo-terminal so that programs which
// probe for a TTY (line-buffered stdout, colored output, prompts) behave as
// they would in a terminal. Both streams share the PTY, so the captured output
// is merged by construction.
//
// On platforms where creack/pty cannot allocate a terminal, PTYRunner falls
// back to Fallback.
type PTYRunner struct {
	Logger   *log.Logger
	Echo     io.Writer
	Fallback Runner
}

// NewPTYRunner creates a PTYRunner that falls back to an ExecRunner.
func NewPTYRunner(logger *log.Logger) *PTYRunner {
	return &PTYRunner{Logger: logger, Fallback: NewExecRunner(logger)}
}

// Run launches cmd on a fresh PTY and waits for it to exit.
func (r *PTYRunner) Run(ctx context.Context, cmd CommandSpec) Result {
	if err := ctx.Err(); err != nil {
		return Result{ExitCode: types.ExitFailure, Err: fmt.Errorf("command not started: %w", err)}
	}
	if r.Logger != nil {
		r.Logger.Debug("exec (pty)", "cmd", cmd.String(), "dir", cmd.Dir)
	}

	c := exec.Command(cmd.Path, cmd.Args...) //nolint:gosec // argv built from the toolchain descriptor
	c.Dir = cmd.Dir
	c.Env = mergeEnv(cmd.Env)

	ptmx, err := pty.Start(c)
	if err != nil {
		if errors.Is(err, pty.ErrUnsupported) && r.Fallback != nil {
			return r.Fallback.Run(ctx, cmd)
		}
		return resultFrom(err, "")
	}
	defer func() { _ = ptmx.Close() }() // master side; close errors are not actionable

	var merged bytes.Buffer
	var out io.Writer = &merged
	if r.Echo != nil {
		out = io.MultiWriter(&merged, r.Echo)
	}
	copyErr := drainPTY(out, ptmx)
	waitErr := c.Wait()

	res := resultFrom(waitErr, normalizeNewlines(merged.Bytes()))
	if res.Err == nil && copyErr != nil {
		res.Err = fmt.Errorf("failed to read terminal output: %w", copyErr)
	}
	return res
}

// drainPTY copies from the PTY master until the child side is closed. Linux
// reports the closed slave as EIO rather than EOF.
func drainPTY(dst io.Writer, ptmx *os.File) error {
	_, err := io.Copy(dst, ptmx)
	if err == nil || errors.Is(err, syscall.EIO) || errors.Is(err, os.ErrClosed) {
		return nil
	}
	return err
}

// normalizeNewlines undoes the terminal's ONLCR translation.
func normalizeNewlines(b []byte) string {
	return string(bytes.ReplaceAll(b, []byte("\r\n"), []byte("\n")))
}
