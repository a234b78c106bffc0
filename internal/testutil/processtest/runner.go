// SPDX-License-Identifier: MPL-2.0

package processtest

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/BendyLand/MyJVM/internal/process"
	"github.com/BendyLand/MyJVM/pkg/types"
)

// ErrNotFound is the launch error returned by NotFound.
var ErrNotFound = errors.New("executable file not found")

type (
	// Handler decides the result of one invocation. It may create files to
	// simulate a compiler's side effects.
	Handler func(cmd process.CommandSpec) process.Result

	// Runner records every CommandSpec it receives and answers with Handler.
	Runner struct {
		handler Handler

		mu    sync.Mutex
		calls []process.CommandSpec
	}
)

// NewRunner returns a Runner answering with h. A nil handler makes every
// command succeed with no output.
func NewRunner(h Handler) *Runner {
	if h == nil {
		h = func(process.CommandSpec) process.Result { return Exit(0, "") }
	}
	return &Runner{handler: h}
}

// Run implements process.Runner.
func (r *Runner) Run(ctx context.Context, cmd process.CommandSpec) process.Result {
	if err := ctx.Err(); err != nil {
		return process.Result{ExitCode: types.ExitFailure, Err: err}
	}
	r.mu.Lock()
	r.calls = append(r.calls, cmd)
	r.mu.Unlock()
	return r.handler(cmd)
}

// Calls returns the commands received so far, in order.
func (r *Runner) Calls() []process.CommandSpec {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.calls)
}

// Argvs returns the full argument vector of every call.
func (r *Runner) Argvs() [][]string {
	calls := r.Calls()
	argvs := make([][]string, len(calls))
	for i, c := range calls {
		argvs[i] = c.Argv()
	}
	return argvs
}

// Exit returns a result for a child that ran and exited with code.
func Exit(code int, output string) process.Result {
	return process.Result{ExitCode: types.ExitCode(code), Output: output}
}

// NotFound returns a result for a child that could not be launched.
func NotFound() process.Result {
	return process.Result{ExitCode: types.ExitFailure, Err: ErrNotFound}
}

// LastArg returns the final argument of cmd, or "" when it has none.
func LastArg(cmd process.CommandSpec) string {
	if len(cmd.Args) == 0 {
		return ""
	}
	return cmd.Args[len(cmd.Args)-1]
}
