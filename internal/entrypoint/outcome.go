// SPDX-License-Identifier: MPL-2.0

package entrypoint

import (
	"errors"

	"github.com/BendyLand/MyJVM/internal/process"
	"github.com/BendyLand/MyJVM/pkg/types"
)

const (
	// StateSuccess means a class ran and exited 0.
	StateSuccess State = "success"
	// StateNoEntryFound means every candidate failed. It is a normal outcome.
	StateNoEntryFound State = "no_entry_found"
	// StateEntryFailed means the explicitly named class could not run.
	StateEntryFailed State = "entry_failed"
)

var (
	// ErrEntryPointFailed reports that the named entry point could not run.
	ErrEntryPointFailed = errors.New("unable to run provided entrypoint")
	// ErrNoEntryPoint reports that no candidate ran successfully.
	ErrNoEntryPoint = errors.New("no valid entrypoints detected")
)

type (
	// State is the terminal state of a run.
	State string

	// Attempt records one launch of a candidate. A failed attempt is data,
	// not an error.
	Attempt struct {
		// Class is the class that was launched; empty for a jar launch.
		Class string
		// Command is the exact invocation.
		Command process.CommandSpec
		// Result is what the runner returned.
		Result process.Result
	}

	// Outcome is the result of Resolver.Run.
	Outcome struct {
		// State is the terminal state.
		State State
		// Class is the class that succeeded, or the named class that failed.
		Class string
		// Result is the successful run's result, or the last failed one.
		Result process.Result
		// Attempts lists every launch in order.
		Attempts []Attempt
		// Err is ErrEntryPointFailed or ErrNoEntryPoint for the failure states.
		Err error
	}
)

// String returns the state name.
func (s State) String() string { return string(s) }

// Success reports whether a class ran successfully.
func (o Outcome) Success() bool { return o.State == StateSuccess }

// Output returns the captured output of the reported run.
func (o Outcome) Output() string { return o.Result.Output }

// ExitCode is the status the CLI should exit with: the child's status for a
// named entry that failed, otherwise 0 for success and 1 for anything else.
func (o Outcome) ExitCode() types.ExitCode {
	switch o.State {
	case StateSuccess:
		return types.ExitSuccess
	case StateEntryFailed:
		if code := o.Result.ExitCode.Normalize(); !code.IsSuccess() {
			return code
		}
		return types.ExitFailure
	case StateNoEntryFound:
		return types.ExitFailure
	}
	return types.ExitFailure
}
