// SPDX-License-Identifier: MPL-2.0

package orchestrate

import (
	"errors"
	"fmt"
	"slices"
)

const (
	// StageNotCompiled is the initial stage of a project without a build marker.
	StageNotCompiled Stage = "not_compiled"
	// StageCompiled means the compiler succeeded.
	StageCompiled Stage = "compiled"
	// StagePackaged means the archive is in place and ready to run.
	StagePackaged Stage = "packaged"
	// StageRan means an entry point was attempted. The Outcome says how it went.
	StageRan Stage = "ran"
)

// ErrInvalidTransition is the sentinel error wrapped by InvalidTransitionError.
var ErrInvalidTransition = errors.New("invalid pipeline transition")

type (
	// Stage is a state of the per-invocation build state machine.
	Stage string

	// InvalidTransitionError is returned when the pipeline attempts a step out
	// of order, such as running an archive that was never packaged.
	InvalidTransitionError struct {
		From Stage
		To   Stage
	}

	// tracker records the stages a run passes through.
	tracker struct {
		history []Stage
	}
)

var transitions = map[Stage][]Stage{
	StageNotCompiled: {StageCompiled},
	StageCompiled:    {StagePackaged},
	StagePackaged:    {StageRan},
}

// Error implements the error interface.
func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid pipeline transition %s -> %s", e.From, e.To)
}

// Unwrap returns ErrInvalidTransition for errors.Is() compatibility.
func (e *InvalidTransitionError) Unwrap() error { return ErrInvalidTransition }

// CanTransition reports whether the state machine allows from -> to.
func CanTransition(from, to Stage) bool {
	return slices.Contains(transitions[from], to)
}

func newTracker(initial Stage) *tracker {
	return &tracker{history: []Stage{initial}}
}

func (t *tracker) current() Stage {
	return t.history[len(t.history)-1]
}

func (t *tracker) advance(to Stage) error {
	if from := t.current(); !CanTransition(from, to) {
		return &InvalidTransitionError{From: from, To: to}
	}
	t.history = append(t.history, to)
	return nil
}

func (t *tracker) stages() []Stage {
	return slices.Clone(t.history)
}
