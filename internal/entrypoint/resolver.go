// SPDX-License-Identifier: MPL-2.0

package entrypoint

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"slices"

	"github.com/BendyLand/MyJVM/internal/archive"
	"github.com/BendyLand/MyJVM/internal/process"
	"github.com/BendyLand/MyJVM/internal/toolchain"
	"github.com/BendyLand/MyJVM/pkg/types"

	"github.com/charmbracelet/log"
)

// Resolver builds run commands against one packaged archive and executes
// them through a process.Runner.
type Resolver struct {
	toolchain   *toolchain.Descriptor
	archivePath string
	runner      process.Runner
	logger      *log.Logger
	jvmOptions  []string
	dir         string
}

// NewResolver creates a Resolver for archivePath. A nil logger discards
// messages.
func NewResolver(tc *toolchain.Descriptor, archivePath string, runner process.Runner, logger *log.Logger) *Resolver {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Resolver{toolchain: tc, archivePath: archivePath, runner: runner, logger: logger}
}

// WithJVMOptions sets extra JVM options placed before the classpath.
func (r *Resolver) WithJVMOptions(opts []string) *Resolver {
	r.jvmOptions = slices.Clone(opts)
	return r
}

// WithDir sets the working directory of launched programs.
func (r *Resolver) WithDir(dir string) *Resolver {
	r.dir = dir
	return r
}

// ArchivePath returns the archive this resolver runs.
func (r *Resolver) ArchivePath() string { return r.archivePath }

// Candidates lists the archive's classes and filters them for lang.
func (r *Resolver) Candidates(lang types.Language) ([]string, error) {
	names, err := archive.ListClassNames(r.archivePath)
	if err != nil {
		return nil, err
	}
	return Filter(names, lang), nil
}

// Command returns the invocation that runs class name for lang. Kotlin
// archives are launched as executable jars and ignore name.
func (r *Resolver) Command(name string, lang types.Language) process.CommandSpec {
	cmd := process.NewCommand(r.toolchain.Java(), r.jvmOptions...).WithDir(r.dir)
	switch lang {
	case types.LanguageKotlin:
		return cmd.WithArgs("-jar", r.archivePath)
	case types.LanguageScala:
		classpath := r.toolchain.ScalaClasspath() + string(filepath.ListSeparator) + r.archivePath
		return cmd.WithArgs(toolchain.ScalaJavaCPProperty, "-cp", classpath, name)
	default:
		return cmd.WithArgs("-cp", r.archivePath, name)
	}
}

// Run executes the named class once, or trial-runs the candidates when name
// is empty. The error is reserved for an unreadable archive; failed launches
// are reported through the Outcome.
func (r *Resolver) Run(ctx context.Context, name string, lang types.Language) (Outcome, error) {
	if name != "" || lang == types.LanguageKotlin {
		return r.runNamed(ctx, name, lang), nil
	}

	candidates, err := r.Candidates(lang)
	if err != nil {
		return Outcome{}, err
	}
	return r.trial(ctx, candidates, lang), nil
}

func (r *Resolver) runNamed(ctx context.Context, name string, lang types.Language) Outcome {
	attempt := r.attempt(ctx, name, lang)
	out := Outcome{Class: name, Result: attempt.Result, Attempts: []Attempt{attempt}}
	if attempt.Result.Success() {
		out.State = StateSuccess
		return out
	}

	if lang == types.LanguageKotlin && name == "" {
		// Kotlin has a single entry, the jar itself, so its failure ends the
		// trial run.
		out.State = StateNoEntryFound
		out.Err = ErrNoEntryPoint
		r.logger.Warn("No valid entrypoints detected.", "tried", 1)
		return out
	}
	out.State = StateEntryFailed
	out.Err = ErrEntryPointFailed
	r.logger.Warn("Unable to run provided entrypoint.", "class", name, "exit_code", attempt.Result.ExitCode)
	return out
}

func (r *Resolver) trial(ctx context.Context, candidates []string, lang types.Language) Outcome {
	out := Outcome{State: StateNoEntryFound, Err: ErrNoEntryPoint}
	for _, name := range candidates {
		if ctx.Err() != nil {
			break
		}
		attempt := r.attempt(ctx, name, lang)
		out.Attempts = append(out.Attempts, attempt)
		out.Result = attempt.Result
		if attempt.Result.Success() {
			out.State = StateSuccess
			out.Class = name
			out.Err = nil
			return out
		}
		r.logger.Debug("candidate did not run", "class", name, "exit_code", attempt.Result.ExitCode)
	}
	r.logger.Warn("No valid entrypoints detected.", "tried", len(out.Attempts))
	return out
}

func (r *Resolver) attempt(ctx context.Context, name string, lang types.Language) Attempt {
	cmd := r.Command(name, lang)
	label := name
	if lang == types.LanguageKotlin {
		label = filepath.Base(r.archivePath)
	}
	r.logger.Info(fmt.Sprintf("Running: '%s'", label))
	return Attempt{Class: name, Command: cmd, Result: r.runner.Run(ctx, cmd)}
}
