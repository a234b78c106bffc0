// SPDX-License-Identifier: MPL-2.0

package orchestrate

import (
	"context"
	"io"
	"path/filepath"

	"github.com/BendyLand/MyJVM/internal/archive"
	"github.com/BendyLand/MyJVM/internal/bootstrap"
	"github.com/BendyLand/MyJVM/internal/build"
	"github.com/BendyLand/MyJVM/internal/discovery"
	"github.com/BendyLand/MyJVM/internal/entrypoint"
	"github.com/BendyLand/MyJVM/internal/process"
	"github.com/BendyLand/MyJVM/internal/toolchain"
	"github.com/BendyLand/MyJVM/pkg/types"

	"github.com/charmbracelet/log"
)

type (
	// Options configures one pipeline run.
	//
	// Required fields: ProjectDir. All other fields fall back to defaults.
	Options struct {
		// ProjectDir is the project to build and run.
		ProjectDir string
		// EntryClass names the class to run; empty trial-runs candidates.
		EntryClass string
		// Force recompiles even when the build marker is present.
		Force bool

		// RuntimeDir is the toolchain installation directory.
		RuntimeDir string
		// Source supplies the toolchain bundle when RuntimeDir is absent.
		Source bootstrap.BundleSource
		// OutputDir is the output directory; relative paths are resolved
		// against ProjectDir.
		OutputDir string
		// ArchiveName names the packaged artifact inside OutputDir.
		ArchiveName string
		// JVMOptions are passed to java when running the program.
		JVMOptions []string
	}

	// Report describes what a run did. It is returned alongside errors with
	// whatever was learned before the failure.
	Report struct {
		// Bootstrap is the installer's status.
		Bootstrap bootstrap.Status
		// Project is the scanned project; nil when compilation was skipped.
		Project *discovery.Project
		// Language is the language used to run the archive.
		Language types.Language
		// Compiled is true when a compiler ran during this invocation.
		Compiled bool
		// ArchivePath is the packaged artifact.
		ArchivePath string
		// Outcome is the entry-point result; zero until StageRan.
		Outcome entrypoint.Outcome
		// Stages lists the state machine stages in order.
		Stages []Stage
		// Diagnostics are non-fatal discovery observations.
		Diagnostics []discovery.Diagnostic
	}

	// Pipeline wires the pipeline packages together.
	Pipeline struct {
		runner process.Runner
		logger *log.Logger
	}
)

// New creates a Pipeline launching external processes through runner. A nil
// logger discards messages.
func New(runner process.Runner, logger *log.Logger) *Pipeline {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Pipeline{runner: runner, logger: logger}
}

// Layout returns the output layout for opts.
func (o Options) Layout(logger *log.Logger) *archive.Layout {
	out := o.OutputDir
	if out == "" {
		out = archive.DefaultOutputDir
	}
	if !filepath.IsAbs(out) {
		out = filepath.Join(o.ProjectDir, out)
	}
	layout := archive.NewLayout(out, logger)
	if o.ArchiveName != "" {
		layout.ArchiveName = o.ArchiveName
	}
	return layout
}

// Runtime returns the toolchain installation directory for opts.
func (o Options) Runtime() string {
	if o.RuntimeDir == "" {
		return toolchain.DefaultDirName
	}
	return o.RuntimeDir
}

// Run executes the pipeline. Only bootstrap failures, unreadable projects,
// and compile or packaging failures return an error; a program that cannot
// be run is reported through Report.Outcome.
func (p *Pipeline) Run(ctx context.Context, opts Options) (*Report, error) {
	report := &Report{}

	installer := bootstrap.NewInstaller(opts.Runtime(), opts.Source, p.logger)
	st, err := installer.EnsureInstalled(ctx)
	report.Bootstrap = st
	if err != nil {
		return report, err
	}
	tc, err := toolchain.Load(opts.Runtime())
	if err != nil {
		return report, &bootstrap.BootstrapError{Dir: opts.Runtime(), Step: "load toolchain", Err: err}
	}

	layout := opts.Layout(p.logger)
	report.ArchivePath = layout.ArchivePath()
	dispatcher := build.NewDispatcher(tc, layout, p.runner, p.logger)
	scanner := discovery.NewScanner(layout.OutputDir, opts.Runtime())

	state := dispatcher.State(opts.Force)
	p.logger.Debug("build state", "state", state.String(), "archive", state.ArchivePath)

	initial := StagePackaged
	if state.NeedsCompile() {
		initial = StageNotCompiled
	}
	stages := newTracker(initial)
	defer func() { report.Stages = stages.stages() }()

	if state.NeedsCompile() {
		if err := p.compile(ctx, scanner, dispatcher, opts, report, stages); err != nil {
			return report, err
		}
	} else {
		p.logger.Info("Project already compiled, skipping compilation.", "archive", state.ArchivePath)
		lang, err := scanner.InferLanguage(opts.ProjectDir)
		if err != nil {
			return report, err
		}
		if lang == types.LanguageUnknown {
			return report, &discovery.DiscoveryError{Root: opts.ProjectDir, Err: discovery.ErrNoSources}
		}
		report.Language = lang
	}

	resolver := entrypoint.NewResolver(tc, layout.ArchivePath(), p.runner, p.logger).
		WithJVMOptions(opts.JVMOptions).
		WithDir(opts.ProjectDir)
	outcome, err := resolver.Run(ctx, opts.EntryClass, report.Language)
	if err != nil {
		return report, err
	}
	report.Outcome = outcome
	if err := stages.advance(StageRan); err != nil {
		return report, err
	}
	return report, nil
}

func (p *Pipeline) compile(ctx context.Context, scanner *discovery.Scanner, d *build.Dispatcher, opts Options, report *Report, stages *tracker) error {
	project, err := scanner.Scan(opts.ProjectDir)
	if err != nil {
		return err
	}
	report.Project = project
	report.Language = project.Language()
	report.Diagnostics = project.Diagnostics()
	for _, diag := range report.Diagnostics {
		p.logger.Warn(diag.Message, "code", diag.Code)
	}

	report.Compiled = true
	if err := d.Compile(ctx, project); err != nil {
		return err
	}
	if err := stages.advance(StageCompiled); err != nil {
		return err
	}
	return stages.advance(StagePackaged)
}
