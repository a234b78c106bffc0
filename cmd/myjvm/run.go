// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BendyLand/MyJVM/internal/app/orchestrate"
	"github.com/BendyLand/MyJVM/internal/bootstrap"
	"github.com/BendyLand/MyJVM/internal/issue"
	"github.com/BendyLand/MyJVM/internal/process"
	"github.com/BendyLand/MyJVM/pkg/types"

	"github.com/spf13/cobra"
)

// newRunCommand creates `myjvm run`, the explicit form of the root command.
// It exists so that a project directory named like a subcommand can still
// be run.
func newRunCommand(app *App, flags *rootFlags) *cobra.Command {
	var force bool
	runCmd := &cobra.Command{
		Use:   "run <project_path> [main_class]",
		Short: "Build (if needed) and run a project",
		Args:  projectArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runProject(cmd, flags, force, args)
		},
	}
	runCmd.Flags().BoolVarP(&force, "force", "f", false, "recompile even when the project archive exists")
	return runCmd
}

// runProject executes the full pipeline and prints the program output to
// stdout. The process exit code follows the program: 0 on success, the
// program's own status when a named class fails, 1 otherwise.
func (a *App) runProject(cmd *cobra.Command, flags *rootFlags, force bool, args []string) error {
	s, err := a.newSession(cmd.Context(), flags)
	if err != nil {
		return a.fail(cmd, nil, classifyError(err, ""), types.ExitFailure)
	}

	opts, err := s.pipelineOptions(args, force)
	if err != nil {
		return a.fail(cmd, s, classifyError(err, args[0]), types.ExitFailure)
	}

	code, ae := a.buildAndRun(cmd.Context(), s, opts)
	if ae != nil {
		return a.fail(cmd, s, ae, code)
	}
	return nil
}

// buildAndRun runs the pipeline once and prints the program output. A nil
// error means the program ran successfully.
func (a *App) buildAndRun(ctx context.Context, s *session, opts orchestrate.Options) (types.ExitCode, *issue.ActionableError) {
	report, err := orchestrate.New(s.runner, s.logger).Run(ctx, opts)
	if err != nil {
		return types.ExitFailure, classifyError(err, opts.ProjectDir)
	}
	s.logger.Debug("pipeline finished",
		"language", report.Language,
		"compiled", report.Compiled,
		"outcome", report.Outcome.State,
		"attempts", len(report.Outcome.Attempts))

	outcome := report.Outcome
	fmt.Fprint(a.stdout, outcome.Output())
	if !outcome.Success() {
		return outcome.ExitCode(), outcomeError(outcome)
	}
	return types.ExitSuccess, nil
}

// pipelineOptions turns the positional arguments and configuration into
// pipeline options. The project path is made absolute so that the archive
// path stays valid when java runs inside the project directory.
func (s *session) pipelineOptions(args []string, force bool) (orchestrate.Options, error) {
	project, err := filepath.Abs(args[0])
	if err != nil {
		return orchestrate.Options{}, fmt.Errorf("failed to resolve project path: %w", err)
	}
	jvmOpts, err := process.SplitArgs(s.cfg.Run.JVMOptions, os.Getenv)
	if err != nil {
		return orchestrate.Options{}, err
	}

	opts := orchestrate.Options{
		ProjectDir:  project,
		Force:       force || s.cfg.Build.ForceRecompile,
		RuntimeDir:  s.cfg.Runtime.Dir,
		Source:      bootstrap.DefaultSource(s.cfg.Runtime.BundlePath),
		OutputDir:   s.cfg.Build.OutputDir,
		ArchiveName: s.cfg.Build.ArchiveName,
		JVMOptions:  jvmOpts,
	}
	if len(args) > 1 {
		opts.EntryClass = args[1]
	}
	return opts, nil
}
