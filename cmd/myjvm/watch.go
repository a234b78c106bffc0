// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/BendyLand/MyJVM/internal/app/orchestrate"
	"github.com/BendyLand/MyJVM/internal/issue"
	"github.com/BendyLand/MyJVM/internal/watch"
	"github.com/BendyLand/MyJVM/pkg/types"

	"github.com/spf13/cobra"
)

// newWatchCommand creates `myjvm watch`, which runs a project and then
// recompiles and reruns it whenever a source file changes.
func newWatchCommand(app *App, flags *rootFlags) *cobra.Command {
	var debounce time.Duration
	watchCmd := &cobra.Command{
		Use:   "watch <project_path> [main_class]",
		Short: "Rebuild and rerun a project when its sources change",
		Long: `Rebuild and rerun a project when its sources change.

The project is built and run once, then every change to a .java, .kt, .scala
or .sc file forces a recompilation and a new run. The output directory and the
toolchain directory are never watched. Press Ctrl+C to stop.`,
		Args: projectArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.watchProject(cmd, flags, debounce, args)
		},
	}
	watchCmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "quiet period before rebuilding")
	return watchCmd
}

func (a *App) watchProject(cmd *cobra.Command, flags *rootFlags, debounce time.Duration, args []string) error {
	s, err := a.newSession(cmd.Context(), flags)
	if err != nil {
		return a.fail(cmd, nil, classifyError(err, ""), types.ExitFailure)
	}
	opts, err := s.pipelineOptions(args, false)
	if err != nil {
		return a.fail(cmd, s, classifyError(err, args[0]), types.ExitFailure)
	}

	style := s.cfg.UI.ColorScheme.GlamourStyle()
	rebuild := func(ctx context.Context, opts orchestrate.Options) {
		if _, ae := a.buildAndRun(ctx, s, opts); ae != nil {
			renderError(a.stderr, ae, s.verbose, style)
		}
	}

	w, err := watch.New(watch.Config{
		Root:     opts.ProjectDir,
		Patterns: watch.SourcePatterns(types.LanguageJava, types.LanguageKotlin, types.LanguageScala),
		Ignore:   watchIgnores(opts, s),
		Debounce: debounce,
		Logger:   s.logger,
		OnChange: func(ctx context.Context, changed []string) error {
			s.logger.Info(fmt.Sprintf("Detected %d change(s), rebuilding...", len(changed)), "files", changed)
			forced := opts
			forced.Force = true
			rebuild(ctx, forced)
			s.logger.Info("Watching for changes...")
			return nil
		},
	})
	if err != nil {
		return a.fail(cmd, s, issue.NewErrorContext().
			WithOperation("watch project").
			WithResource(opts.ProjectDir).
			WithSuggestion("Raise fs.inotify.max_user_watches if the limit was reached").
			Wrap(err).
			Build(), types.ExitFailure)
	}

	rebuild(cmd.Context(), opts)
	s.logger.Info("Watching for changes (Ctrl+C to stop)...")
	if err := w.Run(cmd.Context()); err != nil {
		return a.fail(cmd, s, classifyError(err, opts.ProjectDir), types.ExitFailure)
	}
	return nil
}

// watchIgnores excludes the output and toolchain directories when they live
// inside the project.
func watchIgnores(opts orchestrate.Options, s *session) []string {
	runtimeDir, err := filepath.Abs(opts.Runtime())
	if err != nil {
		runtimeDir = opts.Runtime()
	}

	var ignores []string
	for _, dir := range []string{opts.Layout(s.logger).OutputDir, runtimeDir} {
		rel, err := filepath.Rel(opts.ProjectDir, dir)
		if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		ignores = append(ignores, filepath.ToSlash(rel)+"/**")
	}
	return ignores
}
