// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"

	"github.com/BendyLand/MyJVM/internal/archive"
	"github.com/BendyLand/MyJVM/internal/discovery"
	"github.com/BendyLand/MyJVM/internal/entrypoint"
	"github.com/BendyLand/MyJVM/internal/issue"
	"github.com/BendyLand/MyJVM/pkg/types"

	"github.com/spf13/cobra"
)

// newClassesCommand creates `myjvm classes`, which lists the classes in a
// project archive and marks the entrypoint candidates.
func newClassesCommand(app *App, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "classes <project_path>",
		Short: "List the classes in the project archive",
		Long: `List the classes in the project archive.

Candidates are the classes tried, in this order, when no main class is given.
Nested and synthetic classes (names containing '$') and standard library
classes are never tried.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.listClasses(cmd, flags, args[0])
		},
	}
}

func (a *App) listClasses(cmd *cobra.Command, flags *rootFlags, project string) error {
	s, err := a.newSession(cmd.Context(), flags)
	if err != nil {
		return a.fail(cmd, nil, classifyError(err, ""), types.ExitFailure)
	}
	opts, err := s.pipelineOptions([]string{project}, false)
	if err != nil {
		return a.fail(cmd, s, classifyError(err, project), types.ExitFailure)
	}
	layout := opts.Layout(s.logger)

	names, err := archive.ListClassNames(layout.ArchivePath())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return a.fail(cmd, s, issue.NewErrorContext().
				WithOperation("list classes").
				WithResource(layout.ArchivePath()).
				WithSuggestion("Build the project first: myjvm "+project).
				Wrap(err).
				Build(), types.ExitFailure)
		}
		return a.fail(cmd, s, classifyError(err, opts.ProjectDir), types.ExitFailure)
	}

	lang, err := discovery.NewScanner(layout.OutputDir, opts.Runtime()).InferLanguage(opts.ProjectDir)
	if err != nil {
		return a.fail(cmd, s, classifyError(err, opts.ProjectDir), types.ExitFailure)
	}
	candidates := entrypoint.Filter(names, lang)

	fmt.Fprintf(a.stdout, "%s %s\n\n", TitleStyle.Render(layout.ArchivePath()), SubtitleStyle.Render("("+lang.String()+")"))
	for _, name := range names {
		if slices.Contains(candidates, name) {
			fmt.Fprintf(a.stdout, "  %s %s\n", SuccessStyle.Render("*"), CmdStyle.Render(name))
		} else {
			fmt.Fprintf(a.stdout, "    %s\n", SubtitleStyle.Render(name))
		}
	}
	fmt.Fprintf(a.stdout, "\n%d classes, %d entrypoint candidates\n", len(names), len(candidates))
	return nil
}
