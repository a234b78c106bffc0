// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/BendyLand/MyJVM/internal/archive"
	"github.com/BendyLand/MyJVM/internal/bootstrap"
	"github.com/BendyLand/MyJVM/internal/build"
	"github.com/BendyLand/MyJVM/internal/discovery"
	"github.com/BendyLand/MyJVM/internal/entrypoint"
	"github.com/BendyLand/MyJVM/internal/issue"
	"github.com/BendyLand/MyJVM/pkg/types"

	"github.com/spf13/cobra"
)

// classifyError wraps a pipeline failure in an ActionableError naming the
// failed step, the resource and the catalog guide. Errors that already carry
// context are returned unchanged.
func classifyError(err error, project string) *issue.ActionableError {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae
	}

	ctx := issue.NewErrorContext().Wrap(err).WithResource(project)

	var bootErr *bootstrap.BootstrapError
	var compileErr *build.CompileError
	switch {
	case errors.As(err, &bootErr):
		ctx.WithOperation("generate JVM runtimes").
			WithResource(bootErr.Dir).
			WithIssue(issue.BootstrapFailedId).
			WithSuggestion("Run 'myjvm runtime install --force' to reinstall the toolchain")
		if errors.Is(err, bootstrap.ErrNoBundle) {
			ctx.WithSuggestion("Set runtime.bundle_path (or MYJVM_RUNTIME_BUNDLE_PATH) to a .tar.zst toolchain bundle")
		}
	case errors.Is(err, discovery.ErrProjectNotFound):
		ctx.WithOperation("read project").
			WithIssue(issue.ProjectNotFoundId).
			WithSuggestion("Pass an existing project directory")
	case errors.Is(err, discovery.ErrNoSources):
		ctx.WithOperation("discover sources").
			WithIssue(issue.NoSourcesId).
			WithSuggestion("Add .java, .kt or .sc files to the project")
	case errors.Is(err, build.ErrUnknownExtension):
		ctx.WithOperation("compile project").
			WithIssue(issue.UnknownExtensionId)
	case errors.As(err, &compileErr):
		ctx.WithOperation(fmt.Sprintf("compile %s files", compileErr.Language)).
			WithIssue(issue.CompileFailedId).
			WithSuggestion("Fix the compiler errors above and run myjvm again")
	case errors.Is(err, archive.ErrPackagingFailed):
		ctx.WithOperation("package classes").
			WithIssue(issue.PackagingFailedId).
			WithSuggestion("Run 'myjvm clean' and build again")
	case errors.Is(err, os.ErrPermission):
		ctx.WithOperation("access project files").
			WithIssue(issue.PermissionDeniedId)
	default:
		ctx.WithOperation("run project")
	}
	return ctx.Build()
}

// outcomeError describes a run that found no runnable entry point or whose
// named entry point failed.
func outcomeError(o entrypoint.Outcome) *issue.ActionableError {
	ctx := issue.NewErrorContext().Wrap(o.Err)
	if o.State == entrypoint.StateEntryFailed {
		return ctx.WithOperation("run entrypoint").
			WithResource(o.Class).
			WithIssue(issue.EntryPointFailedId).
			WithSuggestion("Check the class name and that it declares a main method").
			Build()
	}
	return ctx.WithOperation("find an entrypoint").
		WithIssue(issue.NoEntryPointId).
		WithSuggestion("Run 'myjvm classes <project>' to list the candidates").
		WithSuggestion("Name the class to run: myjvm <project> com.example.Main").
		Build()
}

// renderError writes ae to w, followed by its catalog guide in verbose mode.
func renderError(w io.Writer, ae *issue.ActionableError, verbose bool, style string) {
	fmt.Fprintf(w, "\n%s %s\n", ErrorStyle.Render("Error:"), ae.Format(verbose))
	if !verbose {
		return
	}
	guide, err := ae.Guide(style)
	if err != nil || guide == "" {
		return
	}
	fmt.Fprint(w, guide)
}

// fail renders ae and returns the ExitError that carries code out of RunE.
// Cobra's own error and usage output are silenced since the error is
// already on screen.
func (a *App) fail(cmd *cobra.Command, s *session, ae *issue.ActionableError, code types.ExitCode) error {
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	style := "auto"
	verbose := false
	if s != nil {
		style = s.cfg.UI.ColorScheme.GlamourStyle()
		verbose = s.verbose
	}
	renderError(a.stderr, ae, verbose, style)
	if code.IsSuccess() {
		code = types.ExitFailure
	}
	return &ExitError{Code: code, Err: ae}
}
