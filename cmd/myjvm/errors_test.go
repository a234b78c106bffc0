// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/BendyLand/MyJVM/internal/archive"
	"github.com/BendyLand/MyJVM/internal/bootstrap"
	"github.com/BendyLand/MyJVM/internal/build"
	"github.com/BendyLand/MyJVM/internal/discovery"
	"github.com/BendyLand/MyJVM/internal/entrypoint"
	"github.com/BendyLand/MyJVM/internal/issue"
	"github.com/BendyLand/MyJVM/pkg/types"
)

func TestClassifyError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		err       error
		wantIssue issue.Id
		wantMsg   string
	}{
		{
			name:      "bootstrap",
			err:       &bootstrap.BootstrapError{Dir: "/x/.languages", Step: "open bundle", Err: bootstrap.ErrNoBundle},
			wantIssue: issue.BootstrapFailedId,
			wantMsg:   "failed to generate JVM runtimes: /x/.languages",
		},
		{
			name:      "project not found",
			err:       &discovery.DiscoveryError{Root: "/p", Err: discovery.ErrProjectNotFound},
			wantIssue: issue.ProjectNotFoundId,
			wantMsg:   "failed to read project: /p",
		},
		{
			name:      "no sources",
			err:       &discovery.DiscoveryError{Root: "/p", Err: discovery.ErrNoSources},
			wantIssue: issue.NoSourcesId,
			wantMsg:   "failed to discover sources",
		},
		{
			name:      "unknown extension",
			err:       build.ErrUnknownExtension,
			wantIssue: issue.UnknownExtensionId,
			wantMsg:   "failed to compile project",
		},
		{
			name:      "compile",
			err:       &build.CompileError{Language: types.LanguageKotlin, ExitCode: 1},
			wantIssue: issue.CompileFailedId,
			wantMsg:   "failed to compile kotlin files",
		},
		{
			name:      "packaging",
			err:       &archive.PackagingError{Op: "write", Path: "/p/out/all_files.jar", Err: errors.New("disk full")},
			wantIssue: issue.PackagingFailedId,
			wantMsg:   "failed to package classes",
		},
		{
			name:      "permission",
			err:       fmt.Errorf("open /p/App.java: %w", os.ErrPermission),
			wantIssue: issue.PermissionDeniedId,
			wantMsg:   "failed to access project files",
		},
		{
			name:    "other",
			err:     errors.New("boom"),
			wantMsg: "failed to run project: /p: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ae := classifyError(tt.err, "/p")
			if ae.Issue != tt.wantIssue {
				t.Errorf("Issue = %d, want %d", ae.Issue, tt.wantIssue)
			}
			if !strings.HasPrefix(ae.Error(), tt.wantMsg) {
				t.Errorf("Error() = %q, want prefix %q", ae.Error(), tt.wantMsg)
			}
			if !errors.Is(ae, tt.err) {
				t.Error("classified error does not wrap the cause")
			}
		})
	}
}

func TestClassifyErrorKeepsActionableErrors(t *testing.T) {
	t.Parallel()

	orig := issue.NewErrorContext().WithOperation("load configuration").Wrap(errors.New("bad")).Build()
	if got := classifyError(fmt.Errorf("wrapped: %w", orig), "/p"); got != orig {
		t.Errorf("classifyError() = %v, want the original ActionableError", got)
	}
}

func TestClassifyErrorMissingBundleSuggestion(t *testing.T) {
	t.Parallel()

	ae := classifyError(&bootstrap.BootstrapError{Dir: "d", Step: "open bundle", Err: bootstrap.ErrNoBundle}, "")
	if len(ae.Suggestions) != 2 {
		t.Fatalf("Suggestions = %q, want reinstall and bundle_path hints", ae.Suggestions)
	}
	if !strings.Contains(ae.Suggestions[1], "bundle_path") {
		t.Errorf("second suggestion = %q", ae.Suggestions[1])
	}
}

func TestOutcomeError(t *testing.T) {
	t.Parallel()

	failed := outcomeError(entrypoint.Outcome{
		State: entrypoint.StateEntryFailed,
		Class: "com.example.Main",
		Err:   entrypoint.ErrEntryPointFailed,
	})
	if failed.Issue != issue.EntryPointFailedId || failed.Resource != "com.example.Main" {
		t.Errorf("entry failed: Issue = %d, Resource = %q", failed.Issue, failed.Resource)
	}

	none := outcomeError(entrypoint.Outcome{State: entrypoint.StateNoEntryFound, Err: entrypoint.ErrNoEntryPoint})
	if none.Issue != issue.NoEntryPointId {
		t.Errorf("no entry: Issue = %d", none.Issue)
	}
	if !errors.Is(none, entrypoint.ErrNoEntryPoint) {
		t.Error("no entry error does not wrap ErrNoEntryPoint")
	}
}

func TestRenderError(t *testing.T) {
	t.Parallel()

	ae := issue.NewErrorContext().
		WithOperation("run project").
		WithSuggestion("try again").
		Wrap(errors.New("boom")).
		Build()

	var quiet bytes.Buffer
	renderError(&quiet, ae, false, "notty")
	if !strings.Contains(quiet.String(), "failed to run project: boom") || strings.Contains(quiet.String(), "Error chain") {
		t.Errorf("quiet output = %q", quiet.String())
	}

	var loud bytes.Buffer
	renderError(&loud, ae, true, "notty")
	if !strings.Contains(loud.String(), "Error chain") {
		t.Errorf("verbose output missing error chain: %q", loud.String())
	}
}
