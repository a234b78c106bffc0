// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/BendyLand/MyJVM/internal/config"
	"github.com/BendyLand/MyJVM/internal/issue"
	"github.com/BendyLand/MyJVM/pkg/types"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `myjvm config` command tree.
func newConfigCommand(app *App, flags *rootFlags) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage myjvm configuration",
		Long: `Manage myjvm configuration.

Configuration is stored in:
  - Linux: ~/.config/myjvm/config.cue
  - macOS: ~/Library/Application Support/myjvm/config.cue
  - Windows: %APPDATA%\myjvm\config.cue

A config.cue in the working directory is used when the file above is absent.
Every key can be overridden with MYJVM_<SECTION>_<KEY>, for example
MYJVM_BUILD_OUTPUT_DIR=target.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	var format string
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.showConfig(cmd, flags, format)
		},
	}
	showCmd.Flags().StringVar(&format, "format", string(config.FormatCUE), "output format: cue, json or yaml")

	cfgCmd.AddCommand(showCmd, &cobra.Command{
		Use:   "init",
		Short: "Create the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.initConfig(cmd)
		},
	})

	return cfgCmd
}

func (a *App) showConfig(cmd *cobra.Command, flags *rootFlags, format string) error {
	f, err := config.ParseFormat(format)
	if err != nil {
		return a.fail(cmd, nil, issue.NewErrorContext().
			WithOperation("show configuration").
			WithSuggestion("Use --format cue, json or yaml").
			Wrap(err).
			Build(), types.ExitFailure)
	}

	s, err := a.newSession(cmd.Context(), flags)
	if err != nil {
		return a.fail(cmd, nil, classifyError(err, ""), types.ExitFailure)
	}

	out, err := config.Render(s.cfg, f)
	if err != nil {
		return a.fail(cmd, s, classifyError(err, ""), types.ExitFailure)
	}

	source := s.cfgPath
	if source == "" {
		source = "(using defaults)"
	}
	// The source goes to stderr so that stdout stays machine-readable.
	fmt.Fprintf(a.stderr, "%s: %s\n", CmdStyle.Render("Config file"), SubtitleStyle.Render(source))
	fmt.Fprint(a.stdout, out)
	return nil
}

func (a *App) initConfig(cmd *cobra.Command) error {
	path, created, err := config.CreateDefaultConfig()
	if err != nil {
		return a.fail(cmd, nil, issue.NewErrorContext().
			WithOperation("create configuration").
			WithIssue(issue.ConfigLoadFailedId).
			Wrap(err).
			Build(), types.ExitFailure)
	}
	if created {
		fmt.Fprintf(a.stdout, "%s %s\n", SuccessStyle.Render("Created"), path)
	} else {
		fmt.Fprintf(a.stdout, "%s %s\n", SubtitleStyle.Render("Configuration already exists:"), path)
	}
	return nil
}
