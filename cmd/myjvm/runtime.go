// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/BendyLand/MyJVM/internal/bootstrap"
	"github.com/BendyLand/MyJVM/internal/toolchain"
	"github.com/BendyLand/MyJVM/pkg/types"

	"github.com/spf13/cobra"
)

// newRuntimeCommand creates the `myjvm runtime` command tree.
func newRuntimeCommand(app *App, flags *rootFlags) *cobra.Command {
	runtimeCmd := &cobra.Command{
		Use:   "runtime",
		Short: "Manage the bundled JVM and compilers",
		Long: `Manage the bundled JVM and compilers.

The toolchain is unpacked into the runtime directory (.languages by default)
the first time myjvm runs. The directory itself marks the installation.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	var force bool
	installCmd := &cobra.Command{
		Use:   "install",
		Short: "Unpack the toolchain bundle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.installRuntime(cmd, flags, force)
		},
	}
	installCmd.Flags().BoolVarP(&force, "force", "f", false, "unpack again over an existing installation")

	runtimeCmd.AddCommand(installCmd, &cobra.Command{
		Use:   "status",
		Short: "Show the toolchain installation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runtimeStatus(cmd, flags)
		},
	})

	return runtimeCmd
}

func (a *App) installRuntime(cmd *cobra.Command, flags *rootFlags, force bool) error {
	s, err := a.newSession(cmd.Context(), flags)
	if err != nil {
		return a.fail(cmd, nil, classifyError(err, ""), types.ExitFailure)
	}

	installer := bootstrap.NewInstaller(s.cfg.Runtime.Dir, bootstrap.DefaultSource(s.cfg.Runtime.BundlePath), s.logger)
	var st bootstrap.Status
	if force {
		st, err = installer.Reinstall(cmd.Context())
	} else {
		st, err = installer.EnsureInstalled(cmd.Context())
	}
	if err != nil {
		return a.fail(cmd, s, classifyError(err, s.cfg.Runtime.Dir), types.ExitFailure)
	}

	if st.Extracted {
		fmt.Fprintf(a.stdout, "%s %s (%d files)\n", SuccessStyle.Render("Installed"), st.Dir, st.Files)
	} else {
		fmt.Fprintf(a.stdout, "%s %s\n", SubtitleStyle.Render("Already installed:"), st.Dir)
	}
	return nil
}

func (a *App) runtimeStatus(cmd *cobra.Command, flags *rootFlags) error {
	s, err := a.newSession(cmd.Context(), flags)
	if err != nil {
		return a.fail(cmd, nil, classifyError(err, ""), types.ExitFailure)
	}

	keyStyle := CmdStyle
	fmt.Fprintln(a.stdout, TitleStyle.Render("Toolchain"))
	fmt.Fprintln(a.stdout)

	bundle := SubtitleStyle.Render("none")
	switch {
	case bootstrap.HasEmbeddedBundle():
		bundle = "embedded"
	case s.cfg.Runtime.BundlePath != "":
		bundle = s.cfg.Runtime.BundlePath
	}
	fmt.Fprintf(a.stdout, "%s: %s\n", keyStyle.Render("bundle"), bundle)

	installer := bootstrap.NewInstaller(s.cfg.Runtime.Dir, nil, s.logger)
	if !installer.Installed() {
		fmt.Fprintf(a.stdout, "%s: %s\n", keyStyle.Render("directory"), s.cfg.Runtime.Dir)
		fmt.Fprintf(a.stdout, "%s: %s\n", keyStyle.Render("installed"), WarningStyle.Render("no"))
		return nil
	}

	tc, err := toolchain.Load(s.cfg.Runtime.Dir)
	if err != nil {
		return a.fail(cmd, s, classifyError(&bootstrap.BootstrapError{Dir: s.cfg.Runtime.Dir, Step: "load toolchain", Err: err}, ""), types.ExitFailure)
	}
	fmt.Fprintf(a.stdout, "%s: %s\n", keyStyle.Render("directory"), tc.Root)
	fmt.Fprintf(a.stdout, "%s: %s\n", keyStyle.Render("installed"), SuccessStyle.Render("yes"))
	fmt.Fprintf(a.stdout, "%s: %s\n", keyStyle.Render("scala"), tc.ScalaVersion)
	fmt.Fprintln(a.stdout)

	missing := make(map[string]bool)
	for _, name := range tc.Missing() {
		missing[name] = true
	}
	components := tc.Components()
	for _, name := range tc.ComponentNames() {
		state := SuccessStyle.Render("ok")
		if missing[name] {
			state = ErrorStyle.Render("missing")
		}
		fmt.Fprintf(a.stdout, "  %-16s %s %s\n", name, state, SubtitleStyle.Render(components[name]))
	}
	if len(missing) > 0 {
		fmt.Fprintf(a.stdout, "\n%s run 'myjvm runtime install --force' to repair the installation\n", WarningStyle.Render("Hint:"))
	}
	return nil
}
