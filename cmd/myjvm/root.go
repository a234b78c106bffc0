// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

// usageLine is printed when the project path is missing.
const usageLine = "Usage: myjvm <project_path> [main_class]"

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// ErrUsage is returned when the positional arguments are missing or extra.
	ErrUsage = errors.New("expected a project path and an optional main class")
)

// rootFlags holds the persistent flags shared by every command.
type rootFlags struct {
	verbose bool
	tty     bool
	cfgFile string
}

// NewRootCommand builds the command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	flags := &rootFlags{}
	var force bool

	rootCmd := &cobra.Command{
		Use:   "myjvm <project_path> [main_class]",
		Short: "Build and run Java, Kotlin and Scala projects with a bundled JVM",
		Long: TitleStyle.Render("myjvm") + SubtitleStyle.Render(" - build and run JVM projects with a bundled toolchain") + `

myjvm detects the language of a project (.java, .kt or .sc files), compiles
it with the bundled compiler, packages the classes into out/all_files.jar and
runs it. Without a main class, every class in the archive is tried until one
runs successfully.

The toolchain is unpacked into .languages the first time myjvm runs. The
archive doubles as the build marker: projects are only recompiled when it is
missing or when --force (or MYJVM_FORCE_RECOMPILE=1) is given.

` + SubtitleStyle.Render("Examples:") + `
  myjvm ./hello                  Build and run ./hello
  myjvm ./hello com.example.App  Run a specific class
  myjvm --force ./hello          Recompile before running
  myjvm classes ./hello          List entrypoint candidates
  myjvm watch ./hello            Rerun on every source change`,
		Args: projectArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runProject(cmd, flags, force, args)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "enable verbose output")
	pf.BoolVar(&flags.tty, "tty", false, "attach compilers and programs to a pseudo-terminal")
	pf.StringVar(&flags.cfgFile, "config", "", "config file (default is $HOME/.config/myjvm/config.cue)")
	rootCmd.Flags().BoolVarP(&force, "force", "f", false, "recompile even when the project archive exists")

	rootCmd.AddCommand(
		newRunCommand(app, flags),
		newRuntimeCommand(app, flags),
		newClassesCommand(app, flags),
		newCleanCommand(app, flags),
		newConfigCommand(app, flags),
		newWatchCommand(app, flags),
	)
	return rootCmd
}

// projectArgs accepts a project path and an optional main class.
func projectArgs(_ *cobra.Command, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("%w\n%s", ErrUsage, usageLine)
	}
	return nil
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI with production dependencies. It is called by main.main().
func Execute() {
	rootCmd := NewRootCommand(NewApp(Dependencies{}))
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}
