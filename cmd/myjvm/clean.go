// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/BendyLand/MyJVM/internal/build"
	"github.com/BendyLand/MyJVM/pkg/types"

	"github.com/spf13/cobra"
)

// newCleanCommand creates `myjvm clean`, which removes the output directory
// and with it the build marker, forcing the next run to recompile.
func newCleanCommand(app *App, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "clean <project_path>",
		Short: "Remove compiled classes and the project archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.newSession(cmd.Context(), flags)
			if err != nil {
				return app.fail(cmd, nil, classifyError(err, ""), types.ExitFailure)
			}
			opts, err := s.pipelineOptions(args, false)
			if err != nil {
				return app.fail(cmd, s, classifyError(err, args[0]), types.ExitFailure)
			}

			outDir := opts.Layout(s.logger).OutputDir
			if err := build.Clean(outDir); err != nil {
				return app.fail(cmd, s, classifyError(err, outDir), types.ExitFailure)
			}
			fmt.Fprintf(app.stdout, "%s %s\n", SuccessStyle.Render("Removed"), outDir)
			return nil
		},
	}
}
