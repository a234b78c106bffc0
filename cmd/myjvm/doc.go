// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the CLI commands for myjvm.
//
// The root command builds and runs a project:
//
//	myjvm <project_path> [main_class]
//
// Subcommands manage the bundled toolchain (runtime), inspect or remove
// build output (classes, clean) and manage configuration (config).
package cmd
