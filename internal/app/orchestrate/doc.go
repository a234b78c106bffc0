// SPDX-License-Identifier: MPL-2.0

// Package orchestrate runs the myjvm pipeline: bootstrap the toolchains,
// discover and compile the project unless it is already packaged, then find
// and run its entry point. It decouples the CLI layer from the individual
// pipeline packages.
package orchestrate
