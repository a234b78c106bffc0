// SPDX-License-Identifier: MPL-2.0

// Package build compiles a discovered project with the bundled compiler for
// its language and leaves the packaged archive in the output directory.
//
// Whether to compile at all is decided by State, an explicit value built from
// the presence of the archive (the build marker) and the force flag.
package build
