// SPDX-License-Identifier: MPL-2.0

// Package bootstrap installs the bundled JVM, Kotlin and Scala toolchains.
//
// The bundle is a zstd-compressed tar archive whose entries live under a
// single top-level directory (".languages/"). Installation streams it straight
// from the payload into the installation directory, with no temporary files,
// and then repairs the execute bits of the compiler and runtime launchers.
//
// The installation directory doubles as the sentinel: when it exists,
// EnsureInstalled does nothing. A failed extraction may leave a partial tree
// behind; Reinstall extracts over it.
package bootstrap
