// SPDX-License-Identifier: MPL-2.0

// Package entrypoint finds and runs the program inside a packaged archive.
//
// When no class is named, every candidate class is tried in archive order
// until one exits successfully. Which class declares a main method is never
// determined statically: a candidate that fails to start is simply skipped.
package entrypoint
