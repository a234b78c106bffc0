// SPDX-License-Identifier: MPL-2.0

// Package archive packages compiled class files into the single runnable
// archive and reads class names back out of it.
//
// The archive's presence in the output directory is the "already compiled"
// marker. It is written to a temporary file and renamed into place, so an
// interrupted or failed packaging step never leaves a marker behind.
package archive
