// SPDX-License-Identifier: MPL-2.0

// Package discovery infers the language of a project tree and collects its
// source files.
//
// Inference is first-found-wins: the tree is walked in filepath.WalkDir order
// (lexical within each directory) and the first file with a recognized
// extension decides the language. A tree mixing languages therefore resolves
// to whichever language sorts first in that walk. The choice is stable for an
// unchanged tree.
package discovery
