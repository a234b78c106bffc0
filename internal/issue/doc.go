// SPDX-License-Identifier: MPL-2.0

// Package issue carries user-facing error context for the myjvm CLI.
//
// ActionableError records the failed operation, the resource involved and
// suggestions for fixing it. Well-known failures also point at a Markdown
// guide in the catalog, rendered with glamour when the CLI runs verbosely.
package issue
