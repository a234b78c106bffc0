// SPDX-License-Identifier: MPL-2.0

// Package process runs external toolchain binaries (javac, kotlinc, the JVM)
// synchronously and captures their exit status and merged output.
//
// Commands are always argument vectors (CommandSpec), never shell strings, so
// paths containing spaces or quotes reach the child unchanged. A nonzero exit
// status is ordinary data on the Result; only a failure to launch the child
// sets Result.Err. There is no timeout: a hung child blocks the caller until
// it exits on its own.
package process
