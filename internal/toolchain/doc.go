// SPDX-License-Identifier: MPL-2.0

// Package toolchain describes the compilers and JVM installed by the runtime
// bootstrap: where each executable lives and which versioned jars make up the
// Scala compiler classpath.
//
// A Descriptor is built once per invocation from the installation directory
// and shared by the compile and run paths, so classpaths never drift between
// them. Built-in defaults match the layout of the bundled archive; an optional
// toolchain.toml manifest inside the installation overrides them.
package toolchain
