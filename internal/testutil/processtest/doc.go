// SPDX-License-Identifier: MPL-2.0

// Package processtest provides a scripted process.Runner for tests that must
// not launch real compilers or JVMs.
//
// This package is separate from testutil to avoid import cycles, since
// internal/process tests use testutil and cannot import themselves.
//
// # Usage
//
//	r := processtest.NewRunner(func(cmd process.CommandSpec) process.Result {
//	    return processtest.Exit(0, "hello\n")
//	})
//	res := r.Run(ctx, process.NewCommand("java", "-cp", "out/all_files.jar", "App"))
//	calls := r.Calls()
package processtest
