// SPDX-License-Identifier: MPL-2.0

package process

import (
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/shell"
	"mvdan.cc/sh/v3/syntax"
)

// CommandSpec describes one external invocation. It is owned by the component
// that builds it and handed to a Runner by value.
type CommandSpec struct {
	// Path is the executable to launch (absolute, or resolved through PATH).
	Path string
	// Args are the arguments after the executable, one element per argv slot.
	Args []string
	// Dir is the working directory of the child; empty means the caller's.
	Dir string
	// Env holds extra KEY=VALUE pairs appended to the inherited environment.
	Env []string
}

// NewCommand builds a CommandSpec for path with the given arguments.
func NewCommand(path string, args ...string) CommandSpec {
	return CommandSpec{Path: path, Args: args}
}

// WithDir returns a copy of c that runs in dir.
func (c CommandSpec) WithDir(dir string) CommandSpec {
	c.Dir = dir
	return c
}

// WithArgs returns a copy of c with args appended. The receiver's slice is
// never aliased.
func (c CommandSpec) WithArgs(args ...string) CommandSpec {
	merged := make([]string, 0, len(c.Args)+len(args))
	merged = append(merged, c.Args...)
	c.Args = append(merged, args...)
	return c
}

// Argv returns the full argument vector including the executable.
func (c CommandSpec) Argv() []string {
	argv := make([]string, 0, len(c.Args)+1)
	argv = append(argv, c.Path)
	return append(argv, c.Args...)
}

// String renders the command as a shell-quoted line for logs. The result is
// for display only and is never executed.
func (c CommandSpec) String() string {
	argv := c.Argv()
	quoted := make([]string, len(argv))
	for i, arg := range argv {
		q, err := syntax.Quote(arg, syntax.LangBash)
		if err != nil {
			// Quote only fails on strings bash cannot represent (e.g. NUL bytes).
			q = fmt.Sprintf("%q", arg)
		}
		quoted[i] = q
	}
	return strings.Join(quoted, " ")
}

// SplitArgs splits a user-supplied option string (for example the configured
// JVM options "-Xmx512m -Dname='a b'") into argv words using POSIX shell
// quoting rules. Variables are resolved against lookup; a nil lookup leaves
// every variable empty. Command substitution is rejected.
func SplitArgs(s string, lookup func(string) string) ([]string, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	if lookup == nil {
		lookup = func(string) string { return "" }
	}
	fields, err := shell.Fields(s, lookup)
	if err != nil {
		return nil, fmt.Errorf("failed to split arguments %q: %w", s, err)
	}
	return fields, nil
}
