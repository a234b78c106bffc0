// SPDX-License-Identifier: MPL-2.0

package process

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCommandSpecArgv(t *testing.T) {
	t.Parallel()

	base := NewCommand("/opt/jvm/bin/java", "-cp", "out/all_files.jar")
	withMain := base.WithArgs("com.example.Main")

	if diff := cmp.Diff([]string{"/opt/jvm/bin/java", "-cp", "out/all_files.jar"}, base.Argv()); diff != "" {
		t.Errorf("base Argv() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"/opt/jvm/bin/java", "-cp", "out/all_files.jar", "com.example.Main"}, withMain.Argv()); diff != "" {
		t.Errorf("WithArgs Argv() mismatch (-want +got):\n%s", diff)
	}
}

func TestCommandSpecWithArgsDoesNotAlias(t *testing.T) {
	t.Parallel()

	base := CommandSpec{Path: "javac", Args: make([]string, 1, 8)}
	base.Args[0] = "-d"
	a := base.WithArgs("a")
	b := base.WithArgs("b")

	if a.Args[1] != "a" || b.Args[1] != "b" {
		t.Errorf("WithArgs aliased the receiver slice: a=%v b=%v", a.Args, b.Args)
	}
}

func TestCommandSpecString(t *testing.T) {
	t.Parallel()

	cmd := NewCommand("/tmp/my project/bin/java", "-cp", "out/all_files.jar", "App")
	got := cmd.String()
	want := "'/tmp/my project/bin/java' -cp out/all_files.jar App"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestSplitArgs(t *testing.T) {
	t.Parallel()

	lookup := func(name string) string {
		if name == "HEAP" {
			return "512m"
		}
		return ""
	}

	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr bool
	}{
		{name: "empty", input: "  ", want: nil},
		{name: "plain words", input: "-Xmx1g -ea", want: []string{"-Xmx1g", "-ea"}},
		{name: "quoted value", input: `-Dgreeting='hello world'`, want: []string{"-Dgreeting=hello world"}},
		{name: "variable", input: "-Xmx$HEAP", want: []string{"-Xmx512m"}},
		{name: "unterminated quote", input: `-Dx="oops`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := SplitArgs(tt.input, lookup)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SplitArgs(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("SplitArgs(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}
