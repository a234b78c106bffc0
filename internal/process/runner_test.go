// SPDX-License-Identifier: MPL-2.0

package process

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/BendyLand/MyJVM/pkg/types"

	"github.com/creack/pty"
)

func requireShell(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("POSIX shell required")
	}
	return "/bin/sh"
}

func TestExecRunnerCapturesMergedOutput(t *testing.T) {
	t.Parallel()
	sh := requireShell(t)

	res := NewExecRunner(nil).Run(context.Background(), NewCommand(sh, "-c", "echo out; echo err 1>&2"))
	if !res.Success() {
		t.Fatalf("Run() = %+v, want success", res)
	}
	if !strings.Contains(res.Output, "out\n") || !strings.Contains(res.Output, "err\n") {
		t.Errorf("Output = %q, want both stdout and stderr", res.Output)
	}
}

func TestExecRunnerNonZeroExitIsData(t *testing.T) {
	t.Parallel()
	sh := requireShell(t)

	res := NewExecRunner(nil).Run(context.Background(), NewCommand(sh, "-c", "echo boom; exit 3"))
	if res.Err != nil {
		t.Fatalf("Run() Err = %v, want nil for a nonzero exit", res.Err)
	}
	if res.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", res.ExitCode)
	}
	if res.Success() {
		t.Error("Success() = true, want false")
	}
	if strings.TrimSpace(res.Output) != "boom" {
		t.Errorf("Output = %q, want %q", res.Output, "boom\n")
	}
}

func TestExecRunnerLaunchFailure(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "no-such-binary")
	res := NewExecRunner(nil).Run(context.Background(), NewCommand(missing))
	if res.Err == nil {
		t.Fatal("Run() Err = nil, want launch failure")
	}
	if res.ExitCode != types.ExitFailure {
		t.Errorf("ExitCode = %d, want %d", res.ExitCode, types.ExitFailure)
	}
}

func TestExecRunnerPathsWithSpaces(t *testing.T) {
	t.Parallel()
	sh := requireShell(t)

	dir := filepath.Join(t.TempDir(), "dir with spaces")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}

	res := NewExecRunner(nil).Run(context.Background(), NewCommand(sh, "-c", `printf '%s|' "$@"`, "sh", "a b", "c").WithDir(dir))
	if !res.Success() {
		t.Fatalf("Run() = %+v, want success", res)
	}
	if res.Output != "a b|c|" {
		t.Errorf("Output = %q, want %q", res.Output, "a b|c|")
	}
}

func TestExecRunnerEnv(t *testing.T) {
	t.Parallel()
	sh := requireShell(t)

	cmd := NewCommand(sh, "-c", "printf %s \"$MYJVM_TEST_VALUE\"")
	cmd.Env = []string{"MYJVM_TEST_VALUE=42"}
	res := NewExecRunner(nil).Run(context.Background(), cmd)
	if res.Output != "42" {
		t.Errorf("Output = %q, want %q", res.Output, "42")
	}
}

func TestExecRunnerCanceledBeforeStart(t *testing.T) {
	t.Parallel()
	sh := requireShell(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := NewExecRunner(nil).Run(ctx, NewCommand(sh, "-c", "echo never"))
	if res.Err == nil {
		t.Fatal("Run() Err = nil, want context error")
	}
	if res.Output != "" {
		t.Errorf("Output = %q, want empty", res.Output)
	}
}

func TestPTYRunnerCapturesOutput(t *testing.T) {
	t.Parallel()
	sh := requireShell(t)
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skipf("pseudo-terminals unavailable: %v", err)
	}
	_ = tty.Close()
	_ = ptmx.Close()

	res := NewPTYRunner(nil).Run(context.Background(), NewCommand(sh, "-c", "echo hello; exit 4"))
	if res.Err != nil {
		t.Fatalf("Run() Err = %v", res.Err)
	}
	if res.ExitCode != 4 {
		t.Errorf("ExitCode = %d, want 4", res.ExitCode)
	}
	if !strings.Contains(res.Output, "hello\n") {
		t.Errorf("Output = %q, want it to contain %q", res.Output, "hello\n")
	}
}
