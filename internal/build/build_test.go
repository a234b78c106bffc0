// SPDX-License-Identifier: MPL-2.0

package build

import (
	"archive/zip"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BendyLand/MyJVM/internal/archive"
	"github.com/BendyLand/MyJVM/internal/discovery"
	"github.com/BendyLand/MyJVM/internal/process"
	"github.com/BendyLand/MyJVM/internal/testutil"
	"github.com/BendyLand/MyJVM/internal/testutil/processtest"
	"github.com/BendyLand/MyJVM/internal/toolchain"
	"github.com/BendyLand/MyJVM/pkg/types"

	"github.com/google/go-cmp/cmp"
)

type fixture struct {
	root   string
	out    string
	tc     *toolchain.Descriptor
	layout *archive.Layout
}

func newFixture(t *testing.T, sources ...string) (*fixture, *discovery.Project) {
	t.Helper()

	root := t.TempDir()
	for _, src := range sources {
		testutil.MustWriteFile(t, filepath.Join(root, filepath.FromSlash(src)), "// source\n")
	}
	tc, err := toolchain.Load(t.TempDir())
	if err != nil {
		t.Fatalf("toolchain.Load() error = %v", err)
	}
	out := filepath.Join(root, archive.DefaultOutputDir)
	f := &fixture{root: root, out: out, tc: tc, layout: archive.NewLayout(out, nil)}

	p, err := discovery.NewScanner(out).Scan(root)
	if err != nil && !errors.Is(err, discovery.ErrNoSources) {
		t.Fatalf("Scan() error = %v", err)
	}
	return f, p
}

// emitClasses returns a handler that writes the named classes into out.
func emitClasses(t *testing.T, out string, names ...string) processtest.Handler {
	return func(process.CommandSpec) process.Result {
		for _, name := range names {
			testutil.MustWriteFile(t, filepath.Join(out, filepath.FromSlash(archive.ClassPath(name))), "class "+name)
		}
		return processtest.Exit(0, "")
	}
}

func TestStateNeedsCompile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		state State
		want  bool
		str   string
	}{
		{state: State{}, want: true, str: "not compiled"},
		{state: State{MarkerPresent: true}, want: false, str: "compiled"},
		{state: State{MarkerPresent: true, Force: true}, want: true, str: "forced"},
		{state: State{Force: true}, want: true, str: "forced"},
	}
	for _, tt := range tests {
		if got := tt.state.NeedsCompile(); got != tt.want {
			t.Errorf("%+v.NeedsCompile() = %v, want %v", tt.state, got, tt.want)
		}
		if got := tt.state.String(); got != tt.str {
			t.Errorf("%+v.String() = %q, want %q", tt.state, got, tt.str)
		}
	}
}

func TestObserve(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	jar := filepath.Join(dir, archive.DefaultArchiveName)
	if Observe(jar, false).MarkerPresent {
		t.Error("marker reported before the archive exists")
	}
	testutil.MustWriteFile(t, jar, "PK")
	if !Observe(jar, false).MarkerPresent {
		t.Error("marker not reported after the archive exists")
	}

	testutil.MustMkdirAll(t, filepath.Join(dir, "dir.jar"), 0o755)
	if Observe(filepath.Join(dir, "dir.jar"), false).MarkerPresent {
		t.Error("a directory must not count as the marker")
	}
}

func TestJavaCompileAndPackage(t *testing.T) {
	t.Parallel()

	f, p := newFixture(t, "App.java", "com/example/Util.java")
	runner := processtest.NewRunner(emitClasses(t, f.out, "App", "com.example.Util"))
	d := NewDispatcher(f.tc, f.layout, runner, nil)

	if err := d.Compile(context.Background(), p); err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	want := [][]string{{
		f.tc.Javac(), "-d", f.out,
		filepath.Join(f.root, "App.java"),
		filepath.Join(f.root, "com", "example", "Util.java"),
	}}
	if diff := cmp.Diff(want, runner.Argvs()); diff != "" {
		t.Errorf("javac argv mismatch (-want +got):\n%s", diff)
	}
	if dir := runner.Calls()[0].Dir; dir != f.root {
		t.Errorf("javac cwd = %q, want %q", dir, f.root)
	}

	names, err := archive.ListClassNames(f.layout.ArchivePath())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"App", "com.example.Util"}, names); diff != "" {
		t.Errorf("archived classes mismatch (-want +got):\n%s", diff)
	}
}

func TestEnsureSkipsWhenMarkerPresent(t *testing.T) {
	t.Parallel()

	f, p := newFixture(t, "App.java")
	runner := processtest.NewRunner(emitClasses(t, f.out, "App"))
	d := NewDispatcher(f.tc, f.layout, runner, nil)

	compiled, err := d.Ensure(context.Background(), p, false)
	if err != nil || !compiled {
		t.Fatalf("first Ensure() = %v, %v; want compile", compiled, err)
	}
	compiled, err = d.Ensure(context.Background(), p, false)
	if err != nil {
		t.Fatalf("second Ensure() error = %v", err)
	}
	if compiled {
		t.Error("second Ensure() compiled again")
	}
	if n := len(runner.Calls()); n != 1 {
		t.Errorf("compiler invoked %d times, want 1", n)
	}

	compiled, err = d.Ensure(context.Background(), p, true)
	if err != nil || !compiled {
		t.Errorf("forced Ensure() = %v, %v; want compile", compiled, err)
	}
	if n := len(runner.Calls()); n != 2 {
		t.Errorf("compiler invoked %d times after force, want 2", n)
	}
}

func TestCompileFailureIsReported(t *testing.T) {
	t.Parallel()

	f, p := newFixture(t, "App.java")
	// A stale marker from an earlier build must not survive a failed compile.
	testutil.MustWriteFile(t, f.layout.ArchivePath(), "stale")

	runner := processtest.NewRunner(func(process.CommandSpec) process.Result {
		return processtest.Exit(2, "App.java:1: error: ';' expected\n")
	})
	err := NewDispatcher(f.tc, f.layout, runner, nil).Compile(context.Background(), p)

	var ce *CompileError
	if !errors.As(err, &ce) {
		t.Fatalf("Compile() error = %v, want *CompileError", err)
	}
	if !errors.Is(err, ErrCompileFailed) {
		t.Error("CompileError does not wrap ErrCompileFailed")
	}
	if ce.Language != types.LanguageJava || ce.ExitCode != 2 {
		t.Errorf("CompileError = %+v", ce)
	}
	if !strings.Contains(err.Error(), "';' expected") {
		t.Errorf("error message %q lacks compiler output", err.Error())
	}
	if Observe(f.layout.ArchivePath(), false).MarkerPresent {
		t.Error("marker present after failed compile")
	}
}

func TestCompileLaunchFailure(t *testing.T) {
	t.Parallel()

	f, p := newFixture(t, "Main.kt")
	runner := processtest.NewRunner(func(process.CommandSpec) process.Result { return processtest.NotFound() })
	err := NewDispatcher(f.tc, f.layout, runner, nil).Compile(context.Background(), p)
	if !errors.Is(err, processtest.ErrNotFound) || !errors.Is(err, ErrCompileFailed) {
		t.Errorf("Compile() error = %v, want launch failure wrapped in CompileError", err)
	}
}

func TestKotlinCompileWritesArchiveDirectly(t *testing.T) {
	t.Parallel()

	f, p := newFixture(t, "Main.kt")
	runner := processtest.NewRunner(func(cmd process.CommandSpec) process.Result {
		// kotlinc -include-runtime -d <jar> files...
		writeZip(t, cmd.Args[2], []string{"MainKt.class", "kotlin/Unit.class"})
		return processtest.Exit(0, "")
	})
	if err := NewDispatcher(f.tc, f.layout, runner, nil).Compile(context.Background(), p); err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	calls := runner.Calls()
	if len(calls) != 1 {
		t.Fatalf("runner called %d times, want 1", len(calls))
	}
	argv := calls[0].Argv()
	if argv[0] != f.tc.Kotlinc() || argv[1] != "-include-runtime" || argv[2] != "-d" {
		t.Errorf("kotlinc argv = %v", argv)
	}
	if got := processtest.LastArg(calls[0]); got != filepath.Join(f.root, "Main.kt") {
		t.Errorf("kotlinc source = %q", got)
	}

	names, err := archive.ListClassNames(f.layout.ArchivePath())
	if err != nil {
		t.Fatalf("archive not in place: %v", err)
	}
	if diff := cmp.Diff([]string{"MainKt", "kotlin.Unit"}, names); diff != "" {
		t.Errorf("archive mismatch (-want +got):\n%s", diff)
	}
	if _, err := os.Stat(calls[0].Args[2]); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("temporary kotlinc jar left behind: %v", err)
	}
}

func TestScalaCompileMergesLibrary(t *testing.T) {
	t.Parallel()

	f, p := newFixture(t, "Main.scala")
	writeZip(t, f.tc.ScalaLibrary(), []string{"scala/runtime/LazyVals.class", "scala/Tuple.class"})
	runner := processtest.NewRunner(emitClasses(t, f.out, "Main", "Main$"))

	if err := NewDispatcher(f.tc, f.layout, runner, nil).Compile(context.Background(), p); err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	want := [][]string{{
		f.tc.Java(), toolchain.ScalaJavaCPProperty,
		"-cp", f.tc.ScalaClasspath(),
		"dotty.tools.dotc.Main",
		"-sourcepath", f.root,
		"-d", f.out,
		filepath.Join(f.root, "Main.scala"),
	}}
	if diff := cmp.Diff(want, runner.Argvs()); diff != "" {
		t.Errorf("scala compiler argv mismatch (-want +got):\n%s", diff)
	}

	names, err := archive.ListClassNames(f.layout.ArchivePath())
	if err != nil {
		t.Fatal(err)
	}
	wantNames := []string{"Main$", "Main", "scala.Tuple", "scala.runtime.LazyVals"}
	if diff := cmp.Diff(wantNames, names); diff != "" {
		t.Errorf("archived classes mismatch (-want +got):\n%s", diff)
	}
}

func TestScalaMissingLibraryFailsPackaging(t *testing.T) {
	t.Parallel()

	f, p := newFixture(t, "Main.scala")
	runner := processtest.NewRunner(emitClasses(t, f.out, "Main"))
	err := NewDispatcher(f.tc, f.layout, runner, nil).Compile(context.Background(), p)
	if !errors.Is(err, archive.ErrPackagingFailed) {
		t.Errorf("Compile() error = %v, want ErrPackagingFailed", err)
	}
	if Observe(f.layout.ArchivePath(), false).MarkerPresent {
		t.Error("marker present after packaging failure")
	}
}

func TestUnknownLanguageIsNoOp(t *testing.T) {
	t.Parallel()

	f, p := newFixture(t, "README.md")
	runner := processtest.NewRunner(nil)
	err := NewDispatcher(f.tc, f.layout, runner, nil).Compile(context.Background(), p)
	if !errors.Is(err, ErrUnknownExtension) {
		t.Errorf("Compile() error = %v, want ErrUnknownExtension", err)
	}
	if len(runner.Calls()) != 0 {
		t.Errorf("runner called %d times, want 0", len(runner.Calls()))
	}
}

func TestClean(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "out")
	testutil.MustWriteFile(t, filepath.Join(out, "com", "A.class"), "a")
	if err := Clean(out); err != nil {
		t.Fatalf("Clean() error = %v", err)
	}
	if _, err := os.Stat(out); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("output dir still present: %v", err)
	}
	if err := Clean(out); err != nil {
		t.Errorf("Clean() on missing dir error = %v", err)
	}
	if err := Clean(""); err == nil {
		t.Error("Clean(\"\") succeeded")
	}
}

func TestRegistryLanguages(t *testing.T) {
	t.Parallel()

	got := DefaultRegistry().Languages()
	want := []types.Language{types.LanguageJava, types.LanguageKotlin, types.LanguageScala}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Languages() mismatch (-want +got):\n%s", diff)
	}
	if _, ok := DefaultRegistry().Get(types.LanguageUnknown); ok {
		t.Error("Get(unknown) found a strategy")
	}
}

// writeZip writes a zip archive holding the named entries.
func writeZip(t *testing.T, path string, names []string) {
	t.Helper()

	testutil.MustMkdirAll(t, filepath.Dir(path), 0o755)
	out, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(out)
	for _, name := range names {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(name)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	testutil.MustClose(t, out)
}
