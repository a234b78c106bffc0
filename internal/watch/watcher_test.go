// SPDX-License-Identifier: MPL-2.0

package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/BendyLand/MyJVM/pkg/types"

	"github.com/google/go-cmp/cmp"
)

// startWatcher runs a watcher over dir and returns the channel receiving
// each callback's changed set. The watcher stops when the test ends.
func startWatcher(t *testing.T, cfg Config) <-chan []string {
	t.Helper()

	calls := make(chan []string, 10)
	cfg.Debounce = 50 * time.Millisecond
	cfg.OnChange = func(_ context.Context, changed []string) error {
		calls <- changed
		return nil
	}
	w, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		if err := <-errCh; err != nil {
			t.Errorf("Run() error: %v", err)
		}
	})
	return calls
}

func write(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("class X {}"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func waitCall(t *testing.T, calls <-chan []string) []string {
	t.Helper()
	select {
	case changed := <-calls:
		return changed
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for callback")
		return nil
	}
}

func TestSourcePatterns(t *testing.T) {
	t.Parallel()

	got := SourcePatterns(types.LanguageJava, types.LanguageScala)
	want := []string{"**/*.java", "**/*.scala", "**/*.sc"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SourcePatterns() mismatch (-want +got):\n%s", diff)
	}
}

func TestDefaultIgnores(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path    string
		ignored bool
	}{
		{".git/HEAD", true},
		{".languages/jvm-runtime-standard/bin/java", true},
		{"sub/.languages/x", true},
		{"App.java.swp", true},
		{"App.java~", true},
		{"src/.DS_Store", true},
		{"App.java", false},
		{"src/main/Main.kt", false},
		{".gitignore", false},
	}

	for _, tt := range tests {
		if got := matchAny(defaultIgnores, tt.path); got != tt.ignored {
			t.Errorf("ignored(%q) = %v, want %v", tt.path, got, tt.ignored)
		}
	}
}

func TestWatcherCoalescesSourceChanges(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	calls := startWatcher(t, Config{Root: dir, Patterns: SourcePatterns(types.LanguageJava)})

	for _, name := range []string{"B.java", "notes.txt", "A.java"} {
		write(t, filepath.Join(dir, name))
		time.Sleep(10 * time.Millisecond)
	}

	if diff := cmp.Diff([]string{"A.java", "B.java"}, waitCall(t, calls)); diff != "" {
		t.Errorf("changed mismatch (-want +got):\n%s", diff)
	}
	select {
	case extra := <-calls:
		t.Errorf("unexpected second callback: %v", extra)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherIgnoresOutputDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, sub := range []string{"out", filepath.Join("src", "app")} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	calls := startWatcher(t, Config{Root: dir, Ignore: []string{"out/**"}})

	write(t, filepath.Join(dir, "out", "App.class"))
	time.Sleep(150 * time.Millisecond)
	write(t, filepath.Join(dir, "src", "app", "App.java"))

	if diff := cmp.Diff([]string{"src/app/App.java"}, waitCall(t, calls)); diff != "" {
		t.Errorf("changed mismatch (-want +got):\n%s", diff)
	}
}

func TestWatcherStopsOnCancel(t *testing.T) {
	t.Parallel()

	w, err := New(Config{Root: t.TempDir()})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()
	time.Sleep(50 * time.Millisecond)

	if err := w.Run(ctx); !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("second Run() error = %v, want ErrAlreadyStarted", err)
	}

	cancel()
	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("Run() error on cancel: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after cancellation")
	}
}

func TestRunWaitsForRunningCallback(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	started := make(chan struct{})
	release := make(chan struct{})
	var (
		finished atomic.Bool
		once     sync.Once
	)
	w, err := New(Config{
		Root:     root,
		Patterns: SourcePatterns(types.LanguageJava),
		Debounce: 20 * time.Millisecond,
		OnChange: func(context.Context, []string) error {
			once.Do(func() { close(started) })
			<-release
			finished.Store(true)
			return nil
		},
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()
	time.Sleep(50 * time.Millisecond)

	write(t, filepath.Join(root, "App.java"))
	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("callback never started")
	}

	cancel()
	select {
	case err := <-errCh:
		t.Fatalf("Run() returned %v while the callback was still running", err)
	case <-time.After(100 * time.Millisecond):
	}

	close(release)
	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("Run() error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after the callback finished")
	}
	if !finished.Load() {
		t.Error("Run() returned before the callback finished")
	}
}

func TestNewRejectsInvalidPattern(t *testing.T) {
	t.Parallel()

	for _, cfg := range []Config{
		{Patterns: []string{"[unclosed"}},
		{Ignore: []string{"out/[a-"}},
	} {
		cfg.Root = t.TempDir()
		if _, err := New(cfg); !errors.Is(err, ErrInvalidPattern) {
			t.Errorf("New(%v) error = %v, want ErrInvalidPattern", cfg.Patterns, err)
		}
	}
}

func TestNewMissingRoot(t *testing.T) {
	t.Parallel()

	if _, err := New(Config{Root: filepath.Join(t.TempDir(), "missing")}); err == nil {
		t.Fatal("New() succeeded for a missing root")
	}
}
