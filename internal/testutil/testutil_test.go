// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"archive/tar"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/BendyLand/MyJVM/pkg/platform"

	"github.com/google/go-cmp/cmp"
	"github.com/klauspost/compress/zstd"
)

func TestSetHomeDir(t *testing.T) {
	key := "HOME"
	if runtime.GOOS == platform.Windows {
		key = "USERPROFILE"
	}
	original, hadOriginal := os.LookupEnv(key)

	dir := t.TempDir()
	cleanup := SetHomeDir(t, dir)
	if got := os.Getenv(key); got != dir {
		t.Errorf("%s = %q, want %q", key, got, dir)
	}

	cleanup()
	got, has := os.LookupEnv(key)
	if has != hadOriginal || got != original {
		t.Errorf("after cleanup %s = (%q, %v), want (%q, %v)", key, got, has, original, hadOriginal)
	}
}

func TestMustChdir(t *testing.T) {
	before, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	restore := MustChdir(t, dir)
	now, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	// Resolve symlinks: TempDir may live under a linked path on macOS.
	wantDir, _ := filepath.EvalSymlinks(dir)
	gotDir, _ := filepath.EvalSymlinks(now)
	if gotDir != wantDir {
		t.Errorf("working directory = %q, want %q", gotDir, wantDir)
	}

	restore()
	if after, _ := os.Getwd(); after != before {
		t.Errorf("working directory after restore = %q, want %q", after, before)
	}
}

func TestBuildBundle(t *testing.T) {
	t.Parallel()

	data := BuildBundle(t, ".languages", map[string]string{
		"b.txt":     "bee",
		"dir/a.txt": "ay",
	})

	dec, err := zstd.NewReader(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	defer dec.Close()

	var names []string
	tr := tar.NewReader(dec)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		names = append(names, hdr.Name)
	}

	want := []string{".languages/", ".languages/b.txt", ".languages/dir/a.txt"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
}
