// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"archive/tar"
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"testing"

	"github.com/BendyLand/MyJVM/pkg/platform"

	"github.com/klauspost/compress/zstd"
	"golang.org/x/exp/maps"
)

// ToolchainLaunchers are the launcher paths (relative to the bundle root) a
// minimal toolchain bundle must provide for the installer's permission repair.
func ToolchainLaunchers() []string {
	return []string{
		"jvm-runtime-standard/bin/" + platform.ExecutableName(runtime.GOOS, "java"),
		"jvm-runtime-standard/bin/" + platform.ExecutableName(runtime.GOOS, "javac"),
		"kotlin-compiler/kotlinc/bin/" + platform.ScriptName(runtime.GOOS, "kotlinc"),
	}
}

// BuildBundle returns a zstd-compressed tar archive whose entries are the
// given files placed under root ("" puts them at the archive top level).
// Entries are written in sorted order with mode 0644.
func BuildBundle(t testing.TB, root string, files map[string]string) []byte {
	t.Helper()

	var tarBuf bytes.Buffer
	tw := tar.NewWriter(&tarBuf)
	if root != "" {
		if err := tw.WriteHeader(&tar.Header{Name: root + "/", Typeflag: tar.TypeDir, Mode: 0o755}); err != nil {
			t.Fatalf("failed to write dir header: %v", err)
		}
	}
	names := maps.Keys(files)
	slices.Sort(names)
	for _, name := range names {
		body := files[name]
		entry := name
		if root != "" {
			entry = root + "/" + name
		}
		hdr := &tar.Header{Name: entry, Typeflag: tar.TypeReg, Mode: 0o644, Size: int64(len(body))}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatalf("failed to write header for %s: %v", entry, err)
		}
		if _, err := tw.Write([]byte(body)); err != nil {
			t.Fatalf("failed to write body for %s: %v", entry, err)
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("failed to close tar writer: %v", err)
	}

	var out bytes.Buffer
	enc, err := zstd.NewWriter(&out)
	if err != nil {
		t.Fatalf("failed to create zstd writer: %v", err)
	}
	if _, err := enc.Write(tarBuf.Bytes()); err != nil {
		t.Fatalf("failed to compress bundle: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("failed to close zstd writer: %v", err)
	}
	return out.Bytes()
}

// ToolchainBundle returns a bundle rooted at ".languages" containing the
// toolchain launchers plus extra files.
func ToolchainBundle(t testing.TB, extra map[string]string) []byte {
	t.Helper()

	files := make(map[string]string, len(extra)+3)
	for _, launcher := range ToolchainLaunchers() {
		files[launcher] = "#!/bin/sh\nexit 0\n"
	}
	for name, body := range extra {
		files[name] = body
	}
	return BuildBundle(t, ".languages", files)
}

// InstallLaunchers creates dir as a minimal toolchain installation holding
// only the launchers, so the installer treats it as complete.
func InstallLaunchers(t testing.TB, dir string) {
	t.Helper()
	for _, launcher := range ToolchainLaunchers() {
		MustWriteFile(t, filepath.Join(dir, filepath.FromSlash(launcher)), "#!/bin/sh\nexit 0\n")
	}
}

// MustWriteFile writes content to path, creating parent directories.
// The test fails immediately if the write fails.
func MustWriteFile(t testing.TB, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create parent of %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}
