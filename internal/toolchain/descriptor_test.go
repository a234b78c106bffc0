// SPDX-License-Identifier: MPL-2.0

package toolchain

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	d, err := Load(root)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if d.ScalaVersion != "3.3.1" {
		t.Errorf("ScalaVersion = %q, want 3.3.1", d.ScalaVersion)
	}
	if !strings.HasPrefix(d.Java(), filepath.Join(root, "jvm-runtime-standard", "bin")) {
		t.Errorf("Java() = %q, want under jvm-runtime-standard/bin", d.Java())
	}
	if got := len(d.ScalaJars()); got != 12 {
		t.Errorf("len(ScalaJars()) = %d, want 12", got)
	}
	if filepath.Base(d.ScalaLibrary()) != "scala3-library_3-3.3.1.jar" {
		t.Errorf("ScalaLibrary() = %q", d.ScalaLibrary())
	}
	if d.ScalaCompilerMain() != "dotty.tools.dotc.Main" {
		t.Errorf("ScalaCompilerMain() = %q", d.ScalaCompilerMain())
	}

	parts := strings.Split(d.ScalaClasspath(), string(filepath.ListSeparator))
	if diff := cmp.Diff(d.ScalaJars(), parts); diff != "" {
		t.Errorf("ScalaClasspath() mismatch (-want +got):\n%s", diff)
	}
}

func TestScalaJarsReturnsCopy(t *testing.T) {
	t.Parallel()

	d, err := Load(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	jars := d.ScalaJars()
	jars[0] = "mutated"
	if d.ScalaJars()[0] == "mutated" {
		t.Error("ScalaJars() exposed the descriptor's backing slice")
	}
}

func TestLoadManifestOverrides(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	manifest := `
[jvm]
home = "jdk-21"

[scala]
version = "3.4.0"
jars = ["scala3-compiler_3-3.4.0.jar", "scala3-library_3-3.4.0.jar"]
library = "scala3-library_3-3.4.0.jar"
`
	if err := os.WriteFile(filepath.Join(root, ManifestFileName), []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}

	d, err := Load(root)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if d.ScalaVersion != "3.4.0" {
		t.Errorf("ScalaVersion = %q, want 3.4.0", d.ScalaVersion)
	}
	if !strings.Contains(d.Javac(), "jdk-21") {
		t.Errorf("Javac() = %q, want it under jdk-21", d.Javac())
	}
	if got := len(d.ScalaJars()); got != 2 {
		t.Errorf("len(ScalaJars()) = %d, want 2", got)
	}
	if !strings.Contains(d.Kotlinc(), "kotlin-compiler") {
		t.Errorf("Kotlinc() = %q, want default kotlin home kept", d.Kotlinc())
	}
}

func TestLoadInvalidManifest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		manifest string
	}{
		{name: "not toml", manifest: "this is [not toml"},
		{name: "bad version", manifest: "[scala]\nversion = \"three\"\n"},
		{name: "library not in jars", manifest: "[scala]\nlibrary = \"other.jar\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root := t.TempDir()
			if err := os.WriteFile(filepath.Join(root, ManifestFileName), []byte(tt.manifest), 0o644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(root)
			if !errors.Is(err, ErrInvalidManifest) {
				t.Errorf("Load() error = %v, want ErrInvalidManifest", err)
			}
		})
	}
}

func TestMissingComponents(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	d, err := Load(root)
	if err != nil {
		t.Fatal(err)
	}

	if got := len(d.Missing()); got != len(d.ComponentNames()) {
		t.Errorf("len(Missing()) = %d on empty install, want %d", got, len(d.ComponentNames()))
	}

	for _, path := range d.Components() {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if missing := d.Missing(); len(missing) != 0 {
		t.Errorf("Missing() = %v, want none", missing)
	}
}

func TestComponentNamesSorted(t *testing.T) {
	t.Parallel()

	d, err := Load(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	names := d.ComponentNames()
	if len(names) != len(d.Components()) {
		t.Fatalf("len(ComponentNames()) = %d, want %d", len(names), len(d.Components()))
	}
	if !slices.IsSorted(names) {
		t.Errorf("ComponentNames() = %v, want sorted", names)
	}
	if diff := cmp.Diff([]string{"java", "javac", "kotlinc"}, names[:3]); diff != "" {
		t.Errorf("leading component names mismatch (-want +got):\n%s", diff)
	}
}
