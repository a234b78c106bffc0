// SPDX-License-Identifier: MPL-2.0

package toolchain

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/BendyLand/MyJVM/pkg/platform"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/exp/maps"
	"golang.org/x/mod/semver"
)

const (
	// DefaultDirName is the conventional name of the installation directory,
	// also the top-level directory inside the bundled archive.
	DefaultDirName = ".languages"
	// ManifestFileName is the optional manifest read from the installation root.
	ManifestFileName = "toolchain.toml"

	// ScalaJavaCPProperty makes the Scala compiler and programs see the JVM
	// classpath.
	ScalaJavaCPProperty = "-Dscala.usejavacp=true"
)

var (
	// ErrInvalidManifest is returned when toolchain.toml cannot be used.
	ErrInvalidManifest = errors.New("invalid toolchain manifest")

	// defaultScalaJars is the fixed Scala 3.3.1 compiler/runtime classpath.
	defaultScalaJars = []string{
		"scala3-compiler_3-3.3.1.jar",
		"scala3-library_3-3.3.1.jar",
		"scala3-interfaces-3.3.1.jar",
		"scala-library-2.13.12.jar",
		"tasty-core_3-3.3.1.jar",
		"scala-asm-9.5.0-scala-1.jar",
		"util-interface-1.3.0.jar",
		"protobuf-java-3.7.0.jar",
		"jline-reader-3.19.0.jar",
		"jline-terminal-3.19.0.jar",
		"jline-terminal-jna-3.19.0.jar",
		"jna-5.3.1.jar",
	}
)

type (
	// Manifest is the on-disk toolchain.toml format. Every path is relative
	// to the installation root.
	Manifest struct {
		JVM    JVMSection    `toml:"jvm"`
		Kotlin KotlinSection `toml:"kotlin"`
		Scala  ScalaSection  `toml:"scala"`
	}

	// JVMSection locates the Java runtime and compiler.
	JVMSection struct {
		Home string `toml:"home"`
	}

	// KotlinSection locates the Kotlin compiler distribution.
	KotlinSection struct {
		Home string `toml:"home"`
	}

	// ScalaSection pins the Scala compiler version and its jar set.
	ScalaSection struct {
		Version      string   `toml:"version"`
		JarDir       string   `toml:"jar_dir"`
		CompilerMain string   `toml:"compiler_main"`
		Jars         []string `toml:"jars"`
		Library      string   `toml:"library"`
	}

	// Descriptor is the resolved, absolute view of an installation.
	Descriptor struct {
		// Root is the absolute installation directory.
		Root string
		// ScalaVersion is the pinned Scala compiler version.
		ScalaVersion string

		java         string
		javac        string
		kotlinc      string
		scalaMain    string
		scalaJars    []string
		scalaLibrary string
	}
)

// DefaultManifest returns the layout of the bundled archive.
func DefaultManifest() Manifest {
	return Manifest{
		JVM:    JVMSection{Home: "jvm-runtime-standard"},
		Kotlin: KotlinSection{Home: filepath.Join("kotlin-compiler", "kotlinc")},
		Scala: ScalaSection{
			Version:      "3.3.1",
			JarDir:       "scala-compiler-jars",
			CompilerMain: "dotty.tools.dotc.Main",
			Jars:         slices.Clone(defaultScalaJars),
			Library:      "scala3-library_3-3.3.1.jar",
		},
	}
}

// Load resolves the descriptor for the installation at root. A missing
// manifest is not an error; an unreadable or invalid one is.
func Load(root string) (*Descriptor, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve toolchain root: %w", err)
	}

	m := DefaultManifest()
	data, err := os.ReadFile(filepath.Join(abs, ManifestFileName))
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidManifest, ManifestFileName, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read %s: %w", ManifestFileName, err)
	}

	return FromManifest(abs, m)
}

// FromManifest validates m and resolves its paths against root.
func FromManifest(root string, m Manifest) (*Descriptor, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	jarDir := filepath.Join(root, m.Scala.JarDir)
	jars := make([]string, len(m.Scala.Jars))
	for i, jar := range m.Scala.Jars {
		jars[i] = filepath.Join(jarDir, jar)
	}

	jvmBin := filepath.Join(root, m.JVM.Home, "bin")
	return &Descriptor{
		Root:         root,
		ScalaVersion: m.Scala.Version,
		java:         filepath.Join(jvmBin, platform.ExecutableName(runtime.GOOS, "java")),
		javac:        filepath.Join(jvmBin, platform.ExecutableName(runtime.GOOS, "javac")),
		kotlinc:      filepath.Join(root, m.Kotlin.Home, "bin", platform.ScriptName(runtime.GOOS, "kotlinc")),
		scalaMain:    m.Scala.CompilerMain,
		scalaJars:    jars,
		scalaLibrary: filepath.Join(jarDir, m.Scala.Library),
	}, nil
}

// Validate checks that every section names something usable.
func (m Manifest) Validate() error {
	var problems []string
	if strings.TrimSpace(m.JVM.Home) == "" {
		problems = append(problems, "jvm.home is empty")
	}
	if strings.TrimSpace(m.Kotlin.Home) == "" {
		problems = append(problems, "kotlin.home is empty")
	}
	if !semver.IsValid("v" + m.Scala.Version) {
		problems = append(problems, fmt.Sprintf("scala.version %q is not a semantic version", m.Scala.Version))
	}
	if strings.TrimSpace(m.Scala.CompilerMain) == "" {
		problems = append(problems, "scala.compiler_main is empty")
	}
	if len(m.Scala.Jars) == 0 {
		problems = append(problems, "scala.jars is empty")
	}
	if m.Scala.Library == "" {
		problems = append(problems, "scala.library is empty")
	} else if !slices.Contains(m.Scala.Jars, m.Scala.Library) {
		problems = append(problems, fmt.Sprintf("scala.library %q is not listed in scala.jars", m.Scala.Library))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidManifest, strings.Join(problems, "; "))
	}
	return nil
}

// Java returns the JVM launcher.
func (d *Descriptor) Java() string { return d.java }

// Javac returns the Java compiler.
func (d *Descriptor) Javac() string { return d.javac }

// Kotlinc returns the Kotlin compiler launcher script.
func (d *Descriptor) Kotlinc() string { return d.kotlinc }

// ScalaCompilerMain returns the main class of the Scala compiler.
func (d *Descriptor) ScalaCompilerMain() string { return d.scalaMain }

// ScalaLibrary returns the Scala standard-library jar merged into Scala output.
func (d *Descriptor) ScalaLibrary() string { return d.scalaLibrary }

// ScalaJars returns a copy of the Scala compiler/runtime jar set, in classpath order.
func (d *Descriptor) ScalaJars() []string { return slices.Clone(d.scalaJars) }

// ScalaClasspath joins the Scala jars with the platform list separator.
func (d *Descriptor) ScalaClasspath() string {
	return strings.Join(d.scalaJars, string(filepath.ListSeparator))
}

// Executables returns the binaries that need execute permission after
// extraction, keyed by component name.
func (d *Descriptor) Executables() map[string]string {
	return map[string]string{
		"java":    d.java,
		"javac":   d.javac,
		"kotlinc": d.kotlinc,
	}
}

// Components returns every path the installation is expected to provide,
// keyed by a display name.
func (d *Descriptor) Components() map[string]string {
	out := d.Executables()
	for _, jar := range d.scalaJars {
		out["scala:"+filepath.Base(jar)] = jar
	}
	return out
}

// ComponentNames returns the keys of Components in sorted order.
func (d *Descriptor) ComponentNames() []string {
	names := maps.Keys(d.Components())
	slices.Sort(names)
	return names
}

// Missing returns the sorted component names whose paths do not exist.
func (d *Descriptor) Missing() []string {
	components := d.Components()
	var missing []string
	for _, name := range d.ComponentNames() {
		if _, err := os.Stat(components[name]); err != nil {
			missing = append(missing, name)
		}
	}
	return missing
}
