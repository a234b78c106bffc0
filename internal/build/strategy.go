// SPDX-License-Identifier: MPL-2.0

package build

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/BendyLand/MyJVM/internal/archive"
	"github.com/BendyLand/MyJVM/internal/process"
	"github.com/BendyLand/MyJVM/internal/toolchain"
	"github.com/BendyLand/MyJVM/pkg/types"
)

type (
	// Job is everything a Strategy needs to compile one project.
	Job struct {
		// Root is the project directory. Compilers run with it as cwd.
		Root string
		// Files are the source files to compile.
		Files []string
		// Layout locates the output directory and archive.
		Layout *archive.Layout
		// Toolchain locates the bundled compilers.
		Toolchain *toolchain.Descriptor
		// Runner launches the compilers.
		Runner process.Runner
	}

	// Strategy compiles the sources of one language and leaves the packaged
	// archive at Job.Layout.ArchivePath().
	Strategy interface {
		Language() types.Language
		Compile(ctx context.Context, job Job) error
	}

	// Registry maps languages to their compile strategies.
	Registry struct {
		strategies map[types.Language]Strategy
	}

	// JavaStrategy compiles with javac into the output directory, then packages
	// the class files.
	JavaStrategy struct{}

	// KotlinStrategy compiles with kotlinc straight into a self-contained jar
	// that includes the Kotlin runtime.
	KotlinStrategy struct{}

	// ScalaStrategy runs the Scala 3 compiler on the JVM, merges the Scala
	// standard library into the output directory, then packages everything.
	ScalaStrategy struct{}
)

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{strategies: make(map[types.Language]Strategy)}
}

// DefaultRegistry returns a registry with the Java, Kotlin and Scala strategies.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(JavaStrategy{})
	r.Register(KotlinStrategy{})
	r.Register(ScalaStrategy{})
	return r
}

// Register adds s, replacing any strategy for the same language.
func (r *Registry) Register(s Strategy) {
	r.strategies[s.Language()] = s
}

// Get returns the strategy for lang.
func (r *Registry) Get(lang types.Language) (Strategy, bool) {
	s, ok := r.strategies[lang]
	return s, ok
}

// Languages returns the registered languages in sorted order.
func (r *Registry) Languages() []types.Language {
	langs := make([]types.Language, 0, len(r.strategies))
	for lang := range r.strategies {
		langs = append(langs, lang)
	}
	slices.Sort(langs)
	return langs
}

// Language implements Strategy.
func (JavaStrategy) Language() types.Language { return types.LanguageJava }

// Compile implements Strategy.
func (JavaStrategy) Compile(ctx context.Context, job Job) error {
	cmd := process.NewCommand(job.Toolchain.Javac(), "-d", job.Layout.OutputDir).
		WithArgs(job.Files...).
		WithDir(job.Root)
	if err := runCompiler(ctx, job.Runner, types.LanguageJava, cmd); err != nil {
		return err
	}
	return packageOutput(job.Layout)
}

// Language implements Strategy.
func (KotlinStrategy) Language() types.Language { return types.LanguageKotlin }

// Compile implements Strategy. kotlinc writes to a temporary jar that is
// renamed over the archive only after a successful compile.
func (KotlinStrategy) Compile(ctx context.Context, job Job) error {
	target := job.Layout.ArchivePath()
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	tmp := filepath.Join(filepath.Dir(target), ".kotlinc-"+filepath.Base(target))

	cmd := process.NewCommand(job.Toolchain.Kotlinc(), "-include-runtime", "-d", tmp).
		WithArgs(job.Files...).
		WithDir(job.Root)
	if err := runCompiler(ctx, job.Runner, types.LanguageKotlin, cmd); err != nil {
		_ = os.Remove(tmp) // may not exist
		return err
	}
	if err := os.Rename(tmp, target); err != nil {
		return &archive.PackagingError{Op: "package", Path: target, Err: err}
	}
	return nil
}

// Language implements Strategy.
func (ScalaStrategy) Language() types.Language { return types.LanguageScala }

// Compile implements Strategy.
func (ScalaStrategy) Compile(ctx context.Context, job Job) error {
	tc := job.Toolchain
	cmd := process.NewCommand(tc.Java(),
		toolchain.ScalaJavaCPProperty,
		"-cp", tc.ScalaClasspath(),
		tc.ScalaCompilerMain(),
		"-sourcepath", job.Root,
		"-d", job.Layout.OutputDir,
	).WithArgs(job.Files...).WithDir(job.Root)
	if err := runCompiler(ctx, job.Runner, types.LanguageScala, cmd); err != nil {
		return err
	}
	if err := job.Layout.MergeRuntimeArchive(tc.ScalaLibrary()); err != nil {
		return err
	}
	return packageOutput(job.Layout)
}

func runCompiler(ctx context.Context, runner process.Runner, lang types.Language, cmd process.CommandSpec) error {
	res := runner.Run(ctx, cmd)
	if res.Success() {
		return nil
	}
	return &CompileError{Language: lang, ExitCode: res.ExitCode, Output: res.Output, Err: res.Err}
}

// packageOutput archives every class file currently in the output directory.
func packageOutput(layout *archive.Layout) error {
	classes, err := layout.ClassFiles()
	if err != nil {
		return err
	}
	_, err = layout.PackageClasses(classes)
	return err
}
