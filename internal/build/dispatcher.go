// SPDX-License-Identifier: MPL-2.0

package build

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/BendyLand/MyJVM/internal/archive"
	"github.com/BendyLand/MyJVM/internal/discovery"
	"github.com/BendyLand/MyJVM/internal/process"
	"github.com/BendyLand/MyJVM/internal/toolchain"

	"github.com/charmbracelet/log"
)

// Dispatcher routes a project to the compile strategy of its language.
type Dispatcher struct {
	toolchain  *toolchain.Descriptor
	layout     *archive.Layout
	runner     process.Runner
	logger     *log.Logger
	strategies *Registry
}

// NewDispatcher creates a Dispatcher using the default strategies. A nil
// logger discards messages.
func NewDispatcher(tc *toolchain.Descriptor, layout *archive.Layout, runner process.Runner, logger *log.Logger) *Dispatcher {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Dispatcher{
		toolchain:  tc,
		layout:     layout,
		runner:     runner,
		logger:     logger,
		strategies: DefaultRegistry(),
	}
}

// WithRegistry replaces the strategy registry.
func (d *Dispatcher) WithRegistry(r *Registry) *Dispatcher {
	d.strategies = r
	return d
}

// State observes the build marker for this dispatcher's layout.
func (d *Dispatcher) State(force bool) State {
	return Observe(d.layout.ArchivePath(), force)
}

// Compile runs the strategy for the project's language. An existing archive
// is removed first so a failed compile never leaves a stale marker.
func (d *Dispatcher) Compile(ctx context.Context, p *discovery.Project) error {
	strategy, ok := d.strategies.Get(p.Language())
	if !ok {
		d.logger.Warn("Unknown extension. No files compiled.", "language", p.Language())
		return ErrUnknownExtension
	}

	if err := os.Remove(d.layout.ArchivePath()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove stale archive: %w", err)
	}

	d.logger.Info(fmt.Sprintf("Compiling %s files...", p.Language().DisplayName()), "files", len(p.Files()))
	return strategy.Compile(ctx, Job{
		Root:      p.Root(),
		Files:     p.Files(),
		Layout:    d.layout,
		Toolchain: d.toolchain,
		Runner:    d.runner,
	})
}

// Ensure compiles the project unless the build marker is present and force
// is false. It reports whether a compile ran.
func (d *Dispatcher) Ensure(ctx context.Context, p *discovery.Project, force bool) (bool, error) {
	state := d.State(force)
	if !state.NeedsCompile() {
		d.logger.Info("Project already compiled, skipping compilation.", "archive", state.ArchivePath)
		return false, nil
	}
	if err := d.Compile(ctx, p); err != nil {
		return true, err
	}
	return true, nil
}
