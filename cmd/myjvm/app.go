// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/BendyLand/MyJVM/internal/config"
	"github.com/BendyLand/MyJVM/internal/process"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

type (
	// App wires CLI services and shared dependencies. All Cobra handlers
	// receive an App reference and reach configuration, process execution and
	// output streams through it.
	App struct {
		Config    ConfigProvider
		NewRunner RunnerFactory
		// EnvFiles are dotenv files loaded before configuration. Missing files
		// are skipped; variables already in the environment are not overridden.
		EnvFiles []string
		stdout   io.Writer
		stderr   io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config    ConfigProvider
		NewRunner RunnerFactory
		EnvFiles  []string
		Stdout    io.Writer
		Stderr    io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, string, error)
	}

	// RunnerFactory builds the process runner for one invocation.
	RunnerFactory func(tty bool, logger *log.Logger) process.Runner

	// session is the per-invocation state resolved from flags and configuration.
	session struct {
		cfg     *config.Config
		cfgPath string
		verbose bool
		logger  *log.Logger
		runner  process.Runner
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.NewRunner == nil {
		deps.NewRunner = defaultRunner
	}
	if deps.EnvFiles == nil {
		deps.EnvFiles = []string{".env"}
	}

	return &App{
		Config:    deps.Config,
		NewRunner: deps.NewRunner,
		EnvFiles:  deps.EnvFiles,
		stdout:    deps.Stdout,
		stderr:    deps.Stderr,
	}
}

func defaultRunner(tty bool, logger *log.Logger) process.Runner {
	if tty {
		return process.NewPTYRunner(logger)
	}
	return process.NewExecRunner(logger)
}

// newSession loads dotenv files and configuration, then applies flag
// overrides. Flags only ever turn options on.
func (a *App) newSession(ctx context.Context, flags *rootFlags) (*session, error) {
	if err := a.loadEnvFiles(); err != nil {
		return nil, err
	}

	cfg, cfgPath, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: flags.cfgFile})
	if err != nil {
		return nil, err
	}

	verbose := flags.verbose || cfg.UI.Verbose
	logger := newLogger(a.stderr, verbose)
	if cfgPath != "" {
		logger.Debug("loaded configuration", "path", cfgPath)
	}

	return &session{
		cfg:     cfg,
		cfgPath: cfgPath,
		verbose: verbose,
		logger:  logger,
		runner:  a.NewRunner(flags.tty || cfg.UI.TTY, logger),
	}, nil
}

func (a *App) loadEnvFiles() error {
	for _, path := range a.EnvFiles {
		err := godotenv.Load(path)
		if err == nil || errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// newLogger builds the CLI logger. Progress messages are Info; command lines
// and build state are Debug and only shown when verbose.
func newLogger(w io.Writer, verbose bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{Prefix: "myjvm"})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
