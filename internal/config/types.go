// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BendyLand/MyJVM/internal/archive"
	"github.com/BendyLand/MyJVM/pkg/platform"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// DefaultRuntimeDir is where the toolchain bundle is extracted.
	DefaultRuntimeDir = ".languages"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidArchiveName is returned when the archive name is not a bare .jar file name.
	ErrInvalidArchiveName = errors.New("invalid archive name")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// InvalidArchiveNameError is returned when BuildConfig.ArchiveName is empty,
	// contains a path separator, or lacks the .jar extension.
	InvalidArchiveNameError struct {
		Value string
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sections.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// Runtime configures where the toolchain bundle comes from and goes to.
		Runtime RuntimeConfig `json:"runtime" yaml:"runtime" mapstructure:"runtime"`
		// Build configures the output layout and recompilation.
		Build BuildConfig `json:"build" yaml:"build" mapstructure:"build"`
		// Run configures the JVM launch.
		Run RunConfig `json:"run" yaml:"run" mapstructure:"run"`
		// UI configures the user interface.
		UI UIConfig `json:"ui" yaml:"ui" mapstructure:"ui"`
	}

	// RuntimeConfig locates the toolchain bundle.
	RuntimeConfig struct {
		// Dir is the extraction directory, relative to the working directory unless absolute.
		Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`
		// BundlePath names an external .tar.zst bundle; empty uses the embedded one.
		BundlePath string `json:"bundle_path" yaml:"bundle_path" mapstructure:"bundle_path"`
	}

	// BuildConfig configures compilation output.
	BuildConfig struct {
		// OutputDir holds classes and the archive, relative to the project unless absolute.
		OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`
		// ArchiveName is the archive file name inside OutputDir.
		ArchiveName string `json:"archive_name" yaml:"archive_name" mapstructure:"archive_name"`
		// ForceRecompile ignores an existing archive.
		ForceRecompile bool `json:"force_recompile" yaml:"force_recompile" mapstructure:"force_recompile"`
	}

	// RunConfig configures the JVM launch.
	RunConfig struct {
		// JVMOptions is split into words and placed before -cp/-jar.
		JVMOptions string `json:"jvm_options" yaml:"jvm_options" mapstructure:"jvm_options"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" yaml:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables debug logging of command lines
		Verbose bool `json:"verbose" yaml:"verbose" mapstructure:"verbose"`
		// TTY attaches compilers and programs to a pseudo-terminal
		TTY bool `json:"tty" yaml:"tty" mapstructure:"tty"`
	}
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Runtime: RuntimeConfig{
			Dir: DefaultRuntimeDir,
		},
		Build: BuildConfig{
			OutputDir:   archive.DefaultOutputDir,
			ArchiveName: archive.DefaultArchiveName,
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
		},
	}
}

// String returns the string representation of the ColorScheme.
func (c ColorScheme) String() string { return string(c) }

// IsValid returns whether the ColorScheme is one of the defined color schemes.
func (c ColorScheme) IsValid() (bool, []error) {
	switch c {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: c}}
	}
}

// GlamourStyle maps the scheme to a glamour standard style name.
// Output that is not a terminal is rendered without colors by glamour's
// "auto" style.
func (c ColorScheme) GlamourStyle() string {
	switch c {
	case ColorSchemeDark, ColorSchemeLight:
		return string(c)
	default:
		return string(ColorSchemeAuto)
	}
}

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns ErrInvalidColorScheme for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// Error implements the error interface for InvalidArchiveNameError.
func (e *InvalidArchiveNameError) Error() string {
	return fmt.Sprintf("invalid archive name %q: must be a portable file name ending in .jar", e.Value)
}

// Unwrap returns ErrInvalidArchiveName for errors.Is() compatibility.
func (e *InvalidArchiveNameError) Unwrap() error { return ErrInvalidArchiveName }

// IsValid returns whether the BuildConfig has valid fields.
func (c BuildConfig) IsValid() (bool, []error) {
	name := c.ArchiveName
	if name == "" || filepath.Base(name) != name || strings.ContainsAny(name, `/\`) || !strings.HasSuffix(name, ".jar") ||
		platform.IsWindowsReservedName(name) {
		return false, []error{&InvalidArchiveNameError{Value: name}}
	}
	return true, nil
}

// IsValid returns whether the Config has valid fields.
// Runtime and Run carry free-form strings and need no validation.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Build.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.UI.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, 0, len(e.FieldErrors))
	for _, err := range e.FieldErrors {
		msgs = append(msgs, err.Error())
	}
	return "invalid config: " + strings.Join(msgs, "; ")
}

// Unwrap returns ErrInvalidConfig and the field errors for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}
