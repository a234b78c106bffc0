// SPDX-License-Identifier: MPL-2.0

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// FormatCUE renders the configuration in the config file format.
	FormatCUE Format = "cue"
	// FormatJSON renders indented JSON.
	FormatJSON Format = "json"
	// FormatYAML renders YAML.
	FormatYAML Format = "yaml"
)

// ErrUnknownFormat is returned for an unsupported output format.
var ErrUnknownFormat = errors.New("unknown output format")

// Format selects how a configuration is rendered.
type Format string

// ParseFormat accepts cue, json or yaml (case-insensitive, "yml" allowed).
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "cue":
		return FormatCUE, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q (valid: cue, json, yaml)", ErrUnknownFormat, s)
	}
}

// Render renders cfg in the given format.
func Render(cfg *Config, format Format) (string, error) {
	switch format {
	case FormatCUE:
		return GenerateCUE(cfg), nil
	case FormatJSON:
		out, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to render config as JSON: %w", err)
		}
		return string(out) + "\n", nil
	case FormatYAML:
		var sb strings.Builder
		enc := yaml.NewEncoder(&sb)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return "", fmt.Errorf("failed to render config as YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return "", fmt.Errorf("failed to render config as YAML: %w", err)
		}
		return sb.String(), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
