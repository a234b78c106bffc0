// SPDX-License-Identifier: MPL-2.0

// Package config loads myjvm settings using Viper with CUE as the file format.
//
// Configuration is read from the --config file when given, otherwise from
// config.cue in the platform config directory (~/.config/myjvm on Linux,
// ~/Library/Application Support/myjvm on macOS, %APPDATA%\myjvm on Windows),
// otherwise from ./config.cue. Files are validated against the embedded
// #Config schema (config_schema.cue). MYJVM_<SECTION>_<KEY> environment
// variables override file values, and MYJVM_FORCE_RECOMPILE forces a rebuild.
package config
