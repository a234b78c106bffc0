// SPDX-License-Identifier: MPL-2.0

package config

// configDirOverride replaces the platform config directory when non-empty.
var configDirOverride string

// SetConfigDirOverride points ConfigDir at dir until the returned function is
// called. os.UserHomeDir ignores HOME on some platforms, so tests that need an
// isolated config directory set it here instead.
func SetConfigDirOverride(dir string) (restore func()) {
	prev := configDirOverride
	configDirOverride = dir
	return func() { configDirOverride = prev }
}
