// SPDX-License-Identifier: MPL-2.0

package platform

import "strings"

// reservedNames are the device names Windows refuses as file names,
// whatever the extension.
var reservedNames = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true, "COM5": true,
	"COM6": true, "COM7": true, "COM8": true, "COM9": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true, "LPT5": true,
	"LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
}

// IsWindowsReservedName reports whether name, ignoring case and its last
// extension, is a Windows device name such as NUL or COM1. An archive named
// "nul.jar" cannot be created on Windows.
func IsWindowsReservedName(name string) bool {
	base := strings.ToUpper(name)
	if idx := strings.LastIndex(base, "."); idx != -1 {
		base = base[:idx]
	}
	return reservedNames[base]
}
