// SPDX-License-Identifier: MPL-2.0

package platform

// GOOS values compared against runtime.GOOS.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)

// ExecutableName returns the on-disk name of a native launcher such as java
// or javac on goos.
func ExecutableName(goos, name string) string {
	if goos == Windows {
		return name + ".exe"
	}
	return name
}

// ScriptName returns the on-disk name of a shell launcher such as kotlinc on
// goos. Windows bundles ship a batch file in its place.
func ScriptName(goos, name string) string {
	if goos == Windows {
		return name + ".bat"
	}
	return name
}
