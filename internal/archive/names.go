// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"path/filepath"
	"strings"
)

// ClassExt is the extension of compiled class files.
const ClassExt = ".class"

// ClassName maps a class file path relative to the output root (either
// separator) to its fully-qualified name: com/example/Main.class becomes
// com.example.Main.
func ClassName(rel string) string {
	name := strings.TrimSuffix(filepath.ToSlash(rel), ClassExt)
	name = strings.ReplaceAll(name, `\`, "/")
	return strings.ReplaceAll(name, "/", ".")
}

// ClassPath is the inverse of ClassName. It returns the slash-separated
// archive entry name for a fully-qualified class name.
func ClassPath(name string) string {
	return strings.ReplaceAll(name, ".", "/") + ClassExt
}

// IsClassFile reports whether name has the class file extension.
func IsClassFile(name string) bool {
	return strings.HasSuffix(name, ClassExt)
}
