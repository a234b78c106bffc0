// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

const (
	// LanguageUnknown marks a tree with no recognizable JVM sources.
	LanguageUnknown Language = "unknown"
	// LanguageJava is compiled with javac.
	LanguageJava Language = "java"
	// LanguageKotlin is compiled with kotlinc into a self-contained jar.
	LanguageKotlin Language = "kotlin"
	// LanguageScala is compiled with the Scala 3 (dotty) compiler.
	LanguageScala Language = "scala"
)

// ErrInvalidLanguage is the sentinel error wrapped by InvalidLanguageError.
var ErrInvalidLanguage = errors.New("invalid language")

type (
	// Language identifies the JVM language of a project.
	Language string

	// InvalidLanguageError is returned when a Language value is not recognized.
	InvalidLanguageError struct {
		Value Language
	}
)

// LanguageForExtension maps a file extension (with the leading dot) to its
// language. Unrecognized extensions map to LanguageUnknown.
func LanguageForExtension(ext string) Language {
	switch ext {
	case ".scala", ".sc":
		return LanguageScala
	case ".java":
		return LanguageJava
	case ".kt":
		return LanguageKotlin
	default:
		return LanguageUnknown
	}
}

// LanguageForPath maps a file path to its language by extension.
func LanguageForPath(path string) Language {
	return LanguageForExtension(filepath.Ext(path))
}

// Extensions returns the source file extensions belonging to l.
func (l Language) Extensions() []string {
	switch l {
	case LanguageScala:
		return []string{".scala", ".sc"}
	case LanguageJava:
		return []string{".java"}
	case LanguageKotlin:
		return []string{".kt"}
	case LanguageUnknown:
		return nil
	}
	return nil
}

// Matches reports whether path has one of l's source extensions.
func (l Language) Matches(path string) bool {
	return l != LanguageUnknown && LanguageForPath(path) == l
}

// DisplayName returns the capitalized language name used in progress messages.
func (l Language) DisplayName() string {
	if l == "" {
		return "Unknown"
	}
	return strings.ToUpper(string(l[:1])) + string(l[1:])
}

// String returns the string representation of the Language.
func (l Language) String() string { return string(l) }

// Validate returns an error if l is not one of the defined languages.
func (l Language) Validate() error {
	switch l {
	case LanguageUnknown, LanguageJava, LanguageKotlin, LanguageScala:
		return nil
	default:
		return &InvalidLanguageError{Value: l}
	}
}

// Error implements the error interface.
func (e *InvalidLanguageError) Error() string {
	return fmt.Sprintf("invalid language %q (valid: java, kotlin, scala, unknown)", e.Value)
}

// Unwrap returns ErrInvalidLanguage for errors.Is() compatibility.
func (e *InvalidLanguageError) Unwrap() error { return ErrInvalidLanguage }
