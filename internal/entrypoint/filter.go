// SPDX-License-Identifier: MPL-2.0

package entrypoint

import (
	"strings"

	"github.com/BendyLand/MyJVM/pkg/types"
)

// syntheticMarker appears in the names of inner, anonymous and companion
// classes, none of which are launched directly.
const syntheticMarker = "$"

// StdlibPrefixes returns the package prefixes of lang's standard library.
// Classes under them are never tried as entry points.
func StdlibPrefixes(lang types.Language) []string {
	switch lang {
	case types.LanguageScala:
		return []string{"scala."}
	case types.LanguageJava:
		return []string{"java.", "javax.", "jdk."}
	case types.LanguageKotlin:
		return []string{"kotlin."}
	case types.LanguageUnknown:
		return nil
	}
	return nil
}

// Filter drops synthetic names and standard-library names for lang,
// preserving order.
func Filter(names []string, lang types.Language) []string {
	prefixes := StdlibPrefixes(lang)
	kept := make([]string, 0, len(names))
	for _, name := range names {
		if isCandidate(name, prefixes) {
			kept = append(kept, name)
		}
	}
	return kept
}

func isCandidate(name string, prefixes []string) bool {
	if name == "" || strings.Contains(name, syntheticMarker) {
		return false
	}
	for _, p := range prefixes {
		if strings.HasPrefix(name, p) {
			return false
		}
	}
	return true
}
