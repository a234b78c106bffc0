// SPDX-License-Identifier: MPL-2.0

package platform

import "testing"

func TestIsWindowsReservedName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"nul", true},
		{"NUL.jar", true},
		{"Con.jar", true},
		{"com9.jar", true},
		{"lpt1", true},
		{"all_files.jar", false},
		{"console.jar", false},
		{"com10.jar", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			if got := IsWindowsReservedName(tt.input); got != tt.want {
				t.Errorf("IsWindowsReservedName(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
