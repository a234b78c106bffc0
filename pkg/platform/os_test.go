// SPDX-License-Identifier: MPL-2.0

package platform

import "testing"

func TestLauncherNames(t *testing.T) {
	t.Parallel()

	tests := []struct {
		goos       string
		executable string
		script     string
	}{
		{goos: Linux, executable: "javac", script: "kotlinc"},
		{goos: Darwin, executable: "javac", script: "kotlinc"},
		{goos: Windows, executable: "javac.exe", script: "kotlinc.bat"},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			t.Parallel()

			if got := ExecutableName(tt.goos, "javac"); got != tt.executable {
				t.Errorf("ExecutableName(%q) = %q, want %q", tt.goos, got, tt.executable)
			}
			if got := ScriptName(tt.goos, "kotlinc"); got != tt.script {
				t.Errorf("ScriptName(%q) = %q, want %q", tt.goos, got, tt.script)
			}
		})
	}
}
