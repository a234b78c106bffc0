// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"runtime"
	"testing"

	"github.com/BendyLand/MyJVM/pkg/platform"
)

// SetHomeDir points the user home directory (USERPROFILE on Windows, HOME
// elsewhere) at dir and returns a cleanup function restoring the old value.
// Callers must not run in parallel.
//
//	t.Cleanup(testutil.SetHomeDir(t, t.TempDir()))
func SetHomeDir(t testing.TB, dir string) func() {
	t.Helper()

	if runtime.GOOS == platform.Windows {
		return MustSetenv(t, "USERPROFILE", dir)
	}
	return MustSetenv(t, "HOME", dir)
}
