// SPDX-License-Identifier: MPL-2.0

//go:build !embedbundle

package bootstrap

// embeddedBundle is empty in development builds; configure runtime.bundle_path
// to point at a languages.tar.zst instead.
var embeddedBundle []byte
