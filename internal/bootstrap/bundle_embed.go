// SPDX-License-Identifier: MPL-2.0

//go:build embedbundle

package bootstrap

import _ "embed"

// embeddedBundle is the toolchain payload. Release builds place
// languages.tar.zst next to this file and build with -tags embedbundle.
//
//go:embed languages.tar.zst
var embeddedBundle []byte
