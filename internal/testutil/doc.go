// SPDX-License-Identifier: MPL-2.0

// Package testutil holds test helpers shared across myjvm packages: Must*
// wrappers that fail the test instead of returning errors, environment and
// working-directory overrides with cleanup, and builders for zstd toolchain
// bundles that stand in for the real .languages archive.
//
// Fake process runners live in the processtest subpackage.
package testutil
