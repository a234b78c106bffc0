// SPDX-License-Identifier: MPL-2.0

// Package platform holds the GOOS names myjvm branches on and the file-name
// rules that differ between operating systems.
package platform
