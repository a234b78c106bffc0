// SPDX-License-Identifier: MPL-2.0

package bootstrap

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// BundleSource opens the compressed toolchain bundle for reading.
type BundleSource func() (io.ReadCloser, error)

// HasEmbeddedBundle reports whether this binary was built with a toolchain
// payload (build tag embedbundle).
func HasEmbeddedBundle() bool {
	return len(embeddedBundle) > 0
}

// EmbeddedSource returns a source reading the payload compiled into the binary.
func EmbeddedSource() BundleSource {
	return BytesSource(embeddedBundle)
}

// BytesSource returns a source reading b.
func BytesSource(b []byte) BundleSource {
	return func() (io.ReadCloser, error) {
		if len(b) == 0 {
			return nil, ErrNoBundle
		}
		return io.NopCloser(bytes.NewReader(b)), nil
	}
}

// FileSource returns a source reading the bundle file at path.
func FileSource(path string) BundleSource {
	return func() (io.ReadCloser, error) {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open bundle %s: %w", path, err)
		}
		return f, nil
	}
}

// DefaultSource picks the embedded payload when present, otherwise the bundle
// file at bundlePath. With neither, the returned source fails with ErrNoBundle.
func DefaultSource(bundlePath string) BundleSource {
	if HasEmbeddedBundle() {
		return EmbeddedSource()
	}
	if bundlePath != "" {
		return FileSource(bundlePath)
	}
	return func() (io.ReadCloser, error) { return nil, ErrNoBundle }
}
