// SPDX-License-Identifier: MPL-2.0

package bootstrap

import (
	"archive/tar"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/BendyLand/MyJVM/internal/toolchain"

	"github.com/charmbracelet/log"
	"github.com/klauspost/compress/zstd"
)

const (
	// DefaultMaxEntryBytes caps a single extracted file (2 GiB). The JDK's
	// largest member (lib/modules) is well below this.
	DefaultMaxEntryBytes int64 = 2 << 30

	// execBits are added to every launcher after extraction.
	execBits fs.FileMode = 0o111

	// stagingSuffix names the sibling directory a bundle is unpacked into.
	stagingSuffix = ".partial"
)

type (
	// Installer extracts the toolchain bundle into Dir.
	Installer struct {
		// Dir is the installation directory and the install sentinel.
		Dir string
		// Source opens the compressed bundle.
		Source BundleSource
		// Logger receives progress messages. Nil disables logging.
		Logger *log.Logger
		// MaxEntryBytes caps each extracted file; zero means DefaultMaxEntryBytes.
		MaxEntryBytes int64
	}

	// Status describes what EnsureInstalled or Reinstall did.
	Status struct {
		// Dir is the absolute installation directory.
		Dir string
		// Extracted is true when the bundle was unpacked during this call.
		Extracted bool
		// Files counts the regular files written.
		Files int
	}
)

// NewInstaller creates an Installer for dir reading from source.
func NewInstaller(dir string, source BundleSource, logger *log.Logger) *Installer {
	return &Installer{Dir: dir, Source: source, Logger: logger}
}

// Installed reports whether the sentinel directory exists and holds every
// launcher named by its toolchain descriptor.
func (in *Installer) Installed() bool {
	info, err := os.Stat(in.Dir)
	if err != nil || !info.IsDir() {
		return false
	}
	desc, err := toolchain.Load(in.Dir)
	if err != nil {
		return false
	}
	for _, bin := range desc.Executables() {
		if _, err := os.Stat(bin); err != nil {
			return false
		}
	}
	return true
}

// EnsureInstalled extracts the bundle unless a complete installation is
// already present. Repeated calls after a successful install are no-ops.
func (in *Installer) EnsureInstalled(ctx context.Context) (Status, error) {
	abs, err := filepath.Abs(in.Dir)
	if err != nil {
		return Status{}, &BootstrapError{Dir: in.Dir, Step: "resolve directory", Err: err}
	}
	if in.Installed() {
		return Status{Dir: abs}, nil
	}
	return in.install(ctx, abs)
}

// Reinstall extracts the bundle and replaces whatever is in the installation
// directory, including a partially extracted tree.
func (in *Installer) Reinstall(ctx context.Context) (Status, error) {
	abs, err := filepath.Abs(in.Dir)
	if err != nil {
		return Status{}, &BootstrapError{Dir: in.Dir, Step: "resolve directory", Err: err}
	}
	return in.install(ctx, abs)
}

func (in *Installer) install(ctx context.Context, dir string) (Status, error) {
	in.info("Generating JVM runtimes...")

	if in.Source == nil {
		return Status{}, &BootstrapError{Dir: dir, Step: "open bundle", Err: ErrNoBundle}
	}
	src, err := in.Source()
	if err != nil {
		return Status{}, &BootstrapError{Dir: dir, Step: "open bundle", Err: err}
	}
	defer func() { _ = src.Close() }() // read-only source

	dec, err := zstd.NewReader(src, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return Status{}, &BootstrapError{Dir: dir, Step: "decompress", Err: err}
	}
	defer dec.Close()

	// The bundle is unpacked next to dir and moved into place only once it is
	// complete, so a failed extraction never leaves the sentinel behind.
	staging := dir + stagingSuffix
	if err := os.RemoveAll(staging); err != nil {
		return Status{}, &BootstrapError{Dir: dir, Step: "extract", Err: err}
	}
	defer func() { _ = os.RemoveAll(staging) }() // gone after a successful rename
	if err := os.MkdirAll(staging, 0o755); err != nil {
		return Status{}, &BootstrapError{Dir: dir, Step: "extract", Err: err}
	}

	files, err := in.extract(ctx, tar.NewReader(dec), staging)
	if err != nil {
		step := "extract"
		if errors.Is(err, zstd.ErrMagicMismatch) {
			step = "decompress"
		}
		return Status{}, &BootstrapError{Dir: dir, Step: step, Err: err}
	}

	if err := markExecutable(staging); err != nil {
		return Status{}, &BootstrapError{Dir: dir, Step: "permissions", Err: err}
	}

	if err := os.RemoveAll(dir); err != nil {
		return Status{}, &BootstrapError{Dir: dir, Step: "install", Err: err}
	}
	if err := os.Rename(staging, dir); err != nil {
		return Status{}, &BootstrapError{Dir: dir, Step: "install", Err: err}
	}

	in.info("Runtimes generated successfully!", "dir", dir, "files", files)
	return Status{Dir: dir, Extracted: true, Files: files}, nil
}

// extract writes every entry under the bundle's top-level directory into dir.
func (in *Installer) extract(ctx context.Context, tr *tar.Reader, dir string) (int, error) {
	limit := in.MaxEntryBytes
	if limit <= 0 {
		limit = DefaultMaxEntryBytes
	}

	files := 0
	for {
		if err := ctx.Err(); err != nil {
			return files, err
		}

		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return files, nil
		}
		if err != nil {
			return files, fmt.Errorf("failed to read archive: %w", err)
		}

		rel, ok, err := bundleRelPath(hdr.Name)
		if err != nil {
			return files, err
		}
		if !ok {
			continue
		}
		target := filepath.Join(dir, filepath.FromSlash(rel))

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return files, fmt.Errorf("failed to create directory %s: %w", rel, err)
			}
		case tar.TypeReg:
			if hdr.Size > limit {
				return files, fmt.Errorf("%w: %s (%d bytes)", ErrEntryTooLarge, rel, hdr.Size)
			}
			if err := writeFile(target, tr, hdr.FileInfo().Mode().Perm(), limit); err != nil {
				return files, fmt.Errorf("failed to extract %s: %w", rel, err)
			}
			files++
		case tar.TypeSymlink:
			if err := writeSymlink(dir, target, hdr.Linkname); err != nil {
				return files, fmt.Errorf("failed to link %s: %w", rel, err)
			}
		default:
			if in.Logger != nil {
				in.Logger.Debug("skipping archive entry", "name", hdr.Name, "type", hdr.Typeflag)
			}
		}
	}
}

// bundleRelPath strips the bundle's top-level directory from an entry name.
// Entries outside it are skipped; entries that escape it are rejected.
func bundleRelPath(name string) (string, bool, error) {
	clean := path.Clean(strings.TrimPrefix(name, "./"))
	if path.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", false, fmt.Errorf("%w: %s", ErrUnsafeEntry, name)
	}
	root, rest, found := strings.Cut(clean, "/")
	if root != toolchain.DefaultDirName {
		return "", false, nil
	}
	if !found || rest == "" {
		return ".", true, nil
	}
	return rest, true, nil
}

func writeFile(target string, r io.Reader, perm fs.FileMode, limit int64) (err error) {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	if perm == 0 {
		perm = 0o644
	}
	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	// Read one byte past the limit to detect entries that lie about their size.
	n, err := io.Copy(f, io.LimitReader(r, limit+1))
	if err != nil {
		return err
	}
	if n > limit {
		return ErrEntryTooLarge
	}
	return nil
}

func writeSymlink(dir, target, linkname string) error {
	resolved := linkname
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(filepath.Dir(target), filepath.FromSlash(linkname))
	}
	rel, err := filepath.Rel(dir, resolved)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%w: link to %s", ErrUnsafeEntry, linkname)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	_ = os.Remove(target) // re-extraction over an existing tree
	return os.Symlink(linkname, target)
}

// markExecutable adds execute bits to the launchers named by the toolchain
// descriptor of the freshly extracted tree.
func markExecutable(dir string) error {
	desc, err := toolchain.Load(dir)
	if err != nil {
		return err
	}
	for _, name := range desc.ComponentNames() {
		bin, ok := desc.Executables()[name]
		if !ok {
			continue
		}
		info, err := os.Stat(bin)
		if err != nil {
			return fmt.Errorf("toolchain binary %s: %w", name, err)
		}
		if err := os.Chmod(bin, info.Mode()|execBits); err != nil {
			return fmt.Errorf("failed to mark %s executable: %w", name, err)
		}
	}
	return nil
}

func (in *Installer) info(msg string, keyvals ...any) {
	if in.Logger != nil {
		in.Logger.Info(msg, keyvals...)
	}
}
