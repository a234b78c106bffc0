// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/klauspost/compress/flate"
)

const (
	// DefaultOutputDir is the output directory name inside a project.
	DefaultOutputDir = "out"
	// DefaultArchiveName names the packaged artifact.
	DefaultArchiveName = "all_files.jar"
	// MaxEntryBytes caps a single file extracted from a runtime archive.
	MaxEntryBytes int64 = 512 << 20
)

// Layout locates the output directory and the packaged artifact inside it.
type Layout struct {
	// OutputDir holds compiled classes and the archive.
	OutputDir string
	// ArchiveName is the archive's file name inside OutputDir.
	ArchiveName string
	// Logger receives progress messages. Nil disables logging.
	Logger *log.Logger
}

// NewLayout returns a Layout for outputDir using DefaultArchiveName.
func NewLayout(outputDir string, logger *log.Logger) *Layout {
	return &Layout{OutputDir: outputDir, ArchiveName: DefaultArchiveName, Logger: logger}
}

// ArchivePath returns the path of the packaged artifact.
func (l *Layout) ArchivePath() string {
	name := l.ArchiveName
	if name == "" {
		name = DefaultArchiveName
	}
	return filepath.Join(l.OutputDir, name)
}

// PackageClasses builds the archive in outputDir from classFiles using the
// default archive name.
func PackageClasses(outputDir string, classFiles []string) (string, error) {
	return NewLayout(outputDir, nil).PackageClasses(classFiles)
}

// MergeRuntimeArchive extracts the regular files of jarPath into outputDir.
func MergeRuntimeArchive(outputDir, jarPath string) error {
	return NewLayout(outputDir, nil).MergeRuntimeArchive(jarPath)
}

// ClassFiles returns every class file under outputDir in walk order.
func ClassFiles(outputDir string) ([]string, error) {
	return NewLayout(outputDir, nil).ClassFiles()
}

// PackageClasses writes every class file into the archive at its path
// relative to the output directory, deflated at best compression. It returns
// the archive path.
func (l *Layout) PackageClasses(classFiles []string) (string, error) {
	target := l.ArchivePath()
	root, err := filepath.Abs(l.OutputDir)
	if err != nil {
		return "", &PackagingError{Op: "package", Path: target, Err: err}
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return "", &PackagingError{Op: "package", Path: target, Err: err}
	}

	tmp, err := os.CreateTemp(root, "."+filepath.Base(target)+"-*")
	if err != nil {
		return "", &PackagingError{Op: "package", Path: target, Err: err}
	}
	tmpPath := tmp.Name()

	writeErr := writeArchive(tmp, root, classFiles)
	if closeErr := tmp.Close(); closeErr != nil && writeErr == nil {
		writeErr = closeErr
	}
	if writeErr == nil {
		writeErr = os.Rename(tmpPath, target)
	}
	if writeErr != nil {
		_ = os.Remove(tmpPath) // best-effort; the marker was never created
		return "", &PackagingError{Op: "package", Path: target, Err: writeErr}
	}

	if l.Logger != nil {
		l.Logger.Info(fmt.Sprintf("Successfully created %s!", l.displayPath(target)), "classes", len(classFiles))
	}
	return target, nil
}

func writeArchive(w io.Writer, root string, classFiles []string) (err error) {
	zw := zip.NewWriter(w)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.BestCompression)
	})
	defer func() {
		if closeErr := zw.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	for _, file := range classFiles {
		if err := addFile(zw, root, file); err != nil {
			return err
		}
	}
	return nil
}

func addFile(zw *zip.Writer, root, file string) (err error) {
	abs, err := filepath.Abs(file)
	if err != nil {
		return err
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%w: %s", ErrUnsafeEntry, file)
	}

	f, err := os.Open(abs)
	if err != nil {
		return fmt.Errorf("failed to read class file: %w", err)
	}
	defer func() { _ = f.Close() }() // read-only

	info, err := f.Stat()
	if err != nil {
		return err
	}
	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return fmt.Errorf("failed to create file header: %w", err)
	}
	header.Name = filepath.ToSlash(rel)
	header.Method = zip.Deflate

	entry, err := zw.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("failed to create entry %s: %w", header.Name, err)
	}
	if _, err := io.Copy(entry, f); err != nil {
		return fmt.Errorf("failed to write entry %s: %w", header.Name, err)
	}
	return nil
}

// MergeRuntimeArchive extracts every regular-file entry of jarPath under the
// output directory, skipping directory entries, so a language runtime's
// classes are packaged alongside the compiled ones.
func (l *Layout) MergeRuntimeArchive(jarPath string) (err error) {
	root, err := filepath.Abs(l.OutputDir)
	if err != nil {
		return &PackagingError{Op: "merge", Path: jarPath, Err: err}
	}

	zr, err := zip.OpenReader(jarPath)
	if err != nil {
		return &PackagingError{Op: "merge", Path: jarPath, Err: err}
	}
	defer func() { _ = zr.Close() }() // read-only
	zr.RegisterDecompressor(zip.Deflate, flate.NewReader)

	files := 0
	for _, file := range zr.File {
		if file.FileInfo().IsDir() || strings.HasSuffix(file.Name, "/") {
			continue
		}
		dest, err := entryPath(root, file.Name)
		if err != nil {
			return &PackagingError{Op: "merge", Path: jarPath, Err: err}
		}
		if err := extractFile(file, dest); err != nil {
			return &PackagingError{Op: "merge", Path: jarPath, Err: fmt.Errorf("failed to extract %s: %w", file.Name, err)}
		}
		files++
	}

	if l.Logger != nil {
		l.Logger.Info(fmt.Sprintf("Successfully extracted %s into %s directory.", filepath.Base(jarPath), l.displayPath(root)), "files", files)
	}
	return nil
}

// entryPath resolves an archive entry name under root, rejecting names that
// would escape it.
func entryPath(root, name string) (string, error) {
	clean := path.Clean(strings.ReplaceAll(name, `\`, "/"))
	if path.IsAbs(clean) || filepath.IsAbs(name) || filepath.VolumeName(name) != "" ||
		clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("%w: %s", ErrUnsafeEntry, name)
	}
	return filepath.Join(root, filepath.FromSlash(clean)), nil
}

func extractFile(file *zip.File, dest string) (err error) {
	if file.UncompressedSize64 > uint64(MaxEntryBytes) {
		return ErrEntryTooLarge
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}

	rc, err := file.Open()
	if err != nil {
		return err
	}
	defer func() { _ = rc.Close() }() // read-only

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	n, err := io.Copy(out, io.LimitReader(rc, MaxEntryBytes+1))
	if err != nil {
		return err
	}
	if n > MaxEntryBytes {
		return ErrEntryTooLarge
	}
	return nil
}

// ClassFiles returns every regular .class file under the output directory in
// filepath.WalkDir order. A missing output directory yields no files.
func (l *Layout) ClassFiles() ([]string, error) {
	var files []string
	err := filepath.WalkDir(l.OutputDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() && IsClassFile(p) {
			files = append(files, p)
		}
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, &PackagingError{Op: "scan", Path: l.OutputDir, Err: err}
	}
	return files, nil
}

// ListClassNames returns the fully-qualified names of the class entries in
// the archive at archivePath, in archive order.
func ListClassNames(archivePath string) ([]string, error) {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, &PackagingError{Op: "list", Path: archivePath, Err: err}
	}
	defer func() { _ = zr.Close() }() // read-only

	var names []string
	for _, file := range zr.File {
		if file.FileInfo().IsDir() || !IsClassFile(file.Name) {
			continue
		}
		names = append(names, ClassName(file.Name))
	}
	return names, nil
}

// displayPath renders p relative to the working directory when possible.
func (l *Layout) displayPath(p string) string {
	wd, err := os.Getwd()
	if err != nil {
		return p
	}
	if rel, err := filepath.Rel(wd, p); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return p
}
