// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/BendyLand/MyJVM/pkg/types"
)

// errStopWalk ends a walk early once inference has found its answer.
var errStopWalk = errors.New("stop walk")

type (
	// Scanner walks project trees. Directories listed in Skip are not entered.
	Scanner struct {
		skip []string
	}

	// Project is an immutable snapshot of a scanned source tree.
	Project struct {
		root        string
		language    types.Language
		files       []string
		diagnostics []Diagnostic
	}
)

// NewScanner returns a Scanner that skips the given directories. Relative
// paths are resolved against the working directory.
func NewScanner(skip ...string) *Scanner {
	s := &Scanner{}
	for _, dir := range skip {
		if dir == "" {
			continue
		}
		if abs, err := filepath.Abs(dir); err == nil {
			s.skip = append(s.skip, abs)
		}
	}
	return s
}

// InferLanguage returns the language of the first recognized source file
// found under root, or LanguageUnknown.
func InferLanguage(root string) (types.Language, error) {
	return NewScanner().InferLanguage(root)
}

// FindSourceFiles returns every file under root belonging to lang.
func FindSourceFiles(root string, lang types.Language) ([]string, error) {
	return NewScanner().FindSourceFiles(root, lang)
}

// Scan infers the language of root and collects its sources.
func Scan(root string) (*Project, error) {
	return NewScanner().Scan(root)
}

// InferLanguage walks root and stops at the first file with a recognized
// extension.
func (s *Scanner) InferLanguage(root string) (types.Language, error) {
	lang := types.LanguageUnknown
	_, err := s.walk(root, func(path string) error {
		if l := types.LanguageForPath(path); l != types.LanguageUnknown {
			lang = l
			return errStopWalk
		}
		return nil
	})
	return lang, err
}

// FindSourceFiles walks root collecting files that belong to lang. Unknown
// yields no files.
func (s *Scanner) FindSourceFiles(root string, lang types.Language) ([]string, error) {
	files, _, err := s.findSourceFiles(root, lang)
	return files, err
}

func (s *Scanner) findSourceFiles(root string, lang types.Language) ([]string, []Diagnostic, error) {
	if lang == types.LanguageUnknown {
		return nil, nil, nil
	}
	var files []string
	others := map[types.Language]bool{}
	diags, err := s.walk(root, func(path string) error {
		switch l := types.LanguageForPath(path); l {
		case lang:
			files = append(files, path)
		case types.LanguageUnknown:
		default:
			others[l] = true
		}
		return nil
	})
	for _, l := range []types.Language{types.LanguageJava, types.LanguageKotlin, types.LanguageScala} {
		if others[l] {
			diags = append(diags, Diagnostic{
				Severity: SeverityWarning,
				Code:     CodeMixedLanguages,
				Message:  fmt.Sprintf("%s sources ignored; project compiled as %s", l.DisplayName(), lang.DisplayName()),
				Path:     root,
			})
		}
	}
	return files, diags, err
}

// Scan runs both walks. A tree with no sources yields a Project with
// LanguageUnknown together with a *DiscoveryError.
func (s *Scanner) Scan(root string) (*Project, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, &DiscoveryError{Root: root, Err: fmt.Errorf("%w: %w", ErrProjectNotFound, err)}
	}

	lang, err := s.InferLanguage(abs)
	if err != nil {
		return nil, err
	}
	p := &Project{root: abs, language: lang}
	if lang == types.LanguageUnknown {
		return p, &DiscoveryError{Root: abs, Err: ErrNoSources}
	}

	files, diags, err := s.findSourceFiles(abs, lang)
	if err != nil {
		return nil, err
	}
	p.files = files
	p.diagnostics = diags
	return p, nil
}

// walk visits every regular file under root in WalkDir order. Unreadable
// subdirectories become diagnostics; an unreadable root is an error.
func (s *Scanner) walk(root string, visit func(path string) error) ([]Diagnostic, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, &DiscoveryError{Root: root, Err: fmt.Errorf("%w: %w", ErrProjectNotFound, err)}
	}
	if !info.IsDir() {
		return nil, &DiscoveryError{Root: root, Err: fmt.Errorf("%w: %s is not a directory", ErrProjectNotFound, root)}
	}

	var diags []Diagnostic
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			diags = append(diags, Diagnostic{
				Severity: SeverityWarning,
				Code:     CodeUnreadableDir,
				Message:  fmt.Sprintf("skipping unreadable path %s: %v", path, err),
				Path:     path,
				Cause:    err,
			})
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path != root && s.skipped(path) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		return visit(path)
	})
	if errors.Is(err, errStopWalk) {
		err = nil
	}
	if err != nil {
		return diags, fmt.Errorf("failed to walk %s: %w", root, err)
	}
	return diags, nil
}

func (s *Scanner) skipped(dir string) bool {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return false
	}
	return slices.Contains(s.skip, abs)
}

// Root returns the absolute project directory.
func (p *Project) Root() string { return p.root }

// Language returns the inferred language.
func (p *Project) Language() types.Language { return p.language }

// Files returns a copy of the discovered source paths in walk order.
func (p *Project) Files() []string { return slices.Clone(p.files) }

// Diagnostics returns the non-fatal observations made while scanning.
func (p *Project) Diagnostics() []Diagnostic { return slices.Clone(p.diagnostics) }

// String returns a short description for logs.
func (p *Project) String() string {
	return fmt.Sprintf("%s (%s, %d files)", p.root, p.language.DisplayName(), len(p.files))
}
