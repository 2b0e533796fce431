package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/adrg/xdg"
)

var (
	// ErrOutsideUserDirs is returned for paths outside every allowed base directory.
	ErrOutsideUserDirs = errors.New("path must be inside a user directory")
	// ErrInvalidPath is returned for empty or unresolvable paths.
	ErrInvalidPath = errors.New("invalid path")
)

// PathValidator confines config paths to a fixed set of base directories.
type PathValidator struct {
	bases []string
}

// DefaultBaseDirs returns the platform allow-list: documents, data, config and
// home directories. Directories the platform does not report are omitted.
func DefaultBaseDirs() []string {
	var dirs []string
	for _, d := range []string{xdg.UserDirs.Documents, xdg.DataHome, xdg.ConfigHome, xdg.Home} {
		if d != "" {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

// NewPathValidator builds a validator for the given base directories.
// Bases are canonicalized when they exist; empty entries are skipped.
func NewPathValidator(bases ...string) *PathValidator {
	pv := &PathValidator{}
	for _, b := range bases {
		if b == "" {
			continue
		}
		abs, err := filepath.Abs(b)
		if err != nil {
			continue
		}
		if resolved, err := filepath.EvalSymlinks(abs); err == nil {
			abs = resolved
		}
		pv.bases = append(pv.bases, abs)
	}
	return pv
}

// DefaultPathValidator validates against DefaultBaseDirs.
func DefaultPathValidator() *PathValidator {
	return NewPathValidator(DefaultBaseDirs()...)
}

// Bases returns the canonical allow-list.
func (pv *PathValidator) Bases() []string {
	return append([]string(nil), pv.bases...)
}

// Validate returns the canonical form of path if it lies inside an allowed base.
// A path that does not exist yet is accepted when its parent resolves. Callers
// should use the returned path, not the input.
func (pv *PathValidator) Validate(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", ErrInvalidPath
	}

	canonical, err := canonicalize(path)
	if err != nil {
		return "", err
	}

	for _, base := range pv.bases {
		if within(base, canonical) {
			return canonical, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrOutsideUserDirs, canonical)
}

// canonicalize resolves path one element at a time the way the OS does:
// symlinks are followed before a later ".." is applied, so "link/.." lands
// in the link target's parent rather than next to the link. Only the last
// element may be missing.
func canonicalize(path string) (string, error) {
	if !filepath.IsAbs(path) {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrInvalidPath, err)
		}
		// Concatenate instead of Join; Join would fold ".." lexically.
		path = wd + string(filepath.Separator) + path
	}

	vol := filepath.VolumeName(path)
	resolved := vol + string(filepath.Separator)
	elems := splitElems(path[len(vol):])

	for i, elem := range elems {
		switch elem {
		case ".":
			continue
		case "..":
			resolved = filepath.Dir(resolved)
			continue
		}

		next := filepath.Join(resolved, elem)
		target, err := filepath.EvalSymlinks(next)
		switch {
		case err == nil:
			resolved = target
		case errors.Is(err, fs.ErrNotExist) && i == len(elems)-1 && !exists(next):
			resolved = next
		default:
			return "", fmt.Errorf("%w: cannot resolve %s", ErrInvalidPath, next)
		}
	}
	return resolved, nil
}

// splitElems splits p on path separators, dropping empty elements.
func splitElems(p string) []string {
	return strings.FieldsFunc(p, func(r rune) bool {
		return r < utf8.RuneSelf && os.IsPathSeparator(uint8(r))
	})
}

// exists reports whether anything, a dangling symlink included, is at p.
func exists(p string) bool {
	_, err := os.Lstat(p)
	return err == nil
}

// within reports whether target equals base or sits below it.
func within(base, target string) bool {
	rel, err := filepath.Rel(base, target)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
