package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// setupDirs creates <tmp>/allowed and <tmp>/outside and returns canonical paths.
func setupDirs(t *testing.T) (allowed, outside string) {
	t.Helper()
	tmp, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("resolve temp dir: %v", err)
	}
	allowed = filepath.Join(tmp, "allowed")
	outside = filepath.Join(tmp, "outside")
	for _, d := range []string{allowed, outside} {
		if err := os.MkdirAll(d, 0755); err != nil {
			t.Fatalf("mkdir %s: %v", d, err)
		}
	}
	return allowed, outside
}

func TestPathValidator_Validate(t *testing.T) {
	allowed, outside := setupDirs(t)
	if err := os.WriteFile(filepath.Join(allowed, "exists.db"), nil, 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(allowed+"-evil", 0755); err != nil {
		t.Fatal(err)
	}
	pv := NewPathValidator(allowed)

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr error
	}{
		{"base itself", allowed, allowed, nil},
		{"existing file", filepath.Join(allowed, "exists.db"), filepath.Join(allowed, "exists.db"), nil},
		{"missing leaf", filepath.Join(allowed, "snapshots"), filepath.Join(allowed, "snapshots"), nil},
		{"missing parent", filepath.Join(allowed, "a", "b"), "", ErrInvalidPath},
		{"outside", filepath.Join(outside, "file"), "", ErrOutsideUserDirs},
		{"dot-dot traversal", filepath.Join(allowed, "..", "outside", "file"), "", ErrOutsideUserDirs},
		{"sibling with shared prefix", filepath.Join(allowed+"-evil", "file"), "", ErrOutsideUserDirs},
		{"empty", "", "", ErrInvalidPath},
		{"blank", "   ", "", ErrInvalidPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := pv.Validate(tt.path)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Validate(%q) error = %v, want %v", tt.path, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate(%q) unexpected error: %v", tt.path, err)
			}
			if got != tt.want {
				t.Errorf("Validate(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestPathValidator_SymlinkEscape(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need elevated privileges on windows")
	}
	allowed, outside := setupDirs(t)
	link := filepath.Join(allowed, "link")
	if err := os.Symlink(outside, link); err != nil {
		t.Fatalf("symlink: %v", err)
	}
	pv := NewPathValidator(allowed)

	if _, err := pv.Validate(link); !errors.Is(err, ErrOutsideUserDirs) {
		t.Errorf("symlink to outside dir accepted: %v", err)
	}
	if _, err := pv.Validate(filepath.Join(link, "new-file")); !errors.Is(err, ErrOutsideUserDirs) {
		t.Errorf("missing leaf under escaping symlink accepted: %v", err)
	}
}

func TestPathValidator_SymlinkThenDotDot(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need elevated privileges on windows")
	}
	allowed, outside := setupDirs(t)
	inner := filepath.Join(outside, "inner")
	if err := os.MkdirAll(inner, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(inner, filepath.Join(allowed, "link")); err != nil {
		t.Fatalf("symlink: %v", err)
	}
	pv := NewPathValidator(allowed)

	// Built by concatenation: filepath.Join would fold "link/.." away.
	sep := string(filepath.Separator)
	path := allowed + sep + "link" + sep + ".." + sep + "secret.db"

	got, err := pv.Validate(path)
	if !errors.Is(err, ErrOutsideUserDirs) {
		t.Fatalf("Validate(%q) = %q, %v; want ErrOutsideUserDirs", path, got, err)
	}
	if !strings.Contains(err.Error(), filepath.Join(outside, "secret.db")) {
		t.Errorf("error should name the resolved target, got %v", err)
	}
}

func TestPathValidator_DanglingSymlinkLeaf(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need elevated privileges on windows")
	}
	allowed, outside := setupDirs(t)
	leaf := filepath.Join(allowed, "autodoc.db")
	if err := os.Symlink(filepath.Join(outside, "autodoc.db"), leaf); err != nil {
		t.Fatalf("symlink: %v", err)
	}

	if _, err := NewPathValidator(allowed).Validate(leaf); err == nil {
		t.Error("dangling symlink pointing outside was accepted")
	}
}

func TestPathValidator_DotDotInsideBase(t *testing.T) {
	allowed, _ := setupDirs(t)
	if err := os.MkdirAll(filepath.Join(allowed, "sub"), 0755); err != nil {
		t.Fatal(err)
	}
	sep := string(filepath.Separator)
	path := allowed + sep + "sub" + sep + ".." + sep + "." + sep + "snapshots"

	got, err := NewPathValidator(allowed).Validate(path)
	if err != nil {
		t.Fatalf("Validate(%q): %v", path, err)
	}
	if want := filepath.Join(allowed, "snapshots"); got != want {
		t.Errorf("Validate(%q) = %q, want %q", path, got, want)
	}
}

func TestPathValidator_RelativePath(t *testing.T) {
	allowed, _ := setupDirs(t)
	t.Chdir(allowed)

	got, err := NewPathValidator(allowed).Validate("snapshots")
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if want := filepath.Join(allowed, "snapshots"); got != want {
		t.Errorf("Validate(%q) = %q, want %q", "snapshots", got, want)
	}
}

func TestPathValidator_AnyBaseMatches(t *testing.T) {
	allowed, outside := setupDirs(t)
	pv := NewPathValidator("", allowed, outside)

	if len(pv.Bases()) != 2 {
		t.Fatalf("expected empty base to be skipped, got %v", pv.Bases())
	}
	if _, err := pv.Validate(filepath.Join(outside, "x")); err != nil {
		t.Errorf("second base should be accepted: %v", err)
	}
}

func TestPathValidator_NoBases(t *testing.T) {
	allowed, _ := setupDirs(t)
	if _, err := NewPathValidator().Validate(allowed); !errors.Is(err, ErrOutsideUserDirs) {
		t.Errorf("expected rejection with an empty allow-list, got %v", err)
	}
}

func TestDefaultBaseDirs(t *testing.T) {
	dirs := DefaultBaseDirs()
	if len(dirs) == 0 {
		t.Fatal("expected at least one base directory")
	}
	for _, d := range dirs {
		if d == "" {
			t.Error("empty base directory returned")
		}
	}
}

func TestWithin(t *testing.T) {
	sep := string(filepath.Separator)
	base := sep + filepath.Join("home", "user")
	tests := []struct {
		target string
		want   bool
	}{
		{base, true},
		{filepath.Join(base, "docs"), true},
		{filepath.Join(base, "..dotfile"), true},
		{sep + filepath.Join("home", "user2"), false},
		{sep + "home", false},
		{sep + filepath.Join("etc", "passwd"), false},
	}
	for _, tt := range tests {
		if got := within(base, tt.target); got != tt.want {
			t.Errorf("within(%q, %q) = %v, want %v", base, tt.target, got, tt.want)
		}
	}
}
