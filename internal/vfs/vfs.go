// Package vfs gives each indexing worker its own view of the filesystem.
// Views share the backing afero.Fs but keep a private working directory, so
// resolving a relative path in one worker never depends on another worker's
// chdir.
package vfs

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

type View struct {
	fs  afero.Fs
	cwd string
}

// New wraps fs with cwd as the working directory. cwd must be absolute.
func New(fs afero.Fs, cwd string) *View {
	return &View{fs: fs, cwd: filepath.Clean(cwd)}
}

// Clone returns an independent view over the same backing filesystem
func (v *View) Clone() *View {
	return &View{fs: v.fs, cwd: v.cwd}
}

// Fs exposes the backing filesystem
func (v *View) Fs() afero.Fs {
	return v.fs
}

// Getwd returns the view's working directory
func (v *View) Getwd() string {
	return v.cwd
}

// Chdir changes the view's working directory. Relative paths are resolved
// against the current one.
func (v *View) Chdir(dir string) error {
	abs := v.Abs(dir)
	ok, err := afero.IsDir(v.fs, abs)
	if err != nil {
		return fmt.Errorf("chdir %s: %w", abs, err)
	}
	if !ok {
		return fmt.Errorf("chdir %s: not a directory", abs)
	}
	v.cwd = abs
	return nil
}

// Abs resolves path against the view's working directory
func (v *View) Abs(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(v.cwd, path)
}

// Canonical returns the absolute path of a file with symlinks in its
// directory resolved, when the backing filesystem is the real one.
func (v *View) Canonical(path string) string {
	abs := v.Abs(path)
	if _, ok := v.fs.(*afero.OsFs); !ok {
		return abs
	}
	dir, err := filepath.EvalSymlinks(filepath.Dir(abs))
	if err != nil {
		return abs
	}
	return filepath.Join(dir, filepath.Base(abs))
}

// ReadFile reads path relative to the working directory
func (v *View) ReadFile(path string) ([]byte, error) {
	return afero.ReadFile(v.fs, v.Abs(path))
}

// Exists reports whether path names an existing file or directory
func (v *View) Exists(path string) bool {
	ok, err := afero.Exists(v.fs, v.Abs(path))
	return err == nil && ok
}

// IsFile reports whether path names an existing regular file
func (v *View) IsFile(path string) bool {
	info, err := v.fs.Stat(v.Abs(path))
	return err == nil && info.Mode().IsRegular()
}

// IsDir reports whether path names an existing directory
func (v *View) IsDir(path string) bool {
	ok, err := afero.IsDir(v.fs, v.Abs(path))
	return err == nil && ok
}
