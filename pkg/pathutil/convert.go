// Package pathutil converts between the absolute paths the front-end reports
// and the root-relative paths stored in the index.
package pathutil

import (
	"path/filepath"
	"strings"
)

// ToRelative converts an absolute path to relative based on a root directory.
// Falls back to the original path if conversion fails, the path is already
// relative, or it lies outside the root.
//
// Examples:
//   - ToRelative("/home/user/project/include/foo.h", "/home/user/project") → "include/foo.h"
//   - ToRelative("/usr/include/vector", "/home/user/project") → "/usr/include/vector"
//   - ToRelative("src/main.cpp", "/home/user/project") → "src/main.cpp"
func ToRelative(absPath, rootDir string) string {
	if absPath == "" || rootDir == "" {
		return absPath
	}
	if !filepath.IsAbs(absPath) {
		return absPath
	}

	rel, ok := rel(absPath, rootDir)
	if !ok {
		return filepath.Clean(absPath)
	}
	return rel
}

// Within reports whether path is rootDir or lies below it. Both must be
// absolute.
func Within(path, rootDir string) bool {
	if path == "" || rootDir == "" {
		return false
	}
	_, ok := rel(path, rootDir)
	return ok
}

func rel(path, rootDir string) (string, bool) {
	relPath, err := filepath.Rel(filepath.Clean(rootDir), filepath.Clean(path))
	if err != nil {
		// different volumes on Windows
		return "", false
	}
	if relPath == ".." || strings.HasPrefix(relPath, ".."+string(filepath.Separator)) {
		return "", false
	}
	return relPath, true
}

// ToSlashRelative is ToRelative with forward slashes, the form glob
// patterns are matched against
func ToSlashRelative(absPath, rootDir string) string {
	return filepath.ToSlash(ToRelative(absPath, rootDir))
}
