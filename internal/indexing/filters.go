package indexing

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/standardbeagle/cxxindex/internal/types"
	"github.com/standardbeagle/cxxindex/pkg/pathutil"
)

// ignored reports whether declarations in file are out of scope: no file
// (compiler generated), outside the project root, or matched by an ignore
// path. Plain ignore paths are substrings of the absolute path; patterns
// with glob metacharacters are matched against the root-relative path.
func (ix *Indexer) ignored(file string) bool {
	if file == "" {
		return true
	}
	if !pathutil.Within(file, ix.opts.RootDir) {
		return true
	}
	relSlash := pathutil.ToSlashRelative(file, ix.opts.RootDir)
	for _, p := range ix.opts.IgnorePaths {
		if p == "" {
			continue
		}
		if isGlob(p) {
			if ok, _ := doublestar.Match(p, relSlash); ok {
				return true
			}
			continue
		}
		if strings.Contains(file, p) {
			return true
		}
	}
	return false
}

func isGlob(p string) bool {
	return strings.ContainsAny(p, "*?[{")
}

// hidden reports whether a member is excluded by IgnorePrivateMembers
func (ix *Indexer) hidden(access types.AccessSpecifier) bool {
	return ix.opts.IgnorePrivateMembers && access == types.AccessPrivate
}

// relative turns an absolute declaration path into a root-relative one
func (ix *Indexer) relative(file string) string {
	return pathutil.ToRelative(file, ix.opts.RootDir)
}
