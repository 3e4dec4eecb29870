// Package cxx is the tree-sitter based C++ front-end. It parses a
// translation unit and the headers it includes, rebuilds enough scope
// information to synthesize clang-compatible USRs, and reports every
// function, record, enum and namespace declaration to a frontend.Visitor.
//
// It performs no preprocessing beyond following #include: both branches of
// a conditional are read, and macros are not expanded.
package cxx

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_cpp "github.com/tree-sitter/tree-sitter-cpp/bindings/go"

	"github.com/standardbeagle/cxxindex/internal/compdb"
	"github.com/standardbeagle/cxxindex/internal/debug"
	cxxerrors "github.com/standardbeagle/cxxindex/internal/errors"
	"github.com/standardbeagle/cxxindex/internal/frontend"
	"github.com/standardbeagle/cxxindex/internal/types"
	"github.com/standardbeagle/cxxindex/internal/vfs"
)

const defaultMaxIncludeDepth = 64

// Frontend implements frontend.Frontend. The zero value is ready to use.
type Frontend struct {
	// MaxIncludeDepth bounds #include nesting; 0 means the default of 64
	MaxIncludeDepth int
}

var _ frontend.Frontend = (*Frontend)(nil)

// New creates a front-end with default settings
func New() *Frontend {
	return &Frontend{MaxIncludeDepth: defaultMaxIncludeDepth}
}

// Parse indexes one translation unit. A main file that cannot be read is a
// ParseError; headers that cannot be found are skipped.
func (fe *Frontend) Parse(ctx context.Context, inv frontend.Invocation, view *vfs.View, v frontend.Visitor) error {
	parser := sitter.NewParser()
	defer parser.Close()
	if err := parser.SetLanguage(sitter.NewLanguage(tree_sitter_cpp.Language())); err != nil {
		return cxxerrors.NewParseError(inv.File, 0, err)
	}

	dir := inv.Directory
	if dir == "" {
		dir = view.Getwd()
	}
	u := newUnit(ctx, view, v, parser, compdb.IncludeSearchPaths(inv.Args, dir))
	if fe.MaxIncludeDepth > 0 {
		u.maxDepth = fe.MaxIncludeDepth
	}

	main := inv.File
	if !filepath.IsAbs(main) {
		main = filepath.Join(dir, main)
	}
	if !view.IsFile(main) {
		return cxxerrors.NewParseError(main, 0, cxxerrors.NewFileError("open", main, fs.ErrNotExist))
	}
	if err := u.processFile(main, globalScope()); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return cxxerrors.NewParseError(main, 0, err)
	}
	return nil
}

type file struct {
	path string
	src  []byte
}

// unit is the state of one translation unit
type unit struct {
	ctx     context.Context
	view    *vfs.View
	visitor frontend.Visitor
	parser  *sitter.Parser

	quoted []string
	user   []string
	system []string

	seenPaths map[string]bool

	// known maps qualified record, enum and alias names to USRs
	known  map[string]string
	scopes map[string]*scope
	// memberAccess remembers in-class access for out-of-line definitions
	memberAccess  map[string]types.AccessSpecifier
	templateNames []map[string]bool

	depth    int
	maxDepth int
}

func newUnit(ctx context.Context, view *vfs.View, v frontend.Visitor, parser *sitter.Parser, paths []compdb.IncludeSearchPath) *unit {
	u := &unit{
		ctx:          ctx,
		view:         view,
		visitor:      v,
		parser:       parser,
		seenPaths:    make(map[string]bool),
		known:        make(map[string]string),
		scopes:       make(map[string]*scope),
		memberAccess: make(map[string]types.AccessSpecifier),
		maxDepth:     defaultMaxIncludeDepth,
	}
	for _, p := range paths {
		switch {
		case p.Quoted:
			u.quoted = append(u.quoted, p.Dir)
		case p.System:
			u.system = append(u.system, p.Dir)
		default:
			u.user = append(u.user, p.Dir)
		}
	}
	return u
}

// processFile parses path and walks it in scope sc. Each file is read at
// most once per translation unit, which stands in for include guards.
func (u *unit) processFile(path string, sc *scope) error {
	if err := u.ctx.Err(); err != nil {
		return err
	}
	canonical := u.view.Canonical(path)
	if u.seenPaths[canonical] {
		return nil
	}
	u.seenPaths[canonical] = true

	src, err := u.view.ReadFile(canonical)
	if err != nil {
		return err
	}
	if u.depth >= u.maxDepth {
		debug.LogFrontend("%s: include depth %d exceeded\n", canonical, u.maxDepth)
		return nil
	}
	u.depth++
	defer func() { u.depth-- }()

	tree := u.parser.Parse(src, nil)
	if tree == nil {
		return fmt.Errorf("no syntax tree for %s", canonical)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		debug.LogFrontend("%s: syntax errors, indexing what parsed\n", canonical)
	}
	return u.items(&file{path: canonical, src: src}, root, sc)
}

// include follows an #include directive. Quoted includes search the
// including file's directory and -iquote paths first.
func (u *unit) include(f *file, n *sitter.Node, sc *scope) error {
	pathNode := n.ChildByFieldName("path")
	if pathNode == nil {
		return nil
	}
	raw := nodeText(pathNode, f.src)
	if len(raw) < 2 {
		return nil
	}
	name := raw[1 : len(raw)-1]

	var candidates []string
	if filepath.IsAbs(name) {
		candidates = append(candidates, name)
	} else {
		if pathNode.Kind() == "string_literal" {
			candidates = append(candidates, filepath.Join(filepath.Dir(f.path), name))
			for _, dir := range u.quoted {
				candidates = append(candidates, filepath.Join(dir, name))
			}
		}
		for _, dir := range u.user {
			candidates = append(candidates, filepath.Join(dir, name))
		}
		for _, dir := range u.system {
			candidates = append(candidates, filepath.Join(dir, name))
		}
	}

	for _, c := range candidates {
		if !u.view.IsFile(c) {
			continue
		}
		err := u.processFile(c, sc)
		if err != nil && u.ctx.Err() == nil {
			debug.LogFrontend("%s: skipping include %s: %v\n", f.path, c, err)
			return nil
		}
		return err
	}
	debug.LogFrontend("%s:%d: unresolved include %s\n", f.path, line(n), raw)
	return nil
}
