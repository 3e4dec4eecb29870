// Package indexing turns declaration events into symbols. The Indexer is the
// frontend.Visitor every worker shares: its collectors filter, identify and
// commit one symbol per SymbolID, and the resolution passes in passes.go
// finish the index once all workers have joined.
package indexing

import (
	"fmt"
	"log"

	cxxerrors "github.com/standardbeagle/cxxindex/internal/errors"
	"github.com/standardbeagle/cxxindex/internal/frontend"
	"github.com/standardbeagle/cxxindex/internal/idcodec"
	"github.com/standardbeagle/cxxindex/internal/index"
	"github.com/standardbeagle/cxxindex/internal/types"
)

// Options is the part of the configuration the collectors consult
type Options struct {
	// RootDir is the absolute project root; declarations outside it are dropped
	RootDir string
	// IgnorePaths holds substrings of absolute paths or doublestar patterns
	// relative to RootDir
	IgnorePaths          []string
	IgnorePrivateMembers bool
}

// Indexer collects symbols into an index.Index. It is safe for concurrent
// use: it holds no mutable state besides the index's databases.
type Indexer struct {
	opts  Options
	index *index.Index
}

var _ frontend.Visitor = (*Indexer)(nil)

// New creates an Indexer writing into idx
func New(idx *index.Index, opts Options) *Indexer {
	return &Indexer{opts: opts, index: idx}
}

// Index returns the index being filled
func (ix *Indexer) Index() *index.Index {
	return ix.index
}

// identify computes the SymbolID of a declaration. Declarations without a
// USR are skipped.
func (ix *Indexer) identify(d *frontend.Decl, category string) (types.SymbolID, bool) {
	if d.USR == "" {
		err := cxxerrors.NewIdentityError(
			fmt.Sprintf("%s:%d", d.Location.File, d.Location.Line),
			fmt.Errorf("unable to compute USR for %s %q", category, d.Name))
		log.Printf("%v, skipping", err)
		return 0, false
	}
	return idcodec.FromUSR(d.USR), true
}

// symbol fills the fields shared by every category
func (ix *Indexer) symbol(id types.SymbolID, d *frontend.Decl) types.Symbol {
	s := types.Symbol{
		ID:   id,
		Name: d.Name,
		File: ix.relative(d.Location.File),
		Line: d.Location.Line,
	}
	if d.Parent.Kind != frontend.ParentNone {
		s.ParentNamespaceID = idcodec.FromUSR(d.Parent.USR)
	}
	return s
}

func typeRef(t frontend.TypeInfo) types.TypeRef {
	return types.TypeRef{ID: idcodec.FromUSR(t.USR), Name: t.Spelling}
}

// precedes orders candidate locations so that the same declaration seen
// from many translation units always settles on the same one
func precedes(file string, line int, existing *types.Symbol) bool {
	if existing.File == "" && existing.Line == 0 {
		return true
	}
	if file != existing.File {
		return file < existing.File
	}
	return line < existing.Line
}

// commit stores the value built by extract under id. The first visitor
// claims the slot; later visitors only extract again when their location
// precedes the stored one, which makes the result independent of worker
// scheduling.
func commit[T any, PT interface {
	*T
	Base() *types.Symbol
}](db *index.Database[T], id types.SymbolID, file string, line int, extract func() T) {
	if !db.Claim(id) {
		earlier := func(existing *T) bool { return precedes(file, line, PT(existing).Base()) }
		if !db.Check(id, earlier) {
			return
		}
		db.UpdateIf(id, extract(), earlier)
		return
	}
	value := extract()
	db.UpdateIf(id, value, func(existing *T) bool { return precedes(file, line, PT(existing).Base()) })
}
