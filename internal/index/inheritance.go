package index

import (
	"slices"

	"github.com/standardbeagle/cxxindex/internal/types"
)

// InheritOptions controls base traversal over diamond hierarchies
type InheritOptions struct {
	// AllowRepeats visits a base once per inheritance path instead of once
	// overall. Cycles along a single path are still cut.
	AllowRepeats bool
}

type baseFrame struct {
	base types.BaseRecord
	path []types.SymbolID
}

// InheritedBases walks the base lists of record id depth first with an
// explicit stack and returns every reachable indexed base in visit order.
// Bases missing from the index are skipped. Private bases are skipped and
// not walked through.
func (idx *Index) InheritedBases(id types.SymbolID, opts InheritOptions) []types.SymbolID {
	rec, ok := idx.Records.Get(id)
	if !ok {
		return nil
	}

	var stack []baseFrame
	push := func(bases []types.BaseRecord, path []types.SymbolID) {
		for i := len(bases) - 1; i >= 0; i-- {
			stack = append(stack, baseFrame{base: bases[i], path: path})
		}
	}
	push(rec.BaseRecords, []types.SymbolID{id})

	visited := map[types.SymbolID]bool{id: true}
	var out []types.SymbolID
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.base.Access == types.AccessPrivate || f.base.ID.IsZero() {
			continue
		}
		base, ok := idx.Records.Get(f.base.ID)
		if !ok {
			continue
		}
		if opts.AllowRepeats {
			if slices.Contains(f.path, base.ID) {
				continue
			}
		} else {
			if visited[base.ID] {
				continue
			}
			visited[base.ID] = true
		}

		out = append(out, base.ID)
		push(base.BaseRecords, append(slices.Clone(f.path), base.ID))
	}
	return out
}

// InheritedMethods lists the non-private, indexed methods of every base
// returned by InheritedBases. Constructors and destructors are not inherited.
func (idx *Index) InheritedMethods(id types.SymbolID, opts InheritOptions) []types.SymbolID {
	var out []types.SymbolID
	for _, baseID := range idx.InheritedBases(id, opts) {
		base, ok := idx.Records.Get(baseID)
		if !ok {
			continue
		}
		for _, mid := range base.MethodIDs {
			fn, ok := idx.Functions.Get(mid)
			if !ok || fn.IsCtorOrDtor || fn.Access == types.AccessPrivate {
				continue
			}
			out = append(out, mid)
		}
	}
	return out
}
