package indexing

import (
	"log"

	"github.com/standardbeagle/cxxindex/internal/index"
	"github.com/standardbeagle/cxxindex/internal/types"
)

// Resolve runs the post-collection passes in their required order. It must
// only be called after every worker has finished.
func Resolve(idx *index.Index) {
	PruneMethods(idx)
	PruneTypeRefs(idx)
	ResolveNamespaces(idx)
	UpdateRecordNames(idx)
}

// PruneMethods drops member functions whose record was not indexed, e.g.
// methods of private nested classes or of records in ignored files.
func PruneMethods(idx *index.Index) int {
	var orphans []types.SymbolID
	idx.Functions.Each(func(id types.SymbolID, f *types.FunctionSymbol) bool {
		if f.IsRecordMember && !idx.Records.Contains(f.ParentNamespaceID) {
			orphans = append(orphans, id)
		}
		return true
	})
	for _, id := range orphans {
		idx.Functions.Delete(id)
	}
	if len(orphans) > 0 {
		log.Printf("pruned %d methods of unindexed records", len(orphans))
	}
	return len(orphans)
}

// PruneTypeRefs clears type links that point at records absent from the
// index. Display names are kept.
func PruneTypeRefs(idx *index.Index) {
	prune := func(ref *types.TypeRef) {
		if !ref.ID.IsZero() && !idx.Records.Contains(ref.ID) {
			ref.ID = 0
		}
	}
	idx.Functions.Each(func(_ types.SymbolID, f *types.FunctionSymbol) bool {
		prune(&f.ReturnType)
		for i := range f.Params {
			prune(&f.Params[i].Type)
		}
		return true
	})
	idx.Records.Each(func(_ types.SymbolID, r *types.RecordSymbol) bool {
		for i := range r.Vars {
			prune(&r.Vars[i].Type)
		}
		return true
	})
}

// ResolveNamespaces fills each namespace's child lists from the parent links
// of records, enums and nested namespaces. Children are appended in ID
// order.
func ResolveNamespaces(idx *index.Index) {
	link := func(child, parent types.SymbolID, pick func(n *types.NamespaceSymbol) *[]types.SymbolID) {
		if parent.IsZero() {
			return
		}
		if ns, ok := idx.Namespaces.Lookup(parent); ok {
			list := pick(ns)
			*list = append(*list, child)
		}
	}
	idx.Records.Each(func(id types.SymbolID, r *types.RecordSymbol) bool {
		link(id, r.ParentNamespaceID, func(n *types.NamespaceSymbol) *[]types.SymbolID { return &n.Records })
		return true
	})
	idx.Enums.Each(func(id types.SymbolID, e *types.EnumSymbol) bool {
		link(id, e.ParentNamespaceID, func(n *types.NamespaceSymbol) *[]types.SymbolID { return &n.Enums })
		return true
	})
	idx.Namespaces.Each(func(id types.SymbolID, ns *types.NamespaceSymbol) bool {
		link(id, ns.ParentNamespaceID, func(n *types.NamespaceSymbol) *[]types.SymbolID { return &n.Namespaces })
		return true
	})
}

// UpdateRecordNames appends the inheritance list to each record's proto
func UpdateRecordNames(idx *index.Index) {
	idx.Records.Each(func(_ types.SymbolID, r *types.RecordSymbol) bool {
		if len(r.BaseRecords) > 0 {
			r.Proto += inheritanceClause(r.BaseRecords)
		}
		return true
	})
}
