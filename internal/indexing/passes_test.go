package indexing

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/cxxindex/internal/idcodec"
	"github.com/standardbeagle/cxxindex/internal/index"
	"github.com/standardbeagle/cxxindex/internal/types"
)

func id(usr string) types.SymbolID {
	return idcodec.FromUSR(usr)
}

func TestPruneMethods(t *testing.T) {
	idx := index.New()
	idx.Records.Update(id("c:@S@Kept"), types.RecordSymbol{Symbol: types.Symbol{ID: id("c:@S@Kept"), Name: "Kept"}})
	idx.Functions.Update(id("kept"), types.FunctionSymbol{Symbol: types.Symbol{ParentNamespaceID: id("c:@S@Kept")}, IsRecordMember: true})
	idx.Functions.Update(id("orphan"), types.FunctionSymbol{Symbol: types.Symbol{ParentNamespaceID: id("c:@S@Private")}, IsRecordMember: true})
	idx.Functions.Update(id("free"), types.FunctionSymbol{Symbol: types.Symbol{ParentNamespaceID: id("c:@N@ns")}})

	assert.Equal(t, 1, PruneMethods(idx))
	assert.True(t, idx.Functions.Contains(id("kept")))
	assert.True(t, idx.Functions.Contains(id("free")))
	assert.False(t, idx.Functions.Contains(id("orphan")))
}

func TestPruneTypeRefs(t *testing.T) {
	idx := index.New()
	rec := id("c:@S@Vec")
	enum := id("c:@E@Mode")
	idx.Records.Update(rec, types.RecordSymbol{
		Symbol: types.Symbol{ID: rec, Name: "Vec"},
		Vars:   []types.MemberVariable{{Name: "m", Type: types.TypeRef{ID: enum, Name: "Mode"}}},
	})
	idx.Enums.Update(enum, types.EnumSymbol{Symbol: types.Symbol{ID: enum, Name: "Mode"}})
	idx.Functions.Update(id("f"), types.FunctionSymbol{
		ReturnType: types.TypeRef{ID: id("c:@S@Gone"), Name: "Gone"},
		Params: []types.FunctionParam{
			{Name: "v", Type: types.TypeRef{ID: rec, Name: "const Vec &"}},
			{Name: "n", Type: types.TypeRef{Name: "int"}},
		},
	})

	PruneTypeRefs(idx)

	f, _ := idx.Functions.Get(id("f"))
	assert.Equal(t, types.TypeRef{Name: "Gone"}, f.ReturnType)
	assert.Equal(t, rec, f.Params[0].Type.ID)
	assert.Equal(t, types.SymbolID(0), f.Params[1].Type.ID)

	r, _ := idx.Records.Get(rec)
	assert.Equal(t, types.TypeRef{Name: "Mode"}, r.Vars[0].Type, "only record links survive")
}

func TestResolveNamespaces(t *testing.T) {
	idx := index.New()
	outer, inner := id("c:@N@outer"), id("c:@N@outer@N@inner")
	idx.Namespaces.Update(outer, types.NamespaceSymbol{Symbol: types.Symbol{ID: outer, Name: "outer"}})
	idx.Namespaces.Update(inner, types.NamespaceSymbol{Symbol: types.Symbol{ID: inner, Name: "inner", ParentNamespaceID: outer}})

	a, b := id("c:@N@outer@S@A"), id("c:@N@outer@S@B")
	idx.Records.Update(b, types.RecordSymbol{Symbol: types.Symbol{ID: b, ParentNamespaceID: outer}})
	idx.Records.Update(a, types.RecordSymbol{Symbol: types.Symbol{ID: a, ParentNamespaceID: outer}})
	nested := id("c:@N@outer@S@A@S@N")
	idx.Records.Update(nested, types.RecordSymbol{Symbol: types.Symbol{ID: nested, ParentNamespaceID: a}})
	e := id("c:@N@outer@N@inner@E@E")
	idx.Enums.Update(e, types.EnumSymbol{Symbol: types.Symbol{ID: e, ParentNamespaceID: inner}})

	ResolveNamespaces(idx)

	o, ok := idx.Namespaces.Get(outer)
	require.True(t, ok)
	want := []types.SymbolID{a, b}
	slices.Sort(want)
	assert.Equal(t, want, o.Records)
	assert.Equal(t, []types.SymbolID{inner}, o.Namespaces)

	in, _ := idx.Namespaces.Get(inner)
	assert.Equal(t, []types.SymbolID{e}, in.Enums)
	assert.Empty(t, in.Records)
}

func TestUpdateRecordNames(t *testing.T) {
	idx := index.New()
	d := id("c:@S@Derived")
	idx.Records.Update(d, types.RecordSymbol{
		Symbol: types.Symbol{ID: d, Name: "Derived"},
		Proto:  "class Derived",
		BaseRecords: []types.BaseRecord{
			{ID: id("c:@S@Parent"), Access: types.AccessPublic, Name: "Parent"},
			{Access: types.AccessNone, Name: "Mixin"},
			{Access: types.AccessPrivate, Name: "std::string"},
		},
	})
	plain := id("c:@S@Plain")
	idx.Records.Update(plain, types.RecordSymbol{Symbol: types.Symbol{ID: plain}, Proto: "struct Plain"})

	UpdateRecordNames(idx)

	r, _ := idx.Records.Get(d)
	assert.Equal(t, "class Derived : public Parent, Mixin, private std::string", r.Proto)
	p, _ := idx.Records.Get(plain)
	assert.Equal(t, "struct Plain", p.Proto)
}
