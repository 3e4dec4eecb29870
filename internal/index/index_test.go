package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/cxxindex/internal/types"
)

func record(id types.SymbolID, name string, bases ...types.BaseRecord) types.RecordSymbol {
	return types.RecordSymbol{
		Symbol:      types.Symbol{ID: id, Name: name},
		Type:        "class",
		Proto:       "class " + name,
		BaseRecords: bases,
	}
}

func TestFingerprintIgnoresCommitOrder(t *testing.T) {
	a := New()
	a.Records.Update(1, record(1, "A"))
	a.Records.Update(2, record(2, "B"))
	a.Functions.Update(3, types.FunctionSymbol{Symbol: types.Symbol{ID: 3, Name: "f"}})
	a.Records.CountMatch()

	b := New()
	b.Functions.Update(3, types.FunctionSymbol{Symbol: types.Symbol{ID: 3, Name: "f"}})
	b.Records.Update(2, record(2, "B"))
	b.Records.Update(1, record(1, "A"))

	fa, err := a.Fingerprint()
	require.NoError(t, err)
	fb, err := b.Fingerprint()
	require.NoError(t, err)
	assert.Equal(t, fa, fb)

	b.Records.Update(2, record(2, "B2"))
	fb2, err := b.Fingerprint()
	require.NoError(t, err)
	assert.NotEqual(t, fa, fb2)
}

func TestFingerprintSeparatesCategories(t *testing.T) {
	a := New()
	a.Enums.Update(1, types.EnumSymbol{Symbol: types.Symbol{ID: 1, Name: "X"}})
	b := New()
	b.Namespaces.Update(1, types.NamespaceSymbol{Symbol: types.Symbol{ID: 1, Name: "X"}})

	fa, _ := a.Fingerprint()
	fb, _ := b.Fingerprint()
	assert.NotEqual(t, fa, fb)
}

func TestStatsAndEmpty(t *testing.T) {
	idx := New()
	assert.True(t, idx.Empty())

	idx.Functions.CountMatch()
	idx.Functions.CountMatch()
	idx.Functions.Update(1, types.FunctionSymbol{})
	assert.False(t, idx.Empty())

	stats := idx.Stats()
	assert.Equal(t, CategoryStats{Matches: 2, Entries: 1}, stats.Functions)
	assert.Equal(t, CategoryStats{}, stats.Records)
}

func TestFindByName(t *testing.T) {
	idx := New()
	idx.Records.Update(1, record(1, "Parent"))
	idx.Records.Update(2, record(2, "Derived"))

	got, ok := FindByName(idx.Records, "Derived")
	require.True(t, ok)
	assert.Equal(t, types.SymbolID(2), got.ID)

	_, ok = FindByName(idx.Records, "Missing")
	assert.False(t, ok)
}
