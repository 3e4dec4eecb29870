package index

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/cxxindex/internal/types"
)

func TestReserveIsIdempotent(t *testing.T) {
	db := NewDatabase[types.RecordSymbol]()

	first := db.Reserve(1)
	first.Name = "Foo"
	second := db.Reserve(1)

	assert.Same(t, first, second)
	assert.Equal(t, "Foo", second.Name)
	assert.Equal(t, 1, db.Len())
}

func TestUpdateWithoutReserve(t *testing.T) {
	db := NewDatabase[types.EnumSymbol]()
	db.Update(7, types.EnumSymbol{Symbol: types.Symbol{ID: 7, Name: "Color"}})

	require.True(t, db.Contains(7))
	got, ok := db.Get(7)
	require.True(t, ok)
	assert.Equal(t, "Color", got.Name)
}

func TestUpdateFillsReservedSlot(t *testing.T) {
	db := NewDatabase[types.FunctionSymbol]()
	slot := db.Reserve(3)
	db.Update(3, types.FunctionSymbol{Symbol: types.Symbol{ID: 3, Name: "run"}})

	assert.Equal(t, "run", slot.Name, "reserved handle sees the committed value")
}

func TestGetMissing(t *testing.T) {
	db := NewDatabase[types.FunctionSymbol]()
	_, ok := db.Get(42)
	assert.False(t, ok)
	_, ok = db.Lookup(42)
	assert.False(t, ok)
	assert.False(t, db.Contains(42))
}

func TestClaimHasExactlyOneWinner(t *testing.T) {
	db := NewDatabase[types.FunctionSymbol]()

	var winners atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			db.CountMatch()
			if db.Claim(99) {
				winners.Add(1)
				db.Update(99, types.FunctionSymbol{Symbol: types.Symbol{ID: 99, Name: "foo"}})
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), winners.Load())
	assert.Equal(t, 1, db.Len())
	assert.Equal(t, uint64(64), db.Matches())

	got, ok := db.Get(99)
	require.True(t, ok)
	assert.Equal(t, "foo", got.Name)
}

func TestConcurrentCheckThenInsertConverges(t *testing.T) {
	// Duplicate extraction from racing workers must settle on one entry.
	db := NewDatabase[types.RecordSymbol]()
	value := types.RecordSymbol{Symbol: types.Symbol{ID: 5, Name: "Shared"}, Type: "class", Proto: "class Shared"}

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if db.Contains(5) {
				return
			}
			db.Reserve(5)
			db.Update(5, value)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, db.Len())
	got, _ := db.Get(5)
	assert.Equal(t, value, got)
}

func TestIDsSortedAndEachAllowsDelete(t *testing.T) {
	db := NewDatabase[types.NamespaceSymbol]()
	for _, id := range []types.SymbolID{30, 10, 20} {
		db.Update(id, types.NamespaceSymbol{Symbol: types.Symbol{ID: id}})
	}
	assert.Equal(t, []types.SymbolID{10, 20, 30}, db.IDs())

	var seen []types.SymbolID
	db.Each(func(id types.SymbolID, _ *types.NamespaceSymbol) bool {
		seen = append(seen, id)
		db.Delete(id)
		return true
	})
	assert.Equal(t, []types.SymbolID{10, 20, 30}, seen)
	assert.Equal(t, 0, db.Len())
}

func TestEachStopsEarly(t *testing.T) {
	db := NewDatabase[types.EnumSymbol]()
	for id := types.SymbolID(1); id <= 5; id++ {
		db.Update(id, types.EnumSymbol{})
	}
	count := 0
	db.Each(func(types.SymbolID, *types.EnumSymbol) bool {
		count++
		return count < 2
	})
	assert.Equal(t, 2, count)
}

func TestUpdateIfKeepsPreferredValue(t *testing.T) {
	db := NewDatabase[types.NamespaceSymbol]()
	earlier := func(line int) func(*types.NamespaceSymbol) bool {
		return func(existing *types.NamespaceSymbol) bool { return line < existing.Line }
	}

	assert.True(t, db.UpdateIf(1, types.NamespaceSymbol{Symbol: types.Symbol{Line: 20}}, earlier(20)), "absent entries are always written")
	assert.False(t, db.UpdateIf(1, types.NamespaceSymbol{Symbol: types.Symbol{Line: 30}}, earlier(30)))
	assert.True(t, db.UpdateIf(1, types.NamespaceSymbol{Symbol: types.Symbol{Line: 5}}, earlier(5)))

	got, _ := db.Get(1)
	assert.Equal(t, 5, got.Line)
	assert.True(t, db.Check(1, func(e *types.NamespaceSymbol) bool { return e.Line == 5 }))
	assert.False(t, db.Check(2, func(*types.NamespaceSymbol) bool { return true }))
}
