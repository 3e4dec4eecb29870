package index

import (
	"encoding/json"
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/standardbeagle/cxxindex/internal/types"
)

// Index is the set of per-category databases produced by one indexing run
type Index struct {
	Functions  *Database[types.FunctionSymbol]
	Records    *Database[types.RecordSymbol]
	Enums      *Database[types.EnumSymbol]
	Namespaces *Database[types.NamespaceSymbol]
}

// New creates an empty index
func New() *Index {
	return &Index{
		Functions:  NewDatabase[types.FunctionSymbol](),
		Records:    NewDatabase[types.RecordSymbol](),
		Enums:      NewDatabase[types.EnumSymbol](),
		Namespaces: NewDatabase[types.NamespaceSymbol](),
	}
}

// CategoryStats is the coverage summary of one database
type CategoryStats struct {
	Matches uint64 `json:"matches"`
	Entries int    `json:"entries"`
}

type Stats struct {
	Functions  CategoryStats `json:"functions"`
	Records    CategoryStats `json:"records"`
	Enums      CategoryStats `json:"enums"`
	Namespaces CategoryStats `json:"namespaces"`
}

// Stats snapshots match counters and entry counts
func (idx *Index) Stats() Stats {
	return Stats{
		Functions:  CategoryStats{Matches: idx.Functions.Matches(), Entries: idx.Functions.Len()},
		Records:    CategoryStats{Matches: idx.Records.Matches(), Entries: idx.Records.Len()},
		Enums:      CategoryStats{Matches: idx.Enums.Matches(), Entries: idx.Enums.Len()},
		Namespaces: CategoryStats{Matches: idx.Namespaces.Matches(), Entries: idx.Namespaces.Len()},
	}
}

// Empty reports whether no category holds any entry
func (idx *Index) Empty() bool {
	return idx.Functions.Len() == 0 && idx.Records.Len() == 0 &&
		idx.Enums.Len() == 0 && idx.Namespaces.Len() == 0
}

// Fingerprint hashes the full content of the index in ID order. Two indexes
// with the same entries hash equal regardless of the order the entries were
// committed in, so runs with different worker counts can be compared.
// Match counters are excluded.
func (idx *Index) Fingerprint() (uint64, error) {
	d := xxhash.New()
	if err := hashDatabase(d, "functions", idx.Functions); err != nil {
		return 0, err
	}
	if err := hashDatabase(d, "records", idx.Records); err != nil {
		return 0, err
	}
	if err := hashDatabase(d, "enums", idx.Enums); err != nil {
		return 0, err
	}
	if err := hashDatabase(d, "namespaces", idx.Namespaces); err != nil {
		return 0, err
	}
	return d.Sum64(), nil
}

func hashDatabase[T any](d *xxhash.Digest, category string, db *Database[T]) error {
	_, _ = d.WriteString(category)
	var err error
	db.Each(func(id types.SymbolID, entry *T) bool {
		var data []byte
		data, err = json.Marshal(entry)
		if err != nil {
			err = fmt.Errorf("fingerprint %s %s: %w", category, id, err)
			return false
		}
		_, _ = d.WriteString(id.Hex())
		_, _ = d.Write(data)
		return true
	})
	return err
}

// FindByName returns the first entry, in ID order, whose name matches.
// Names are not unique; use it for inspection and tests.
func FindByName[T any, PT interface {
	*T
	Base() *types.Symbol
}](db *Database[T], name string) (*T, bool) {
	var found *T
	db.Each(func(_ types.SymbolID, entry *T) bool {
		if PT(entry).Base().Name == name {
			found = entry
			return false
		}
		return true
	})
	return found, found != nil
}
