// Package index holds the per-category symbol databases that parallel fact
// collection writes into and the resolution passes later rewrite.
package index

import (
	"slices"
	"sync"
	"sync/atomic"

	"github.com/standardbeagle/cxxindex/internal/types"
)

// Database is a thread-safe map from SymbolID to one symbol category.
// Each call holds the lock only for its own duration; extraction work done
// between calls runs unlocked.
type Database[T any] struct {
	mu      sync.Mutex
	entries map[types.SymbolID]*T

	// Incremented once per declaration visit, stored or not. Reporting only.
	matches atomic.Uint64
}

// NewDatabase creates an empty database
func NewDatabase[T any]() *Database[T] {
	return &Database[T]{entries: make(map[types.SymbolID]*T)}
}

// Reserve inserts a zero T at id if absent and returns the slot.
// Idempotent when id is already present.
func (db *Database[T]) Reserve(id types.SymbolID) *T {
	db.mu.Lock()
	defer db.mu.Unlock()
	if slot, ok := db.entries[id]; ok {
		return slot
	}
	slot := new(T)
	db.entries[id] = slot
	return slot
}

// Claim is an atomic reserve-if-absent. It reports true only to the single
// caller that inserted the slot; everybody else gets false and should skip
// extraction.
func (db *Database[T]) Claim(id types.SymbolID) bool {
	db.mu.Lock()
	defer db.mu.Unlock()
	if _, ok := db.entries[id]; ok {
		return false
	}
	db.entries[id] = new(T)
	return true
}

// Update overwrites the entry at id. A previous Reserve is not required.
func (db *Database[T]) Update(id types.SymbolID, value T) {
	db.mu.Lock()
	defer db.mu.Unlock()
	if slot, ok := db.entries[id]; ok {
		*slot = value
		return
	}
	db.entries[id] = &value
}

// Check runs pred on the entry at id under the lock. It reports false when
// id is absent.
func (db *Database[T]) Check(id types.SymbolID, pred func(existing *T) bool) bool {
	db.mu.Lock()
	defer db.mu.Unlock()
	slot, ok := db.entries[id]
	return ok && pred(slot)
}

// UpdateIf overwrites the entry at id when it is absent or pred accepts the
// current value. The test and the write happen under one lock.
func (db *Database[T]) UpdateIf(id types.SymbolID, value T, pred func(existing *T) bool) bool {
	db.mu.Lock()
	defer db.mu.Unlock()
	slot, ok := db.entries[id]
	if !ok {
		db.entries[id] = &value
		return true
	}
	if !pred(slot) {
		return false
	}
	*slot = value
	return true
}

// Contains reports whether id has an entry
func (db *Database[T]) Contains(id types.SymbolID) bool {
	db.mu.Lock()
	defer db.mu.Unlock()
	_, ok := db.entries[id]
	return ok
}

// Get returns a copy of the entry at id
func (db *Database[T]) Get(id types.SymbolID) (T, bool) {
	db.mu.Lock()
	defer db.mu.Unlock()
	if slot, ok := db.entries[id]; ok {
		return *slot, true
	}
	var zero T
	return zero, false
}

// Lookup returns the stored entry for in-place mutation. Only safe once
// parallel collection has finished.
func (db *Database[T]) Lookup(id types.SymbolID) (*T, bool) {
	db.mu.Lock()
	defer db.mu.Unlock()
	slot, ok := db.entries[id]
	return slot, ok
}

// Delete removes the entry at id, if any
func (db *Database[T]) Delete(id types.SymbolID) {
	db.mu.Lock()
	defer db.mu.Unlock()
	delete(db.entries, id)
}

// Len returns the number of stored entries
func (db *Database[T]) Len() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.entries)
}

// IDs returns a sorted snapshot of every stored ID. Iterating over it gives
// passes a deterministic order and lets them delete while iterating.
func (db *Database[T]) IDs() []types.SymbolID {
	db.mu.Lock()
	ids := make([]types.SymbolID, 0, len(db.entries))
	for id := range db.entries {
		ids = append(ids, id)
	}
	db.mu.Unlock()
	slices.Sort(ids)
	return ids
}

// Each calls fn for every entry in ID order until fn returns false.
// The lock is not held while fn runs, so fn may delete entries.
func (db *Database[T]) Each(fn func(id types.SymbolID, entry *T) bool) {
	for _, id := range db.IDs() {
		slot, ok := db.Lookup(id)
		if !ok {
			continue
		}
		if !fn(id, slot) {
			return
		}
	}
}

// CountMatch records one declaration visit
func (db *Database[T]) CountMatch() {
	db.matches.Add(1)
}

// Matches returns the number of declaration visits recorded
func (db *Database[T]) Matches() uint64 {
	return db.matches.Load()
}
