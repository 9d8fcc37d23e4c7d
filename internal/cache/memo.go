package cache

import (
	"sync"
	"sync/atomic"
)

// Memo maps each target to the last value computed for it and the key
// that value was computed from.
type Memo[T comparable, V any] struct {
	mu      sync.Mutex
	entries map[T]*memoEntry[V]

	// Statistics (atomic for lock-free reads)
	hits   atomic.Uint64
	misses atomic.Uint64
}

// memoEntry holds a cached value with the key it belongs to.
type memoEntry[V any] struct {
	key   string
	value V
}

// NewMemo creates an empty memo.
func NewMemo[T comparable, V any]() *Memo[T, V] {
	return &Memo[T, V]{
		entries: make(map[T]*memoEntry[V]),
	}
}

// Lookup returns the value stored for target if it was computed for key.
// Returns (zero, false) when the target is unknown or its key differs.
func (m *Memo[T, V]) Lookup(target T, key string) (V, bool) {
	m.mu.Lock()
	entry, ok := m.entries[target]
	m.mu.Unlock()

	if !ok || entry.key != key {
		m.misses.Add(1)
		var zero V
		return zero, false
	}

	m.hits.Add(1)
	return entry.value, true
}

// Key returns the key of the entry stored for target.
func (m *Memo[T, V]) Key(target T) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[target]
	if !ok {
		return "", false
	}
	return entry.key, true
}

// Store records value as the result for target under key, replacing any
// previous entry for the same target.
func (m *Memo[T, V]) Store(target T, key string, value V) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[target] = &memoEntry[V]{key: key, value: value}
}

// Forget removes the entry for target.
// Returns true if an entry was found and removed.
func (m *Memo[T, V]) Forget(target T) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.entries[target]; ok {
		delete(m.entries, target)
		return true
	}
	return false
}

// Clear removes all entries.
func (m *Memo[T, V]) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = make(map[T]*memoEntry[V])
}

// Len returns the number of targets with an entry.
func (m *Memo[T, V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.entries)
}

// Stats returns current memo statistics.
func (m *Memo[T, V]) Stats() Stats {
	hits := m.hits.Load()
	misses := m.misses.Load()

	var hitRate float64
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	return Stats{
		Len:     m.Len(),
		Hits:    hits,
		Misses:  misses,
		HitRate: hitRate,
	}
}

// Stats contains memo statistics.
type Stats struct {
	// Len is the current number of entries.
	Len int
	// Hits is the number of lookups answered from the memo.
	Hits uint64
	// Misses is the number of lookups that found no entry or a stale key.
	Misses uint64
	// HitRate is Hits / (Hits + Misses), 0.0 to 1.0.
	HitRate float64
}
