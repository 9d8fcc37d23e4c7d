// Package cache provides the per-target memo used by the displacement-map
// synthesizer.
//
// A Memo holds at most one entry per target. Each entry remembers the key
// it was computed for; a lookup with a different key is a miss, and the
// next Store overwrites the entry. Entries live until Forget or Clear, so
// memory is bounded by the number of live targets.
//
//	m := cache.NewMemo[string, string]()
//	m.Store("card-1", "320x200-0.5-5-0-12px", markup)
//	v, ok := m.Lookup("card-1", "320x200-0.5-5-0-12px")
//
// Memo is safe for concurrent use and must not be copied after creation.
package cache
