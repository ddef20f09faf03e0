// Package cache implements the glyph store: a thread-safe, sharded LRU
// holding decoded outlines so that repeated characters and repeated
// compilations of the same string share one read-only glyph.
//
// Values are stored as-is. Anything put into a Store must not be
// modified afterwards; glyph3d.Glyph values are immutable, which is what
// makes them safe to share.
//
// Usage:
//
//	store := cache.New[cache.Key, *glyph3d.Glyph](0, cache.HashKey)
//	g, err := store.Load(cache.Key{Font: id, GID: 36}, decode)
package cache
