package cache

import (
	"encoding/binary"
	"hash/fnv"
	"sync"
	"sync/atomic"
)

const (
	// ShardCount is the number of independently locked shards.
	// Must be a power of 2.
	ShardCount = 16

	// DefaultCapacity is the per-shard capacity used when none is given.
	DefaultCapacity = 256

	shardMask = ShardCount - 1
)

// Hasher computes the hash used to pick a shard for a key.
type Hasher[K any] func(K) uint64

// Key identifies one decoded glyph: the font it came from and its index
// in that font.
type Key struct {
	Font uint64
	GID  uint16
}

// HashKey is the FNV-1a hash of both Key fields.
func HashKey(k Key) uint64 {
	var buf [10]byte
	binary.LittleEndian.PutUint64(buf[:8], k.Font)
	binary.LittleEndian.PutUint16(buf[8:], k.GID)
	h := fnv.New64a()
	_, _ = h.Write(buf[:]) // fnv.Write never returns an error
	return h.Sum64()
}

// FontID returns a stable identity for raw font data.
func FontID(data []byte) uint64 {
	h := fnv.New64a()
	_, _ = h.Write(data)
	return h.Sum64()
}

// Store is a sharded LRU cache.
//
// Each shard has its own lock and recency list, so lookups of different
// glyphs rarely contend. Statistics are kept in atomics.
type Store[K comparable, V any] struct {
	shards   [ShardCount]*shard[K, V]
	hasher   Hasher[K]
	capacity int

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

type shard[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]*entry[K, V]
	order   recency[K]
}

type entry[K comparable, V any] struct {
	value V
	node  *node[K]
}

// New creates a store holding up to capacity entries per shard.
// If capacity <= 0, DefaultCapacity is used.
func New[K comparable, V any](capacity int, hasher Hasher[K]) *Store[K, V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	s := &Store[K, V]{hasher: hasher, capacity: capacity}
	for i := range s.shards {
		s.shards[i] = &shard[K, V]{entries: make(map[K]*entry[K, V])}
	}
	return s
}

func (s *Store[K, V]) shardFor(key K) *shard[K, V] {
	return s.shards[s.hasher(key)&shardMask]
}

// Get returns the value stored under key and marks it recently used.
func (s *Store[K, V]) Get(key K) (V, bool) {
	sh := s.shardFor(key)
	sh.mu.Lock()
	e, ok := sh.entries[key]
	if !ok {
		sh.mu.Unlock()
		s.misses.Add(1)
		var zero V
		return zero, false
	}
	sh.order.touch(e.node)
	v := e.value
	sh.mu.Unlock()

	s.hits.Add(1)
	return v, true
}

// Put stores value under key, evicting the least recently used entries
// of the shard when it is full.
func (s *Store[K, V]) Put(key K, value V) {
	sh := s.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	s.putLocked(sh, key, value)
}

// Load returns the value stored under key, or calls load, stores its
// result and returns it. Errors from load are returned and nothing is
// stored, so a later Load retries.
//
// load runs with the shard locked; concurrent loads of the same key call
// it once.
func (s *Store[K, V]) Load(key K, load func() (V, error)) (V, error) {
	sh := s.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	if e, ok := sh.entries[key]; ok {
		sh.order.touch(e.node)
		s.hits.Add(1)
		return e.value, nil
	}
	s.misses.Add(1)

	v, err := load()
	if err != nil {
		var zero V
		return zero, err
	}
	s.putLocked(sh, key, v)
	return v, nil
}

func (s *Store[K, V]) putLocked(sh *shard[K, V], key K, value V) {
	if e, ok := sh.entries[key]; ok {
		e.value = value
		sh.order.touch(e.node)
		return
	}
	for sh.order.len() >= s.capacity {
		oldest, ok := sh.order.pop()
		if !ok {
			break
		}
		delete(sh.entries, oldest)
		s.evictions.Add(1)
	}
	sh.entries[key] = &entry[K, V]{value: value, node: sh.order.push(key)}
}

// Delete removes key. It reports whether the key was present.
func (s *Store[K, V]) Delete(key K) bool {
	sh := s.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	e, ok := sh.entries[key]
	if !ok {
		return false
	}
	sh.order.remove(e.node)
	delete(sh.entries, key)
	return true
}

// Clear removes every entry. Statistics are kept.
func (s *Store[K, V]) Clear() {
	for _, sh := range s.shards {
		sh.mu.Lock()
		sh.entries = make(map[K]*entry[K, V])
		sh.order.reset()
		sh.mu.Unlock()
	}
}

// Len returns the number of entries across all shards.
func (s *Store[K, V]) Len() int {
	n := 0
	for _, sh := range s.shards {
		sh.mu.Lock()
		n += len(sh.entries)
		sh.mu.Unlock()
	}
	return n
}

// Capacity returns the per-shard capacity.
func (s *Store[K, V]) Capacity() int {
	return s.capacity
}

// Stats returns a snapshot of the store counters.
func (s *Store[K, V]) Stats() Stats {
	hits := s.hits.Load()
	misses := s.misses.Load()

	var rate float64
	if total := hits + misses; total > 0 {
		rate = float64(hits) / float64(total)
	}
	return Stats{
		Len:           s.Len(),
		Capacity:      s.capacity,
		TotalCapacity: s.capacity * ShardCount,
		Hits:          hits,
		Misses:        misses,
		HitRate:       rate,
		Evictions:     s.evictions.Load(),
	}
}

// ResetStats zeroes the counters.
func (s *Store[K, V]) ResetStats() {
	s.hits.Store(0)
	s.misses.Store(0)
	s.evictions.Store(0)
}

// Stats contains store statistics.
type Stats struct {
	// Len is the current number of entries.
	Len int
	// Capacity is the per-shard capacity.
	Capacity int
	// TotalCapacity is Capacity times ShardCount.
	TotalCapacity int
	// Hits is the number of lookups that found an entry.
	Hits uint64
	// Misses is the number of lookups that did not.
	Misses uint64
	// HitRate is Hits / (Hits + Misses), or 0 before any lookup.
	HitRate float64
	// Evictions is the number of entries dropped to make room.
	Evictions uint64
}
