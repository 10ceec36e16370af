// Package cache provides a sharded, concurrency-safe memo table.
//
// Sharded is meant for small, bounded key spaces whose values are expensive
// to compute and never change once computed, such as permutation tables
// keyed by problem shape. Entries are never evicted: the table lives as long
// as the process and grows by one entry per distinct key.
package cache

import (
	"sync"
	"sync/atomic"
)

const (
	// ShardCount is the number of shards for reduced lock contention.
	// Must be a power of 2 for fast modulo via bitwise AND.
	ShardCount = 16

	shardMask = ShardCount - 1
)

// Hasher is a function that computes a hash for a key.
// Used by Sharded for shard selection.
type Hasher[K any] func(K) uint64

// PairHasher mixes two small non-negative integers into a hash.
// The multiplier spreads consecutive pairs across shards.
func PairHasher(a, b int) uint64 {
	h := uint64(a)*0x9E3779B97F4A7C15 ^ uint64(b)
	return h ^ (h >> 29)
}

// Sharded is a thread-safe memo table split into ShardCount shards.
//
// Shard locks only guard the key to entry maps. Values are computed outside
// them, so lookups never wait on a computation for a different key, and a
// miss holds its shard's write lock just long enough to install the entry.
type Sharded[K comparable, V any] struct {
	shards [ShardCount]*shard[K, V]
	hasher Hasher[K]

	hits     atomic.Uint64
	misses   atomic.Uint64
	computed atomic.Uint64
}

type shard[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]func() V
}

// NewSharded creates an empty memo table.
// The hasher is used for shard selection only; equal keys must hash equally.
func NewSharded[K comparable, V any](hasher Hasher[K]) *Sharded[K, V] {
	c := &Sharded[K, V]{hasher: hasher}
	for i := range c.shards {
		c.shards[i] = &shard[K, V]{entries: make(map[K]func() V)}
	}
	return c
}

func (c *Sharded[K, V]) shardFor(key K) *shard[K, V] {
	return c.shards[c.hasher(key)&shardMask]
}

// GetOrCompute returns the value for key, calling compute to create it on
// the first request. Concurrent first requests for the same key wait for a
// single compute call; requests for other keys are not blocked by it.
//
// compute must not request its own key.
// The value is stored as-is (not copied). Callers must not modify it.
func (c *Sharded[K, V]) GetOrCompute(key K, compute func(K) V) V {
	s := c.shardFor(key)

	// Fast path: read lock
	s.mu.RLock()
	value, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		s.mu.Lock()
		// Re-check after acquiring write lock
		if value, ok = s.entries[key]; !ok {
			value = sync.OnceValue(func() V {
				c.computed.Add(1)
				return compute(key)
			})
			s.entries[key] = value
		}
		s.mu.Unlock()
	}

	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return value()
}

// Len returns the total number of entries across all shards, including
// entries whose value is still being computed.
func (c *Sharded[K, V]) Len() int {
	total := 0
	for _, s := range c.shards {
		s.mu.RLock()
		total += len(s.entries)
		s.mu.RUnlock()
	}
	return total
}

// Keys returns every key currently stored, in no particular order.
func (c *Sharded[K, V]) Keys() []K {
	var keys []K
	for _, s := range c.shards {
		s.mu.RLock()
		for k := range s.entries {
			keys = append(keys, k)
		}
		s.mu.RUnlock()
	}
	return keys
}

// Stats holds memo table statistics.
type Stats struct {
	// Len is the number of stored entries.
	Len int

	// Hits counts lookups answered from the table.
	Hits uint64

	// Misses counts lookups that found nothing.
	Misses uint64

	// Computed counts values produced by GetOrCompute.
	Computed uint64

	// HitRate is Hits / (Hits + Misses), or 0 before any lookup.
	HitRate float64
}

// Stats returns current statistics.
func (c *Sharded[K, V]) Stats() Stats {
	hits := c.hits.Load()
	misses := c.misses.Load()

	var hitRate float64
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	return Stats{
		Len:      c.Len(),
		Hits:     hits,
		Misses:   misses,
		Computed: c.computed.Load(),
		HitRate:  hitRate,
	}
}
