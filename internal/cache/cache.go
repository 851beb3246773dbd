package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// LRU is a fixed size least-recently-used cache. It is safe for concurrent
// use.
type LRU[K comparable, V any] struct {
	entries *lru.Cache[K, V]
}

// New creates a cache holding at most size entries. Sizes below one are
// treated as one.
func New[K comparable, V any](size int) *LRU[K, V] {
	if size < 1 {
		size = 1
	}
	// lru.New only fails for non-positive sizes.
	entries, err := lru.New[K, V](size)
	if err != nil {
		panic(err)
	}
	return &LRU[K, V]{entries: entries}
}

func (c *LRU[K, V]) Get(key K) (value V, ok bool) {
	return c.entries.Get(key)
}

// Put stores value under key, evicting the oldest entry when full.
func (c *LRU[K, V]) Put(key K, value V) {
	c.entries.Add(key, value)
}

// Len returns the number of cached entries.
func (c *LRU[K, V]) Len() int {
	return c.entries.Len()
}

// Purge drops every entry.
func (c *LRU[K, V]) Purge() {
	c.entries.Purge()
}
