// Package cache memoizes a source text's full analysis snapshot, keyed by
// a content hash rather than a filename, so re-analyzing an unchanged
// corpus never re-runs the lexer, parser, validator, or simulator.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"github.com/zenithlang/zenith/analysis"
)

// SnapshotCache caches analysis snapshots keyed by a hash of the source
// text and the options used to build them.
type SnapshotCache struct {
	mu        sync.RWMutex
	entries   map[string]*analysis.Snapshot
	order     []string // insertion order, for FIFO eviction
	maxSize   int
	hits      int64
	misses    int64
	evictions int64
}

// NewSnapshotCache creates a cache with the given maximum size. A maxSize
// of 0 means unlimited.
func NewSnapshotCache(maxSize int) *SnapshotCache {
	return &SnapshotCache{
		entries: make(map[string]*analysis.Snapshot),
		maxSize: maxSize,
	}
}

// Key hashes source text and strictness together; two identical sources
// analyzed under different strictness settings get distinct cache slots.
func Key(source string, strict bool) string {
	h := sha256.New()
	h.Write([]byte(source))
	if strict {
		h.Write([]byte{1})
	} else {
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Get retrieves a cached snapshot, or nil if absent.
func (c *SnapshotCache) Get(key string) *analysis.Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if snap, ok := c.entries[key]; ok {
		c.hits++
		return snap
	}
	c.misses++
	return nil
}

// Put stores a snapshot under key, evicting the oldest entry first if the
// cache is full.
func (c *SnapshotCache) Put(key string, snap *analysis.Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.entries[key]; !exists && c.maxSize > 0 && len(c.entries) >= c.maxSize {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
		c.evictions++
	}
	if _, exists := c.entries[key]; !exists {
		c.order = append(c.order, key)
	}
	c.entries[key] = snap
}

// GetOrCompute returns the cached snapshot for key, computing and caching
// it via compute on a miss.
func (c *SnapshotCache) GetOrCompute(key string, compute func() (*analysis.Snapshot, error)) (*analysis.Snapshot, error) {
	if snap := c.Get(key); snap != nil {
		return snap, nil
	}
	snap, err := compute()
	if err != nil {
		return nil, err
	}
	c.Put(key, snap)
	return snap, nil
}

// Clear removes all cached entries.
func (c *SnapshotCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*analysis.Snapshot)
	c.order = nil
}

// Size returns the current number of cached entries.
func (c *SnapshotCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stats reports cache hit/miss/eviction counters.
type Stats struct {
	Size      int
	MaxSize   int
	Hits      int64
	Misses    int64
	Evictions int64
	HitRate   float64
}

func (c *SnapshotCache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	total := c.hits + c.misses
	hitRate := 0.0
	if total > 0 {
		hitRate = float64(c.hits) / float64(total)
	}
	return Stats{
		Size:      len(c.entries),
		MaxSize:   c.maxSize,
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
		HitRate:   hitRate,
	}
}
