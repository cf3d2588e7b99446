// Package cache implements the optional per-source cache the
// IncrementalCompiler uses (spec §3 Lifecycle, §5 "single-writer discipline
// per key; concurrent readers see a consistent snapshot; eviction is
// last-write-wins"). Adapted from the teacher's TTLCache
// (feng2208-adblocker server/cache.go), rebuilt on a bounded LRU so
// unbounded source counts can't grow the cache forever.
package cache

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Entry is a single cached source compilation, keyed by source URL/path
// plus a content hash (spec §3: "keyed by source URL + content hash").
type Entry struct {
	Key        string
	ContentHash string
	Lines      []string
	FetchedAt  time.Time
}

// SourceCache is a thread-safe, bounded cache of per-source compiled
// output. Concurrent Get calls see a consistent snapshot; concurrent Put
// calls on the same key race last-write-wins, matching spec §5.
type SourceCache struct {
	mu   sync.RWMutex
	lru  *lru.Cache[string, Entry]
}

// New builds a SourceCache holding up to capacity entries.
func New(capacity int) (*SourceCache, error) {
	l, err := lru.New[string, Entry](capacity)
	if err != nil {
		return nil, err
	}
	return &SourceCache{lru: l}, nil
}

// Get returns the cached entry for key, and whether key is present. It
// does not compare content hashes; the caller checks Entry.ContentHash
// and treats a stale hash as a miss.
func (c *SourceCache) Get(key string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lru.Get(key)
}

// Put stores or overwrites the entry for key.
func (c *SourceCache) Put(key string, entry Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Add(key, entry)
}

// Evict removes key from the cache, if present.
func (c *SourceCache) Evict(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Remove(key)
}

// Len reports the number of cached entries.
func (c *SourceCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lru.Len()
}
