package ingest

import (
	"sync"
	"time"

	"github.com/spec-kit/assist-dashboard/internal/domain"
)

// tableCache keeps parsed tables for a short window so rapid re-renders
// of the same upload skip the parse. Keys are content hashes, so a fresh
// upload misses naturally.
type tableCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]cacheEntry
}

type cacheEntry struct {
	table    domain.Table
	storedAt time.Time
}

func newTableCache(ttl time.Duration, now func() time.Time) *tableCache {
	if now == nil {
		now = time.Now
	}
	return &tableCache{
		ttl:     ttl,
		now:     now,
		entries: make(map[string]cacheEntry),
	}
}

func (c *tableCache) get(key string) (domain.Table, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok {
		return domain.Table{}, false
	}
	if c.now().Sub(entry.storedAt) > c.ttl {
		delete(c.entries, key)
		return domain.Table{}, false
	}
	return entry.table, true
}

func (c *tableCache) put(key string, table domain.Table) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, entry := range c.entries {
		if c.now().Sub(entry.storedAt) > c.ttl {
			delete(c.entries, k)
		}
	}
	c.entries[key] = cacheEntry{table: table, storedAt: c.now()}
}

// Len reports live entries, for readiness reporting.
func (c *tableCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
