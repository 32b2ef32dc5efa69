package application

import (
	"fmt"
	"sync"
	"time"

	"github.com/example/resort-points-editor/internal/aggregate"
)

// summaryCache stores recently computed resort summaries so repeated reads
// of an unchanged workspace skip the aggregation pass. Entries are keyed by
// workspace revision, so any edit naturally misses the cache.
type summaryCache struct {
	mu         sync.RWMutex
	now        func() time.Time
	ttl        time.Duration
	maxEntries int
	entries    map[string]summaryCacheEntry
}

type summaryCacheEntry struct {
	summary   aggregate.Summary
	expiresAt time.Time
}

func newSummaryCache(ttl time.Duration, maxEntries int, now func() time.Time) *summaryCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	if maxEntries <= 0 {
		maxEntries = 128
	}
	if now == nil {
		now = time.Now
	}
	return &summaryCache{
		now:        now,
		ttl:        ttl,
		maxEntries: maxEntries,
		entries:    make(map[string]summaryCacheEntry),
	}
}

func (c *summaryCache) Get(key string) (aggregate.Summary, bool) {
	if c == nil {
		return aggregate.Summary{}, false
	}
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return aggregate.Summary{}, false
	}
	if c.now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return aggregate.Summary{}, false
	}
	return entry.summary, true
}

func (c *summaryCache) Store(key string, summary aggregate.Summary) {
	if c == nil {
		return
	}
	expiry := c.now().Add(c.ttl)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.cleanupLocked()
	if len(c.entries) >= c.maxEntries {
		c.evictOneLocked()
	}
	c.entries[key] = summaryCacheEntry{summary: summary, expiresAt: expiry}
}

func (c *summaryCache) cleanupLocked() {
	now := c.now()
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
}

func (c *summaryCache) evictOneLocked() {
	for key := range c.entries {
		delete(c.entries, key)
		return
	}
}

// The cache is shared by every session, so the workspace ID has to be part of
// the key. Resort IDs alone are not unique across independently loaded files.
func buildSummaryCacheKey(workspaceID, resortID, year string, revision uint64) string {
	return fmt.Sprintf("%s|%s|%s|%d", workspaceID, resortID, year, revision)
}
