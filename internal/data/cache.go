package data

import (
	"sync"
	"time"

	"investeasy/internal/clock"
	"investeasy/internal/model"
)

// RateCache holds the last successfully fetched indicator snapshot.
//
// It is a single-entry cache: Put replaces the entry whole and nothing ever deletes
// it, so once populated a snapshot is always available as a stale fallback.
// Freshness is judged by elapsed time against the injected clock.
type RateCache struct {
	mu    sync.RWMutex
	entry *model.CacheEntry
	clock clock.Clock
}

// NewRateCache creates an empty cache. A nil clock means the system clock.
func NewRateCache(clk clock.Clock) *RateCache {
	if clk == nil {
		clk = clock.Real{}
	}
	return &RateCache{clock: clk}
}

// Get returns the current entry, fresh or not.
func (c *RateCache) Get() (model.CacheEntry, bool) {
	if c == nil {
		return model.CacheEntry{}, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.entry == nil {
		return model.CacheEntry{}, false
	}
	return *c.entry, true
}

// Put stores snapshot unconditionally, stamped with the current time.
func (c *RateCache) Put(snapshot model.IndicatorSnapshot) model.CacheEntry {
	if c == nil {
		return model.CacheEntry{Snapshot: snapshot}
	}

	entry := &model.CacheEntry{
		Snapshot:  snapshot,
		FetchedAt: c.clock.Now(),
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entry = entry
	return *entry
}

// IsFresh reports whether an entry exists and is younger than maxAge.
func (c *RateCache) IsFresh(maxAge time.Duration) bool {
	_, ok := c.fresh(maxAge)
	return ok
}

// fresh returns the entry together with its freshness under a single read lock.
func (c *RateCache) fresh(maxAge time.Duration) (model.CacheEntry, bool) {
	if c == nil {
		return model.CacheEntry{}, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.entry == nil {
		return model.CacheEntry{}, false
	}
	if c.clock.Now().Sub(c.entry.FetchedAt) >= maxAge {
		return *c.entry, false
	}
	return *c.entry, true
}
