package catalog

import (
	"context"
	"sync"
	"time"
)

// DetailTTL is how long a cached detail snapshot stays fresh.
const DetailTTL = 60 * time.Second

// DetailFetcher fetches the authoritative detail aggregate for a category.
type DetailFetcher interface {
	Detail(ctx context.Context, categoryID string) (*Detail, error)
}

type detailEntry struct {
	ts   time.Time
	data *Detail
}

// DetailCache is a read-through cache of detail snapshots keyed by category
// id. Reads are two-phase: Lookup hands back the last snapshot for an
// immediate possibly-stale answer, Get performs the remote fetch and
// replaces the entry. Entries live for the process lifetime only; an expired
// entry behaves exactly like a missing one.
type DetailCache struct {
	fetch DetailFetcher
	ttl   time.Duration
	now   func() time.Time

	mu      sync.Mutex
	entries map[string]detailEntry
}

// NewDetailCache creates a DetailCache with the standard TTL.
func NewDetailCache(fetch DetailFetcher) *DetailCache {
	return &DetailCache{
		fetch:   fetch,
		ttl:     DetailTTL,
		now:     time.Now,
		entries: make(map[string]detailEntry),
	}
}

// Lookup returns the cached snapshot for a category if it is still fresh.
// It never triggers a fetch.
func (c *DetailCache) Lookup(categoryID string) (*Detail, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[categoryID]
	if !ok || c.now().Sub(e.ts) > c.ttl {
		return nil, false
	}
	return e.data, true
}

// Get fetches the authoritative detail for a category, stores the new
// snapshot with a refreshed timestamp, and returns it. On fetch failure the
// error is returned and the previous entry, if any, is left untouched: a
// failed refresh never invalidates the last known value. Not-found
// (ErrNotFound) propagates unchanged and is distinct from transient failure.
func (c *DetailCache) Get(ctx context.Context, categoryID string) (*Detail, error) {
	d, err := c.fetch.Detail(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[categoryID] = detailEntry{ts: c.now(), data: d}
	c.mu.Unlock()

	return d, nil
}

// Stale returns the last stored snapshot regardless of age. Callers use it
// to keep serving the old value when a refresh fails.
func (c *DetailCache) Stale(categoryID string) (*Detail, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[categoryID]
	if !ok {
		return nil, false
	}
	return e.data, true
}

// Invalidate drops the entry for a category. Used by admin tooling after a
// catalog edit; regular request flow relies on the TTL.
func (c *DetailCache) Invalidate(categoryID string) {
	c.mu.Lock()
	delete(c.entries, categoryID)
	c.mu.Unlock()
}
