// Package cache keeps assembled dashboard views keyed by a coordinate
// fingerprint, with a per-key generation counter. Every load claims a
// generation before fetching; a commit only lands if no newer claim was
// made for the same key in the meantime, so a slow response for a city the
// user has already left can never overwrite fresher data.
package cache

import (
	"sync"
	"time"

	"github.com/The-ShambhaviPandey/Mausam/internal/models"
)

type entry struct {
	view      models.DashboardView
	expiresAt time.Time
}

type Cache struct {
	mu    sync.Mutex
	items map[string]entry
	gens  map[string]uint64
	ttl   time.Duration

	now func() time.Time
}

func New(ttl time.Duration) *Cache {
	return &Cache{
		items: make(map[string]entry),
		gens:  make(map[string]uint64),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Get returns the cached view for key if present and unexpired.
func (c *Cache) Get(key string) (models.DashboardView, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.items[key]
	if !ok || c.now().After(e.expiresAt) {
		return models.DashboardView{}, false
	}
	return e.view, true
}

// Begin claims a generation for an in-flight load of key. Claiming
// invalidates every earlier outstanding claim for the same key.
func (c *Cache) Begin(key string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gens[key]++
	return c.gens[key]
}

// Commit stores the view if gen is still the latest claim for key. It
// reports whether the write landed; a false return means a newer load
// superseded this one and its result was discarded.
func (c *Cache) Commit(key string, gen uint64, view models.DashboardView) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gens[key] != gen {
		return false
	}
	c.items[key] = entry{view: view, expiresAt: c.now().Add(c.ttl)}
	return true
}
