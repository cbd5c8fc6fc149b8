// Package cache provides the in-process read-through cache for category
// lists. The cache is injected where needed, never ambient: it is built
// once at startup with a loader and a TTL, and category mutation paths
// call Invalidate explicitly.
package cache

import (
	"sync"
	"time"

	"catalog-service/internal/model"
	"catalog-service/prometheus"
)

// Loader fetches the category list from the store on a miss
type Loader func() ([]model.Category, error)

// CategoryCache caches the full category list with a TTL. Entries expire
// after the TTL or when Invalidate is called; a stale read between a
// category write and its Invalidate call never happens because writers
// invalidate before responding.
type CategoryCache struct {
	mu     sync.Mutex
	load   Loader
	ttl    time.Duration
	now    func() time.Time
	loaded bool
	values []model.Category
	expiry time.Time
}

// NewCategoryCache builds a cache around the loader. A non-positive ttl
// disables caching and every Get falls through to the loader.
func NewCategoryCache(load Loader, ttl time.Duration) *CategoryCache {
	return &CategoryCache{
		load: load,
		ttl:  ttl,
		now:  time.Now,
	}
}

// Get returns the cached category list, loading it on a miss or after
// expiry
func (c *CategoryCache) Get() ([]model.Category, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded && c.ttl > 0 && c.now().Before(c.expiry) {
		prometheus.CategoryCacheHits.Inc()
		return c.values, nil
	}

	prometheus.CategoryCacheMisses.Inc()
	values, err := c.load()
	if err != nil {
		return nil, err
	}
	c.loaded = true
	c.values = values
	c.expiry = c.now().Add(c.ttl)
	return values, nil
}

// Invalidate drops the cached list. The next Get reloads from the store.
func (c *CategoryCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loaded = false
	c.values = nil
}
