package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache is an in-process TTL cache
type MemoryCache struct {
	cache *gocache.Cache
}

// NewMemoryCache creates a memory cache with the given default TTL and
// expired-entry cleanup interval
func NewMemoryCache(defaultTTL, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{cache: gocache.New(defaultTTL, cleanupInterval)}
}

// Get retrieves a value
func (c *MemoryCache) Get(key string) ([]byte, bool) {
	if val, found := c.cache.Get(key); found {
		return val.([]byte), true
	}
	return nil, false
}

// Set stores a value; ttl 0 uses the cache default
func (c *MemoryCache) Set(key string, value []byte, ttl time.Duration) error {
	c.cache.Set(key, value, ttl)
	return nil
}

// Delete removes a value
func (c *MemoryCache) Delete(key string) error {
	c.cache.Delete(key)
	return nil
}

// Clear removes everything
func (c *MemoryCache) Clear() error {
	c.cache.Flush()
	return nil
}
