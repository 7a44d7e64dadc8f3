package cache

import "time"

// LayeredCache reads through memory into disk, promoting disk hits
type LayeredCache struct {
	memory Cache
	disk   Cache
}

// NewLayeredCache combines a memory cache with a disk cache
func NewLayeredCache(memoryTTL time.Duration, diskDir string, diskTTL time.Duration) *LayeredCache {
	return &LayeredCache{
		memory: NewMemoryCache(memoryTTL, 10*time.Minute),
		disk:   NewDiskCache(diskDir, diskTTL),
	}
}

// Get checks memory first, then disk; disk hits are promoted to memory
func (c *LayeredCache) Get(key string) ([]byte, bool) {
	if val, found := c.memory.Get(key); found {
		return val, true
	}
	if val, found := c.disk.Get(key); found {
		_ = c.memory.Set(key, val, 0)
		return val, true
	}
	return nil, false
}

// Set writes to both layers
func (c *LayeredCache) Set(key string, value []byte, ttl time.Duration) error {
	if err := c.memory.Set(key, value, ttl); err != nil {
		return err
	}
	return c.disk.Set(key, value, ttl)
}

// Delete removes the key from both layers
func (c *LayeredCache) Delete(key string) error {
	_ = c.memory.Delete(key)
	_ = c.disk.Delete(key)
	return nil
}

// Clear empties both layers
func (c *LayeredCache) Clear() error {
	_ = c.memory.Clear()
	return c.disk.Clear()
}
