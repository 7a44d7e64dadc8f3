package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DiskCache persists cache entries across runs. Embedding calls are paid
// API calls, so surviving a restart matters more here than lookup speed.
type DiskCache struct {
	dir string
	ttl time.Duration
}

// NewDiskCache creates a disk cache rooted at dir
func NewDiskCache(dir string, ttl time.Duration) *DiskCache {
	return &DiskCache{dir: dir, ttl: ttl}
}

type diskEntry struct {
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Get retrieves a value, removing it when expired
func (c *DiskCache) Get(key string) ([]byte, bool) {
	data, err := os.ReadFile(c.path(key))
	if err != nil {
		return nil, false
	}

	var entry diskEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		_ = os.Remove(c.path(key))
		return nil, false
	}
	if time.Now().After(entry.ExpiresAt) {
		_ = os.Remove(c.path(key))
		return nil, false
	}
	return entry.Data, true
}

// Set stores a value; ttl 0 uses the cache default
func (c *DiskCache) Set(key string, value []byte, ttl time.Duration) error {
	if ttl == 0 {
		ttl = c.ttl
	}

	data, err := json.Marshal(diskEntry{Data: value, ExpiresAt: time.Now().Add(ttl)})
	if err != nil {
		return fmt.Errorf("marshal cache entry: %w", err)
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	if err := os.WriteFile(c.path(key), data, 0o644); err != nil {
		return fmt.Errorf("write cache file: %w", err)
	}
	return nil
}

// Delete removes a value
func (c *DiskCache) Delete(key string) error {
	return os.Remove(c.path(key))
}

// Clear removes the whole cache directory
func (c *DiskCache) Clear() error {
	return os.RemoveAll(c.dir)
}

func (c *DiskCache) path(key string) string {
	return filepath.Join(c.dir, key+".cache")
}
