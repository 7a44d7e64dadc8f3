// Package cache provides the byte-oriented caches used to avoid repeated
// embedding computations for identical content.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is a TTL'd byte cache
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key builds a cache key from a namespace (e.g. "embed:text") and the
// content being cached. Content is hashed, never stored in the key.
func Key(namespace, content string) string {
	sum := sha256.Sum256([]byte(content))
	return "trustmem:v1:" + namespace + ":" + hex.EncodeToString(sum[:])
}
