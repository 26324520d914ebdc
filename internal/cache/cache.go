// Package cache stores search provider responses so repeated
// evaluations do not re-issue identical queries.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is the storage interface shared by the memory, disk, and
// layered implementations
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a stable cache key from an arbitrary identifier (usually
// a search query)
func Key(id string) string {
	hash := sha256.Sum256([]byte(id))
	return "ideagauge:v1:" + hex.EncodeToString(hash[:])
}
