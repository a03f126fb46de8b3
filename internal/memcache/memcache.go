// Package memcache is the process-wide ephemeral listing cache. Entries are
// serialized listings keyed by a short hash of locale + request parameters,
// so distinct requests cannot collide; a master key index makes clear-all
// able to enumerate every entry. Nothing here outlives the process.
package memcache

import (
	"encoding/hex"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/crypto/blake2s"
)

const (
	// DefaultSize bounds the number of cached listings.
	DefaultSize = 256
	// DefaultTTL keeps listings for the length of a browsing session.
	DefaultTTL = 30 * time.Minute

	keyHashLen = 10 // hex digits, as the cache key hash has always been
)

// Cache is a bounded, expiring listing cache. Safe for concurrent readers;
// callers serialize writes for the same key per process (the driver is
// single-threaded per request, so this holds by construction).
type Cache struct {
	mu   sync.Mutex
	lru  *expirable.LRU[string, []byte]
	keys map[string]struct{}
}

// New returns a cache holding up to size entries for ttl. Zero values pick
// the defaults.
func New(size int, ttl time.Duration) *Cache {
	if size <= 0 {
		size = DefaultSize
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := &Cache{keys: make(map[string]struct{})}
	c.lru = expirable.NewLRU[string, []byte](size, func(key string, _ []byte) {
		c.mu.Lock()
		delete(c.keys, key)
		c.mu.Unlock()
	}, ttl)
	return c
}

// Key derives the cache key for a request: a short BLAKE2s hash of the
// locale-prefixed parameter string.
func Key(locale, params string) string {
	sum := blake2s.Sum256([]byte(locale + params))
	return hex.EncodeToString(sum[:])[:keyHashLen]
}

// Put stores value under key and records the key in the master index.
func (c *Cache) Put(key string, value []byte) {
	c.mu.Lock()
	c.keys[key] = struct{}{}
	c.mu.Unlock()
	c.lru.Add(key, value)
}

// Get returns the value for key, or false when absent or expired.
func (c *Cache) Get(key string) ([]byte, bool) {
	return c.lru.Get(key)
}

// ClearAll evicts every entry named by the master index.
func (c *Cache) ClearAll() {
	c.mu.Lock()
	keys := make([]string, 0, len(c.keys))
	for k := range c.keys {
		keys = append(keys, k)
	}
	c.mu.Unlock()
	for _, k := range keys {
		c.lru.Remove(k)
	}
}

// Len reports the number of live entries.
func (c *Cache) Len() int {
	return c.lru.Len()
}
