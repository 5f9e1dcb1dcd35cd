package generator

import (
	"crypto/sha256"
	"encoding/hex"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
)

// Cache remembers rendered output by the hash of its input so unchanged
// files are not re-rendered in watch mode.
type Cache struct {
	lru    *lru.LRU[string, string]
	hits   atomic.Int64
	misses atomic.Int64
}

// NewCache creates a cache holding up to size entries for ttl (0 = no expiry).
func NewCache(size int, ttl time.Duration) *Cache {
	if size < 1 {
		size = 1
	}
	return &Cache{lru: lru.NewLRU[string, string](size, nil, ttl)}
}

// Get returns the cached output for the given module name and source.
func (c *Cache) Get(name, src string) (string, bool) {
	out, ok := c.lru.Get(cacheKey(name, src))
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return out, ok
}

// Add stores output for the given module name and source.
func (c *Cache) Add(name, src, out string) {
	c.lru.Add(cacheKey(name, src), out)
}

// Len returns the number of live entries.
func (c *Cache) Len() int { return c.lru.Len() }

// Hits returns the number of successful lookups.
func (c *Cache) Hits() int64 { return c.hits.Load() }

// Misses returns the number of failed lookups.
func (c *Cache) Misses() int64 { return c.misses.Load() }

func cacheKey(name, src string) string {
	h := sha256.New()
	h.Write([]byte(name))
	h.Write([]byte{0})
	h.Write([]byte(src))
	return hex.EncodeToString(h.Sum(nil))
}
