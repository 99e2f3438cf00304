package cache

import (
	"sync"
	"time"

	"trip-distance-service/internal/domain"
)

// TTLCache is a thread-safe in-memory cache mapping normalized location
// text to resolved coordinates. Entries expire after a fixed TTL and live
// only for the process lifetime; resolved coordinates are never persisted.
// Keys are expected to be consistent (e.g., already normalized) by the
// caller.
type TTLCache struct {
	mu    sync.RWMutex
	items map[string]item
	ttl   time.Duration
}

type item struct {
	coord  domain.Coordinate
	expiry time.Time
}

func NewTTLCache(ttl time.Duration) *TTLCache {
	if ttl <= 0 {
		ttl = time.Hour
	}

	c := &TTLCache{
		items: make(map[string]item),
		ttl:   ttl,
	}
	go c.cleanup()
	return c
}

func (c *TTLCache) Get(key string) (domain.Coordinate, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	it, ok := c.items[key]
	if !ok || time.Now().After(it.expiry) {
		return domain.Coordinate{}, false
	}
	return it.coord, true
}

func (c *TTLCache) Set(key string, coord domain.Coordinate) {
	if key == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = item{
		coord:  coord,
		expiry: time.Now().Add(c.ttl),
	}
}

// sweepInterval keeps sweep frequency proportional to the TTL while
// bounding how often the sweep takes the write lock.
func sweepInterval(ttl time.Duration) time.Duration {
	switch {
	case ttl < time.Minute:
		return time.Minute
	case ttl > time.Hour:
		return time.Hour
	default:
		return ttl
	}
}

// cleanup sweeps expired entries periodically so the cache stays bounded by
// the working set rather than the process lifetime. Expired entries are
// already invisible to Get; the sweep only reclaims their memory.
func (c *TTLCache) cleanup() {
	ticker := time.NewTicker(sweepInterval(c.ttl))
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		now := time.Now()
		for k, v := range c.items {
			if now.After(v.expiry) {
				delete(c.items, k)
			}
		}
		c.mu.Unlock()
	}
}
