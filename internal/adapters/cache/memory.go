package cache

import (
	"sync"
	"time"

	"reposter/internal/domain"
)

// MemoryCache is an in-memory preview cache with TTL support.
type MemoryCache struct {
	previews sync.Map
	ttl      time.Duration
}

// cacheEntry holds a cached preview with expiration metadata.
type cacheEntry struct {
	preview   *domain.Preview
	expiresAt time.Time
	fetchedAt time.Time
}

// NewMemoryCache creates a new in-memory cache with the specified TTL.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	cache := &MemoryCache{ttl: ttl}
	go cache.cleanup()
	return cache
}

// Get retrieves a preview from the cache.
// Returns the preview and true if found and not expired, otherwise nil and false.
func (c *MemoryCache) Get(shortcode string) (*domain.Preview, bool) {
	value, ok := c.previews.Load(shortcode)
	if !ok {
		return nil, false
	}

	entry := value.(*cacheEntry)
	if time.Now().After(entry.expiresAt) {
		c.previews.Delete(shortcode)
		return nil, false
	}

	return entry.preview, true
}

// Set stores a preview in the cache with the configured TTL.
func (c *MemoryCache) Set(shortcode string, preview *domain.Preview) {
	now := time.Now()
	c.previews.Store(shortcode, &cacheEntry{
		preview:   preview,
		expiresAt: now.Add(c.ttl),
		fetchedAt: now,
	})
}

// cleanup periodically removes expired entries from the cache.
func (c *MemoryCache) cleanup() {
	ticker := time.NewTicker(1 * time.Minute)
	for range ticker.C {
		now := time.Now()
		c.previews.Range(func(key, value interface{}) bool {
			entry := value.(*cacheEntry)
			if now.After(entry.expiresAt) {
				c.previews.Delete(key)
			}
			return true
		})
	}
}
