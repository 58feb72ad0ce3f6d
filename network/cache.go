package network

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// defaultMaxAge applies to responses without an explicit lifetime.
const defaultMaxAge = 5 * time.Minute

// CacheEntry is a cached resource with its freshness information.
type CacheEntry struct {
	Resource *Resource
	MaxAge   time.Duration
	Expires  time.Time
	CachedAt time.Time

	hasMaxAge bool
}

// IsExpired reports whether the entry is stale.
func (e *CacheEntry) IsExpired() bool {
	if e.hasMaxAge {
		return time.Since(e.CachedAt) > e.MaxAge
	}
	if !e.Expires.IsZero() {
		return time.Now().After(e.Expires)
	}
	return time.Since(e.CachedAt) > defaultMaxAge
}

// Cache provides in-memory caching of fetched resources.
type Cache struct {
	entries map[string]*CacheEntry
	maxSize int
	mu      sync.RWMutex
}

// NewCache creates a new cache with the specified maximum number of entries.
func NewCache(maxSize int) *Cache {
	if maxSize <= 0 {
		maxSize = 100
	}
	return &Cache{
		entries: make(map[string]*CacheEntry),
		maxSize: maxSize,
	}
}

// Get returns the fresh entry stored for url.
func (c *Cache) Get(url string) (*CacheEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[url]
	if !ok || entry.IsExpired() {
		return nil, false
	}
	return entry, true
}

// Set stores res under url, honoring the Cache-Control and Expires
// headers. Responses marked no-store are not kept.
func (c *Cache) Set(url string, res *Resource, headers http.Header) {
	cacheControl := headers.Get("Cache-Control")
	entry := &CacheEntry{
		Resource: res,
		CachedAt: time.Now(),
	}
	for _, d := range strings.Split(cacheControl, ",") {
		d = strings.ToLower(strings.TrimSpace(d))
		switch {
		case d == "no-store":
			return
		case strings.HasPrefix(d, "max-age="):
			if seconds, err := strconv.Atoi(d[len("max-age="):]); err == nil && seconds >= 0 {
				entry.MaxAge = time.Duration(seconds) * time.Second
				entry.hasMaxAge = true
			}
		}
	}
	if !entry.hasMaxAge {
		if expires := headers.Get("Expires"); expires != "" {
			if t, err := http.ParseTime(expires); err == nil {
				entry.Expires = t
			}
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[url]; !ok && len(c.entries) >= c.maxSize {
		c.evictOldest()
	}
	c.entries[url] = entry
}

// Clear removes all entries from the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*CacheEntry)
}

// Size returns the number of entries in the cache.
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// evictOldest removes the oldest entry.
// Must be called with c.mu held.
func (c *Cache) evictOldest() {
	var oldestURL string
	var oldestTime time.Time
	for url, entry := range c.entries {
		if oldestURL == "" || entry.CachedAt.Before(oldestTime) {
			oldestURL = url
			oldestTime = entry.CachedAt
		}
	}
	if oldestURL != "" {
		delete(c.entries, oldestURL)
	}
}
