package lookstore

import (
	"sync"
	"time"

	"stylist/internal/domain"
)

// DefaultCacheTTL bounds how long a finished look answers identical requests.
const DefaultCacheTTL = 15 * time.Minute

// ResultCache deduplicates identical look requests for a bounded window.
// Implementations must never return an entry past its expiry.
type ResultCache interface {
	Get(fingerprint string) (*domain.LookResult, bool)
	Set(fingerprint string, result *domain.LookResult, ttl time.Duration)
}

type cacheEntry struct {
	result    *domain.LookResult
	expiresAt time.Time
}

// MemoryCache is the default in-process ResultCache. Expired entries are
// purged lazily on read.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	now     func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]cacheEntry), now: time.Now}
}

func (c *MemoryCache) Get(fingerprint string) (*domain.LookResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[fingerprint]
	if !ok {
		return nil, false
	}
	if c.now().After(entry.expiresAt) {
		delete(c.entries, fingerprint)
		return nil, false
	}
	return entry.result, true
}

func (c *MemoryCache) Set(fingerprint string, result *domain.LookResult, ttl time.Duration) {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[fingerprint] = cacheEntry{result: result, expiresAt: c.now().Add(ttl)}
}

var _ ResultCache = (*MemoryCache)(nil)
