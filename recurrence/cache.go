package recurrence

import (
	"crypto/sha256"
	"fmt"
	"slices"
	"strconv"
	"sync"
	"time"
)

// CacheEntry represents a cached query result
type CacheEntry struct {
	Result     any // bool for Includes, mo.Option[time.Time] for NextDate
	ExpiresAt  time.Time
	AccessedAt time.Time
}

// QueryCache memoises scheduler query results. Rules are immutable once a
// scheduler is built, so entries only go stale through TTL expiry.
type QueryCache struct {
	entries    map[string]*CacheEntry
	mutex      sync.RWMutex
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

// CacheConfig holds configuration for the query cache
type CacheConfig struct {
	TTL        time.Duration // How long entries stay valid
	MaxEntries int           // Maximum number of entries before eviction
}

// DefaultCacheConfig provides sensible defaults for query caching
var DefaultCacheConfig = CacheConfig{
	TTL:        15 * time.Minute,
	MaxEntries: 1000,
}

// NewQueryCache creates a new query cache with the given configuration
func NewQueryCache(config CacheConfig) *QueryCache {
	if config.TTL <= 0 {
		config.TTL = DefaultCacheConfig.TTL
	}
	if config.MaxEntries <= 0 {
		config.MaxEntries = DefaultCacheConfig.MaxEntries
	}
	return &QueryCache{
		entries:    make(map[string]*CacheEntry),
		ttl:        config.TTL,
		maxEntries: config.MaxEntries,
		now:        time.Now,
	}
}

// queryKey creates a unique key for a query and its arguments
func queryKey(operation string, date, start time.Time, exact bool) string {
	hasher := sha256.New()
	hasher.Write([]byte(operation))
	hasher.Write([]byte(date.Format(time.RFC3339Nano)))
	hasher.Write([]byte(start.Format(time.RFC3339Nano)))
	hasher.Write([]byte(strconv.FormatBool(exact)))
	return fmt.Sprintf("%x", hasher.Sum(nil))
}

// Get retrieves a cached result if it exists and hasn't expired
func (c *QueryCache) Get(key string) (any, bool) {
	c.mutex.RLock()
	entry, exists := c.entries[key]
	c.mutex.RUnlock()

	if !exists {
		return nil, false
	}

	now := c.now()
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if now.After(entry.ExpiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	entry.AccessedAt = now
	return entry.Result, true
}

// Set stores a result in the cache
func (c *QueryCache) Set(key string, result any) {
	now := c.now()
	entry := &CacheEntry{
		Result:     result,
		ExpiresAt:  now.Add(c.ttl),
		AccessedAt: now,
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries[key] = entry
	if len(c.entries) > c.maxEntries {
		c.cleanup(now)
	}
}

// cleanup removes expired entries, then the least recently accessed ones
// until the cache is within its limit. Callers hold the write lock.
func (c *QueryCache) cleanup(now time.Time) {
	for key, entry := range c.entries {
		if now.After(entry.ExpiresAt) {
			delete(c.entries, key)
		}
	}

	if len(c.entries) <= c.maxEntries {
		return
	}

	keys := make([]string, 0, len(c.entries))
	for key := range c.entries {
		keys = append(keys, key)
	}
	slices.SortFunc(keys, func(a, b string) int {
		return c.entries[a].AccessedAt.Compare(c.entries[b].AccessedAt)
	})
	for _, key := range keys[:len(c.entries)-c.maxEntries] {
		delete(c.entries, key)
	}
}

// Clear drops all entries
func (c *QueryCache) Clear() {
	c.mutex.Lock()
	c.entries = make(map[string]*CacheEntry)
	c.mutex.Unlock()
}

// Stats returns cache statistics
func (c *QueryCache) Stats() CacheStats {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	expired := 0
	now := c.now()
	for _, entry := range c.entries {
		if now.After(entry.ExpiresAt) {
			expired++
		}
	}

	return CacheStats{
		TotalEntries:   len(c.entries),
		ExpiredEntries: expired,
		ActiveEntries:  len(c.entries) - expired,
	}
}

// CacheStats provides information about cache contents
type CacheStats struct {
	TotalEntries   int
	ExpiredEntries int
	ActiveEntries  int
}
