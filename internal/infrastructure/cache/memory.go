package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/pricelens/backend/internal/domain"
	"go.uber.org/zap"
)

// DefaultMaxEntries bounds the cache when no limit is configured
const DefaultMaxEntries = 1000

// cleanupInterval is how often expired entries are swept
const cleanupInterval = time.Minute

// cacheItem represents a single item in the cache with expiration
type cacheItem struct {
	Value      interface{}
	Expiration time.Time
}

// Options configures a MemoryCache
type Options struct {
	MaxEntries int
}

// MemoryCache is a thread-safe, size-bounded in-memory cache with TTL support.
// Values are stored as their decoded JSON form so callers see the same shape
// a networked cache would return.
type MemoryCache struct {
	data       map[string]cacheItem
	mutex      sync.RWMutex
	maxEntries int
	stop       chan struct{}
	stopOnce   sync.Once
}

// NewMemoryCache creates a new in-memory cache and starts its janitor
func NewMemoryCache(opts Options) *MemoryCache {
	maxEntries := opts.MaxEntries
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}

	cache := &MemoryCache{
		data:       make(map[string]cacheItem),
		maxEntries: maxEntries,
		stop:       make(chan struct{}),
	}

	go cache.cleanupExpired()

	return cache
}

// Get retrieves a value from the cache
func (c *MemoryCache) Get(ctx context.Context, key string) (interface{}, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	item, exists := c.data[key]
	if !exists || time.Now().After(item.Expiration) {
		return nil, domain.ErrCacheMiss
	}

	return item.Value, nil
}

// Set stores a value in the cache with TTL, evicting the entry closest to
// expiry when the cache is full
func (c *MemoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	jsonData, err := json.Marshal(value)
	if err != nil {
		return err
	}

	var storedValue interface{}
	if err := json.Unmarshal(jsonData, &storedValue); err != nil {
		return err
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	if _, exists := c.data[key]; !exists && len(c.data) >= c.maxEntries {
		c.evictLocked()
	}

	c.data[key] = cacheItem{
		Value:      storedValue,
		Expiration: time.Now().Add(ttl),
	}

	return nil
}

// Delete removes a value from the cache
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.data, key)
	return nil
}

// Exists checks if a key exists in the cache and is not expired
func (c *MemoryCache) Exists(ctx context.Context, key string) (bool, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	item, exists := c.data[key]
	if !exists {
		return false, nil
	}

	return !time.Now().After(item.Expiration), nil
}

// Size returns the current number of items in the cache, expired or not
func (c *MemoryCache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.data)
}

// Clear removes all items from the cache
func (c *MemoryCache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.data = make(map[string]cacheItem)
}

// Close stops the janitor goroutine
func (c *MemoryCache) Close() {
	c.stopOnce.Do(func() { close(c.stop) })
}

// evictLocked drops expired entries, or the entry expiring soonest when none
// have expired. Caller must hold the write lock.
func (c *MemoryCache) evictLocked() {
	now := time.Now()
	removed := c.removeExpiredLocked(now)
	if removed > 0 {
		return
	}

	var victim string
	var earliest time.Time
	for key, item := range c.data {
		if victim == "" || item.Expiration.Before(earliest) {
			victim = key
			earliest = item.Expiration
		}
	}
	if victim != "" {
		delete(c.data, victim)
		zap.L().Debug("cache full, evicted entry", zap.String("key", victim))
	}
}

func (c *MemoryCache) removeExpiredLocked(now time.Time) int {
	removed := 0
	for key, item := range c.data {
		if now.After(item.Expiration) {
			delete(c.data, key)
			removed++
		}
	}
	return removed
}

// cleanupExpired removes expired entries periodically until Close is called
func (c *MemoryCache) cleanupExpired() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.mutex.Lock()
			removed := c.removeExpiredLocked(time.Now())
			c.mutex.Unlock()
			if removed > 0 {
				zap.L().Debug("cache cleanup", zap.Int("removed", removed))
			}
		}
	}
}
