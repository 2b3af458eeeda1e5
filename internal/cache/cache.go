// Package cache provides in-memory caching for extracted page text, cutting
// repeat fetches of the same source within a session.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"
)

// Entry holds one cached value with its lifetime.
type Entry struct {
	Key       string
	Value     string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// TTLCache is a size-bounded map with per-entry expiry. When full, the
// oldest entry by creation time is evicted.
type TTLCache struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	maxSize int
	ttl     time.Duration
}

// New creates a cache with the given size limit and TTL.
func New(maxSize int, ttl time.Duration) *TTLCache {
	if maxSize <= 0 {
		maxSize = 1000
	}
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &TTLCache{
		entries: make(map[string]*Entry),
		maxSize: maxSize,
		ttl:     ttl,
	}
}

// Get retrieves a value by key. Expired entries report a miss.
func (c *TTLCache) Get(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok {
		return "", false
	}
	if time.Now().After(entry.ExpiresAt) {
		return "", false
	}
	return entry.Value, true
}

// Set stores a value, evicting the oldest entry at capacity.
func (c *TTLCache) Set(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxSize {
		c.evictOldest()
	}

	now := time.Now()
	c.entries[key] = &Entry{
		Key:       key,
		Value:     value,
		CreatedAt: now,
		ExpiresAt: now.Add(c.ttl),
	}
}

// Delete removes an entry.
func (c *TTLCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Clear removes all entries.
func (c *TTLCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*Entry)
}

// Size returns the number of entries, expired ones included.
func (c *TTLCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *TTLCache) evictOldest() {
	var oldestKey string
	var oldestTime time.Time

	for key, entry := range c.entries {
		if oldestKey == "" || entry.CreatedAt.Before(oldestTime) {
			oldestKey = key
			oldestTime = entry.CreatedAt
		}
	}
	if oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}

// Key hashes arbitrary parts into a compact cache key.
func Key(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}
