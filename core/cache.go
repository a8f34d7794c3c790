package core

import (
	"sync"
	"time"
)

// CacheConfig configures the in-memory user cache.
type CacheConfig struct {
	TTL     time.Duration
	MaxSize int
}

// InMemoryCache is a TTL-bounded map of users by ID. It softens the
// identity lookup the session verifier performs on every request.
type InMemoryCache struct {
	mu      sync.RWMutex
	entries map[string]*cachedEntry // key: user ID
	ttl     time.Duration
	maxSize int
}

type cachedEntry struct {
	user     *User
	cachedAt time.Time
}

// Ensure InMemoryCache implements Cache
var _ Cache = (*InMemoryCache)(nil)

func NewInMemoryCache(config CacheConfig) *InMemoryCache {
	if config.TTL == 0 {
		config.TTL = 5 * time.Minute
	}
	if config.MaxSize == 0 {
		config.MaxSize = 500
	}

	return &InMemoryCache{
		entries: make(map[string]*cachedEntry),
		ttl:     config.TTL,
		maxSize: config.MaxSize,
	}
}

func (c *InMemoryCache) Get(userID string) (*User, error) {
	c.mu.RLock()
	entry, exists := c.entries[userID]
	c.mu.RUnlock()

	if !exists {
		return nil, ErrCacheMiss
	}

	if time.Since(entry.cachedAt) > c.ttl {
		if err := c.Delete(userID); err != nil {
			return nil, err
		}
		return nil, ErrCacheMiss
	}

	return entry.user, nil
}

func (c *InMemoryCache) Set(userID string, u *User) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Simple eviction if full
	if len(c.entries) >= c.maxSize {
		for k := range c.entries {
			delete(c.entries, k)
			break
		}
	}

	c.entries[userID] = &cachedEntry{
		user:     u,
		cachedAt: time.Now(),
	}
	return nil
}

func (c *InMemoryCache) Delete(userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, userID)
	return nil
}

func (c *InMemoryCache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cachedEntry)
	return nil
}

func (c *InMemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
