package inmemory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ArtemSukhotko/ai-astro-tarot/internal/ports/cache"
)

type cacheEntry struct {
	value     string
	expiresAt time.Time // нулевое значение = без TTL
}

func (e cacheEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// Cache in-memory реализация кэша, используется когда Redis не настроен
type Cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	now     func() time.Time
}

// NewCache создаёт новый in-memory кэш
func NewCache() *Cache {
	return &Cache{
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

func (c *Cache) Get(ctx context.Context, key string) (string, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || entry.expired(c.now()) {
		return "", fmt.Errorf("%w: %s", cache.ErrCacheMiss, key)
	}
	return entry.value, nil
}

func (c *Cache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = c.newEntry(value, ttl)
	return nil
}

func (c *Cache) SetNX(ctx context.Context, key string, value string, ttl time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.entries[key]; ok && !entry.expired(c.now()) {
		return false, nil
	}
	c.entries[key] = c.newEntry(value, ttl)
	return true, nil
}

func (c *Cache) Exists(ctx context.Context, key string) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[key]
	return ok && !entry.expired(c.now()), nil
}

// Close очищает кэш
func (c *Cache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
	return nil
}

func (c *Cache) newEntry(value string, ttl time.Duration) cacheEntry {
	entry := cacheEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = c.now().Add(ttl)
	}
	return entry
}
