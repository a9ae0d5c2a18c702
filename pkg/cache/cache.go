package cache

import (
	"context"
	"sync"
	"time"
)

// Store is a small key/value cache with per-entry expiration. It holds
// generated day summaries so that every chat turn does not re-read yesterday's
// log from the database.
type Store interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration)
	Delete(ctx context.Context, key string)
}

type item struct {
	value      string
	expiration int64
}

func (i item) expired() bool {
	if i.expiration == 0 {
		return false
	}
	return time.Now().UnixNano() > i.expiration
}

// Memory is a thread-safe in-memory Store with background cleanup.
type Memory struct {
	mu              sync.RWMutex
	items           map[string]item
	cleanupInterval time.Duration
}

// NewMemory creates an in-memory cache. A cleanup goroutine purges expired
// entries every cleanupInterval; zero disables the janitor.
func NewMemory(cleanupInterval time.Duration) *Memory {
	c := &Memory{
		items:           make(map[string]item),
		cleanupInterval: cleanupInterval,
	}
	if cleanupInterval > 0 {
		go c.janitor()
	}
	return c
}

func (c *Memory) Get(_ context.Context, key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	it, found := c.items[key]
	if !found || it.expired() {
		return "", false
	}
	return it.value, true
}

func (c *Memory) Set(_ context.Context, key, value string, ttl time.Duration) {
	var expiration int64
	if ttl > 0 {
		expiration = time.Now().Add(ttl).UnixNano()
	}

	c.mu.Lock()
	c.items[key] = item{value: value, expiration: expiration}
	c.mu.Unlock()
}

func (c *Memory) Delete(_ context.Context, key string) {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
}

func (c *Memory) janitor() {
	ticker := time.NewTicker(c.cleanupInterval)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		for key, it := range c.items {
			if it.expired() {
				delete(c.items, key)
			}
		}
		c.mu.Unlock()
	}
}
