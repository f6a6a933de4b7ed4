// Package cache provides an in-memory TTL cache for query results. SPARQL
// round-trips against Fuseki dominate service latency; repeated occupation
// and skill lookups are served from here instead.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Config holds cache configuration.
type Config struct {
	// DefaultTTL is the lifetime of entries stored with Set.
	DefaultTTL time.Duration
	// CleanupInterval is how often expired entries are swept.
	CleanupInterval time.Duration
	// MaxItems caps the cache size; 0 means unlimited. When the cap is
	// reached new entries evict the soonest-to-expire entry.
	MaxItems int
	// OnEviction, when set, is called with each evicted key.
	OnEviction func(key string)
}

type item struct {
	value     any
	expiresAt time.Time
}

// Cache is a thread-safe in-memory cache with per-entry TTL and periodic
// cleanup.
type Cache struct {
	config Config
	data   sync.Map
	size   atomic.Int64
	done   chan struct{}
	once   sync.Once
}

// New creates a cache and starts its cleanup loop.
func New(config Config) *Cache {
	if config.DefaultTTL <= 0 {
		config.DefaultTTL = 5 * time.Minute
	}
	if config.CleanupInterval <= 0 {
		config.CleanupInterval = time.Minute
	}

	c := &Cache{
		config: config,
		done:   make(chan struct{}),
	}
	go c.cleanupLoop()
	return c
}

// Get returns the value for key if present and not expired.
func (c *Cache) Get(_ context.Context, key string) (any, bool) {
	v, ok := c.data.Load(key)
	if !ok {
		return nil, false
	}
	it := v.(item)
	if time.Now().After(it.expiresAt) {
		c.remove(key)
		return nil, false
	}
	return it.value, true
}

// Set stores a value with the default TTL.
func (c *Cache) Set(ctx context.Context, key string, value any) {
	c.SetWithTTL(ctx, key, value, c.config.DefaultTTL)
}

// SetWithTTL stores a value with an explicit TTL.
func (c *Cache) SetWithTTL(_ context.Context, key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.config.DefaultTTL
	}
	if c.config.MaxItems > 0 && int(c.size.Load()) >= c.config.MaxItems {
		if _, exists := c.data.Load(key); !exists {
			c.evictOne()
		}
	}
	if _, loaded := c.data.Swap(key, item{value: value, expiresAt: time.Now().Add(ttl)}); !loaded {
		c.size.Add(1)
	}
}

// Delete removes a key.
func (c *Cache) Delete(_ context.Context, key string) {
	c.remove(key)
}

// Clear removes every entry.
func (c *Cache) Clear(_ context.Context) {
	c.data.Range(func(key, _ any) bool {
		c.remove(key.(string))
		return true
	})
}

// Size returns the current number of entries.
func (c *Cache) Size() int64 {
	return c.size.Load()
}

// Close stops the cleanup loop.
func (c *Cache) Close() error {
	c.once.Do(func() { close(c.done) })
	return nil
}

func (c *Cache) remove(key string) {
	if _, loaded := c.data.LoadAndDelete(key); loaded {
		c.size.Add(-1)
		if c.config.OnEviction != nil {
			c.config.OnEviction(key)
		}
	}
}

// evictOne drops the entry closest to expiry.
func (c *Cache) evictOne() {
	var victim string
	var soonest time.Time
	c.data.Range(func(key, value any) bool {
		it := value.(item)
		if victim == "" || it.expiresAt.Before(soonest) {
			victim = key.(string)
			soonest = it.expiresAt
		}
		return true
	})
	if victim != "" {
		c.remove(victim)
	}
}

func (c *Cache) cleanupLoop() {
	ticker := time.NewTicker(c.config.CleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			now := time.Now()
			c.data.Range(func(key, value any) bool {
				if now.After(value.(item).expiresAt) {
					c.remove(key.(string))
				}
				return true
			})
		}
	}
}

// QueryKey builds a stable short cache key from query components.
func QueryKey(dataset, operation string, args ...string) string {
	parts := append([]string{dataset, operation}, args...)
	for i, p := range parts {
		parts[i] = strings.ToLower(strings.TrimSpace(p))
	}
	h := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return "q:" + hex.EncodeToString(h[:])[:12]
}
