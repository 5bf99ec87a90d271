package search

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

const maxCacheEntries = 100

type cacheEntry struct {
	resp     *Response
	inserted time.Time
	expires  time.Time
}

// Cache is an in-memory TTL cache of normalized responses. Concurrent misses
// for the same key share one provider call.
type Cache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	group   singleflight.Group
	now     func() time.Time
}

func NewCache() *Cache {
	return &Cache{
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

func cacheKey(provider string, req Request) string {
	return strings.ToLower(fmt.Sprintf("%s:%s:%d:%s:%s:%s:%s",
		provider,
		strings.TrimSpace(req.Query),
		req.Count,
		orDefault(req.Freshness),
		orDefault(req.Country),
		orDefault(req.SearchLang),
		orDefault(req.UILang),
	))
}

func orDefault(value string) string {
	if value = strings.TrimSpace(value); value == "" {
		return "default"
	}
	return value
}

// Do returns the cached response for key, or calls fetch and stores a
// successful result for ttl. The bool result reports a cache hit.
//
// Concurrent misses share one fetch. The shared fetch runs on a context
// detached from any single caller's cancellation, and each caller stops
// waiting when its own ctx is done.
func (c *Cache) Do(ctx context.Context, key string, ttl time.Duration, fetch func(ctx context.Context) (*Response, error)) (*Response, bool, error) {
	if resp, ok := c.get(key); ok {
		hit := *resp
		hit.Cached = true
		return &hit, true, nil
	}
	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		resp, err := fetch(shared)
		if err != nil {
			return nil, err
		}
		c.set(key, resp, ttl)
		return resp, nil
	})
	select {
	case <-ctx.Done():
		return nil, false, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, false, res.Err
		}
		out := *res.Val.(*Response)
		return &out, false, nil
	}
}

// Len returns the number of live entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pruneLocked(c.now())
	return len(c.entries)
}

func (c *Cache) get(key string) (*Response, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if !c.now().Before(entry.expires) {
		delete(c.entries, key)
		return nil, false
	}
	return entry.resp, true
}

func (c *Cache) set(key string, resp *Response, ttl time.Duration) {
	if resp == nil || ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	c.pruneLocked(now)
	if _, exists := c.entries[key]; !exists && len(c.entries) >= maxCacheEntries {
		c.evictOldestLocked()
	}
	stored := *resp
	c.entries[key] = cacheEntry{resp: &stored, inserted: now, expires: now.Add(ttl)}
}

func (c *Cache) pruneLocked(now time.Time) {
	for key, entry := range c.entries {
		if !now.Before(entry.expires) {
			delete(c.entries, key)
		}
	}
}

func (c *Cache) evictOldestLocked() {
	oldestKey := ""
	var oldest time.Time
	for key, entry := range c.entries {
		if oldestKey == "" || entry.inserted.Before(oldest) {
			oldestKey = key
			oldest = entry.inserted
		}
	}
	if oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}
