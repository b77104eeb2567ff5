package linkboard

import (
	"context"
	"sync"
	"time"

	"github.com/eringen/linkboard/manifest"
)

// FetchFunc retrieves the current manifest. client.Fetcher.Fetch satisfies it.
type FetchFunc func(ctx context.Context) (manifest.Manifest, error)

// ManifestCache sits between the widget handler and the manifest fetch. A
// TTL of zero disables caching entirely: every Get performs one upstream
// read, which is the widget's documented per-mount behavior. A positive TTL
// amortizes the fetch across requests; the write lock also collapses
// concurrent reloads into a single upstream read.
type ManifestCache struct {
	mu      sync.RWMutex
	m       manifest.Manifest
	fetched time.Time
	lastErr error
	ttl     time.Duration
	fetch   FetchFunc
}

// NewManifestCache creates a ManifestCache in front of fetch.
func NewManifestCache(fetch FetchFunc, ttl time.Duration) *ManifestCache {
	return &ManifestCache{fetch: fetch, ttl: ttl}
}

func (c *ManifestCache) valid() bool {
	return c.m != nil && c.ttl > 0 && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next Get reads the store fresh.
func (c *ManifestCache) Invalidate() {
	c.mu.Lock()
	c.m = nil
	c.mu.Unlock()
}

// Get returns the current manifest, reading upstream when the cached copy
// is missing or stale. A failed read returns the error; the caller renders
// the empty list, matching the widget's show-nothing failure mode.
func (c *ManifestCache) Get(ctx context.Context) (manifest.Manifest, error) {
	c.mu.RLock()
	if c.valid() {
		m := c.m
		c.mu.RUnlock()
		return m, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid() {
		return c.m, nil
	}

	m, err := c.fetch(ctx)
	if err != nil {
		c.lastErr = err
		return nil, err
	}
	c.m = m
	c.fetched = time.Now()
	c.lastErr = nil
	return m, nil
}

// Stats reports the time of the last successful read and the most recent
// fetch error (empty when the last read succeeded).
func (c *ManifestCache) Stats() (fetched time.Time, lastErr string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.lastErr != nil {
		lastErr = c.lastErr.Error()
	}
	return c.fetched, lastErr
}
