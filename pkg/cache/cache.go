// Package cache is the key/value store behind sessions and the catalog
// cache. Redis is used when reachable; otherwise an in-process store keeps
// a single instance working.
//
//	if err := cache.Connect(); err != nil {
//	    logger.Warn("redis unavailable, using memory cache", "error", err)
//	}
//	cache.Set("catalog:products", products, time.Minute)
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/shashiranjanraj/storefront/pkg/metrics"
)

// Store is implemented by the redis and memory drivers. Values are stored as
// JSON, so Get always decodes into a fresh copy.
type Store interface {
	Get(ctx context.Context, key string, dest interface{}) bool
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	Driver() string
}

var (
	mu      sync.RWMutex
	current Store = NewMemory()
)

// Use replaces the active store.
func Use(s Store) {
	mu.Lock()
	current = s
	mu.Unlock()
}

// Default returns the active store.
func Default() Store {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Get decodes the value under key into dest and reports a hit.
func Get(key string, dest interface{}) bool {
	s := Default()
	hit := s.Get(context.Background(), key, dest)
	if hit {
		metrics.CacheHits.WithLabelValues(s.Driver()).Inc()
	} else {
		metrics.CacheMisses.WithLabelValues(s.Driver()).Inc()
	}
	return hit
}

// Set stores value under key for ttl. A zero ttl never expires.
func Set(key string, value interface{}, ttl time.Duration) error {
	return Default().Set(context.Background(), key, value, ttl)
}

// Del removes keys.
func Del(keys ...string) error {
	return Default().Del(context.Background(), keys...)
}

// Forget is an alias for Del.
func Forget(key string) error {
	return Del(key)
}
