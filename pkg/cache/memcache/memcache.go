// Package memcache is an in-memory TTL cache, mainly used in tests and
// as fallback when no cache directory is configured.
package memcache

import (
	"context"
	"sync"
	"time"

	"github.com/openrace/raceview/log"
	"github.com/openrace/raceview/pkg/cache"
)

type (
	Option[K comparable, V any] func(*memCache[K, V])

	item[V any] struct {
		data    *V
		expires *time.Time
	}

	memCache[K comparable, V any] struct {
		mutex      sync.Mutex
		items      map[K]item[V]
		expiration time.Duration
		l          *log.Logger
	}
)

func WithExpiration[K comparable, V any](expiration time.Duration) Option[K, V] {
	return func(c *memCache[K, V]) {
		c.expiration = expiration
	}
}

func WithLogger[K comparable, V any](arg *log.Logger) Option[K, V] {
	return func(c *memCache[K, V]) {
		c.l = arg
	}
}

func New[K comparable, V any](opts ...Option[K, V]) cache.Cache[K, V] {
	c := &memCache[K, V]{
		items:      make(map[K]item[V]),
		expiration: 0, // no expiration
		l:          log.Default().Named("cache.mem"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *memCache[K, V]) Get(ctx context.Context, key K) (*V, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	entry, ok := c.items[key]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	if entry.expires != nil && entry.expires.Before(time.Now()) {
		delete(c.items, key)
		c.l.Debug("entry expired", log.Any("key", key))
		return nil, cache.ErrCacheMiss
	}
	return entry.data, nil
}

func (c *memCache[K, V]) Set(ctx context.Context, key K, value *V) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	entry := item[V]{data: value}
	if c.expiration > 0 {
		expires := time.Now().Add(c.expiration)
		entry.expires = &expires
	}
	c.items[key] = entry
	return nil
}

func (c *memCache[K, V]) Invalidate(ctx context.Context, key K) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	delete(c.items, key)
}
