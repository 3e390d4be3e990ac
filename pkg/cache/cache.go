// Package cache defines the cache handle injected into the session
// loading collaborator. The pipeline itself never touches a cache.
package cache

import (
	"context"
	"errors"
)

var ErrCacheMiss = errors.New("cache miss")

type Cache[K comparable, V any] interface {
	// Get returns the cached value or ErrCacheMiss.
	Get(ctx context.Context, key K) (*V, error)
	Set(ctx context.Context, key K, value *V) error
	Invalidate(ctx context.Context, key K)
}
