// Package filecache persists cache entries as JSON files below an
// explicitly acquired directory. No global state: callers own the handle
// and inject it where caching is wanted.
package filecache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/openrace/raceview/log"
	"github.com/openrace/raceview/pkg/cache"
)

type (
	Option[V any] func(*fileCache[V])

	envelope[V any] struct {
		StoredAt time.Time `json:"storedAt"`
		Data     *V        `json:"data"`
	}

	fileCache[V any] struct {
		dir        string
		expiration time.Duration
		l          *log.Logger
	}
)

func WithExpiration[V any](expiration time.Duration) Option[V] {
	return func(c *fileCache[V]) {
		c.expiration = expiration
	}
}

func WithLogger[V any](arg *log.Logger) Option[V] {
	return func(c *fileCache[V]) {
		c.l = arg
	}
}

// New acquires a file cache handle rooted at dir, creating it if needed.
func New[V any](dir string, opts ...Option[V]) (cache.Cache[string, V], error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("could not create cache dir %s: %w", dir, err)
	}
	c := &fileCache[V]{
		dir:        dir,
		expiration: 0, // entries never expire
		l:          log.Default().Named("cache.file"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *fileCache[V]) Get(ctx context.Context, key string) (*V, error) {
	raw, err := os.ReadFile(c.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, cache.ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}
	var entry envelope[V]
	if err := json.Unmarshal(raw, &entry); err != nil {
		// unreadable entries count as misses so the caller refetches
		c.l.Warn("discarding corrupt cache entry",
			log.String("key", key), log.ErrorField(err))
		c.Invalidate(ctx, key)
		return nil, cache.ErrCacheMiss
	}
	if c.expiration > 0 && time.Since(entry.StoredAt) > c.expiration {
		c.l.Debug("entry expired", log.String("key", key))
		c.Invalidate(ctx, key)
		return nil, cache.ErrCacheMiss
	}
	return entry.Data, nil
}

func (c *fileCache[V]) Set(ctx context.Context, key string, value *V) error {
	raw, err := json.Marshal(envelope[V]{StoredAt: time.Now(), Data: value})
	if err != nil {
		return err
	}
	tmp := c.path(key) + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, c.path(key))
}

func (c *fileCache[V]) Invalidate(ctx context.Context, key string) {
	if err := os.Remove(c.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		c.l.Warn("could not remove cache entry",
			log.String("key", key), log.ErrorField(err))
	}
}

func (c *fileCache[V]) path(key string) string {
	return filepath.Join(c.dir, sanitize(key)+".json")
}

// sanitize keeps keys usable as file names.
func sanitize(key string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_' || r == '.':
			return r
		default:
			return '_'
		}
	}, key)
}
