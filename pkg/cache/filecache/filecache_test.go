package filecache

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openrace/raceview/pkg/cache"
)

type payload struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

func TestFileCache_RoundTrip(t *testing.T) {
	ctx := context.Background()
	c, err := New[payload](t.TempDir())
	require.NoError(t, err)

	_, err = c.Get(ctx, "missing")
	assert.ErrorIs(t, err, cache.ErrCacheMiss)

	want := &payload{Name: "monza", Value: 53}
	require.NoError(t, c.Set(ctx, "2024-monza", want))
	got, err := c.Get(ctx, "2024-monza")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	c.Invalidate(ctx, "2024-monza")
	_, err = c.Get(ctx, "2024-monza")
	assert.ErrorIs(t, err, cache.ErrCacheMiss)
}

func TestFileCache_Expiration(t *testing.T) {
	ctx := context.Background()
	c, err := New[payload](t.TempDir(),
		WithExpiration[payload](10*time.Millisecond))
	require.NoError(t, err)

	require.NoError(t, c.Set(ctx, "key", &payload{Name: "x"}))
	time.Sleep(20 * time.Millisecond)
	_, err = c.Get(ctx, "key")
	assert.ErrorIs(t, err, cache.ErrCacheMiss)
}

func TestFileCache_CorruptEntryCountsAsMiss(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := New[payload](dir)
	require.NoError(t, err)

	require.NoError(t,
		os.WriteFile(filepath.Join(dir, "bad.json"), []byte("not json"), 0o644))
	_, err = c.Get(ctx, "bad")
	assert.ErrorIs(t, err, cache.ErrCacheMiss)
}

func TestFileCache_KeySanitizing(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := New[payload](dir)
	require.NoError(t, err)

	require.NoError(t, c.Set(ctx, "2022/red bull ring", &payload{Name: "rbr"}))
	got, err := c.Get(ctx, "2022/red bull ring")
	require.NoError(t, err)
	assert.Equal(t, "rbr", got.Name)
	// no path separators escape the cache dir
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "2022_red_bull_ring.json", entries[0].Name())
}
