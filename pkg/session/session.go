// Package session loads the per-lap and results tables of one race
// session from the timing provider. Loading is the only blocking part of
// the system; it happens once per session and goes through an injected
// cache handle.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openrace/raceview/log"
	"github.com/openrace/raceview/pkg/cache"
	"github.com/openrace/raceview/pkg/model"
)

type (
	// Selector identifies a race session. Both parts come from closed
	// enumerations (model.Seasons, model.Venues).
	Selector struct {
		Season    int
		GrandPrix string
	}

	// Source fetches session data from the timing provider.
	Source interface {
		Fetch(ctx context.Context, sel Selector) (*model.SessionData, error)
	}

	Option func(l *Loader)

	// Loader fetches through the cache: a session already cached is never
	// fetched again.
	Loader struct {
		source Source
		cache  cache.Cache[string, model.SessionData]
		l      *log.Logger
	}
)

func (s Selector) Validate() error {
	if !model.ValidSeason(s.Season) {
		return fmt.Errorf("season %d out of range %d-%d",
			s.Season, model.MinSeason, model.MaxSeason)
	}
	if !model.ValidVenue(s.GrandPrix) {
		return fmt.Errorf("unknown grand prix %q", s.GrandPrix)
	}
	return nil
}

// Key is the cache key of the session.
func (s Selector) Key() string {
	return fmt.Sprintf("%d-%s", s.Season,
		strings.ReplaceAll(strings.ToLower(s.GrandPrix), " ", "-"))
}

func (s Selector) String() string {
	return fmt.Sprintf("%s %d", s.GrandPrix, s.Season)
}

func WithCache(arg cache.Cache[string, model.SessionData]) Option {
	return func(l *Loader) {
		l.cache = arg
	}
}

func WithLogger(arg *log.Logger) Option {
	return func(l *Loader) {
		l.l = arg
	}
}

func NewLoader(source Source, opts ...Option) *Loader {
	l := &Loader{
		source: source,
		l:      log.Default().Named("session"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load returns the session data for sel, fetching it from the source on a
// cache miss. The returned data is shared and must be treated as
// read-only by callers.
func (l *Loader) Load(ctx context.Context, sel Selector) (*model.SessionData, error) {
	if err := sel.Validate(); err != nil {
		return nil, err
	}
	if l.cache != nil {
		data, err := l.cache.Get(ctx, sel.Key())
		switch {
		case err == nil:
			l.l.Debug("session cache hit", log.String("key", sel.Key()))
			return data, nil
		case !errors.Is(err, cache.ErrCacheMiss):
			l.l.Warn("session cache read failed",
				log.String("key", sel.Key()), log.ErrorField(err))
		}
	}
	l.l.Info("fetching session", log.String("session", sel.String()))
	data, err := l.source.Fetch(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("could not fetch session %s: %w", sel, err)
	}
	if l.cache != nil {
		if err := l.cache.Set(ctx, sel.Key(), data); err != nil {
			l.l.Warn("session cache write failed",
				log.String("key", sel.Key()), log.ErrorField(err))
		}
	}
	return data, nil
}
