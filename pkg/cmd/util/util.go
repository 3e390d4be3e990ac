// Package util holds the wiring shared by the CLI commands.
package util

import (
	"os"
	"time"

	"github.com/openrace/raceview/log"
	"github.com/openrace/raceview/pkg/cache"
	"github.com/openrace/raceview/pkg/cache/filecache"
	"github.com/openrace/raceview/pkg/cache/memcache"
	"github.com/openrace/raceview/pkg/config"
	"github.com/openrace/raceview/pkg/model"
	"github.com/openrace/raceview/pkg/session"
	"github.com/openrace/raceview/pkg/session/api"
)

// SetupLogger configures the process-wide logger from the resolved
// config values.
func SetupLogger() *log.Logger {
	var logger *log.Logger
	switch config.LogFormat {
	case "json":
		logger = log.New(
			os.Stderr,
			parseLogLevel(config.LogLevel, log.InfoLevel),
			log.WithCaller(true),
			log.AddCallerSkip(1))
	default:
		logger = log.DevLogger(
			os.Stderr,
			parseLogLevel(config.LogLevel, log.DebugLevel),
			log.WithCaller(true),
			log.AddCallerSkip(1))
	}
	if config.LogFilters != "" {
		logger = logger.WithFilterRules(config.LogFilters)
	}
	log.ResetDefault(logger)
	return logger
}

func parseLogLevel(l string, defaultVal log.Level) log.Level {
	level, err := log.ParseLevel(l)
	if err != nil {
		return defaultVal
	}
	return level
}

// NewSessionLoader builds the session loader against the configured
// provider, with a disk cache when a cache dir is configured.
func NewSessionLoader() (*session.Loader, error) {
	ttl := time.Duration(0)
	if parsed, err := time.ParseDuration(config.CacheTTL); err == nil {
		ttl = parsed
	}
	var sessionCache cache.Cache[string, model.SessionData]
	if config.CacheDir != "" {
		var err error
		sessionCache, err = filecache.New[model.SessionData](
			config.CacheDir,
			filecache.WithExpiration[model.SessionData](ttl))
		if err != nil {
			return nil, err
		}
	} else {
		sessionCache = memcache.New[string, model.SessionData](
			memcache.WithExpiration[string, model.SessionData](ttl))
	}
	return session.NewLoader(
		api.NewClient(config.APIBaseURL),
		session.WithCache(sessionCache),
	), nil
}
