// Package server exposes the derived tables of a session over HTTP for
// the rendering collaborator.
package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/openrace/raceview/pkg/metrics"
	"github.com/openrace/raceview/pkg/processing"
	"github.com/openrace/raceview/pkg/session"
)

// Dependencies holds the collaborators of the HTTP layer.
type Dependencies struct {
	Loader    *session.Loader
	Processor *processing.Processor
	Metrics   *metrics.Manager
}

// RequestIDMiddleware attaches a request id to every request so log
// lines and responses correlate.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("RequestID", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// New creates the Gin router with all routes configured.
func New(deps *Dependencies) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware())
	router.Use(cors.Default())
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	router.GET("/healthz", healthHandler)
	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	h := newAnalysisHandler(deps)
	api := router.Group("/api/v1")
	api.GET("/seasons", seasonsHandler)
	api.GET("/venues", venuesHandler)

	sess := api.Group("/seasons/:season/events/:gp/race")
	sess.GET("", h.analysis)
	sess.GET("/laps", h.laps)
	sess.GET("/speedtrap", h.speedTrap)
	sess.GET("/tradeoff", h.tradeoff)
	sess.GET("/degradation", h.degradation)
	sess.GET("/podium", h.podium)
	sess.GET("/podium/pitstops", h.podiumPitStops)

	return router
}
