package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/openrace/raceview/log"
	"github.com/openrace/raceview/pkg/model"
	"github.com/openrace/raceview/pkg/processing"
	"github.com/openrace/raceview/pkg/processing/normalize"
	"github.com/openrace/raceview/pkg/session"
)

type analysisHandler struct {
	deps   *Dependencies
	tracer trace.Tracer
	l      *log.Logger
}

func newAnalysisHandler(deps *Dependencies) *analysisHandler {
	return &analysisHandler{
		deps:   deps,
		tracer: otel.Tracer("raceview/server"),
		l:      log.Default().Named("server"),
	}
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func seasonsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"seasons": model.Seasons()})
}

func venuesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"venues": model.Venues()})
}

// run loads the selected session and executes the pipeline. On failure
// the response has already been written and ok is false.
func (h *analysisHandler) run(c *gin.Context) (a *processing.Analysis, ok bool) {
	season, err := strconv.Atoi(c.Param("season"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "season must be a year"})
		return nil, false
	}
	sel := session.Selector{Season: season, GrandPrix: c.Param("gp")}
	if err := sel.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}

	ctx, span := h.tracer.Start(c.Request.Context(), "session.analysis",
		trace.WithAttributes(
			attribute.Int("session.season", sel.Season),
			attribute.String("session.gp", sel.GrandPrix),
		))
	defer span.End()

	data, err := h.deps.Loader.Load(ctx, sel)
	if h.deps.Metrics != nil {
		h.deps.Metrics.ObserveSessionLoad(err)
	}
	if err != nil {
		h.l.Error("session load failed",
			log.String("session", sel.String()), log.ErrorField(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not load session data"})
		return nil, false
	}

	start := time.Now()
	analysis, err := h.deps.Processor.ProcessSession(data)
	if h.deps.Metrics != nil {
		h.deps.Metrics.ObservePipelineRun(time.Since(start), err)
	}
	if err != nil {
		var malformed *normalize.MalformedInputError
		if errors.As(err, &malformed) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return nil, false
		}
		h.l.Error("pipeline failed",
			log.String("session", sel.String()), log.ErrorField(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "analysis failed"})
		return nil, false
	}
	return analysis, true
}

func (h *analysisHandler) analysis(c *gin.Context) {
	if a, ok := h.run(c); ok {
		c.JSON(http.StatusOK, a)
	}
}

func (h *analysisHandler) laps(c *gin.Context) {
	if a, ok := h.run(c); ok {
		c.JSON(http.StatusOK, gin.H{"laps": a.Laps})
	}
}

func (h *analysisHandler) speedTrap(c *gin.Context) {
	if a, ok := h.run(c); ok {
		c.JSON(http.StatusOK, a.SpeedTrap)
	}
}

func (h *analysisHandler) tradeoff(c *gin.Context) {
	if a, ok := h.run(c); ok {
		c.JSON(http.StatusOK, gin.H{"points": a.Tradeoff})
	}
}

func (h *analysisHandler) degradation(c *gin.Context) {
	if a, ok := h.run(c); ok {
		c.JSON(http.StatusOK, gin.H{"points": a.Degradation})
	}
}

func (h *analysisHandler) podium(c *gin.Context) {
	if a, ok := h.run(c); ok {
		c.JSON(http.StatusOK, gin.H{
			"traces":     a.Podium.Traces,
			"fastestLap": a.FastestLap,
		})
	}
}

func (h *analysisHandler) podiumPitStops(c *gin.Context) {
	if a, ok := h.run(c); ok {
		c.JSON(http.StatusOK, gin.H{"pitStops": a.Podium.PitStops})
	}
}
