// Package metrics collects prometheus metrics for pipeline runs and
// session loading.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const defaultNamespace = "raceview"

type (
	Option  func(m *Manager)
	Manager struct {
		namespace string
		registry  *prometheus.Registry

		pipelineRuns     *prometheus.CounterVec
		pipelineDuration prometheus.Histogram
		sessionLoads     *prometheus.CounterVec
	}
)

func WithNamespace(arg string) Option {
	return func(m *Manager) {
		m.namespace = arg
	}
}

func WithRegistry(arg *prometheus.Registry) Option {
	return func(m *Manager) {
		m.registry = arg
	}
}

func NewManager(opts ...Option) *Manager {
	m := &Manager{namespace: defaultNamespace}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
		m.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	m.pipelineRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "pipeline_runs_total",
		Help:      "Pipeline runs by outcome.",
	}, []string{"outcome"})
	m.pipelineDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "pipeline_duration_seconds",
		Help:      "Duration of one full pipeline run.",
		Buckets:   prometheus.DefBuckets,
	})
	m.sessionLoads = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "session_loads_total",
		Help:      "Session loads by outcome.",
	}, []string{"outcome"})
	m.registry.MustRegister(m.pipelineRuns, m.pipelineDuration, m.sessionLoads)
	return m
}

func (m *Manager) ObservePipelineRun(dur time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.pipelineRuns.WithLabelValues(outcome).Inc()
	if err == nil {
		m.pipelineDuration.Observe(dur.Seconds())
	}
}

func (m *Manager) ObserveSessionLoad(err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.sessionLoads.WithLabelValues(outcome).Inc()
}

func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry, suitable for a /metrics route.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
