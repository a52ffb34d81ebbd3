// Package metrics holds the Prometheus instruments of the service. Every
// Manager owns its own registry so tests and binaries never collide on the
// global default registerer.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Analysis outcomes.
const (
	OutcomeComputed = "computed"
	OutcomeCached   = "cached"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

type Manager struct {
	namespace       string
	registry        *prometheus.Registry
	runtimeMetrics  bool
	durationBuckets []float64

	analyses         *prometheus.CounterVec
	matchRate        prometheus.Histogram
	analysisDuration prometheus.Histogram

	postingFetches *prometheus.CounterVec

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

type Option func(*Manager)

func WithNamespace(ns string) Option {
	return func(m *Manager) {
		if ns != "" {
			m.namespace = ns
		}
	}
}

func WithRegistry(r *prometheus.Registry) Option {
	return func(m *Manager) {
		if r != nil {
			m.registry = r
		}
	}
}

// WithRuntimeMetrics adds the Go runtime and process collectors.
func WithRuntimeMetrics() Option {
	return func(m *Manager) {
		m.runtimeMetrics = true
	}
}

func WithDurationBuckets(b []float64) Option {
	return func(m *Manager) {
		if len(b) > 0 {
			m.durationBuckets = b
		}
	}
}

func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:       "careerpath",
		registry:        prometheus.NewRegistry(),
		durationBuckets: prometheus.DefBuckets,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	if m.runtimeMetrics {
		m.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	m.analyses = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "matching",
		Name:      "analyses_total",
		Help:      "Resume/job analyses by outcome",
	}, []string{"outcome"})

	m.matchRate = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "matching",
		Name:      "match_rate_percent",
		Help:      "Match rate of computed analyses",
		Buckets:   prometheus.LinearBuckets(10, 10, 10),
	})

	m.analysisDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "matching",
		Name:      "analysis_duration_seconds",
		Help:      "Time spent resolving, scoring and storing one analysis",
		Buckets:   m.durationBuckets,
	})

	m.postingFetches = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "scraper",
		Name:      "posting_fetches_total",
		Help:      "Job posting fetches by render mode and result",
	}, []string{"mode", "result"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by route, method and status code",
	}, []string{"route", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by route and method",
		Buckets:   m.durationBuckets,
	}, []string{"route", "method"})
}

func (m *Manager) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the manager's registry in the Prometheus text format.
func (m *Manager) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Manager) ObserveAnalysis(outcome string, matchRatePercent int, d time.Duration) {
	if m == nil {
		return
	}
	m.analyses.WithLabelValues(outcome).Inc()
	if outcome == OutcomeComputed || outcome == OutcomeCached {
		m.matchRate.Observe(float64(matchRatePercent))
	}
	m.analysisDuration.Observe(d.Seconds())
}

func (m *Manager) ObservePostingFetch(mode string, ok bool) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "error"
	}
	m.postingFetches.WithLabelValues(mode, result).Inc()
}

func (m *Manager) ObserveHTTPRequest(route, method string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(route, method).Observe(d.Seconds())
}
