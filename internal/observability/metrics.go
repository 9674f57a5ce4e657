package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jonathan/career-pathway/internal/report"
	"github.com/jonathan/career-pathway/internal/skills"
)

const namespace = "pathway"

// Metrics holds the Prometheus collectors on a private registry, so tests and
// multiple servers in one process never collide on the default registerer.
type Metrics struct {
	registry *prometheus.Registry

	reportsNormalized prometheus.Counter
	reportsMalformed  prometheus.Counter
	reportDefects     *prometheus.CounterVec
	skillsReconciled  *prometheus.CounterVec
	skillWarnings     *prometheus.CounterVec
	analysesStored    prometheus.Counter

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// NewMetrics registers every collector on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		reportsNormalized: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "report",
			Name: "normalized_total", Help: "Reports passed through the normalizer.",
		}),
		reportsMalformed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "report",
			Name: "malformed_total", Help: "Reports whose top level was not an object.",
		}),
		reportDefects: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "report",
			Name: "defects_total", Help: "Report positions replaced by defaults, by defect kind.",
		}, []string{"kind"}),
		skillsReconciled: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "skills",
			Name: "reconciled_total", Help: "Unified skill entries produced, by outcome.",
		}, []string{"outcome"}),
		skillWarnings: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "skills",
			Name: "warnings_total", Help: "Non-fatal reconciliation findings, by kind.",
		}, []string{"kind"}),
		analysesStored: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "analysis",
			Name: "stored_total", Help: "Analyses persisted to the repository.",
		}),
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "http",
			Name: "requests_total", Help: "HTTP requests served.",
		}, []string{"method", "route", "status"}),
		httpRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "http",
			Name: "request_duration_seconds", Help: "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// Registry exposes the underlying registry for gathering in tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveReport records one normalization and its defects.
func (m *Metrics) ObserveReport(diags report.Diagnostics) {
	m.reportsNormalized.Inc()
	if diags.Malformed() {
		m.reportsMalformed.Inc()
	}
	for _, d := range diags {
		m.reportDefects.WithLabelValues(string(d.Kind)).Inc()
	}
}

// ObserveReconcile records the outcome of every entry in a registry plus the warnings.
func (m *Metrics) ObserveReconcile(reg *skills.Registry, diags skills.Diagnostics) {
	if reg != nil {
		for _, e := range reg.Entries() {
			var outcome string
			switch {
			case e.IsGap():
				outcome = "gap"
			case e.Validated:
				outcome = "validated"
			case e.UserHas:
				outcome = "user_has"
			default:
				outcome = "required"
			}
			m.skillsReconciled.WithLabelValues(outcome).Inc()
		}
	}
	for _, d := range diags {
		m.skillWarnings.WithLabelValues(string(d.Kind)).Inc()
	}
}

// ObserveStored counts a persisted analysis.
func (m *Metrics) ObserveStored() {
	m.analysesStored.Inc()
}

// ObserveHTTP records one served request.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
