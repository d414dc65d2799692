// Package metrics holds the Prometheus collectors of the field-reporting API.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome label values.
const (
	OutcomeOK        = "ok"
	OutcomeCreated   = "created"
	OutcomeUpdated   = "updated"
	OutcomeConflict  = "conflict"
	OutcomeInvalid   = "invalid"
	OutcomeForbidden = "forbidden"
	OutcomeNotFound  = "not_found"
	OutcomeError     = "error"
)

// Metrics is safe to use as a nil pointer, in which case every method is a
// no-op.
type Metrics struct {
	registry *prometheus.Registry

	allocationsTotal   *prometheus.CounterVec
	reportsTotal       *prometheus.CounterVec
	reportVotes        prometheus.Histogram
	coverageDegraded   *prometheus.CounterVec
	httpRequestsTotal  *prometheus.CounterVec
	httpRequestLatency *prometheus.HistogramVec
}

// New creates the collectors and registers them on registry.
func New(registry *prometheus.Registry) (*Metrics, error) {
	m := &Metrics{
		registry: registry,
		allocationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "mesas",
				Name:      "allocations_total",
				Help:      "Table allocation requests by outcome",
			},
			[]string{"outcome"},
		),
		reportsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "mesas",
				Name:      "vote_reports_total",
				Help:      "Vote report submissions by outcome",
			},
			[]string{"outcome"},
		),
		reportVotes: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "mesas",
				Name:      "vote_report_total_votes",
				Help:      "Total votes carried by accepted vote reports",
				Buckets:   prometheus.ExponentialBuckets(10, 2, 10), // 10 to ~5k
			},
		),
		coverageDegraded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "mesas",
				Name:      "coverage_slice_degraded_total",
				Help:      "Coverage dashboard slices served empty because of schema errors",
			},
			[]string{"slice"},
		),
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "mesas",
				Name:      "http_requests_total",
				Help:      "HTTP requests by route and status",
			},
			[]string{"method", "route", "status_code"},
		),
		httpRequestLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "mesas",
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}

	collectors := []prometheus.Collector{
		m.allocationsTotal,
		m.reportsTotal,
		m.reportVotes,
		m.coverageDegraded,
		m.httpRequestsTotal,
		m.httpRequestLatency,
	}
	for _, c := range collectors {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) RecordAllocation(outcome string) {
	if m == nil {
		return
	}
	m.allocationsTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) RecordReport(outcome string, totalVotes int) {
	if m == nil {
		return
	}
	m.reportsTotal.WithLabelValues(outcome).Inc()
	if outcome == OutcomeCreated || outcome == OutcomeUpdated {
		m.reportVotes.Observe(float64(totalVotes))
	}
}

func (m *Metrics) RecordCoverageDegraded(slice string) {
	if m == nil {
		return
	}
	m.coverageDegraded.WithLabelValues(slice).Inc()
}

func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestLatency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
