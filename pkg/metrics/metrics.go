// Package metrics exposes discovery activity as Prometheus collectors.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "webble"

// Scan outcomes used as label values.
const (
	OutcomeMatched  = "matched"
	OutcomeTimedOut = "timed_out"
	OutcomeFailed   = "failed"
	OutcomeRejected = "rejected"
)

// Metrics groups the discovery collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	registry *prometheus.Registry

	scans          *prometheus.CounterVec
	scanDuration   *prometheus.HistogramVec
	scansActive    prometheus.Gauge
	scanCommands   *prometheus.CounterVec
	identityCache  prometheus.Gauge
	availabilities *prometheus.CounterVec
}

// New creates the collectors and registers them on a private registry,
// so several managers in one process (tests, mostly) never collide.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		scans: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "scans_total",
				Help:      "Total number of discovery sessions by outcome",
			},
			[]string{"adapter", "outcome"},
		),
		scanDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "scan_duration_seconds",
				Help:      "Time from scan start to session end",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"outcome"},
		),
		scansActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "scans_active",
			Help:      "Number of discovery sessions currently scanning",
		}),
		scanCommands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "scan_commands_total",
				Help:      "Start and stop scan commands sent to adapters",
			},
			[]string{"adapter", "command", "result"},
		),
		identityCache: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "identity_cache_entries",
			Help:      "Number of addresses bound to a device identifier",
		}),
		availabilities: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "availability_queries_total",
				Help:      "Adapter availability queries by result",
			},
			[]string{"result"},
		),
	}
	m.registry.MustRegister(
		m.scans,
		m.scanDuration,
		m.scansActive,
		m.scanCommands,
		m.identityCache,
		m.availabilities,
	)
	return m
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the collectors in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ScanStarted marks a session as scanning.
func (m *Metrics) ScanStarted() {
	if m == nil {
		return
	}
	m.scansActive.Inc()
}

// ScanFinished records the end of a scanning session.
func (m *Metrics) ScanFinished(adapterID, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.scansActive.Dec()
	m.scans.WithLabelValues(adapterID, outcome).Inc()
	m.scanDuration.WithLabelValues(outcome).Observe(d.Seconds())
}

// SessionEnded records a session that never started scanning, either
// rejected up front or failed to start.
func (m *Metrics) SessionEnded(adapterID, outcome string) {
	if m == nil {
		return
	}
	m.scans.WithLabelValues(adapterID, outcome).Inc()
}

// ScanCommand records a start or stop command and whether it succeeded.
func (m *Metrics) ScanCommand(adapterID, command string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.scanCommands.WithLabelValues(adapterID, command, result).Inc()
}

// IdentityCacheSize sets the identity cache gauge.
func (m *Metrics) IdentityCacheSize(n int) {
	if m == nil {
		return
	}
	m.identityCache.Set(float64(n))
}

// AvailabilityQueried records an availability query.
func (m *Metrics) AvailabilityQueried(available bool, err error) {
	if m == nil {
		return
	}
	result := "unavailable"
	switch {
	case err != nil:
		result = "error"
	case available:
		result = "available"
	}
	m.availabilities.WithLabelValues(result).Inc()
}
