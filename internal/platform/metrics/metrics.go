package metrics

import (
	"net/http"
	"time"

	"github.com/MichalMitros/supplier-feed-sync/internal/platform/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "feedsync"

// Metrics is set of prometheus collectors of sync and cleanup progress.
type Metrics struct {
	gatherer prometheus.Gatherer

	syncRuns       *prometheus.CounterVec
	syncRecords    *prometheus.CounterVec
	syncDuration   prometheus.Histogram
	cleanupSteps   *prometheus.CounterVec
	cleanupTrashed prometheus.Counter
}

// NewMetrics returns Metrics registered in new registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		gatherer: registry,
		syncRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "runs_total",
			Help:      "Number of sync invocations by outcome.",
		}, []string{"outcome"}),
		syncRecords: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "records_total",
			Help:      "Number of feed records by reconciliation result.",
		}, []string{"result"}),
		syncDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "run_duration_seconds",
			Help:      "Duration of sync invocations.",
			Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 540, 900},
		}),
		cleanupSteps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cleanup",
			Name:      "steps_total",
			Help:      "Number of cleanup invocations by phase they started in.",
		}, []string{"phase"}),
		cleanupTrashed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cleanup",
			Name:      "trashed_total",
			Help:      "Number of catalog products moved to trash by cleanup.",
		}),
	}

	registry.MustRegister(
		m.syncRuns,
		m.syncRecords,
		m.syncDuration,
		m.cleanupSteps,
		m.cleanupTrashed,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// SyncRun records finished sync invocation.
func (m *Metrics) SyncRun(outcome models.SyncOutcome, duration time.Duration) {
	m.syncRuns.WithLabelValues(string(outcome)).Inc()
	m.syncDuration.Observe(duration.Seconds())
}

// SyncRecord records reconciliation result of single record.
func (m *Metrics) SyncRecord(result string) {
	m.syncRecords.WithLabelValues(result).Inc()
}

// CleanupStep records cleanup invocation started in phase.
func (m *Metrics) CleanupStep(phase models.CleanupPhase) {
	m.cleanupSteps.WithLabelValues(string(phase)).Inc()
}

// CleanupTrashed records number of trashed products.
func (m *Metrics) CleanupTrashed(n int) {
	m.cleanupTrashed.Add(float64(n))
}

// Handler returns http handler exposing collected metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
