// Package metrics provides Prometheus metrics for the matchaudit service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Import / merge metrics.
	recordsImported   prometheus.Counter
	recordsReplaced   prometheus.Counter
	recordsSkipped    prometheus.Counter
	conflictsDetected *prometheus.CounterVec
	mergeResolutions  *prometheus.CounterVec

	// Validation metrics.
	matchesValidated  prometheus.Counter
	matchesSkipped    *prometheus.CounterVec
	discrepancies     *prometheus.CounterVec
	matchStatus       *prometheus.CounterVec
	validationLatency prometheus.Histogram

	// Import queue metrics.
	queueDepth    prometheus.Gauge
	queueCapacity prometheus.Gauge
	queueRejected prometheus.Counter
	batchesQueued prometheus.Counter
	batchesMerged prometheus.Counter

	// Official feed metrics.
	feedRequests  *prometheus.CounterVec
	feedCacheHits prometheus.Counter

	// HTTP metrics.
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "matchaudit",
		subsystem:        "core",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.recordsImported = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "records_imported_total",
		Help:      "Scouting records auto-imported into the canonical store",
	})
	m.recordsReplaced = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "records_replaced_total",
		Help:      "Canonical records replaced during merge",
	})
	m.recordsSkipped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "records_skipped_total",
		Help:      "Incoming records discarded during merge",
	})
	m.conflictsDetected = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "conflicts_detected_total",
		Help:      "Merge conflicts requiring review, by kind",
	}, []string{"kind"})
	m.mergeResolutions = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "merge_resolutions_total",
		Help:      "User decisions on merge conflicts, by action",
	}, []string{"action"})

	m.matchesValidated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "matches_validated_total",
		Help:      "Matches validated against official data",
	})
	m.matchesSkipped = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "matches_skipped_total",
		Help:      "Matches skipped during a batch run, by reason",
	}, []string{"reason"})
	m.discrepancies = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "discrepancies_total",
		Help:      "Field-level discrepancies found, by severity",
	}, []string{"severity"})
	m.matchStatus = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "match_status_total",
		Help:      "Match verdicts produced, by status",
	}, []string{"status"})
	m.validationLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "validation_latency_seconds",
		Help:      "Histogram of per-match validation latency",
		Buckets:   m.histogramBuckets,
	})

	m.queueDepth = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "import_queue_depth",
		Help:      "Batches currently waiting in the import queue",
	})
	m.queueCapacity = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "import_queue_capacity",
		Help:      "Configured capacity of the import queue",
	})
	m.queueRejected = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "import_queue_rejected_total",
		Help:      "Batches rejected because the import queue was full or closed",
	})
	m.batchesQueued = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "import_batches_queued_total",
		Help:      "Batches accepted into the import queue",
	})
	m.batchesMerged = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "import_batches_merged_total",
		Help:      "Batches drained from the queue and run through the merge engine",
	})

	m.feedRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "feed_requests_total",
		Help:      "Official-data feed requests, by outcome",
	}, []string{"outcome"})
	m.feedCacheHits = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "feed_cache_hits_total",
		Help:      "Official-data requests served from the local cache",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "HTTP requests, by method, path and status code",
	}, []string{"method", "path", "code"})
	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_seconds",
		Help:      "Histogram of HTTP request latency",
		Buckets:   m.histogramBuckets,
	}, []string{"method", "path"})
}

// Registry returns the gatherer backing the default manager, for the
// /metrics endpoint.
func Registry() *prometheus.Registry { return customRegistry }

// Package-level helpers on the global manager.

func RecordImported(n int) { globalManager.recordsImported.Add(float64(n)) }
func RecordReplaced(n int) { globalManager.recordsReplaced.Add(float64(n)) }
func RecordSkipped(n int)  { globalManager.recordsSkipped.Add(float64(n)) }

func RecordConflict(kind string) { globalManager.conflictsDetected.WithLabelValues(kind).Inc() }

func RecordMergeResolution(action string) {
	globalManager.mergeResolutions.WithLabelValues(action).Inc()
}

func RecordMatchValidated() { globalManager.matchesValidated.Inc() }

func RecordMatchSkipped(reason string) {
	globalManager.matchesSkipped.WithLabelValues(reason).Inc()
}

func RecordDiscrepancy(severity string) {
	globalManager.discrepancies.WithLabelValues(severity).Inc()
}

func RecordMatchStatus(status string) {
	globalManager.matchStatus.WithLabelValues(status).Inc()
}

func RecordValidationLatency(seconds float64) {
	globalManager.validationLatency.Observe(seconds)
}

func UpdateQueueDepth(n int)    { globalManager.queueDepth.Set(float64(n)) }
func UpdateQueueCapacity(n int) { globalManager.queueCapacity.Set(float64(n)) }
func RecordQueueRejected()      { globalManager.queueRejected.Inc() }
func RecordBatchQueued()        { globalManager.batchesQueued.Inc() }
func RecordBatchMerged()        { globalManager.batchesMerged.Inc() }

func RecordFeedRequest(outcome string) {
	globalManager.feedRequests.WithLabelValues(outcome).Inc()
}

func RecordFeedCacheHit() { globalManager.feedCacheHits.Inc() }

func RecordHTTPRequest(method, path, code string) {
	globalManager.httpRequests.WithLabelValues(method, path, code).Inc()
}

func RecordHTTPDuration(method, path string, seconds float64) {
	globalManager.httpRequestDuration.WithLabelValues(method, path).Observe(seconds)
}
