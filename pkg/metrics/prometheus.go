// Package metrics provides Prometheus metrics for the card scoring pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the scoring pipeline.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Corpus preprocessing metrics
	cardsIngested      prometheus.Counter
	malformedCards     prometheus.Counter
	tableBuildDuration prometheus.Histogram
	catalogSize        prometheus.Gauge
	topMechanics       prometheus.Gauge

	// Scoring run metrics
	cardsScored     prometheus.Counter
	cardsIneligible prometheus.Counter
	chunkRetries    prometheus.Counter
	chunkFailures   prometheus.Counter
	runsByStatus    *prometheus.CounterVec
	runDuration     prometheus.Histogram
	workerCount     prometheus.Gauge
	corpusSize      prometheus.Gauge
}

var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "manascore",
		subsystem:        "pipeline",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.cardsIngested = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cards_ingested_total",
		Help:      "Total number of card records accepted at the ingestion boundary",
	})

	m.malformedCards = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cards_malformed_total",
		Help:      "Total number of card records that degraded to an empty mechanic set",
	})

	m.tableBuildDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "table_build_duration_seconds",
		Help:      "Time spent building the frozen weight tables",
		Buckets:   m.histogramBuckets,
	})

	m.catalogSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "mechanic_catalog_size",
		Help:      "Number of mechanics in the active catalog",
	})

	m.topMechanics = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cooccurrence_matrix_size",
		Help:      "Number of mechanics tracked in the co-occurrence matrix",
	})

	m.cardsScored = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cards_scored_total",
		Help:      "Total number of cards scored across all runs",
	})

	m.cardsIneligible = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cards_ineligible_total",
		Help:      "Total number of cards marked ineligible by color identity",
	})

	m.chunkRetries = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "chunk_retries_total",
		Help:      "Total number of chunk-level retries during scoring runs",
	})

	m.chunkFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "chunk_failures_total",
		Help:      "Total number of chunks that failed after retry",
	})

	m.runsByStatus = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "runs_total",
		Help:      "Total number of scoring runs by terminal status",
	}, []string{"status"})

	m.runDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "run_duration_seconds",
		Help:      "Wall-clock duration of scoring runs",
		Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 20, 30, 45, 60, 90, 120},
	})

	m.workerCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "worker_count",
		Help:      "Degree of parallelism of the most recent scoring run",
	})

	m.corpusSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "corpus_size",
		Help:      "Number of cards in the loaded corpus",
	})
}

// RecordCardIngested increments the ingested cards counter.
func RecordCardIngested() {
	globalManager.cardsIngested.Inc()
}

// RecordMalformedCard increments the malformed cards counter.
func RecordMalformedCard() {
	globalManager.malformedCards.Inc()
}

// RecordTableBuildDuration records weight-table build time in seconds.
func RecordTableBuildDuration(seconds float64) {
	globalManager.tableBuildDuration.Observe(seconds)
}

// UpdateCatalogSize sets the mechanic catalog size.
func UpdateCatalogSize(size int) {
	globalManager.catalogSize.Set(float64(size))
}

// UpdateMatrixSize sets the co-occurrence matrix dimension.
func UpdateMatrixSize(size int) {
	globalManager.topMechanics.Set(float64(size))
}

// RecordCardsScored adds to the scored cards counter.
func RecordCardsScored(count int) {
	globalManager.cardsScored.Add(float64(count))
}

// RecordCardsIneligible adds to the ineligible cards counter.
func RecordCardsIneligible(count int) {
	globalManager.cardsIneligible.Add(float64(count))
}

// RecordChunkRetry increments the chunk retries counter.
func RecordChunkRetry() {
	globalManager.chunkRetries.Inc()
}

// RecordChunkFailure increments the chunk failures counter.
func RecordChunkFailure() {
	globalManager.chunkFailures.Inc()
}

// RecordRun increments the runs counter for a terminal status.
func RecordRun(status string) {
	globalManager.runsByStatus.WithLabelValues(status).Inc()
}

// RecordRunDuration records a scoring run duration in seconds.
func RecordRunDuration(seconds float64) {
	globalManager.runDuration.Observe(seconds)
}

// UpdateWorkerCount sets the worker count gauge.
func UpdateWorkerCount(count int) {
	globalManager.workerCount.Set(float64(count))
}

// UpdateCorpusSize sets the corpus size gauge.
func UpdateCorpusSize(size int) {
	globalManager.corpusSize.Set(float64(size))
}

// GetRegistry returns the custom Prometheus registry used by the pipeline.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
