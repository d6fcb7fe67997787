// Package metrics provides Prometheus metrics for the stagetally service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Report kinds used as the "kind" label.
const (
	KindReport       = "report"
	KindStageRanking = "stage_ranking"
	KindYearRanking  = "year_ranking"
	KindCoAppearance = "coappearance"
)

// Report outcomes used as the "outcome" label.
const (
	OutcomeOK           = "ok"
	OutcomeUnknownGroup = "unknown_group"
	OutcomeError        = "error"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Dataset
	datasetRecords    prometheus.Gauge
	datasetGroups     prometheus.Gauge
	datasetUnassigned prometheus.Gauge
	datasetRejected   prometheus.Counter
	datasetReloads    *prometheus.CounterVec
	datasetLoadTime   prometheus.Histogram
	datasetLastLoad   prometheus.Gauge
	watcherEvents     prometheus.Counter

	// Reports
	reportDuration *prometheus.HistogramVec
	reportsTotal   *prometheus.CounterVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Errors
	errorRateByComponent *prometheus.CounterVec
	errorRateByType      *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec
	errorLatency         *prometheus.HistogramVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // avoids default Go collectors

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "stagetally",
		subsystem:        "",
		histogramBuckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000},
		enabled:          true,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) name(n string) string {
	if m.metricPrefix == "" {
		return n
	}
	return m.metricPrefix + "_" + n
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: m.name(name), Help: help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: m.name(name), Help: help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: m.name(name), Help: help,
		ConstLabels: m.customLabels, Buckets: buckets,
	}
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every metric
	auto := promauto.With(m.registry)

	m.datasetRecords = auto.NewGauge(m.gaugeOpts("dataset_records", "Performance records in the current dataset"))
	m.datasetGroups = auto.NewGauge(m.gaugeOpts("dataset_groups", "Groups in the current roster"))
	m.datasetUnassigned = auto.NewGauge(m.gaugeOpts("dataset_unassigned_records", "Records that match no group"))
	m.datasetRejected = auto.NewCounter(m.counterOpts("dataset_rejected_records_total", "Records dropped during normalization"))
	m.datasetReloads = auto.NewCounterVec(m.counterOpts("dataset_reloads_total", "Dataset loads by outcome"), []string{"outcome"})
	m.datasetLoadTime = auto.NewHistogram(m.histogramOpts("dataset_load_duration_milliseconds", "Time to read and normalize the dataset", m.histogramBuckets))
	m.datasetLastLoad = auto.NewGauge(m.gaugeOpts("dataset_last_load_unix", "Unix time of the last successful load"))
	m.watcherEvents = auto.NewCounter(m.counterOpts("watcher_events_total", "File system events seen by the data watcher"))

	m.reportDuration = auto.NewHistogramVec(
		m.histogramOpts("report_duration_milliseconds", "Time to compute a report or ranking", m.histogramBuckets),
		[]string{"kind"},
	)
	m.reportsTotal = auto.NewCounterVec(m.counterOpts("reports_total", "Reports computed by kind and outcome"), []string{"kind", "outcome"})

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds", m.histogramBuckets),
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorRateByComponent = auto.NewCounterVec(m.counterOpts("errors_by_component_total", "Errors by component and type"), []string{"component", "error_type"})
	m.errorRateByType = auto.NewCounterVec(m.counterOpts("errors_by_type_total", "Errors by type and severity"), []string{"error_type", "severity"})
	m.errorRateByEndpoint = auto.NewCounterVec(m.counterOpts("errors_by_endpoint_total", "Errors by endpoint"), []string{"endpoint", "method", "error_type"})
	m.errorLatency = auto.NewHistogramVec(
		m.histogramOpts("error_latency_milliseconds", "Latency of operations that failed", m.histogramBuckets),
		[]string{"component", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts("system_memory_usage_bytes", "System memory usage in bytes"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts("system_goroutine_count", "Number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(m.histogramOpts("system_gc_pause_time_milliseconds", "GC pause time in milliseconds",
		[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000}))
}

// ObserveDataset records the shape of a freshly loaded dataset.
func (m *Manager) ObserveDataset(records, groups, unassigned, rejected int, loadMs float64, unix int64) {
	if !m.enabled {
		return
	}
	m.datasetRecords.Set(float64(records))
	m.datasetGroups.Set(float64(groups))
	m.datasetUnassigned.Set(float64(unassigned))
	m.datasetRejected.Add(float64(rejected))
	m.datasetLoadTime.Observe(loadMs)
	m.datasetLastLoad.Set(float64(unix))
	m.datasetReloads.WithLabelValues(OutcomeOK).Inc()
}

// RecordReloadFailure counts a failed dataset load.
func (m *Manager) RecordReloadFailure() {
	if !m.enabled {
		return
	}
	m.datasetReloads.WithLabelValues(OutcomeError).Inc()
}

// RecordWatcherEvent counts a file system event.
func (m *Manager) RecordWatcherEvent() {
	if m.enabled {
		m.watcherEvents.Inc()
	}
}

// RecordReport records the latency and outcome of a computation.
func (m *Manager) RecordReport(kind, outcome string, latencyMs float64) {
	if !m.enabled {
		return
	}
	m.reportDuration.WithLabelValues(kind).Observe(latencyMs)
	m.reportsTotal.WithLabelValues(kind, outcome).Inc()
}

// RecordHTTPRequest records an HTTP request and its duration.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	if !m.enabled {
		return
	}
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordError records an error by component, type, severity and latency.
func (m *Manager) RecordError(component, errorType, severity string, latencyMs float64) {
	if !m.enabled {
		return
	}
	m.errorRateByComponent.WithLabelValues(component, errorType).Inc()
	m.errorRateByType.WithLabelValues(errorType, severity).Inc()
	m.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
}

// RecordEndpointError records an error returned by an HTTP endpoint.
func (m *Manager) RecordEndpointError(endpoint, method, errorType string) {
	if m.enabled {
		m.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
	}
}

// ObserveSystem records process-level gauges.
func (m *Manager) ObserveSystem(memBytes uint64, goroutines int, gcPauseMs float64) {
	if !m.enabled {
		return
	}
	m.systemMemoryUsage.Set(float64(memBytes))
	m.systemGoroutineCount.Set(float64(goroutines))
	if gcPauseMs > 0 {
		m.systemGCPauseTime.Observe(gcPauseMs)
	}
}

// Package-level helpers delegate to the global manager.

// ObserveDataset records the shape of a freshly loaded dataset.
func ObserveDataset(records, groups, unassigned, rejected int, loadMs float64, unix int64) {
	globalManager.ObserveDataset(records, groups, unassigned, rejected, loadMs, unix)
}

// RecordReloadFailure counts a failed dataset load.
func RecordReloadFailure() { globalManager.RecordReloadFailure() }

// RecordWatcherEvent counts a file system event.
func RecordWatcherEvent() { globalManager.RecordWatcherEvent() }

// RecordReport records the latency and outcome of a computation.
func RecordReport(kind, outcome string, latencyMs float64) {
	globalManager.RecordReport(kind, outcome, latencyMs)
}

// RecordHTTPRequest records an HTTP request and its duration.
func RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode, durationMs)
}

// RecordError records an error by component, type, severity and latency.
func RecordError(component, errorType, severity string, latencyMs float64) {
	globalManager.RecordError(component, errorType, severity, latencyMs)
}

// RecordEndpointError records an error returned by an HTTP endpoint.
func RecordEndpointError(endpoint, method, errorType string) {
	globalManager.RecordEndpointError(endpoint, method, errorType)
}

// ObserveSystem records process-level gauges.
func ObserveSystem(memBytes uint64, goroutines int, gcPauseMs float64) {
	globalManager.ObserveSystem(memBytes, goroutines, gcPauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
