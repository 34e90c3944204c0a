// Package metrics provides Prometheus metrics for the webbasics service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector the service exports.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	constLabels      map[string]string
	registry         prometheus.Registerer

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Errors
	errorRateByType     *prometheus.CounterVec
	errorRateByEndpoint *prometheus.CounterVec
	errorLatency        *prometheus.HistogramVec

	// Forms and pages
	formSubmissions *prometheus.CounterVec
	templateRenders *prometheus.CounterVec
	renderLatency   *prometheus.HistogramVec

	// Dev server
	templateReloads   *prometheus.CounterVec
	liveReloadClients prometheus.Gauge
	liveReloadPushes  prometheus.Counter

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

var globalManager *Manager //nolint:gochecknoglobals // singleton used by the package-level recorders

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // exported via GetRegistry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "webbasics",
		subsystem:        "http",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		constLabels:      map[string]string{},
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one block per collector
	auto := promauto.With(m.registry)

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "requests_total",
			Help:        "Total number of HTTP requests by route, method and status",
			ConstLabels: m.constLabels,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "request_duration_milliseconds",
			Help:        "HTTP request duration in milliseconds",
			Buckets:     m.histogramBuckets,
			ConstLabels: m.constLabels,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorRateByType = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "errors_by_type_total",
			Help:        "Total number of errors by type and severity",
			ConstLabels: m.constLabels,
		},
		[]string{"error_type", "severity"},
	)

	m.errorRateByEndpoint = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "errors_by_endpoint_total",
			Help:        "Total number of errors by route and method",
			ConstLabels: m.constLabels,
		},
		[]string{"endpoint", "method", "error_type"},
	)

	m.errorLatency = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "error_latency_milliseconds",
			Help:        "Latency of requests that ended in an error, in milliseconds",
			Buckets:     m.histogramBuckets,
			ConstLabels: m.constLabels,
		},
		[]string{"component", "error_type"},
	)

	m.formSubmissions = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   "forms",
			Name:        "submissions_total",
			Help:        "Form submissions by method and outcome (ok, missing_field)",
			ConstLabels: m.constLabels,
		},
		[]string{"method", "outcome"},
	)

	m.templateRenders = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   "templates",
			Name:        "renders_total",
			Help:        "Template renders by template and outcome",
			ConstLabels: m.constLabels,
		},
		[]string{"template", "outcome"},
	)

	m.renderLatency = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   "templates",
			Name:        "render_latency_milliseconds",
			Help:        "Template render latency in milliseconds",
			Buckets:     m.histogramBuckets,
			ConstLabels: m.constLabels,
		},
		[]string{"template"},
	)

	m.templateReloads = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   "templates",
			Name:        "reloads_total",
			Help:        "Template set re-parses by outcome",
			ConstLabels: m.constLabels,
		},
		[]string{"outcome"},
	)

	m.liveReloadClients = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   "livereload",
		Name:        "clients",
		Help:        "Browser connections currently waiting for a reload signal",
		ConstLabels: m.constLabels,
	})

	m.liveReloadPushes = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   "livereload",
		Name:        "broadcasts_total",
		Help:        "Reload signals broadcast to browsers",
		ConstLabels: m.constLabels,
	})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   "system",
		Name:        "memory_usage_bytes",
		Help:        "System memory usage in bytes",
		ConstLabels: m.constLabels,
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   "system",
		Name:        "goroutine_count",
		Help:        "Number of goroutines",
		ConstLabels: m.constLabels,
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   "system",
		Name:        "gc_pause_time_milliseconds",
		Help:        "GC pause time in milliseconds",
		Buckets:     []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
		ConstLabels: m.constLabels,
	})
}

// RecordHTTPRequest increments the request counter.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string) {
	if m.enabled {
		m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	}
}

// RecordHTTPRequestDuration observes request duration in milliseconds.
func (m *Manager) RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	if m.enabled {
		m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
	}
}

// RecordErrorByType increments the error counter for a type and severity.
func (m *Manager) RecordErrorByType(errorType, severity string) {
	if m.enabled {
		m.errorRateByType.WithLabelValues(errorType, severity).Inc()
	}
}

// RecordErrorByEndpoint increments the error counter for a route.
func (m *Manager) RecordErrorByEndpoint(endpoint, method, errorType string) {
	if m.enabled {
		m.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
	}
}

// RecordErrorLatency observes the latency of a failed request.
func (m *Manager) RecordErrorLatency(component, errorType string, latencyMs float64) {
	if m.enabled {
		m.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
	}
}

// RecordFormSubmission counts a form submission.
func (m *Manager) RecordFormSubmission(method, outcome string) {
	if m.enabled {
		m.formSubmissions.WithLabelValues(method, outcome).Inc()
	}
}

// RecordTemplateRender counts a render and observes its latency.
func (m *Manager) RecordTemplateRender(template, outcome string, latencyMs float64) {
	if m.enabled {
		m.templateRenders.WithLabelValues(template, outcome).Inc()
		m.renderLatency.WithLabelValues(template).Observe(latencyMs)
	}
}

// RecordTemplateReload counts a template re-parse.
func (m *Manager) RecordTemplateReload(outcome string) {
	if m.enabled {
		m.templateReloads.WithLabelValues(outcome).Inc()
	}
}

// UpdateLiveReloadClients sets the connected live reload client count.
func (m *Manager) UpdateLiveReloadClients(count int) {
	if m.enabled {
		m.liveReloadClients.Set(float64(count))
	}
}

// RecordLiveReloadBroadcast counts a reload broadcast.
func (m *Manager) RecordLiveReloadBroadcast() {
	if m.enabled {
		m.liveReloadPushes.Inc()
	}
}

// UpdateSystemMemoryUsage sets allocated heap bytes.
func (m *Manager) UpdateSystemMemoryUsage(bytes uint64) {
	if m.enabled {
		m.systemMemoryUsage.Set(float64(bytes))
	}
}

// UpdateSystemGoroutineCount sets the goroutine count.
func (m *Manager) UpdateSystemGoroutineCount(count int) {
	if m.enabled {
		m.systemGoroutineCount.Set(float64(count))
	}
}

// RecordSystemGCPauseTime observes an average GC pause in milliseconds.
func (m *Manager) RecordSystemGCPauseTime(pauseMs float64) {
	if m.enabled {
		m.systemGCPauseTime.Observe(pauseMs)
	}
}

// RecordHTTPRequest increments the global request counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode)
}

// RecordHTTPRequestDuration records request duration on the global manager.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.RecordHTTPRequestDuration(endpoint, method, statusCode, durationMs)
}

// RecordErrorByType records an error by type on the global manager.
func RecordErrorByType(errorType, severity string) {
	globalManager.RecordErrorByType(errorType, severity)
}

// RecordErrorByEndpoint records an error by route on the global manager.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.RecordErrorByEndpoint(endpoint, method, errorType)
}

// RecordErrorLatency records failed request latency on the global manager.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	globalManager.RecordErrorLatency(component, errorType, latencyMs)
}

// RecordFormSubmission records a form submission on the global manager.
func RecordFormSubmission(method, outcome string) {
	globalManager.RecordFormSubmission(method, outcome)
}

// RecordTemplateRender records a template render on the global manager.
func RecordTemplateRender(template, outcome string, latencyMs float64) {
	globalManager.RecordTemplateRender(template, outcome, latencyMs)
}

// RecordTemplateReload records a template re-parse on the global manager.
func RecordTemplateReload(outcome string) {
	globalManager.RecordTemplateReload(outcome)
}

// UpdateLiveReloadClients sets the live reload client gauge on the global manager.
func UpdateLiveReloadClients(count int) {
	globalManager.UpdateLiveReloadClients(count)
}

// RecordLiveReloadBroadcast records a reload broadcast on the global manager.
func RecordLiveReloadBroadcast() {
	globalManager.RecordLiveReloadBroadcast()
}

// UpdateSystemMemoryUsage sets memory usage on the global manager.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.UpdateSystemMemoryUsage(bytes)
}

// UpdateSystemGoroutineCount sets the goroutine count on the global manager.
func UpdateSystemGoroutineCount(count int) {
	globalManager.UpdateSystemGoroutineCount(count)
}

// RecordSystemGCPauseTime records GC pause time on the global manager.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.RecordSystemGCPauseTime(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
