// Package metrics provides Prometheus metrics for the MedAssist services.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector exported by MedAssist.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Inference
	predictions        *prometheus.CounterVec
	predictionLatency  *prometheus.HistogramVec
	riskTiers          *prometheus.CounterVec
	validationFailures *prometheus.CounterVec
	predictionErrors   *prometheus.CounterVec
	modelLoaded        *prometheus.GaugeVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Training
	trainingRuns     *prometheus.CounterVec
	trainingDuration *prometheus.HistogramVec
	trainingRows     *prometheus.GaugeVec
	trainingAccuracy *prometheus.GaugeVec
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
		namespace:        "medassist",
		subsystem:        "risk",
		histogramBuckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 1000},
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)

	m.predictions = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "predictions_total",
		Help:      "Total number of completed predictions by disease and binary verdict",
	}, []string{"disease", "verdict"})

	m.predictionLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "prediction_latency_milliseconds",
		Help:      "Model invocation latency in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"disease"})

	m.riskTiers = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "risk_tier_total",
		Help:      "Predictions by display risk tier",
	}, []string{"disease", "tier"})

	m.validationFailures = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "validation_failures_total",
		Help:      "Requests rejected before model invocation",
	}, []string{"disease", "kind"})

	m.predictionErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "prediction_errors_total",
		Help:      "Model invocations that failed or timed out",
	}, []string{"disease", "reason"})

	m.modelLoaded = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "model_loaded_info",
		Help:      "Set to 1 for each model artifact loaded at startup",
	}, []string{"disease", "schema", "kind"})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.trainingRuns = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "training_runs_total",
		Help:      "Training jobs by disease and outcome",
	}, []string{"disease", "status"})

	m.trainingDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "training_duration_milliseconds",
		Help:      "Wall time of a training job in milliseconds",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
	}, []string{"disease"})

	m.trainingRows = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "training_rows",
		Help:      "Rows read from the dataset of the last training job",
	}, []string{"disease"})

	m.trainingAccuracy = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "training_holdout_accuracy_ratio",
		Help:      "Holdout accuracy of the last trained model",
	}, []string{"disease"})
}

// RecordPrediction counts a completed prediction.
func (m *Manager) RecordPrediction(disease string, positive bool, tier string, latencyMs float64) {
	if !m.enabled {
		return
	}
	verdict := "negative"
	if positive {
		verdict = "positive"
	}
	m.predictions.WithLabelValues(disease, verdict).Inc()
	m.riskTiers.WithLabelValues(disease, tier).Inc()
	m.predictionLatency.WithLabelValues(disease).Observe(latencyMs)
}

// RecordValidationFailure counts a rejected request.
func (m *Manager) RecordValidationFailure(disease, kind string) {
	if !m.enabled {
		return
	}
	m.validationFailures.WithLabelValues(disease, kind).Inc()
}

// RecordPredictionError counts a failed model call.
func (m *Manager) RecordPredictionError(disease, reason string) {
	if !m.enabled {
		return
	}
	m.predictionErrors.WithLabelValues(disease, reason).Inc()
}

// MarkModelLoaded flags a model artifact as loaded.
func (m *Manager) MarkModelLoaded(disease, schemaID, kind string) {
	if !m.enabled {
		return
	}
	m.modelLoaded.WithLabelValues(disease, schemaID, kind).Set(1)
}

// RecordHTTPRequest increments HTTP request counter.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	if !m.enabled {
		return
	}
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordTraining records the outcome of one training job.
func (m *Manager) RecordTraining(disease, status string, durationMs float64, rows int, accuracy float64) {
	if !m.enabled {
		return
	}
	m.trainingRuns.WithLabelValues(disease, status).Inc()
	m.trainingDuration.WithLabelValues(disease).Observe(durationMs)
	if rows > 0 {
		m.trainingRows.WithLabelValues(disease).Set(float64(rows))
		m.trainingAccuracy.WithLabelValues(disease).Set(accuracy)
	}
}

// NewNop returns a disabled manager on a private registry.
func NewNop() *Manager {
	return NewManager(WithMetricsEnabled(false), WithPrometheusRegistry(prometheus.NewRegistry()))
}

// Default returns the process-wide manager bound to GetRegistry.
func Default() *Manager {
	return globalManager
}

// GetRegistry returns the custom registry used by the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
