// Package metrics provides Prometheus metrics for the diagnostics toolkit.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "call_pipeline_diag"

// Metrics holds all Prometheus metrics for the toolkit.
type Metrics struct {
	// Check metrics
	ChecksTotal    *prometheus.CounterVec
	CheckFailures  *prometheus.CounterVec
	CheckDuration  *prometheus.HistogramVec
	CheckLastOK    *prometheus.GaugeVec
	ChecksInFlight prometheus.Gauge

	// Transcription metrics
	TranscriptionsTotal   *prometheus.CounterVec
	TranscriptionErrors   *prometheus.CounterVec
	TranscriptionDuration *prometheus.HistogramVec

	// Kafka publish metrics
	KafkaPublishTotal   *prometheus.CounterVec
	KafkaPublishErrors  *prometheus.CounterVec
	KafkaPublishLatency *prometheus.HistogramVec
}

// DefaultMetrics is the global metrics instance.
var DefaultMetrics = NewMetrics()

// NewMetrics creates and registers all Prometheus metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		ChecksTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checks_total",
			Help:      "Total number of diagnostic checks run",
		}, []string{"check"}),
		CheckFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "check_failures_total",
			Help:      "Total number of failed diagnostic checks",
		}, []string{"check"}),
		CheckDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "check_duration_seconds",
			Help:      "Duration of diagnostic checks in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60},
		}, []string{"check"}),
		CheckLastOK: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "check_last_success",
			Help:      "1 if the last run of the check succeeded, 0 otherwise",
		}, []string{"check"}),
		ChecksInFlight: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "checks_in_flight",
			Help:      "Number of checks currently running",
		}),

		TranscriptionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transcriptions_total",
			Help:      "Total number of transcription requests issued",
		}, []string{"method"}),
		TranscriptionErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transcription_errors_total",
			Help:      "Total number of failed transcription requests",
		}, []string{"method", "error_type"}),
		TranscriptionDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "transcription_duration_seconds",
			Help:      "Transcription request latency in seconds",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60, 120},
		}, []string{"method"}),

		KafkaPublishTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kafka_publish_total",
			Help:      "Total number of Kafka messages published",
		}, []string{"topic"}),
		KafkaPublishErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kafka_publish_errors_total",
			Help:      "Total number of Kafka publish errors",
		}, []string{"topic"}),
		KafkaPublishLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "kafka_publish_latency_seconds",
			Help:      "Kafka publish latency in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"topic"}),
	}
}

// RecordCheck records one run of a named check.
func (m *Metrics) RecordCheck(check string, err error, durationSeconds float64) {
	m.ChecksTotal.WithLabelValues(check).Inc()
	m.CheckDuration.WithLabelValues(check).Observe(durationSeconds)
	if err != nil {
		m.CheckFailures.WithLabelValues(check).Inc()
		m.CheckLastOK.WithLabelValues(check).Set(0)
	} else {
		m.CheckLastOK.WithLabelValues(check).Set(1)
	}
}

// RecordTranscription records a transcription attempt for a given method.
func (m *Metrics) RecordTranscription(method string, err error, durationSeconds float64) {
	m.TranscriptionsTotal.WithLabelValues(method).Inc()
	m.TranscriptionDuration.WithLabelValues(method).Observe(durationSeconds)
	if err != nil {
		m.TranscriptionErrors.WithLabelValues(method, "request").Inc()
	}
}

// RecordKafkaPublish records a Kafka publish attempt.
func (m *Metrics) RecordKafkaPublish(topic string, err error, latencySeconds float64) {
	m.KafkaPublishTotal.WithLabelValues(topic).Inc()
	m.KafkaPublishLatency.WithLabelValues(topic).Observe(latencySeconds)
	if err != nil {
		m.KafkaPublishErrors.WithLabelValues(topic).Inc()
	}
}
