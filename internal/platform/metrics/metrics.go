// Package metrics defines the Prometheus instruments for letter generation,
// the engine cache, mail delivery and background tasks.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeRetry   = "retry"
)

// Metrics holds all Prometheus metrics for the service. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	// Letters generated by source ("admin", "storefront") and outcome
	LettersGenerated *prometheus.CounterVec

	// Engine computation latency
	EngineLatency prometheus.Histogram

	// Letter data cache lookups
	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter

	// Mail carrier submission attempts by outcome
	MailAttempts *prometheus.CounterVec

	// Background tasks processed by type and outcome
	TasksProcessed *prometheus.CounterVec
}

// New creates a Metrics instance registered with the default registry.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates a Metrics instance registered with reg.
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		LettersGenerated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "analog_letters_generated_total",
			Help: "Total letters generated by source and outcome",
		}, []string{"source", "outcome"}),

		EngineLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "analog_engine_duration_seconds",
			Help:    "Duration of card engine letter calculations",
			Buckets: []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.05},
		}),

		CacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "analog_cache_hits_total",
			Help: "Letter data cache hits",
		}),

		CacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "analog_cache_misses_total",
			Help: "Letter data cache misses",
		}),

		MailAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "analog_mail_send_attempts_total",
			Help: "Mail carrier submission attempts by outcome",
		}, []string{"outcome"}),

		TasksProcessed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "analog_tasks_processed_total",
			Help: "Background tasks processed by type and outcome",
		}, []string{"type", "outcome"}),
	}
}

// IncrementLetters records a generated (or failed) letter.
func (m *Metrics) IncrementLetters(source, outcome string) {
	if m != nil {
		m.LettersGenerated.WithLabelValues(source, outcome).Inc()
	}
}

// ObserveEngineLatency records the duration of one engine calculation.
func (m *Metrics) ObserveEngineLatency(d time.Duration) {
	if m != nil {
		m.EngineLatency.Observe(d.Seconds())
	}
}

// IncrementCacheHit records a cache hit.
func (m *Metrics) IncrementCacheHit() {
	if m != nil {
		m.CacheHits.Inc()
	}
}

// IncrementCacheMiss records a cache miss.
func (m *Metrics) IncrementCacheMiss() {
	if m != nil {
		m.CacheMisses.Inc()
	}
}

// IncrementMailAttempt records one carrier submission attempt.
func (m *Metrics) IncrementMailAttempt(outcome string) {
	if m != nil {
		m.MailAttempts.WithLabelValues(outcome).Inc()
	}
}

// IncrementTask records a processed background task.
func (m *Metrics) IncrementTask(taskType, outcome string) {
	if m != nil {
		m.TasksProcessed.WithLabelValues(taskType, outcome).Inc()
	}
}
