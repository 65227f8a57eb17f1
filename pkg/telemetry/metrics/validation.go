package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"stampworks/mediatype/pkg/config"
	"stampworks/mediatype/pkg/mediatype"
)

// ValidationMetrics tracks media-type validation outcomes.
//
// Metrics:
//   - stampworks_mediatype_validations_total: Validations by outcome and rejection kind
//   - stampworks_mediatype_validation_duration_seconds: Validation duration
type ValidationMetrics struct {
	validationsTotal   *prometheus.CounterVec
	validationDuration prometheus.Histogram
}

// NewValidationMetrics creates and registers validation metrics with the
// provided registry.
func NewValidationMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *ValidationMetrics {
	vm := &ValidationMetrics{
		validationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "validations_total",
				Help:      "Total number of media-type validations",
			},
			[]string{"outcome", "reason"},
		),
		validationDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "validation_duration_seconds",
				Help:      "Duration of a single validation call in seconds",
				// Validation is sub-microsecond to tens of microseconds.
				Buckets: prometheus.ExponentialBuckets(0.0000001, 4, 10),
			},
		),
	}

	registry.MustRegister(vm.validationsTotal, vm.validationDuration)
	return vm
}

// RecordVerdict records one validation outcome and its duration.
func (vm *ValidationMetrics) RecordVerdict(v mediatype.Verdict, duration time.Duration) {
	outcome := "accepted"
	reason := "none"
	if !v.Accepted {
		outcome = "rejected"
		reason = string(v.Reason.Kind)
	}
	vm.validationsTotal.WithLabelValues(outcome, reason).Inc()
	vm.validationDuration.Observe(duration.Seconds())
}
