package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"stampworks/mediatype/pkg/config"
)

// AuditMetrics tracks replay-drift audit runs.
//
// Metrics:
//   - stampworks_mediatype_audit_runs_total: Audit runs by result
//   - stampworks_mediatype_audit_rows_checked_total: Rows re-validated
//   - stampworks_mediatype_audit_findings_total: Findings by kind
//   - stampworks_mediatype_audit_duration_seconds: Audit run duration
type AuditMetrics struct {
	runsTotal        *prometheus.CounterVec
	rowsCheckedTotal prometheus.Counter
	findingsTotal    *prometheus.CounterVec
	runDuration      prometheus.Histogram
}

// NewAuditMetrics creates and registers audit metrics with the provided
// registry.
func NewAuditMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *AuditMetrics {
	am := &AuditMetrics{
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "audit_runs_total",
				Help:      "Total number of replay-drift audit runs",
			},
			[]string{"result"},
		),
		rowsCheckedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "audit_rows_checked_total",
				Help:      "Total number of indexed rows re-validated",
			},
		),
		findingsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "audit_findings_total",
				Help:      "Total number of audit findings by kind",
			},
			[]string{"kind"},
		),
		runDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "audit_duration_seconds",
				Help:      "Duration of an audit run in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.01, 4, 10),
			},
		),
	}

	registry.MustRegister(am.runsTotal, am.rowsCheckedTotal, am.findingsTotal, am.runDuration)
	return am
}

// RecordRun records one completed audit run.
func (am *AuditMetrics) RecordRun(result string, rowsChecked int64, duration time.Duration) {
	am.runsTotal.WithLabelValues(result).Inc()
	am.rowsCheckedTotal.Add(float64(rowsChecked))
	am.runDuration.Observe(duration.Seconds())
}

// RecordFinding records one audit finding.
func (am *AuditMetrics) RecordFinding(kind string) {
	am.findingsTotal.WithLabelValues(kind).Inc()
}
