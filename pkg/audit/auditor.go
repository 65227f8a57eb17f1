package audit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"stampworks/mediatype/pkg/mediatype"
	"stampworks/mediatype/pkg/telemetry/metrics"
)

// FindingKind names what diverged for one row.
type FindingKind string

const (
	// FindingRejected means the engine now rejects a media type that was
	// accepted when the row was indexed.
	FindingRejected FindingKind = "rejected"

	// FindingCanonicalDrift means the engine accepts the media type but
	// derives a different canonical form than the one recorded.
	FindingCanonicalDrift FindingKind = "canonical_drift"
)

// Finding is one row whose re-validation diverged from history.
type Finding struct {
	Kind      FindingKind `json:"kind"`
	TxIndex   int64       `json:"tx_index"`
	TxHash    string      `json:"tx_hash"`
	MediaType string      `json:"media_type"`
	Stored    string      `json:"stored_canonical"`
	Derived   string      `json:"derived_canonical,omitempty"`
	Reason    string      `json:"reason,omitempty"`
}

// Report is the outcome of one audit run.
type Report struct {
	RunID      string    `json:"run_id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Checked    int64     `json:"checked"`
	Rejected   int64     `json:"rejected"`
	Drifted    int64     `json:"drifted"`
	Findings   []Finding `json:"findings,omitempty"`

	// Truncated is set when MaxFindings stopped finding collection early;
	// the Checked count still covers every row.
	Truncated bool `json:"truncated,omitempty"`
}

// Clean reports whether the run found no divergence.
func (r *Report) Clean() bool { return r.Rejected == 0 && r.Drifted == 0 }

// Auditor replays an index database through a Gate.
type Auditor struct {
	gate        *mediatype.Gate
	store       *Store
	logger      *slog.Logger
	metrics     *metrics.AuditMetrics
	validation  *metrics.ValidationMetrics
	batchSize   int
	maxFindings int
}

// Options configures an Auditor beyond its gate and store.
type Options struct {
	// BatchSize is rows fetched per query. Zero selects the store default.
	BatchSize int

	// MaxFindings caps findings kept in the report. Zero means unlimited.
	MaxFindings int

	// Logger receives per-finding and per-run records. Nil uses
	// slog.Default.
	Logger *slog.Logger

	// Metrics, when set, records run and finding counters.
	Metrics *metrics.AuditMetrics

	// Validation, when set, records every row's verdict and validation
	// duration, so a watch daemon's validations_total series reflects the
	// replay traffic.
	Validation *metrics.ValidationMetrics
}

// NewAuditor creates an Auditor over gate and store.
func NewAuditor(gate *mediatype.Gate, store *Store, opts Options) *Auditor {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Auditor{
		gate:        gate,
		store:       store,
		logger:      logger.With("component", "audit"),
		metrics:     opts.Metrics,
		validation:  opts.Validation,
		batchSize:   opts.BatchSize,
		maxFindings: opts.MaxFindings,
	}
}

// Run re-validates every stored row and returns the report. The returned
// error covers operational failures (database, cancellation) only; drift
// is reported through Report.Findings, because a drifted index is a result,
// not an I/O problem.
func (a *Auditor) Run(ctx context.Context) (*Report, error) {
	report := &Report{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
	}
	a.logger.Info("audit run started", "run_id", report.RunID)

	err := a.store.Scan(ctx, a.batchSize, func(row Row) error {
		report.Checked++
		finding, diverged := a.check(row)
		if !diverged {
			return nil
		}
		switch finding.Kind {
		case FindingRejected:
			report.Rejected++
		case FindingCanonicalDrift:
			report.Drifted++
		}
		a.logger.Warn("validation diverged from history",
			"run_id", report.RunID,
			"kind", string(finding.Kind),
			"tx_index", finding.TxIndex,
			"tx_hash", finding.TxHash,
			"media_type", finding.MediaType,
		)
		if a.metrics != nil {
			a.metrics.RecordFinding(string(finding.Kind))
		}
		if a.maxFindings > 0 && len(report.Findings) >= a.maxFindings {
			report.Truncated = true
			return nil
		}
		report.Findings = append(report.Findings, finding)
		return nil
	})

	report.FinishedAt = time.Now().UTC()
	duration := report.FinishedAt.Sub(report.StartedAt)

	result := "clean"
	switch {
	case err != nil:
		result = "error"
	case !report.Clean():
		result = "drift"
	}
	if a.metrics != nil {
		a.metrics.RecordRun(result, report.Checked, duration)
	}

	if err != nil {
		return report, fmt.Errorf("audit run %s failed after %d rows: %w", report.RunID, report.Checked, err)
	}
	a.logger.Info("audit run finished",
		"run_id", report.RunID,
		"result", result,
		"checked", report.Checked,
		"findings", len(report.Findings),
		"duration", duration,
	)
	return report, nil
}

// check re-validates one row against the current engine.
func (a *Auditor) check(row Row) (Finding, bool) {
	start := time.Now()
	v := a.gate.Validate(row.MediaType)
	if a.validation != nil {
		a.validation.RecordVerdict(v, time.Since(start))
	}
	if !v.Accepted {
		return Finding{
			Kind:      FindingRejected,
			TxIndex:   row.TxIndex,
			TxHash:    row.TxHash,
			MediaType: row.MediaType,
			Stored:    row.Canonical,
			Reason:    v.Reason.Error(),
		}, true
	}
	if v.Canonical != row.Canonical {
		return Finding{
			Kind:      FindingCanonicalDrift,
			TxIndex:   row.TxIndex,
			TxHash:    row.TxHash,
			MediaType: row.MediaType,
			Stored:    row.Canonical,
			Derived:   v.Canonical,
		}, true
	}
	return Finding{}, false
}
