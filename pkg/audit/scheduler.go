package audit

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the auditor on a cron schedule, e.g. nightly before a
// node's maintenance window.
type Scheduler struct {
	auditor  *Auditor
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger

	// onReport, when set, receives every completed report.
	onReport func(*Report)

	mu      sync.Mutex
	running bool
}

// NewScheduler creates a scheduler running auditor per the cron expression
// schedule. onReport may be nil.
func NewScheduler(auditor *Auditor, schedule string, logger *slog.Logger, onReport func(*Report)) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		auditor:  auditor,
		schedule: schedule,
		cron:     cron.New(),
		logger:   logger.With("component", "audit.scheduler"),
		onReport: onReport,
	}
}

// Start begins scheduled runs. The cron expression is validated before the
// first job is registered.
//
// Common expressions:
//   - "0 3 * * *"   - daily at 3 AM
//   - "0 */6 * * *" - every 6 hours
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler already running")
	}
	if s.schedule == "" {
		return fmt.Errorf("no audit schedule configured")
	}
	if _, err := cron.ParseStandard(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", s.schedule, err)
	}

	_, err := s.cron.AddFunc(s.schedule, func() { s.runOnce(ctx) })
	if err != nil {
		return fmt.Errorf("failed to schedule audit: %w", err)
	}

	s.cron.Start()
	s.running = true
	s.logger.Info("audit scheduler started", "schedule", s.schedule)
	return nil
}

// Stop halts scheduling and waits for an in-flight run to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.running = false
	s.logger.Info("audit scheduler stopped")
}

func (s *Scheduler) runOnce(ctx context.Context) {
	report, err := s.auditor.Run(ctx)
	if err != nil {
		s.logger.Error("scheduled audit run failed", "error", err)
		return
	}
	if s.onReport != nil {
		s.onReport(report)
	}
}
