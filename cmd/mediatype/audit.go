package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"stampworks/mediatype/pkg/audit"
	"stampworks/mediatype/pkg/cli"
	"stampworks/mediatype/pkg/config"
	"stampworks/mediatype/pkg/telemetry/metrics"
)

var auditFlags struct {
	db            string
	table         string
	schedule      string
	metricsListen string
	format        string
}

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Replay-drift audit of an index database",
	Long: `Re-validate every media type recorded in an index database against the
current engine.

Replay must re-derive byte-identical canonical forms from history. Any
finding — a historically accepted media type now rejected, or one whose
canonical form changed — is a compatibility-breaking engine bug and must
block deployment.`,
}

var auditRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one audit and exit",
	Long: `Run one audit over the index database and print the report.

Exits non-zero when the audit finds any divergence.

Examples:
  mediatype audit run --db data/index.db
  mediatype audit run --db data/index.db --format json`,
	RunE: runAuditOnce,
}

var auditWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run audits on a cron schedule",
	Long: `Run audits periodically until interrupted, optionally exposing
Prometheus metrics.

Examples:
  mediatype audit watch --db data/index.db --schedule "0 3 * * *"
  mediatype audit watch --db data/index.db --schedule "0 */6 * * *" \
      --metrics-listen 127.0.0.1:9310`,
	RunE: runAuditWatch,
}

func init() {
	rootCmd.AddCommand(auditCmd)
	auditCmd.AddCommand(auditRunCmd)
	auditCmd.AddCommand(auditWatchCmd)

	for _, c := range []*cobra.Command{auditRunCmd, auditWatchCmd} {
		c.Flags().StringVar(&auditFlags.db, "db", "", "index database path (overrides config)")
		c.Flags().StringVar(&auditFlags.table, "table", "", "issuance table name (overrides config)")
	}
	auditRunCmd.Flags().StringVar(&auditFlags.format, "format", "text", "output format: text, json")
	auditWatchCmd.Flags().StringVar(&auditFlags.schedule, "schedule", "", "cron schedule (overrides config)")
	auditWatchCmd.Flags().StringVar(&auditFlags.metricsListen, "metrics-listen", "", "address to serve /metrics on (overrides config)")
}

// auditConfig folds flag overrides into the loaded configuration.
func auditConfig() (*config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if auditFlags.db != "" {
		cfg.Audit.DatabasePath = auditFlags.db
	}
	if auditFlags.table != "" {
		cfg.Audit.Table = auditFlags.table
	}
	if auditFlags.schedule != "" {
		cfg.Audit.Schedule = auditFlags.schedule
	}
	if auditFlags.metricsListen != "" {
		cfg.Telemetry.Metrics.ListenAddress = auditFlags.metricsListen
	}
	if cfg.Audit.DatabasePath == "" {
		return nil, fmt.Errorf("no index database configured (--db or audit.database_path)")
	}
	return cfg, nil
}

func buildAuditor(cfg *config.Config, collector *metrics.Collector, logger *slog.Logger) (*audit.Auditor, *audit.Store, error) {
	gate, err := buildGate(cfg)
	if err != nil {
		return nil, nil, err
	}
	store, err := audit.OpenStore(cfg.Audit.DatabasePath, cfg.Audit.Table)
	if err != nil {
		return nil, nil, err
	}

	opts := audit.Options{
		BatchSize:   cfg.Audit.BatchSize,
		MaxFindings: cfg.Audit.MaxFindings,
		Logger:      logger,
	}
	if collector != nil {
		opts.Metrics = collector.Audit()
		opts.Validation = collector.Validation()
	}
	return audit.NewAuditor(gate, store, opts), store, nil
}

func runAuditOnce(cmd *cobra.Command, args []string) error {
	cfg, err := auditConfig()
	if err != nil {
		return cli.NewCommandError("audit run", err)
	}
	logger, err := buildLogger(cfg)
	if err != nil {
		return cli.NewCommandError("audit run", err)
	}
	auditor, store, err := buildAuditor(cfg, nil, logger)
	if err != nil {
		return cli.NewCommandError("audit run", err)
	}
	defer store.Close()

	report, err := auditor.Run(cmd.Context())
	if err != nil {
		return cli.NewCommandError("audit run", err)
	}

	if auditFlags.format == "json" {
		if err := cli.NewFormatter(cli.FormatJSON).FormatTo(os.Stdout, report); err != nil {
			return err
		}
	} else {
		printReport(report)
	}

	if !report.Clean() {
		return fmt.Errorf("audit found %d divergent rows out of %d", report.Rejected+report.Drifted, report.Checked)
	}
	return nil
}

func printReport(report *audit.Report) {
	fmt.Printf("audit %s: checked %d rows in %s\n",
		report.RunID, report.Checked, report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond))
	if report.Clean() {
		fmt.Println("no divergence from history")
		return
	}
	for _, f := range report.Findings {
		switch f.Kind {
		case audit.FindingRejected:
			fmt.Printf("  tx %d (%s): now rejected: %s\n", f.TxIndex, f.TxHash, f.Reason)
		case audit.FindingCanonicalDrift:
			fmt.Printf("  tx %d (%s): canonical drift: stored %q, derived %q\n",
				f.TxIndex, f.TxHash, f.Stored, f.Derived)
		}
	}
	if report.Truncated {
		fmt.Println("  (finding list truncated)")
	}
}

func runAuditWatch(cmd *cobra.Command, args []string) error {
	cfg, err := auditConfig()
	if err != nil {
		return cli.NewCommandError("audit watch", err)
	}
	if cfg.Audit.Schedule == "" {
		return fmt.Errorf("no schedule configured (--schedule or audit.schedule)")
	}

	logger, err := buildLogger(cfg)
	if err != nil {
		return cli.NewCommandError("audit watch", err)
	}
	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, prometheus.NewRegistry())
	auditor, store, err := buildAuditor(cfg, collector, logger)
	if err != nil {
		return cli.NewCommandError("audit watch", err)
	}
	defer store.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	var metricsSrv *http.Server
	if addr := cfg.Telemetry.Metrics.ListenAddress; addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", collector.Handler())
		metricsSrv = &http.Server{Addr: addr, Handler: mux}
		go func() {
			logger.Info("metrics endpoint listening", "address", addr)
			if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("metrics endpoint failed", "error", err)
			}
		}()
	}

	scheduler := audit.NewScheduler(auditor, cfg.Audit.Schedule, logger, func(report *audit.Report) {
		if !report.Clean() {
			logger.Error("scheduled audit found divergence",
				"run_id", report.RunID,
				"findings", len(report.Findings),
			)
		}
	})
	if err := scheduler.Start(ctx); err != nil {
		return cli.NewCommandError("audit watch", err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down")
	scheduler.Stop()
	if metricsSrv != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		metricsSrv.Shutdown(shutdownCtx)
	}
	return nil
}
