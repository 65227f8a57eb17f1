package config

// Default values for configuration fields.
const (
	// Audit defaults
	DefaultAuditTable     = "issuances"
	DefaultAuditBatchSize = 1000

	// Logging defaults
	DefaultLoggingLevel  = "info"
	DefaultLoggingFormat = "text"

	// Metrics defaults
	DefaultMetricsNamespace = "stampworks"
	DefaultMetricsSubsystem = "mediatype"
)

// ApplyDefaults fills in zero-valued fields with defaults. It never
// overrides a value the user set.
func ApplyDefaults(cfg *Config) {
	if cfg.Audit.Table == "" {
		cfg.Audit.Table = DefaultAuditTable
	}
	if cfg.Audit.BatchSize == 0 {
		cfg.Audit.BatchSize = DefaultAuditBatchSize
	}
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Telemetry.Metrics.Subsystem == "" {
		cfg.Telemetry.Metrics.Subsystem = DefaultMetricsSubsystem
	}
}
