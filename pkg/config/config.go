package config

// Config is the root configuration for the media-type tooling: the
// registry source, audit settings, and telemetry.
type Config struct {
	// Registry selects the media-type registry document. An empty path
	// selects the compiled-in table.
	Registry RegistryConfig `yaml:"registry"`

	// Audit configures the replay-drift audit over an indexed issuance
	// database.
	Audit AuditConfig `yaml:"audit"`

	// Telemetry contains logging and metrics settings.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// RegistryConfig selects where the registry table comes from.
type RegistryConfig struct {
	// Path is the YAML registry document. Empty means the builtin table.
	Path string `yaml:"path"`
}

// AuditConfig configures the replay-drift audit.
type AuditConfig struct {
	// DatabasePath is the SQLite database holding indexed issuances.
	DatabasePath string `yaml:"database_path"`

	// Table is the issuance table name.
	// Default: "issuances"
	Table string `yaml:"table"`

	// BatchSize is the number of rows fetched per query.
	// Default: 1000
	BatchSize int `yaml:"batch_size"`

	// Schedule is a cron expression for periodic audit runs. Empty
	// disables scheduling; the audit then only runs on demand.
	Schedule string `yaml:"schedule"`

	// MaxFindings caps the findings kept per report to bound memory on a
	// badly drifted database. Zero means no cap.
	MaxFindings int `yaml:"max_findings"`
}

// TelemetryConfig contains observability settings.
type TelemetryConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the output format: "json", "text", or "console".
	// Default: "text"
	Format string `yaml:"format"`

	// AddSource includes file:line in log records.
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig configures Prometheus metrics.
type MetricsConfig struct {
	// Enabled turns metric collection on.
	Enabled bool `yaml:"enabled"`

	// Namespace is the metric namespace. Default: "stampworks"
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric subsystem. Default: "mediatype"
	Subsystem string `yaml:"subsystem"`

	// ListenAddress is the address the audit daemon serves /metrics on.
	// Empty disables the endpoint.
	ListenAddress string `yaml:"listen_address"`
}
