package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Load reads configuration from a YAML file, applies defaults, and
// validates the result. Environment variables are not consulted; use
// LoadWithEnvOverrides for that.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// LoadWithEnvOverrides loads configuration from a YAML file and applies
// MEDIATYPE_* environment variable overrides, then re-validates. Overrides
// always take precedence over file values.
func LoadWithEnvOverrides(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	applyEnvOverrides(cfg)
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}
	return cfg, nil
}

// Default returns the configuration used when no file is given: defaults
// only, valid by construction.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv("MEDIATYPE_REGISTRY_PATH"); val != "" {
		cfg.Registry.Path = val
	}

	if val := os.Getenv("MEDIATYPE_AUDIT_DATABASE_PATH"); val != "" {
		cfg.Audit.DatabasePath = val
	}
	if val := os.Getenv("MEDIATYPE_AUDIT_TABLE"); val != "" {
		cfg.Audit.Table = val
	}
	if val := os.Getenv("MEDIATYPE_AUDIT_BATCH_SIZE"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			cfg.Audit.BatchSize = n
		}
	}
	if val := os.Getenv("MEDIATYPE_AUDIT_SCHEDULE"); val != "" {
		cfg.Audit.Schedule = val
	}

	if val := os.Getenv("MEDIATYPE_TELEMETRY_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("MEDIATYPE_TELEMETRY_LOGGING_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("MEDIATYPE_TELEMETRY_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
	if val := os.Getenv("MEDIATYPE_TELEMETRY_METRICS_LISTEN_ADDRESS"); val != "" {
		cfg.Telemetry.Metrics.ListenAddress = val
	}
}
