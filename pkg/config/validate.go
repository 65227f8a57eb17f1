package config

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
)

// FieldError represents a validation error for a specific configuration
// field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g.
	// "audit.batch_size").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError collects all field errors found in a configuration.
type ValidationError struct {
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "configuration validation failed with %d errors:\n", len(e.Errors))
	for _, err := range e.Errors {
		fmt.Fprintf(&sb, "  - %s\n", err.Error())
	}
	return sb.String()
}

// Validate checks the configuration and returns a ValidationError listing
// every violation, or nil when the configuration is valid.
func Validate(cfg *Config) error {
	var errs []FieldError

	if cfg.Audit.BatchSize < 0 {
		errs = append(errs, FieldError{Field: "audit.batch_size", Message: "must not be negative"})
	}
	if cfg.Audit.MaxFindings < 0 {
		errs = append(errs, FieldError{Field: "audit.max_findings", Message: "must not be negative"})
	}
	if cfg.Audit.Schedule != "" {
		if _, err := cron.ParseStandard(cfg.Audit.Schedule); err != nil {
			errs = append(errs, FieldError{
				Field:   "audit.schedule",
				Message: fmt.Sprintf("invalid cron expression %q: %v", cfg.Audit.Schedule, err),
			})
		}
	}

	switch cfg.Telemetry.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("unknown level %q", cfg.Telemetry.Logging.Level),
		})
	}
	switch cfg.Telemetry.Logging.Format {
	case "json", "text", "console":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("unknown format %q", cfg.Telemetry.Logging.Format),
		})
	}

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}
