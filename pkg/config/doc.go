// Package config provides configuration management for the media-type
// validation tooling.
//
// Configuration is loaded from a YAML file, filled in with defaults, and
// validated before use:
//
//	cfg, err := config.Load("config.yaml")
//
// Environment variables using the MEDIATYPE_SECTION_FIELD convention
// override file values, e.g. MEDIATYPE_REGISTRY_PATH or
// MEDIATYPE_AUDIT_DATABASE_PATH. Overrides are applied by
// LoadWithEnvOverrides and always win over the file.
//
// The registry itself is configuration too (see pkg/mediatype.LoadRegistry)
// but is deliberately kept in its own document: it is consensus-relevant
// data that must be auditable in isolation from operational settings.
package config
