// Package logging builds structured slog loggers for the tooling around
// the validation core. The core itself stays silent: logging from inside
// a consensus-relevant pure function would invite behavior that varies by
// deployment.
package logging
