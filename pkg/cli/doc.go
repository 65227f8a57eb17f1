// Package cli provides shared plumbing for the mediatype command-line
// tool: output formatting and command error types.
package cli
