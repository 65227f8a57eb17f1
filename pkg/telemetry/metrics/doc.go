// Package metrics provides Prometheus collectors for the media-type
// tooling: validation outcomes and replay-drift audit runs.
//
// Metrics are instrumentation only. The validation core never records
// them itself; the audit and CLI layers observe verdicts from outside so
// the core stays a pure function.
package metrics
