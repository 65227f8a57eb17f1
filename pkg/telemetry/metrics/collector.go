package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"stampworks/mediatype/pkg/config"
)

// Collector owns the Prometheus registry and the per-concern metric
// groups. Recording is cheap enough to sit on the validation path of the
// audit without skewing its timing.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	validationMetrics *ValidationMetrics
	auditMetrics      *AuditMetrics
}

// NewCollector creates a metrics collector with the given configuration
// and registry. A nil registry gets a fresh one.
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = config.DefaultMetricsSubsystem
	}

	return &Collector{
		config:            cfg,
		registry:          registry,
		validationMetrics: NewValidationMetrics(cfg, registry),
		auditMetrics:      NewAuditMetrics(cfg, registry),
	}
}

// Validation returns the validation metric group.
func (c *Collector) Validation() *ValidationMetrics { return c.validationMetrics }

// Audit returns the audit metric group.
func (c *Collector) Audit() *AuditMetrics { return c.auditMetrics }

// Registry returns the underlying Prometheus registry.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }
