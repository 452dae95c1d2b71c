package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the Prometheus collectors.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "vtree").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for flush and patch duration.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus collectors.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "vtree",
		// Flushes are usually sub-millisecond.
		Buckets:  prometheus.ExponentialBuckets(0.00005, 4, 10),
		Registry: prometheus.DefaultRegisterer,
	}
}

// Metrics holds the runtime's Prometheus collectors.
type Metrics struct {
	flushes        prometheus.Counter
	flushDuration  prometheus.Histogram
	queueDepth     prometheus.Gauge
	watcherRuns    *prometheus.CounterVec
	runawayAborts  prometheus.Counter
	patches        prometheus.Counter
	patchDuration  prometheus.Histogram
	hostOps        *prometheus.CounterVec
	errors         *prometheus.CounterVec
	activeSessions prometheus.Gauge
	framesSent     prometheus.Counter
}

// NewMetrics registers the collectors with the configured registry.
// Registering twice with the same registry panics, so each registry gets
// exactly one Metrics.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	counter := func(name, help string) prometheus.Counter {
		return factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: config.ConstLabels,
		})
	}
	gauge := func(name, help string) prometheus.Gauge {
		return factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: config.ConstLabels,
		})
	}
	histogram := func(name, help string) prometheus.Histogram {
		return factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		})
	}
	counterVec := func(name, help string, labels ...string) *prometheus.CounterVec {
		return factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: config.ConstLabels,
		}, labels)
	}

	return &Metrics{
		flushes:        counter("flushes_total", "Total number of scheduler flushes"),
		flushDuration:  histogram("flush_duration_seconds", "Scheduler flush duration in seconds"),
		queueDepth:     gauge("flush_queue_depth", "Number of watchers run by the most recent flush"),
		watcherRuns:    counterVec("watcher_runs_total", "Total number of watcher evaluations", "role"),
		runawayAborts:  counter("runaway_aborts_total", "Flushes aborted by the update loop guard"),
		patches:        counter("patches_total", "Total number of tree patches"),
		patchDuration:  histogram("patch_duration_seconds", "Patch duration in seconds"),
		hostOps:        counterVec("host_ops_total", "Host tree mutations applied", "op"),
		errors:         counterVec("errors_total", "Errors routed through the runtime error handler", "code"),
		activeSessions: gauge("active_sessions", "Number of connected wire sessions"),
		framesSent:     counter("frames_sent_total", "Total number of wire frames sent"),
	}
}

// ObserveFlush records one completed flush.
func (m *Metrics) ObserveFlush(d time.Duration, ran int) {
	if m == nil {
		return
	}
	m.flushes.Inc()
	m.flushDuration.Observe(d.Seconds())
	m.queueDepth.Set(float64(ran))
}

// WatcherRun counts one watcher evaluation for the given role.
func (m *Metrics) WatcherRun(role string) {
	if m == nil {
		return
	}
	m.watcherRuns.WithLabelValues(role).Inc()
}

// RunawayAbort counts one flush aborted by the loop guard.
func (m *Metrics) RunawayAbort() {
	if m == nil {
		return
	}
	m.runawayAborts.Inc()
}

// ObservePatch records one top-level patch.
func (m *Metrics) ObservePatch(d time.Duration) {
	if m == nil {
		return
	}
	m.patches.Inc()
	m.patchDuration.Observe(d.Seconds())
}

// HostOp counts one host mutation.
func (m *Metrics) HostOp(op string) {
	if m == nil {
		return
	}
	m.hostOps.WithLabelValues(op).Inc()
}

// Error counts one error by code.
func (m *Metrics) Error(code string) {
	if m == nil {
		return
	}
	if code == "" {
		code = "unknown"
	}
	m.errors.WithLabelValues(code).Inc()
}

// SessionOpened increments the active session gauge.
func (m *Metrics) SessionOpened() {
	if m == nil {
		return
	}
	m.activeSessions.Inc()
}

// SessionClosed decrements the active session gauge.
func (m *Metrics) SessionClosed() {
	if m == nil {
		return
	}
	m.activeSessions.Dec()
}

// FrameSent counts one outgoing frame.
func (m *Metrics) FrameSent() {
	if m == nil {
		return
	}
	m.framesSent.Inc()
}
