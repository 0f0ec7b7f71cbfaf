// Package prometheus provides a marquee.MetricsProvider backed by
// Prometheus collectors.
package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/zoobzio/marquee"
)

// DefaultNamespace is used when New is given an empty namespace.
const DefaultNamespace = "marquee"

// Provider records carousel and loader events as Prometheus metrics.
// A Provider may be shared by several components; its collectors are
// safe for concurrent use.
type Provider struct {
	modeChanges   *prometheus.CounterVec
	advances      *prometheus.CounterVec
	activeIndex   prometheus.Gauge
	mode          *prometheus.GaugeVec
	statusChanges *prometheus.CounterVec
	status        *prometheus.GaugeVec
	fetches       *prometheus.CounterVec
	fetchLatency  *prometheus.HistogramVec
	items         prometheus.Gauge
	discards      *prometheus.CounterVec
}

// New creates a Provider whose metrics are prefixed with namespace.
func New(namespace string) *Provider {
	if namespace == "" {
		namespace = DefaultNamespace
	}

	p := &Provider{}

	// Carousel metrics
	p.modeChanges = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "carousel",
			Name:      "mode_changes_total",
			Help:      "Total number of carousel mode transitions",
		},
		[]string{"from", "to"},
	)

	p.mode = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "carousel",
			Name:      "mode",
			Help:      "Current carousel mode (1 for the active mode, 0 otherwise)",
		},
		[]string{"mode"},
	)

	p.advances = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "carousel",
			Name:      "advances_total",
			Help:      "Total number of index changes by trigger",
		},
		[]string{"trigger"},
	)

	p.activeIndex = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "carousel",
			Name:      "active_index",
			Help:      "Index of the slide currently shown",
		},
	)

	// Loader metrics
	p.statusChanges = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "loader",
			Name:      "status_changes_total",
			Help:      "Total number of loader status transitions",
		},
		[]string{"from", "to"},
	)

	p.status = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "loader",
			Name:      "status",
			Help:      "Current loader status (1 for the active status, 0 otherwise)",
		},
		[]string{"status"},
	)

	p.fetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "loader",
			Name:      "fetches_total",
			Help:      "Total number of committed fetches by result",
		},
		[]string{"result"},
	)

	p.fetchLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "loader",
			Name:      "fetch_duration_seconds",
			Help:      "Time taken by committed fetches",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12), // 10ms to ~40s
		},
		[]string{"result"},
	)

	p.items = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "loader",
			Name:      "items",
			Help:      "Number of items in the last successful fetch",
		},
	)

	p.discards = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "loader",
			Name:      "discards_total",
			Help:      "Total number of fetch completions dropped by reason",
		},
		[]string{"reason"},
	)

	return p
}

// Register registers every collector with reg.
func (p *Provider) Register(reg prometheus.Registerer) error {
	for _, c := range p.collectors() {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// MustRegister registers every collector with reg and panics on error.
func (p *Provider) MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(p.collectors()...)
}

func (p *Provider) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		p.modeChanges,
		p.mode,
		p.advances,
		p.activeIndex,
		p.statusChanges,
		p.status,
		p.fetches,
		p.fetchLatency,
		p.items,
		p.discards,
	}
}

// OnModeChange implements marquee.MetricsProvider.
func (p *Provider) OnModeChange(from, to marquee.Mode) {
	p.modeChanges.WithLabelValues(from.String(), to.String()).Inc()
	p.mode.WithLabelValues(from.String()).Set(0)
	p.mode.WithLabelValues(to.String()).Set(1)
	if to == marquee.ModeInactive {
		p.activeIndex.Set(0)
	}
}

// OnAdvance implements marquee.MetricsProvider.
func (p *Provider) OnAdvance(index int, manual bool) {
	trigger := "timer"
	if manual {
		trigger = "manual"
	}
	p.advances.WithLabelValues(trigger).Inc()
	p.activeIndex.Set(float64(index))
}

// OnStatusChange implements marquee.MetricsProvider.
func (p *Provider) OnStatusChange(from, to marquee.Status) {
	p.statusChanges.WithLabelValues(from.String(), to.String()).Inc()
	p.status.WithLabelValues(from.String()).Set(0)
	p.status.WithLabelValues(to.String()).Set(1)
}

// OnFetchSuccess implements marquee.MetricsProvider.
func (p *Provider) OnFetchSuccess(items int, duration time.Duration) {
	p.fetches.WithLabelValues("success").Inc()
	p.fetchLatency.WithLabelValues("success").Observe(duration.Seconds())
	p.items.Set(float64(items))
}

// OnFetchFailure implements marquee.MetricsProvider.
func (p *Provider) OnFetchFailure(kind marquee.ErrorKind, duration time.Duration) {
	p.fetches.WithLabelValues(kind.String()).Inc()
	p.fetchLatency.WithLabelValues(kind.String()).Observe(duration.Seconds())
}

// OnDiscard implements marquee.MetricsProvider.
func (p *Provider) OnDiscard(reason string) {
	p.discards.WithLabelValues(reason).Inc()
}

// Ensure Provider implements marquee.MetricsProvider.
var _ marquee.MetricsProvider = (*Provider)(nil)
