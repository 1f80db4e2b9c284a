// Package metrics exports render and progress counters in the Prometheus
// text format. The collectors live in a private registry; nothing is served
// over the network.
package metrics

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/common/expfmt"

	"github.com/agbru/hprogress/internal/progress"
)

const namespace = "progressdemo"

// Collector counts coalescer outcomes and follows the root progress. It
// implements progress.CoalescerStats and progress.Observer; both are safe
// for concurrent use.
type Collector struct {
	registry *prometheus.Registry

	renders  *prometheus.CounterVec
	updates  prometheus.Counter
	progress prometheus.Gauge
	depth    prometheus.Gauge
}

// Option configures a Collector.
type Option func(*options)

type options struct {
	runtime bool
}

// WithRuntimeMetrics adds the Go runtime collector (heap, GC, goroutines).
func WithRuntimeMetrics() Option {
	return func(o *options) { o.runtime = true }
}

// NewCollector creates a Collector with its own registry.
func NewCollector(opts ...Option) (*Collector, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	c := &Collector{
		registry: prometheus.NewRegistry(),
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "renders_total",
			Help:      "Snapshots handled by the coalescer, partitioned by outcome.",
		}, []string{"outcome"}),
		updates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "updates_total",
			Help:      "Snapshots emitted by the root node.",
		}),
		progress: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "progress_ratio",
			Help:      "Last reported root progress.",
		}),
		depth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "message_depth",
			Help:      "Number of messages in the last root snapshot.",
		}),
	}

	cs := []prometheus.Collector{c.renders, c.updates, c.progress, c.depth}
	if o.runtime {
		cs = append(cs, collectors.NewGoCollector())
	}
	for _, col := range cs {
		if err := c.registry.Register(col); err != nil {
			return nil, fmt.Errorf("register collector: %w", err)
		}
	}
	// Pre-create the outcome series so a run without drops still exports zero.
	for _, outcome := range []string{outcomeRendered, outcomeDropped, outcomeDeduplicated, outcomeFailed} {
		c.renders.WithLabelValues(outcome)
	}
	return c, nil
}

const (
	outcomeRendered     = "rendered"
	outcomeDropped      = "dropped"
	outcomeDeduplicated = "deduplicated"
	outcomeFailed       = "failed"
)

// Rendered implements progress.CoalescerStats.
func (c *Collector) Rendered() { c.renders.WithLabelValues(outcomeRendered).Inc() }

// Dropped implements progress.CoalescerStats.
func (c *Collector) Dropped() { c.renders.WithLabelValues(outcomeDropped).Inc() }

// Deduplicated implements progress.CoalescerStats.
func (c *Collector) Deduplicated() { c.renders.WithLabelValues(outcomeDeduplicated).Inc() }

// Failed implements progress.CoalescerStats.
func (c *Collector) Failed() { c.renders.WithLabelValues(outcomeFailed).Inc() }

// Update implements progress.Observer.
func (c *Collector) Update(s progress.Snapshot) {
	c.updates.Inc()
	c.progress.Set(s.Progress)
	c.depth.Set(float64(len(s.Messages)))
}

// Counts returns the coalescer counters in the order rendered, dropped,
// deduplicated, failed.
func (c *Collector) Counts() (rendered, dropped, deduplicated, failed uint64) {
	return c.count(outcomeRendered), c.count(outcomeDropped),
		c.count(outcomeDeduplicated), c.count(outcomeFailed)
}

func (c *Collector) count(outcome string) uint64 {
	families, err := c.registry.Gather()
	if err != nil {
		return 0
	}
	for _, mf := range families {
		if mf.GetName() != namespace+"_renders_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "outcome" && lp.GetValue() == outcome {
					return uint64(m.GetCounter().GetValue())
				}
			}
		}
	}
	return 0
}

// Registry exposes the underlying registry.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// WriteText writes every metric family in the Prometheus text exposition
// format.
func (c *Collector) WriteText(w io.Writer) error {
	families, err := c.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write metric family %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

var (
	_ progress.CoalescerStats = (*Collector)(nil)
	_ progress.Observer       = (*Collector)(nil)
)
