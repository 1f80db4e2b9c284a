package progress

import (
	"sync"
	"sync/atomic"

	"github.com/agbru/hprogress/internal/logging"
)

// Renderer draws a snapshot. It is called by at most one goroutine at a time.
type Renderer interface {
	Render(s Snapshot) error
}

// RendererFunc adapts a plain function to the Renderer interface.
type RendererFunc func(s Snapshot) error

// Render calls f(s).
func (f RendererFunc) Render(s Snapshot) error { return f(s) }

// CoalescerStats receives one event per snapshot offered to a Coalescer.
type CoalescerStats interface {
	Rendered()
	Dropped()
	Deduplicated()
	Failed()
}

type noopStats struct{}

func (noopStats) Rendered()     {}
func (noopStats) Dropped()      {}
func (noopStats) Deduplicated() {}
func (noopStats) Failed()       {}

// CoalescerOption configures a Coalescer.
type CoalescerOption func(*Coalescer)

// WithStats reports render outcomes to s.
func WithStats(s CoalescerStats) CoalescerOption {
	return func(c *Coalescer) {
		if s != nil {
			c.stats = s
		}
	}
}

// WithLogger logs render failures to l.
func WithLogger(l logging.Logger) CoalescerOption {
	return func(c *Coalescer) { c.logger = l }
}

// Coalescer is an Observer that forwards snapshots to a Renderer without ever
// blocking the producer. Snapshots equivalent to the last accepted one are
// discarded. A snapshot arriving while another goroutine is rendering is
// recorded as the last accepted one but not rendered, and is not queued.
type Coalescer struct {
	renderer Renderer
	stats    CoalescerStats
	logger   logging.Logger

	last     atomic.Pointer[Snapshot]
	renderMu sync.Mutex
	// rendered is the last snapshot handed to the renderer; guarded by renderMu.
	rendered *Snapshot
}

// NewCoalescer creates a Coalescer in front of r.
func NewCoalescer(r Renderer, opts ...CoalescerOption) *Coalescer {
	c := &Coalescer{renderer: r, stats: noopStats{}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Update implements Observer.
func (c *Coalescer) Update(s Snapshot) {
	prev := c.last.Load()
	if prev != nil && prev.Equivalent(s) {
		c.stats.Deduplicated()
		return
	}
	// Losing the race still renders: the winner's snapshot is the one later
	// updates are compared against.
	next := &s
	c.last.CompareAndSwap(prev, next)

	if !c.renderMu.TryLock() {
		c.stats.Dropped()
		return
	}
	defer c.renderMu.Unlock()
	c.render(next)
}

// Flush renders the last accepted snapshot if the renderer has not seen it
// yet, waiting for an in-flight render to finish first. Unlike Update it may
// block, so it belongs at shutdown, not on a reporting path.
func (c *Coalescer) Flush() {
	c.renderMu.Lock()
	defer c.renderMu.Unlock()
	if last := c.last.Load(); last != nil && last != c.rendered {
		c.render(last)
	}
}

// render draws s. The caller holds renderMu.
func (c *Coalescer) render(s *Snapshot) {
	c.rendered = s
	if err := c.renderer.Render(*s); err != nil {
		c.stats.Failed()
		if c.logger != nil {
			c.logger.Error("render failed", err, logging.Float64("progress", s.Progress))
		}
		return
	}
	c.stats.Rendered()
}

// Last returns the last accepted snapshot, if any.
func (c *Coalescer) Last() (Snapshot, bool) {
	p := c.last.Load()
	if p == nil {
		return Snapshot{}, false
	}
	return *p, true
}

var _ Observer = (*Coalescer)(nil)
