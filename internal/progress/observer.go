package progress

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/agbru/hprogress/internal/logging"
)

// Observer receives committed snapshots. Update is called synchronously on
// the goroutine that committed the change, so implementations must be safe for
// concurrent use and should return quickly.
type Observer interface {
	Update(s Snapshot)
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(s Snapshot)

// Update calls f(s). A nil ObserverFunc is ignored.
func (f ObserverFunc) Update(s Snapshot) {
	if f != nil {
		f(s)
	}
}

// Subscription is the handle returned by Node.Subscribe; pass it to
// Node.Unsubscribe to stop receiving snapshots.
type Subscription struct {
	observer Observer
}

// registry is an ordered, copy-on-write list of subscriptions. Writers
// serialize on mu; notify only loads the current slice.
type registry struct {
	mu   sync.Mutex
	subs atomic.Pointer[[]*Subscription]
}

// add appends o. The caller holds mu.
func (r *registry) add(o Observer) *Subscription {
	sub := &Subscription{observer: o}
	var next []*Subscription
	if cur := r.subs.Load(); cur != nil {
		next = make([]*Subscription, 0, len(*cur)+1)
		next = append(next, *cur...)
	}
	next = append(next, sub)
	r.subs.Store(&next)
	return sub
}

// remove drops sub if present. The caller holds mu.
func (r *registry) remove(sub *Subscription) {
	cur := r.subs.Load()
	if cur == nil {
		return
	}
	next := make([]*Subscription, 0, len(*cur))
	for _, s := range *cur {
		if s != sub {
			next = append(next, s)
		}
	}
	r.subs.Store(&next)
}

// clear drops every subscription. The caller holds mu.
func (r *registry) clear() {
	r.subs.Store(nil)
}

func (r *registry) len() int {
	if cur := r.subs.Load(); cur != nil {
		return len(*cur)
	}
	return 0
}

// notify delivers s to every subscription in registration order.
func (r *registry) notify(s Snapshot) {
	cur := r.subs.Load()
	if cur == nil {
		return
	}
	for _, sub := range *cur {
		sub.observer.Update(s)
	}
}

// ChannelObserver forwards snapshots into a buffered channel without ever
// blocking the reporter: when the buffer is full the snapshot is dropped and
// counted.
type ChannelObserver struct {
	ch      chan Snapshot
	dropped atomic.Uint64
}

// NewChannelObserver creates a ChannelObserver with the given buffer size.
func NewChannelObserver(buffer int) *ChannelObserver {
	if buffer < 1 {
		buffer = 1
	}
	return &ChannelObserver{ch: make(chan Snapshot, buffer)}
}

// Update enqueues s or drops it if the buffer is full.
func (o *ChannelObserver) Update(s Snapshot) {
	select {
	case o.ch <- s:
	default:
		o.dropped.Add(1)
	}
}

// C returns the receive side of the channel.
func (o *ChannelObserver) C() <-chan Snapshot { return o.ch }

// Dropped returns how many snapshots were discarded on a full buffer.
func (o *ChannelObserver) Dropped() uint64 { return o.dropped.Load() }

// LoggingObserver writes snapshots to a logger at debug level. To keep tight
// reporting loops from flooding the log, a snapshot is only logged when its
// progress moved by at least minStep since the last logged one, when it
// reaches completion, or when its most specific message changed.
type LoggingObserver struct {
	logger  logging.Logger
	minStep float64
	last    atomicFloat64
	lastMsg atomic.Pointer[string]
}

// NewLoggingObserver creates a LoggingObserver. A non-positive minStep logs
// every snapshot.
func NewLoggingObserver(logger logging.Logger, minStep float64) *LoggingObserver {
	o := &LoggingObserver{logger: logger, minStep: minStep}
	o.last.Store(math.Inf(-1))
	return o
}

// Update logs s if it passes the throttle.
func (o *LoggingObserver) Update(s Snapshot) {
	msg := ""
	if n := len(s.Messages); n > 0 {
		msg = s.Messages[n-1]
	}
	prevMsg := o.lastMsg.Load()
	moved := math.Abs(s.Progress-o.last.Load()) >= o.minStep
	if !moved && s.Progress < 1 && prevMsg != nil && *prevMsg == msg {
		return
	}
	o.last.Store(s.Progress)
	o.lastMsg.Store(&msg)
	o.logger.Debug("progress changed",
		logging.Float64("progress", s.Progress),
		logging.Strings("messages", s.Messages))
}

// Verify interface compliance.
var (
	_ Observer = ObserverFunc(nil)
	_ Observer = (*ChannelObserver)(nil)
	_ Observer = (*LoggingObserver)(nil)
)
