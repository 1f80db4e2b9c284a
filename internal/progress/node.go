package progress

import (
	"fmt"
	"sync/atomic"

	apperrors "github.com/agbru/hprogress/internal/errors"
)

// DefaultScale is the conventional fork scale: the child owns the whole parent.
const DefaultScale = 1.0

// Mode is the role a node has committed to. It leaves ModeUnset exactly once.
type Mode int32

const (
	// ModeUnset is the initial mode: neither reported nor forked.
	ModeUnset Mode = iota
	// ModeReporting marks a leaf that reports its own progress.
	ModeReporting
	// ModeForked marks a parent that aggregates forked children.
	ModeForked
)

// String returns the lower-case mode name.
func (m Mode) String() string {
	switch m {
	case ModeUnset:
		return "unset"
	case ModeReporting:
		return "reporting"
	case ModeForked:
		return "forked"
	default:
		return fmt.Sprintf("mode(%d)", int32(m))
	}
}

// parentLink ties a forked child to its parent. It is immutable; the child
// drops it on disposal.
type parentLink struct {
	parent   *Node
	scale    float64
	label    string
	hasLabel bool
}

// Node is one scope of a progress hierarchy. It is either a leaf that reports
// values directly or a parent whose value is the scaled sum of its forked
// children; the first Report or Fork decides which, permanently.
//
// All methods are safe for concurrent use. No method blocks: observers run on
// the calling goroutine and the parent accumulator is updated with
// compare-and-swap.
type Node struct {
	mode        atomic.Int32
	disposed    atomic.Bool
	accumulated atomicFloat64
	// lastReported is the value this node last passed to its parent; only
	// the parent link's delta computation touches it.
	lastReported atomicFloat64
	link         atomic.Pointer[parentLink]
	observers    registry
}

// NewRoot creates a node without a parent.
func NewRoot() *Node {
	return &Node{}
}

// Report publishes progress for a leaf, optionally with one message. The value
// is passed on verbatim: it is neither clamped nor required to grow.
func (n *Node) Report(progress float64, message ...string) error {
	if n.disposed.Load() {
		return apperrors.DisposedError{Operation: "report"}
	}
	msgs, err := messageList(message)
	if err != nil {
		return err
	}
	if !n.claim(ModeReporting) {
		return apperrors.StateError{Operation: "report", Mode: ModeForked.String()}
	}
	if n.disposed.Load() {
		return apperrors.DisposedError{Operation: "report"}
	}
	n.accumulated.Store(progress)
	n.emit(Snapshot{Progress: progress, Messages: msgs})
	return nil
}

// Fork creates a child scope whose progress contributes scale times its own
// value to n. An optional message labels every snapshot coming up from the
// child. Scales of sibling forks are not required to sum to one.
func (n *Node) Fork(scale float64, message ...string) (*Node, error) {
	if n.disposed.Load() {
		return nil, apperrors.DisposedError{Operation: "fork"}
	}
	if !(scale >= 0) {
		return nil, apperrors.ValidationError{Field: "scale", Message: fmt.Sprintf("must be >= 0, got %v", scale)}
	}
	if len(message) > 1 {
		return nil, tooManyMessages(len(message))
	}
	if !n.claim(ModeForked) {
		return nil, apperrors.StateError{Operation: "fork", Mode: ModeReporting.String()}
	}
	link := &parentLink{parent: n, scale: scale}
	if len(message) == 1 {
		link.label, link.hasLabel = message[0], true
	}
	child := &Node{}
	child.link.Store(link)
	return child, nil
}

// Dispose completes the node: it emits a final snapshot of 1.0 with no
// messages, then detaches every observer and the parent link. Only the first
// call has an effect. Afterwards the node ignores changes from its children.
//
// A Report that passed its disposed check just before Dispose started may
// still store and emit its value concurrently with the final snapshot;
// reporters must not race Report with Dispose on the same node if they need
// the completion to be the last notification.
func (n *Node) Dispose() {
	if !n.disposed.CompareAndSwap(false, true) {
		return
	}
	n.accumulated.Store(1)
	n.emit(Snapshot{Progress: 1, Messages: []string{}})

	n.observers.mu.Lock()
	n.observers.clear()
	n.observers.mu.Unlock()
	n.link.Store(nil)
}

// Subscribe registers o. Observers are notified in registration order.
func (n *Node) Subscribe(o Observer) (*Subscription, error) {
	if o == nil {
		return nil, apperrors.ValidationError{Field: "observer", Message: "must not be nil"}
	}
	n.observers.mu.Lock()
	defer n.observers.mu.Unlock()
	if n.disposed.Load() {
		return nil, apperrors.DisposedError{Operation: "subscribe"}
	}
	return n.observers.add(o), nil
}

// Unsubscribe removes a subscription. Unknown handles are ignored.
func (n *Node) Unsubscribe(sub *Subscription) error {
	n.observers.mu.Lock()
	defer n.observers.mu.Unlock()
	if n.disposed.Load() {
		return apperrors.DisposedError{Operation: "unsubscribe"}
	}
	n.observers.remove(sub)
	return nil
}

// Mode returns the committed mode.
func (n *Node) Mode() Mode { return Mode(n.mode.Load()) }

// Progress returns the last reported value of a leaf or the accumulated
// value of a parent. A disposed node reads 1.
func (n *Node) Progress() float64 { return n.accumulated.Load() }

// Disposed reports whether Dispose has been called.
func (n *Node) Disposed() bool { return n.disposed.Load() }

// claim moves the node from ModeUnset to m, or confirms it is already in m.
func (n *Node) claim(m Mode) bool {
	return n.mode.CompareAndSwap(int32(ModeUnset), int32(m)) || Mode(n.mode.Load()) == m
}

// emit notifies n's observers, then hands the change to the parent.
func (n *Node) emit(s Snapshot) {
	n.observers.notify(s)
	if link := n.link.Load(); link != nil {
		link.parent.childChanged(n, link, s)
	}
}

// childChanged turns a child's new value into a delta on n's running total.
// The child's previous value is swapped out atomically, so concurrent reports
// on the same child telescope into a consistent sum.
func (n *Node) childChanged(child *Node, link *parentLink, s Snapshot) {
	if n.disposed.Load() {
		return
	}
	previous := child.lastReported.Swap(s.Progress)
	total := n.accumulated.Add((s.Progress - previous) * link.scale)

	msgs := s.Messages
	if link.hasLabel {
		msgs = withPrefix(link.label, msgs)
	}
	n.emit(Snapshot{Progress: total, Messages: msgs})
}

func messageList(message []string) ([]string, error) {
	switch len(message) {
	case 0:
		return []string{}, nil
	case 1:
		return []string{message[0]}, nil
	default:
		return nil, tooManyMessages(len(message))
	}
}

func tooManyMessages(n int) error {
	return apperrors.ValidationError{Field: "message", Message: fmt.Sprintf("at most one message allowed, got %d", n)}
}
