// Package bar draws a single-line progress bar for a progress tree on a
// cursor-addressable console.
package bar

import (
	"fmt"
	"math"
	"strings"
	"sync/atomic"

	"github.com/agbru/hprogress/internal/console"
	apperrors "github.com/agbru/hprogress/internal/errors"
	"github.com/agbru/hprogress/internal/logging"
	"github.com/agbru/hprogress/internal/progress"
	"github.com/agbru/hprogress/internal/textutil"
)

const (
	// DefaultWidth is the share of the window taken by the bar.
	DefaultWidth = 0.6

	// frameWidth is the room the bar needs around its fill: "[] 100.00 % ".
	frameWidth = 12

	// StatusSeparator joins the message path in the status text.
	StatusSeparator = " – "
)

// Option configures a ProgressBar.
type Option func(*ProgressBar)

// WithWidth sets the initial width ratio. Invalid values make New fail.
func WithWidth(w float64) Option {
	return func(b *ProgressBar) { b.pendingWidth = w }
}

// WithStatusOnSeparateLine prints the status text on the row below the bar.
func WithStatusOnSeparateLine(on bool) Option {
	return func(b *ProgressBar) { b.separate.Store(on) }
}

// WithStats forwards coalescer outcomes to s.
func WithStats(s progress.CoalescerStats) Option {
	return func(b *ProgressBar) { b.coalescerOpts = append(b.coalescerOpts, progress.WithStats(s)) }
}

// WithLogger logs render failures to l.
func WithLogger(l logging.Logger) Option {
	return func(b *ProgressBar) { b.coalescerOpts = append(b.coalescerOpts, progress.WithLogger(l)) }
}

// ProgressBar renders the root of a progress tree. Reporters that update the
// tree are never blocked by drawing: updates arriving while a frame is being
// written are skipped.
type ProgressBar struct {
	console   console.Console
	root      *progress.Node
	coalescer *progress.Coalescer

	width      atomic.Uint64
	separate   atomic.Bool
	initialTop atomic.Int64
	closed     atomic.Bool

	pendingWidth  float64
	coalescerOpts []progress.CoalescerOption
}

// New creates a bar on c and subscribes it to a fresh root node.
func New(c console.Console, opts ...Option) (*ProgressBar, error) {
	b := &ProgressBar{console: c, root: progress.NewRoot(), pendingWidth: DefaultWidth}
	b.initialTop.Store(-1)
	for _, opt := range opts {
		opt(b)
	}
	if err := b.SetWidth(b.pendingWidth); err != nil {
		return nil, err
	}
	b.coalescer = progress.NewCoalescer(b, b.coalescerOpts...)
	if _, err := b.root.Subscribe(b.coalescer); err != nil {
		return nil, err
	}
	return b, nil
}

// Progress returns the root scope. Fork it to report work.
func (b *ProgressBar) Progress() *progress.Node { return b.root }

// Width returns the share of the window used by the bar.
func (b *ProgressBar) Width() float64 { return math.Float64frombits(b.width.Load()) }

// SetWidth sets the bar width ratio. Larger values leave less room for the
// status text unless it is on a separate line.
func (b *ProgressBar) SetWidth(w float64) error {
	if !(w >= 0 && w <= 1) {
		return apperrors.ValidationError{Field: "width", Message: fmt.Sprintf("must be within [0, 1], got %v", w)}
	}
	b.width.Store(math.Float64bits(w))
	return nil
}

// StatusOnSeparateLine reports whether the status text has its own row.
func (b *ProgressBar) StatusOnSeparateLine() bool { return b.separate.Load() }

// SetStatusOnSeparateLine moves the status text to its own row.
func (b *ProgressBar) SetStatusOnSeparateLine(on bool) { b.separate.Store(on) }

// Render draws s and returns the cursor to the row the bar started on.
func (b *ProgressBar) Render(s progress.Snapshot) error {
	if b.initialTop.Load() == -1 {
		b.initialTop.CompareAndSwap(-1, int64(b.console.CursorTop()))
	}
	top := int(b.initialTop.Load())
	separate := b.separate.Load()

	// Writing into the last column wraps the line.
	available := max(0, b.console.WindowWidth()-1)
	barWidth := int(float64(available) * b.Width())
	textWidth := available
	if !separate {
		textWidth -= barWidth
	}

	status, err := CreateStatusText(s.Messages, textWidth)
	if err != nil {
		return err
	}

	inner := max(0, barWidth-frameWidth)
	fill := min(max(0, int(float64(inner)*s.Progress)), inner)
	gauge := strings.Repeat("#", fill) + strings.Repeat(" ", inner-fill)

	inline := status
	if separate {
		inline = ""
	}
	line, err := textutil.PadRight(fmt.Sprintf("[%s] %8s %s", gauge, Percent(s.Progress), inline), available, " ")
	if err != nil {
		return err
	}
	if err := b.console.Write(line); err != nil {
		return err
	}
	if separate {
		padded, err := textutil.PadRight(status, available, " ")
		if err != nil {
			return err
		}
		if err := b.console.WriteLine(""); err != nil {
			return err
		}
		if err := b.console.Write(padded); err != nil {
			return err
		}
	}
	return b.console.SetCursorPosition(0, top)
}

// Close completes the root scope, draws the final frame and leaves the
// cursor below the bar. Only the first call has an effect.
func (b *ProgressBar) Close() error {
	if !b.closed.CompareAndSwap(false, true) {
		return nil
	}
	b.root.Dispose()
	b.coalescer.Flush()

	top := b.initialTop.Load()
	if top == -1 {
		return nil
	}
	offset := 1
	if b.separate.Load() {
		offset = 2
	}
	return b.console.SetCursorPosition(0, int(top)+offset)
}

// CreateStatusText joins messages from least to most specific and fits the
// result into exactly maxWidth characters.
func CreateStatusText(messages []string, maxWidth int) (string, error) {
	text, err := textutil.LimitLength(strings.Join(messages, StatusSeparator), maxWidth)
	if err != nil {
		return "", err
	}
	return textutil.PadRight(text, maxWidth, " ")
}

// Percent formats a fraction as a percentage with two decimals, e.g. "42.50 %".
func Percent(p float64) string {
	return fmt.Sprintf("%.2f %%", p*100)
}

var _ progress.Renderer = (*ProgressBar)(nil)
