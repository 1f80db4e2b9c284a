package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/hprogress/internal/bar"
	"github.com/agbru/hprogress/internal/progress"
	"github.com/agbru/hprogress/internal/textutil"
	"github.com/agbru/hprogress/internal/ui"
)

const (
	// SpinnerRefreshRate is the spinner animation interval.
	SpinnerRefreshRate = 100 * time.Millisecond
	// GaugeWidth is the width of the compact gauge in the spinner suffix.
	GaugeWidth = 20
	// statusWidth bounds the message path in the suffix.
	statusWidth = 48
)

// Spinner abstracts the terminal spinner so the renderer can be tested
// without a terminal.
type Spinner interface {
	Start()
	Stop()
	UpdateSuffix(suffix string)
	SetFinalMessage(msg string)
}

type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }
func (rs *realSpinner) Stop()  { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

func (rs *realSpinner) SetFinalMessage(msg string) {
	rs.s.Lock()
	rs.s.FinalMSG = msg
	rs.s.Unlock()
}

var newSpinner = func(out io.Writer) Spinner {
	s := spinner.New(spinner.CharSets[11], SpinnerRefreshRate, spinner.WithWriter(out))
	return &realSpinner{s}
}

// SpinnerRenderer shows the root snapshot as a spinner suffix: a compact
// gauge, the percentage and the message path.
type SpinnerRenderer struct {
	mu      sync.Mutex
	spinner Spinner
	started bool
}

// NewSpinnerRenderer creates a renderer drawing on out.
func NewSpinnerRenderer(out io.Writer) *SpinnerRenderer {
	return &SpinnerRenderer{spinner: newSpinner(out)}
}

// Render implements progress.Renderer. The spinner starts on the first call.
func (r *SpinnerRenderer) Render(s progress.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.spinner.UpdateSuffix(" " + FormatSuffix(s))
	if !r.started {
		r.spinner.Start()
		r.started = true
	}
	return nil
}

// Stop halts the spinner and leaves msg on its line.
func (r *SpinnerRenderer) Stop(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.started {
		return
	}
	if msg != "" {
		r.spinner.SetFinalMessage(msg + "\n")
	}
	r.spinner.Stop()
	r.started = false
}

// FormatSuffix renders a snapshot as "████░░░░  42.50 % a – b". The
// message path is cut to keep the suffix on one line.
func FormatSuffix(s progress.Snapshot) string {
	status := textutil.Truncate(strings.Join(s.Messages, bar.StatusSeparator), statusWidth)
	line := fmt.Sprintf("%s %8s %s", ui.Paint(ui.ColorAccent(), FormatGauge(s.Progress, GaugeWidth)), bar.Percent(s.Progress), status)
	return strings.TrimRight(line, " ")
}

// FormatGauge draws a block gauge of the given width. Out-of-range progress
// is clamped.
func FormatGauge(p float64, width int) string {
	p = min(max(p, 0), 1)
	filled := int(p * float64(width))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

var _ progress.Renderer = (*SpinnerRenderer)(nil)
