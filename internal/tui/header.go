package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/hprogress/internal/format"
)

// HeaderModel renders the title line: program, scenario and elapsed time.
type HeaderModel struct {
	scenario string
	version  string
	start    time.Time
	end      time.Time
}

// NewHeaderModel starts the elapsed timer.
func NewHeaderModel(scenario, version string) HeaderModel {
	return HeaderModel{scenario: scenario, version: version, start: time.Now()}
}

// SetDone freezes the elapsed timer.
func (h *HeaderModel) SetDone() {
	if h.end.IsZero() {
		h.end = time.Now()
	}
}

// Elapsed returns the running or frozen duration.
func (h HeaderModel) Elapsed() time.Duration {
	if !h.end.IsZero() {
		return h.end.Sub(h.start)
	}
	return time.Since(h.start)
}

// View renders the header padded to width.
func (h HeaderModel) View(width int) string {
	title := "progressdemo"
	if h.version != "" && h.version != "dev" {
		title += " " + h.version
	}
	left := titleStyle.Render(title) + dimStyle.Render(" | ") + accentStyle.Render(h.scenario)
	right := dimStyle.Render(fmt.Sprintf("elapsed %s", format.FormatExecutionDuration(h.Elapsed().Round(time.Millisecond))))
	gap := max(1, width-lipgloss.Width(left)-lipgloss.Width(right))
	return left + fmt.Sprintf("%*s", gap, "") + right
}
