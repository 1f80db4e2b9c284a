package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/agbru/hprogress/internal/bar"
	"github.com/agbru/hprogress/internal/format"
	"github.com/agbru/hprogress/internal/progress"
	"github.com/agbru/hprogress/internal/ui"
)

// Summary describes a finished run.
type Summary struct {
	Scenario      string
	Duration      time.Duration
	FinalProgress float64
	PeakProgress  float64
	Rendered      uint64
	Dropped       uint64
	Deduplicated  uint64
	Failed        uint64
	Err           error
}

// FormatStatus returns the one-word outcome of a run.
func FormatStatus(s Summary) string {
	if s.Err != nil {
		return ui.Paint(ui.ColorError(), "failed")
	}
	return ui.Paint(ui.ColorSuccess(), "done")
}

// DisplaySummary writes a short report of the run to out.
func DisplaySummary(out io.Writer, s Summary) {
	detail := "final " + bar.Percent(s.FinalProgress)
	if s.PeakProgress-s.FinalProgress > progress.Tolerance {
		detail += ", peak " + bar.Percent(s.PeakProgress)
	}
	fmt.Fprintf(out, "%s%s%s %s in %s (%s)\n",
		ui.ColorBold(), s.Scenario, ui.ColorReset(),
		FormatStatus(s), format.FormatExecutionDuration(s.Duration), detail)
	fmt.Fprintf(out, "  %s %d rendered, %d dropped, %d deduplicated, %d failed%s\n",
		ui.ColorMuted(), s.Rendered, s.Dropped, s.Deduplicated, s.Failed, ui.ColorReset())
	if s.Err != nil {
		fmt.Fprintf(out, "  %s\n", ui.Paint(ui.ColorError(), s.Err.Error()))
	}
}
