package tui

import (
	"time"

	"github.com/agbru/hprogress/internal/progress"
)

// SnapshotMsg carries a root snapshot into the program.
type SnapshotMsg struct {
	Snapshot progress.Snapshot
}

// DoneMsg reports that the workload returned.
type DoneMsg struct {
	Err error
}

// TickMsg refreshes the elapsed time and the activity sparkline.
type TickMsg time.Time
