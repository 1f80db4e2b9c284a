package orchestration

import (
	"context"
	"time"

	"github.com/agbru/hprogress/internal/logging"
	"github.com/agbru/hprogress/internal/progress"
)

// Params tunes a scenario run.
type Params struct {
	// Workers is the number of concurrent children for fan-out scenarios.
	Workers int
	// Steps is the number of reports each leaf makes.
	Steps int
	// Delay is the base pause between reports. Scenarios scale it.
	Delay time.Duration
	// Logger receives debug output. Nil disables logging.
	Logger logging.Logger
}

func (p Params) logger() logging.Logger {
	if p.Logger == nil {
		return logging.NewNopLogger()
	}
	return p.Logger
}

// Scenario is a workload reporting into a progress tree.
type Scenario interface {
	// Name identifies the scenario on the command line.
	Name() string
	// Description is a one-line summary for help output.
	Description() string
	// Run reports into root until the workload finishes or ctx is done.
	// It does not dispose root.
	Run(ctx context.Context, root *progress.Node, p Params) error
}

// ScenarioFunc adapts a function to Scenario.
type ScenarioFunc struct {
	ScenarioName string
	Summary      string
	Fn           func(ctx context.Context, root *progress.Node, p Params) error
}

// Name implements Scenario.
func (s ScenarioFunc) Name() string { return s.ScenarioName }

// Description implements Scenario.
func (s ScenarioFunc) Description() string { return s.Summary }

// Run implements Scenario.
func (s ScenarioFunc) Run(ctx context.Context, root *progress.Node, p Params) error {
	return s.Fn(ctx, root, p)
}

// Result is the outcome of one scenario run.
type Result struct {
	Name     string
	Duration time.Duration
	Err      error
}
