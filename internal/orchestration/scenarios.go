package orchestration

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/hprogress/internal/errors"
	"github.com/agbru/hprogress/internal/logging"
	"github.com/agbru/hprogress/internal/progress"
)

// Scenario names.
const (
	ScenarioDemo     = "demo"
	ScenarioWorkers  = "workers"
	ScenarioRollback = "rollback"
)

// Registry maps scenario names to implementations.
type Registry struct {
	scenarios map[string]Scenario
}

// NewRegistry returns a registry holding the given scenarios.
func NewRegistry(scenarios ...Scenario) *Registry {
	r := &Registry{scenarios: make(map[string]Scenario, len(scenarios))}
	for _, s := range scenarios {
		r.scenarios[s.Name()] = s
	}
	return r
}

// DefaultRegistry returns the built-in scenarios.
func DefaultRegistry() *Registry {
	return NewRegistry(
		ScenarioFunc{ScenarioName: ScenarioDemo, Summary: "nested tasks with an install and rollback phase", Fn: runDemo},
		ScenarioFunc{ScenarioName: ScenarioWorkers, Summary: "concurrent workers sharing the bar equally", Fn: runWorkers},
		ScenarioFunc{ScenarioName: ScenarioRollback, Summary: "a single task that goes forward then back", Fn: runRollback},
	)
}

// Get returns the scenario registered under name.
func (r *Registry) Get(name string) (Scenario, error) {
	s, ok := r.scenarios[name]
	if !ok {
		return nil, apperrors.ValidationError{
			Field:   "scenario",
			Message: fmt.Sprintf("unknown scenario %q (available: %v)", name, r.Names()),
		}
	}
	return s, nil
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.scenarios))
	for name := range r.scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// runDemo forks a labeled task with an immediately finished subtask and a
// counting subtask, then an unlabeled install that rolls back to zero.
func runDemo(ctx context.Context, root *progress.Node, p Params) error {
	log := p.logger()

	task, err := root.Fork(0.33, "Task 1")
	if err != nil {
		return err
	}
	greeting, err := task.Fork(0.1, "Hello there!")
	if err != nil {
		return err
	}
	greeting.Dispose()
	if err := sleep(ctx, 5*p.Delay); err != nil {
		return err
	}

	counter, err := task.Fork(0.8)
	if err != nil {
		return err
	}
	const items = 11
	for i := range items {
		if err := counter.Report(float64(i)/items, fmt.Sprintf("Doing a lot of stuff: %d/%d", i, items)); err != nil {
			return err
		}
		if err := sleep(ctx, 3*p.Delay); err != nil {
			return err
		}
	}
	counter.Dispose()
	task.Dispose()
	log.Debug("task finished", logging.String("task", "Task 1"))

	install, err := root.Fork(0.66)
	if err != nil {
		return err
	}
	const installSteps = 33
	for i := range installSteps {
		if err := install.Report(float64(i)/100, "Installing..."); err != nil {
			return err
		}
		if err := sleep(ctx, p.Delay); err != nil {
			return err
		}
	}
	for i := installSteps - 1; i >= 0; i-- {
		if err := install.Report(float64(i)/100, "Rolling back..."); err != nil {
			return err
		}
		if err := sleep(ctx, p.Delay); err != nil {
			return err
		}
	}
	install.Dispose()
	log.Debug("install rolled back")
	return nil
}

// runWorkers forks p.Workers children with an equal share each and lets them
// report concurrently with jittered delays.
func runWorkers(ctx context.Context, root *progress.Node, p Params) error {
	if p.Workers <= 0 {
		return apperrors.ValidationError{Field: "workers", Message: "must be positive"}
	}
	if p.Steps <= 0 {
		return apperrors.ValidationError{Field: "steps", Message: "must be positive"}
	}
	log := p.logger()
	scale := 1 / float64(p.Workers)

	children := make([]*progress.Node, p.Workers)
	for i := range children {
		child, err := root.Fork(scale, fmt.Sprintf("Worker %d", i+1))
		if err != nil {
			return err
		}
		children[i] = child
	}

	g, ctx := errgroup.WithContext(ctx)
	for i, child := range children {
		name := fmt.Sprintf("Worker %d", i+1)
		g.Go(func() error {
			ctx, span := tracer().Start(ctx, "worker")
			defer span.End()
			span.SetAttributes(attribute.String("worker.name", name), attribute.Int("worker.steps", p.Steps))

			for step := 1; step <= p.Steps; step++ {
				if err := sleep(ctx, jitter(p.Delay)); err != nil {
					span.SetStatus(codes.Error, "canceled")
					return err
				}
				msg := fmt.Sprintf("step %d/%d", step, p.Steps)
				if err := child.Report(float64(step)/float64(p.Steps), msg); err != nil {
					span.RecordError(err)
					span.SetStatus(codes.Error, err.Error())
					return err
				}
			}
			child.Dispose()
			log.Debug("worker finished", logging.String("worker", name))
			return nil
		})
	}
	return g.Wait()
}

// runRollback reports up to half of p.Steps and back down to zero.
func runRollback(ctx context.Context, root *progress.Node, p Params) error {
	if p.Steps <= 0 {
		return apperrors.ValidationError{Field: "steps", Message: "must be positive"}
	}
	task, err := root.Fork(1, "Deploy")
	if err != nil {
		return err
	}
	half := p.Steps / 2
	for i := 0; i <= half; i++ {
		if err := task.Report(float64(i)/float64(p.Steps), "Installing..."); err != nil {
			return err
		}
		if err := sleep(ctx, p.Delay); err != nil {
			return err
		}
	}
	p.logger().Info("rolling back", logging.Int("step", half))
	for i := half; i >= 0; i-- {
		if err := task.Report(float64(i)/float64(p.Steps), "Rolling back..."); err != nil {
			return err
		}
		if err := sleep(ctx, p.Delay); err != nil {
			return err
		}
	}
	task.Dispose()
	return nil
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// jitter returns a duration uniformly spread over [d/2, 3d/2).
func jitter(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	return d/2 + rand.N(d)
}
