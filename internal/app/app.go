// Package app wires configuration, the selected display and a scenario into
// the progressdemo command.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/agbru/hprogress/internal/bar"
	"github.com/agbru/hprogress/internal/cli"
	"github.com/agbru/hprogress/internal/config"
	"github.com/agbru/hprogress/internal/console"
	apperrors "github.com/agbru/hprogress/internal/errors"
	"github.com/agbru/hprogress/internal/logging"
	"github.com/agbru/hprogress/internal/metrics"
	"github.com/agbru/hprogress/internal/orchestration"
	"github.com/agbru/hprogress/internal/progress"
	"github.com/agbru/hprogress/internal/tui"
	"github.com/agbru/hprogress/internal/ui"
)

const programName = "progressdemo"

// logStep throttles the debug log of root snapshots.
const logStep = 0.05

// Application represents the progressdemo application instance.
type Application struct {
	Config    config.AppConfig
	Registry  *orchestration.Registry
	ErrWriter io.Writer

	// console overrides terminal detection; tests use it to force a bar.
	console console.Console
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithRegistry sets the scenarios the application can run.
func WithRegistry(r *orchestration.Registry) AppOption {
	return func(a *Application) { a.Registry = r }
}

// WithConsole draws the bar on c instead of the process terminal.
func WithConsole(c console.Console) AppOption {
	return func(a *Application) { a.console = c }
}

// New creates a new Application instance by parsing command-line arguments.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}
	if app.Registry == nil {
		app.Registry = orchestration.DefaultRegistry()
	}

	name := programName
	var cmdArgs []string
	if len(args) > 0 {
		name = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(name, cmdArgs, errWriter, app.Registry.Names())
	if err != nil {
		return nil, err
	}
	app.Config = cfg
	return app, nil
}

// Run executes the configured scenario and returns the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}
	if a.Config.Version {
		PrintVersion(out)
		return apperrors.ExitSuccess
	}

	ui.InitTheme(a.Config.NoColor)
	logger := logging.NewConsoleLogger(a.ErrWriter, programName, a.Config.LogLevel)
	for _, key := range a.Config.EnvWarnings {
		logger.Warn("ignoring invalid environment value", logging.String("variable", key))
	}

	scenario, err := a.Registry.Get(a.Config.Scenario)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}

	collector, err := metrics.NewCollector(metrics.WithRuntimeMetrics())
	if err != nil {
		logger.Error("metrics setup failed", err)
		return apperrors.ExitErrorGeneric
	}

	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	params := orchestration.Params{
		Workers: a.Config.Workers,
		Steps:   a.Config.Steps,
		Delay:   a.Config.Delay,
		Logger:  logger,
	}
	r := runner{
		scenario:  scenario,
		params:    params,
		collector: collector,
		logger:    logger,
	}

	style, term := a.resolveStyle(out, logger)
	logger.Debug("display selected", logging.String("style", style))

	var res orchestration.Result
	switch style {
	case config.StyleBar:
		res, err = r.withBar(ctx, term, a.Config)
	case config.StyleSpinner:
		res, err = r.withSpinner(ctx, out)
	case config.StyleTUI:
		res, err = r.withDashboard(ctx, out)
	default:
		res, err = r.withoutDisplay(ctx)
	}
	if err != nil {
		logger.Error("display failed", err)
		if res.Err == nil {
			res.Err = err
		}
	}

	rendered, dropped, dedup, failed := collector.Counts()
	cli.DisplaySummary(out, cli.Summary{
		Scenario:      res.Name,
		Duration:      res.Duration,
		FinalProgress: r.final,
		PeakProgress:  r.peak,
		Rendered:      rendered,
		Dropped:       dropped,
		Deduplicated:  dedup,
		Failed:        failed,
		Err:           res.Err,
	})

	if a.Config.MetricsOut != "" {
		if err := a.writeMetrics(collector); err != nil {
			logger.Error("writing metrics failed", err, logging.String("path", a.Config.MetricsOut))
			if res.Err == nil {
				return apperrors.ExitErrorGeneric
			}
		}
	}
	return apperrors.ExitCode(res.Err)
}

// resolveStyle falls back to no display when the output is not a terminal,
// unless a console was injected.
func (a *Application) resolveStyle(out io.Writer, logger logging.Logger) (string, console.Console) {
	if a.console != nil {
		return a.Config.Style, a.console
	}
	f, ok := out.(*os.File)
	if !ok {
		if a.Config.Style != config.StyleNone {
			logger.Info("output is not a terminal, progress display disabled")
		}
		return config.StyleNone, nil
	}
	t := console.NewTerminal(f)
	if !t.IsTerminal() && a.Config.Style != config.StyleNone {
		logger.Info("output is not a terminal, progress display disabled")
		return config.StyleNone, nil
	}
	return a.Config.Style, t
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, a.Registry.Names()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

func (a *Application) writeMetrics(c *metrics.Collector) error {
	if a.Config.MetricsOut == "-" {
		return c.WriteText(a.ErrWriter)
	}
	f, err := os.Create(a.Config.MetricsOut)
	if err != nil {
		return fmt.Errorf("create metrics file: %w", err)
	}
	if err := c.WriteText(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// runner executes one scenario behind a display.
type runner struct {
	scenario  orchestration.Scenario
	params    orchestration.Params
	collector *metrics.Collector
	logger    logging.Logger

	// final is the root progress when the scenario returned, before the
	// root is completed; peak is the highest progress seen up to then.
	final float64
	peak  float64
	track *peakTracker
}

// observe attaches the metrics, logging and peak observers to root.
func (r *runner) observe(root *progress.Node) error {
	if _, err := root.Subscribe(r.collector); err != nil {
		return err
	}
	if _, err := root.Subscribe(progress.NewLoggingObserver(r.logger, logStep)); err != nil {
		return err
	}
	t, err := trackPeak(root)
	if err != nil {
		return err
	}
	r.track = t
	return nil
}

// settle records the final and peak progress of root once the scenario has
// returned.
func (r *runner) settle(root *progress.Node) {
	r.final = root.Progress()
	r.peak = r.final
	if r.track != nil {
		r.peak = max(r.track.finish(root, r.logger), r.final)
	}
}

func (r *runner) coalescer(renderer progress.Renderer) *progress.Coalescer {
	return progress.NewCoalescer(renderer, progress.WithStats(r.collector), progress.WithLogger(r.logger))
}

// runCoalesced runs the scenario on a fresh root feeding renderer, then
// completes the root and draws the final snapshot.
func (r *runner) runCoalesced(ctx context.Context, renderer progress.Renderer) (orchestration.Result, error) {
	root := progress.NewRoot()
	co := r.coalescer(renderer)
	if _, err := root.Subscribe(co); err != nil {
		return orchestration.Result{Name: r.scenario.Name()}, err
	}
	if err := r.observe(root); err != nil {
		return orchestration.Result{Name: r.scenario.Name()}, err
	}
	res := orchestration.ExecuteScenario(ctx, r.scenario, root, r.params)
	r.settle(root)
	root.Dispose()
	co.Flush()
	return res, nil
}

func (r *runner) withBar(ctx context.Context, c console.Console, cfg config.AppConfig) (orchestration.Result, error) {
	b, err := bar.New(c,
		bar.WithWidth(cfg.Width),
		bar.WithStatusOnSeparateLine(cfg.StatusLine),
		bar.WithStats(r.collector),
		bar.WithLogger(r.logger),
	)
	if err != nil {
		return orchestration.Result{Name: r.scenario.Name()}, err
	}
	if err := r.observe(b.Progress()); err != nil {
		return orchestration.Result{Name: r.scenario.Name()}, err
	}
	res := orchestration.ExecuteScenario(ctx, r.scenario, b.Progress(), r.params)
	r.settle(b.Progress())
	return res, b.Close()
}

func (r *runner) withSpinner(ctx context.Context, out io.Writer) (orchestration.Result, error) {
	s := cli.NewSpinnerRenderer(out)
	res, err := r.runCoalesced(ctx, s)
	s.Stop(cli.FormatSuffix(progress.Snapshot{Progress: r.final}))
	return res, err
}

func (r *runner) withDashboard(ctx context.Context, out io.Writer) (orchestration.Result, error) {
	var res orchestration.Result
	err := tui.Run(ctx, tui.Options{Scenario: r.scenario.Name(), Version: Version, Input: os.Stdin, Output: out},
		func(ctx context.Context, renderer progress.Renderer) error {
			var err error
			res, err = r.runCoalesced(ctx, renderer)
			if err != nil {
				return err
			}
			return res.Err
		})
	if res.Name == "" {
		res.Name = r.scenario.Name()
	}
	if err != nil && !errors.Is(err, res.Err) {
		return res, err
	}
	return res, nil
}

func (r *runner) withoutDisplay(ctx context.Context) (orchestration.Result, error) {
	return r.runCoalesced(ctx, progress.RendererFunc(func(progress.Snapshot) error { return nil }))
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
