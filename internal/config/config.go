// Package config parses and validates the progressdemo command line.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	apperrors "github.com/agbru/hprogress/internal/errors"
)

// Display styles.
const (
	StyleBar     = "bar"
	StyleSpinner = "spinner"
	StyleTUI     = "tui"
	StyleNone    = "none"
)

// Defaults.
const (
	DefaultScenario = "demo"
	DefaultSteps    = 25
	DefaultDelay    = 40 * time.Millisecond
	DefaultStyle    = StyleBar
	DefaultWidth    = 0.6
	DefaultTimeout  = 2 * time.Minute
	DefaultLogLevel = "warn"
)

var (
	styles    = []string{StyleBar, StyleSpinner, StyleTUI, StyleNone}
	logLevels = []string{"debug", "info", "warn", "error"}
	shells    = []string{"bash", "zsh", "fish"}
)

// AppConfig holds the parsed command line.
type AppConfig struct {
	Scenario   string
	Workers    int
	Steps      int
	Delay      time.Duration
	Style      string
	Width      float64
	StatusLine bool
	Timeout    time.Duration
	LogLevel   string
	MetricsOut string
	NoColor    bool
	Completion string
	Version    bool

	// EnvWarnings lists environment variables whose values were ignored.
	EnvWarnings []string
}

// ParseConfig parses args (without the program name). Flags win over
// PROGRESSDEMO_ environment variables, which win over defaults. scenarios
// lists the accepted --scenario values. Usage and parse errors are written
// to errorOutput; -h returns flag.ErrHelp.
func ParseConfig(programName string, args []string, errorOutput io.Writer, scenarios []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorOutput)

	cfg := AppConfig{}
	fs.StringVar(&cfg.Scenario, "scenario", DefaultScenario, fmt.Sprintf("Workload to run (%s).", strings.Join(scenarios, ", ")))
	fs.IntVar(&cfg.Workers, "workers", EstimateDefaultWorkers(), "Concurrent workers for the workers scenario.")
	fs.IntVar(&cfg.Steps, "steps", DefaultSteps, "Reports per worker.")
	fs.DurationVar(&cfg.Delay, "delay", DefaultDelay, "Base pause between reports.")
	fs.StringVar(&cfg.Style, "style", DefaultStyle, "Progress display (bar, spinner, tui, none).")
	fs.Float64Var(&cfg.Width, "width", DefaultWidth, "Bar width as a ratio of the terminal width, in [0,1].")
	fs.BoolVar(&cfg.StatusLine, "status-line", false, "Show the status text on its own line below the bar.")
	fs.DurationVar(&cfg.Timeout, "timeout", DefaultTimeout, "Maximum run time.")
	fs.StringVar(&cfg.LogLevel, "log-level", DefaultLogLevel, "Log verbosity (debug, info, warn, error).")
	fs.StringVar(&cfg.MetricsOut, "metrics-out", "", "Write Prometheus text metrics to this file after the run (- for stderr).")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colors.")
	fs.StringVar(&cfg.Completion, "completion", "", "Print a completion script (bash, zsh, fish) and exit.")
	fs.BoolVar(&cfg.Version, "version", false, "Show version information.")
	fs.BoolVar(&cfg.Version, "V", false, "Show version information (shorthand).")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return cfg, err
		}
		return cfg, apperrors.NewConfigError("%v", err)
	}
	if fs.NArg() > 0 {
		return cfg, apperrors.NewConfigError("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	cfg.EnvWarnings = applyEnvOverrides(&cfg, fs)
	if err := cfg.Validate(scenarios); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks value ranges and enumerations. An out-of-range width
// also matches apperrors.ErrInvalidArgument.
func (c AppConfig) Validate(scenarios []string) error {
	switch {
	case len(scenarios) > 0 && !slices.Contains(scenarios, c.Scenario):
		return apperrors.NewConfigError("unknown scenario %q (available: %s)", c.Scenario, strings.Join(scenarios, ", "))
	case c.Workers < 1:
		return apperrors.NewConfigError("--workers must be at least 1, got %d", c.Workers)
	case c.Steps < 1:
		return apperrors.NewConfigError("--steps must be at least 1, got %d", c.Steps)
	case c.Delay < 0:
		return apperrors.NewConfigError("--delay must not be negative, got %s", c.Delay)
	case !(c.Width >= 0 && c.Width <= 1):
		return widthError{width: c.Width}
	case !slices.Contains(styles, c.Style):
		return apperrors.NewConfigError("unknown style %q (available: %s)", c.Style, strings.Join(styles, ", "))
	case c.Timeout <= 0:
		return apperrors.NewConfigError("--timeout must be positive, got %s", c.Timeout)
	case !slices.Contains(logLevels, strings.ToLower(c.LogLevel)):
		return apperrors.NewConfigError("unknown log level %q (available: %s)", c.LogLevel, strings.Join(logLevels, ", "))
	case c.Completion != "" && !slices.Contains(shells, c.Completion):
		return apperrors.NewConfigError("unsupported shell %q (available: %s)", c.Completion, strings.Join(shells, ", "))
	}
	return nil
}

// widthError is a configuration error that is also an invalid argument.
type widthError struct {
	width float64
}

func (e widthError) Error() string {
	return fmt.Sprintf("--width must be in [0,1], got %v", e.width)
}

func (e widthError) Is(target error) bool {
	return target == apperrors.ErrInvalidArgument
}

func (e widthError) As(target any) bool {
	if ce, ok := target.(*apperrors.ConfigError); ok {
		*ce = apperrors.ConfigError{Message: e.Error()}
		return true
	}
	return false
}
