package config

import (
	"errors"
	"flag"
	"io"
	"testing"
	"time"

	apperrors "github.com/agbru/hprogress/internal/errors"
)

var testScenarios = []string{"demo", "rollback", "workers"}

func parse(t *testing.T, args ...string) (AppConfig, error) {
	t.Helper()
	return ParseConfig("progressdemo", args, io.Discard, testScenarios)
}

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := parse(t)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.Scenario != DefaultScenario || cfg.Steps != DefaultSteps || cfg.Delay != DefaultDelay ||
		cfg.Style != DefaultStyle || cfg.Width != DefaultWidth || cfg.Timeout != DefaultTimeout ||
		cfg.LogLevel != DefaultLogLevel {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Workers != EstimateDefaultWorkers() {
		t.Errorf("Workers = %d, want %d", cfg.Workers, EstimateDefaultWorkers())
	}
}

func TestParseConfigFlags(t *testing.T) {
	cfg, err := parse(t,
		"--scenario", "workers", "--workers", "3", "--steps", "7", "--delay", "5ms",
		"--style", "spinner", "--width", "0.4", "--status-line", "--timeout", "10s",
		"--log-level", "debug", "--metrics-out", "-", "--no-color", "-V")
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	want := AppConfig{
		Scenario: "workers", Workers: 3, Steps: 7, Delay: 5 * time.Millisecond,
		Style: "spinner", Width: 0.4, StatusLine: true, Timeout: 10 * time.Second,
		LogLevel: "debug", MetricsOut: "-", NoColor: true, Version: true,
	}
	if cfg.Scenario != want.Scenario || cfg.Workers != want.Workers || cfg.Steps != want.Steps ||
		cfg.Delay != want.Delay || cfg.Style != want.Style || cfg.Width != want.Width ||
		cfg.StatusLine != want.StatusLine || cfg.Timeout != want.Timeout || cfg.LogLevel != want.LogLevel ||
		cfg.MetricsOut != want.MetricsOut || cfg.NoColor != want.NoColor || cfg.Version != want.Version {
		t.Errorf("got %+v, want %+v", cfg, want)
	}
}

func TestParseConfigHelp(t *testing.T) {
	_, err := parse(t, "-h")
	if !errors.Is(err, flag.ErrHelp) {
		t.Errorf("error = %v, want flag.ErrHelp", err)
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"--bogus"}},
		{"positional argument", []string{"extra"}},
		{"unknown scenario", []string{"--scenario", "nope"}},
		{"zero workers", []string{"--workers", "0"}},
		{"zero steps", []string{"--steps", "0"}},
		{"negative delay", []string{"--delay", "-1s"}},
		{"unknown style", []string{"--style", "fancy"}},
		{"zero timeout", []string{"--timeout", "0s"}},
		{"unknown log level", []string{"--log-level", "trace"}},
		{"unknown shell", []string{"--completion", "tcsh"}},
		{"width too large", []string{"--width", "1.5"}},
		{"negative width", []string{"--width", "-0.1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(t, tt.args...)
			var ce apperrors.ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("error = %v, want ConfigError", err)
			}
			if apperrors.ExitCode(err) != apperrors.ExitErrorConfig {
				t.Errorf("ExitCode = %d", apperrors.ExitCode(err))
			}
		})
	}
}

func TestWidthIsInvalidArgument(t *testing.T) {
	_, err := parse(t, "--width", "2")
	if !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Errorf("error = %v, want ErrInvalidArgument", err)
	}
	_, err = parse(t, "--style", "fancy")
	if errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Error("style error should not be an invalid argument")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvPrefix+"SCENARIO", "rollback")
	t.Setenv(EnvPrefix+"STEPS", "12")
	t.Setenv(EnvPrefix+"DELAY", "1ms")
	t.Setenv(EnvPrefix+"WIDTH", "0.5")
	t.Setenv(EnvPrefix+"STATUS_LINE", "yes")
	t.Setenv(EnvPrefix+"STYLE", "none")

	cfg, err := parse(t)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.Scenario != "rollback" || cfg.Steps != 12 || cfg.Delay != time.Millisecond ||
		cfg.Width != 0.5 || !cfg.StatusLine || cfg.Style != "none" {
		t.Errorf("env not applied: %+v", cfg)
	}
}

func TestFlagsWinOverEnv(t *testing.T) {
	t.Setenv(EnvPrefix+"STEPS", "12")
	t.Setenv(EnvPrefix+"NO_COLOR", "true")

	cfg, err := parse(t, "--steps", "3", "--no-color=false")
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.Steps != 3 || cfg.NoColor {
		t.Errorf("flags should win: %+v", cfg)
	}
}

func TestInvalidEnvValuesAreReported(t *testing.T) {
	t.Setenv(EnvPrefix+"WORKERS", "many")
	t.Setenv(EnvPrefix+"STATUS_LINE", "maybe")

	cfg, err := parse(t)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.Workers != EstimateDefaultWorkers() || cfg.StatusLine {
		t.Errorf("invalid env values should keep defaults: %+v", cfg)
	}
	if len(cfg.EnvWarnings) != 2 {
		t.Errorf("EnvWarnings = %v", cfg.EnvWarnings)
	}
}

func TestEstimateDefaultWorkers(t *testing.T) {
	if n := EstimateDefaultWorkers(); n < 2 || n > 8 {
		t.Errorf("EstimateDefaultWorkers() = %d", n)
	}
}
