// This file contains environment variable utilities for configuration override.

package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// EnvPrefix prefixes every environment variable read by the configuration.
const EnvPrefix = "PROGRESSDEMO_"

// isFlagSet checks if a flag was explicitly set on the command line.
// This is used to determine whether to apply environment variable overrides.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isFlagSetAny checks if any of the specified flags were explicitly set.
// This is useful for aliased flags where either the short or long form may be used.
func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	for _, name := range names {
		if isFlagSet(fs, name) {
			return true
		}
	}
	return false
}

// envOverride declares a single environment variable override.
// Each entry maps an env key (without the PROGRESSDEMO_ prefix) to the CLI
// flag name(s) it corresponds to and a function that applies the env value.
// apply reports whether the value could be parsed.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*AppConfig, string) bool
}

// envOverrides is the declarative table of all environment variable overrides.
var envOverrides = []envOverride{
	// Numeric overrides
	{"WORKERS", []string{"workers"}, func(c *AppConfig, v string) bool {
		parsed, err := strconv.Atoi(v)
		if err == nil {
			c.Workers = parsed
		}
		return err == nil
	}},
	{"STEPS", []string{"steps"}, func(c *AppConfig, v string) bool {
		parsed, err := strconv.Atoi(v)
		if err == nil {
			c.Steps = parsed
		}
		return err == nil
	}},
	{"WIDTH", []string{"width"}, func(c *AppConfig, v string) bool {
		parsed, err := strconv.ParseFloat(v, 64)
		if err == nil {
			c.Width = parsed
		}
		return err == nil
	}},

	// Duration overrides
	{"DELAY", []string{"delay"}, func(c *AppConfig, v string) bool {
		parsed, err := time.ParseDuration(v)
		if err == nil {
			c.Delay = parsed
		}
		return err == nil
	}},
	{"TIMEOUT", []string{"timeout"}, func(c *AppConfig, v string) bool {
		parsed, err := time.ParseDuration(v)
		if err == nil {
			c.Timeout = parsed
		}
		return err == nil
	}},

	// String overrides
	{"SCENARIO", []string{"scenario"}, func(c *AppConfig, v string) bool {
		c.Scenario = v
		return true
	}},
	{"STYLE", []string{"style"}, func(c *AppConfig, v string) bool {
		c.Style = v
		return true
	}},
	{"LOG_LEVEL", []string{"log-level"}, func(c *AppConfig, v string) bool {
		c.LogLevel = v
		return true
	}},
	{"METRICS_OUT", []string{"metrics-out"}, func(c *AppConfig, v string) bool {
		c.MetricsOut = v
		return true
	}},

	// Boolean overrides
	{"STATUS_LINE", []string{"status-line"}, func(c *AppConfig, v string) bool {
		return parseBoolEnv(v, &c.StatusLine)
	}},
	{"NO_COLOR", []string{"no-color"}, func(c *AppConfig, v string) bool {
		return parseBoolEnv(v, &c.NoColor)
	}},
}

// parseBoolEnv parses a boolean environment variable value into dst.
// Accepts "true", "1", "yes" as true; "false", "0", "no" as false (case-insensitive).
// dst is left alone when the value is not recognized.
func parseBoolEnv(val string, dst *bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		*dst = true
	case "false", "0", "no":
		*dst = false
	default:
		return false
	}
	return true
}

// applyEnvOverrides applies environment variable values to the configuration
// for any flags that were not explicitly set on the command line.
// This implements the priority: CLI flags > Environment variables > Defaults.
// It returns the keys whose values could not be parsed; those keep the
// flag default.
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) []string {
	var invalid []string
	for _, o := range envOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			if !o.apply(config, val) {
				invalid = append(invalid, EnvPrefix+o.envKey)
			}
		}
	}
	return invalid
}
