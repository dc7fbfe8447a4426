// This file contains environment variable utilities for configuration override.

package config

import (
	"flag"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/agbru/triadbench/internal/errors"
)

// Thread-count variables honoured when --threads is not given. The larger
// value wins when both are set.
const (
	EnvOMPThreads   = "OMP_NUM_THREADS"
	EnvRayonThreads = "RAYON_NUM_THREADS"
)

// ─────────────────────────────────────────────────────────────────────────────
// Environment Variable Utilities
// ─────────────────────────────────────────────────────────────────────────────

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
// Each entry maps an env key (without the TRIADBENCH_ prefix) to the CLI flag
// name(s) it corresponds to and a function that applies the env value.
// Unparseable values are ignored and the default stays in effect.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*AppConfig, string)
}

// envOverrides is the declarative table of all environment variable overrides.
var envOverrides = []envOverride{
	// Numeric overrides
	{"THREADS", []string{"threads", "t"}, func(c *AppConfig, v string) {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Threads = parsed
			c.ThreadsSource = EnvPrefix + "THREADS"
		}
	}},
	{"NTIMES", []string{"ntimes"}, func(c *AppConfig, v string) {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.NTimes = parsed
		}
	}},

	// Duration overrides
	{"TIMEOUT", []string{"timeout"}, func(c *AppConfig, v string) {
		if parsed, err := time.ParseDuration(v); err == nil {
			c.Timeout = parsed
		}
	}},

	// String overrides
	{"LOG_LEVEL", []string{"log-level"}, func(c *AppConfig, v string) {
		c.LogLevel = v
	}},
	{"LOG_FORMAT", []string{"log-format"}, func(c *AppConfig, v string) {
		c.LogFormat = v
	}},
	{"GC", []string{"gc"}, func(c *AppConfig, v string) {
		c.GCMode = v
	}},
	{"METRICS_ADDR", []string{"metrics-addr"}, func(c *AppConfig, v string) {
		c.MetricsAddr = v
	}},

	// Boolean overrides
	{"VERBOSE", []string{"v", "verbose"}, func(c *AppConfig, v string) {
		c.Verbose = parseBoolEnv(v, c.Verbose)
	}},
	{"NO_COLOR", []string{"no-color"}, func(c *AppConfig, v string) {
		c.NoColor = parseBoolEnv(v, c.NoColor)
	}},
}

// parseBoolEnv parses a boolean environment variable value.
// Accepts "true", "1", "yes" as true; "false", "0", "no" as false (case-insensitive).
// Returns defaultVal if the value is not recognized.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// applyEnvOverrides applies environment variable values to the configuration
// for any flags that were not explicitly set on the command line.
// This implements the priority: CLI flags > Environment variables > Defaults.
//
// Supported environment variables (all prefixed with TRIADBENCH_):
//   - THREADS, NTIMES, TIMEOUT, LOG_LEVEL, LOG_FORMAT, GC, METRICS_ADDR,
//     VERBOSE, NO_COLOR
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet, lookupEnv func(string) (string, bool)) {
	for _, o := range envOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		if val, ok := lookupEnv(EnvPrefix + o.envKey); ok && val != "" {
			o.apply(config, val)
		}
	}
}

func (c AppConfig) threadsFromEnvOverride() bool {
	return c.ThreadsSource == EnvPrefix+"THREADS"
}

// ResolveThreads reads the degree of parallelism from OMP_NUM_THREADS and
// RAYON_NUM_THREADS. An OpenMP nesting list such as "8,2" contributes its
// first entry. Unset or empty variables are skipped; when neither is set the
// result is 1.
//
// Returns:
//   - int: The resolved thread count.
//   - string: The variable it came from, or "default".
//   - error: A ConfigError when a set variable is not a positive integer.
func ResolveThreads(lookupEnv func(string) (string, bool)) (int, string, error) {
	threads, source := 1, "default"
	for _, key := range []string{EnvOMPThreads, EnvRayonThreads} {
		raw, ok := lookupEnv(key)
		raw = strings.TrimSpace(raw)
		if !ok || raw == "" {
			continue
		}
		first, _, _ := strings.Cut(raw, ",")
		n, err := strconv.Atoi(strings.TrimSpace(first))
		if err != nil || n < 1 {
			return 0, key, apperrors.NewConfigError("invalid %s %q: want a positive integer", key, raw)
		}
		if source == "default" || n > threads {
			threads, source = n, key
		}
	}
	return threads, source, nil
}
