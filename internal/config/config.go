// Package config parses the command line and environment into an AppConfig.
//
// Resolution order for every setting: CLI flags, then TRIADBENCH_-prefixed
// environment variables, then defaults. The degree of parallelism falls back
// further to OMP_NUM_THREADS and RAYON_NUM_THREADS.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/agbru/triadbench/internal/errors"
	"github.com/agbru/triadbench/internal/logging"
	"github.com/agbru/triadbench/internal/memory"
	"github.com/agbru/triadbench/internal/stats"
	"github.com/agbru/triadbench/internal/triad"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "TRIADBENCH_"

// Log output formats.
const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// TestType selects the execution strategy.
	TestType triad.Type
	// N is the vector length.
	N int
	// Threads is the degree of parallelism.
	Threads int
	// ThreadsSource names where Threads came from, for the verbose summary.
	ThreadsSource string
	// NTimes is the number of timed trials, warm-up included.
	NTimes int
	// Timeout bounds the whole run; zero disables it.
	Timeout time.Duration
	// Verbose prints a summary block on stderr and raises logging to info.
	Verbose bool
	// LogLevel is a zerolog level name; empty means warn, or info when verbose.
	LogLevel string
	// LogFormat is LogFormatConsole or LogFormatJSON.
	LogFormat string
	// GCMode controls the collector during the timed phases.
	GCMode string
	// MetricsAddr, when set, serves Prometheus metrics during the run.
	MetricsAddr string
	// NoColor disables ANSI colors on stderr.
	NoColor bool
	// ShowVersion prints the version and exits.
	ShowVersion bool
}

// Default returns the configuration used when nothing is overridden.
func Default() AppConfig {
	return AppConfig{
		Threads:       1,
		ThreadsSource: "default",
		NTimes:        stats.NTimes,
		LogFormat:     LogFormatConsole,
		GCMode:        string(memory.GCModeAuto),
	}
}

// ParseConfig parses args (without the program name) into an AppConfig.
// Usage problems are reported as ConfigErrors after the usage text has been
// written to errWriter. A --help request returns flag.ErrHelp.
//
// Parameters:
//   - programName: The name shown in usage text.
//   - args: The command-line arguments after the program name.
//   - errWriter: The destination for usage and flag errors.
//   - lookupEnv: Environment accessor, typically os.LookupEnv.
//
// Returns:
//   - AppConfig: The resolved configuration.
//   - error: A ConfigError, flag.ErrHelp, or nil.
func ParseConfig(programName string, args []string, errWriter io.Writer, lookupEnv func(string) (string, bool)) (AppConfig, error) {
	cfg := Default()
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)
	fs.Usage = func() { PrintUsage(errWriter, programName, fs) }

	threads := 0
	fs.IntVar(&threads, "threads", 0, "Degree of parallelism (overrides OMP_NUM_THREADS).")
	fs.IntVar(&threads, "t", 0, "Shorthand for --threads.")
	fs.IntVar(&cfg.NTimes, "ntimes", cfg.NTimes, "Number of timed trials, the first one excluded from statistics.")
	fs.DurationVar(&cfg.Timeout, "timeout", 0, "Abort the run after this duration (0 disables).")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Print a summary block on stderr.")
	fs.BoolVar(&cfg.Verbose, "v", false, "Shorthand for --verbose.")
	fs.StringVar(&cfg.LogLevel, "log-level", "", "Log level: debug, info, warn, error.")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format: console or json.")
	fs.StringVar(&cfg.GCMode, "gc", cfg.GCMode, "GC control during trials: auto, aggressive, disabled.")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address while running.")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output.")
	fs.BoolVar(&cfg.ShowVersion, "version", false, "Print version and exit.")

	positional, err := parseInterleaved(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return cfg, err
		}
		return cfg, apperrors.NewConfigError("%v", err)
	}

	applyEnvOverrides(&cfg, fs, lookupEnv)
	if cfg.ShowVersion {
		return cfg, nil
	}

	if isFlagSetAny(fs, "threads", "t") {
		cfg.Threads, cfg.ThreadsSource = threads, "flag"
	} else if !cfg.threadsFromEnvOverride() {
		n, source, err := ResolveThreads(lookupEnv)
		if err != nil {
			fs.Usage()
			return cfg, err
		}
		cfg.Threads, cfg.ThreadsSource = n, source
	}

	if len(positional) != 2 {
		fs.Usage()
		return cfg, apperrors.NewConfigError("expected 2 arguments <test type> <N>, got %d", len(positional))
	}
	typ, err := strconv.Atoi(positional[0])
	if err != nil {
		fs.Usage()
		return cfg, apperrors.NewConfigError("invalid test type %q", positional[0])
	}
	cfg.TestType = triad.Type(typ)
	cfg.N, err = strconv.Atoi(positional[1])
	if err != nil {
		fs.Usage()
		return cfg, apperrors.NewConfigError("invalid N %q", positional[1])
	}

	if err := cfg.Validate(); err != nil {
		fs.Usage()
		return cfg, err
	}
	return cfg, nil
}

// parseInterleaved parses flags wherever they appear and returns the
// positional arguments in order. Everything after "--" is positional, and so
// is a negative number, so that "-5" reaches validation as N.
func parseInterleaved(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if len(args) > 0 && isNegativeNumber(args[0]) {
			positional = append(positional, args[0])
			args = args[1:]
			continue
		}
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		rest := fs.Args()
		if consumed := len(args) - len(rest); consumed > 0 && args[consumed-1] == "--" {
			return append(positional, rest...), nil
		}
		if len(rest) == 0 {
			return positional, nil
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}
}

func isNegativeNumber(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil && strings.HasPrefix(s, "-")
}

// Validate checks the configuration for consistency.
func (c AppConfig) Validate() error {
	if _, err := triad.ForType(c.TestType); err != nil {
		return err
	}
	if c.N <= 0 {
		return apperrors.NewConfigError("N must be greater than zero, got %d", c.N)
	}
	if limit := memory.MaxVectorLen(triad.VectorCount); c.N > limit {
		return apperrors.NewConfigError("N must not exceed %d, got %d", limit, c.N)
	}
	if c.Threads < 1 {
		return apperrors.NewConfigError("thread count must be at least 1, got %d", c.Threads)
	}
	if c.NTimes < stats.MinTrials {
		return apperrors.NewConfigError("--ntimes must be at least %d, got %d", stats.MinTrials, c.NTimes)
	}
	if c.Timeout < 0 {
		return apperrors.NewConfigError("--timeout must not be negative, got %s", c.Timeout)
	}
	switch c.LogFormat {
	case LogFormatConsole, LogFormatJSON:
	default:
		return apperrors.NewConfigError("invalid --log-format %q (want console or json)", c.LogFormat)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return apperrors.NewConfigError("invalid --log-level %q", c.LogLevel)
	}
	if _, err := memory.ParseGCMode(c.GCMode); err != nil {
		return err
	}
	return nil
}

// EffectiveLogLevel returns the configured level, defaulting to info in
// verbose mode and warn otherwise.
func (c AppConfig) EffectiveLogLevel() string {
	if c.LogLevel != "" {
		return c.LogLevel
	}
	if c.Verbose {
		return "info"
	}
	return "warn"
}

// PrintUsage writes the usage text, followed by the flag defaults when fs
// is non-nil.
func PrintUsage(w io.Writer, programName string, fs *flag.FlagSet) {
	var b strings.Builder
	fmt.Fprintf(&b, "Usage: %s [flags] <test type> <N>\n", programName)
	b.WriteString("Test types:")
	for i, d := range triad.Descriptions {
		sep := ","
		if i == 0 {
			sep = ""
		}
		fmt.Fprintf(&b, "%s %d - %s", sep, i, d)
	}
	b.WriteString("\n")
	b.WriteString("Control number of threads for types 1 and 2 with OMP_NUM_THREADS or RAYON_NUM_THREADS environment variables.\n")
	fmt.Fprint(w, b.String())
	if fs != nil {
		fmt.Fprintln(w, "\nFlags:")
		fs.PrintDefaults()
	}
}
