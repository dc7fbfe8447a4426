// Package app wires configuration, instrumentation and the benchmark runner
// into the triadbench command.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/agbru/triadbench/internal/bench"
	"github.com/agbru/triadbench/internal/cli"
	"github.com/agbru/triadbench/internal/config"
	apperrors "github.com/agbru/triadbench/internal/errors"
	"github.com/agbru/triadbench/internal/logging"
	"github.com/agbru/triadbench/internal/memory"
	"github.com/agbru/triadbench/internal/metrics"
	"github.com/agbru/triadbench/internal/report"
	"github.com/agbru/triadbench/internal/server"
	"github.com/agbru/triadbench/internal/sysmon"
	"github.com/agbru/triadbench/internal/telemetry"
	"github.com/agbru/triadbench/internal/triad"
	"github.com/agbru/triadbench/internal/ui"
)

// Version is overridden at build time with
// -ldflags "-X github.com/agbru/triadbench/internal/app.Version=v1.2.3".
var Version = "dev"

// systemSampleInterval bounds how often the verbose run samples host load.
const systemSampleInterval = 250 * time.Millisecond

// Application represents the triadbench application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer

	runnerOpts   []bench.Option
	describeHost func() sysmon.Host
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithRunnerOptions appends options to the benchmark runner, after the
// ones the application derives from its configuration.
func WithRunnerOptions(opts ...bench.Option) AppOption {
	return func(a *Application) { a.runnerOpts = append(a.runnerOpts, opts...) }
}

// WithHostDescriber replaces the host probe used by the verbose summary.
func WithHostDescriber(fn func() sysmon.Host) AppOption {
	return func(a *Application) { a.describeHost = fn }
}

// New creates a new Application instance by parsing command-line arguments
// and the process environment.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	return NewWithEnv(args, errWriter, os.LookupEnv, opts...)
}

// NewWithEnv is New with an explicit environment accessor.
func NewWithEnv(args []string, errWriter io.Writer, lookupEnv func(string) (string, bool), opts ...AppOption) (*Application, error) {
	app := &Application{
		ErrWriter:    errWriter,
		describeHost: sysmon.DescribeHost,
	}
	for _, opt := range opts {
		opt(app)
	}

	programName := "triadbench"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, lookupEnv)
	if err != nil {
		return nil, err
	}
	app.Config = cfg
	return app, nil
}

// Run executes the benchmark and writes the result line to out.
//
// Returns:
//   - int: The process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.ShowVersion {
		PrintVersion(out)
		return apperrors.ExitSuccess
	}

	ui.InitTheme(a.Config.NoColor)
	logger := a.newLogger()

	strategy, err := triad.ForType(a.Config.TestType)
	if err != nil {
		return a.fail(err)
	}
	gcMode, err := memory.ParseGCMode(a.Config.GCMode)
	if err != nil {
		return a.fail(err)
	}

	if a.Config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.Config.Timeout)
		defer cancel()
	}
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	restore := config.EnsureParallelism(a.Config.Threads)
	defer restore()
	if config.Oversubscribed(a.Config.Threads) {
		cli.PrintWarning(a.ErrWriter, "%d threads exceed the %d logical CPUs; units will time-share cores",
			a.Config.Threads, runtime.NumCPU())
	}

	m := metrics.NewMetrics()
	if a.Config.MetricsAddr != "" {
		srv := server.New(m, logger)
		if err := srv.Start(a.Config.MetricsAddr); err != nil {
			return a.fail(err)
		}
		defer srv.Shutdown()
	}

	observer, stopProgress := cli.NewObserver(a.ErrWriter, a.Config.Verbose)
	opts := []bench.Option{
		bench.WithLogger(logger),
		bench.WithMetrics(m),
		bench.WithTracer(telemetry.New(nil)),
		bench.WithObserver(observer),
	}
	if a.Config.Verbose {
		opts = append(opts, bench.WithSystemSampling(systemSampleInterval))
	}
	opts = append(opts, a.runnerOpts...)

	outcome, err := bench.NewRunner(opts...).RunDetailed(ctx, bench.Params{
		Strategy: strategy,
		Size:     a.Config.N,
		Threads:  a.Config.Threads,
		NTimes:   a.Config.NTimes,
		GCMode:   gcMode,
	})
	stopProgress()
	if err != nil {
		return a.fail(a.classify(err))
	}

	if err := report.Write(out, outcome.Result); err != nil {
		return a.fail(apperrors.WrapError(err, "writing result"))
	}

	if a.Config.Verbose {
		cli.PrintSummary(a.ErrWriter, cli.Summary{
			Outcome:       outcome,
			Host:          a.describeHost(),
			ThreadsSource: a.Config.ThreadsSource,
			Version:       Version,
		})
	}
	return apperrors.ExitSuccess
}

func (a *Application) newLogger() logging.Logger {
	level, err := logging.ParseLevel(a.Config.EffectiveLogLevel())
	if err != nil {
		level, _ = logging.ParseLevel("")
	}
	return logging.New(a.ErrWriter, a.Config.LogFormat, level)
}

// classify turns an expired --timeout into a TimeoutError.
func (a *Application) classify(err error) error {
	if a.Config.Timeout > 0 && errors.Is(err, context.DeadlineExceeded) {
		return apperrors.TimeoutError{Operation: "benchmark", Limit: a.Config.Timeout}
	}
	return err
}

// fail reports err on the error writer and maps it to an exit code.
func (a *Application) fail(err error) int {
	cli.PrintError(a.ErrWriter, err)
	return apperrors.ExitCodeFor(err)
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

// PrintVersion writes the program version.
func PrintVersion(out io.Writer) {
	fmt.Fprintf(out, "triadbench %s %s/%s %s\n", Version, runtime.GOOS, runtime.GOARCH, runtime.Version())
}
