// Package timer is the embeddable execution-timing engine behind the
// took CLI. It parses the same flag grammar as the command line, runs
// the child with the wall clock sampled around it, and emits the
// report, returning the child's exit status as its own.
package timer

import (
	"context"
	"io"
	"os"

	"github.com/took-sh/took/internal/clock"
	"github.com/took-sh/took/internal/invoke"
	"github.com/took-sh/took/internal/options"
	"github.com/took-sh/took/internal/report"
	"github.com/took-sh/took/pkg/logger"
)

// Timer times one child invocation per Run call. It holds no state
// across invocations.
type Timer struct {
	mode    options.Mode
	parser  *options.Parser
	sampler clock.Sampler
	log     logger.Logger

	stdin    io.Reader
	stdout   io.Writer
	stderr   io.Writer
	failFast *invoke.FailFast
}

// Option configures a Timer.
type Option func(*Timer)

// WithSampler replaces the system clock sampler.
func WithSampler(s clock.Sampler) Option {
	return func(t *Timer) { t.sampler = s }
}

// WithLogger sets the diagnostic logger.
func WithLogger(log logger.Logger) Option {
	return func(t *Timer) { t.log = log }
}

// WithStdin overrides the child's stdin.
func WithStdin(r io.Reader) Option {
	return func(t *Timer) { t.stdin = r }
}

// WithStdout overrides the child's stdout.
func WithStdout(w io.Writer) Option {
	return func(t *Timer) { t.stdout = w }
}

// WithStderr overrides the child's stderr and the default report
// destination.
func WithStderr(w io.Writer) Option {
	return func(t *Timer) { t.stderr = w }
}

// WithFailFast attaches the embedding caller's fail-fast state. It is
// saved before the child runs and restored afterwards on every path.
func WithFailFast(ff *invoke.FailFast) Option {
	return func(t *Timer) { t.failFast = ff }
}

// New creates a Timer for the given mode. The host clock is probed
// here: a machine without a usable high-resolution clock fails before
// any measurement is attempted.
func New(mode options.Mode, opts ...Option) (*Timer, error) {
	t := &Timer{
		mode:   mode,
		parser: options.New(mode),
		log:    logger.NewNopLogger(),
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}

	for _, opt := range opts {
		opt(t)
	}

	if t.sampler == nil {
		sampler, err := clock.NewSystemSampler()
		if err != nil {
			return nil, err
		}

		t.sampler = sampler
	}

	return t, nil
}

// Run parses args and times the resulting command. In embedded mode
// the help and version flags parse but do nothing; in top-level mode
// they short-circuit with status 0 and no command is run.
func (t *Timer) Run(ctx context.Context, args []string) (int, error) {
	opts, err := t.parser.Parse(args)
	if err != nil {
		return 0, err
	}

	if t.mode == options.ModeTopLevel && (opts.ShowHelp || opts.ShowVersion) {
		return 0, nil
	}

	return t.Execute(ctx, opts)
}

// Execute times the already-parsed invocation: sample, run, sample,
// format, emit. The child's status is returned even when emitting the
// report fails.
func (t *Timer) Execute(ctx context.Context, opts *options.Options) (int, error) {
	invoker := invoke.NewInvoker(
		invoke.WithStdin(t.stdin),
		invoke.WithStdout(t.stdout),
		invoke.WithStderr(t.stderr),
		invoke.WithFailFast(t.failFast),
		invoke.WithLogger(t.log),
	)

	start := t.sampler.NowMicros()
	code, err := invoker.Run(ctx, opts.Command)
	end := t.sampler.NowMicros()

	if err != nil {
		return code, err
	}

	rep := report.Report{
		ElapsedUS: clock.Elapsed(start, end),
		ExitCode:  code,
		Command:   opts.Command,
	}

	line := report.Render(rep, opts.Format, opts.JSON)
	t.log.Debug("emitting report",
		"elapsed_us", rep.ElapsedUS,
		"exit_code", rep.ExitCode,
		"destination", destinationName(opts.OutputTo),
	)

	if err := t.sinkFor(opts).Emit(line); err != nil {
		t.log.Error("report write failed", "error", err)

		return code, err
	}

	return code, nil
}

// Run parses args in embedded mode and times the command, returning
// the child's exit status. It is the one-call entry point for
// embedding took in a larger program.
func Run(ctx context.Context, args []string, opts ...Option) (int, error) {
	t, err := New(options.ModeEmbedded, opts...)
	if err != nil {
		return 0, err
	}

	return t.Run(ctx, args)
}

//nolint:ireturn // the sink depends on the parsed destination
func (t *Timer) sinkFor(opts *options.Options) report.Sink {
	if opts.OutputTo != "" {
		return report.NewFileSink(opts.OutputTo)
	}

	return report.NewWriterSink(t.stderr)
}

func destinationName(outputTo string) string {
	if outputTo == "" {
		return "stderr"
	}

	return outputTo
}
