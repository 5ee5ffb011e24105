// Package main provides the CLI entry point for took.
package main

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	internalconfig "github.com/took-sh/took/internal/config"
	"github.com/took-sh/took/internal/options"
	"github.com/took-sh/took/internal/xdg"
	"github.com/took-sh/took/pkg/config"
	"github.com/took-sh/took/pkg/logger"
	"github.com/took-sh/took/pkg/timer"
)

// Exit statuses for usage problems. The normal path exits with the
// child's own status.
const (
	// ExitInvalidOption is returned for an unknown or malformed option.
	ExitInvalidOption = 2

	// ExitMissingOperand is returned when no command is given.
	ExitMissingOperand = 3
)

func main() {
	os.Exit(mainWithExitCode())
}

func mainWithExitCode() int {
	err := rootCmd.Execute()
	if err == nil {
		return 0
	}

	var ec *exitCodeError
	if errors.As(err, &ec) {
		return ec.code
	}

	fmt.Fprintf(os.Stderr, "took: %v\n", err)

	return 1
}

var rootCmd = &cobra.Command{
	Use:   "took [options] [--] command [args...]",
	Short: "Measure the wall-clock duration of a command",
	Long: `took runs a command, measures its wall-clock duration with microsecond
precision, and reports the elapsed time on stderr (or appends it to a
file) while passing the command's exit status and output streams
through unmodified.

Options:
  -f, --format          human-readable breakdown (1d 02h 03m 4.005s)
  -j, --json            one-line JSON report (wins over --format)
  -o, --output-to FILE  append the report to FILE instead of stderr
  -h, --help            print this help and exit
  -V, --version         print version information and exit

Short flags other than -o may be combined, e.g. -fj. A literal --
ends option parsing.`,
	// The flag grammar (combined clusters, mode-dependent -h/-V, the
	// -- terminator) is owned by the option parser, not cobra.
	// The version subcommand would otherwise make cobra reject the
	// timed command's argv as an unknown subcommand.
	Args:               cobra.ArbitraryArgs,
	DisableFlagParsing: true,
	SilenceUsage:       true,
	SilenceErrors:      true,
	RunE:               runRoot,
	CompletionOptions:  cobra.CompletionOptions{DisableDefaultCmd: true},
}

// exitCodeError carries a specific process exit status out of RunE.
type exitCodeError struct {
	code int
}

func (e *exitCodeError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func runRoot(cmd *cobra.Command, args []string) error {
	parser := options.New(options.ModeTopLevel)

	opts, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "took: %v\n\n%s", err, cmd.UsageString())

		if errors.Is(err, options.ErrMissingCommand) {
			return &exitCodeError{code: ExitMissingOperand}
		}

		return &exitCodeError{code: ExitInvalidOption}
	}

	if opts.ShowHelp {
		return cmd.Help()
	}

	if opts.ShowVersion {
		fmt.Fprint(cmd.OutOrStdout(), versionString())

		return nil
	}

	cfg := loadConfig(cmd)
	applyConfig(opts, cfg)

	log := buildLogger(cfg)

	t, err := timer.New(options.ModeTopLevel,
		timer.WithLogger(log),
		timer.WithStdin(cmd.InOrStdin()),
		timer.WithStdout(cmd.OutOrStdout()),
		timer.WithStderr(cmd.ErrOrStderr()),
	)
	if err != nil {
		return err
	}

	code, err := t.Execute(cmd.Context(), opts)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "took: %v\n", err)

		if code == 0 {
			code = 1
		}
	}

	if code != 0 {
		return &exitCodeError{code: code}
	}

	return nil
}

// loadConfig reads the persistent defaults. Config problems must not
// block a timing run: they degrade to defaults with a note on stderr.
func loadConfig(cmd *cobra.Command) *config.Config {
	cfg, err := internalconfig.NewLoader().Load()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "took: ignoring config: %v\n", err)

		return internalconfig.DefaultConfig()
	}

	return cfg
}

// applyConfig lets the config file provide defaults; flags on the
// command line win.
func applyConfig(opts *options.Options, cfg *config.Config) {
	opts.Format = opts.Format || cfg.Format
	opts.JSON = opts.JSON || cfg.JSON

	if opts.OutputTo == "" {
		opts.OutputTo = cfg.OutputTo
	}
}

//nolint:ireturn // callers only need the interface
func buildLogger(cfg *config.Config) logger.Logger {
	if !cfg.Log.Enabled {
		return logger.NewNopLogger()
	}

	path := cfg.Log.Path
	if path == "" {
		path = xdg.LogFile()
	}

	if err := xdg.EnsureParentDir(path); err != nil {
		return logger.NewNopLogger()
	}

	log, err := logger.NewFileLogger(path, cfg.Log.Debug)
	if err != nil {
		return logger.NewNopLogger()
	}

	return log
}
