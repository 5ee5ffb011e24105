// Package options turns a raw argument vector into parsed flags and
// the command to be timed.
package options

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Mode selects how the parser treats help and version flags.
type Mode int

const (
	// ModeTopLevel is the standalone CLI: -h and -V short-circuit, and
	// usage problems are hard errors reported before anything runs.
	ModeTopLevel Mode = iota

	// ModeEmbedded is the library entry point: -h and -V parse but are
	// no-ops, and never prevent the command from running.
	ModeEmbedded
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeTopLevel:
		return "top-level"
	case ModeEmbedded:
		return "embedded"
	default:
		return "unknown"
	}
}

// Options is the parsed, immutable flag state for one invocation.
type Options struct {
	Format      bool
	JSON        bool
	OutputTo    string
	ShowHelp    bool
	ShowVersion bool
	Command     []string
}

// Parse error sentinels.
var (
	// ErrUnknownOption marks an unrecognized option token.
	ErrUnknownOption = errors.New("unknown option")

	// ErrMissingValue marks an option that consumes a value but got none.
	ErrMissingValue = errors.New("option requires a value")

	// ErrNotClusterable marks a value-taking option found inside a
	// combined short-flag cluster.
	ErrNotClusterable = errors.New("option cannot be combined")

	// ErrMissingCommand marks an invocation with no command operand.
	ErrMissingCommand = errors.New("missing command operand")
)

// Parser is the flag-parsing state machine. The operating mode is
// fixed at construction rather than inferred from how it was entered.
type Parser struct {
	mode Mode
}

// New creates a Parser for the given mode.
func New(mode Mode) *Parser {
	return &Parser{mode: mode}
}

// Parse consumes args and returns the flag state plus the command
// vector. A leading cluster like "-fjh" is split into its individual
// flags by a single character scan. "-o"/"--output-to" consumes the
// next token and may not appear in a cluster. A literal "--" ends
// option parsing; the first token that is not a recognized option
// begins the command vector, and everything after it is passed through
// verbatim.
func (p *Parser) Parse(args []string) (*Options, error) {
	opts := &Options{}

	i := 0

scan:
	for i < len(args) {
		tok := args[i]

		switch {
		case tok == "--":
			i++

			break scan

		case tok == "--format":
			opts.Format = true

		case tok == "--json":
			opts.JSON = true

		case tok == "--help":
			opts.ShowHelp = true

		case tok == "--version":
			opts.ShowVersion = true

		case tok == "-o" || tok == "--output-to":
			if i+1 >= len(args) {
				return nil, errors.Wrapf(ErrMissingValue, "%s", tok)
			}

			i++
			opts.OutputTo = args[i]

		case strings.HasPrefix(tok, "--"):
			return nil, errors.Wrapf(ErrUnknownOption, "%s", tok)

		case len(tok) > 1 && tok[0] == '-':
			if err := p.parseCluster(tok, opts); err != nil {
				return nil, err
			}

		default:
			// First non-option token begins the command vector.
			break scan
		}

		i++
	}

	opts.Command = args[i:]

	if len(opts.Command) == 0 && !p.shortCircuits(opts) {
		return nil, ErrMissingCommand
	}

	return opts, nil
}

// parseCluster scans the characters of a short-flag token such as "-f"
// or "-fjh" and applies each flag in turn.
func (p *Parser) parseCluster(tok string, opts *Options) error {
	for _, c := range tok[1:] {
		switch c {
		case 'f':
			opts.Format = true
		case 'j':
			opts.JSON = true
		case 'h':
			opts.ShowHelp = true
		case 'V':
			opts.ShowVersion = true
		case 'o':
			return errors.Wrapf(ErrNotClusterable, "-o in %q", tok)
		default:
			return errors.Wrapf(ErrUnknownOption, "-%c", c)
		}
	}

	return nil
}

// shortCircuits reports whether the parsed flags terminate the
// invocation before any command would run, making a missing command
// acceptable. Only top-level help/version do: in embedded mode those
// flags are inert, so a command is always required.
func (p *Parser) shortCircuits(opts *Options) bool {
	return p.mode == ModeTopLevel && (opts.ShowHelp || opts.ShowVersion)
}
