// Package invoke runs the timed child process and captures its exit
// status without touching its output streams.
package invoke

import (
	"context"
	"io"
	"os"
	"os/exec"
	"syscall"

	"github.com/cockroachdb/errors"

	"github.com/took-sh/took/pkg/logger"
)

// Conventional exit statuses for commands that could not be started.
const (
	// ExitNotExecutable is returned when the command exists but cannot
	// be invoked.
	ExitNotExecutable = 126

	// ExitNotFound is returned when the command cannot be found.
	ExitNotFound = 127
)

const exitStatusRange = 256

// ErrEmptyCommand is returned when the command vector is empty.
var ErrEmptyCommand = errors.New("empty command")

// Invoker executes a command vector as a child process. The child's
// stdin, stdout and stderr are wired straight through; nothing is
// buffered or filtered.
type Invoker struct {
	stdin    io.Reader
	stdout   io.Writer
	stderr   io.Writer
	failFast *FailFast
	log      logger.Logger
}

// Option configures an Invoker.
type Option func(*Invoker)

// WithStdin overrides the child's stdin.
func WithStdin(r io.Reader) Option {
	return func(inv *Invoker) { inv.stdin = r }
}

// WithStdout overrides the child's stdout.
func WithStdout(w io.Writer) Option {
	return func(inv *Invoker) { inv.stdout = w }
}

// WithStderr overrides the child's stderr.
func WithStderr(w io.Writer) Option {
	return func(inv *Invoker) { inv.stderr = w }
}

// WithFailFast attaches the caller's fail-fast state to guard around
// the child.
func WithFailFast(ff *FailFast) Option {
	return func(inv *Invoker) { inv.failFast = ff }
}

// WithLogger sets the diagnostic logger.
func WithLogger(log logger.Logger) Option {
	return func(inv *Invoker) { inv.log = log }
}

// NewInvoker creates an Invoker wired to the process streams unless
// overridden.
func NewInvoker(opts ...Option) *Invoker {
	inv := &Invoker{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		log:    logger.NewNopLogger(),
	}

	for _, opt := range opts {
		opt(inv)
	}

	return inv
}

// Run executes the command vector and returns its exit status. A
// command that cannot be found or started surfaces through the status
// channel (127/126), not as an error. If a fail-fast state is
// attached and active, it is deactivated for the duration of the call
// and restored on every path, including child failure.
func (inv *Invoker) Run(ctx context.Context, command []string) (int, error) {
	if len(command) == 0 {
		return ExitNotExecutable, ErrEmptyCommand
	}

	if inv.failFast != nil {
		was := inv.failFast.Active()
		if was {
			inv.failFast.SetActive(false)
		}

		defer func() {
			if was {
				inv.failFast.SetActive(true)
			}
		}()
	}

	cmd := exec.CommandContext(ctx, command[0], command[1:]...)
	cmd.Stdin = inv.stdin
	cmd.Stdout = inv.stdout
	cmd.Stderr = inv.stderr

	inv.log.Debug("running command", "command", command[0])

	err := cmd.Run()

	code, err := inv.exitStatus(err, command[0])
	inv.log.Debug("command finished", "command", command[0], "exit_code", code)

	return code, err
}

// exitStatus maps the result of cmd.Run onto an exit status.
func (inv *Invoker) exitStatus(err error, name string) (int, error) {
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
			return NormalizeExitCode(128 + int(ws.Signal())), nil
		}

		return NormalizeExitCode(exitErr.ExitCode()), nil
	}

	switch {
	case errors.Is(err, exec.ErrNotFound):
		return ExitNotFound, nil
	case errors.Is(err, os.ErrPermission):
		return ExitNotExecutable, nil
	}

	return ExitNotExecutable, errors.Wrapf(err, "executing %s", name)
}

// NormalizeExitCode wraps an exit status into [0,255] modulo 256, so
// an out-of-range 257 becomes 1.
func NormalizeExitCode(code int) int {
	code %= exitStatusRange
	if code < 0 {
		code += exitStatusRange
	}

	return code
}
