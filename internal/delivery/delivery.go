package delivery

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/oshokin/provision/internal/config"
	"github.com/oshokin/provision/internal/logger"
)

// Deliverer executes an ordered command sequence.
type Deliverer interface {
	Deliver(ctx context.Context, commands []string) error
}

// CommandError reports the command that stopped a delivery.
type CommandError struct {
	// Index is the zero-based position of the failed command.
	Index int
	// Command is the failed command line.
	Command string
	// Err is the underlying failure.
	Err error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command #%d %q: %v", e.Index+1, e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// errEmptyCommand is returned for blank entries in a sequence.
var errEmptyCommand = errors.New("empty command")

// Shell runs every command as `<Path> -c <command>`.
type Shell struct {
	// Path is the shell binary. config.DefaultShell is used when empty.
	Path string
	// Dir is the working directory; the current one when empty.
	Dir string
	// Stdout and Stderr receive command output; os.Stdout/os.Stderr when nil.
	Stdout io.Writer
	Stderr io.Writer
}

// Deliver runs the commands in order and stops at the first failure.
func (s *Shell) Deliver(ctx context.Context, commands []string) error {
	shell := s.Path
	if shell == "" {
		shell = config.DefaultShell
	}

	for i, command := range commands {
		if err := ctx.Err(); err != nil {
			return &CommandError{Index: i, Command: command, Err: err}
		}

		if command == "" {
			return &CommandError{Index: i, Command: command, Err: errEmptyCommand}
		}

		logger.InfoKV(ctx, "Running command", "step", i+1, "of", len(commands), "command", command)

		//nolint:gosec // Running declared commands is the whole point.
		cmd := exec.CommandContext(ctx, shell, "-c", command)
		cmd.Dir = s.Dir
		cmd.Stdout = writerOr(s.Stdout, os.Stdout)
		cmd.Stderr = writerOr(s.Stderr, os.Stderr)

		if err := cmd.Run(); err != nil {
			logger.ErrorKV(ctx, "Command failed", "step", i+1, "command", command, "error", err)

			return &CommandError{Index: i, Command: command, Err: err}
		}
	}

	return nil
}

// Printer writes the commands one per line instead of running them.
type Printer struct {
	Out io.Writer
}

// Deliver prints the commands.
func (p *Printer) Deliver(_ context.Context, commands []string) error {
	out := writerOr(p.Out, os.Stdout)

	for _, command := range commands {
		if _, err := fmt.Fprintln(out, command); err != nil {
			return fmt.Errorf("print command: %w", err)
		}
	}

	return nil
}

func writerOr(w, fallback io.Writer) io.Writer {
	if w == nil {
		return fallback
	}

	return w
}
