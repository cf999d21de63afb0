//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"github.com/oshokin/ota-zip/internal/logger"
)

// waitDelay bounds how long Run waits for output pipes after the child is killed,
// in case a grandchild keeps them open.
const waitDelay = 2 * time.Second

var errProgramRequired = errors.New("program must be provided")

// Command is one external invocation: a program and its arguments.
// It is executed directly, without a shell.
type Command struct {
	// Path is the executable to run.
	Path string
	// Args are passed to the executable verbatim.
	Args []string
}

// NewCommand builds a Command for path with args.
func NewCommand(path string, args ...string) *Command {
	return &Command{
		Path: path,
		Args: args,
	}
}

// String renders the command line for logs and errors only.
func (c *Command) String() string {
	return strings.Join(append([]string{c.Path}, c.Args...), " ")
}

// Result is the captured outcome of a finished invocation.
type Result struct {
	// Stdout is everything the process wrote to standard output.
	Stdout string
	// Stderr is everything the process wrote to standard error.
	Stderr string
	// ExitCode is the process exit status.
	ExitCode int
}

// CommandError reports an invocation that exited with a non-zero status.
type CommandError struct {
	// Command is the rendered command line.
	Command string
	// ExitCode is the non-zero exit status.
	ExitCode int
	// Stderr is the captured error output.
	Stderr string
}

// Error implements error.
func (e *CommandError) Error() string {
	return fmt.Sprintf("failed to run command '%s' (exit code %d):\n%s", e.Command, e.ExitCode, e.Stderr)
}

// Run executes c, blocks until it exits and captures its output.
//
// A non-zero exit yields *CommandError. If ctx is cancelled the process is killed
// and the returned error wraps ctx.Err(). A child that died from SIGINT or SIGTERM
// (a terminal Ctrl+C reaches the whole process group, often before ctx is
// cancelled) is reported the same way, wrapping context.Canceled.
// There is no timeout of its own.
func Run(ctx context.Context, c *Command) (*Result, error) {
	if c == nil || c.Path == "" {
		return nil, errProgramRequired
	}

	logger.InfoKV(ctx, "Running", "command", c.String())

	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, c.Path, c.Args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay

	err := cmd.Run()

	result := &Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: cmd.ProcessState.ExitCode(),
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return result, fmt.Errorf("%s interrupted: %w", c.Path, ctxErr)
	}

	if err == nil {
		if result.Stdout != "" {
			logger.DebugKV(ctx, "Command output", "command", c.Path, "stdout", result.Stdout)
		}

		return result, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if sig, ok := interruptSignal(exitErr); ok {
			return result, fmt.Errorf("%s interrupted by %s: %w", c.Path, sig, context.Canceled)
		}

		return result, &CommandError{
			Command:  c.String(),
			ExitCode: exitErr.ExitCode(),
			Stderr:   result.Stderr,
		}
	}

	return nil, fmt.Errorf("start %s: %w", c.Path, err)
}

// interruptSignal reports whether the process was terminated by SIGINT or SIGTERM.
func interruptSignal(exitErr *exec.ExitError) (syscall.Signal, bool) {
	status, ok := exitErr.Sys().(syscall.WaitStatus)
	if !ok || !status.Signaled() {
		return 0, false
	}

	switch sig := status.Signal(); sig {
	case syscall.SIGINT, syscall.SIGTERM:
		return sig, true
	default:
		return 0, false
	}
}
