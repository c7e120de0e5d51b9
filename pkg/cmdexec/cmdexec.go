// Package cmdexec runs the license-listing command through the user's shell.
// Commands run in their own process group with an optional timeout, and both
// output streams are captured separately so callers can treat diagnostics on
// stderr as a failure.
package cmdexec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// Result holds the captured output streams of a finished command.
//
// Fields:
//   - Stdout: Everything the command wrote to standard output
//   - Stderr: Everything the command wrote to standard error
type Result struct {
	Stdout []byte
	Stderr []byte
}

// getShell returns the user's shell and args to run a command string.
//
// The SHELL environment variable is preferred so the command sees the same
// PATH the user does; otherwise the platform default is used. The shell is
// not started as a login shell since profile scripts may write to stderr.
//
// Returns:
//   - shell: The path to the shell executable
//   - args: The shell arguments needed to execute a command string
func getShell() (shell string, args []string) {
	if sh := os.Getenv("SHELL"); sh != "" {
		return sh, []string{"-c"}
	}
	return getDefaultShell()
}

// waitDelay bounds how long Wait keeps reading pipes held open by orphaned
// grandchildren after the process group was killed.
const waitDelay = 2 * time.Second

// ExecuteWithContextFunc is the function signature for command execution.
//
// Parameters:
//   - ctx: Context for cancellation
//   - command: Command line passed to the shell
//   - dir: Working directory; empty means the current directory
//   - timeoutSeconds: Maximum execution time in seconds (0 for no timeout)
//
// Returns:
//   - Result: Captured stdout and stderr, also populated on failure
//   - error: Start, exit status, timeout or cancellation error
type ExecuteWithContextFunc func(ctx context.Context, command string, dir string, timeoutSeconds int) (Result, error)

// ExecuteWithContext is the command execution function used by the forge.
//
// Tests replace it with a fake to avoid spawning pnpm.
var ExecuteWithContext ExecuteWithContextFunc = executeCommand

// executeCommand executes a command string through the user's shell.
//
// It performs the following operations:
//   - Step 1: Applies the timeout on top of ctx when timeoutSeconds > 0
//   - Step 2: Starts the shell in its own process group inside dir
//   - Step 3: Captures stdout and stderr into separate buffers
//   - Step 4: On timeout or cancellation, kills the whole process group
//
// Parameters:
//   - ctx: Context for cancellation
//   - command: Command line passed to the shell
//   - dir: Working directory; empty means the current directory
//   - timeoutSeconds: Maximum execution time in seconds (0 for no timeout)
//
// Returns:
//   - Result: Captured output
//   - error: Non-nil when the command could not run, exited non-zero, or timed out
func executeCommand(ctx context.Context, command string, dir string, timeoutSeconds int) (Result, error) {
	if strings.TrimSpace(command) == "" {
		return Result{}, fmt.Errorf("empty command")
	}

	if timeoutSeconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(timeoutSeconds)*time.Second)
		defer cancel()
	}

	shell, shellArgs := getShell()
	args := append(shellArgs, command)

	cmd := exec.CommandContext(ctx, shell, args...)
	if dir != "" {
		cmd.Dir = dir
	}
	setProcGroup(cmd)
	cmd.Cancel = func() error { return killProcGroup(cmd) }
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if err == nil {
		return res, nil
	}

	if errors.Is(ctx.Err(), context.DeadlineExceeded) && timeoutSeconds > 0 {
		return res, fmt.Errorf("command timed out after %d seconds: %w", timeoutSeconds, err)
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return res, fmt.Errorf("command cancelled: %w", ctxErr)
	}

	return res, err
}

// Executable returns the program name of a command line: the first
// whitespace-separated argument with surrounding quotes removed.
//
// Parameters:
//   - command: Command line as written in configuration
//
// Returns:
//   - string: Program name, or empty for a blank command
func Executable(command string) string {
	args := SplitArgs(command)
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

// SplitArgs splits a command string into arguments, respecting quotes.
//
// Single and double quoted sections form one argument even when they contain
// spaces. Outside single quotes a backslash escapes the next character.
//
// Parameters:
//   - command: Command string to split
//
// Returns:
//   - []string: Parsed arguments
func SplitArgs(command string) []string {
	var args []string
	var current strings.Builder
	inQuote := false
	quoteChar := rune(0)
	escaped := false

	for _, r := range command {
		if escaped {
			current.WriteRune(r)
			escaped = false
			continue
		}
		if r == '\\' && (!inQuote || quoteChar == '"') {
			escaped = true
			continue
		}

		if r == '"' || r == '\'' {
			switch {
			case !inQuote:
				inQuote = true
				quoteChar = r
				continue
			case r == quoteChar:
				inQuote = false
				continue
			}
		}

		if !inQuote && (r == ' ' || r == '\t') {
			if current.Len() > 0 {
				args = append(args, current.String())
				current.Reset()
			}
			continue
		}

		current.WriteRune(r)
	}

	if escaped {
		current.WriteRune('\\')
	}
	if current.Len() > 0 {
		args = append(args, current.String())
	}

	return args
}
