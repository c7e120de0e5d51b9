// Package preflight validates the environment before the license-listing
// command is started: the package manager executable must be resolvable and
// the directory holding the package manifest must exist.
package preflight

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/ajxudir/licenseforge/pkg/cmdexec"
	"github.com/ajxudir/licenseforge/pkg/errors"
	"github.com/ajxudir/licenseforge/pkg/logging"
)

// ValidateResult holds the result of pre-flight validation.
//
// Fields:
//   - Errors: Validation failures that prevent the run
//   - Warnings: Conditions worth reporting that do not prevent the run
type ValidateResult struct {
	Errors   []*errors.ValidationError
	Warnings []string
}

// HasErrors returns true if there are validation errors.
func (r *ValidateResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// ErrorMessage returns a formatted error message for all validation errors.
//
// Returns:
//   - string: Multi-line message with a header and one entry per error; empty if no errors
func (r *ValidateResult) ErrorMessage() string {
	if len(r.Errors) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("Pre-flight validation failed:\n")
	for _, err := range r.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Err returns the first validation error, or nil when validation passed.
//
// The first error is returned as is so callers can inspect it with
// errors.IsValidationError and map it to the configuration exit code.
func (r *ValidateResult) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	return r.Errors[0]
}

// Checker runs the pre-flight checks.
//
// LookPath and Stat default to exec.LookPath and os.Stat; ShellCheck defaults
// to running 'command -v' through the user's shell. Tests replace them.
type Checker struct {
	Logger     logging.Logger
	LookPath   func(file string) (string, error)
	Stat       func(name string) (os.FileInfo, error)
	ShellCheck func(cmd string) bool
}

// NewChecker creates a Checker using the real environment.
//
// Parameters:
//   - logger: Destination for debug output; nil discards it
//
// Returns:
//   - *Checker: Ready to use checker
func NewChecker(logger logging.Logger) *Checker {
	return &Checker{
		Logger:     logging.OrNop(logger),
		LookPath:   exec.LookPath,
		Stat:       os.Stat,
		ShellCheck: commandExistsInShell,
	}
}

// Validate checks that command can be started for the manifest at source.
//
// It performs the following operations:
//   - Step 1: Extracts the executable from the command line
//   - Step 2: Looks it up in PATH, then through the shell
//   - Step 3: Checks that the directory containing source exists
//   - Step 4: Warns when source itself does not exist
//
// Parameters:
//   - command: The license-listing command line
//   - source: Path of the package manifest
//
// Returns:
//   - *ValidateResult: Result containing any validation errors; never nil
func (c *Checker) Validate(command, source string) *ValidateResult {
	result := &ValidateResult{}

	exe := cmdexec.Executable(command)
	if exe == "" {
		result.Errors = append(result.Errors, errors.NewConfigValidationError("command", "must not be empty"))
	} else if err := c.validateCommand(exe); err != nil {
		result.Errors = append(result.Errors, err)
	}

	dir := filepath.Dir(source)
	info, err := c.Stat(dir)
	switch {
	case err != nil:
		ve := errors.NewConfigValidationError("source", fmt.Sprintf("directory %s is not accessible: %v", dir, err))
		ve.Expected = "path of a package.json inside an existing directory"
		result.Errors = append(result.Errors, ve)
	case !info.IsDir():
		ve := errors.NewConfigValidationError("source", fmt.Sprintf("%s is not a directory", dir))
		ve.Expected = "path of a package.json inside an existing directory"
		result.Errors = append(result.Errors, ve)
	default:
		if _, err := c.Stat(source); err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("package manifest %s not found", source))
		}
	}

	c.Logger.Debugf("Preflight: %d errors, %d warnings", len(result.Errors), len(result.Warnings))
	return result
}

// validateCommand checks if a command exists in PATH or in the shell.
//
// Parameters:
//   - cmd: The executable name or path (e.g., "pnpm")
//
// Returns:
//   - *errors.ValidationError: Error with resolution hint if not found; nil if found
func (c *Checker) validateCommand(cmd string) *errors.ValidationError {
	c.Logger.Debugf("Preflight: checking command %q", cmd)

	if _, err := c.LookPath(cmd); err == nil {
		c.Logger.Debugf("Preflight: command %q found in PATH", cmd)
		return nil
	}

	if c.ShellCheck != nil && c.ShellCheck(cmd) {
		c.Logger.Debugf("Preflight: command %q found through the shell", cmd)
		return nil
	}

	return errors.NewPreflightValidationError(cmd, errors.GetHintForCommand(filepath.Base(cmd)))
}

// commandExistsInShell reports whether 'command -v' succeeds for cmd.
func commandExistsInShell(cmd string) bool {
	shell, args := getShellCommandCheck(cmd)
	return exec.Command(shell, args...).Run() == nil
}
