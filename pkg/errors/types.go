package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Exit codes for scripting integration.
// These codes allow scripts to distinguish between different failure modes.
const (
	// ExitSuccess indicates all operations completed successfully.
	ExitSuccess = 0

	// ExitFailure indicates the run failed: subprocess, parse, resolution or write errors.
	ExitFailure = 2

	// ExitConfigError indicates a configuration or validation error.
	// The command could not proceed due to invalid config or missing requirements.
	ExitConfigError = 3
)

// ExitError represents a command termination with a specific exit code.
//
// Use this error when a command needs to exit with a non-zero status
// while providing context about what went wrong.
//
// Fields:
//   - Code: Exit code (use constants ExitSuccess, ExitFailure, ExitConfigError)
//   - Message: Human-readable error message
//   - Err: Underlying error that caused this exit, may be nil
type ExitError struct {
	// Code is the exit code for the command.
	Code int

	// Message is a human-readable description of why the command failed.
	Message string

	// Err is the underlying error that caused this exit.
	// May be nil if no underlying error exists.
	Err error
}

// Error implements the error interface.
//
// Returns the Message field if set, otherwise returns the underlying error's
// message, or a default message with the exit code.
//
// Returns:
//   - string: The error message
func (e *ExitError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit code %d", e.Code)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates an ExitError with the given code and underlying error.
//
// Parameters:
//   - code: Exit code (use ExitSuccess, ExitFailure, ExitConfigError)
//   - err: Underlying error, may be nil
//
// Returns:
//   - *ExitError: New exit error
func NewExitError(code int, err error) *ExitError {
	return &ExitError{Code: code, Err: err}
}

// GetExitCode extracts the exit code from an error.
//
// If err is nil, returns ExitSuccess.
// If err is an ExitError, returns its code.
// If err is a ValidationError, returns ExitConfigError.
// Otherwise returns ExitFailure.
//
// Parameters:
//   - err: The error to extract code from
//
// Returns:
//   - int: Exit code
//
// Example:
//
//	code := errors.GetExitCode(err)
//	os.Exit(code)
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return ExitConfigError
	}

	return ExitFailure
}

// SubprocessError indicates the license-listing command failed.
//
// A command that exits non-zero, times out, or writes anything to standard
// error is a failure even when its standard output looks usable.
//
// Fields:
//   - Command: The command line that was executed
//   - Stderr: Trimmed standard error output, may be empty
//   - Err: Underlying execution error, nil when only stderr was written
type SubprocessError struct {
	Command string
	Stderr  string
	Err     error
}

// Error implements the error interface.
//
// Returns:
//   - string: Message naming the command, the cause and any stderr output
func (e *SubprocessError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("license listing command %q failed", e.Command))
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	if e.Stderr != "" {
		sb.WriteString("\n  stderr: ")
		sb.WriteString(e.Stderr)
	}
	return sb.String()
}

// Unwrap returns the underlying execution error.
func (e *SubprocessError) Unwrap() error {
	return e.Err
}

// IsSubprocessError checks if err is a SubprocessError and returns it.
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - *SubprocessError: The SubprocessError if err is one, nil otherwise
//   - bool: true if err is a SubprocessError
func IsSubprocessError(err error) (*SubprocessError, bool) {
	var se *SubprocessError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// ReportParseError indicates the license report could not be parsed or failed schema validation.
//
// Fields:
//   - License: License group key where the problem was found, empty for document-level errors
//   - Index: Entry index inside the group, -1 for group or document-level errors
//   - Field: Offending entry field, empty when not field-specific
//   - Reason: Description of what is wrong
//   - Err: Underlying decoding error, may be nil
type ReportParseError struct {
	License string
	Index   int
	Field   string
	Reason  string
	Err     error
}

// Error implements the error interface.
//
// Returns:
//   - string: Message locating the problem inside the report
func (e *ReportParseError) Error() string {
	var sb strings.Builder
	sb.WriteString("invalid license report")
	if e.License != "" {
		sb.WriteString(fmt.Sprintf(" (license %q", e.License))
		if e.Index >= 0 {
			sb.WriteString(fmt.Sprintf(", entry %d", e.Index))
		}
		if e.Field != "" {
			sb.WriteString(fmt.Sprintf(", field %q", e.Field))
		}
		sb.WriteString(")")
	}
	if e.Reason != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Reason)
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

// Unwrap returns the underlying decoding error.
func (e *ReportParseError) Unwrap() error {
	return e.Err
}

// IsReportParseError checks if err is a ReportParseError and returns it.
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - *ReportParseError: The ReportParseError if err is one, nil otherwise
//   - bool: true if err is a ReportParseError
func IsReportParseError(err error) (*ReportParseError, bool) {
	var pe *ReportParseError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// FileResolutionError indicates a package installation directory could not be listed.
//
// Fields:
//   - Path: The package directory that was scanned
//   - Err: Underlying filesystem error
type FileResolutionError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *FileResolutionError) Error() string {
	return fmt.Sprintf("cannot list package directory %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying filesystem error.
func (e *FileResolutionError) Unwrap() error {
	return e.Err
}

// IsFileResolutionError checks if err is a FileResolutionError and returns it.
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - *FileResolutionError: The FileResolutionError if err is one, nil otherwise
//   - bool: true if err is a FileResolutionError
func IsFileResolutionError(err error) (*FileResolutionError, bool) {
	var fe *FileResolutionError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// OutputWriteError indicates an output document could not be written.
//
// Fields:
//   - Path: Destination path of the document
//   - Format: Document format ("json" or "markdown")
//   - Err: Underlying filesystem error
type OutputWriteError struct {
	Path   string
	Format string
	Err    error
}

// Error implements the error interface.
func (e *OutputWriteError) Error() string {
	return fmt.Sprintf("failed to write %s output %s: %v", e.Format, e.Path, e.Err)
}

// Unwrap returns the underlying filesystem error.
func (e *OutputWriteError) Unwrap() error {
	return e.Err
}

// IsOutputWriteError checks if err is an OutputWriteError and returns it.
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - *OutputWriteError: The OutputWriteError if err is one, nil otherwise
//   - bool: true if err is an OutputWriteError
func IsOutputWriteError(err error) (*OutputWriteError, bool) {
	var oe *OutputWriteError
	if errors.As(err, &oe) {
		return oe, true
	}
	return nil, false
}
