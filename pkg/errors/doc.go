// Package errors provides the error kinds and exit codes for licenseforge.
//
// Every failure the forge pipeline can produce maps to one kind:
//   - SubprocessError: the license-listing command failed or wrote to stderr
//   - ReportParseError: the command output is not a valid license report
//   - FileResolutionError: a package directory could not be listed
//   - OutputWriteError: an output document could not be written
//   - ValidationError: configuration or preflight validation failures
//   - ExitError: command exit with a specific exit code
//
// Error Checking:
//
// Use the Is* functions to check error types:
//
//	if perr, ok := errors.IsReportParseError(err); ok {
//	    fmt.Println(perr.Field)
//	}
//
// Exit Codes:
//
// Standard exit codes are defined for scripting integration:
//   - ExitSuccess (0): All operations completed successfully
//   - ExitFailure (2): The run failed
//   - ExitConfigError (3): Configuration or validation error
package errors
