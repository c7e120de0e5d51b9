package errors

import (
	"strings"
)

// ErrorHint provides actionable resolution hints for common errors.
//
// Fields:
//   - Pattern: Substring to match in error message (case-insensitive)
//   - Hint: Brief description of the issue
//   - Resolution: Command or action to resolve the issue
type ErrorHint struct {
	// Pattern is a substring to match in error messages (case-insensitive).
	Pattern string

	// Hint is a brief description of the problem.
	Hint string

	// Resolution is a command or action to fix the problem.
	Resolution string
}

// CommandResolutionHints maps command names to installation instructions.
// Used for preflight validation errors when a required command is not found.
var CommandResolutionHints = map[string]string{
	"pnpm": "Install pnpm: https://pnpm.io/installation",
	"npm":  "Install Node.js: https://nodejs.org/",
	"npx":  "Install Node.js: https://nodejs.org/",
	"node": "Install Node.js: https://nodejs.org/",
	"yarn": "Install Yarn: https://yarnpkg.com/getting-started/install",
}

// CommonErrorHints maps error patterns to actionable hints.
// These are used by EnhanceErrorWithHint to add context to errors.
var CommonErrorHints = []ErrorHint{
	{
		Pattern:    "err_pnpm_no_importer_manifest_found",
		Hint:       "No package.json next to --Source",
		Resolution: "Point --Source at the package.json of the project to scan",
	},
	{
		Pattern:    "timed out",
		Hint:       "The license listing command did not finish in time",
		Resolution: "Raise --timeout or set timeout_seconds: 0 to disable the limit",
	},
	{
		Pattern:    "invalid license report",
		Hint:       "The package manager output is not a license report",
		Resolution: "Run the configured command manually and check that it prints JSON",
	},
	{
		Pattern:    "cannot list package directory",
		Hint:       "A dependency listed in the report is not installed",
		Resolution: "Run pnpm install, or pass --skip-missing to render it without license text",
	},
	{
		Pattern:    "permission denied",
		Hint:       "Insufficient permissions",
		Resolution: "Check file and directory permissions for the output path",
	},
	{
		Pattern:    "no such file or directory",
		Hint:       "File or directory not found",
		Resolution: "Check that the output directory exists",
	},
}

// GetHint returns an actionable hint for an error if a matching pattern exists.
//
// Parameters:
//   - err: The error to find a hint for
//
// Returns:
//   - string: The hint with resolution, or empty string if no hint found
func GetHint(err error) string {
	if err == nil {
		return ""
	}

	errStr := strings.ToLower(err.Error())
	for _, hint := range CommonErrorHints {
		if strings.Contains(errStr, strings.ToLower(hint.Pattern)) {
			return hint.Hint + ": " + hint.Resolution
		}
	}

	return ""
}

// GetHintForCommand returns the installation hint for a command.
//
// Parameters:
//   - cmd: The command name (e.g., "pnpm", "npm")
//
// Returns:
//   - string: Installation hint, or empty string if unknown command
func GetHintForCommand(cmd string) string {
	return CommandResolutionHints[cmd]
}

// EnhanceErrorWithHint adds actionable hints to an error message if a matching pattern is found.
//
// Parameters:
//   - err: The error to enhance
//
// Returns:
//   - string: Error message with hint appended if found, otherwise just the error message
//
// Example:
//
//	enhanced := errors.EnhanceErrorWithHint(err)
//	logger.Err(enhanced)
func EnhanceErrorWithHint(err error) string {
	if err == nil {
		return ""
	}

	errStr := err.Error()
	if hint := GetHint(err); hint != "" {
		return errStr + "\n  \U0001F4A1 " + hint
	}

	return errStr
}
