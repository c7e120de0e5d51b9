package output

import (
	"os"

	"github.com/ajxudir/licenseforge/pkg/errors"
)

// Output formats, used in write errors and logs.
const (
	FormatJSON     = "JSON"
	FormatMarkdown = "Markdown"
)

// fileMode is the permission of newly created output files.
const fileMode = 0o644

// WriteFile replaces the content of path with data.
//
// The file is created when missing and truncated otherwise; the parent
// directory must already exist.
//
// Parameters:
//   - path: Destination file
//   - format: FormatJSON or FormatMarkdown, reported on failure
//   - data: Complete document
//
// Returns:
//   - error: *errors.OutputWriteError on failure
func WriteFile(path, format string, data []byte) error {
	if err := os.WriteFile(path, data, fileMode); err != nil {
		return &errors.OutputWriteError{Path: path, Format: format, Err: err}
	}
	return nil
}
