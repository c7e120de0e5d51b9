// Package licensefile locates the license file shipped inside an installed package.
package licensefile

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ajxudir/licenseforge/pkg/errors"
	"github.com/ajxudir/licenseforge/pkg/logging"
)

// CandidateStems are the file name prefixes searched, highest priority first.
var CandidateStems = []string{"LICENSE", "LICENCE", "COPYING"}

// Resolver reads license files from package installation directories.
//
// Fields:
//   - SkipMissing: When true, an unlistable package directory is logged and
//     treated as "no license file" instead of failing the run
//   - Logger: Receives debug and warning messages; nil discards them
type Resolver struct {
	SkipMissing bool
	Logger      logging.Logger

	readDir  func(string) ([]os.DirEntry, error)
	readFile func(string) ([]byte, error)
}

// NewResolver creates a Resolver backed by the real filesystem.
//
// Parameters:
//   - logger: Destination for diagnostic messages; nil discards them
//   - skipMissing: Tolerate package directories that cannot be listed
//
// Returns:
//   - *Resolver: The configured resolver
func NewResolver(logger logging.Logger, skipMissing bool) *Resolver {
	return &Resolver{
		SkipMissing: skipMissing,
		Logger:      logger,
		readDir:     os.ReadDir,
		readFile:    os.ReadFile,
	}
}

// Resolve returns the text of the license file inside packagePath.
//
// It performs the following operations:
//   - Step 1: Lists the entries directly under packagePath
//   - Step 2: For each stem in CandidateStems order, picks the first non-directory
//     entry whose name starts with the stem, ignoring case
//   - Step 3: Reads that file; an empty file does not count and the search
//     continues with the next stem
//
// Parameters:
//   - packagePath: Installation directory of one package version
//
// Returns:
//   - *string: License text, or nil when no license file exists
//   - error: *errors.FileResolutionError when the directory cannot be listed
//     (and SkipMissing is false) or a matched file cannot be read
func (r *Resolver) Resolve(packagePath string) (*string, error) {
	logger := logging.OrNop(r.Logger)
	readDir, readFile := r.readDir, r.readFile
	if readDir == nil {
		readDir = os.ReadDir
	}
	if readFile == nil {
		readFile = os.ReadFile
	}

	entries, err := readDir(packagePath)
	if err != nil {
		if r.SkipMissing {
			logger.Warnf("Skipping license file lookup for %s: %v", packagePath, err)
			return nil, nil
		}
		return nil, &errors.FileResolutionError{Path: packagePath, Err: err}
	}

	for _, stem := range CandidateStems {
		name, ok := matchStem(entries, stem)
		if !ok {
			continue
		}

		fullPath := filepath.Join(packagePath, name)
		content, err := readFile(fullPath)
		if err != nil {
			return nil, &errors.FileResolutionError{Path: fullPath, Err: err}
		}
		if len(content) == 0 {
			logger.Debugf("License file %s is empty, trying next candidate", fullPath)
			continue
		}

		logger.Debugf("License file found: %s", fullPath)
		text := string(content)
		return &text, nil
	}

	logger.Debugf("No license file in %s", packagePath)
	return nil, nil
}

// matchStem returns the first non-directory entry whose name starts with stem, case-insensitively.
func matchStem(entries []os.DirEntry, stem string) (string, bool) {
	stem = strings.ToUpper(stem)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasPrefix(strings.ToUpper(entry.Name()), stem) {
			return entry.Name(), true
		}
	}
	return "", false
}
