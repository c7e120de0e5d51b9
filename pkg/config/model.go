// Package config handles configuration loading and validation for licenseforge.
// Settings come from an optional YAML file; command line flags that were set
// explicitly override the file.
package config

// Config is the complete set of run settings.
//
// Fields:
//   - Source: Path of the package manifest; the command runs in its directory
//   - MarkdownFile: Markdown output path; empty disables Markdown output
//   - JSONFile: JSON output path; empty disables JSON output
//   - Command: License-listing command printing the report on stdout
//   - TimeoutSeconds: Command time limit; 0 disables it
//   - SkipMissingPaths: Treat unlistable package directories as having no license file
type Config struct {
	Source           string `yaml:"source"`
	MarkdownFile     string `yaml:"md_file"`
	JSONFile         string `yaml:"json_file"`
	Command          string `yaml:"command"`
	TimeoutSeconds   int    `yaml:"timeout_seconds"`
	SkipMissingPaths bool   `yaml:"skip_missing_paths"`

	// path is the file the config was read from; empty for built-in defaults.
	path string
}

// Path returns the file the configuration was loaded from, or "" for defaults.
func (c *Config) Path() string {
	return c.path
}

// HasOutput reports whether at least one output file is configured.
func (c *Config) HasOutput() bool {
	return c.MarkdownFile != "" || c.JSONFile != ""
}
