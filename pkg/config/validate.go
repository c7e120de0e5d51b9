package config

import (
	"reflect"
	"strings"

	"github.com/ajxudir/licenseforge/pkg/errors"
)

// ValidationResult holds the outcome of validating a config file.
//
// Fields:
//   - Errors: Problems that make the file unusable
//   - Warnings: Settings that are accepted but likely unintended
type ValidationResult struct {
	Errors   []*errors.ValidationError
	Warnings []string
}

// HasErrors returns true if there are validation errors.
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// Validate checks the configured values.
//
// Returns:
//   - error: The first *errors.ValidationError found, or nil
func (c *Config) Validate() error {
	if errs := c.validate(); len(errs) > 0 {
		return errs[0]
	}
	return nil
}

func (c *Config) validate() []*errors.ValidationError {
	var errs []*errors.ValidationError

	if strings.TrimSpace(c.Source) == "" {
		ve := errors.NewConfigValidationError("source", "must not be empty")
		ve.Expected = "path of the package manifest, e.g. ./package.json"
		errs = append(errs, ve)
	}
	if strings.TrimSpace(c.Command) == "" {
		ve := errors.NewConfigValidationError("command", "must not be empty")
		ve.Expected = "a command printing the license report, e.g. pnpm licenses list --json --long -P"
		errs = append(errs, ve)
	}
	if c.TimeoutSeconds < 0 {
		ve := errors.NewConfigValidationError("timeout_seconds", "must not be negative")
		ve.Expected = "0 (no limit) or a positive number of seconds"
		errs = append(errs, ve)
	}
	if c.MarkdownFile != "" && c.MarkdownFile == c.JSONFile {
		ve := errors.NewConfigValidationError("json_file", "must differ from md_file")
		ve.Hint = "each output replaces the whole file, so sharing a path loses one document"
		errs = append(errs, ve)
	}

	return errs
}

// ValidateConfigFile validates raw YAML without reading any file.
//
// Parameters:
//   - data: YAML content
//
// Returns:
//   - *ValidationResult: Errors and warnings; never nil
func ValidateConfigFile(data []byte) *ValidationResult {
	result := &ValidationResult{}

	cfg := Default()
	if err := decode(data, cfg); err != nil {
		ve := errors.NewConfigValidationError("", err.Error())
		ve.ValidKeys = KnownKeys()
		result.Errors = append(result.Errors, ve)
		return result
	}

	result.Errors = append(result.Errors, cfg.validate()...)
	if !cfg.HasOutput() {
		result.Warnings = append(result.Warnings, "neither md_file nor json_file is set; runs without -m or -j do nothing")
	}
	return result
}

// KnownKeys returns the YAML keys accepted in a config file, in declaration order.
func KnownKeys() []string {
	t := reflect.TypeOf(Config{})
	keys := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		if tag := t.Field(i).Tag.Get("yaml"); tag != "" {
			keys = append(keys, strings.Split(tag, ",")[0])
		}
	}
	return keys
}
