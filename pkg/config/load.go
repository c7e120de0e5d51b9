package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/ajxudir/licenseforge/pkg/errors"
	"github.com/ajxudir/licenseforge/pkg/logging"
)

const (
	// LocalConfigName is the config file looked up in the working directory.
	LocalConfigName = ".licenseforge.yml"

	// AppName names the per-user configuration directory.
	AppName = "licenseforge"

	// UserConfigName is the file name inside the per-user configuration directory.
	UserConfigName = "config.yml"

	// MaxConfigFileSize is the largest config file that is read.
	MaxConfigFileSize = 1 << 20
)

// UserConfigPath returns $XDG_CONFIG_HOME/licenseforge/config.yml.
func UserConfigPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, UserConfigName)
}

// FindConfigFile returns the config file to use, or "" when none exists.
//
// It performs the following operations:
//   - Step 1: An explicit path is returned as is, existing or not
//   - Step 2: Otherwise .licenseforge.yml in workDir is used when present
//   - Step 3: Otherwise the per-user file under XDG_CONFIG_HOME is used when present
//
// Parameters:
//   - configPath: Path given with --config, or empty
//   - workDir: Directory searched for the local config file
//
// Returns:
//   - string: Path of the config file, or empty for built-in defaults
func FindConfigFile(configPath, workDir string) string {
	if configPath != "" {
		return configPath
	}

	candidates := []string{
		filepath.Join(workDir, LocalConfigName),
		UserConfigPath(),
	}
	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return ""
}

// Load loads the configuration for a run.
//
// Values missing from the file keep their built-in defaults. The result is
// validated before it is returned.
//
// Parameters:
//   - configPath: Path given with --config, or empty to search the default locations
//   - workDir: Working directory searched for .licenseforge.yml
//   - logger: Destination for lookup messages; nil discards them
//
// Returns:
//   - *Config: The loaded configuration
//   - error: Read error, or *errors.ValidationError for malformed or invalid content
func Load(configPath, workDir string, logger logging.Logger) (*Config, error) {
	logger = logging.OrNop(logger)

	path := FindConfigFile(configPath, workDir)
	if path == "" {
		logger.Debugf("Using built-in default configuration")
		return Default(), nil
	}

	logger.Infof("Loading config from: %s", path)
	cfg, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads one config file on top of the built-in defaults without validating values.
//
// Parameters:
//   - path: Config file path
//
// Returns:
//   - *Config: Defaults overlaid with the file's values
//   - error: *errors.ExitError for unreadable files, *errors.ValidationError for oversized or malformed YAML
func LoadFile(path string) (*Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.NewExitError(errors.ExitConfigError, fmt.Errorf("failed to read config file: %w", err))
	}
	if info.Size() > MaxConfigFileSize {
		return nil, errors.NewConfigValidationError("", fmt.Sprintf("config file too large: %d bytes (max %d bytes)", info.Size(), MaxConfigFileSize))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewExitError(errors.ExitConfigError, fmt.Errorf("failed to read config file: %w", err))
	}

	cfg := Default()
	if err := decode(data, cfg); err != nil {
		ve := errors.NewConfigValidationError("", fmt.Sprintf("invalid config file %s: %v", path, err))
		ve.ValidKeys = KnownKeys()
		return nil, ve
	}
	cfg.path = path
	return cfg, nil
}

// decode unmarshals data into cfg, rejecting keys Config does not declare.
// An empty document leaves cfg unchanged.
func decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return err
	}
	return nil
}
