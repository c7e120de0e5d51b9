package config

import (
	_ "embed"

	"gopkg.in/yaml.v3"
)

//go:embed default.yml
var defaultConfigYAML string

//go:embed template.yml
var templateConfigYAML string

// Default returns the built-in configuration.
//
// Returns:
//   - *Config: A fresh copy of the embedded defaults
func Default() *Config {
	var cfg Config
	if err := yaml.Unmarshal([]byte(defaultConfigYAML), &cfg); err != nil {
		// The embedded file is covered by tests; this only guards against a broken build.
		return &Config{Source: "./package.json", Command: "pnpm licenses list --json --long -P"}
	}
	return &cfg
}

// GetDefaultConfig returns the embedded default configuration YAML.
func GetDefaultConfig() string {
	return defaultConfigYAML
}

// GetTemplateConfig returns the commented starter configuration written by
// 'licenseforge config --init'.
func GetTemplateConfig() string {
	return templateConfigYAML
}
