package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ajxudir/licenseforge/pkg/config"
	"github.com/ajxudir/licenseforge/pkg/errors"
)

var (
	configShowDefaultsFlag  bool
	configShowEffectiveFlag bool
	configInitFlag          bool
	configValidateFlag      bool
	configPathFlag          string
)

var (
	writeFileFunc = os.WriteFile
	readFileFunc  = os.ReadFile
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show, create or validate configuration",
	Long: `Show, create or validate licenseforge configuration files.

Configuration is read from --config, then .licenseforge.yml in the working
directory, then the user config under $XDG_CONFIG_HOME/licenseforge.`,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&configShowDefaultsFlag, "show-defaults", false, "Show default configuration")
	configCmd.Flags().BoolVar(&configShowEffectiveFlag, "show-effective", false, "Show effective configuration")
	configCmd.Flags().BoolVar(&configInitFlag, "init", false, "Create "+config.LocalConfigName+" template")
	configCmd.Flags().BoolVar(&configValidateFlag, "validate", false, "Validate configuration file (rejects unknown fields)")
	configCmd.Flags().StringVarP(&configPathFlag, "config", "c", "", "Config file path")
}

// runConfig executes the config command with the specified flags.
//
// Behavior depends on flags:
//   - --init: Creates a .licenseforge.yml template file
//   - --validate: Validates the configuration file
//   - --show-defaults: Displays the default configuration
//   - --show-effective: Displays the configuration a run would use
//
// Parameters:
//   - cmd: Cobra command instance
//   - args: Command line arguments
//
// Returns:
//   - error: Returns error on validation or file operation failure
func runConfig(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if configInitFlag {
		return createConfigTemplate(out)
	}

	if configValidateFlag {
		return validateConfigFile(out)
	}

	if configShowDefaultsFlag {
		fmt.Fprintln(out, "Default configuration:")
		fmt.Fprintln(out)
		fmt.Fprint(out, config.GetDefaultConfig())
		return nil
	}

	if configShowEffectiveFlag {
		return showEffectiveConfig(out)
	}

	return cmd.Help()
}

// showEffectiveConfig prints the loaded configuration and where it came from.
func showEffectiveConfig(out io.Writer) error {
	workDir, err := getwdFunc()
	if err != nil {
		return fmt.Errorf("failed to determine working directory: %w", err)
	}

	cfg, err := loadConfigFunc(configPathFlag, workDir, logger)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}

	source := cfg.Path()
	if source == "" {
		source = "built-in defaults"
	}

	fmt.Fprintln(out, "Effective configuration:")
	fmt.Fprintf(out, "Source: %s\n\n", source)
	fmt.Fprint(out, string(data))
	return nil
}

// validateConfigFile validates the configuration file given with --config,
// or .licenseforge.yml in the working directory.
//
// Returns:
//   - error: ExitError with ExitConfigError code on validation failure
func validateConfigFile(out io.Writer) error {
	configPath := configPathFlag
	if configPath == "" {
		workDir, err := getwdFunc()
		if err != nil {
			return fmt.Errorf("failed to determine working directory: %w", err)
		}
		configPath = filepath.Join(workDir, config.LocalConfigName)
	}

	data, err := readFileFunc(configPath)
	if err != nil {
		return errors.NewExitError(errors.ExitConfigError, fmt.Errorf("failed to read config file '%s': %w", configPath, err))
	}

	result := config.ValidateConfigFile(data)

	if result.HasErrors() {
		fmt.Fprintf(out, "Configuration validation failed for: %s\n\n", configPath)
		for _, e := range result.Errors {
			if verboseFlag {
				fmt.Fprintf(out, "  ERROR: %s\n", e.VerboseError())
			} else {
				fmt.Fprintf(out, "  ERROR: %s\n", e.Error())
			}
		}
		printWarnings(out, result.Warnings)
		fmt.Fprintln(out)
		if !verboseFlag {
			fmt.Fprintln(out, "Run with --verbose for detailed schema information")
		}
		logger.Debugf("Exit code %d (config error): configuration validation failed for %s", errors.ExitConfigError, configPath)
		return errors.NewExitError(errors.ExitConfigError, fmt.Errorf("configuration validation failed"))
	}

	if len(result.Warnings) > 0 {
		fmt.Fprintf(out, "Configuration valid with warnings: %s\n", configPath)
		printWarnings(out, result.Warnings)
		return nil
	}

	fmt.Fprintf(out, "Configuration valid: %s\n", configPath)
	return nil
}

func printWarnings(out io.Writer, warnings []string) {
	if len(warnings) == 0 {
		return
	}
	fmt.Fprintln(out)
	for _, w := range warnings {
		fmt.Fprintf(out, "  WARNING: %s\n", w)
	}
}

// createConfigTemplate writes the commented template to .licenseforge.yml in
// the working directory. Fails if the file already exists.
func createConfigTemplate(out io.Writer) error {
	workDir, err := getwdFunc()
	if err != nil {
		return fmt.Errorf("failed to determine working directory: %w", err)
	}

	configPath := filepath.Join(workDir, config.LocalConfigName)
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists: %s", configPath)
	}

	// Owner read/write only
	if err := writeFileFunc(configPath, []byte(config.GetTemplateConfig()), 0o600); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	fmt.Fprintf(out, "Created configuration template: %s\n", configPath)
	return nil
}
