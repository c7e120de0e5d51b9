package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ajxudir/licenseforge/pkg/config"
	"github.com/ajxudir/licenseforge/pkg/forge"
	"github.com/ajxudir/licenseforge/pkg/output"
)

// forgeOptions holds the values of the forge flags.
type forgeOptions struct {
	source       string
	mdFile       string
	jsonFile     string
	configPath   string
	timeout      int
	skipMissing  bool
	printSummary bool
}

var forgeFlags forgeOptions

var (
	loadConfigFunc = config.Load
	newRunnerFunc  = forge.NewRunner
	getwdFunc      = os.Getwd
)

var forgeCmd = &cobra.Command{
	Use:     "forge",
	Aliases: []string{"Forge"},
	Short:   "Gather third party licenses and write them as Markdown and/or JSON",
	Long: `Run the license listing command next to the package manifest, then write
every dependency with its license text to the requested output files.

Without --Md-file and --Json-file nothing is done.`,
	Example: `  licenseforge -m THIRD_PARTY_LICENSES.md
  licenseforge forge -s ./app/package.json -j licenses.json --summary`,
	RunE: runForge,
}

func init() {
	addForgeFlags(forgeCmd)
}

// addForgeFlags registers the forge flags on cmd.
//
// The root command and the forge subcommand share the same option values.
func addForgeFlags(cmd *cobra.Command) {
	defaults := config.Default()
	cmd.Flags().StringVarP(&forgeFlags.source, "Source", "s", defaults.Source, "Path to the package.json source file")
	cmd.Flags().StringVarP(&forgeFlags.mdFile, "Md-file", "m", "", "Path of the Markdown output file")
	cmd.Flags().StringVarP(&forgeFlags.jsonFile, "Json-file", "j", "", "Path of the JSON output file")
	cmd.Flags().StringVarP(&forgeFlags.configPath, "config", "c", "", "Config file path (default: .licenseforge.yml or the user config)")
	cmd.Flags().IntVar(&forgeFlags.timeout, "timeout", defaults.TimeoutSeconds, "Abort the license listing command after this many seconds (0 = no limit)")
	cmd.Flags().BoolVar(&forgeFlags.skipMissing, "skip-missing", false, "Render packages whose directory is missing without license text")
	cmd.Flags().BoolVar(&forgeFlags.printSummary, "summary", false, "Print a per-license summary table after writing")
}

// runForge executes the forge with configuration and flag overrides applied.
//
// It performs the following operations:
//   - Step 1: Loads the config file, if any
//   - Step 2: Overrides config values with flags set on the command line
//   - Step 3: Runs the forge and prints the summary when requested
//
// Parameters:
//   - cmd: Cobra command instance; its flags and context are used
//   - args: Unused
//
// Returns:
//   - error: Configuration, preflight or forge error
func runForge(cmd *cobra.Command, args []string) error {
	logger.Debugf("Forge command: START")
	defer logger.Debugf("Forge command: END")

	workDir, err := getwdFunc()
	if err != nil {
		return fmt.Errorf("failed to determine working directory: %w", err)
	}

	cfg, err := loadConfigFunc(forgeFlags.configPath, workDir, logger)
	if err != nil {
		return err
	}
	applyFlagOverrides(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	summary, err := newRunnerFunc(logger).Run(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	if forgeFlags.printSummary && cfg.HasOutput() {
		output.WriteSummary(cmd.OutOrStdout(), summary)
	}
	return nil
}

// applyFlagOverrides copies explicitly set flags into cfg.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("Source") {
		cfg.Source = forgeFlags.source
	}
	if flags.Changed("Md-file") {
		cfg.MarkdownFile = forgeFlags.mdFile
	}
	if flags.Changed("Json-file") {
		cfg.JSONFile = forgeFlags.jsonFile
	}
	if flags.Changed("timeout") {
		cfg.TimeoutSeconds = forgeFlags.timeout
	}
	if flags.Changed("skip-missing") {
		cfg.SkipMissingPaths = forgeFlags.skipMissing
	}
}
