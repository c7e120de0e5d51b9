// Package cmd implements the command-line interface for licenseforge.
// The root command gathers third party licenses and writes them as Markdown
// and/or JSON; subcommands manage configuration and show build information.
package cmd

import (
	"context"
	"os"
	"os/signal"
	"sync"

	"github.com/spf13/cobra"

	"github.com/ajxudir/licenseforge/pkg/errors"
	"github.com/ajxudir/licenseforge/pkg/logging"
)

var exitFunc = os.Exit
var verboseFlag bool
var versionFlag bool

// logger is shared by all commands. The console sink is attached once flags
// are parsed so --verbose can select its level.
var logger = logging.NewFanout()

var (
	consoleMu     sync.Mutex
	detachConsole func()
)

var rootCmd = &cobra.Command{
	Use:   "licenseforge",
	Short: "Gather third party licenses into Markdown and JSON",
	Long: `Gather all third party licenses reported by pnpm, compile them together
and write them as a Markdown and/or JSON file.

Running licenseforge without a subcommand runs the forge command.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		attachConsole(verboseFlag)
		logger.Debugf("Program START")
		if w := GetArchMismatchWarning(); w != "" {
			logger.Warnf("%s", w)
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if versionFlag {
			printVersionOutput(cmd.OutOrStdout())
			return nil
		}
		return runForge(cmd, args)
	},
}

// attachConsole subscribes a console sink on stderr unless one is attached.
func attachConsole(verbose bool) {
	consoleMu.Lock()
	defer consoleMu.Unlock()
	if detachConsole == nil {
		detachConsole = logger.Subscribe(logging.NewConsoleSink(os.Stderr, verbose))
	}
}

// releaseConsole unsubscribes the console sink attached by attachConsole.
func releaseConsole() {
	consoleMu.Lock()
	defer consoleMu.Unlock()
	if detachConsole != nil {
		detachConsole()
		detachConsole = nil
	}
}

// Execute runs the root command and exits with the appropriate code:
//   - 0: Success
//   - 2: Failure (command, report, license file or write error)
//   - 3: Configuration or validation error
//
// An interrupt cancels the running command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err == nil {
		logger.Debugf("Program END")
		releaseConsole()
		return
	}

	// Flag parse errors happen before PersistentPreRun attached the console.
	attachConsole(verboseFlag)
	code := errors.GetExitCode(err)
	logger.Errorf("%s", errors.EnhanceErrorWithHint(err))
	logger.Debugf("Exit code %d", code)
	releaseConsole()
	exitFunc(code)
}

// ExecuteTest runs the root command for testing (returns error instead of exiting).
//
// Returns:
//   - error: Command execution error, or nil on success
func ExecuteTest() error {
	defer releaseConsole()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "Enable verbose debug output")

	// -v/--version is local so it only works on the root command
	rootCmd.Flags().BoolVarP(&versionFlag, "version", "v", false, "Show version information")
	addForgeFlags(rootCmd)

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(forgeCmd)
}
