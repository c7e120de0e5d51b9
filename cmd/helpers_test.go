package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/adrg/xdg"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ajxudir/licenseforge/pkg/forge"
	"github.com/ajxudir/licenseforge/pkg/logging"
	"github.com/ajxudir/licenseforge/pkg/testutil"
)

// resetCommandState restores every flag to its default and clears command
// contexts so each test starts from a freshly parsed command line.
func resetCommandState(t *testing.T) {
	t.Helper()
	reset := func(c *cobra.Command) {
		visit := func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		}
		c.Flags().VisitAll(visit)
		c.PersistentFlags().VisitAll(visit)
	}
	for _, c := range []*cobra.Command{rootCmd, forgeCmd, configCmd, versionCmd} {
		reset(c)
		// Execute leaves its cancelled signal context behind.
		c.SetContext(context.Background())
	}
	rootCmd.SetArgs(nil)
	rootCmd.SetOut(nil)
	rootCmd.SetErr(nil)
}

// isolate points config lookups at an empty workspace and user config home.
func isolate(t *testing.T) *testutil.Workspace {
	t.Helper()
	ws := testutil.NewWorkspace(t)

	t.Cleanup(xdg.Reload)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	xdg.Reload()

	oldGetwd := getwdFunc
	getwdFunc = func() (string, error) { return ws.Root, nil }
	t.Cleanup(func() { getwdFunc = oldGetwd })

	resetCommandState(t)
	t.Cleanup(func() { resetCommandState(t) })
	return ws
}

// useFakeRunner makes the forge run fake's output without preflight checks.
func useFakeRunner(t *testing.T, fake *testutil.FakeExec) {
	t.Helper()
	old := newRunnerFunc
	newRunnerFunc = func(l logging.Logger) *forge.Runner {
		return &forge.Runner{Logger: l, Execute: fake.Execute}
	}
	t.Cleanup(func() { newRunnerFunc = old })
}

// captureLogs subscribes a debug-level buffer to the shared logger.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	detach := logger.Subscribe(logging.NewWriterSink(&buf, logging.LevelDebug))
	t.Cleanup(detach)
	return &buf
}

// run executes the root command with args and returns its stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := ExecuteTest()
	return out.String(), err
}

// fixtureReport adds two packages to ws and returns the report describing them.
func fixtureReport(ws *testutil.Workspace) []byte {
	ws.AddPackage(testutil.PackageSpec{
		Name:     "left-pad",
		License:  "WTFPL",
		Versions: []string{"1.3.0"},
		Files:    map[string]string{"LICENSE": "do what you want"},
	})
	ws.AddPackage(testutil.PackageSpec{
		Name:     "@types/node",
		License:  "MIT",
		Author:   "Microsoft",
		Homepage: "https://github.com/DefinitelyTyped/DefinitelyTyped",
		Versions: []string{"20.1.0"},
	})
	return ws.Report()
}
