package cmd

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajxudir/licenseforge/pkg/config"
	"github.com/ajxudir/licenseforge/pkg/errors"
	"github.com/ajxudir/licenseforge/pkg/testutil"
)

// TestExecuteWithExitCodes tests the behavior of Execute with different exit codes.
//
// It verifies:
//   - Successful commands do not call exitFunc
//   - Unknown subcommands exit with ExitFailure
//   - Invalid configuration exits with ExitConfigError
//   - The error is logged with its hint
func TestExecuteWithExitCodes(t *testing.T) {
	oldExit := exitFunc
	defer func() { exitFunc = oldExit }()

	t.Run("success does not exit", func(t *testing.T) {
		isolate(t)
		exitCode := -1
		exitFunc = func(code int) { exitCode = code }

		rootCmd.SetArgs([]string{"--help"})
		Execute()

		assert.Equal(t, -1, exitCode)
		assert.Nil(t, detachConsole)
	})

	t.Run("unknown subcommand", func(t *testing.T) {
		isolate(t)
		logs := captureLogs(t)
		exitCode := -1
		exitFunc = func(code int) { exitCode = code }

		rootCmd.SetArgs([]string{"nonexistent-subcommand-xyz"})
		Execute()

		assert.Equal(t, errors.ExitFailure, exitCode)
		assert.Contains(t, logs.String(), "[ERROR]")
		assert.Nil(t, detachConsole)
	})

	t.Run("invalid config", func(t *testing.T) {
		ws := isolate(t)
		logs := captureLogs(t)
		exitCode := -1
		exitFunc = func(code int) { exitCode = code }
		testutil.WriteFile(t, ws.Path(config.LocalConfigName), "timeout_seconds: -1\n")

		rootCmd.SetArgs([]string{"-m", ws.Path("out.md")})
		Execute()

		assert.Equal(t, errors.ExitConfigError, exitCode)
		assert.Contains(t, logs.String(), "timeout_seconds")
	})

	t.Run("bad flag", func(t *testing.T) {
		isolate(t)
		exitCode := -1
		exitFunc = func(code int) { exitCode = code }

		rootCmd.SetArgs([]string{"--no-such-flag"})
		Execute()

		assert.Equal(t, errors.ExitFailure, exitCode)
	})
}

// TestPersistentPreRun tests console attachment and debug logging.
func TestPersistentPreRun(t *testing.T) {
	isolate(t)
	logs := captureLogs(t)
	before := logger.Len()

	_, err := run(t, "version", "--verbose")
	require.NoError(t, err)

	assert.Contains(t, logs.String(), "[DEBUG] Program START")
	assert.Nil(t, detachConsole)
	assert.Equal(t, before, logger.Len())
}

// TestPersistentPreRunArchWarning tests that a cross-built binary warns.
func TestPersistentPreRunArchWarning(t *testing.T) {
	isolate(t)
	logs := captureLogs(t)

	oldOS, oldArch := BuildOS, BuildArch
	defer func() { BuildOS, BuildArch = oldOS, oldArch }()
	BuildOS = "plan9"
	BuildArch = "mips"
	if runtime.GOOS == "plan9" {
		BuildOS = "linux"
	}

	_, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "[WARN] Architecture mismatch")
}

// TestRootVersionFlag tests that -v prints the version instead of running the forge.
func TestRootVersionFlag(t *testing.T) {
	isolate(t)
	fake := &testutil.FakeExec{}
	useFakeRunner(t, fake)

	out, err := run(t, "-v", "-m", "ignored.md")
	require.NoError(t, err)
	assert.Contains(t, out, "Version: "+Version)
	assert.Empty(t, fake.Calls())
}

// TestRootCommandSetup tests command registration.
func TestRootCommandSetup(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["forge"])
	assert.True(t, names["config"])
	assert.True(t, names["version"])

	for _, flag := range []string{"Source", "Md-file", "Json-file", "config", "timeout", "skip-missing", "summary"} {
		assert.NotNil(t, rootCmd.Flags().Lookup(flag), flag)
		assert.NotNil(t, forgeCmd.Flags().Lookup(flag), flag)
	}
	assert.Equal(t, "s", rootCmd.Flags().Lookup("Source").Shorthand)
	assert.Equal(t, "m", rootCmd.Flags().Lookup("Md-file").Shorthand)
	assert.Equal(t, "j", rootCmd.Flags().Lookup("Json-file").Shorthand)
	assert.Equal(t, "./package.json", rootCmd.Flags().Lookup("Source").DefValue)
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("verbose"))
	assert.Contains(t, forgeCmd.Aliases, "Forge")
}
