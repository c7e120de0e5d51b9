package forge

import (
	"bytes"
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajxudir/licenseforge/pkg/config"
	"github.com/ajxudir/licenseforge/pkg/errors"
	"github.com/ajxudir/licenseforge/pkg/logging"
	"github.com/ajxudir/licenseforge/pkg/output"
	"github.com/ajxudir/licenseforge/pkg/preflight"
	"github.com/ajxudir/licenseforge/pkg/testutil"
)

// stubValidator returns a fixed preflight result.
type stubValidator struct {
	result *preflight.ValidateResult
	calls  int
}

func (s *stubValidator) Validate(command, source string) *preflight.ValidateResult {
	s.calls++
	return s.result
}

// setup returns a runner with a fake command, a log buffer and a config writing both documents.
func setup(t *testing.T, ws *testutil.Workspace, fake *testutil.FakeExec) (*Runner, *bytes.Buffer, *config.Config) {
	t.Helper()
	var logs bytes.Buffer
	runner := &Runner{
		Logger:    logging.NewWriterSink(&logs, logging.LevelDebug),
		Execute:   fake.Execute,
		Preflight: &stubValidator{result: &preflight.ValidateResult{}},
	}
	cfg := config.Default()
	cfg.Source = ws.Source()
	cfg.JSONFile = ws.Path("licenses.json")
	cfg.MarkdownFile = ws.Path("LICENSES.md")
	return runner, &logs, cfg
}

// TestRunNoOutput tests that a run without output paths does nothing.
//
// It verifies:
//   - A warning is logged
//   - The command is never started and preflight is skipped
//   - No files are written
func TestRunNoOutput(t *testing.T) {
	ws := testutil.NewWorkspace(t)
	fake := &testutil.FakeExec{Stdout: []byte(sampleReport(t))}
	runner, logs, cfg := setup(t, ws, fake)
	cfg.JSONFile, cfg.MarkdownFile = "", ""

	summary, err := runner.Run(context.Background(), cfg)
	require.NoError(t, err)
	require.NotNil(t, summary)
	assert.Zero(t, summary.Records)
	assert.Empty(t, fake.Calls())
	assert.Zero(t, runner.Preflight.(*stubValidator).calls)
	assert.Contains(t, logs.String(), "[WARN] No output specified")

	entries, err := os.ReadDir(ws.Root)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func sampleReport(t *testing.T) string {
	t.Helper()
	return `{"MIT":[{"name":"@a/b","versions":["1.0.0"],"paths":["` + filepath.ToSlash(t.TempDir()) + `"],"homepage":"https://a.b","license":"MIT"}]}`
}

// TestRunRoundTrip tests the scoped package scenario end to end.
func TestRunRoundTrip(t *testing.T) {
	ws := testutil.NewWorkspace(t)
	ws.AddPackage(testutil.PackageSpec{Name: "@a/b", License: "MIT", Homepage: "https://a.b", Versions: []string{"1.0.0"}})
	fake := &testutil.FakeExec{Stdout: ws.Report()}
	runner, _, cfg := setup(t, ws, fake)
	cfg.TimeoutSeconds = 30

	summary, err := runner.Run(context.Background(), cfg)
	require.NoError(t, err)

	require.Len(t, fake.Calls(), 1)
	assert.Equal(t, testutil.ExecCall{Command: "pnpm licenses list --json --long -P", Dir: ws.Root, TimeoutSeconds: 30}, fake.Calls()[0])

	expectedJSON := "{\n" +
		"\t\"Packages\": [\n" +
		"\t\t{\n" +
		"\t\t\t\"Name\": \"a/b\",\n" +
		"\t\t\t\"Version\": \"1.0.0\",\n" +
		"\t\t\t\"Authors\": null,\n" +
		"\t\t\t\"Homepage\": \"https://a.b\",\n" +
		"\t\t\t\"LicenseType\": \"MIT\",\n" +
		"\t\t\t\"LicenseOriginal\": null\n" +
		"\t\t}\n" +
		"\t]\n" +
		"}\n"
	assert.Equal(t, expectedJSON, testutil.ReadFile(t, cfg.JSONFile))

	md := testutil.ReadFile(t, cfg.MarkdownFile)
	assert.True(t, strings.HasSuffix(md, "> a/b [1.0.0]\n"+
		"> -----------\n"+
		">\n"+
		"> Homepage: <https://a.b>\n"+
		">\n"+
		"> License:\n"+
		">> [MIT](https://spdx.org/licenses/MIT.html)\n"+
		">\n"+
		"\n"))

	assert.Equal(t, 1, summary.Records)
	assert.Zero(t, summary.WithLicenseText)
	assert.Equal(t, []output.LicenseCount{{License: "MIT", Packages: 1}}, summary.Licenses)
	assert.ElementsMatch(t, []string{cfg.JSONFile, cfg.MarkdownFile}, summary.Files)
}

// TestRunEmptyAuthorAndHomepage tests that empty strings in the report survive into JSON only.
func TestRunEmptyAuthorAndHomepage(t *testing.T) {
	ws := testutil.NewWorkspace(t)
	dir := t.TempDir()
	raw := `{"MIT":[{"name":"x","versions":["1.0.0"],"paths":["` + filepath.ToSlash(dir) + `"],"author":"","homepage":"","license":"MIT"}]}`
	fake := &testutil.FakeExec{Stdout: []byte(raw)}
	runner, _, cfg := setup(t, ws, fake)

	_, err := runner.Run(context.Background(), cfg)
	require.NoError(t, err)

	js := testutil.ReadFile(t, cfg.JSONFile)
	assert.Contains(t, js, "\"Authors\": \"\",\n\t\t\t\"Homepage\": \"\",")
	assert.NotContains(t, js, "null,")

	md := testutil.ReadFile(t, cfg.MarkdownFile)
	assert.NotContains(t, md, "Authors:")
	assert.NotContains(t, md, "Homepage:")
}

// TestRunLicenseFilesAndOrder tests license text embedding and record order across groups.
func TestRunLicenseFilesAndOrder(t *testing.T) {
	ws := testutil.NewWorkspace(t)
	ws.AddPackage(testutil.PackageSpec{
		Name: "zod", License: "MIT", Versions: []string{"3.22.0"},
		Files: map[string]string{"LICENSE.md": "zod license\r\nline two\r\n", "COPYING": "not this"},
	})
	ws.AddPackage(testutil.PackageSpec{
		Name: "@babel/core", License: "Apache-2.0", Author: "Babel Team", Versions: []string{"7.0.0"},
		Files: map[string]string{"licence": "babel licence"},
	})
	ws.AddPackage(testutil.PackageSpec{Name: "axios", License: "https://example.com/axios-license", Versions: []string{"1.6.0"}})

	fake := &testutil.FakeExec{Stdout: ws.Report()}
	runner, _, cfg := setup(t, ws, fake)

	summary, err := runner.Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Records)
	assert.Equal(t, 2, summary.WithLicenseText)

	md := testutil.ReadFile(t, cfg.MarkdownFile)
	babel := strings.Index(md, "> babel/core [7.0.0]")
	axios := strings.Index(md, "> axios [1.6.0]")
	zod := strings.Index(md, "> zod [3.22.0]")
	require.True(t, axios >= 0 && babel >= 0 && zod >= 0)
	assert.Less(t, axios, babel)
	assert.Less(t, babel, zod)

	assert.Contains(t, md, "> Authors: Babel Team\n>\n> License:\n>> babel licence\n>\n")
	assert.Contains(t, md, ">> zod license\n>> line two\n>>\n>\n")
	assert.NotContains(t, md, "not this")
	assert.Contains(t, md, ">> <https://example.com/axios-license>\n")

	json := testutil.ReadFile(t, cfg.JSONFile)
	assert.Contains(t, json, `"LicenseOriginal": "zod license\r\nline two\r\n"`)
	assert.Contains(t, json, `"Authors": "Babel Team"`)
}

// TestRunEmptyReport tests the sentinel report.
func TestRunEmptyReport(t *testing.T) {
	ws := testutil.NewWorkspace(t)
	fake := &testutil.FakeExec{Stdout: []byte("No licenses in packages found\n")}
	runner, _, cfg := setup(t, ws, fake)

	summary, err := runner.Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.Zero(t, summary.Records)
	assert.Equal(t, "{\n\t\"Packages\": []\n}\n", testutil.ReadFile(t, cfg.JSONFile))
	assert.True(t, strings.HasPrefix(testutil.ReadFile(t, cfg.MarkdownFile), "Third party licenses\n"))
}

// TestRunSingleOutput tests that only the configured document is written.
func TestRunSingleOutput(t *testing.T) {
	ws := testutil.NewWorkspace(t)
	fake := &testutil.FakeExec{Stdout: []byte("No licenses in packages found")}
	runner, _, cfg := setup(t, ws, fake)
	cfg.MarkdownFile = ""

	summary, err := runner.Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{cfg.JSONFile}, summary.Files)
	assert.NoFileExists(t, ws.Path("LICENSES.md"))
}

// TestRunIdempotent tests that two runs over the same input produce identical files.
func TestRunIdempotent(t *testing.T) {
	ws := testutil.NewWorkspace(t)
	ws.AddPackage(testutil.PackageSpec{Name: "b", License: "MIT", Versions: []string{"2.0.0", "10.0.0"}, Files: map[string]string{"LICENSE": "b"}})
	ws.AddPackage(testutil.PackageSpec{Name: "a", License: "ISC", Versions: []string{"1.0.0"}})
	fake := &testutil.FakeExec{Stdout: ws.Report()}
	runner, _, cfg := setup(t, ws, fake)

	_, err := runner.Run(context.Background(), cfg)
	require.NoError(t, err)
	firstJSON, firstMD := testutil.ReadFile(t, cfg.JSONFile), testutil.ReadFile(t, cfg.MarkdownFile)

	_, err = runner.Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, firstJSON, testutil.ReadFile(t, cfg.JSONFile))
	assert.Equal(t, firstMD, testutil.ReadFile(t, cfg.MarkdownFile))
	assert.Less(t, strings.Index(firstMD, "> b [2.0.0]"), strings.Index(firstMD, "> b [10.0.0]"))
}

// TestRunSubprocessFailures tests that command failures abort before anything is written.
//
// It verifies:
//   - Any stderr output fails the run even with exit status zero
//   - A command error fails the run and carries stderr
func TestRunSubprocessFailures(t *testing.T) {
	tests := []struct {
		name   string
		fake   *testutil.FakeExec
		stderr string
	}{
		{
			name:   "stderr only",
			fake:   &testutil.FakeExec{Stdout: []byte("{}"), Stderr: []byte(" WARN  deprecated\n")},
			stderr: "WARN  deprecated",
		},
		{
			name:   "exit error",
			fake:   &testutil.FakeExec{Stderr: []byte("ERR_PNPM_NO_IMPORTER_MANIFEST_FOUND\n"), Err: stderrors.New("exit status 1")},
			stderr: "ERR_PNPM_NO_IMPORTER_MANIFEST_FOUND",
		},
		{
			name: "exit error without stderr",
			fake: &testutil.FakeExec{Err: stderrors.New("exit status 127")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws := testutil.NewWorkspace(t)
			runner, _, cfg := setup(t, ws, tt.fake)

			summary, err := runner.Run(context.Background(), cfg)
			require.Error(t, err)
			assert.Nil(t, summary)

			se, ok := errors.IsSubprocessError(err)
			require.True(t, ok)
			assert.Equal(t, tt.stderr, se.Stderr)
			assert.Equal(t, cfg.Command, se.Command)
			assert.Equal(t, errors.ExitFailure, errors.GetExitCode(err))

			assert.NoFileExists(t, cfg.JSONFile)
			assert.NoFileExists(t, cfg.MarkdownFile)
		})
	}
}

// TestRunMalformedReport tests that an unparsable report aborts the run.
func TestRunMalformedReport(t *testing.T) {
	ws := testutil.NewWorkspace(t)
	fake := &testutil.FakeExec{Stdout: []byte(`{"MIT": [{"versions": ["1"], "paths": ["/x"], "license": "MIT"}]}`)}
	runner, _, cfg := setup(t, ws, fake)

	_, err := runner.Run(context.Background(), cfg)
	_, ok := errors.IsReportParseError(err)
	require.True(t, ok, "got %v", err)
	assert.NoFileExists(t, cfg.JSONFile)
}

// TestRunMissingPackageDir tests FileResolution handling with and without skipping.
func TestRunMissingPackageDir(t *testing.T) {
	newWorkspace := func(t *testing.T) *testutil.Workspace {
		ws := testutil.NewWorkspace(t)
		ws.AddPackage(testutil.PackageSpec{Name: "ghost", License: "MIT", Versions: []string{"1.0.0"}, NoDir: true})
		return ws
	}

	t.Run("fatal by default", func(t *testing.T) {
		ws := newWorkspace(t)
		runner, _, cfg := setup(t, ws, &testutil.FakeExec{Stdout: ws.Report()})

		_, err := runner.Run(context.Background(), cfg)
		_, ok := errors.IsFileResolutionError(err)
		require.True(t, ok, "got %v", err)
		assert.NoFileExists(t, cfg.JSONFile)
		assert.NoFileExists(t, cfg.MarkdownFile)
	})

	t.Run("skipped when configured", func(t *testing.T) {
		ws := newWorkspace(t)
		runner, logs, cfg := setup(t, ws, &testutil.FakeExec{Stdout: ws.Report()})
		cfg.SkipMissingPaths = true

		summary, err := runner.Run(context.Background(), cfg)
		require.NoError(t, err)
		assert.Equal(t, 1, summary.Records)
		assert.Contains(t, logs.String(), "[WARN] Skipping license file lookup")
		assert.Contains(t, testutil.ReadFile(t, cfg.MarkdownFile), ">> [MIT](https://spdx.org/licenses/MIT.html)\n")
	})
}

// TestRunWriteFailure tests that an unwritable output yields an OutputWriteError.
func TestRunWriteFailure(t *testing.T) {
	ws := testutil.NewWorkspace(t)
	runner, _, cfg := setup(t, ws, &testutil.FakeExec{Stdout: []byte("No licenses in packages found")})
	cfg.JSONFile = ws.Path("missing-dir", "licenses.json")

	summary, err := runner.Run(context.Background(), cfg)
	require.Error(t, err)
	we, ok := errors.IsOutputWriteError(err)
	require.True(t, ok)
	assert.Equal(t, cfg.JSONFile, we.Path)
	assert.Equal(t, output.FormatJSON, we.Format)
	require.NotNil(t, summary)
	assert.NotContains(t, summary.Files, cfg.JSONFile)
}

// TestRunPreflight tests that preflight results gate the command.
func TestRunPreflight(t *testing.T) {
	t.Run("errors abort", func(t *testing.T) {
		ws := testutil.NewWorkspace(t)
		fake := &testutil.FakeExec{}
		runner, _, cfg := setup(t, ws, fake)
		runner.Preflight = &stubValidator{result: &preflight.ValidateResult{
			Errors: []*errors.ValidationError{errors.NewPreflightValidationError("pnpm", "Install pnpm")},
		}}

		_, err := runner.Run(context.Background(), cfg)
		require.Error(t, err)
		assert.Equal(t, errors.ExitConfigError, errors.GetExitCode(err))
		assert.Empty(t, fake.Calls())
	})

	t.Run("warnings are logged", func(t *testing.T) {
		ws := testutil.NewWorkspace(t)
		fake := &testutil.FakeExec{Stdout: []byte("No licenses in packages found")}
		runner, logs, cfg := setup(t, ws, fake)
		runner.Preflight = &stubValidator{result: &preflight.ValidateResult{Warnings: []string{"package manifest x not found"}}}

		_, err := runner.Run(context.Background(), cfg)
		require.NoError(t, err)
		assert.Contains(t, logs.String(), "[WARN] package manifest x not found")
	})
}

// TestRunDefaultExecutor tests that a runner without Execute uses cmdexec.ExecuteWithContext.
func TestRunDefaultExecutor(t *testing.T) {
	ws := testutil.NewWorkspace(t)
	fake := &testutil.FakeExec{Stdout: []byte("No licenses in packages found")}
	fake.Install(t)

	runner := &Runner{}
	cfg := config.Default()
	cfg.Source = ws.Source()
	cfg.JSONFile = ws.Path("out.json")

	_, err := runner.Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.Len(t, fake.Calls(), 1)
}

// TestNewRunner tests the production wiring.
func TestNewRunner(t *testing.T) {
	runner := NewRunner(nil)
	assert.NotNil(t, runner.Execute)
	assert.IsType(t, &preflight.Checker{}, runner.Preflight)
}
