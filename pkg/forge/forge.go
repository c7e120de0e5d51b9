// Package forge runs the complete license collection: it starts the
// license-listing command, ingests its report, builds the sorted records and
// writes the requested JSON and Markdown documents.
package forge

import (
	"context"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ajxudir/licenseforge/pkg/cmdexec"
	"github.com/ajxudir/licenseforge/pkg/config"
	"github.com/ajxudir/licenseforge/pkg/errors"
	"github.com/ajxudir/licenseforge/pkg/licensefile"
	"github.com/ajxudir/licenseforge/pkg/logging"
	"github.com/ajxudir/licenseforge/pkg/output"
	"github.com/ajxudir/licenseforge/pkg/preflight"
	"github.com/ajxudir/licenseforge/pkg/records"
	"github.com/ajxudir/licenseforge/pkg/render"
	"github.com/ajxudir/licenseforge/pkg/report"
)

// Validator checks the environment before the command is started.
type Validator interface {
	Validate(command, source string) *preflight.ValidateResult
}

// Runner executes forge runs.
//
// Fields:
//   - Logger: Receives progress and diagnostics; nil discards them
//   - Execute: Starts the license-listing command; nil uses cmdexec.ExecuteWithContext
//   - Preflight: Environment checks; nil skips them
type Runner struct {
	Logger    logging.Logger
	Execute   cmdexec.ExecuteWithContextFunc
	Preflight Validator
}

// NewRunner creates a Runner that executes real commands and runs preflight checks.
func NewRunner(logger logging.Logger) *Runner {
	return &Runner{
		Logger:    logger,
		Execute:   cmdexec.ExecuteWithContext,
		Preflight: preflight.NewChecker(logger),
	}
}

// Run performs one forge run for cfg.
//
// It performs the following operations:
//   - Step 1: Returns immediately with a warning when no output file is configured
//   - Step 2: Runs the preflight checks
//   - Step 3: Runs the command in the directory containing cfg.Source
//   - Step 4: Parses the report and builds the sorted records, reading each license file once
//   - Step 5: Renders and writes the JSON and Markdown documents concurrently
//
// Each document replaces its file completely. When one document fails the
// other may still have been written.
//
// Parameters:
//   - ctx: Context for cancellation of the command and the writers
//   - cfg: Validated run configuration
//
// Returns:
//   - *output.Summary: What was written; empty for the no-output case
//   - error: *errors.SubprocessError, *errors.ReportParseError, *errors.FileResolutionError,
//     *errors.OutputWriteError, or a preflight *errors.ValidationError
func (r *Runner) Run(ctx context.Context, cfg *config.Config) (*output.Summary, error) {
	logger := logging.OrNop(r.Logger)
	logger.Debugf("Forge: START source=%s md=%q json=%q", cfg.Source, cfg.MarkdownFile, cfg.JSONFile)
	defer logger.Debugf("Forge: END")

	if !cfg.HasOutput() {
		logger.Warnf("No output specified; pass --Md-file and/or --Json-file")
		return &output.Summary{Licenses: []output.LicenseCount{}}, nil
	}

	if r.Preflight != nil {
		result := r.Preflight.Validate(cfg.Command, cfg.Source)
		for _, w := range result.Warnings {
			logger.Warnf("%s", w)
		}
		if result.HasErrors() {
			logger.Debugf("%s", result.ErrorMessage())
			return nil, result.Err()
		}
	}

	stdout, err := r.listLicenses(ctx, cfg)
	if err != nil {
		return nil, err
	}

	rep, err := report.Parse(stdout)
	if err != nil {
		return nil, err
	}
	logger.Infof("Report lists %d packages in %d license groups", rep.Len(), len(rep.Groups))

	resolver := licensefile.NewResolver(logger, cfg.SkipMissingPaths)
	recs, err := records.Build(rep, resolver)
	if err != nil {
		return nil, err
	}

	files, err := writeDocuments(ctx, logger, cfg, recs)
	summary := summarize(recs, files)
	if err != nil {
		return summary, err
	}

	logger.Logf("Wrote licenses of %d packages", summary.Records)
	return summary, nil
}

// listLicenses runs the license-listing command and returns its stdout.
//
// Any output on stderr fails the run, even when the command exits zero.
func (r *Runner) listLicenses(ctx context.Context, cfg *config.Config) ([]byte, error) {
	logger := logging.OrNop(r.Logger)

	execute := r.Execute
	if execute == nil {
		execute = cmdexec.ExecuteWithContext
	}

	dir := filepath.Dir(cfg.Source)
	logger.Infof("Running %q in %s", cfg.Command, dir)

	res, err := execute(ctx, cfg.Command, dir, cfg.TimeoutSeconds)
	stderr := strings.TrimSpace(string(res.Stderr))
	if err != nil || len(res.Stderr) > 0 {
		return nil, &errors.SubprocessError{Command: cfg.Command, Stderr: stderr, Err: err}
	}

	logger.Debugf("Command printed %d bytes", len(res.Stdout))
	return res.Stdout, nil
}

// writeDocuments renders and writes every configured document concurrently.
//
// Returns:
//   - []string: Files written successfully, in completion order
//   - error: First render or write error
func writeDocuments(ctx context.Context, logger logging.Logger, cfg *config.Config, recs []records.Record) ([]string, error) {
	var (
		mu    sync.Mutex
		files []string
	)
	written := func(path string) {
		mu.Lock()
		defer mu.Unlock()
		files = append(files, path)
	}

	g, gctx := errgroup.WithContext(ctx)

	if cfg.JSONFile != "" {
		g.Go(func() error {
			data, err := render.JSON(recs)
			if err != nil {
				return &errors.OutputWriteError{Path: cfg.JSONFile, Format: output.FormatJSON, Err: err}
			}
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := output.WriteFile(cfg.JSONFile, output.FormatJSON, data); err != nil {
				return err
			}
			logger.Infof("JSON written to %s", cfg.JSONFile)
			written(cfg.JSONFile)
			return nil
		})
	}

	if cfg.MarkdownFile != "" {
		g.Go(func() error {
			data := render.Markdown(recs)
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := output.WriteFile(cfg.MarkdownFile, output.FormatMarkdown, []byte(data)); err != nil {
				return err
			}
			logger.Infof("Markdown written to %s", cfg.MarkdownFile)
			written(cfg.MarkdownFile)
			return nil
		})
	}

	err := g.Wait()
	return files, err
}

func summarize(recs []records.Record, files []string) *output.Summary {
	licenseTypes := make([]string, len(recs))
	withText := 0
	for i, rec := range recs {
		licenseTypes[i] = rec.LicenseType
		if rec.LicenseOriginal != nil {
			withText++
		}
	}
	return &output.Summary{
		Records:         len(recs),
		WithLicenseText: withText,
		Licenses:        output.CountLicenses(licenseTypes),
		Files:           files,
	}
}
