// Package reporter renders the verdict of a link check run.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/gomdlinks/internal/logging"
	"github.com/yaklabco/gomdlinks/pkg/analysis"
	"github.com/yaklabco/gomdlinks/pkg/runner"
)

// Compile-time interface check for reporterFacade.
var _ Reporter = (*reporterFacade)(nil)

// Reporter reduces and writes link check results.
type Reporter interface {
	// Report analyzes result, writes formatted output and returns the report
	// so the caller can decide the exit status.
	Report(ctx context.Context, result *runner.Result) (*analysis.Report, error)
}

// reporterFacade bridges the Reporter interface to Renderer implementations.
type reporterFacade struct {
	renderer     Renderer
	analysisOpts analysis.Options
}

// Report implements Reporter by analyzing the result and rendering it.
func (f *reporterFacade) Report(ctx context.Context, result *runner.Result) (*analysis.Report, error) {
	report := analysis.Analyze(result, f.analysisOpts)

	logging.FromContext(ctx).Debug("analyzed results",
		logging.FieldFilesChecked, report.Totals.FilesChecked,
		logging.FieldLinksTotal, report.Totals.Links,
		logging.FieldDeadLinks, report.Totals.DeadLinks,
		logging.FieldExcusedLinks, report.Totals.ExcusedLinks,
	)

	if err := f.renderer.Render(ctx, report); err != nil {
		return report, fmt.Errorf("render: %w", err)
	}
	return report, nil
}

// newRendererFacade creates a facade wrapping a Renderer.
func newRendererFacade(renderer Renderer, opts Options) *reporterFacade {
	return &reporterFacade{
		renderer: renderer,
		analysisOpts: analysis.Options{
			Excuser:    opts.Excuser,
			WorkingDir: opts.WorkingDir,
		},
	}
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	defaults := DefaultOptions()
	if opts.Writer == nil {
		opts.Writer = defaults.Writer
	}
	if opts.WhitelistHint == "" {
		opts.WhitelistHint = defaults.WhitelistHint
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}

	switch format {
	case FormatJSON:
		return newRendererFacade(NewJSONRenderer(opts), opts), nil
	case FormatText:
		return newRendererFacade(NewTextRenderer(opts), opts), nil
	case FormatTable:
		return newRendererFacade(NewTableRenderer(opts), opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
