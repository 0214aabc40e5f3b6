package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/gomdlinks/internal/ui/pretty"
	"github.com/yaklabco/gomdlinks/pkg/analysis"
)

// TextRenderer writes the human status lines.
type TextRenderer struct {
	opts   Options
	styles *pretty.Styles
}

// NewTextRenderer creates a new text renderer.
func NewTextRenderer(opts Options) *TextRenderer {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextRenderer{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
	}
}

// Render implements Renderer.
//
// Files are written in input order. A checked file prints one line per
// qualifying dead link followed by an ERROR or SUCCESS line; skipped files
// print nothing. One aggregate line closes the output.
func (r *TextRenderer) Render(_ context.Context, report *analysis.Report) (err error) {
	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if report == nil {
		report = &analysis.Report{Passed: true}
	}

	for _, file := range report.Files {
		if file.Skipped {
			continue
		}

		for _, dead := range file.DeadLinks {
			fmt.Fprint(bw, r.styles.FormatDeadLink(dead.Link))
		}

		if file.Failed() {
			fmt.Fprint(bw, r.styles.FormatFileFailure(file.Path, r.opts.WhitelistHint))
		} else {
			fmt.Fprint(bw, r.styles.FormatFileSuccess(file.Path))
		}
	}

	if r.opts.ShowCounts {
		totals := report.Totals
		fmt.Fprint(bw, r.styles.FormatCounts(totals.Links, totals.FilesChecked, totals.DeadLinks, totals.ExcusedLinks))
	}

	if report.Passed {
		fmt.Fprint(bw, r.styles.FormatRunSuccess())
	} else {
		fmt.Fprint(bw, r.styles.FormatRunFailure(report.FilesWithDeadLinks, r.opts.WhitelistHint))
	}

	return nil
}
