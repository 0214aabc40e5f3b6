package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/gomdlinks/pkg/analysis"
)

// JSONRenderer writes the report as a single JSON document.
type JSONRenderer struct {
	opts Options
}

// NewJSONRenderer creates a new JSON renderer.
func NewJSONRenderer(opts Options) *JSONRenderer {
	return &JSONRenderer{opts: opts}
}

// Render implements Renderer.
func (r *JSONRenderer) Render(_ context.Context, report *analysis.Report) (err error) {
	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if report == nil {
		report = &analysis.Report{Passed: true, Version: analysis.ReportVersion}
	}

	// Keep arrays as [] rather than null for consumers.
	out := *report
	if out.Files == nil {
		out.Files = []analysis.FileReport{}
	}
	if out.FilesWithDeadLinks == nil {
		out.FilesWithDeadLinks = []string{}
	}

	encoder := json.NewEncoder(bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(&out); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}

	return nil
}
