package reporter

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdlinks/pkg/analysis"
	"github.com/yaklabco/gomdlinks/pkg/linkcheck"
	"github.com/yaklabco/gomdlinks/pkg/runner"
)

type failingRenderer struct {
	err  error
	seen *analysis.Report
}

func (r *failingRenderer) Render(_ context.Context, report *analysis.Report) error {
	r.seen = report
	return r.err
}

func TestReporter_FacadeReturnsReport(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep, err := New(Options{Writer: &buf, Format: FormatJSON})
	require.NoError(t, err)

	report, err := rep.Report(context.Background(), runner.NewResult([]runner.FileOutcome{{
		Path: "test.md",
		Links: []linkcheck.Result{
			{Link: "http://a.example", Status: linkcheck.StatusDead, StatusCode: 404},
			{Link: "http://b.example", Status: linkcheck.StatusAlive},
		},
	}}))
	require.NoError(t, err)
	require.NotNil(t, report)
	assert.Equal(t, 1, report.Totals.DeadLinks)
	assert.False(t, report.Passed)
}

func TestReporter_FacadeWrapsRenderError(t *testing.T) {
	t.Parallel()

	boom := errors.New("disk full")
	renderer := &failingRenderer{err: boom}
	facade := newRendererFacade(renderer, Options{WorkingDir: "/work"})

	report, err := facade.Report(context.Background(), runner.NewResult([]runner.FileOutcome{{Path: "/work/docs/a.md"}}))
	require.ErrorIs(t, err, boom)
	require.NotNil(t, report, "the analyzed report is returned with the error")
	assert.Same(t, report, renderer.seen)
	assert.Equal(t, "docs/a.md", report.Files[0].Path)
}
