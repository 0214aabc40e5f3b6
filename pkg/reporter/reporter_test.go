package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdlinks/pkg/analysis"
	"github.com/yaklabco/gomdlinks/pkg/gitdiff"
	"github.com/yaklabco/gomdlinks/pkg/linkcheck"
	"github.com/yaklabco/gomdlinks/pkg/parser/goldmark"
	"github.com/yaklabco/gomdlinks/pkg/reporter"
	"github.com/yaklabco/gomdlinks/pkg/runner"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    reporter.Format
		wantErr bool
	}{
		{name: "empty defaults to text", input: "", want: reporter.FormatText},
		{name: "text", input: "text", want: reporter.FormatText},
		{name: "json", input: "json", want: reporter.FormatJSON},
		{name: "table", input: "table", want: reporter.FormatTable},
		{name: "unknown format", input: "xml", wantErr: true},
		{name: "sarif is not supported", input: "sarif", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := reporter.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat_IsValid(t *testing.T) {
	tests := []struct {
		format reporter.Format
		want   bool
	}{
		{reporter.FormatText, true},
		{reporter.FormatJSON, true},
		{reporter.FormatTable, true},
		{reporter.Format("unknown"), false},
		{reporter.Format(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.format.IsValid())
		})
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		format  reporter.Format
		wantErr bool
	}{
		{name: "text reporter", format: reporter.FormatText},
		{name: "json reporter", format: reporter.FormatJSON},
		{name: "empty defaults to text", format: ""},
		{name: "unknown format", format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			rep, err := reporter.New(reporter.Options{Writer: &buf, Format: tt.format})
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, rep)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, rep)
		})
	}
}

func result(files ...runner.FileOutcome) *runner.Result {
	return runner.NewResult(files)
}

func file(path string, links ...linkcheck.Result) runner.FileOutcome {
	return runner.FileOutcome{Path: path, Links: links}
}

func alive(link string) linkcheck.Result {
	return linkcheck.Result{Link: link, Status: linkcheck.StatusAlive}
}

func dead(link string) linkcheck.Result {
	return linkcheck.Result{Link: link, Status: linkcheck.StatusDead, StatusCode: 404}
}

func textReport(t *testing.T, opts reporter.Options, res *runner.Result) (string, *analysis.Report) {
	t.Helper()

	var buf bytes.Buffer
	opts.Writer = &buf
	opts.Color = "never"

	rep, err := reporter.New(opts)
	require.NoError(t, err)

	report, err := rep.Report(context.Background(), res)
	require.NoError(t, err)

	return buf.String(), report
}

func TestTextReporter_DeadLinkInOneFile(t *testing.T) {
	t.Parallel()

	out, report := textReport(t, reporter.Options{}, result(
		file("a.md", dead("http://example.com/missing"), alive("https://example.com")),
		file("b.md", alive("https://example.com")),
	))

	want := "[✖] http://example.com/missing\n" +
		"ERROR Possible dead link(s) found in a.md (please update, or whitelist in .gomdlinks.yml).\n" +
		"SUCCESS All links in b.md are alive.\n" +
		"ERROR Possible dead link(s) found in this change. Please update a.md or whitelist in .gomdlinks.yml.\n"

	assert.Equal(t, want, out)
	assert.False(t, report.Passed)
	assert.Equal(t, []string{"a.md"}, report.FilesWithDeadLinks)
}

func TestTextReporter_AllAlive(t *testing.T) {
	t.Parallel()

	out, report := textReport(t, reporter.Options{}, result(
		file("a.md", alive("https://example.com")),
		file("b.md"),
	))

	want := "SUCCESS All links in a.md are alive.\n" +
		"SUCCESS All links in b.md are alive.\n" +
		"SUCCESS All links in all markdown files in this change are alive.\n"

	assert.Equal(t, want, out)
	assert.True(t, report.Passed)
}

func TestTextReporter_ExcusedLinkIsNotReported(t *testing.T) {
	t.Parallel()

	added := gitdiff.NewAddedSet([]string{"docs/new-guide.md"})

	out, report := textReport(t, reporter.Options{Excuser: added}, result(
		file("a.md", dead("./new-guide.md")),
	))

	assert.NotContains(t, out, "✖")
	assert.Equal(t,
		"SUCCESS All links in a.md are alive.\n"+
			"SUCCESS All links in all markdown files in this change are alive.\n",
		out)
	assert.True(t, report.Passed)
	assert.Equal(t, 1, report.Totals.ExcusedLinks)
}

func TestTextReporter_MissingFilePrintsNothing(t *testing.T) {
	t.Parallel()

	out, report := textReport(t, reporter.Options{}, result(
		runner.FileOutcome{Path: "deleted.md", Missing: true},
		file("a.md", alive("https://example.com")),
	))

	assert.NotContains(t, out, "deleted.md")
	assert.True(t, report.Passed)
}

func TestTextReporter_MultipleFailingFiles(t *testing.T) {
	t.Parallel()

	out, _ := textReport(t, reporter.Options{WhitelistHint: "ci/links.yml"}, result(
		file("a.md", dead("http://x.example/1"), dead("http://x.example/2")),
		file("b.md", alive("https://example.com")),
		file("c.md", dead("missing.md")),
	))

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "[✖] http://x.example/1", lines[0])
	assert.Equal(t, "[✖] http://x.example/2", lines[1])
	assert.Contains(t, lines[2], "found in a.md")
	assert.Contains(t, lines[3], "All links in b.md are alive.")
	assert.Equal(t, "[✖] missing.md", lines[4])
	assert.Contains(t, lines[5], "found in c.md")
	assert.Equal(t,
		"ERROR Possible dead link(s) found in this change. Please update a.md,c.md or whitelist in ci/links.yml.",
		lines[6])
}

func TestTextReporter_ShowCounts(t *testing.T) {
	t.Parallel()

	out, _ := textReport(t, reporter.Options{ShowCounts: true}, result(
		file("a.md", alive("https://example.com"), alive("b.md")),
	))

	assert.Contains(t, out, "2 links checked in 1 file\n")
}

func TestTextReporter_NoFiles(t *testing.T) {
	t.Parallel()

	out, report := textReport(t, reporter.Options{}, result())

	assert.Equal(t, "SUCCESS All links in all markdown files in this change are alive.\n", out)
	assert.True(t, report.Passed)
}

func TestJSONReporter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep, err := reporter.New(reporter.Options{Writer: &buf, Format: reporter.FormatJSON, Compact: true})
	require.NoError(t, err)

	missing := dead("http://example.com/missing")
	missing.Kind = goldmark.KindAuto
	missing.Elapsed = 42 * time.Millisecond

	report, err := rep.Report(context.Background(), result(
		file("a.md", missing),
		runner.FileOutcome{Path: "gone.md", Missing: true},
		file("b.md", alive("https://example.com")),
	))
	require.NoError(t, err)
	assert.False(t, report.Passed)

	assert.Equal(t, 1, strings.Count(buf.String(), "\n"), "compact output is one line")

	var decoded struct {
		Passed             bool     `json:"passed"`
		FilesWithDeadLinks []string `json:"filesWithDeadLinks"`
		Files              []struct {
			Path      string `json:"path"`
			Skipped   bool   `json:"skipped"`
			DeadLinks []struct {
				Link       string `json:"link"`
				Kind       string `json:"kind"`
				StatusCode int    `json:"statusCode"`
				ElapsedMS  int64  `json:"elapsedMs"`
			} `json:"deadLinks"`
		} `json:"files"`
		Summary struct {
			DeadLinks int `json:"deadLinks"`
		} `json:"summary"`
		Version string `json:"version"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.False(t, decoded.Passed)
	assert.Equal(t, []string{"a.md"}, decoded.FilesWithDeadLinks)
	require.Len(t, decoded.Files, 3)
	assert.Equal(t, "http://example.com/missing", decoded.Files[0].DeadLinks[0].Link)
	assert.Equal(t, 404, decoded.Files[0].DeadLinks[0].StatusCode)
	assert.Equal(t, "auto", decoded.Files[0].DeadLinks[0].Kind)
	assert.Equal(t, int64(42), decoded.Files[0].DeadLinks[0].ElapsedMS)
	assert.True(t, decoded.Files[1].Skipped)
	assert.Equal(t, 1, decoded.Summary.DeadLinks)
	assert.Equal(t, analysis.ReportVersion, decoded.Version)
}

func TestJSONReporter_EmptyArrays(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep, err := reporter.New(reporter.Options{Writer: &buf, Format: reporter.FormatJSON})
	require.NoError(t, err)

	_, err = rep.Report(context.Background(), result())
	require.NoError(t, err)

	assert.Contains(t, buf.String(), `"files": []`)
	assert.Contains(t, buf.String(), `"filesWithDeadLinks": []`)
	assert.Contains(t, buf.String(), `"passed": true`)
}

func TestTableReporter(t *testing.T) {
	t.Parallel()

	added := gitdiff.NewAddedSet([]string{"docs/new-guide.md"})

	missing := dead("http://example.com/missing")
	missing.Kind = goldmark.KindInline
	missing.Elapsed = 120 * time.Millisecond

	out, report := textReport(t, reporter.Options{Format: reporter.FormatTable, Excuser: added}, result(
		file("a.md", missing, dead("new-guide.md")),
		file("b.md", alive("https://example.com")),
		file("c.md", linkcheck.Result{Link: "http://slow.example", Status: linkcheck.StatusDead, Err: errors.New("timeout")}),
	))

	assert.False(t, report.Passed)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 9)
	assert.Contains(t, lines[0], "FILE")
	assert.Contains(t, lines[0], "LINK")
	assert.Contains(t, lines[0], "KIND")
	assert.Contains(t, lines[0], "STATUS")
	assert.True(t, strings.HasPrefix(lines[1], "===="))
	assert.Contains(t, lines[2], "http://example.com/missing")
	assert.Contains(t, lines[2], "inline")
	assert.Contains(t, lines[2], "HTTP 404 (120ms)")
	assert.Contains(t, lines[3], "new-guide.md")
	assert.Contains(t, lines[3], "excused (added file)")
	assert.True(t, strings.HasPrefix(lines[4], "----"), "files are separated")
	assert.Contains(t, lines[5], "c.md")
	assert.Contains(t, lines[5], "timeout")
	assert.True(t, strings.HasPrefix(lines[6], "===="))
	assert.Equal(t, "4 links checked in 3 files, 2 dead, 1 excused", lines[7])
	assert.Equal(t,
		"ERROR Possible dead link(s) found in this change. Please update a.md,c.md or whitelist in .gomdlinks.yml.",
		lines[8])
}

func TestTableReporter_AllAlive(t *testing.T) {
	t.Parallel()

	out, report := textReport(t, reporter.Options{Format: reporter.FormatTable}, result(
		file("a.md", alive("https://example.com")),
	))

	assert.True(t, report.Passed)
	assert.Equal(t,
		"1 link checked in 1 file\n"+
			"SUCCESS All links in all markdown files in this change are alive.\n",
		out)
}
