package pretty

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableFormatter_Empty(t *testing.T) {
	t.Parallel()

	formatter := NewTableFormatter(NewStyles(false), 80)
	assert.Empty(t, formatter.FormatTable(nil))
}

func TestTableFormatter_GroupsByFile(t *testing.T) {
	t.Parallel()

	formatter := NewTableFormatter(NewStyles(false), 0)
	out := formatter.FormatTable([]TableRow{
		{File: "a.md", Link: "http://a.example/1", Kind: "image", Status: "HTTP 404"},
		{File: "a.md", Link: "http://a.example/2", Status: "HTTP 500"},
		{File: "b.md", Link: "new.md", Status: "excused", Excused: true},
	})

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 7)
	assert.True(t, strings.HasPrefix(lines[0], " FILE"))
	assert.Contains(t, lines[0], "KIND")
	assert.Contains(t, lines[2], "image")
	assert.Equal(t, strings.Repeat("=", len(lines[1])), lines[1])
	assert.Contains(t, lines[2], "http://a.example/1")
	assert.Contains(t, lines[3], "http://a.example/2")
	assert.Equal(t, strings.Repeat("-", len(lines[4])), lines[4])
	assert.Contains(t, lines[5], "b.md")
	assert.Equal(t, lines[1], lines[6])
}

func TestTableFormatter_FitsTerminal(t *testing.T) {
	t.Parallel()

	longLink := "https://example.com/" + strings.Repeat("segment/", 20)
	formatter := NewTableFormatter(NewStyles(false), 80)
	widths := formatter.calculateColumnWidths([]TableRow{
		{File: "docs/guide.md", Link: longLink, Status: "HTTP 404"},
	})

	assert.Equal(t, 80, totalWidth(widths))
	assert.Equal(t, len("docs/guide.md"), widths.file)

	row := formatter.formatRow(TableRow{File: "docs/guide.md", Link: longLink, Status: "HTTP 404"}, widths)
	assert.Contains(t, row, "...")
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short", truncateString("short", 10))
	assert.Equal(t, "https:...", truncateString("https://example.com", 9))
	assert.Equal(t, "ab", truncateString("abcdef", 2))

	assert.Equal(t, "docs/a.md", truncateFilePath("docs/a.md", 20))
	assert.Equal(t, "...ide.md", truncateFilePath("very/long/path/guide.md", 9))
	assert.Equal(t, ".md", truncateFilePath("guide.md", 3))
}
