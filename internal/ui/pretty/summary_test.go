package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gomdlinks/internal/ui/pretty"
)

func TestFormatDeadLink(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	assert.Equal(t, "[✖] http://example.com/missing\n", styles.FormatDeadLink("http://example.com/missing"))
}

func TestFormatFileLines(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	assert.Equal(t,
		"ERROR Possible dead link(s) found in docs/a.md (please update, or whitelist in .gomdlinks.yml).\n",
		styles.FormatFileFailure("docs/a.md", ".gomdlinks.yml"))

	assert.Equal(t,
		"SUCCESS All links in docs/b.md are alive.\n",
		styles.FormatFileSuccess("docs/b.md"))
}

func TestFormatRunLines(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	assert.Equal(t,
		"ERROR Possible dead link(s) found in this change. Please update a.md,c.md or whitelist in .gomdlinks.yml.\n",
		styles.FormatRunFailure([]string{"a.md", "c.md"}, ".gomdlinks.yml"))

	assert.Equal(t,
		"SUCCESS All links in all markdown files in this change are alive.\n",
		styles.FormatRunSuccess())
}

func TestFormatCounts(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	tests := []struct {
		name    string
		links   int
		files   int
		dead    int
		excused int
		want    string
	}{
		{"clean", 12, 3, 0, 0, "12 links checked in 3 files\n"},
		{"singular", 1, 1, 0, 0, "1 link checked in 1 file\n"},
		{"dead and excused", 5, 2, 1, 2, "5 links checked in 2 files, 1 dead, 2 excused\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, styles.FormatCounts(tt.links, tt.files, tt.dead, tt.excused))
		})
	}
}

func TestFormatDeadLink_Color(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(true)
	line := styles.FormatDeadLink("x")

	assert.Contains(t, line, "✖")
	assert.Contains(t, line, "x")
}
