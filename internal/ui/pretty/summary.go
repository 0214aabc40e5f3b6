package pretty

import (
	"fmt"
	"strings"
)

const (
	deadMark     = "✖"
	labelError   = "ERROR"
	labelSuccess = "SUCCESS"
)

// FormatDeadLink formats the line printed for one qualifying dead link.
// Example: "[✖] http://example.com/missing".
func (s *Styles) FormatDeadLink(link string) string {
	return fmt.Sprintf("[%s] %s\n", s.DeadMarker.Render(deadMark), s.Link.Render(link))
}

// FormatFileFailure formats the per-file line for a file with dead links.
// whitelistHint names where the user can whitelist links.
func (s *Styles) FormatFileFailure(path, whitelistHint string) string {
	return fmt.Sprintf("%s Possible dead link(s) found in %s (please update, or whitelist in %s).\n",
		s.Error.Render(labelError),
		s.FilePath.Render(path),
		s.Hint.Render(whitelistHint),
	)
}

// FormatFileSuccess formats the per-file line for a file whose links are all alive.
func (s *Styles) FormatFileSuccess(path string) string {
	return fmt.Sprintf("%s All links in %s are alive.\n",
		s.Success.Render(labelSuccess),
		s.FilePath.Render(path),
	)
}

// FormatRunFailure formats the aggregate line naming every file with dead links.
func (s *Styles) FormatRunFailure(paths []string, whitelistHint string) string {
	return fmt.Sprintf("%s Possible dead link(s) found in this change. Please update %s or whitelist in %s.\n",
		s.Error.Render(labelError),
		s.FilePath.Render(strings.Join(paths, ",")),
		s.Hint.Render(whitelistHint),
	)
}

// FormatRunSuccess formats the aggregate line for a run without dead links.
func (s *Styles) FormatRunSuccess() string {
	return s.Success.Render(labelSuccess) + " All links in all markdown files in this change are alive.\n"
}

// FormatCounts formats a dim one-line tally.
// Example: "12 links checked in 3 files, 1 dead, 2 excused".
func (s *Styles) FormatCounts(links, files, dead, excused int) string {
	parts := []string{fmt.Sprintf("%d %s checked in %d %s", links, plural(links, "link", "links"), files, plural(files, "file", "files"))}
	if dead > 0 {
		parts = append(parts, fmt.Sprintf("%d dead", dead))
	}
	if excused > 0 {
		parts = append(parts, fmt.Sprintf("%d excused", excused))
	}
	return s.Dim.Render(strings.Join(parts, ", ")) + "\n"
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
