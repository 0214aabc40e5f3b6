package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"

	"golang.org/x/term"

	"github.com/yaklabco/gomdlinks/internal/ui/pretty"
	"github.com/yaklabco/gomdlinks/pkg/analysis"
)

// defaultTermWidth is used when terminal width cannot be determined.
const defaultTermWidth = 100

// excusedStatus labels links forgiven because they name an added file.
const excusedStatus = "excused (added file)"

// TableRenderer lists dead and excused links in a table, followed by the
// same aggregate line the text renderer ends with.
type TableRenderer struct {
	opts      Options
	styles    *pretty.Styles
	formatter *pretty.TableFormatter
}

// NewTableRenderer creates a new table renderer.
func NewTableRenderer(opts Options) *TableRenderer {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	styles := pretty.NewStyles(colorEnabled)

	return &TableRenderer{
		opts:      opts,
		styles:    styles,
		formatter: pretty.NewTableFormatter(styles, getTerminalWidth(opts.Writer)),
	}
}

// Render implements Renderer.
func (r *TableRenderer) Render(_ context.Context, report *analysis.Report) (err error) {
	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if report == nil {
		report = &analysis.Report{Passed: true}
	}

	if rows := tableRows(report); len(rows) > 0 {
		fmt.Fprint(bw, r.formatter.FormatTable(rows))
	}

	totals := report.Totals
	fmt.Fprint(bw, r.styles.FormatCounts(totals.Links, totals.FilesChecked, totals.DeadLinks, totals.ExcusedLinks))

	if report.Passed {
		fmt.Fprint(bw, r.styles.FormatRunSuccess())
	} else {
		fmt.Fprint(bw, r.styles.FormatRunFailure(report.FilesWithDeadLinks, r.opts.WhitelistHint))
	}

	return nil
}

// tableRows flattens the report into rows, dead links before excused ones
// within each file.
func tableRows(report *analysis.Report) []pretty.TableRow {
	var rows []pretty.TableRow

	for _, file := range report.Files {
		for _, dead := range file.DeadLinks {
			rows = append(rows, pretty.TableRow{
				File:   file.Path,
				Link:   dead.Link,
				Kind:   dead.Kind,
				Status: deadStatus(dead),
			})
		}
		for _, link := range file.Excused {
			rows = append(rows, pretty.TableRow{
				File:    file.Path,
				Link:    link,
				Status:  excusedStatus,
				Excused: true,
			})
		}
	}

	return rows
}

// deadStatus describes why a link is dead and, when measurable, how long
// the probe took.
func deadStatus(dead analysis.DeadLink) string {
	var status string
	switch {
	case dead.StatusCode > 0:
		status = "HTTP " + strconv.Itoa(dead.StatusCode)
	case dead.Error != "":
		status = dead.Error
	default:
		status = "dead"
	}

	if dead.ElapsedMS > 0 {
		status += " (" + strconv.FormatInt(dead.ElapsedMS, 10) + "ms)"
	}
	return status
}

// getTerminalWidth attempts to get the terminal width from the writer.
func getTerminalWidth(writer io.Writer) int {
	if f, ok := writer.(interface{ Fd() uintptr }); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return defaultTermWidth
}
