package analysis

import (
	"path/filepath"
	"time"

	"github.com/yaklabco/gomdlinks/pkg/linkcheck"
	"github.com/yaklabco/gomdlinks/pkg/runner"
)

// ReportVersion is the current report format version.
const ReportVersion = "1.0.0"

// makeRelativePath converts an absolute path to a relative path from workDir.
// Relative paths, an empty workDir or a failed conversion keep the original path.
func makeRelativePath(path, workDir string) string {
	if workDir == "" || !filepath.IsAbs(path) {
		return path
	}
	relPath, err := filepath.Rel(workDir, path)
	if err != nil {
		return path
	}
	return relPath
}

// Analyze reduces a runner.Result into a Report in a single pass, in file
// order. A dead link counts against its file unless opts.Excuser forgives it.
// Missing files are skipped and never affect the verdict. File and link
// counts come from the runner's Stats.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{
		Passed:    true,
		Version:   ReportVersion,
		Timestamp: time.Now(),
	}

	if result == nil {
		return report
	}

	stats := result.Stats
	report.Totals = Totals{
		Files:        stats.FilesRequested,
		FilesChecked: stats.FilesChecked,
		FilesSkipped: stats.FilesMissing,
		Links:        stats.LinksTotal,
		IgnoredLinks: stats.LinksIgnored,
	}

	report.Files = make([]FileReport, 0, len(result.Files))

	for _, outcome := range result.Files {
		fileReport := FileReport{Path: makeRelativePath(outcome.Path, opts.WorkingDir)}

		if outcome.Missing {
			fileReport.Skipped = true
			report.Files = append(report.Files, fileReport)
			continue
		}

		fileReport.Links = len(outcome.Links)

		for _, res := range outcome.DeadLinks() {
			if opts.Excuser != nil && opts.Excuser.Excuses(res.Link) {
				fileReport.Excused = append(fileReport.Excused, res.Link)
				report.Totals.ExcusedLinks++
				continue
			}

			fileReport.DeadLinks = append(fileReport.DeadLinks, newDeadLink(res))
			report.Totals.DeadLinks++
		}

		if fileReport.Failed() {
			report.Passed = false
			report.FilesWithDeadLinks = append(report.FilesWithDeadLinks, fileReport.Path)
			report.Totals.FilesWithDeadLinks++
		}

		report.Files = append(report.Files, fileReport)
	}

	return report
}

func newDeadLink(res linkcheck.Result) DeadLink {
	dead := DeadLink{
		Link:       res.Link,
		Kind:       string(res.Kind),
		StatusCode: res.StatusCode,
		ElapsedMS:  res.Elapsed.Milliseconds(),
	}
	if res.Target != res.Link {
		dead.Target = res.Target
	}
	if res.Err != nil {
		dead.Error = res.Err.Error()
	}
	return dead
}
