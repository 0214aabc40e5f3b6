package cli

import "github.com/yaklabco/gomdlinks/pkg/analysis"

// Exit codes for gomdlinks.
const (
	// ExitSuccess indicates every checked link is alive or excused.
	ExitSuccess = 0

	// ExitDeadLinks indicates at least one dead link was found.
	ExitDeadLinks = 1

	// ExitFailure indicates bad usage, a configuration error or a failed run.
	ExitFailure = 1
)

// ExitCodeFromReport determines the exit code for a finished run.
func ExitCodeFromReport(report *analysis.Report) int {
	if report == nil || report.Passed {
		return ExitSuccess
	}
	return ExitDeadLinks
}
