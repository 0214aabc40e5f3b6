package runner

import "github.com/yaklabco/gomdlinks/pkg/linkcheck"

// FileOutcome is the result of checking one input path.
type FileOutcome struct {
	// Path is the path as given on the command line.
	Path string

	// Missing is set when the path does not exist. Missing files are not
	// checked and never fail a run.
	Missing bool

	// Links holds one result per distinct link, in document order.
	Links []linkcheck.Result
}

// DeadLinks returns the links the checker classified as dead.
func (o FileOutcome) DeadLinks() []linkcheck.Result {
	var dead []linkcheck.Result
	for _, res := range o.Links {
		if res.IsDead() {
			dead = append(dead, res)
		}
	}
	return dead
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesRequested is the number of paths passed in Options.Files.
	FilesRequested int

	// FilesChecked is the number of files that existed and were checked.
	FilesChecked int

	// FilesMissing is the number of paths that did not exist.
	FilesMissing int

	// LinksTotal is the number of links checked across all files.
	LinksTotal int

	// LinksDead is the number of links classified as dead, before any are excused.
	LinksDead int

	// LinksIgnored is the number of links the checker skipped.
	LinksIgnored int
}

// Result is the overall runner result.
type Result struct {
	// Files contains one outcome per input path, in input order.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// NewResult builds a Result from outcomes given in input order and tallies
// its Stats.
func NewResult(outcomes []FileOutcome) *Result {
	result := &Result{
		Files: make([]FileOutcome, 0, len(outcomes)),
	}
	result.Stats.FilesRequested = len(outcomes)

	for _, outcome := range outcomes {
		result.accumulate(outcome)
	}
	return result
}

// HasDeadLinks reports whether any file holds a dead link, excused or not.
func (r *Result) HasDeadLinks() bool {
	if r == nil {
		return false
	}
	return r.Stats.LinksDead > 0
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Missing {
		r.Stats.FilesMissing++
		return
	}

	r.Stats.FilesChecked++
	r.Stats.LinksTotal += len(outcome.Links)

	for _, res := range outcome.Links {
		switch res.Status {
		case linkcheck.StatusDead:
			r.Stats.LinksDead++
		case linkcheck.StatusIgnored:
			r.Stats.LinksIgnored++
		case linkcheck.StatusAlive:
		}
	}
}
