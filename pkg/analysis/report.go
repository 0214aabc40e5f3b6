package analysis

import "time"

// Report is the verdict of a run.
// Computed once by Analyze(), used by all renderers.
type Report struct {
	// Files holds one entry per input path, in input order.
	Files []FileReport `json:"files"`

	// FilesWithDeadLinks lists, in input order, the files that hold at least
	// one dead link that was not excused.
	FilesWithDeadLinks []string `json:"filesWithDeadLinks"`

	// Passed is true when no file holds a qualifying dead link.
	Passed bool `json:"passed"`

	// Totals contains aggregate statistics.
	Totals Totals `json:"summary"`

	// Version is the report format version.
	Version string `json:"version"`

	// Timestamp is when the analysis was performed.
	Timestamp time.Time `json:"timestamp"`
}

// FileReport is the verdict for a single file.
type FileReport struct {
	// Path is the display path of the file.
	Path string `json:"path"`

	// Skipped is set for paths that do not exist. Skipped files print nothing.
	Skipped bool `json:"skipped,omitempty"`

	// Links is the number of distinct links checked.
	Links int `json:"links"`

	// DeadLinks are the dead links that were not excused, in document order.
	DeadLinks []DeadLink `json:"deadLinks,omitempty"`

	// Excused are dead links forgiven because they name a file added in this change.
	Excused []string `json:"excused,omitempty"`
}

// Failed reports whether the file holds a qualifying dead link.
func (f FileReport) Failed() bool {
	return len(f.DeadLinks) > 0
}

// DeadLink describes one qualifying dead link.
type DeadLink struct {
	Link string `json:"link"`

	// Kind says where the link was found: inline, image, auto or html.
	Kind string `json:"kind,omitempty"`

	Target     string `json:"target,omitempty"`
	StatusCode int    `json:"statusCode,omitempty"`
	Error      string `json:"error,omitempty"`

	// ElapsedMS is how long the probe took, in milliseconds.
	ElapsedMS int64 `json:"elapsedMs,omitempty"`
}

// Totals contains aggregate statistics for the report.
type Totals struct {
	Files              int `json:"files"`
	FilesChecked       int `json:"filesChecked"`
	FilesSkipped       int `json:"filesSkipped"`
	FilesWithDeadLinks int `json:"filesWithDeadLinks"`
	Links              int `json:"links"`
	DeadLinks          int `json:"deadLinks"`
	ExcusedLinks       int `json:"excusedLinks"`
	IgnoredLinks       int `json:"ignoredLinks"`
}
