package reporter

import (
	"io"
	"os"

	"github.com/yaklabco/gomdlinks/pkg/analysis"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// DefaultWhitelistHint is where users are told to whitelist links.
const DefaultWhitelistHint = ".gomdlinks.yml"

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// Format specifies the output format.
	Format Format

	// Color controls colorized output.
	// Values: "auto" (default), "always", "never"
	Color string

	// ShowCounts appends a tally line to text output.
	ShowCounts bool

	// Compact uses minified JSON.
	Compact bool

	// WhitelistHint names the file users should edit to whitelist a link.
	WhitelistHint string

	// Excuser forgives dead links to files added in this change.
	// Nil excuses nothing.
	Excuser analysis.Excuser

	// WorkingDir is the directory to make absolute paths relative to.
	// If empty, paths are kept as given.
	WorkingDir string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:        os.Stdout,
		Format:        FormatText,
		Color:         "auto",
		WhitelistHint: DefaultWhitelistHint,
	}
}
