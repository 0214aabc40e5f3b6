// Package runner checks a list of Markdown files concurrently.
package runner

// Options controls a multi-file run.
type Options struct {
	// Files are the user-specified Markdown paths, in command-line order.
	// Relative paths are resolved against the process working directory.
	Files []string

	// Jobs caps the number of files checked at once.
	// 0 or negative means one goroutine per file.
	Jobs int
}
