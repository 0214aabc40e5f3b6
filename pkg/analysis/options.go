package analysis

// Excuser decides whether a dead link is forgiven.
// *gitdiff.Lazy and *gitdiff.AddedSet implement it.
type Excuser interface {
	Excuses(link string) bool
}

// Options configures the Analyze function.
type Options struct {
	// Excuser forgives dead links that point at files added in this change.
	// Nil excuses nothing.
	Excuser Excuser

	// WorkingDir is the directory to make absolute paths relative to.
	// If empty, paths are kept as given.
	WorkingDir string
}
