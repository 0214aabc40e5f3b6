// Package gitdiff lists the files a change adds relative to a base revision and
// answers whether a link points at one of them.
package gitdiff

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/yaklabco/stave/pkg/sh"
)

// RunFunc runs a command and returns its standard output.
type RunFunc func(cmd string, args ...string) (string, error)

// Lister runs "git diff --name-only --diff-filter=A <base>...HEAD".
type Lister struct {
	// BaseRef is the mainline revision the change is compared with.
	BaseRef string

	// Run executes git. Defaults to stave's sh.Output.
	Run RunFunc
}

// NewLister creates a Lister for baseRef using the real git binary.
func NewLister(baseRef string) *Lister {
	return &Lister{BaseRef: baseRef, Run: sh.Output}
}

// Args returns the git arguments used to list added files.
func (l *Lister) Args() []string {
	return []string{"diff", "--name-only", "--diff-filter=A", l.BaseRef + "...HEAD"}
}

// AddedFiles returns the repository-relative paths added since BaseRef.
// The call is synchronous and blocks until git exits.
func (l *Lister) AddedFiles(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("list added files: %w", err)
	}

	run := l.Run
	if run == nil {
		run = sh.Output
	}

	out, err := run("git", l.Args()...)
	if err != nil {
		return nil, fmt.Errorf("git %s: %w", strings.Join(l.Args(), " "), err)
	}

	return splitLines(out), nil
}

func splitLines(out string) []string {
	trimmed := strings.TrimSpace(out)
	if trimmed == "" {
		return nil
	}

	lines := strings.Split(trimmed, "\n")
	paths := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			paths = append(paths, line)
		}
	}
	return paths
}

// AddedSet holds the base names of added files. It is immutable once built.
type AddedSet struct {
	names []string
}

// NewAddedSet builds a set from repository-relative paths.
func NewAddedSet(paths []string) *AddedSet {
	seen := make(map[string]struct{}, len(paths))
	names := make([]string, 0, len(paths))
	for _, p := range paths {
		base := path.Base(strings.TrimSpace(p))
		if base == "" || base == "." || base == "/" {
			continue
		}
		if _, dup := seen[base]; dup {
			continue
		}
		seen[base] = struct{}{}
		names = append(names, base)
	}
	return &AddedSet{names: names}
}

// Len returns the number of distinct base names.
func (s *AddedSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.names)
}

// Names returns the base names in first-seen order.
func (s *AddedSet) Names() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Excuses reports whether link mentions the base name of any added file.
//
// Only the last path segment is compared, and only by substring, so a link to
// docs/a/bar.md is excused when some other bar.md was added. Two files sharing a
// base name can therefore hide a real dead link.
func (s *AddedSet) Excuses(link string) bool {
	if s == nil {
		return false
	}
	for _, name := range s.names {
		if strings.Contains(link, name) {
			return true
		}
	}
	return false
}

// Lazy defers the git call until the first lookup and reuses the result.
// It is not safe for concurrent use; the report is reduced on one goroutine.
type Lazy struct {
	ctx    context.Context //nolint:containedctx // Captured for the deferred git call.
	lister *Lister

	loaded bool
	set    *AddedSet
	err    error
}

// NewLazy wraps lister so that git only runs if a dead link needs excusing.
func NewLazy(ctx context.Context, lister *Lister) *Lazy {
	return &Lazy{ctx: ctx, lister: lister}
}

// Excuses loads the added-file set on first use. A failed git call leaves the
// set empty, so nothing is excused; the error is kept for Err.
func (l *Lazy) Excuses(link string) bool {
	if !l.loaded {
		l.loaded = true
		paths, err := l.lister.AddedFiles(l.ctx)
		l.err = err
		l.set = NewAddedSet(paths)
	}
	return l.set.Excuses(link)
}

// Loaded reports whether git has been invoked.
func (l *Lazy) Loaded() bool {
	return l.loaded
}

// Set returns the loaded set, or nil before the first lookup.
func (l *Lazy) Set() *AddedSet {
	return l.set
}

// Err returns the git error from the first lookup, if any.
func (l *Lazy) Err() error {
	return l.err
}
