package runner

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"

	"github.com/yaklabco/gomdlinks/internal/logging"
	"github.com/yaklabco/gomdlinks/pkg/fsutil"
	"github.com/yaklabco/gomdlinks/pkg/linkcheck"
	"github.com/yaklabco/gomdlinks/pkg/whitelist"
)

// LinkChecker validates the links of a Markdown document.
// *linkcheck.Checker is the production implementation.
type LinkChecker interface {
	CheckMarkdown(ctx context.Context, markdown string, opts linkcheck.Options) ([]linkcheck.Result, error)
}

// Adapter prepares one file for the link checker: it skips missing paths,
// strips whitelisted links and resolves relative links against the file's
// directory.
type Adapter struct {
	// Checker validates the filtered Markdown.
	Checker LinkChecker

	// Filter strips whitelisted links. Nil means the built-in rules.
	Filter *whitelist.Filter
}

// NewAdapter creates an Adapter.
func NewAdapter(checker LinkChecker, filter *whitelist.Filter) *Adapter {
	if filter == nil {
		filter = whitelist.Default()
	}
	return &Adapter{Checker: checker, Filter: filter}
}

// CheckFile checks the links of the file at path.
//
// A path that does not exist yields an outcome with Missing set and no error.
// Read, filter and checker failures are returned as errors.
func (a *Adapter) CheckFile(ctx context.Context, path string) (FileOutcome, error) {
	outcome := FileOutcome{Path: path}
	logger := logging.FromContext(ctx)

	if !fsutil.Exists(path) {
		logger.Debug("skipping missing file", logging.FieldPath, path)
		outcome.Missing = true
		return outcome, nil
	}

	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return outcome, fmt.Errorf("read %s: %w", path, err)
	}

	filter := a.Filter
	if filter == nil {
		filter = whitelist.Default()
	}

	markdown, err := filter.Apply(string(content))
	if err != nil {
		return outcome, fmt.Errorf("whitelist %s: %w", path, err)
	}

	baseURL, err := BaseURL(path)
	if err != nil {
		return outcome, err
	}

	logger.Debug("checking file", logging.FieldPath, path, logging.FieldBaseURL, baseURL)

	links, err := a.Checker.CheckMarkdown(ctx, markdown, linkcheck.Options{BaseURL: baseURL})
	if err != nil {
		return outcome, fmt.Errorf("check %s: %w", path, err)
	}

	outcome.Links = links
	return outcome, nil
}

// BaseURL returns the file:// URL of the directory containing path, with a
// trailing slash so relative links resolve inside it.
func BaseURL(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path %s: %w", path, err)
	}

	dir := filepath.ToSlash(filepath.Dir(abs))
	if len(dir) == 0 || dir[len(dir)-1] != '/' {
		dir += "/"
	}
	// Windows drive paths ("C:/x") need a leading slash in a file URL.
	if dir[0] != '/' {
		dir = "/" + dir
	}

	u := url.URL{Scheme: "file", Path: dir}
	return u.String(), nil
}
