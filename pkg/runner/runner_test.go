package runner_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdlinks/pkg/linkcheck"
	"github.com/yaklabco/gomdlinks/pkg/runner"
	"github.com/yaklabco/gomdlinks/pkg/whitelist"
)

// stubLinkChecker marks every link containing "missing" as dead.
type stubLinkChecker struct {
	mu       sync.Mutex
	seen     []string
	baseURLs []string
	err      error
}

func (s *stubLinkChecker) CheckMarkdown(
	_ context.Context, markdown string, opts linkcheck.Options,
) ([]linkcheck.Result, error) {
	s.mu.Lock()
	s.seen = append(s.seen, markdown)
	s.baseURLs = append(s.baseURLs, opts.BaseURL)
	s.mu.Unlock()

	if s.err != nil {
		return nil, s.err
	}

	var results []linkcheck.Result
	for _, field := range strings.Fields(markdown) {
		if !strings.HasPrefix(field, "http") {
			continue
		}
		status := linkcheck.StatusAlive
		if strings.Contains(field, "missing") {
			status = linkcheck.StatusDead
		}
		results = append(results, linkcheck.Result{Link: field, Status: status})
	}
	return results, nil
}

// fileCheckerFunc adapts a function to runner.FileChecker.
type fileCheckerFunc func(ctx context.Context, path string) (runner.FileOutcome, error)

func (f fileCheckerFunc) CheckFile(ctx context.Context, path string) (runner.FileOutcome, error) {
	return f(ctx, path)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestAdapter_CheckFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "a.md", "http://example.com/missing http://localhost:8000/x https://example.com/ok")

	checker := &stubLinkChecker{}
	adapter := runner.NewAdapter(checker, nil)

	outcome, err := adapter.CheckFile(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, path, outcome.Path)
	assert.False(t, outcome.Missing)
	require.Len(t, outcome.Links, 2)

	dead := outcome.DeadLinks()
	require.Len(t, dead, 1)
	assert.Equal(t, "http://example.com/missing", dead[0].Link)

	// The checker sees whitelisted text, resolved against the file's directory.
	require.Len(t, checker.seen, 1)
	assert.NotContains(t, checker.seen[0], "localhost:8000")

	wantBase, err := runner.BaseURL(path)
	require.NoError(t, err)
	assert.Equal(t, wantBase, checker.baseURLs[0])
	assert.True(t, strings.HasPrefix(wantBase, "file:///"))
	assert.True(t, strings.HasSuffix(wantBase, "/"))
}

func TestAdapter_CheckFile_Missing(t *testing.T) {
	t.Parallel()

	checker := &stubLinkChecker{}
	adapter := runner.NewAdapter(checker, nil)

	outcome, err := adapter.CheckFile(context.Background(), filepath.Join(t.TempDir(), "nope.md"))
	require.NoError(t, err)
	assert.True(t, outcome.Missing)
	assert.Empty(t, outcome.Links)
	assert.Empty(t, checker.seen, "missing files are not checked")
}

func TestAdapter_CheckFile_CustomWhitelist(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "a.md", "https://staging.example.com/missing https://example.com/ok")

	filter, err := whitelist.New(`https://staging\.example\.com\S*`)
	require.NoError(t, err)

	outcome, err := runner.NewAdapter(&stubLinkChecker{}, filter).CheckFile(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, outcome.DeadLinks())
}

func TestAdapter_CheckFile_CheckerError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "a.md", "text")

	boom := errors.New("boom")
	_, err := runner.NewAdapter(&stubLinkChecker{err: boom}, nil).CheckFile(context.Background(), path)
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), path)
}

func TestBaseURL_RelativePath(t *testing.T) {
	t.Parallel()

	got, err := runner.BaseURL(filepath.Join("docs", "a.md"))
	require.NoError(t, err)

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(got, filepath.ToSlash(filepath.Join(wd, "docs"))+"/"), got)
}

func TestRunner_Run_NoFiles(t *testing.T) {
	t.Parallel()

	result, err := runner.New(&stubFileChecker{}).Run(context.Background(), runner.Options{})
	require.NoError(t, err)
	assert.Empty(t, result.Files)
	assert.False(t, result.HasDeadLinks())
}

type stubFileChecker struct{}

func (stubFileChecker) CheckFile(_ context.Context, path string) (runner.FileOutcome, error) {
	return runner.FileOutcome{Path: path}, nil
}

func TestRunner_Run_PreservesInputOrder(t *testing.T) {
	t.Parallel()

	files := []string{"c.md", "a.md", "b.md", "missing.md"}

	// Later files finish first.
	checker := fileCheckerFunc(func(_ context.Context, path string) (runner.FileOutcome, error) {
		switch path {
		case "c.md":
			time.Sleep(30 * time.Millisecond)
		case "a.md":
			time.Sleep(15 * time.Millisecond)
		case "missing.md":
			return runner.FileOutcome{Path: path, Missing: true}, nil
		}
		return runner.FileOutcome{
			Path: path,
			Links: []linkcheck.Result{
				{Link: "https://example.com/" + path, Status: linkcheck.StatusAlive},
				{Link: "#top", Status: linkcheck.StatusIgnored},
				{Link: "http://example.com/missing", Status: linkcheck.StatusDead},
			},
		}, nil
	})

	result, err := runner.New(checker).Run(context.Background(), runner.Options{Files: files})
	require.NoError(t, err)
	require.Len(t, result.Files, len(files))

	for i, path := range files {
		assert.Equal(t, path, result.Files[i].Path)
	}

	assert.Equal(t, 4, result.Stats.FilesRequested)
	assert.Equal(t, 3, result.Stats.FilesChecked)
	assert.Equal(t, 1, result.Stats.FilesMissing)
	assert.Equal(t, 9, result.Stats.LinksTotal)
	assert.Equal(t, 3, result.Stats.LinksDead)
	assert.Equal(t, 3, result.Stats.LinksIgnored)
	assert.True(t, result.HasDeadLinks())
}

func TestRunner_Run_JobsLimit(t *testing.T) {
	t.Parallel()

	var inFlight, peak atomic.Int32
	checker := fileCheckerFunc(func(_ context.Context, path string) (runner.FileOutcome, error) {
		n := inFlight.Add(1)
		for {
			old := peak.Load()
			if n <= old || peak.CompareAndSwap(old, n) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		inFlight.Add(-1)
		return runner.FileOutcome{Path: path}, nil
	})

	files := []string{"1.md", "2.md", "3.md", "4.md", "5.md", "6.md"}
	result, err := runner.New(checker).Run(context.Background(), runner.Options{Files: files, Jobs: 2})
	require.NoError(t, err)
	assert.Len(t, result.Files, 6)
	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestRunner_Run_FailsTogether(t *testing.T) {
	t.Parallel()

	boom := errors.New("read failed")
	var cancelled atomic.Bool

	checker := fileCheckerFunc(func(ctx context.Context, path string) (runner.FileOutcome, error) {
		if path == "bad.md" {
			return runner.FileOutcome{}, boom
		}
		select {
		case <-ctx.Done():
			cancelled.Store(true)
		case <-time.After(2 * time.Second):
		}
		return runner.FileOutcome{Path: path}, nil
	})

	result, err := runner.New(checker).Run(context.Background(), runner.Options{
		Files: []string{"good.md", "bad.md"},
	})
	require.ErrorIs(t, err, boom)
	assert.Nil(t, result, "no partial results")
	assert.True(t, cancelled.Load(), "siblings are cancelled")
}

func TestRunner_Run_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := runner.New(&stubFileChecker{}).Run(ctx, runner.Options{Files: []string{"a.md"}})
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, result)
}
