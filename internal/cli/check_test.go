package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdlinks/internal/logging"
	"github.com/yaklabco/gomdlinks/pkg/gitdiff"
	"github.com/yaklabco/gomdlinks/pkg/whitelist"
)

func TestCleanFileList(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"a.md", "docs/b.md"}, cleanFileList([]string{" a.md", "", "docs/b.md ", "  "}))
	assert.Empty(t, cleanFileList(nil))
}

func TestRuleNames(t *testing.T) {
	t.Parallel()

	filter, err := whitelist.New(`https://staging\.example\.com`)
	require.NoError(t, err)

	names := ruleNames(filter.Rules())
	require.Len(t, names, 4)
	assert.Equal(t, "localhost", names[0])
	assert.Equal(t, "custom-1", names[3])
}

type fakeGit struct {
	out   string
	err   error
	calls int
}

func (f *fakeGit) run(string, ...string) (string, error) {
	f.calls++
	return f.out, f.err
}

// stubGit makes the added-file excuse read from git instead of the real binary.
func stubGit(t *testing.T, git *fakeGit) {
	t.Helper()

	orig := newAddedFilesLister
	newAddedFilesLister = func(baseRef string) *gitdiff.Lister {
		return &gitdiff.Lister{BaseRef: baseRef, Run: git.run}
	}
	t.Cleanup(func() { newAddedFilesLister = orig })
}

// captureLogs swaps the default logger for one writing into the returned buffer.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()

	orig := logging.Default()
	var buf bytes.Buffer
	logging.SetDefault(log.New(&buf))
	t.Cleanup(func() { logging.SetDefault(orig) })
	return &buf
}

func runCheckCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	dir := t.TempDir()
	cfgFile := filepath.Join(dir, ".gomdlinks.yml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("base_ref: main\n"), 0o644))

	cmd := NewRootCommand(BuildInfo{Version: "test", Commit: "test", Date: "test"})

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"check", "--config", cfgFile, "--color", "never"}, args...))

	err := cmd.Execute()
	return stdout.String(), err
}

func writeDoc(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "doc.md")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCheck_ExcusesDeadLinkToAddedFile(t *testing.T) {
	git := &fakeGit{out: "docs/guide/new-page.md\n"}
	stubGit(t, git)
	captureLogs(t)

	doc := writeDoc(t, "See [the new page](guide/new-page.md).\n")

	out, err := runCheckCommand(t, "--files", doc)
	require.NoError(t, err)

	assert.NotContains(t, out, "✖")
	assert.Contains(t, out, "doc.md are alive.")
	assert.Contains(t, out, "SUCCESS All links in all markdown files in this change are alive.")
	assert.Equal(t, 1, git.calls)
}

func TestCheck_AddedFileDoesNotExcuseOtherLinks(t *testing.T) {
	git := &fakeGit{out: "docs/guide/new-page.md\n"}
	stubGit(t, git)
	captureLogs(t)

	doc := writeDoc(t, "[new](guide/new-page.md) and [old](guide/old-page.md)\n")

	out, err := runCheckCommand(t, "--files", doc)
	require.ErrorIs(t, err, ErrDeadLinksFound)

	assert.Contains(t, out, "[✖] guide/old-page.md\n")
	assert.NotContains(t, out, "[✖] guide/new-page.md")
}

func TestCheck_GitFailureWarnsAndExcusesNothing(t *testing.T) {
	git := &fakeGit{err: errors.New("fatal: not a git repository")}
	stubGit(t, git)
	logs := captureLogs(t)

	doc := writeDoc(t, "See [the new page](guide/new-page.md).\n")

	out, err := runCheckCommand(t, "--files", doc)
	require.ErrorIs(t, err, ErrDeadLinksFound)

	assert.Contains(t, out, "[✖] guide/new-page.md\n")
	assert.Contains(t, logs.String(), "could not list added files")
	assert.Contains(t, logs.String(), "not a git repository")
	assert.Equal(t, 1, git.calls)
}

func TestCheck_GitNotRunWithoutDeadLinks(t *testing.T) {
	git := &fakeGit{}
	stubGit(t, git)
	captureLogs(t)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.md"), []byte("# Other\n"), 0o644))
	doc := filepath.Join(dir, "doc.md")
	require.NoError(t, os.WriteFile(doc, []byte("[other](other.md)\n"), 0o644))

	_, err := runCheckCommand(t, "--files", doc)
	require.NoError(t, err)
	assert.Zero(t, git.calls)
}

func TestCheck_IgnoreAddedDisablesGit(t *testing.T) {
	git := &fakeGit{out: "docs/guide/new-page.md\n"}
	stubGit(t, git)
	captureLogs(t)

	doc := writeDoc(t, "See [the new page](guide/new-page.md).\n")

	out, err := runCheckCommand(t, "--files", doc, "--ignore-added=false")
	require.ErrorIs(t, err, ErrDeadLinksFound)
	assert.Contains(t, out, "[✖] guide/new-page.md\n")
	assert.Zero(t, git.calls)
}

func TestCheck_RejectsBaseRefThatLooksLikeAnOption(t *testing.T) {
	git := &fakeGit{}
	stubGit(t, git)
	captureLogs(t)

	doc := writeDoc(t, "[gone](gone.md)\n")

	_, err := runCheckCommand(t, "--files", doc, "--base=--output=/tmp/x")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDeadLinksFound)
	assert.Contains(t, err.Error(), "base_ref")
	assert.Zero(t, git.calls)
}
