package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdlinks/internal/configloader"
	"github.com/yaklabco/gomdlinks/internal/logging"
	"github.com/yaklabco/gomdlinks/pkg/analysis"
	"github.com/yaklabco/gomdlinks/pkg/config"
	"github.com/yaklabco/gomdlinks/pkg/gitdiff"
	"github.com/yaklabco/gomdlinks/pkg/linkcheck"
	goldmarkparser "github.com/yaklabco/gomdlinks/pkg/parser/goldmark"
	"github.com/yaklabco/gomdlinks/pkg/reporter"
	"github.com/yaklabco/gomdlinks/pkg/runner"
	"github.com/yaklabco/gomdlinks/pkg/whitelist"
)

var (
	// ErrNoFiles is returned when no Markdown files were given.
	ErrNoFiles = errors.New("a list of markdown files must be specified via --files")

	// ErrDeadLinksFound is returned when a dead link survives the whitelist
	// and the added-file excuse.
	ErrDeadLinksFound = errors.New("dead links found")
)

type checkFlags struct {
	files       []string
	baseRef     string
	jobs        int
	concurrency int
	timeout     time.Duration
	format      string
	flavor      string
	userAgent   string
	ignoreAdded bool
	stats       bool
	compact     bool
}

func newCheckCommand() *cobra.Command {
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:     "check --files a.md,b.md",
		Short:   "Check Markdown files for dead links",
		Long:    checkLongDescription,
		Example: checkExamples,
		Args:    cobra.NoArgs,
		Annotations: map[string]string{
			exitStatusAnnotation: checkExitStatus(),
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd, flags)
		},
	}

	addCheckFlags(cmd, flags)

	return cmd
}

const checkLongDescription = `Check the links in a list of Markdown files.

Every file is checked concurrently. A file that does not exist is skipped.
Links matching a whitelist pattern are ignored, and a dead link that names a
file added since the base revision is forgiven.

Bare URLs in prose are checked too unless --flavor commonmark is given.`

const checkExamples = `
# Check a single file
gomdlinks check --files README.md

# Forgive links to files added since main instead of master
gomdlinks check --files docs/a.md,docs/b.md --base main

# Check every Markdown file touched by the current branch
gomdlinks check --files "$(git diff --name-only master...HEAD -- '*.md' | paste -sd,)"

# Machine-readable output for CI annotations
gomdlinks check --files README.md --format json --compact`

func checkExitStatus() string {
	return fmt.Sprintf("  %d   every link is alive, whitelisted or excused\n"+
		"  %d   a dead link was found, --files was empty, or the run failed",
		ExitSuccess, ExitDeadLinks)
}

func addCheckFlags(cmd *cobra.Command, flags *checkFlags) {
	cmd.Flags().StringSliceVar(&flags.files, "files", nil, "comma-separated Markdown files to check")
	cmd.Flags().StringVar(&flags.baseRef, "base", config.DefaultBaseRef, "revision added files are diffed against")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "files checked at once (0 = all)")
	cmd.Flags().IntVar(&flags.concurrency, "link-concurrency", config.DefaultLinkConcurrency,
		"links probed at once within a file")
	cmd.Flags().DurationVar(&flags.timeout, "timeout", config.DefaultTimeout, "timeout for a single link probe")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json, table")
	cmd.Flags().StringVar(&flags.flavor, "flavor", string(config.DefaultFlavor), "Markdown flavor: gfm, commonmark")
	cmd.Flags().StringVar(&flags.userAgent, "user-agent", config.DefaultUserAgent, "User-Agent sent with HTTP probes")
	cmd.Flags().BoolVar(&flags.ignoreAdded, "ignore-added", true, "forgive dead links to files added in this change")
	cmd.Flags().BoolVar(&flags.stats, "stats", false, "print link and file counts")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "minify JSON output")

	setFlagGroup(cmd.Flags(), flagGroupInput, "files", "base", "ignore-added")
	setFlagGroup(cmd.Flags(), flagGroupProbing, "jobs", "link-concurrency", "timeout", "flavor", "user-agent")
	setFlagGroup(cmd.Flags(), flagGroupOutput, "format", "stats", "compact")
}

// cliConfig maps explicitly set flags onto a config layer so that unset
// flags do not shadow config files or the environment.
func cliConfig(cmd *cobra.Command, flags *checkFlags) *config.Config {
	cfg := &config.Config{}
	changed := cmd.Flags().Changed

	if changed("files") {
		cfg.Files = cleanFileList(flags.files)
	}
	if changed("base") {
		cfg.BaseRef = flags.baseRef
	}
	if changed("jobs") {
		cfg.Jobs = flags.jobs
	}
	if changed("link-concurrency") {
		cfg.LinkConcurrency = flags.concurrency
	}
	if changed("timeout") {
		cfg.Timeout = flags.timeout
	}
	if changed("format") {
		cfg.Format = config.OutputFormat(flags.format)
	}
	if changed("flavor") {
		cfg.Flavor = config.Flavor(flags.flavor)
	}
	if changed("user-agent") {
		cfg.UserAgent = flags.userAgent
	}
	if changed("ignore-added") {
		ignoreAdded := flags.ignoreAdded
		cfg.IgnoreAdded = &ignoreAdded
	}

	return cfg
}

// newAddedFilesLister builds the git lister behind the added-file excuse.
//
//nolint:gochecknoglobals // replaced in tests
var newAddedFilesLister = gitdiff.NewLister

func ruleNames(rules []whitelist.Rule) []string {
	names := make([]string, 0, len(rules))
	for _, rule := range rules {
		names = append(names, rule.Name)
	}
	return names
}

// cleanFileList trims each entry and drops empty ones, so "a.md, b.md," names two files.
func cleanFileList(files []string) []string {
	cleaned := make([]string, 0, len(files))
	for _, file := range files {
		if trimmed := strings.TrimSpace(file); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return cleaned
}

func runCheck(cmd *cobra.Command, flags *checkFlags) error {
	logger := logging.Default()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithLogger(ctx, logger)

	// Get the explicit config path from the root command's persistent flag.
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliConfig(cmd, flags),
	})
	if err != nil {
		return errors.Join(errors.New("failed to load configuration"), err)
	}

	cfg := loadResult.Config

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}

	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	if len(cfg.Files) == 0 {
		return ErrNoFiles
	}

	logger.Debug("configuration loaded",
		logging.FieldBaseRef, cfg.BaseRef,
		logging.FieldFlavor, cfg.Flavor,
		logging.FieldJobs, cfg.Jobs,
		logging.FieldTimeout, cfg.Timeout,
		logging.FieldWhitelistPatterns, len(cfg.Whitelist),
	)

	filter, err := whitelist.New(cfg.Whitelist...)
	if err != nil {
		return fmt.Errorf("build whitelist: %w", err)
	}
	logger.Debug("whitelist ready", logging.FieldWhitelistRules, ruleNames(filter.Rules()))

	checker := linkcheck.NewChecker(
		goldmarkparser.New(string(cfg.Flavor)),
		linkcheck.WithTimeout(cfg.Timeout),
		linkcheck.WithConcurrency(cfg.LinkConcurrency),
		linkcheck.WithUserAgent(cfg.UserAgent),
	)

	checkRunner := runner.New(runner.NewAdapter(checker, filter))

	logger.Debug("starting check run",
		logging.FieldFiles, cfg.Files,
		logging.FieldWorkingDir, workDir,
	)

	result, err := checkRunner.Run(ctx, runner.Options{
		Files: cfg.Files,
		Jobs:  cfg.Jobs,
	})
	if err != nil {
		return errors.Join(errors.New("check run failed"), err)
	}

	var added *gitdiff.Lazy
	var excuser analysis.Excuser
	if cfg.ExcusesAddedFiles() && result.HasDeadLinks() {
		added = gitdiff.NewLazy(ctx, newAddedFilesLister(cfg.BaseRef))
		excuser = added
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:        cmd.OutOrStdout(),
		Format:        format,
		Color:         colorMode,
		ShowCounts:    flags.stats,
		Compact:       flags.compact,
		WhitelistHint: loadResult.WhitelistFile(),
		Excuser:       excuser,
		WorkingDir:    workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	report, err := rep.Report(ctx, result)
	if err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	if added != nil && added.Loaded() {
		if gitErr := added.Err(); gitErr != nil {
			logger.Warn("could not list added files, no dead link was excused",
				logging.FieldBaseRef, cfg.BaseRef,
				logging.FieldError, gitErr,
			)
		} else {
			logger.Debug("listed added files",
				logging.FieldAddedCount, added.Set().Len(),
				logging.FieldAddedFiles, added.Set().Names(),
			)
		}
	}

	if ExitCodeFromReport(report) != ExitSuccess {
		return ErrDeadLinksFound
	}

	return nil
}
