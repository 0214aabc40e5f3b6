// Package main is the entry point for the gomdlinks CLI.
package main

import (
	"errors"
	"os"

	"github.com/yaklabco/gomdlinks/internal/cli"
	"github.com/yaklabco/gomdlinks/internal/logging"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	logging.SetDefault(logging.NewInteractive())

	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	if err := rootCmd.Execute(); err != nil {
		// Dead links were already reported; the error only sets the exit code.
		if !errors.Is(err, cli.ErrDeadLinksFound) {
			logger := logging.Default()
			logger.Error("command failed", logging.FieldError, err)
		}
		return cli.ExitFailure
	}

	return cli.ExitSuccess
}
