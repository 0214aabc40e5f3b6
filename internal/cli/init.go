package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/gomdlinks/internal/configloader"
	"github.com/yaklabco/gomdlinks/internal/logging"
	"github.com/yaklabco/gomdlinks/pkg/config"
)

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	output string
}

// stdinIsTerminal reports whether the overwrite prompt can be shown.
//
//nolint:gochecknoglobals // replaced in tests
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new gomdlinks configuration file",
		Long: `Create a new .gomdlinks.yml configuration file in the current directory
with the defaults documented. Add whitelist patterns to it to ignore links
that are known to be unreachable from CI.

A replaced file is kept next to the new one with a .bak suffix.`,
		Example: `
# Create .gomdlinks.yml
gomdlinks init

# Replace an existing .gomdlinks.yml
gomdlinks init --force

# Write to a custom file path
gomdlinks init --output ci/links.yml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", configloader.ProjectConfigName, "Output file path")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewInteractive()

	absPath, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	_, statErr := os.Stat(absPath)
	exists := statErr == nil

	overwrite := flags.force
	if exists && !overwrite && stdinIsTerminal() {
		overwrite, err = confirmOverwrite(cmd.InOrStdin(), cmd.ErrOrStderr(), flags.output)
		if err != nil {
			return err
		}
		if !overwrite {
			logger.Info("left existing file untouched", logging.FieldPath, flags.output)
			return nil
		}
	}

	backup, err := configloader.WriteConfig(cmd.Context(), absPath, config.Template(), overwrite)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("file %q already exists; use --force to overwrite", flags.output)
		}
		return err
	}

	if backup != "" {
		logger.Warn("overwrote existing file", logging.FieldPath, flags.output, logging.FieldBackup, backup)
	}
	logger.Info("created configuration file", logging.FieldPath, flags.output)
	logger.Info("add whitelist patterns for links CI cannot reach")

	return nil
}

// confirmOverwrite asks a y/N question and reads one line of input.
func confirmOverwrite(in io.Reader, out io.Writer, path string) (bool, error) {
	if _, err := fmt.Fprintf(out, "%s already exists. Overwrite? [y/N] ", path); err != nil {
		return false, fmt.Errorf("write prompt: %w", err)
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read answer: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
