// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Status labels
	Error   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style

	// Link report components
	DeadMarker lipgloss.Style
	FilePath   lipgloss.Style
	Link       lipgloss.Style
	Hint       lipgloss.Style

	// Table components
	TableHeader     lipgloss.Style
	TableSeparator  lipgloss.Style
	TableDeadRow    lipgloss.Style
	TableExcusedRow lipgloss.Style

	// Misc
	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

// newColorStyles creates styles with ANSI 256 colors.
func newColorStyles() *Styles {
	return &Styles{
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),

		DeadMarker: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		FilePath:   lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
		Link:       lipgloss.NewStyle(),
		Hint:       lipgloss.NewStyle().Foreground(lipgloss.Color("14")),

		TableHeader:     lipgloss.NewStyle().Bold(true).Underline(true),
		TableSeparator:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		TableDeadRow:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		TableExcusedRow: lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true),

		Dim:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Bold: lipgloss.NewStyle().Bold(true),
	}
}

// newNoColorStyles creates styles with no color formatting.
func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Error:           plain,
		Success:         plain,
		Warning:         plain,
		DeadMarker:      plain,
		FilePath:        plain,
		Link:            plain,
		Hint:            plain,
		TableHeader:     plain,
		TableSeparator:  plain,
		TableDeadRow:    plain,
		TableExcusedRow: plain,
		Dim:             plain,
		Bold:            plain,
	}
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default: // "auto"
		// Check NO_COLOR environment variable (https://no-color.org/)
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		// Check if output is a TTY
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
