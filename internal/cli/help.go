package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/gomdlinks/internal/ui/pretty"
)

// Flag groups rendered as their own help sections, in this order.
// Flags without a group are listed under "Flags:".
const (
	flagGroupInput   = "Input"
	flagGroupProbing = "Probing"
	flagGroupOutput  = "Output"

	flagGroupAnnotation  = "gomdlinks_flag_group"
	exitStatusAnnotation = "gomdlinks_exit_status"
)

func flagGroupOrder() []string {
	return []string{flagGroupInput, flagGroupProbing, flagGroupOutput, ""}
}

// setFlagGroup files the named flags under group in help output.
func setFlagGroup(flags *pflag.FlagSet, group string, names ...string) {
	for _, name := range names {
		if err := flags.SetAnnotation(name, flagGroupAnnotation, []string{group}); err != nil {
			panic(fmt.Sprintf("flag group %s: %v", group, err))
		}
	}
}

func flagGroup(flag *pflag.Flag) string {
	if group := flag.Annotations[flagGroupAnnotation]; len(group) > 0 {
		return group[0]
	}
	return ""
}

// HelpStyles holds the lipgloss styles used by help output.
type HelpStyles struct {
	Title    lipgloss.Style
	Heading  lipgloss.Style
	Command  lipgloss.Style
	Flag     lipgloss.Style
	FlagType lipgloss.Style
	Default  lipgloss.Style
	Comment  lipgloss.Style
}

// NewHelpStyles returns colored styles, or plain ones when color is off.
func NewHelpStyles(colorEnabled bool) *HelpStyles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return &HelpStyles{
			Title:    plain,
			Heading:  plain,
			Command:  plain,
			Flag:     plain,
			FlagType: plain,
			Default:  plain,
			Comment:  plain,
		}
	}

	return &HelpStyles{
		Title:    lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true),
		Heading:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Command:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Flag:     lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		FlagType: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Default:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true),
		Comment:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// HelpFormatter renders help and usage for gomdlinks commands.
type HelpFormatter struct {
	styles *HelpStyles
}

// NewHelpFormatter creates a formatter for the given color mode.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	return &HelpFormatter{styles: NewHelpStyles(pretty.IsColorEnabled(colorMode, writer))}
}

// ApplyToCommand installs the formatter on cmd. Subcommands inherit it.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		if _, err := io.WriteString(command.OutOrStdout(), h.Help(command)); err != nil {
			command.PrintErrln(err)
		}
	})
	cmd.SetUsageFunc(func(command *cobra.Command) error {
		_, err := io.WriteString(command.OutOrStderr(), h.Usage(command))
		return err
	})
}

// Help renders the full help page: description, then usage.
func (h *HelpFormatter) Help(cmd *cobra.Command) string {
	var b strings.Builder

	b.WriteString(h.styles.Title.Render(cmd.CommandPath()))
	if cmd.Version != "" {
		b.WriteString(" " + h.styles.Comment.Render(cmd.Version))
	}
	b.WriteString("\n\n")

	if text := strings.TrimSpace(cmd.Long); text != "" {
		b.WriteString(text + "\n\n")
	} else if cmd.Short != "" {
		b.WriteString(cmd.Short + "\n\n")
	}

	b.WriteString(h.Usage(cmd))
	return b.String()
}

// Usage renders the usage line, examples, commands, flag groups and exit status.
func (h *HelpFormatter) Usage(cmd *cobra.Command) string {
	var sections []string

	usage := h.heading("Usage:")
	if cmd.Runnable() {
		usage += "\n  " + h.styles.Command.Render(cmd.UseLine())
	}
	if cmd.HasAvailableSubCommands() {
		usage += "\n  " + h.styles.Command.Render(cmd.CommandPath()+" [command]")
	}
	sections = append(sections, usage)

	if cmd.HasExample() {
		sections = append(sections, h.heading("Examples:")+"\n"+h.examples(cmd.Example))
	}

	if cmd.HasAvailableSubCommands() {
		sections = append(sections, h.heading("Commands:")+"\n"+h.commands(cmd))
	}

	sections = append(sections, h.localFlagSections(cmd)...)

	if inherited := visibleFlags(cmd.InheritedFlags()); len(inherited) > 0 {
		sections = append(sections, h.heading("Global Flags:")+"\n"+h.flagLines(inherited))
	}

	if status := cmd.Annotations[exitStatusAnnotation]; status != "" {
		sections = append(sections, h.heading("Exit Status:")+"\n"+status)
	}

	if cmd.HasAvailableSubCommands() {
		sections = append(sections, fmt.Sprintf("Use %q for more information about a command.",
			cmd.CommandPath()+" [command] --help"))
	}

	return strings.Join(sections, "\n\n") + "\n"
}

func (h *HelpFormatter) heading(text string) string {
	return h.styles.Heading.Render(text)
}

// examples indents each example line; lines starting with "#" are comments.
func (h *HelpFormatter) examples(text string) string {
	lines := strings.Split(strings.Trim(text, "\n"), "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			lines[i] = ""
		case strings.HasPrefix(trimmed, "#"):
			lines[i] = "  " + h.styles.Comment.Render(trimmed)
		default:
			lines[i] = "  " + h.styles.Command.Render(trimmed)
		}
	}
	return strings.Join(lines, "\n")
}

func (h *HelpFormatter) commands(cmd *cobra.Command) string {
	var available []*cobra.Command
	width := 0
	for _, sub := range cmd.Commands() {
		if sub.IsAvailableCommand() || sub.Name() == "help" {
			available = append(available, sub)
			width = max(width, len(sub.Name()))
		}
	}

	lines := make([]string, 0, len(available))
	for _, sub := range available {
		name := h.styles.Command.Render(sub.Name()) + strings.Repeat(" ", width-len(sub.Name()))
		lines = append(lines, "  "+name+"   "+sub.Short)
	}
	return strings.Join(lines, "\n")
}

// localFlagSections renders one section per flag group, in flagGroupOrder.
func (h *HelpFormatter) localFlagSections(cmd *cobra.Command) []string {
	groups := make(map[string][]*pflag.Flag)
	for _, flag := range visibleFlags(cmd.LocalFlags()) {
		group := flagGroup(flag)
		groups[group] = append(groups[group], flag)
	}

	var sections []string
	for _, group := range flagGroupOrder() {
		flags := groups[group]
		if len(flags) == 0 {
			continue
		}
		title := "Flags:"
		if group != "" {
			title = group + " Flags:"
		}
		sections = append(sections, h.heading(title)+"\n"+h.flagLines(flags))
	}
	return sections
}

func visibleFlags(set *pflag.FlagSet) []*pflag.Flag {
	var flags []*pflag.Flag
	set.VisitAll(func(flag *pflag.Flag) {
		if !flag.Hidden {
			flags = append(flags, flag)
		}
	})
	return flags
}

// flagLines renders flags as aligned "-s, --name type   usage (default x)" rows.
// Alignment is computed on the unstyled text so color codes do not skew it.
func (h *HelpFormatter) flagLines(flags []*pflag.Flag) string {
	type row struct {
		plain  string
		styled string
		usage  string
	}

	rows := make([]row, 0, len(flags))
	width := 0
	for _, flag := range flags {
		varName, usage := pflag.UnquoteUsage(flag)

		plain, styled := "    ", "    "
		if flag.Shorthand != "" {
			plain = "-" + flag.Shorthand + ", "
			styled = h.styles.Flag.Render("-"+flag.Shorthand) + ", "
		}
		plain += "--" + flag.Name
		styled += h.styles.Flag.Render("--" + flag.Name)
		if varName != "" {
			plain += " " + varName
			styled += " " + h.styles.FlagType.Render(varName)
		}

		if def := defaultText(flag); def != "" {
			usage += " " + h.styles.Default.Render("(default "+def+")")
		}

		rows = append(rows, row{plain: plain, styled: styled, usage: usage})
		width = max(width, len(plain))
	}

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, "  "+r.styled+strings.Repeat(" ", width-len(r.plain))+"   "+r.usage)
	}
	return strings.Join(lines, "\n")
}

// defaultText returns the default worth showing, or "" for zero values.
func defaultText(flag *pflag.Flag) string {
	switch flag.DefValue {
	case "", "false", "0", "0s", "[]":
		return ""
	}
	if flag.Value.Type() == "string" {
		return fmt.Sprintf("%q", flag.DefValue)
	}
	return flag.DefValue
}
