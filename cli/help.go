package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"
)

const maxWidth = 60
const minWidth = 40

var (
	helpTitle   = lipgloss.NewStyle().Bold(true)
	helpSection = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	helpFlag    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	helpMuted   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// getTerminalWidth returns the terminal width capped at maxWidth.
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stderr.Fd()))
	if err != nil || width < minWidth {
		return maxWidth
	}
	if width > maxWidth {
		return maxWidth
	}
	return width
}

// wrapText wraps text to the specified width, preserving existing line breaks.
func wrapText(text string, width int) string {
	if width <= 0 {
		width = maxWidth
	}

	var result []string
	for _, paragraph := range strings.Split(text, "\n") {
		if len(paragraph) <= width {
			result = append(result, paragraph)
			continue
		}

		var line string
		for _, word := range strings.Fields(paragraph) {
			if line == "" {
				line = word
			} else if len(line)+1+len(word) <= width {
				line += " " + word
			} else {
				result = append(result, line)
				line = word
			}
		}
		if line != "" {
			result = append(result, line)
		}
	}
	return strings.Join(result, "\n")
}

// SetStyledHelp applies consistent fzd styling to a command's help output.
// Help goes to stderr: stdout must stay clean for the shell capture.
func SetStyledHelp(cmd *cobra.Command) {
	cmd.SetHelpFunc(styledHelpFunc)
}

// ApplyStyledHelpRecursive applies styled help to a command and all its
// subcommands. Call this after all subcommands have been added.
func ApplyStyledHelpRecursive(cmd *cobra.Command) {
	cmd.SetHelpFunc(styledHelpFunc)
	for _, sub := range cmd.Commands() {
		ApplyStyledHelpRecursive(sub)
	}
}

// PrintError prints a styled error message to stderr with a help hint.
func PrintError(cmd *cobra.Command, err error) {
	red := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", red.Render("Error:"), err.Error())
	fmt.Fprintf(cmd.ErrOrStderr(), "%s\n", helpMuted.Render(fmt.Sprintf("Run '%s --help' for usage.", cmd.CommandPath())))
}

func styledHelpFunc(cmd *cobra.Command, args []string) {
	w := os.Stderr
	width := getTerminalWidth()

	fmt.Fprintln(w, helpTitle.Render(cmd.CommandPath()))
	if cmd.Short != "" {
		fmt.Fprintln(w, wrapText(cmd.Short, width))
	}
	if cmd.Long != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, wrapText(cmd.Long, width))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, helpSection.Render("USAGE"))
	fmt.Fprintf(w, "  %s\n", cmd.UseLine())

	if cmd.HasAvailableSubCommands() {
		fmt.Fprintln(w)
		fmt.Fprintln(w, helpSection.Render("COMMANDS"))
		for _, sub := range cmd.Commands() {
			if !sub.IsAvailableCommand() {
				continue
			}
			fmt.Fprintf(w, "  %s  %s\n", helpFlag.Render(fmt.Sprintf("%-12s", sub.Name())), sub.Short)
		}
	}

	if cmd.HasAvailableFlags() {
		fmt.Fprintln(w)
		fmt.Fprintln(w, helpSection.Render("FLAGS"))
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			if f.Hidden {
				return
			}
			name := "--" + f.Name
			if f.Shorthand != "" {
				name = "-" + f.Shorthand + ", " + name
			}
			fmt.Fprintf(w, "  %s  %s\n", helpFlag.Render(fmt.Sprintf("%-20s", name)), f.Usage)
		})
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, helpMuted.Render(fmt.Sprintf("Use '%s [command] --help' for more information.", cmd.CommandPath())))
}
