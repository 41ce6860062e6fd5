package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ConfirmPrompt describes a destructive action that needs an explicit answer.
type ConfirmPrompt struct {
	Title    string
	Warnings []string
	// Phrase is what the user must type. Empty accepts "y" or "yes".
	Phrase string
}

// Confirm renders the warning box to out and reads one line from in. It
// returns true only for the expected answer.
func Confirm(in io.Reader, out io.Writer, prompt ConfirmPrompt, width int) bool {
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}

	lines := []string{
		"",
		WarningTitleStyle.Render(fmt.Sprintf("   %s  WARNING  ─  %s", WarningMarker, prompt.Title)),
		"",
	}
	for _, w := range prompt.Warnings {
		lines = append(lines, lipgloss.NewStyle().Foreground(TextColor).Render("   • "+w))
	}
	lines = append(lines, "")

	_, _ = fmt.Fprintln(out, doubleBox(WarningColor, width).Render(strings.Join(lines, "\n")))
	_, _ = fmt.Fprintln(out)

	ask := "Proceed? [y/N]: "
	if prompt.Phrase != "" {
		ask = fmt.Sprintf("To proceed, type %q and press Enter: ", prompt.Phrase)
	}
	_, _ = fmt.Fprint(out, WarningTitleStyle.Render(ask))

	input, err := bufio.NewReader(in).ReadString('\n')
	_, _ = fmt.Fprintln(out)
	if err != nil && input == "" {
		return false
	}
	input = strings.TrimSpace(input)

	ok := input == prompt.Phrase
	if prompt.Phrase == "" {
		ok = strings.EqualFold(input, "y") || strings.EqualFold(input, "yes")
	}
	if !ok {
		_, _ = fmt.Fprintln(out, lipgloss.NewStyle().Foreground(MutedColor).Render("  Operation cancelled."))
	}
	return ok
}
