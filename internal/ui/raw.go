package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RawBox shows unstyled text, such as the decoded payload, in a muted frame.
type RawBox struct {
	Title    string
	Lines    []string
	Width    int
	MaxLines int // 0 means unlimited
}

// NewRawBox creates a box for content.
func NewRawBox(title, content string) *RawBox {
	return &RawBox{
		Title: title,
		Lines: strings.Split(strings.TrimRight(content, "\n"), "\n"),
		Width: GetTerminalWidth(),
	}
}

// SetWidth sets the width used for rendering.
func (b *RawBox) SetWidth(width int) *RawBox {
	b.Width = width
	return b
}

// SetMaxLines truncates the box after n lines.
func (b *RawBox) SetMaxLines(n int) *RawBox {
	b.MaxLines = n
	return b
}

// Render returns the styled box.
func (b *RawBox) Render() string {
	lines := b.Lines
	if b.MaxLines > 0 && len(lines) > b.MaxLines {
		lines = append(append([]string(nil), lines[:b.MaxLines]...), "... (output truncated)")
	}

	inner := lipgloss.JoinVertical(lipgloss.Left,
		RawTitleStyle.Render(b.Title),
		"",
		RawContentStyle.Render(strings.Join(lines, "\n")),
	)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(MutedColor).
		Width(max(clampWidth(b.Width)-4, 40)).
		Padding(0, 1).
		MarginLeft(2).
		Render(inner)
}
