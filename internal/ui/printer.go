package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Printer writes UI components to a writer. Commands that do not need a
// Runner print through it.
type Printer struct {
	out   io.Writer
	width int
}

// NewPrinter creates a Printer for w, or os.Stdout when w is nil.
func NewPrinter(w io.Writer) *Printer {
	if w == nil {
		w = os.Stdout
	}
	return &Printer{out: w, width: GetTerminalWidth()}
}

// WithWidth overrides the detected width.
func (p *Printer) WithWidth(width int) *Printer {
	p.width = width
	return p
}

// Width returns the width used by this printer.
func (p *Printer) Width() int {
	return p.width
}

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer {
	return p.out
}

func (p *Printer) Print(content string) {
	_, _ = fmt.Fprint(p.out, content)
}

func (p *Printer) Println(content string) {
	_, _ = fmt.Fprintln(p.out, content)
}

func (p *Printer) Newline() {
	_, _ = fmt.Fprintln(p.out)
}

// PrintHeader prints a command header box.
func (p *Printer) PrintHeader(title, command string, params []Field) {
	p.Println(NewHeader(title, command, params).SetWidth(p.width).Render())
	p.Newline()
}

// PrintSuccess prints a success box.
func (p *Printer) PrintSuccess(title string, details []Field) {
	p.Println(NewSuccessResult(title, details).SetWidth(p.width).Render())
}

// PrintError prints a failure box with troubleshooting tips.
func (p *Printer) PrintError(title string, err error, troubleshooting []string) {
	p.Println(NewFailureResult(title, err, troubleshooting).SetWidth(p.width).Render())
}

// PrintWarning prints a warning box.
func (p *Printer) PrintWarning(title string, details []Field) {
	p.Println(NewWarningResult(title, details).SetWidth(p.width).Render())
}

// PrintRaw prints a raw content box.
func (p *Printer) PrintRaw(title, content string) {
	p.Println(NewRawBox(title, content).SetWidth(p.width).Render())
}

// PrintPleaseWait prints a notice for a slow step, e.g. ("Contacting engine", "up to 60 seconds").
func (p *Printer) PrintPleaseWait(message, durationHint string) {
	style := lipgloss.NewStyle().Foreground(PrimaryColor).Bold(true).PaddingLeft(2)
	line := style.Render("⏳ " + message)
	if durationHint != "" {
		line += " " + lipgloss.NewStyle().Foreground(MutedColor).Italic(true).Render("("+durationHint+")")
	}
	p.Newline()
	p.Println(line + style.Render("..."))
	p.Newline()
}
