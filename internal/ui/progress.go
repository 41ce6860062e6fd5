package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// StepStatus is the state of one pipeline step.
type StepStatus int

const (
	StepPending StepStatus = iota
	StepRunning
	StepComplete
	StepFailed
	StepSkipped
)

// Done reports whether the step has reached a terminal state.
func (s StepStatus) Done() bool {
	return s == StepComplete || s == StepFailed || s == StepSkipped
}

// Step is one line of the progress list.
type Step struct {
	Number  int // 1-based
	Name    string
	Status  StepStatus
	Message string // optional note, e.g. "1.2s"
}

// Progress tracks a fixed list of steps and renders a bar plus the list.
type Progress struct {
	Label     string
	Steps     []Step
	Current   int
	Percent   float64
	Width     int
	ShowBar   bool
	ShowSteps bool
	bar       progress.Model
}

// NewProgress creates a progress display with one pending step per name.
func NewProgress(label string, names []string) *Progress {
	steps := make([]Step, len(names))
	for i, name := range names {
		steps[i] = Step{Number: i + 1, Name: name}
	}
	p := &Progress{
		Label:     label,
		Steps:     steps,
		ShowBar:   true,
		ShowSteps: true,
	}
	p.SetWidth(GetTerminalWidth())
	return p
}

// Total returns the number of steps.
func (p *Progress) Total() int {
	return len(p.Steps)
}

// SetWidth resizes the bar to fit width.
func (p *Progress) SetWidth(width int) *Progress {
	p.Width = width
	barWidth := min(max(width-20, 20), 50)
	p.bar = progress.New(
		progress.WithGradient(string(PrimaryColor), string(AccentColor)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	return p
}

// UpdateStep records a status change. Out of range steps are ignored.
func (p *Progress) UpdateStep(stepNumber int, status StepStatus, message string) {
	if stepNumber < 1 || stepNumber > len(p.Steps) {
		return
	}
	step := &p.Steps[stepNumber-1]
	step.Status = status
	step.Message = message

	if status == StepRunning {
		p.Current = stepNumber
		return
	}
	if status.Done() {
		completed := 0
		for _, s := range p.Steps {
			if s.Status == StepComplete || s.Status == StepSkipped {
				completed++
			}
		}
		p.Percent = float64(completed) / float64(len(p.Steps))
	}
}

// Render returns the label, bar and step list.
func (p *Progress) Render() string {
	var b strings.Builder
	if p.Label != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(TextColor).PaddingLeft(2).Render(p.Label))
		b.WriteString("\n\n")
	}
	if p.ShowBar {
		b.WriteString(p.renderBar())
		b.WriteString("\n\n")
	}
	if p.ShowSteps {
		lines := make([]string, 0, len(p.Steps))
		for _, step := range p.Steps {
			lines = append(lines, p.renderStepLine(step))
		}
		b.WriteString(strings.Join(lines, "\n"))
	}
	return b.String()
}

func (p *Progress) renderBar() string {
	return lipgloss.NewStyle().PaddingLeft(2).Render(fmt.Sprintf("%s  %3.0f%%  [%d/%d]",
		p.bar.ViewAs(p.Percent), p.Percent*100, p.Current, len(p.Steps)))
}

func (p *Progress) renderStepLine(step Step) string {
	var marker string
	style := StepPendingStyle
	switch step.Status {
	case StepComplete:
		marker, style = StepMarkerComplete, StepCompleteStyle
	case StepRunning:
		marker, style = StepMarkerRunning, StepRunningStyle
	case StepFailed:
		marker, style = FailureMarker, ErrorTitleStyle
	case StepSkipped:
		marker = StepMarkerSkipped
	default:
		marker = StepMarkerPending
	}

	var b strings.Builder
	fmt.Fprintf(&b, "  [%d/%d] ", step.Number, len(p.Steps))
	b.WriteString(style.Render(step.Name))
	b.WriteString(strings.Repeat(" ", max(45-lipgloss.Width(step.Name), 1)))
	b.WriteString(style.Render(marker))
	if step.Message != "" {
		b.WriteString("  ")
		b.WriteString(StepNoteStyle.Render("(" + step.Message + ")"))
	}
	return b.String()
}

// String implements fmt.Stringer
func (p *Progress) String() string {
	return p.Render()
}

// StepCallback reports progress on a 1-based step.
type StepCallback func(stepNumber int, status StepStatus, message string)
