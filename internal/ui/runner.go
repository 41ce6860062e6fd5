package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"
)

// RunnerConfig describes a headless command run.
type RunnerConfig struct {
	Title     string  // e.g. "Asset Generation"
	Command   string  // e.g. "architect generate"
	Params    []Field // shown in the header
	StepNames []string
	Verbose   bool      // print Outcome.Raw after the result
	Live      bool      // redraw running steps in place with a carriage return
	Output    io.Writer // default os.Stdout
	Width     int       // default terminal width

	// Troubleshoot returns the tips shown under a failure box.
	Troubleshoot func(error) []string
}

// Outcome is what an Operation hands back for the success box.
type Outcome struct {
	Details []Field
	Raw     string
}

// Operation is the work wrapped by a Runner. It reports progress through onStep.
type Operation func(ctx context.Context, onStep StepCallback) (*Outcome, error)

// Runner drives the header, progress and result flow of a headless command.
type Runner struct {
	config   RunnerConfig
	header   *Header
	progress *Progress
	out      io.Writer
	width    int
}

// NewRunner creates a runner.
func NewRunner(config RunnerConfig) *Runner {
	if config.Output == nil {
		config.Output = os.Stdout
	}
	width := config.Width
	if width <= 0 {
		width = GetTerminalWidth()
	}

	r := &Runner{
		config: config,
		header: NewHeader(config.Title, config.Command, config.Params).SetWidth(width),
		out:    config.Output,
		width:  width,
	}
	if len(config.StepNames) > 0 {
		r.progress = NewProgress("", config.StepNames).SetWidth(width)
	}
	return r
}

// Progress exposes the step tracker, nil when the runner has no steps.
func (r *Runner) Progress() *Progress {
	return r.progress
}

// Run prints the header, executes op and prints the result box. The error
// from op is returned unchanged.
func (r *Runner) Run(ctx context.Context, op Operation) (*Outcome, error) {
	start := time.Now()

	_, _ = fmt.Fprintln(r.out, r.header.Render())
	_, _ = fmt.Fprintln(r.out)

	outcome, err := op(ctx, r.onStep)
	elapsed := time.Since(start).Round(time.Millisecond)

	_, _ = fmt.Fprintln(r.out)
	if err != nil {
		var tips []string
		if r.config.Troubleshoot != nil {
			tips = r.config.Troubleshoot(err)
		}
		_, _ = fmt.Fprintln(r.out, NewFailureResult(r.config.Title+" failed", err, tips).SetWidth(r.width).Render())
		return outcome, err
	}

	result := NewSuccessResult(r.config.Title+" complete", nil).SetWidth(r.width)
	if outcome != nil {
		result.Details = append(result.Details, outcome.Details...)
	}
	result.AddDetail("Duration", elapsed.String())
	_, _ = fmt.Fprintln(r.out, result.Render())

	if r.config.Verbose && outcome != nil && outcome.Raw != "" {
		_, _ = fmt.Fprintln(r.out)
		_, _ = fmt.Fprintln(r.out, NewRawBox("Raw Payload", outcome.Raw).SetWidth(r.width).Render())
	}
	return outcome, nil
}

func (r *Runner) onStep(stepNumber int, status StepStatus, message string) {
	if r.progress == nil || stepNumber < 1 || stepNumber > r.progress.Total() {
		return
	}
	r.progress.UpdateStep(stepNumber, status, message)
	line := r.progress.renderStepLine(r.progress.Steps[stepNumber-1])
	switch {
	case status.Done():
		_, _ = fmt.Fprintln(r.out, line)
	case status == StepRunning && r.config.Live:
		_, _ = fmt.Fprint(r.out, line+"\r")
	}
}
