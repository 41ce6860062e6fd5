// Package ui renders the non-interactive output of the architect CLI.
//
// Components follow a "print and exit" pattern:
//
//   - Header: command banner with ordered parameters
//   - Progress: bar and step list for the generation pipeline
//   - Result: success, failure and warning boxes
//   - RawBox: verbatim payload for --verbose
//
// A Runner strings them together. The wrapped Operation reports steps
// through a StepCallback and returns an Outcome for the success box:
//
//	runner := ui.NewRunner(ui.RunnerConfig{
//	    Title:     "Asset Generation",
//	    Command:   "architect generate",
//	    Params:    []ui.Field{{Key: "Keyword", Value: kw}},
//	    StepNames: names,
//	})
//	_, err := runner.Run(ctx, func(ctx context.Context, onStep ui.StepCallback) (*ui.Outcome, error) {
//	    onStep(1, ui.StepRunning, "")
//	    ...
//	})
//
// Logging stays silent unless ARCHITECT_LOG_LEVEL is set, so these boxes
// are the only output by default.
package ui
