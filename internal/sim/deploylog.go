package sim

import (
	"context"
	"fmt"
	"time"
)

const (
	// StandbyLine is shown before any playback.
	StandbyLine = "[SYSTEM] Standing by for Signal Handshake..."
	// StartLine replaces the log when playback begins.
	StartLine = "[SYSTEM] Initializing Zero-Intervention Pipeline..."
)

// ScriptStep is one scripted log line and the wait before it appears.
type ScriptStep struct {
	Delay time.Duration
	Text  string
}

// DeployScript returns the playback script for keyword.
func DeployScript(keyword string) []ScriptStep {
	return []ScriptStep{
		{600 * time.Millisecond, "[SIGNAL] Inbound Webhook: Trigger Handshake Received"},
		{1000 * time.Millisecond, fmt.Sprintf("[ENGINE] Scaling Framework for \"%s\"", keyword)},
		{500 * time.Millisecond, "[VALIDATOR] Verifying Notion API Token: OK"},
		{1200 * time.Millisecond, "[NOTION] Creating Page Node in 'Deployments' database"},
		{800 * time.Millisecond, "[AI_BRIDGE] Injecting Build Request Prompt (Cmd+J Ready)"},
		{400 * time.Millisecond, "[SUCCESS] Deployment Sequence Closed."},
	}
}

// DeploymentLog is the scripted deployment playback. An active flag gates
// re-triggering.
type DeploymentLog struct {
	Lines  []string
	Active bool
	token  uint64
	script []ScriptStep
	cursor int
}

// NewDeploymentLog returns a log in standby.
func NewDeploymentLog() *DeploymentLog {
	return &DeploymentLog{Lines: []string{StandbyLine}}
}

// Token identifies the current playback.
func (l *DeploymentLog) Token() uint64 { return l.token }

// Start resets the log and begins playback for keyword. It is refused while
// a playback is active.
func (l *DeploymentLog) Start(keyword string) (uint64, bool) {
	if l.Active {
		return 0, false
	}
	l.token++
	l.Active = true
	l.Lines = []string{StartLine}
	l.script = DeployScript(keyword)
	l.cursor = 0
	return l.token, true
}

// Next returns the delay before the next line. ok is false when the script
// is exhausted or no playback is active.
func (l *DeploymentLog) Next() (time.Duration, bool) {
	if !l.Active || l.cursor >= len(l.script) {
		return 0, false
	}
	return l.script[l.cursor].Delay, true
}

// Advance appends the next line when token is current. Playback ends after
// the last line.
func (l *DeploymentLog) Advance(token uint64) bool {
	if !l.Active || token != l.token || l.cursor >= len(l.script) {
		return false
	}
	l.Lines = append(l.Lines, l.script[l.cursor].Text)
	l.cursor++
	if l.cursor >= len(l.script) {
		l.Active = false
	}
	return true
}

// Stop aborts playback, leaving the lines written so far.
func (l *DeploymentLog) Stop() {
	l.token++
	l.Active = false
}

// Play runs the full script in real time, calling emit for the start line and
// each scripted line. It returns ctx.Err() if canceled, or the first emit error.
func Play(ctx context.Context, keyword string, emit func(string) error) error {
	if err := emit(StartLine); err != nil {
		return err
	}
	for _, step := range DeployScript(keyword) {
		timer := time.NewTimer(step.Delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		if err := emit(step.Text); err != nil {
			return err
		}
	}
	return nil
}
