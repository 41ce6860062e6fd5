package sim

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestHandshakeDraw(t *testing.T) {
	p := DefaultProbabilities()
	tests := []struct {
		r    float64
		want bool
	}{
		{0.0, false},
		{0.15, false},
		{0.1501, true},
		{0.99, true},
	}
	for _, tt := range tests {
		if got := p.Handshake(NewSequence(tt.r)); got != tt.want {
			t.Errorf("Handshake(r=%v) = %v, want %v", tt.r, got, tt.want)
		}
	}
}

func TestHandshakeExtremes(t *testing.T) {
	always := Probabilities{HandshakeSuccess: 1}
	never := Probabilities{HandshakeSuccess: 0}
	for _, r := range []float64{0, 0.5, 0.999} {
		if !always.Handshake(NewSequence(r)) {
			t.Errorf("success rate 1 failed at r=%v", r)
		}
		if never.Handshake(NewSequence(r)) {
			t.Errorf("success rate 0 succeeded at r=%v", r)
		}
	}
}

func TestCheckDraw(t *testing.T) {
	p := DefaultProbabilities()
	tests := []struct {
		r    float64
		want CheckStatus
	}{
		{0.0, CheckPass},
		{0.5, CheckPass},
		{0.85, CheckPass},
		{0.89, CheckPass},
		{0.91, CheckWarn},
		{0.97, CheckWarn},
		{0.99, CheckFail},
	}
	for _, tt := range tests {
		if got := p.Check(NewSequence(tt.r)); got != tt.want {
			t.Errorf("Check(r=%v) = %v, want %v", tt.r, got, tt.want)
		}
	}
}

func TestCheckDistribution(t *testing.T) {
	p := DefaultProbabilities()
	const n = 10000
	counts := map[CheckStatus]int{}
	for i := 0; i < n; i++ {
		r := (float64(i) + 0.5) / n
		counts[p.Check(NewSequence(r))]++
	}
	want := map[CheckStatus]int{CheckPass: 9000, CheckWarn: 800, CheckFail: 200}
	if diff := cmp.Diff(want, counts); diff != "" {
		t.Errorf("outcome counts over a uniform grid (-want +got):\n%s", diff)
	}
}

func TestScanDelay(t *testing.T) {
	tm := DefaultTiming()
	if got := tm.ScanDelay(NewSequence(0)); got != 400*time.Millisecond {
		t.Errorf("ScanDelay(0) = %v", got)
	}
	if got := tm.ScanDelay(NewSequence(0.5)); got != 700*time.Millisecond {
		t.Errorf("ScanDelay(0.5) = %v", got)
	}
}

func TestSequenceWraps(t *testing.T) {
	s := NewSequence(0.1, 0.2)
	got := []float64{s.Float64(), s.Float64(), s.Float64()}
	if diff := cmp.Diff([]float64{0.1, 0.2, 0.1}, got); diff != "" {
		t.Errorf("Sequence mismatch (-want +got):\n%s", diff)
	}
	if NewSequence().Float64() != 0 {
		t.Error("empty sequence should return 0")
	}
}

func TestDiagnosticsRun(t *testing.T) {
	d := NewDiagnostics()
	p := DefaultProbabilities()
	src := NewSequence(0.1, 0.95, 0.99, 0.5)

	tok, ok := d.Start()
	if !ok {
		t.Fatal("Start() refused on idle scan")
	}
	if _, ok := d.Start(); ok {
		t.Error("Start() should be gated while scanning")
	}

	for {
		idx, delay, ok := d.Next(DefaultTiming(), NewSequence(0))
		if !ok {
			break
		}
		if delay != 400*time.Millisecond {
			t.Errorf("delay = %v", delay)
		}
		if !d.Resolve(tok, idx, p.Check(src)) {
			t.Fatalf("Resolve(%d) rejected", idx)
		}
	}

	if d.Scanning {
		t.Error("scan should stop after the last check")
	}
	want := []CheckStatus{CheckPass, CheckWarn, CheckFail, CheckPass}
	for i, c := range d.Checks {
		if c.Status != want[i] {
			t.Errorf("check %s = %v, want %v", c.Label, c.Status, want[i])
		}
	}
	pass, warn, fail := d.Summary()
	if pass != 2 || warn != 1 || fail != 1 {
		t.Errorf("Summary() = %d/%d/%d", pass, warn, fail)
	}
}

func TestDiagnosticsStaleResolve(t *testing.T) {
	d := NewDiagnostics()
	tok, _ := d.Start()
	d.Stop()

	if d.Resolve(tok, 0, CheckPass) {
		t.Error("Resolve after Stop should be ignored")
	}

	tok2, ok := d.Start()
	if !ok {
		t.Fatal("restart refused")
	}
	if d.Resolve(tok, 0, CheckFail) {
		t.Error("old token accepted after restart")
	}
	if d.Resolve(tok2, 1, CheckPass) {
		t.Error("out-of-order index accepted")
	}
	if !d.Resolve(tok2, 0, CheckPass) {
		t.Error("current token rejected")
	}
}

func TestDiagnosticsRestartResetsStatuses(t *testing.T) {
	d := NewDiagnostics()
	tok, _ := d.Start()
	for i := range d.Checks {
		d.Resolve(tok, i, CheckFail)
	}
	d.Start()
	for _, c := range d.Checks {
		if c.Status != CheckIdle {
			t.Errorf("check %s = %v after restart, want idle", c.Label, c.Status)
		}
	}
}

func TestDeploymentLogPlayback(t *testing.T) {
	l := NewDeploymentLog()
	if diff := cmp.Diff([]string{StandbyLine}, l.Lines); diff != "" {
		t.Errorf("initial lines (-want +got):\n%s", diff)
	}

	tok, ok := l.Start("Cold Brew")
	if !ok {
		t.Fatal("Start() refused")
	}
	if _, ok := l.Start("again"); ok {
		t.Error("Start() should be gated while active")
	}

	var delays []time.Duration
	for {
		d, ok := l.Next()
		if !ok {
			break
		}
		delays = append(delays, d)
		l.Advance(tok)
	}

	wantDelays := []time.Duration{600, 1000, 500, 1200, 800, 400}
	for i := range wantDelays {
		wantDelays[i] *= time.Millisecond
	}
	if diff := cmp.Diff(wantDelays, delays); diff != "" {
		t.Errorf("delays (-want +got):\n%s", diff)
	}

	wantLines := []string{
		StartLine,
		"[SIGNAL] Inbound Webhook: Trigger Handshake Received",
		`[ENGINE] Scaling Framework for "Cold Brew"`,
		"[VALIDATOR] Verifying Notion API Token: OK",
		"[NOTION] Creating Page Node in 'Deployments' database",
		"[AI_BRIDGE] Injecting Build Request Prompt (Cmd+J Ready)",
		"[SUCCESS] Deployment Sequence Closed.",
	}
	if diff := cmp.Diff(wantLines, l.Lines); diff != "" {
		t.Errorf("lines (-want +got):\n%s", diff)
	}
	if l.Active {
		t.Error("log should be inactive after the last line")
	}
}

func TestDeployScriptKeywordVerbatim(t *testing.T) {
	steps := DeployScript(`Say "hi" \ now`)
	if want := `[ENGINE] Scaling Framework for "Say "hi" \ now"`; steps[1].Text != want {
		t.Errorf("engine line = %q, want %q", steps[1].Text, want)
	}
}

func TestDeploymentLogStopIgnoresLateTicks(t *testing.T) {
	l := NewDeploymentLog()
	tok, _ := l.Start("kw")
	l.Advance(tok)
	l.Stop()

	if l.Advance(tok) {
		t.Error("Advance after Stop should be ignored")
	}
	if len(l.Lines) != 2 {
		t.Errorf("lines = %d, want 2", len(l.Lines))
	}
}

func TestPlayCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var lines []string
	err := Play(ctx, "kw", func(s string) error {
		lines = append(lines, s)
		cancel()
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Play() error = %v, want context.Canceled", err)
	}
	if len(lines) != 1 || lines[0] != StartLine {
		t.Errorf("lines = %v, want only the start line", lines)
	}
}

func TestPlayEmitError(t *testing.T) {
	boom := errors.New("closed")
	err := Play(context.Background(), "kw", func(string) error { return boom })
	if !errors.Is(err, boom) {
		t.Errorf("Play() error = %v, want %v", err, boom)
	}
}
