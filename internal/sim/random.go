package sim

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Source supplies uniform draws in [0, 1).
type Source interface {
	Float64() float64
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }

// DefaultSource draws from the process-wide math/rand/v2 generator.
func DefaultSource() Source { return globalSource{} }

// Sequence is a Source that replays fixed values in order, wrapping around.
type Sequence struct {
	mu     sync.Mutex
	values []float64
	next   int
}

// NewSequence returns a Source that replays values.
func NewSequence(values ...float64) *Sequence {
	return &Sequence{values: values}
}

// Float64 implements Source.
func (s *Sequence) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

// Probabilities parameterizes the cosmetic outcome draws.
type Probabilities struct {
	HandshakeSuccess float64
	DiagnosticFail   float64
	DiagnosticWarn   float64 // Includes the fail band
}

// DefaultProbabilities returns the stock outcome biases.
func DefaultProbabilities() Probabilities {
	return Probabilities{
		HandshakeSuccess: 0.85,
		DiagnosticFail:   0.02,
		DiagnosticWarn:   0.10,
	}
}

// Handshake draws once and reports whether the handshake succeeds.
func (p Probabilities) Handshake(src Source) bool {
	return src.Float64() > 1-p.HandshakeSuccess
}

// Check draws once and maps the value onto a check status: the top fail
// band fails, the next band warns, everything else passes.
func (p Probabilities) Check(src Source) CheckStatus {
	r := src.Float64()
	switch {
	case r > 1-p.DiagnosticFail:
		return CheckFail
	case r > 1-p.DiagnosticWarn:
		return CheckWarn
	default:
		return CheckPass
	}
}

// Timing holds the cosmetic delays.
type Timing struct {
	HandshakeDelay time.Duration
	ToastDuration  time.Duration
	ScanMinDelay   time.Duration
	ScanJitter     time.Duration
}

// DefaultTiming returns the stock delays.
func DefaultTiming() Timing {
	return Timing{
		HandshakeDelay: 2500 * time.Millisecond,
		ToastDuration:  3 * time.Second,
		ScanMinDelay:   400 * time.Millisecond,
		ScanJitter:     600 * time.Millisecond,
	}
}

// ScanDelay draws the wait before one diagnostics check resolves.
func (t Timing) ScanDelay(src Source) time.Duration {
	return t.ScanMinDelay + time.Duration(src.Float64()*float64(t.ScanJitter))
}
