package sim

import "time"

// CheckStatus is the state of one diagnostics check.
type CheckStatus int

const (
	CheckIdle CheckStatus = iota
	CheckPass
	CheckWarn
	CheckFail
)

// String returns the lower-case status name
func (s CheckStatus) String() string {
	switch s {
	case CheckPass:
		return "pass"
	case CheckWarn:
		return "warn"
	case CheckFail:
		return "fail"
	default:
		return "idle"
	}
}

// Check is one row of the integrity scan.
type Check struct {
	ID     string
	Label  string
	Status CheckStatus
}

// DefaultChecks returns the four integrity checks in scan order.
func DefaultChecks() []Check {
	return []Check{
		{ID: "toggle", Label: "Signal Rx"},
		{ID: "historical", Label: "Backlog Sync"},
		{ID: "auth", Label: "Notion Auth"},
		{ID: "cache", Label: "Persistence"},
	}
}

// Diagnostics is the sequential integrity scan. Checks resolve one at a
// time; a scanning flag gates re-runs.
type Diagnostics struct {
	Checks   []Check
	Scanning bool
	token    uint64
	cursor   int
}

// NewDiagnostics returns an idle scan over DefaultChecks.
func NewDiagnostics() *Diagnostics {
	return &Diagnostics{Checks: DefaultChecks()}
}

// Token identifies the current run.
func (d *Diagnostics) Token() uint64 { return d.token }

// Start begins a run and returns its token. It is refused while scanning.
func (d *Diagnostics) Start() (uint64, bool) {
	if d.Scanning {
		return 0, false
	}
	d.token++
	d.Scanning = true
	d.cursor = 0
	for i := range d.Checks {
		d.Checks[i].Status = CheckIdle
	}
	return d.token, true
}

// Next returns the index of the next check to resolve and the delay before
// it resolves. ok is false once every check has resolved.
func (d *Diagnostics) Next(timing Timing, src Source) (index int, delay time.Duration, ok bool) {
	if !d.Scanning || d.cursor >= len(d.Checks) {
		return 0, 0, false
	}
	return d.cursor, timing.ScanDelay(src), true
}

// Resolve records the outcome for the check at index. Results for stale
// tokens or out-of-order indexes are ignored. The scan stops after the last
// check.
func (d *Diagnostics) Resolve(token uint64, index int, status CheckStatus) bool {
	if !d.Scanning || token != d.token || index != d.cursor {
		return false
	}
	d.Checks[index].Status = status
	d.cursor++
	if d.cursor >= len(d.Checks) {
		d.Scanning = false
	}
	return true
}

// Stop aborts a run; pending resolutions become stale.
func (d *Diagnostics) Stop() {
	d.token++
	d.Scanning = false
}

// Summary counts outcomes.
func (d *Diagnostics) Summary() (pass, warn, fail int) {
	for _, c := range d.Checks {
		switch c.Status {
		case CheckPass:
			pass++
		case CheckWarn:
			warn++
		case CheckFail:
			fail++
		}
	}
	return pass, warn, fail
}
