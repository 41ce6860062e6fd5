package session

import (
	"errors"
	"strings"
	"time"

	"github.com/agolabs/architect/internal/blueprint"
	"github.com/agolabs/architect/internal/framework"
	"github.com/agolabs/architect/internal/sim"
)

// ErrEmptyKeyword is returned when generation is requested without a keyword.
var ErrEmptyKeyword = errors.New("keyword must not be empty")

// FallbackError is shown when a failure carries no message.
const FallbackError = "Engine Error: The pipeline breach could not be contained."

// Step is one decorative status update shown while generating.
type Step struct {
	Delay time.Duration // Wait after the previous step
	Text  string
}

// GenerationSteps are shown in order before the engine call is issued.
var GenerationSteps = []Step{
	{0, "Warming Engine Core..."},
	{800 * time.Millisecond, "Establishing Signal Handshake..."},
	{1000 * time.Millisecond, "Analyzing Market Entropy..."},
	{900 * time.Millisecond, "Synthesizing Asset Architecture..."},
	{700 * time.Millisecond, "Injecting Secret Sauce Bridge..."},
}

// ConnectionStatus is the simulated tunnel state.
type ConnectionStatus int

const (
	ConnIdle ConnectionStatus = iota
	ConnAuthorizing
	ConnSyncing
	ConnVerified
	ConnFailed
)

// String returns the lower-case status name
func (c ConnectionStatus) String() string {
	switch c {
	case ConnAuthorizing:
		return "authorizing"
	case ConnSyncing:
		return "syncing"
	case ConnVerified:
		return "verified"
	case ConnFailed:
		return "failed"
	default:
		return "idle"
	}
}

// ToastKind styles a toast.
type ToastKind int

const (
	ToastSuccess ToastKind = iota
	ToastError
)

// Toast is a transient notification.
type Toast struct {
	Message string
	Kind    ToastKind
	Token   uint64
}

// State is the view state of one session.
type State struct {
	Generating bool
	Step       string
	Keyword    string
	Blueprint  *blueprint.Blueprint
	Err        string
	Connection ConnectionStatus
	Toast      *Toast
	Framework  framework.ID
	Tab        Tab

	genToken   uint64
	authToken  uint64
	toastToken uint64
}

// New returns the startup state, optionally hydrated with a persisted blueprint.
func New(fw framework.ID, last *blueprint.Blueprint) *State {
	s := &State{
		Framework: framework.Resolve(fw).ID,
		Tab:       TabSOP,
		Blueprint: last,
	}
	if last != nil {
		s.Keyword = last.Keyword
	}
	return s
}

// GenerationToken returns the token of the current generation.
func (s *State) GenerationToken() uint64 { return s.genToken }

// StartGeneration begins a generation for keyword, superseding any in flight.
func (s *State) StartGeneration(keyword string) (uint64, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return 0, ErrEmptyKeyword
	}
	s.genToken++
	s.Generating = true
	s.Keyword = keyword
	s.Step = GenerationSteps[0].Text
	s.Err = ""
	s.Blueprint = nil
	return s.genToken, nil
}

// SetStep updates the status text of the current generation.
func (s *State) SetStep(token uint64, text string) bool {
	if !s.Generating || token != s.genToken {
		return false
	}
	s.Step = text
	return true
}

// Complete stores bp and switches to the SOP tab.
func (s *State) Complete(token uint64, bp *blueprint.Blueprint) bool {
	if !s.Generating || token != s.genToken {
		return false
	}
	s.Generating = false
	s.Step = ""
	s.Blueprint = bp
	s.Tab = TabSOP
	return true
}

// Fail records message and leaves the blueprint cleared.
func (s *State) Fail(token uint64, message string) bool {
	if !s.Generating || token != s.genToken {
		return false
	}
	if strings.TrimSpace(message) == "" {
		message = FallbackError
	}
	s.Generating = false
	s.Step = ""
	s.Blueprint = nil
	s.Err = message
	return true
}

// DismissError clears the error banner.
func (s *State) DismissError() {
	s.Err = ""
}

// Reset returns to the pre-generation state and invalidates every pending
// sequence. The framework selection is kept.
func (s *State) Reset() {
	s.genToken++
	s.authToken++
	s.toastToken++
	s.Generating = false
	s.Step = ""
	s.Keyword = ""
	s.Blueprint = nil
	s.Err = ""
	s.Connection = ConnIdle
	s.Toast = nil
	s.Tab = TabSOP
}

// SelectFramework changes the framework used by the next generation.
func (s *State) SelectFramework(id framework.ID) {
	s.Framework = framework.Resolve(id).ID
}

// SetTab changes the active tab. It never touches generation state.
func (s *State) SetTab(t Tab) {
	if t.Valid() {
		s.Tab = t
	}
}

// StartHandshake moves the tunnel to syncing. It is refused while syncing.
func (s *State) StartHandshake() (uint64, bool) {
	if s.Connection == ConnSyncing {
		return 0, false
	}
	s.authToken++
	s.Connection = ConnSyncing
	return s.authToken, true
}

// ResolveHandshake ends a handshake and raises its toast. The returned token
// identifies the toast for expiry.
func (s *State) ResolveHandshake(token uint64, ok bool) (uint64, bool) {
	if s.Connection != ConnSyncing || token != s.authToken {
		return 0, false
	}
	if ok {
		s.Connection = ConnVerified
		return s.ShowToast(sim.HandshakeSuccessToast, ToastSuccess), true
	}
	s.Connection = ConnFailed
	return s.ShowToast(sim.HandshakeFailureToast, ToastError), true
}

// ShowToast replaces any visible toast.
func (s *State) ShowToast(message string, kind ToastKind) uint64 {
	s.toastToken++
	s.Toast = &Toast{Message: message, Kind: kind, Token: s.toastToken}
	return s.toastToken
}

// ExpireToast clears the toast raised with token, if still visible.
func (s *State) ExpireToast(token uint64) bool {
	if s.Toast == nil || s.Toast.Token != token {
		return false
	}
	s.Toast = nil
	return true
}

// DismissToast clears any visible toast.
func (s *State) DismissToast() {
	s.Toast = nil
}
