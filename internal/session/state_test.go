package session

import (
	"errors"
	"testing"

	"github.com/agolabs/architect/internal/blueprint"
	"github.com/agolabs/architect/internal/framework"
	"github.com/agolabs/architect/internal/sim"
)

func bp(kw string) *blueprint.Blueprint {
	return &blueprint.Blueprint{Keyword: kw, ProductTitle: "T"}
}

func TestNewHydrates(t *testing.T) {
	s := New("", bp("saved"))
	if s.Blueprint == nil || s.Keyword != "saved" {
		t.Errorf("New() did not hydrate: %+v", s)
	}
	if s.Framework != framework.GrowthEngine {
		t.Errorf("Framework = %q, want default", s.Framework)
	}
	if s.Tab != TabSOP || s.Connection != ConnIdle {
		t.Errorf("unexpected initial tab/connection: %v/%v", s.Tab, s.Connection)
	}
}

func TestGenerationSuccess(t *testing.T) {
	s := New(framework.FourPillar, bp("old"))
	s.Err = "previous"
	s.Tab = TabPortal

	tok, err := s.StartGeneration("  new keyword ")
	if err != nil {
		t.Fatal(err)
	}
	if !s.Generating || s.Blueprint != nil || s.Err != "" {
		t.Errorf("StartGeneration did not clear state: %+v", s)
	}
	if s.Step != "Warming Engine Core..." {
		t.Errorf("Step = %q", s.Step)
	}
	if s.Keyword != "new keyword" {
		t.Errorf("Keyword = %q", s.Keyword)
	}

	for _, step := range GenerationSteps[1:] {
		if !s.SetStep(tok, step.Text) {
			t.Fatalf("SetStep(%q) rejected", step.Text)
		}
	}
	if s.Step != "Injecting Secret Sauce Bridge..." {
		t.Errorf("Step = %q", s.Step)
	}

	if !s.Complete(tok, bp("new keyword")) {
		t.Fatal("Complete rejected")
	}
	if s.Generating || s.Blueprint == nil || s.Tab != TabSOP {
		t.Errorf("Complete left state %+v", s)
	}
}

func TestGenerationFailure(t *testing.T) {
	s := New("", nil)
	tok, _ := s.StartGeneration("kw")

	if !s.Fail(tok, "Pipeline Breach: Structural failure in JSON stream.") {
		t.Fatal("Fail rejected")
	}
	if s.Blueprint != nil || s.Generating {
		t.Errorf("Fail left state %+v", s)
	}
	if s.Err != "Pipeline Breach: Structural failure in JSON stream." {
		t.Errorf("Err = %q", s.Err)
	}

	s.DismissError()
	if s.Err != "" {
		t.Error("DismissError did not clear")
	}

	tok, _ = s.StartGeneration("kw")
	s.Fail(tok, "")
	if s.Err != FallbackError {
		t.Errorf("Err = %q, want fallback", s.Err)
	}
}

func TestStartGenerationEmptyKeyword(t *testing.T) {
	s := New("", bp("keep"))
	if _, err := s.StartGeneration("   "); !errors.Is(err, ErrEmptyKeyword) {
		t.Errorf("error = %v, want ErrEmptyKeyword", err)
	}
	if s.Generating || s.Blueprint == nil {
		t.Error("rejected generation must not change state")
	}
}

func TestLastGenerationWins(t *testing.T) {
	s := New("", nil)
	first, _ := s.StartGeneration("first")
	second, _ := s.StartGeneration("second")

	if s.SetStep(first, "stale") {
		t.Error("stale SetStep accepted")
	}
	if s.Complete(first, bp("first")) {
		t.Error("stale Complete accepted")
	}
	if s.Fail(first, "stale") {
		t.Error("stale Fail accepted")
	}
	if !s.Complete(second, bp("second")) {
		t.Fatal("current Complete rejected")
	}
	if s.Blueprint.Keyword != "second" {
		t.Errorf("Blueprint.Keyword = %q", s.Blueprint.Keyword)
	}
}

func TestResetAbortsPending(t *testing.T) {
	s := New("", nil)
	s.SelectFramework(framework.LeadMachine)
	genTok, _ := s.StartGeneration("kw")
	authTok, _ := s.StartHandshake()
	toastTok := s.ShowToast("hi", ToastSuccess)

	s.Reset()

	if s.Blueprint != nil || s.Err != "" || s.Connection != ConnIdle || s.Toast != nil || s.Generating {
		t.Errorf("Reset left state %+v", s)
	}
	if s.Framework != framework.LeadMachine {
		t.Error("Reset should keep the framework selection")
	}
	if s.Complete(genTok, bp("kw")) {
		t.Error("generation completed after reset")
	}
	if _, ok := s.ResolveHandshake(authTok, true); ok {
		t.Error("handshake resolved after reset")
	}
	if s.ExpireToast(toastTok) {
		t.Error("toast expired after reset")
	}
}

func TestHandshakeEndsInOneTerminalState(t *testing.T) {
	for _, ok := range []bool{true, false} {
		s := New("", bp("kw"))
		tok, started := s.StartHandshake()
		if !started || s.Connection != ConnSyncing {
			t.Fatalf("StartHandshake() = %v, connection %v", started, s.Connection)
		}
		if _, again := s.StartHandshake(); again {
			t.Error("StartHandshake should be refused while syncing")
		}

		toastTok, resolved := s.ResolveHandshake(tok, ok)
		if !resolved {
			t.Fatal("ResolveHandshake rejected")
		}
		want, msg, kind := ConnFailed, sim.HandshakeFailureToast, ToastError
		if ok {
			want, msg, kind = ConnVerified, sim.HandshakeSuccessToast, ToastSuccess
		}
		if s.Connection != want {
			t.Errorf("Connection = %v, want %v", s.Connection, want)
		}
		if s.Toast == nil || s.Toast.Message != msg || s.Toast.Kind != kind {
			t.Fatalf("Toast = %+v", s.Toast)
		}
		if _, again := s.ResolveHandshake(tok, !ok); again {
			t.Error("second resolution accepted")
		}

		if !s.ExpireToast(toastTok) || s.Toast != nil {
			t.Error("toast did not auto-clear")
		}

		retry, restarted := s.StartHandshake()
		if !restarted || retry == tok {
			t.Error("retry from terminal state should start a new handshake")
		}
	}
}

func TestToastExpiryOnlyClearsItsOwnToast(t *testing.T) {
	s := New("", nil)
	first := s.ShowToast("one", ToastSuccess)
	s.ShowToast("two", ToastError)

	if s.ExpireToast(first) {
		t.Error("expiring an older toast cleared the newer one")
	}
	if s.Toast == nil || s.Toast.Message != "two" {
		t.Errorf("Toast = %+v", s.Toast)
	}
	s.DismissToast()
	if s.Toast != nil {
		t.Error("DismissToast did not clear")
	}
}

func TestSetTabDoesNotTouchGeneration(t *testing.T) {
	s := New("", bp("kw"))
	before := s.GenerationToken()
	for _, tab := range Tabs() {
		s.SetTab(tab)
		if s.Tab != tab {
			t.Errorf("Tab = %v, want %v", s.Tab, tab)
		}
	}
	s.SetTab("bogus")
	if s.Tab != TabDiagnostics {
		t.Error("invalid tab should be ignored")
	}
	if s.GenerationToken() != before || s.Generating || s.Blueprint == nil {
		t.Error("tab switching changed generation state")
	}
}

func TestTabCycling(t *testing.T) {
	if TabDiagnostics.Next() != TabSOP {
		t.Error("Next should wrap")
	}
	if TabSOP.Prev() != TabDiagnostics {
		t.Error("Prev should wrap")
	}
	if TabRecipe.Label() != "Signal Recipe" {
		t.Errorf("Label = %q", TabRecipe.Label())
	}
}

func TestSelectFrameworkFallsBack(t *testing.T) {
	s := New(framework.NotionArchitect, nil)
	s.SelectFramework("unknown")
	if s.Framework != framework.GrowthEngine {
		t.Errorf("Framework = %q", s.Framework)
	}
}

func TestConnectionStatusString(t *testing.T) {
	want := map[ConnectionStatus]string{
		ConnIdle: "idle", ConnAuthorizing: "authorizing", ConnSyncing: "syncing",
		ConnVerified: "verified", ConnFailed: "failed",
	}
	for c, s := range want {
		if c.String() != s {
			t.Errorf("%d.String() = %q, want %q", c, c.String(), s)
		}
	}
}
