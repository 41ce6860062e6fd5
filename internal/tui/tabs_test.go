package tui

import (
	"strings"
	"testing"

	"github.com/agolabs/architect/internal/blueprint"
	"github.com/agolabs/architect/internal/session"
	"github.com/agolabs/architect/internal/sim"
	"github.com/agolabs/architect/internal/urls"
)

func testBlueprint() *blueprint.Blueprint {
	return &blueprint.Blueprint{
		Keyword:           "Q1 Launch",
		ProductTitle:      "Lifecycle Command Grid",
		ProductSOP:        "Phase one: capture. Phase two: ship.",
		AutomationRecipe:  "Trigger on new row then notify.",
		Price:             "$297/mo",
		DeploymentPayload: `{"product_title":"Lifecycle Command Grid"}`,
		FlatPayload:       `{"product_title":"Lifecycle Command Grid","price":"$297/mo"}`,
		NotionAIPrompt:    "Build the command grid.",
		NotionSchema: &blueprint.Schema{Properties: []blueprint.Property{
			{Name: "Status", Type: "status", Options: []string{"Queued", "Live"}},
		}},
	}
}

func renderFor(tab session.Tab, mutate func(*TabData)) string {
	data := TabData{
		Blueprint:     testBlueprint(),
		Diagnostics:   sim.NewDiagnostics(),
		Log:           sim.NewDeploymentLog(),
		Width:         80,
		MarkdownStyle: "notty",
	}
	if mutate != nil {
		mutate(&data)
	}
	return RenderTab(tab, data)
}

func assertContains(t *testing.T, out string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(out, w) {
			t.Errorf("output missing %q:\n%s", w, out)
		}
	}
}

func TestRenderTabSOP(t *testing.T) {
	for _, width := range []int{80, 140} {
		out := renderFor(session.TabSOP, func(d *TabData) { d.Width = width })
		assertContains(t, out,
			"LIFECYCLE COMMAND GRID",
			"Operational Protocol v5.5",
			"capture",
			"STRATEGIC BLUEPRINT",
			"$297/mo",
			"AGO_Architect",
			"PRIVATE MEMBER",
			"ENCRYPTION STATUS",
			"NOTION SCHEMA",
			"Queued",
		)
	}
}

func TestRenderTabRecipe(t *testing.T) {
	out := renderFor(session.TabRecipe, nil)
	assertContains(t, out,
		"SIGNAL DEPLOYMENT RECIPE",
		"Copy All Asset Data",
		"Build Request Macro",
		"Build the command grid.",
		"Flat JSON Structure",
		`"price": "$297/mo"`,
		"ZAPIER IMPLEMENTATION",
		"DEPLOY: TRIGGER CMD+J",
		urls.ZapierCatchHook,
		"AUTOMATION RECIPE",
	)

	copied := renderFor(session.TabRecipe, func(d *TabData) { d.Copied = CopyAll })
	assertContains(t, copied, "Copied Master Signal")
}

func TestRenderTabPortalConnectionStates(t *testing.T) {
	tests := []struct {
		status session.ConnectionStatus
		want   []string
	}{
		{session.ConnIdle, []string{"TUNNEL REQUIRED", "Authenticate Signal", "Initialize Deployment Tunnel"}},
		{session.ConnSyncing, []string{"STABILIZING LINK...", "Authenticate Signal"}},
		{session.ConnVerified, []string{"SYNC TUNNEL ACTIVE", "Reset Protocol", "Link Established"}},
		{session.ConnFailed, []string{"AUTH SYNC FAILED", "Scope Mismatch Detected", "Reset Zapier Catch Hook", "Retry Handshake"}},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			out := renderFor(session.TabPortal, func(d *TabData) { d.Connection = tt.status })
			assertContains(t, out, "LIFECYCLE COMMAND GRID", "INTERNAL ALLOCATION", "MANUAL TRIGGER PROTOCOL", sim.StandbyLine)
			assertContains(t, out, tt.want...)
		})
	}
}

func TestRenderTabPortalLog(t *testing.T) {
	log := sim.NewDeploymentLog()
	token, _ := log.Start("Q1 Launch")
	for log.Advance(token) {
	}

	out := renderFor(session.TabPortal, func(d *TabData) { d.Log = log })
	assertContains(t, out, sim.StartLine, "[SUCCESS] Deployment Sequence Closed.", "Run Simulation")
	if strings.Contains(out, sim.StandbyLine) {
		t.Error("standby line should be replaced once playback starts")
	}
}

func TestRenderTabDiagnostics(t *testing.T) {
	out := renderFor(session.TabDiagnostics, nil)
	assertContains(t, out, "SYSTEM INTEGRITY", "PRE-DEPLOYMENT VERIFICATION", "Initialize Integrity Check",
		"SIGNAL RX", "BACKLOG SYNC", "NOTION AUTH", "PERSISTENCE", "STANDBY", "0 pass")

	diag := sim.NewDiagnostics()
	token, _ := diag.Start()
	diag.Resolve(token, 0, sim.CheckPass)
	diag.Resolve(token, 1, sim.CheckWarn)
	scanning := renderFor(session.TabDiagnostics, func(d *TabData) { d.Diagnostics = diag })
	assertContains(t, scanning, "Logic Scan Active", "PASS", "WARN", "1 pass · 1 warn · 0 fail")
}

func TestRenderTabWithoutBlueprint(t *testing.T) {
	out := RenderTab(session.TabSOP, TabData{})
	if !strings.Contains(out, "No blueprint deployed.") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestRenderTabBar(t *testing.T) {
	out := RenderTabBar(session.TabPortal)
	assertContains(t, out, "1 PROTOCOL SOP", "2 SIGNAL RECIPE", "3 PORTAL PREVIEW", "4 DIAGNOSTICS")
}

func TestRenderRecipeBlockCopyState(t *testing.T) {
	out := renderFor(session.TabRecipe, nil)
	assertContains(t, out, "[m] Copy", "[f] Copy")

	macro := renderFor(session.TabRecipe, func(d *TabData) { d.Copied = CopyMacro })
	assertContains(t, macro, "[m] Copied", "[f] Copy", "Copy All Asset Data")
}

func TestMarkdownCache(t *testing.T) {
	c := newMarkdownCache()
	first := renderMarkdown(c, "**bold** text", "notty", 60)
	second := renderMarkdown(c, "**bold** text", "notty", 60)
	if first != second {
		t.Errorf("cached render differs:\n%q\n%q", first, second)
	}
	if c.builds != 1 {
		t.Errorf("builds = %d, want 1", c.builds)
	}

	renderMarkdown(c, "other", "notty", 40)
	if c.builds != 2 {
		t.Errorf("builds = %d after a new width, want 2", c.builds)
	}
	if got := renderMarkdown(nil, "plain", "notty", 40); !strings.Contains(got, "plain") {
		t.Errorf("uncached render = %q", got)
	}
}
