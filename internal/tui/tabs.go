package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/agolabs/architect/internal/blueprint"
	"github.com/agolabs/architect/internal/session"
	"github.com/agolabs/architect/internal/sim"
	"github.com/agolabs/architect/internal/urls"
)

// ZapierStep is one row of the Zapier implementation checklist.
type ZapierStep struct {
	Title string
	Desc  string
}

// ZapierSteps is the manual wiring checklist for the recipe tab.
var ZapierSteps = []ZapierStep{
	{"Choose Notion -> Create Page", "Select your master business workspace."},
	{`Map Folder: "Inbound Assets"`, "Choose where the build logic will land."},
	{`Title: Use "product_title"`, "Direct mapping from the JSON payload."},
	{`Content: Map "notionAiPrompt"`, "This contains the phase checklists."},
	{"Deploy: Trigger Cmd+J", "Manual trigger to build the UI structure."},
}

// DefaultMarkdownStyle is the glamour style used for SOP and recipe text.
const DefaultMarkdownStyle = "dark"

// TabData is everything a tab needs to render.
type TabData struct {
	Blueprint   *blueprint.Blueprint
	Connection  session.ConnectionStatus
	Diagnostics *sim.Diagnostics
	Log         *sim.DeploymentLog
	Width       int
	Copied      CopyTarget

	// MarkdownStyle is a glamour style name; empty means DefaultMarkdownStyle.
	MarkdownStyle string

	markdown *markdownCache
}

// CopyTarget names what a copy key puts on the clipboard.
type CopyTarget int

const (
	CopyNone CopyTarget = iota
	CopyAll
	CopyMacro
	CopyFlat
)

// RenderTab renders one tab. It has no side effects.
func RenderTab(tab session.Tab, data TabData) string {
	if data.Blueprint == nil {
		return MutedStyle.Render("No blueprint deployed.")
	}
	if data.Width < 40 {
		data.Width = 40
	}
	switch tab {
	case session.TabRecipe:
		return renderRecipe(data)
	case session.TabPortal:
		return renderPortal(data)
	case session.TabDiagnostics:
		return renderDiagnostics(data)
	default:
		return renderSOP(data)
	}
}

// RenderTabBar renders the four tab labels with active highlighted.
func RenderTabBar(active session.Tab) string {
	var labels []string
	for i, t := range session.Tabs() {
		label := fmt.Sprintf("%d %s", i+1, strings.ToUpper(t.Label()))
		if t == active {
			labels = append(labels, ActiveTabStyle.Render(label))
		} else {
			labels = append(labels, InactiveTabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, labels...)
}

// columns lays panels side by side on wide terminals and stacks them otherwise.
func columns(width int, left, right string) string {
	if width < 100 {
		return lipgloss.JoinVertical(lipgloss.Left, left, "", right)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
}

func splitWidths(width int) (int, int) {
	if width < 100 {
		return width - 2, width - 2
	}
	right := width / 3
	return width - right - 4, right
}

func kv(label, value string, width int) string {
	gap := max(width-lipgloss.Width(label)-lipgloss.Width(value)-4, 1)
	return LabelStyle.Render(strings.ToUpper(label)) + strings.Repeat(" ", gap) + value
}

func renderSOP(d TabData) string {
	bp := d.Blueprint
	leftW, rightW := splitWidths(d.Width)

	main := lipgloss.JoinVertical(lipgloss.Left,
		TitleStyle.Render(strings.ToUpper(bp.ProductTitle)),
		SubtitleStyle.Render("Operational Protocol v5.5"),
		"",
		renderMarkdown(d.markdown, bp.ProductSOP, d.MarkdownStyle, leftW-4),
	)
	if bp.NotionSchema != nil && len(bp.NotionSchema.Properties) > 0 {
		main = lipgloss.JoinVertical(lipgloss.Left, main, "",
			LabelStyle.Render("NOTION SCHEMA"),
			bp.FormatSchema(),
		)
	}

	inner := rightW - 4
	strategic := HighlightPanelStyle.Width(rightW).Render(lipgloss.JoinVertical(lipgloss.Left,
		AccentStyle.Render("◎ STRATEGIC BLUEPRINT"),
		"",
		kv("Valuation", ValueStyle.Render(bp.Price), inner),
		kv("Framework", AccentStyle.Render("AGO_Architect"), inner),
		kv("Portal Type", ValueStyle.Render("PRIVATE MEMBER"), inner),
	))
	encryption := PanelStyle.Width(rightW).Render(lipgloss.JoinVertical(lipgloss.Left,
		SuccessTextStyle.Render("⛨ ENCRYPTION STATUS"),
		MutedStyle.Italic(true).Width(inner).Render(
			"Assets validated for Direct-Notion-Sync without third-party marketplace dependencies."),
	))

	return columns(d.Width,
		PanelStyle.Width(leftW).Render(main),
		lipgloss.JoinVertical(lipgloss.Left, strategic, encryption),
	)
}

func codeBox(title, language, code, copyKey string, copied bool, width int) string {
	label := "Copy"
	if copied {
		label = "Copied"
	}
	header := AccentStyle.Render(title) + "  " + MutedStyle.Render(language) + "  " + RenderButton(copyKey, label, true)
	return PanelStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		lipgloss.NewStyle().Foreground(TextColor).Width(width-4).Render(code),
	))
}

func renderRecipe(d TabData) string {
	bp := d.Blueprint
	leftW, rightW := splitWidths(d.Width)

	copyLabel := "Copy All Asset Data"
	if d.Copied == CopyAll {
		copyLabel = "Copied Master Signal"
	}
	heading := TitleStyle.Render("SIGNAL DEPLOYMENT RECIPE") + "   " + RenderButton("c", copyLabel, true)

	var left []string
	left = append(left,
		AccentStyle.Render("✦ NOTION AI BRIDGE (SECRET SAUCE)")+"  "+MutedStyle.Render("Manual Copy Target"),
		codeBox("Build Request Macro", "Markdown / Notion AI", bp.NotionAIPrompt, "m", d.Copied == CopyMacro, leftW),
		"",
		LabelStyle.Render("INBOUND WEBHOOK PAYLOAD")+"  "+MutedStyle.Render("Zapier Data Source"),
		codeBox("Flat JSON Structure", "JSON", blueprint.PrettyPayload(bp.FlatPayload), "f", d.Copied == CopyFlat, leftW),
	)
	if strings.TrimSpace(bp.AutomationRecipe) != "" {
		left = append(left, "",
			LabelStyle.Render("AUTOMATION RECIPE"),
			renderMarkdown(d.markdown, bp.AutomationRecipe, d.MarkdownStyle, leftW-2),
		)
	}

	steps := []string{ValueStyle.Render("⚙ ZAPIER IMPLEMENTATION"), ""}
	for i, s := range ZapierSteps {
		steps = append(steps,
			AccentStyle.Render(fmt.Sprintf("%d ", i+1))+ValueStyle.Render(strings.ToUpper(s.Title)),
			"  "+MutedStyle.Render(s.Desc),
		)
	}
	zapier := PanelStyle.Width(rightW).Render(lipgloss.JoinVertical(lipgloss.Left, steps...))
	listener := PanelStyle.BorderForeground(SecondaryColor).Width(rightW).Render(lipgloss.JoinVertical(lipgloss.Left,
		SuccessTextStyle.Render("✓ WEBHOOK LISTENER ●"),
		MutedStyle.Width(rightW-4).Render(urls.ZapierCatchHook),
	))

	return lipgloss.JoinVertical(lipgloss.Left,
		heading,
		"",
		columns(d.Width,
			lipgloss.JoinVertical(lipgloss.Left, left...),
			lipgloss.JoinVertical(lipgloss.Left, zapier, listener),
		),
	)
}

func renderDeployLog(d TabData, width int) string {
	lines := []string{sim.StandbyLine}
	active := false
	if d.Log != nil {
		lines = d.Log.Lines
		active = d.Log.Active
	}

	action := RenderButton("d", "Run Simulation", true)
	if active {
		action = RenderButton("d", "Processing...", false)
	}

	rows := []string{AccentStyle.Render(">_ ") + LabelStyle.Render("REAL-TIME DEPLOYMENT FEED") + "   " + action, ""}
	for _, line := range lines {
		switch {
		case strings.Contains(line, "[SUCCESS]"):
			rows = append(rows, SuccessTextStyle.Render(line))
		case strings.Contains(line, "[ERROR]"):
			rows = append(rows, ErrorTextStyle.Render(line))
		default:
			rows = append(rows, MutedStyle.Render(line))
		}
	}
	if active {
		rows = append(rows, AccentStyle.Render("_"))
	}
	return PanelStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func renderLogicStream(status session.ConnectionStatus, width int) string {
	rows := []string{ValueStyle.Render("▤ LOGIC STREAM"), ""}

	switch status {
	case session.ConnVerified:
		rows = append(rows,
			SuccessTextStyle.Render("✓ SYNC TUNNEL ACTIVE"),
			"",
			RenderButton("a", "Reset Protocol", true),
		)
	case session.ConnFailed:
		rows = append(rows,
			ErrorTextStyle.Render("⊘ AUTH SYNC FAILED"),
			lipgloss.NewStyle().Foreground(ErrorColor).Render("Scope Mismatch Detected"),
			"",
			LabelStyle.Render("Troubleshooting:"),
		)
		for _, tip := range sim.HandshakeTroubleshooting {
			rows = append(rows, MutedStyle.Render("  • "+tip))
		}
		rows = append(rows, MutedStyle.Render("  "+urls.NotionIntegrations))
		rows = append(rows, "", RenderButton("a", "Retry Handshake", true))
	case session.ConnSyncing, session.ConnAuthorizing:
		rows = append(rows,
			WarningTextStyle.Render("◌ STABILIZING LINK..."),
			"",
			RenderButton("a", "Authenticate Signal", false),
		)
	default:
		rows = append(rows,
			MutedStyle.Render("◌ TUNNEL REQUIRED"),
			"",
			RenderButton("a", "Authenticate Signal", true),
		)
	}

	rows = append(rows, "",
		LabelStyle.Render("STACK NODES")+"  "+MutedStyle.Render("Notion · Zapier · Notion AI"),
		MutedStyle.Width(width-4).Render("System utilizing Hybrid Signal Loop v5.5 to bypass legacy API constraints."),
	)
	return PanelStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func renderPortal(d TabData) string {
	bp := d.Blueprint
	leftW, rightW := splitWidths(d.Width)

	tunnelLabel := "Initialize Deployment Tunnel"
	if d.Connection == session.ConnVerified {
		tunnelLabel = "Link Established"
	}
	tunnelEnabled := d.Connection != session.ConnSyncing && d.Connection != session.ConnVerified

	preview := PanelStyle.BorderForeground(PrimaryColor).Width(leftW).Render(lipgloss.JoinVertical(lipgloss.Left,
		LabelStyle.Render("◍ PORTAL NODE PREVIEW")+"  "+AccentStyle.Render("Secret Sauce Engaged"),
		"",
		TitleStyle.Render(strings.ToUpper(bp.ProductTitle)),
		AccentStyle.Render("Industrial Loop")+"  "+SuccessTextStyle.Render("Ready for Cmd+J"),
		"",
		ValueStyle.Render("⌘ MANUAL TRIGGER PROTOCOL"),
		MutedStyle.Width(leftW-4).Render("Open Notion -> Highlight Secret Sauce -> Press Cmd + J and hit Enter."),
		"",
		LabelStyle.Render("INTERNAL ALLOCATION"),
		ValueStyle.Render(bp.Price)+"   "+RenderButton("a", tunnelLabel, tunnelEnabled),
	))

	return columns(d.Width,
		lipgloss.JoinVertical(lipgloss.Left, preview, "", renderDeployLog(d, leftW)),
		renderLogicStream(d.Connection, rightW),
	)
}

func checkStatusText(s sim.CheckStatus) string {
	switch s {
	case sim.CheckPass:
		return SuccessTextStyle.Render("PASS")
	case sim.CheckWarn:
		return WarningTextStyle.Render("WARN")
	case sim.CheckFail:
		return ErrorTextStyle.Render("FAIL")
	default:
		return MutedStyle.Render("STANDBY")
	}
}

func renderDiagnostics(d TabData) string {
	diag := d.Diagnostics
	if diag == nil {
		diag = sim.NewDiagnostics()
	}

	action := RenderButton("s", "Initialize Integrity Check", true)
	if diag.Scanning {
		action = RenderButton("s", "Logic Scan Active", false)
	}

	header := lipgloss.JoinVertical(lipgloss.Left,
		TitleStyle.Render("SYSTEM INTEGRITY")+"   "+action,
		SubtitleStyle.Render("PRE-DEPLOYMENT VERIFICATION"),
	)

	cardW := max((d.Width-8)/4, 18)
	if d.Width < 100 {
		cardW = d.Width - 2
	}
	cards := make([]string, 0, len(diag.Checks))
	for _, c := range diag.Checks {
		cards = append(cards, PanelStyle.Width(cardW).Render(lipgloss.JoinVertical(lipgloss.Left,
			ValueStyle.Render(strings.ToUpper(c.Label)),
			checkStatusText(c.Status),
		)))
	}

	var grid string
	if d.Width < 100 {
		grid = lipgloss.JoinVertical(lipgloss.Left, cards...)
	} else {
		grid = lipgloss.JoinHorizontal(lipgloss.Top, cards...)
	}

	pass, warn, fail := diag.Summary()
	summary := MutedStyle.Render(fmt.Sprintf("%d pass · %d warn · %d fail", pass, warn, fail))

	return lipgloss.JoinVertical(lipgloss.Left, header, "", grid, "", summary)
}
