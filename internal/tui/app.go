package tui

import (
	"context"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/agolabs/architect/internal/blueprint"
	"github.com/agolabs/architect/internal/framework"
	"github.com/agolabs/architect/internal/generator"
	"github.com/agolabs/architect/internal/logging"
	"github.com/agolabs/architect/internal/session"
	"github.com/agolabs/architect/internal/sim"
	"github.com/agolabs/architect/internal/store"
)

// Suggestion is the keyword offered on the input screen.
const Suggestion = "Q1 Product Marketing Lifecycle"

// copiedFor is how long the copy button shows its confirmation.
const copiedFor = 2 * time.Second

// copyToClipboard is replaced in tests.
var copyToClipboard = clipboard.WriteAll

// Generator produces a blueprint for a keyword and framework.
type Generator interface {
	Generate(ctx context.Context, keyword string, id framework.ID) (*blueprint.Blueprint, error)
}

// Options wires the application to its collaborators.
type Options struct {
	Generator Generator
	Store     store.KV // nil disables persistence
	Last      *blueprint.Blueprint
	Framework framework.ID

	Probabilities sim.Probabilities
	Timing        sim.Timing
	Source        sim.Source
	Steps         []session.Step // defaults to session.GenerationSteps

	MarkdownStyle string
}

// Screen represents the current active screen in the application
type Screen string

const (
	ScreenInput      Screen = "input"
	ScreenGenerating Screen = "generating"
	ScreenBlueprint  Screen = "blueprint"
)

// Messages carrying a token are dropped when the token is stale.
type (
	genStepMsg struct {
		token uint64
		index int
	}
	genResultMsg struct {
		token     uint64
		blueprint *blueprint.Blueprint
		err       error
	}
	handshakeMsg   struct{ token uint64 }
	toastExpireMsg struct{ token uint64 }
	scanMsg        struct {
		token uint64
		index int
	}
	logLineMsg    struct{ token uint64 }
	copyResultMsg struct {
		target CopyTarget
		err    error
	}
	copyResetMsg  struct{ seq int }
	storeMsg      struct {
		op  string
		err error
	}
)

// AppModel is the top-level Bubble Tea model.
type AppModel struct {
	State       *session.State
	Diagnostics *sim.Diagnostics
	Log         *sim.DeploymentLog

	// UI state
	Width          int
	Height         int
	Input          textinput.Model
	Frameworks     list.Model
	ShowFrameworks bool
	Spinner        spinner.Model
	Viewport       viewport.Model
	Copied         CopyTarget
	copySeq        int
	markdown       *markdownCache

	// Help
	Help           help.Model
	InputKeys      inputKeyMap
	EngineKeys     engineKeyMap
	GeneratingKeys generatingKeyMap
	BlueprintKeys  blueprintKeyMap

	opts   Options
	cancel context.CancelFunc
}

// NewAppModel creates the application, hydrated with opts.Last when set.
func NewAppModel(opts Options) AppModel {
	if opts.Source == nil {
		opts.Source = sim.DefaultSource()
	}
	if opts.Probabilities == (sim.Probabilities{}) {
		opts.Probabilities = sim.DefaultProbabilities()
	}
	if opts.Timing == (sim.Timing{}) {
		opts.Timing = sim.DefaultTiming()
	}
	if len(opts.Steps) == 0 {
		opts.Steps = session.GenerationSteps
	}

	input := textinput.New()
	input.Placeholder = "e.g. '2025 AI Agency Launch'"
	input.Prompt = "❯ "
	input.PromptStyle = AccentStyle
	input.CharLimit = 200
	input.Width = MinTerminalWidth - 10
	input.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	vp := viewport.New(MinTerminalWidth-4, MinTerminalHeight-chromeHeight)
	vp.KeyMap.HalfPageDown = key.NewBinding(key.WithKeys("ctrl+d"))
	vp.KeyMap.HalfPageUp = key.NewBinding(key.WithKeys("ctrl+u"))
	vp.KeyMap.PageDown = key.NewBinding(key.WithKeys("pgdown", " "))
	vp.KeyMap.PageUp = key.NewBinding(key.WithKeys("pgup"))
	vp.KeyMap.Up = key.NewBinding(key.WithKeys("up", "k"))
	vp.KeyMap.Down = key.NewBinding(key.WithKeys("down", "j"))
	vp.KeyMap.Left.SetEnabled(false)
	vp.KeyMap.Right.SetEnabled(false)

	state := session.New(opts.Framework, opts.Last)

	m := AppModel{
		State:          state,
		Diagnostics:    sim.NewDiagnostics(),
		Log:            sim.NewDeploymentLog(),
		Input:          input,
		Frameworks:     newFrameworkList(state.Framework),
		Spinner:        s,
		Viewport:       vp,
		Help:           help.New(),
		InputKeys:      newInputKeys(),
		EngineKeys:     newEngineKeys(),
		GeneratingKeys: newGeneratingKeys(),
		BlueprintKeys:  newBlueprintKeys(),
		markdown:       newMarkdownCache(),
		opts:           opts,
	}
	if opts.Last != nil {
		m.Input.SetValue(opts.Last.Keyword)
	}
	m.refresh()
	return m
}

// Screen derives the active screen from the session state.
func (m AppModel) Screen() Screen {
	switch {
	case m.State.Generating:
		return ScreenGenerating
	case m.State.Blueprint != nil:
		return ScreenBlueprint
	default:
		return ScreenInput
	}
}

// Init initializes the application
func (m AppModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles all messages and routes them to the appropriate screen
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.cancelGeneration()
			return m, tea.Quit
		}
		switch m.Screen() {
		case ScreenGenerating:
			return m.updateGenerating(msg)
		case ScreenBlueprint:
			return m.updateBlueprint(msg)
		default:
			return m.updateInput(msg)
		}

	case spinner.TickMsg:
		if !m.State.Generating {
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case genStepMsg:
		if msg.index >= len(m.opts.Steps) || !m.State.SetStep(msg.token, m.opts.Steps[msg.index].Text) {
			return m, nil
		}
		cmd := m.advance(msg.token, msg.index)
		return m, cmd

	case genResultMsg:
		return m.handleResult(msg)

	case handshakeMsg:
		ok := m.opts.Probabilities.Handshake(m.opts.Source)
		toastToken, resolved := m.State.ResolveHandshake(msg.token, ok)
		if !resolved {
			return m, nil
		}
		logging.LogHandshake(m.State.Connection.String(), msg.token)
		m.refresh()
		return m, tick(m.opts.Timing.ToastDuration, toastExpireMsg{token: toastToken})

	case toastExpireMsg:
		m.State.ExpireToast(msg.token)
		return m, nil

	case scanMsg:
		status := m.opts.Probabilities.Check(m.opts.Source)
		if !m.Diagnostics.Resolve(msg.token, msg.index, status) {
			return m, nil
		}
		m.refresh()
		return m, m.nextScan(msg.token)

	case logLineMsg:
		if !m.Log.Advance(msg.token) {
			return m, nil
		}
		m.refresh()
		return m, m.nextLogLine(msg.token)

	case copyResultMsg:
		if msg.err != nil {
			logging.Warn("Clipboard write failed", zap.Error(msg.err))
			toastToken := m.State.ShowToast("Clipboard Unavailable", session.ToastError)
			return m, tick(m.opts.Timing.ToastDuration, toastExpireMsg{token: toastToken})
		}
		m.copySeq++
		m.Copied = msg.target
		m.refresh()
		return m, tick(copiedFor, copyResetMsg{seq: m.copySeq})

	case copyResetMsg:
		if msg.seq == m.copySeq && m.Copied != CopyNone {
			m.Copied = CopyNone
			m.refresh()
		}
		return m, nil

	case storeMsg:
		if msg.err != nil {
			logging.Warn("Persistence failed", zap.String("op", msg.op), zap.Error(msg.err))
		}
		return m, nil
	}

	return m.updateComponents(msg)
}

// updateComponents forwards other messages (cursor blink and the like) to
// the focused component.
func (m AppModel) updateComponents(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.Screen() {
	case ScreenInput:
		m.Input, cmd = m.Input.Update(msg)
	case ScreenBlueprint:
		m.Viewport, cmd = m.Viewport.Update(msg)
	}
	return m, cmd
}

func (m AppModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.ShowFrameworks {
		switch {
		case key.Matches(msg, m.EngineKeys.Close):
			m.ShowFrameworks = false
			return m, nil
		case key.Matches(msg, m.EngineKeys.Select):
			if item, ok := m.Frameworks.SelectedItem().(frameworkItem); ok {
				m.State.SelectFramework(item.fw.ID)
			}
			m.ShowFrameworks = false
			return m, nil
		}
		var cmd tea.Cmd
		m.Frameworks, cmd = m.Frameworks.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.InputKeys.Generate):
		return m.startGeneration()
	case key.Matches(msg, m.InputKeys.Engine):
		m.ShowFrameworks = true
		m.Frameworks.Select(framework.Index(m.State.Framework))
		return m, nil
	case key.Matches(msg, m.InputKeys.Suggestion):
		m.Input.SetValue(Suggestion)
		m.Input.CursorEnd()
		return m, nil
	case key.Matches(msg, m.InputKeys.Purge):
		m.State.DismissError()
		return m, nil
	case key.Matches(msg, m.InputKeys.Quit):
		if m.State.Err != "" {
			m.State.DismissError()
			return m, nil
		}
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	return m, cmd
}

func (m AppModel) updateGenerating(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.GeneratingKeys.Reset) {
		return m.terminalReset()
	}
	return m, nil
}

func (m AppModel) updateBlueprint(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.BlueprintKeys
	switch {
	case key.Matches(msg, keys.Quit):
		m.cancelGeneration()
		return m, tea.Quit
	case key.Matches(msg, keys.Reset):
		return m.terminalReset()
	case key.Matches(msg, keys.NextTab):
		return m.switchTab(m.State.Tab.Next())
	case key.Matches(msg, keys.PrevTab):
		return m.switchTab(m.State.Tab.Prev())
	case key.Matches(msg, keys.JumpTab):
		tabs := session.Tabs()
		if i := int(msg.String()[0] - '1'); i >= 0 && i < len(tabs) {
			return m.switchTab(tabs[i])
		}
		return m, nil
	case key.Matches(msg, keys.Dismiss):
		m.State.DismissToast()
		return m, nil
	case key.Matches(msg, keys.Copy):
		return m, copyCmd(CopyAll, m.State.Blueprint)
	case key.Matches(msg, keys.CopyMacro):
		return m, copyCmd(CopyMacro, m.State.Blueprint)
	case key.Matches(msg, keys.CopyFlat):
		return m, copyCmd(CopyFlat, m.State.Blueprint)
	case key.Matches(msg, keys.Handshake):
		token, ok := m.State.StartHandshake()
		if !ok {
			return m, nil
		}
		m.refresh()
		return m, tick(m.opts.Timing.HandshakeDelay, handshakeMsg{token: token})
	case key.Matches(msg, keys.Simulate):
		token, ok := m.Log.Start(m.State.Blueprint.Keyword)
		if !ok {
			return m, nil
		}
		m.refresh()
		return m, m.nextLogLine(token)
	case key.Matches(msg, keys.Scan):
		token, ok := m.Diagnostics.Start()
		if !ok {
			return m, nil
		}
		m.refresh()
		return m, m.nextScan(token)
	}

	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	return m, cmd
}

func (m AppModel) switchTab(t session.Tab) (tea.Model, tea.Cmd) {
	m.State.SetTab(t)
	m.refresh()
	m.Viewport.GotoTop()
	return m, nil
}

// startGeneration begins a new generation, superseding any in flight.
func (m AppModel) startGeneration() (tea.Model, tea.Cmd) {
	token, err := m.State.StartGeneration(m.Input.Value())
	if err != nil {
		return m, nil
	}
	m.cancelGeneration()
	m.ShowFrameworks = false
	m.Diagnostics.Stop()
	m.Diagnostics = sim.NewDiagnostics()
	m.Log.Stop()
	m.Log = sim.NewDeploymentLog()
	m.Copied = CopyNone
	m.State.SetStep(token, m.opts.Steps[0].Text)
	cmd := m.advance(token, 0)
	return m, tea.Batch(m.Spinner.Tick, cmd)
}

// advance schedules the step after index, or issues the engine call once the
// last step is showing.
func (m *AppModel) advance(token uint64, index int) tea.Cmd {
	if next := index + 1; next < len(m.opts.Steps) {
		return tick(m.opts.Steps[next].Delay, genStepMsg{token: token, index: next})
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	return generateCmd(ctx, m.opts.Generator, token, m.State.Keyword, m.State.Framework)
}

func (m AppModel) handleResult(msg genResultMsg) (tea.Model, tea.Cmd) {
	if msg.err == nil && msg.blueprint == nil {
		msg.err = generator.NewEmptyResponseError("")
	}
	if msg.err != nil {
		if m.State.Fail(msg.token, generator.ShortMessage(msg.err)) {
			m.cancelGeneration()
		}
		return m, nil
	}
	if !m.State.Complete(msg.token, msg.blueprint) {
		return m, nil
	}
	m.cancelGeneration()
	m.refresh()
	m.Viewport.GotoTop()
	return m, saveCmd(m.opts.Store, msg.blueprint)
}

// terminalReset aborts every sequence and purges the stored blueprint.
func (m AppModel) terminalReset() (tea.Model, tea.Cmd) {
	m.cancelGeneration()
	m.State.Reset()
	m.Diagnostics.Stop()
	m.Diagnostics = sim.NewDiagnostics()
	m.Log.Stop()
	m.Log = sim.NewDeploymentLog()
	m.Copied = CopyNone
	m.copySeq++
	m.ShowFrameworks = false
	m.Input.SetValue("")
	m.Input.Focus()
	m.refresh()
	return m, clearCmd(m.opts.Store)
}

func (m *AppModel) cancelGeneration() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

func (m AppModel) nextScan(token uint64) tea.Cmd {
	index, delay, ok := m.Diagnostics.Next(m.opts.Timing, m.opts.Source)
	if !ok {
		return nil
	}
	return tick(delay, scanMsg{token: token, index: index})
}

func (m AppModel) nextLogLine(token uint64) tea.Cmd {
	delay, ok := m.Log.Next()
	if !ok {
		return nil
	}
	return tick(delay, logLineMsg{token: token})
}

func (m AppModel) tabData() TabData {
	return TabData{
		Blueprint:     m.State.Blueprint,
		Connection:    m.State.Connection,
		Diagnostics:   m.Diagnostics,
		Log:           m.Log,
		Width:         m.Viewport.Width,
		Copied:        m.Copied,
		MarkdownStyle: m.opts.MarkdownStyle,
		markdown:      m.markdown,
	}
}

// refresh re-renders the active tab into the viewport and enables the keys
// that apply to it.
func (m *AppModel) refresh() {
	tab := m.State.Tab
	m.BlueprintKeys.Handshake.SetEnabled(tab == session.TabPortal)
	m.BlueprintKeys.Simulate.SetEnabled(tab == session.TabPortal)
	m.BlueprintKeys.Scan.SetEnabled(tab == session.TabDiagnostics)
	m.BlueprintKeys.CopyMacro.SetEnabled(tab == session.TabRecipe)
	m.BlueprintKeys.CopyFlat.SetEnabled(tab == session.TabRecipe)
	if m.State.Blueprint == nil {
		m.Viewport.SetContent("")
		return
	}
	m.Viewport.SetContent(RenderTab(tab, m.tabData()))
}

func (m *AppModel) resize() {
	width := max(m.Width, MinTerminalWidth)
	height := max(m.Height, MinTerminalHeight)

	m.Help.Width = width - 4
	m.Input.Width = min(width-12, 80)
	m.Frameworks.SetSize(min(width-8, 80), max(height-chromeHeight-14, 6))
	m.Viewport.Width = width - 4
	m.Viewport.Height = max(height-chromeHeight-3, 5)
	m.refresh()
}

func tick(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return msg })
}

func generateCmd(ctx context.Context, gen Generator, token uint64, keyword string, id framework.ID) tea.Cmd {
	return func() tea.Msg {
		if gen == nil {
			return genResultMsg{token: token, err: generator.NewConfigError("Engine Error: no API key configured.")}
		}
		bp, err := gen.Generate(ctx, keyword, id)
		return genResultMsg{token: token, blueprint: bp, err: err}
	}
}

// copyCmd writes the selected part of bp to the clipboard. Code blocks are
// copied as received, not as displayed.
func copyCmd(target CopyTarget, bp *blueprint.Blueprint) tea.Cmd {
	if bp == nil {
		return nil
	}
	return func() tea.Msg {
		var text string
		switch target {
		case CopyMacro:
			text = bp.NotionAIPrompt
		case CopyFlat:
			text = bp.FlatPayload
		default:
			var err error
			if text, err = bp.PrettyJSON(); err != nil {
				return copyResultMsg{target: target, err: err}
			}
		}
		return copyResultMsg{target: target, err: copyToClipboard(text)}
	}
}

func saveCmd(kv store.KV, bp *blueprint.Blueprint) tea.Cmd {
	if kv == nil {
		return nil
	}
	return func() tea.Msg {
		return storeMsg{op: "save", err: store.SaveLast(context.Background(), kv, bp)}
	}
}

func clearCmd(kv store.KV) tea.Cmd {
	if kv == nil {
		return nil
	}
	return func() tea.Msg {
		return storeMsg{op: "clear", err: store.ClearLast(context.Background(), kv)}
	}
}

// View renders the current screen
func (m AppModel) View() string {
	var content, helpText string
	switch m.Screen() {
	case ScreenGenerating:
		content = m.renderGenerating()
		helpText = m.Help.View(m.GeneratingKeys)
	case ScreenBlueprint:
		content = m.renderBlueprint()
		helpText = m.Help.View(m.BlueprintKeys)
	default:
		content = m.renderInput()
		if m.ShowFrameworks {
			helpText = m.Help.View(m.EngineKeys)
		} else {
			helpText = m.Help.View(m.InputKeys)
		}
	}

	if toast := m.renderToast(); toast != "" {
		content = lipgloss.JoinVertical(lipgloss.Left, toast, content)
	}
	return RenderApplicationContainer(content, helpText, m.Width, m.Height)
}

func (m AppModel) renderToast() string {
	t := m.State.Toast
	if t == nil {
		return ""
	}
	if t.Kind == session.ToastError {
		return ToastErrorStyle.Render("⚠ "+strings.ToUpper(t.Message)) + "  " + MutedStyle.Render("[x]")
	}
	return ToastSuccessStyle.Render("✓ "+strings.ToUpper(t.Message)) + "  " + MutedStyle.Render("[x]")
}

func (m AppModel) renderInput() string {
	fw := framework.Resolve(m.State.Framework)

	hero := lipgloss.JoinVertical(lipgloss.Left,
		AccentStyle.Render("AGO_PROTOCOL_ID: "+ProtocolID),
		TitleStyle.Render("ASSET ")+lipgloss.NewStyle().Foreground(HighlightColor).Bold(true).Render("ARCHITECT"),
		MutedStyle.Render("Deterministic asset deployment via Hybrid Signal Loop."),
		MutedStyle.Italic(true).Render("Zero manual intervention requested."),
	)

	parts := []string{hero, ""}

	if m.State.Err != "" {
		parts = append(parts, ErrorBannerStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			ErrorTextStyle.Render("⚠ PIPELINE BREACH"),
			lipgloss.NewStyle().Foreground(ErrorColor).Render(m.State.Err),
			"",
			RenderButton("esc", "Purge & Re-Initialize", true),
		)), "")
	}

	toggle := "Change Engine"
	if m.ShowFrameworks {
		toggle = "Close Select"
	}
	parts = append(parts, LabelStyle.Render("ACTIVE REASONING ENGINE")+"   "+RenderButton("tab", toggle, true))
	if m.ShowFrameworks {
		parts = append(parts, m.Frameworks.View())
	} else {
		parts = append(parts, PanelStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			ValueStyle.Render(fw.Name),
			MutedStyle.Render(fw.Description),
		)))
	}

	deploy := RenderButton("enter", "Deploy Architect", strings.TrimSpace(m.Input.Value()) != "")
	parts = append(parts,
		"",
		m.Input.View(),
		deploy,
		"",
		MutedStyle.Render("✉ Suggestion: "+Suggestion+"  (ctrl+s)"),
		"",
		MutedStyle.Render("⚡ Signal_Sync    ⌘ Notion_Macro    ◍ Portal_Alpha"),
	)

	return lipgloss.NewStyle().Padding(1, 2).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m AppModel) renderGenerating() string {
	return lipgloss.NewStyle().Padding(2, 4).Render(lipgloss.JoinVertical(lipgloss.Left,
		m.Spinner.View()+" "+AccentStyle.Render("INITIALIZING_SESSION"),
		"",
		TitleStyle.Render(m.State.Step),
		"",
		MutedStyle.Render("Encrypting structural nodes... OK"),
	))
}

func (m AppModel) renderBlueprint() string {
	bar := RenderTabBar(m.State.Tab) + "   " + RenderButton("ctrl+r", "Terminal Reset", true)
	return lipgloss.JoinVertical(lipgloss.Left, bar, "", m.Viewport.View())
}
