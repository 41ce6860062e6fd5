package tui

import "github.com/charmbracelet/bubbles/key"

// inputKeyMap defines key bindings for the keyword screen
type inputKeyMap struct {
	Generate   key.Binding
	Engine     key.Binding
	Suggestion key.Binding
	Purge      key.Binding
	Quit       key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k inputKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Generate, k.Engine, k.Suggestion, k.Purge, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k inputKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// engineKeyMap defines key bindings while the framework list is open
type engineKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Close  key.Binding
}

func (k engineKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Close}
}

func (k engineKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// generatingKeyMap defines key bindings while a generation runs
type generatingKeyMap struct {
	Reset key.Binding
	Quit  key.Binding
}

func (k generatingKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Reset, k.Quit}
}

func (k generatingKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// blueprintKeyMap defines key bindings for the tabbed blueprint view
type blueprintKeyMap struct {
	NextTab   key.Binding
	PrevTab   key.Binding
	JumpTab   key.Binding
	Scroll    key.Binding
	Copy      key.Binding
	CopyMacro key.Binding
	CopyFlat  key.Binding
	Handshake key.Binding
	Simulate  key.Binding
	Scan      key.Binding
	Dismiss   key.Binding
	Reset     key.Binding
	Quit      key.Binding
}

func (k blueprintKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.JumpTab, k.Copy, k.Handshake, k.Simulate, k.Scan, k.Reset, k.Quit}
}

func (k blueprintKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTab, k.PrevTab, k.JumpTab, k.Scroll},
		{k.Copy, k.CopyMacro, k.CopyFlat},
		{k.Handshake, k.Simulate, k.Scan},
		{k.Dismiss, k.Reset, k.Quit},
	}
}

func newInputKeys() inputKeyMap {
	return inputKeyMap{
		Generate: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "deploy"),
		),
		Engine: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "change engine"),
		),
		Suggestion: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "suggestion"),
		),
		Purge: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "purge error"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
	}
}

func newEngineKeys() engineKeyMap {
	return engineKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Close: key.NewBinding(
			key.WithKeys("tab", "esc"),
			key.WithHelp("tab", "close select"),
		),
	}
}

func newGeneratingKeys() generatingKeyMap {
	return generatingKeyMap{
		Reset: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "abort"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

func newBlueprintKeys() blueprintKeyMap {
	return blueprintKeyMap{
		NextTab: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("shift+tab", "prev tab"),
		),
		JumpTab: key.NewBinding(
			key.WithKeys("1", "2", "3", "4"),
			key.WithHelp("1-4", "jump"),
		),
		Scroll: key.NewBinding(
			key.WithKeys("up", "down", "pgup", "pgdown"),
			key.WithHelp("↑/↓", "scroll"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy asset data"),
		),
		CopyMacro: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "copy macro"),
		),
		CopyFlat: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "copy flat json"),
		),
		Handshake: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "authenticate"),
		),
		Simulate: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "run simulation"),
		),
		Scan: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "integrity check"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "dismiss toast"),
		),
		Reset: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "terminal reset"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
