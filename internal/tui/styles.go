package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agolabs/architect/internal/version"
)

// Application branding
const (
	AppName    = "META ARCHITECT"
	AppTagline = "SOP + Automation Sync"
	EngineTag  = "Engine_V4.0_Stable"

	// ProtocolID is the short engine source identifier shown on the landing screen.
	ProtocolID = "2cdc1cad"
)

// AppVersion returns the build version.
func AppVersion() string {
	return version.Version
}

// Layout constants
const (
	MinTerminalWidth  = 72
	MinTerminalHeight = 20
)

// Color palette
var (
	PrimaryColor   = lipgloss.Color("#6366F1") // Indigo
	SecondaryColor = lipgloss.Color("#10B981") // Emerald
	AccentColor    = lipgloss.Color("#A855F7") // Violet
	WarningColor   = lipgloss.Color("#F59E0B") // Amber
	ErrorColor     = lipgloss.Color("#EF4444") // Red

	TextColor      = lipgloss.Color("#FFFFFF")
	SubtleColor    = lipgloss.Color("#71717A") // Zinc
	BorderColor    = lipgloss.Color("#6366F1")
	HighlightColor = lipgloss.Color("#818CF8")
	PanelColor     = lipgloss.Color("#0C0C0E")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(HighlightColor).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	LabelStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Bold(true)

	ValueStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Bold(true)

	AccentStyle = lipgloss.NewStyle().
			Foreground(HighlightColor).
			Bold(true)

	SuccessTextStyle = lipgloss.NewStyle().
				Foreground(SecondaryColor).
				Bold(true)

	WarningTextStyle = lipgloss.NewStyle().
				Foreground(WarningColor).
				Bold(true)

	ErrorTextStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	// PanelStyle frames one block of tab content.
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#27272A")).
			Padding(0, 1)

	// HighlightPanelStyle frames the strategic blueprint panel.
	HighlightPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(PrimaryColor).
				Padding(0, 1)

	ErrorBannerStyle = lipgloss.NewStyle().
				Border(lipgloss.ThickBorder()).
				BorderForeground(ErrorColor).
				Padding(0, 2)

	ToastSuccessStyle = lipgloss.NewStyle().
				Border(lipgloss.Border{Left: "┃"}).
				BorderForeground(SecondaryColor).
				Foreground(TextColor).
				Bold(true).
				Padding(0, 1)

	ToastErrorStyle = lipgloss.NewStyle().
			Border(lipgloss.Border{Left: "┃"}).
			BorderForeground(ErrorColor).
			Foreground(TextColor).
			Bold(true).
			Padding(0, 1)

	ActiveTabStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Background(PrimaryColor).
			Bold(true).
			Padding(0, 2)

	InactiveTabStyle = lipgloss.NewStyle().
				Foreground(SubtleColor).
				Padding(0, 2)

	ButtonStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Background(PrimaryColor).
			Bold(true).
			Padding(0, 1)

	DisabledButtonStyle = lipgloss.NewStyle().
				Foreground(SubtleColor).
				Background(lipgloss.Color("#27272A")).
				Padding(0, 1)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor)
)

// RenderButton renders a key-labelled action, e.g. "[a] Authenticate Signal".
func RenderButton(keyName, label string, enabled bool) string {
	text := "[" + keyName + "] " + label
	if !enabled {
		return DisabledButtonStyle.Render(text)
	}
	return ButtonStyle.Render(text)
}

// BuildHeaderContent renders the application header line.
func BuildHeaderContent() string {
	left := lipgloss.NewStyle().
		Foreground(TextColor).
		Bold(true).
		Render(AppName + " v" + AppVersion())

	tagline := MutedStyle.Render(AppTagline)
	engine := SuccessTextStyle.Render("● " + EngineTag)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", tagline, "  ", engine)
}

// RenderApplicationContainer wraps a screen with the header, a help footer
// and an outer border filling the terminal.
func RenderApplicationContainer(content string, footerText string, terminalWidth int, terminalHeight int) string {
	terminalWidth = max(terminalWidth, MinTerminalWidth)
	terminalHeight = max(terminalHeight, MinTerminalHeight)

	header := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Bottom: "─"}).
		BorderForeground(BorderColor).
		Width(terminalWidth-4).
		Padding(0, 1).
		Render(BuildHeaderContent())

	footer := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Top: "─"}).
		BorderForeground(BorderColor).
		Width(terminalWidth-4).
		Padding(0, 1).
		Render(MutedStyle.Render(footerText))

	body := lipgloss.NewStyle().
		Width(terminalWidth - 4).
		Render(content)

	bordered := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(BorderColor).
		Width(terminalWidth - 2).
		Height(terminalHeight - 2).
		AlignVertical(lipgloss.Top).
		Render(lipgloss.JoinVertical(lipgloss.Left, header, body, footer))

	return lipgloss.Place(terminalWidth, terminalHeight, lipgloss.Left, lipgloss.Top, bordered)
}

// chromeHeight is the number of rows the container uses around the content.
const chromeHeight = 6
