package tui

import (
	"github.com/charmbracelet/bubbles/list"

	"github.com/agolabs/architect/internal/framework"
)

// frameworkItem adapts a catalog entry to list.DefaultItem.
type frameworkItem struct {
	fw framework.Framework
}

func (i frameworkItem) Title() string       { return i.fw.Name }
func (i frameworkItem) Description() string { return i.fw.Description }
func (i frameworkItem) FilterValue() string { return i.fw.Name }

func newFrameworkList(selected framework.ID) list.Model {
	all := framework.All()
	items := make([]list.Item, len(all))
	for i, fw := range all {
		items[i] = frameworkItem{fw: fw}
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(HighlightColor).
		BorderForeground(PrimaryColor)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(SubtleColor).
		BorderForeground(PrimaryColor)

	l := list.New(items, delegate, MinTerminalWidth-8, 12)
	l.Title = "REASONING FRAMEWORKS"
	l.Styles.Title = SubtitleStyle
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Select(framework.Index(selected))
	return l
}
