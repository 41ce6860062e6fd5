package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive application in the alternate screen and blocks
// until the user quits or ctx is canceled.
func Run(ctx context.Context, opts Options) error {
	model := NewAppModel(opts)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if m, ok := final.(AppModel); ok {
		m.cancelGeneration()
	}
	if err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}
