// Package tui implements the interactive asset architect.
//
// The application has three screens derived from session state:
//
//   - Input: keyword entry, framework selection ("Change Engine") and the
//     Pipeline Breach banner after a failed generation.
//   - Generating: spinner and the current status step.
//   - Blueprint: tab bar over a scrollable viewport showing one of
//     Protocol SOP, Signal Recipe, Portal Preview or Diagnostics.
//
// # Timers
//
// Every delayed effect is a tea.Tick whose message carries the token of the
// sequence that scheduled it: generation steps, the handshake, toast expiry,
// diagnostics checks and deployment log lines. Update drops messages whose
// token is no longer current, so a new generation or a Terminal Reset
// silently orphans everything still in flight. The engine call itself runs
// under a context that is canceled on reset, on a superseding generation and
// on quit.
//
// # Rendering
//
// RenderTab is a pure function of TabData. Switching tabs re-renders the
// viewport and never reaches the generator. SOP and recipe prose is rendered
// with glamour; the model keeps one renderer per style and wrap width.
//
// Every screen is wrapped with RenderApplicationContainer:
//
//	func (m AppModel) View() string {
//	    content := m.renderInput()
//	    return RenderApplicationContainer(content, m.Help.View(m.InputKeys), m.Width, m.Height)
//	}
package tui
