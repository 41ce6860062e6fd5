package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

type markdownKey struct {
	style string
	width int
}

// markdownCache keeps one glamour renderer per style and wrap width. It is
// only touched from Update, so it needs no locking.
type markdownCache struct {
	renderers map[markdownKey]*glamour.TermRenderer
	builds    int
}

func newMarkdownCache() *markdownCache {
	return &markdownCache{renderers: make(map[markdownKey]*glamour.TermRenderer)}
}

func (c *markdownCache) renderer(style string, width int) (*glamour.TermRenderer, error) {
	k := markdownKey{style: style, width: width}
	if r, ok := c.renderers[k]; ok {
		return r, nil
	}
	r, err := newRenderer(style, width)
	if err != nil {
		return nil, err
	}
	c.builds++
	c.renderers[k] = r
	return r, nil
}

func newRenderer(style string, width int) (*glamour.TermRenderer, error) {
	return glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(width),
	)
}

// renderMarkdown renders text with the cached renderer for style and width.
// A nil cache builds a throwaway renderer.
func renderMarkdown(cache *markdownCache, text, style string, width int) string {
	if style == "" {
		style = DefaultMarkdownStyle
	}
	var (
		r   *glamour.TermRenderer
		err error
	)
	if cache != nil {
		r, err = cache.renderer(style, width)
	} else {
		r, err = newRenderer(style, width)
	}
	if err != nil {
		return text
	}
	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}
