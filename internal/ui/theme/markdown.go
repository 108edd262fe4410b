package theme

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// DefaultWrap is the word-wrap width for rendered Markdown.
const DefaultWrap = 80

// MarkdownRenderer renders Markdown (board papers, tutor replies) for the
// terminal.
type MarkdownRenderer struct {
	r *glamour.TermRenderer
}

// NewMarkdownRenderer creates a renderer wrapping at width columns. When
// styling is off the "notty" style is used, which keeps the text plain.
func NewMarkdownRenderer(width int) (*MarkdownRenderer, error) {
	if width <= 0 {
		width = DefaultWrap
	}
	style := glamour.WithAutoStyle()
	if plain {
		style = glamour.WithStandardStyle("notty")
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(width))
	if err != nil {
		return nil, err
	}
	return &MarkdownRenderer{r: r}, nil
}

// Render returns md rendered for the terminal. If rendering fails the
// source text is returned unchanged.
func (m *MarkdownRenderer) Render(md string) string {
	if m == nil || m.r == nil {
		return md
	}
	out, err := m.r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n") + "\n"
}
