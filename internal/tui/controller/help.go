package controller

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"hwtree/internal/tui/design"
	"hwtree/internal/tui/model"
)

// helpMarkdown describes the key bindings and the panels.
func helpMarkdown(m *model.Model) string {
	var b strings.Builder
	b.WriteString("# hwtree\n\n")
	b.WriteString("Live view of the clock, regulator, sensor and gpio trees.\n\n")
	b.WriteString("| Key | Action |\n|-----|--------|\n")
	for _, group := range m.Keys.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			fmt.Fprintf(&b, "| `%s` | %s |\n", h.Key, h.Desc)
		}
	}
	b.WriteString("\n## Panels\n\n")
	for _, p := range m.Panels {
		fmt.Fprintf(&b, "- **%s** from `%s`", p.Kind(), p.Root())
		if err := p.Err(); err != nil {
			b.WriteString(" (unavailable)")
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "\nValues are re-read every %s, and %s after `r`.\n", m.Interval, m.ForcedInterval)
	return b.String()
}

// prepareHelp renders the help text for the current width. Rendering is
// skipped when the width has not changed.
func prepareHelp(m *model.Model) {
	width := m.HelpViewport.Width
	if width == m.HelpWidth && m.HelpViewport.TotalLineCount() > 0 {
		return
	}
	md := helpMarkdown(m)
	out, err := renderMarkdown(md, width)
	if err != nil {
		LogWarn("rendering help: %v", err)
		out = md
	}
	m.HelpViewport.SetContent(out)
	m.HelpViewport.GotoTop()
	m.HelpWidth = width
}

func renderMarkdown(md string, width int) (string, error) {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(design.MarkdownStyle()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}
