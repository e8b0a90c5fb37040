package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"hwtree/internal/tui/design"
)

// Header is the top line: title, one tab per panel and optional content on
// the right.
type Header struct {
	Title        string
	Tabs         []string
	Active       int
	SpinnerView  string
	Width        int
	RightContent string
}

// NewHeader creates a new header
func NewHeader(title string) *Header {
	return &Header{
		Title: title,
		Width: 80,
	}
}

// WithTabs sets the tab labels and the highlighted one.
func (h *Header) WithTabs(tabs []string, active int) *Header {
	h.Tabs = tabs
	h.Active = active
	return h
}

// WithSpinner shows a spinner before the title
func (h *Header) WithSpinner(spinnerView string) *Header {
	h.SpinnerView = spinnerView
	return h
}

// WithRightContent adds content to the right side
func (h *Header) WithRightContent(content string) *Header {
	h.RightContent = content
	return h
}

// WithWidth sets the header width
func (h *Header) WithWidth(width int) *Header {
	h.Width = width
	return h
}

// Render returns the styled header
func (h *Header) Render() string {
	var parts []string
	if h.SpinnerView != "" {
		parts = append(parts, h.SpinnerView)
	}
	parts = append(parts, h.Title)

	tabs := make([]string, len(h.Tabs))
	for i, t := range h.Tabs {
		if i == h.Active {
			tabs[i] = design.TabActiveStyle.Render(t)
		} else {
			tabs[i] = design.TabStyle.Render(t)
		}
	}
	left := strings.Join(parts, " ")
	if len(tabs) > 0 {
		left += "  " + lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	}

	content := left
	if h.RightContent != "" {
		available := h.Width - design.HeaderStyle.GetHorizontalFrameSize()
		padding := available - lipgloss.Width(left) - lipgloss.Width(h.RightContent)
		if padding >= 1 {
			content = left + strings.Repeat(" ", padding) + h.RightContent
		}
	}

	return design.HeaderStyle.
		Width(h.Width).
		MaxWidth(h.Width).
		Render(content)
}
