package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"hwtree/internal/tui/design"
	"hwtree/internal/tui/model"
)

var messageStyles = map[model.MessageType]lipgloss.Style{
	model.StatusBarInfo:    design.StatusBarInfoStyle,
	model.StatusBarSuccess: design.StatusBarSuccessStyle,
	model.StatusBarError:   design.StatusBarErrorStyle,
	model.StatusBarWarning: design.StatusBarWarningStyle,
}

// StatusBar is the bottom line of the dashboard. A message replaces the
// left and right texts while it is set.
type StatusBar struct {
	Width       int
	Message     string
	MessageType model.MessageType
	LeftText    string
	RightText   string
}

// NewStatusBar creates a new status bar
func NewStatusBar(width int) *StatusBar {
	return &StatusBar{Width: width}
}

// WithMessage sets a status message
func (s *StatusBar) WithMessage(message string, msgType model.MessageType) *StatusBar {
	s.Message = message
	s.MessageType = msgType
	return s
}

// WithLeftText sets the key hints.
func (s *StatusBar) WithLeftText(text string) *StatusBar {
	s.LeftText = text
	return s
}

// WithRightText sets the text pinned to the right edge.
func (s *StatusBar) WithRightText(text string) *StatusBar {
	s.RightText = text
	return s
}

// Render returns the styled status bar
func (s *StatusBar) Render() string {
	style := design.StatusBarStyle
	if s.Message != "" {
		if st, ok := messageStyles[s.MessageType]; ok {
			style = st
		}
	}
	inner := max(s.Width-style.GetHorizontalFrameSize(), 0)
	return style.Width(s.Width).MaxWidth(s.Width).Render(s.content(inner))
}

func (s *StatusBar) content(inner int) string {
	if s.Message != "" {
		return runewidth.Truncate(s.Message, inner, "…")
	}
	if s.RightText == "" {
		return s.LeftText
	}
	gap := inner - lipgloss.Width(s.LeftText) - lipgloss.Width(s.RightText)
	if gap <= 0 {
		// The position matters more than the hints.
		return s.RightText
	}
	return s.LeftText + strings.Repeat(" ", gap) + s.RightText
}
