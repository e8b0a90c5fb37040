package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"hwtree/internal/tui/design"
	"hwtree/internal/tui/model"
)

func renderLogOverlay(m *model.Model) string {
	title := design.LogPanelTitleStyle.Render("Activity Log  (↑/↓ scroll  •  y copy  •  Esc close)")
	content := lipgloss.JoinVertical(lipgloss.Left, title, m.LogViewport.View())
	return design.LogOverlayStyle.
		Width(max(0, m.Width-design.LogOverlayStyle.GetHorizontalFrameSize())).
		Height(max(0, m.Height-design.LogOverlayStyle.GetVerticalFrameSize())).
		Render(content)
}

func renderHelpOverlay(m *model.Model) string {
	title := design.HelpTitleStyle.Render("Help  (↑/↓ scroll  •  Esc close)")
	content := lipgloss.JoinVertical(lipgloss.Left, title, m.HelpViewport.View())
	return design.CenteredOverlayContainerStyle.
		Width(max(0, m.Width-design.CenteredOverlayContainerStyle.GetHorizontalFrameSize())).
		Height(max(0, m.Height-design.CenteredOverlayContainerStyle.GetVerticalFrameSize())).
		Render(content)
}

// PrepareLogContent styles each activity log line by its level.
func PrepareLogContent(lines []string) string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = styleLogLine(l)
	}
	return strings.Join(out, "\n")
}

func styleLogLine(l string) string {
	switch {
	case strings.Contains(l, "[ERROR]"):
		return design.LogErrorStyle.Render(l)
	case strings.Contains(l, "[WARN]"):
		return design.LogWarnStyle.Render(l)
	case strings.Contains(l, "[DEBUG]"):
		return design.LogDebugStyle.Render(l)
	default:
		return design.LogInfoStyle.Render(l)
	}
}
