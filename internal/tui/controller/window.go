package controller

import (
	"hwtree/internal/tui/design"
	"hwtree/internal/tui/model"

	tea "github.com/charmbracelet/bubbletea"
)

const scrollIndicatorWidth = 14

// handleWindowSizeMsg records the terminal size and resizes the overlays.
// The first size moves the dashboard out of ModeInitializing and populates
// the selected panel.
func handleWindowSizeMsg(m *model.Model, msg tea.WindowSizeMsg) (*model.Model, tea.Cmd) {
	m.Width = msg.Width
	m.Height = msg.Height

	frameW := design.LogOverlayStyle.GetHorizontalFrameSize()
	frameH := design.LogOverlayStyle.GetVerticalFrameSize()
	// Title line and its margin.
	const titleHeight = 2
	m.LogViewport.Width = max(0, msg.Width-frameW)
	m.LogViewport.Height = max(0, msg.Height-frameH-titleHeight)
	m.HelpViewport.Width = max(0, msg.Width-frameW)
	m.HelpViewport.Height = max(0, msg.Height-frameH-titleHeight)
	// Leave room on the status bar for the scroll indicator.
	m.Help.Width = max(0, msg.Width-design.StatusBarStyle.GetHorizontalFrameSize()-scrollIndicatorWidth)
	m.SearchInput.Width = max(0, msg.Width-len(model.SearchPrompt)-2)

	if m.CurrentAppMode == model.ModeHelpOverlay {
		prepareHelp(m)
	}
	if m.CurrentAppMode == model.ModeLogOverlay {
		refreshLogViewport(m)
	}

	if m.CurrentAppMode == model.ModeInitializing {
		m.CurrentAppMode = model.ModeMainDashboard
		renderPass(m, true)
	}
	return m, nil
}
