package view

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"hwtree/internal/nav"
	"hwtree/internal/render"
	"hwtree/internal/subsystem"
	"hwtree/internal/tree"
	"hwtree/internal/tui/components"
	"hwtree/internal/tui/design"
	"hwtree/internal/tui/model"
)

const appTitle = "hwtree"

// Render renders the UI according to the current model state.
func Render(m *model.Model) string {
	switch m.CurrentAppMode {
	case model.ModeQuitting:
		return design.TextStyle.Render(m.QuittingMessage)
	case model.ModeInitializing:
		return lipgloss.JoinVertical(lipgloss.Left, renderHeader(m), design.TextStyle.Render("Initializing..."))
	case model.ModeHelpOverlay:
		return renderHelpOverlay(m)
	case model.ModeLogOverlay:
		return renderLogOverlay(m)
	default:
		return renderDashboard(m)
	}
}

func renderDashboard(m *model.Model) string {
	header := renderHeader(m)
	bodyHeight := m.Height - lipgloss.Height(header) - 1
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	body, indicator := renderBody(m, bodyHeight)
	body = lipgloss.NewStyle().Height(bodyHeight).MaxHeight(bodyHeight).Render(body)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, renderStatusBar(m, indicator))
}

func renderHeader(m *model.Model) string {
	tabs := make([]string, len(m.Panels))
	for i, p := range m.Panels {
		tabs[i] = p.Kind().String()
	}
	right := ""
	if !m.LastRefresh.IsZero() {
		right = design.TextSecondaryStyle.Render("updated " + m.LastRefresh.Format("15:04:05"))
	}
	h := components.NewHeader(appTitle)
	if m.CurrentAppMode == model.ModeInitializing {
		h.WithSpinner(m.Spinner.View())
	}
	return h.
		WithTabs(tabs, m.Nav.Active()).
		WithRightContent(right).
		WithWidth(m.Width).
		Render()
}

// renderBody draws the active panel. The second result is the scroll
// indicator for the status bar.
func renderBody(m *model.Model, height int) (string, string) {
	panel := m.ActivePanel()
	if panel == nil {
		return design.DimStyle.Render("No subsystem available"), ""
	}
	if err := panel.Err(); err != nil {
		return renderPanelError(panel, err), ""
	}

	p := m.Nav.Active()
	if m.Lines[p] == nil {
		return design.DimStyle.Render("Loading..."), ""
	}

	if q := m.Nav.Committed(); q != "" {
		if _, ok := panel.(subsystem.Searcher); ok {
			return renderChain(m, q), ""
		}
	}

	pn := components.NewPanel(m.Width, height).
		WithHeader(panel.Header()).
		WithLines(m.Lines[p], m.Nav.Row())
	return pn.Render(), pn.ScrollIndicator()
}

// renderPanelError is shown instead of the rows of a disabled panel.
func renderPanelError(panel subsystem.Subsystem, err error) string {
	if errors.Is(err, tree.ErrNotFound) {
		return design.TextErrorStyle.Render(fmt.Sprintf("error: path %s not found", panel.Root()))
	}
	return design.TextErrorStyle.Render("error: " + err.Error())
}

// renderChain shows the ancestors of the committed clock, or near matches
// when there is no clock by that name.
func renderChain(m *model.Model, q string) string {
	var b strings.Builder
	b.WriteString(design.ColumnHeaderStyle.Render(fmt.Sprintf("Parents for %q Clock :", q)))
	b.WriteString("\n\n")

	if !m.ChainFound {
		b.WriteString(design.TextErrorStyle.Render(render.NotFound("Clock", q)))
		if len(m.Suggestions) > 0 {
			b.WriteString("\n")
			b.WriteString(design.DimStyle.Render("did you mean: " + strings.Join(m.Suggestions, ", ")))
		}
		return b.String()
	}

	for i, l := range m.Chain {
		if i > 0 {
			b.WriteString("\n")
		}
		if l.Bold {
			b.WriteString(design.ChainTargetStyle.Render(l.Text))
		} else {
			b.WriteString(design.RowStyle.Render(l.Text))
		}
	}
	return b.String()
}

func renderStatusBar(m *model.Model, indicator string) string {
	bar := components.NewStatusBar(m.Width)

	if m.Nav.State() == nav.Searching {
		ti := m.SearchInput
		ti.SetValue(m.Nav.Query())
		ti.CursorEnd()
		return bar.WithLeftText(design.SearchPromptStyle.Render(ti.View())).Render()
	}
	if m.StatusBarMessage != "" {
		return bar.WithMessage(m.StatusBarMessage, m.StatusBarMessageType).Render()
	}

	right := ""
	if indicator != "" {
		right = design.ScrollIndicatorStyle.Render(indicator)
	}
	return bar.
		WithLeftText(m.Help.ShortHelpView(m.Keys.ShortHelp())).
		WithRightText(right).
		Render()
}
