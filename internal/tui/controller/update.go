package controller

import (
	"hwtree/internal/tui/model"
	"hwtree/internal/tui/view"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Update is the single place where the model changes. Every key press and
// every expired wait runs one render pass and schedules the next wait.
func Update(msg tea.Msg, m *model.Model) (*model.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return handleWindowSizeMsg(m, msg)

	case tea.KeyMsg:
		return handleKeyMsg(m, msg)

	case model.TickMsg:
		// A key press since this wait started has scheduled a newer one.
		if msg.Seq != m.TickSeq {
			return m, nil
		}
		if m.CurrentAppMode != model.ModeInitializing {
			renderPass(m, true)
		}
		return m, m.ScheduleTick(m.Interval)

	case model.RebuildMsg:
		rebuildPanel(m, msg.Name)
		return m, model.ListenForRebuildsCmd(m.Rebuilds)

	case model.NewLogEntryMsg:
		model.AddRawLineToActivityLog(m, model.FormatLogEntry(msg.Entry))
		if m.CurrentAppMode == model.ModeLogOverlay {
			refreshLogViewport(m)
		}
		return m, model.ListenForLogEntriesCmd(m.LogChannel)

	case model.ClearStatusBarMsg:
		m.StatusBarMessage = ""
		m.StatusBarClearCancel = nil
		return m, nil

	case spinner.TickMsg:
		// The spinner only runs until the first window size arrives.
		if m.CurrentAppMode != model.ModeInitializing {
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// refreshLogViewport reloads the log overlay from the activity log and
// scrolls to the newest entry.
func refreshLogViewport(m *model.Model) {
	if !m.ActivityLogDirty && m.LogViewport.TotalLineCount() > 0 {
		return
	}
	m.LogViewport.SetContent(view.PrepareLogContent(m.ActivityLog))
	m.LogViewport.GotoBottom()
	m.ActivityLogDirty = false
}
