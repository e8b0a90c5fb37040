package controller

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"hwtree/internal/nav"
	"hwtree/internal/subsystem"
	"hwtree/internal/tree"
	"hwtree/internal/tui/model"
)

const statusDuration = 3 * time.Second

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

// handleKeyMsg routes a key press to the open overlay or to the navigation
// machine, runs the render pass and restarts the timed wait.
func handleKeyMsg(m *model.Model, msg tea.KeyMsg) (*model.Model, tea.Cmd) {
	if key.Matches(msg, m.Keys.ForceQuit) {
		return quit(m)
	}

	switch m.CurrentAppMode {
	case model.ModeInitializing, model.ModeQuitting:
		return m, nil
	case model.ModeLogOverlay:
		return handleLogOverlayKey(m, msg)
	case model.ModeHelpOverlay:
		return handleHelpOverlayKey(m, msg)
	}

	var cmds []tea.Cmd
	wait := m.Interval
	for _, ev := range keyEvents(msg) {
		res := m.Nav.Handle(ev)
		if res.Quit {
			return quit(m)
		}
		if res.Refresh {
			wait = m.ForcedInterval
		}
		if res.Committed {
			LogDebug("search for %q", m.Nav.Committed())
		}
		if res.Action != 0 {
			if cmd := handleAction(m, res.Action); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		renderPass(m, res.PanelChanged)
	}

	cmds = append(cmds, m.ScheduleTick(wait))
	return m, tea.Batch(cmds...)
}

// keyEvents translates a terminal key into navigation events. Pasted text
// yields one event per rune.
func keyEvents(msg tea.KeyMsg) []nav.Event {
	switch msg.Type {
	case tea.KeyUp:
		return []nav.Event{{Key: nav.KeyUp}}
	case tea.KeyDown:
		return []nav.Event{{Key: nav.KeyDown}}
	case tea.KeyLeft:
		return []nav.Event{{Key: nav.KeyLeft}}
	case tea.KeyRight:
		return []nav.Event{{Key: nav.KeyRight}}
	case tea.KeyTab:
		return []nav.Event{{Key: nav.KeyTab}}
	case tea.KeyShiftTab:
		return []nav.Event{{Key: nav.KeyShiftTab}}
	case tea.KeyEnter:
		return []nav.Event{{Key: nav.KeyEnter}}
	case tea.KeyEsc:
		return []nav.Event{{Key: nav.KeyEsc}}
	case tea.KeyBackspace:
		return []nav.Event{{Key: nav.KeyBackspace}}
	case tea.KeySpace:
		return []nav.Event{{Key: nav.KeyRune, Rune: ' '}}
	case tea.KeyRunes:
		events := make([]nav.Event, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			events = append(events, nav.Event{Key: nav.KeyRune, Rune: r})
		}
		return events
	}
	return nil
}

// handleAction interprets a printable key the navigation machine left to
// the dashboard.
func handleAction(m *model.Model, r rune) tea.Cmd {
	k := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
	switch {
	case key.Matches(k, m.Keys.Up):
		m.Nav.Handle(nav.Event{Key: nav.KeyUp})
	case key.Matches(k, m.Keys.Down):
		m.Nav.Handle(nav.Event{Key: nav.KeyDown})
	case key.Matches(k, m.Keys.Direction), key.Matches(k, m.Keys.Value):
		return changeRow(m, r)
	case key.Matches(k, m.Keys.Copy):
		return copyPath(m)
	case key.Matches(k, m.Keys.Help):
		m.CurrentAppMode = model.ModeHelpOverlay
		prepareHelp(m)
	case key.Matches(k, m.Keys.ToggleLog):
		m.CurrentAppMode = model.ModeLogOverlay
		refreshLogViewport(m)
	}
	return nil
}

func changeRow(m *model.Model, r rune) tea.Cmd {
	panel := m.ActivePanel()
	c, ok := panel.(subsystem.Changer)
	if !ok {
		return m.SetStatusMessage(fmt.Sprintf("%s cannot be changed", panel.Kind()), model.StatusBarInfo, statusDuration)
	}
	h, ok := highlighted(m)
	if !ok {
		return nil
	}

	text, err := c.Change(h, r)
	switch {
	case errors.Is(err, tree.ErrWriteRejected):
		LogWarn("%v", err)
		return m.SetStatusMessage(err.Error(), model.StatusBarWarning, statusDuration)
	case errors.Is(err, subsystem.ErrUnsupported):
		return m.SetStatusMessage(err.Error(), model.StatusBarInfo, statusDuration)
	case err != nil:
		LogError(err, "change on %s failed", panel.Kind())
		return m.SetStatusMessage(err.Error(), model.StatusBarError, statusDuration)
	}
	LogInfo("%s", text)
	return m.SetStatusMessage(text, model.StatusBarSuccess, statusDuration)
}

func copyPath(m *model.Model) tea.Cmd {
	h, ok := highlighted(m)
	if !ok {
		return nil
	}
	path, ok := m.ActivePanel().NodePath(h)
	if !ok {
		return nil
	}
	if err := writeClipboard(path); err != nil {
		LogError(err, "copy %s", path)
		return m.SetStatusMessage("Copy failed", model.StatusBarError, statusDuration)
	}
	return m.SetStatusMessage("Copied "+path, model.StatusBarSuccess, statusDuration)
}

func handleLogOverlayKey(m *model.Model, msg tea.KeyMsg) (*model.Model, tea.Cmd) {
	switch msg.String() {
	case "L", "esc", "q":
		m.CurrentAppMode = model.ModeMainDashboard
		return m, nil
	case "y":
		if err := writeClipboard(strings.Join(m.ActivityLog, "\n")); err != nil {
			LogError(err, "copy logs")
			return m, m.SetStatusMessage("Copy logs failed", model.StatusBarError, statusDuration)
		}
		return m, m.SetStatusMessage("Logs copied to clipboard", model.StatusBarSuccess, statusDuration)
	case "k", "up", "j", "down", "pgup", "pgdown", "home", "end":
		var cmd tea.Cmd
		m.LogViewport, cmd = m.LogViewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func handleHelpOverlayKey(m *model.Model, msg tea.KeyMsg) (*model.Model, tea.Cmd) {
	switch msg.String() {
	case "?", "esc", "q":
		m.CurrentAppMode = model.ModeMainDashboard
		return m, nil
	case "k", "up", "j", "down", "pgup", "pgdown", "home", "end":
		var cmd tea.Cmd
		m.HelpViewport, cmd = m.HelpViewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func quit(m *model.Model) (*model.Model, tea.Cmd) {
	m.CurrentAppMode = model.ModeQuitting
	m.QuittingMessage = "Bye"
	if m.StatusBarClearCancel != nil {
		close(m.StatusBarClearCancel)
		m.StatusBarClearCancel = nil
	}
	return m, tea.Quit
}
