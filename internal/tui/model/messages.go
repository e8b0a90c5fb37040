package model

import (
	"hwtree/pkg/logging"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg ends a timed wait. Seq identifies the wait it belongs to.
type TickMsg struct {
	Seq int
}

// NewLogEntryMsg carries one entry from the logging channel.
type NewLogEntryMsg struct {
	Entry logging.LogEntry
}

// RebuildMsg asks for the panel called Name to be rescanned.
type RebuildMsg struct {
	Name string
}

type ClearStatusBarMsg struct{}

// ListenForLogEntriesCmd waits for the next log entry. It returns nil once
// the channel is closed.
func ListenForLogEntriesCmd(ch <-chan logging.LogEntry) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		entry, ok := <-ch
		if !ok {
			return nil
		}
		return NewLogEntryMsg{Entry: entry}
	}
}

// ListenForRebuildsCmd waits for the next hot-plug notification.
func ListenForRebuildsCmd(ch <-chan string) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		name, ok := <-ch
		if !ok {
			return nil
		}
		return RebuildMsg{Name: name}
	}
}
