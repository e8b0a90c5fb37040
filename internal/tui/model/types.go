package model

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"hwtree/internal/nav"
	"hwtree/internal/render"
	"hwtree/internal/subsystem"
	"hwtree/pkg/logging"
)

// AppMode is what the screen currently shows.
type AppMode int

const (
	// ModeInitializing waits for the first window size.
	ModeInitializing AppMode = iota
	ModeMainDashboard
	ModeHelpOverlay
	ModeLogOverlay
	ModeQuitting
)

func (m AppMode) String() string {
	switch m {
	case ModeInitializing:
		return "Initializing"
	case ModeMainDashboard:
		return "MainDashboard"
	case ModeHelpOverlay:
		return "HelpOverlay"
	case ModeLogOverlay:
		return "LogOverlay"
	case ModeQuitting:
		return "Quitting"
	default:
		return "Unknown"
	}
}

// MessageType selects the status bar color.
type MessageType int

const (
	StatusBarInfo MessageType = iota
	StatusBarSuccess
	StatusBarError
	StatusBarWarning
)

// MaxActivityLogLines bounds the activity log kept for the log overlay.
const MaxActivityLogLines = 1000

// MaxSuggestions is how many near matches are offered for an unknown clock.
const MaxSuggestions = 3

// KeyMap holds the bindings shown in the help views. Navigation keys are
// interpreted by the nav machine; the bindings here describe them and add
// the keys it leaves to the dashboard.
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Enter     key.Binding
	Esc       key.Binding
	Search    key.Binding
	Refresh   key.Binding
	Direction key.Binding
	Value     key.Binding
	Copy      key.Binding
	Help      key.Binding
	ToggleLog key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Enter, k.Search, k.Refresh, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Enter, k.Esc, k.Search, k.Refresh},
		{k.Direction, k.Value, k.Copy},
		{k.Help, k.ToggleLog, k.Quit},
	}
}

// Model is the whole dashboard state. Only the controller mutates it.
type Model struct {
	Width  int
	Height int

	CurrentAppMode  AppMode
	QuittingMessage string

	// Panels are the subsystems in tab order.
	Panels []subsystem.Subsystem
	Nav    *nav.Machine
	// Lines caches the rows of each panel from the last render pass. A nil
	// entry means the panel was never populated.
	Lines  [][]render.Line

	// Chain is the ancestor chain of the committed clock query.
	Chain       []render.Line
	ChainFound  bool
	Suggestions []string

	Interval       time.Duration
	ForcedInterval time.Duration
	// NextWait is the length of the wait scheduled last.
	NextWait       time.Duration
	TickSeq        int
	LastRefresh    time.Time

	ActivityLog      []string
	ActivityLogDirty bool
	LogViewport      viewport.Model
	HelpViewport     viewport.Model
	HelpWidth        int

	SearchInput textinput.Model
	Spinner     spinner.Model
	Keys        KeyMap
	Help        help.Model

	LogChannel <-chan logging.LogEntry
	// Rebuilds carries the names of panels whose root changed on disk.
	Rebuilds <-chan string

	StatusBarMessage     string
	StatusBarMessageType MessageType
	StatusBarClearCancel chan struct{}
}

// ActivePanel returns the subsystem of the active tab.
func (m *Model) ActivePanel() subsystem.Subsystem {
	if m.Nav == nil || len(m.Panels) == 0 {
		return nil
	}
	return m.Panels[m.Nav.Active()]
}

// SetStatusMessage shows message until clearAfter elapses or another
// message replaces it.
func (m *Model) SetStatusMessage(message string, msgType MessageType, clearAfter time.Duration) tea.Cmd {
	m.StatusBarMessage = message
	m.StatusBarMessageType = msgType

	if m.StatusBarClearCancel != nil {
		close(m.StatusBarClearCancel)
	}

	m.StatusBarClearCancel = make(chan struct{})
	captured := m.StatusBarClearCancel

	return tea.Tick(clearAfter, func(t time.Time) tea.Msg {
		select {
		case <-captured:
			return nil
		default:
			return ClearStatusBarMsg{}
		}
	})
}

// ScheduleTick starts the timed wait that ends the current loop iteration.
// Any tick scheduled earlier becomes stale.
func (m *Model) ScheduleTick(d time.Duration) tea.Cmd {
	m.TickSeq++
	m.NextWait = d
	seq := m.TickSeq
	return tea.Tick(d, func(time.Time) tea.Msg {
		return TickMsg{Seq: seq}
	})
}
