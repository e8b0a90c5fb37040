package model

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"hwtree/internal/nav"
	"hwtree/internal/render"
	"hwtree/internal/subsystem"
	"hwtree/pkg/logging"
)

// SearchPrompt is shown in front of the clock name being typed.
const SearchPrompt = "Enter Clock Name : "

// DefaultKeyMap returns the bindings used by the dashboard.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "shift+tab"),
			key.WithHelp("←/→", "switch panel"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "tab"),
			key.WithHelp("tab", "next panel"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "expand/collapse"),
		),
		Esc: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel search"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "find clock"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r", "R"),
			key.WithHelp("r", "refresh"),
		),
		Direction: key.NewBinding(
			key.WithKeys("d", "D"),
			key.WithHelp("d", "gpio direction"),
		),
		Value: key.NewBinding(
			key.WithKeys("v", "V"),
			key.WithHelp("v", "gpio value"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy path"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		ToggleLog: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "log"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "Q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// Options configures InitialModel.
type Options struct {
	Panels         []subsystem.Subsystem
	// Initial is the index of the panel selected at start.
	Initial        int
	Interval       time.Duration
	ForcedInterval time.Duration
	LogChannel     <-chan logging.LogEntry
	Rebuilds       <-chan string
}

// InitialModel builds the dashboard model. Search is enabled on the clock
// panel when there is one.
func InitialModel(opts Options) *Model {
	search := -1
	for i, p := range opts.Panels {
		if _, ok := p.(subsystem.Searcher); ok && p.Kind() == subsystem.Clock {
			search = i
			break
		}
	}

	ti := textinput.New()
	ti.Prompt = SearchPrompt
	ti.CharLimit = nav.MaxQuery
	ti.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := &Model{
		CurrentAppMode: ModeInitializing,
		Panels:         opts.Panels,
		Nav:            nav.New(len(opts.Panels), opts.Initial, search),
		Lines:          make([][]render.Line, len(opts.Panels)),
		Interval:       opts.Interval,
		ForcedInterval: opts.ForcedInterval,
		ActivityLog:    make([]string, 0),
		LogViewport:    viewport.New(0, 0),
		HelpViewport:   viewport.New(0, 0),
		SearchInput:    ti,
		Spinner:        s,
		Keys:           DefaultKeyMap(),
		Help:           help.New(),
		LogChannel:     opts.LogChannel,
		Rebuilds:       opts.Rebuilds,
	}
	return m
}

// Init implements tea.Model. It starts the listeners and the first wait.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.Spinner.Tick,
		ListenForLogEntriesCmd(m.LogChannel),
		ListenForRebuildsCmd(m.Rebuilds),
		m.ScheduleTick(m.Interval),
	)
}
