// Package nav is the keyboard state machine of the dashboard. It knows
// nothing about terminals or trees: it turns abstract key events into panel
// switches, row moves, search text and one-shot commands for the next
// render pass.
package nav

import "unicode/utf8"

// State is the input mode.
type State int

const (
	Browsing State = iota
	Searching
)

func (s State) String() string {
	if s == Searching {
		return "Searching"
	}
	return "Browsing"
}

// Command is consumed by the render pass that follows the key press.
type Command int

const (
	None Command = iota
	ToggleExpand
	ForceRefresh
)

func (c Command) String() string {
	switch c {
	case ToggleExpand:
		return "ToggleExpand"
	case ForceRefresh:
		return "ForceRefresh"
	default:
		return "None"
	}
}

// Key is an abstract key.
type Key int

const (
	KeyNone Key = iota
	KeyRune
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyTab
	KeyShiftTab
	KeyEnter
	KeyEsc
	KeyBackspace
)

// Event is one key press. Rune is set for KeyRune.
type Event struct {
	Key  Key
	Rune rune
}

// MaxQuery is the longest search text accepted, in bytes.
const MaxQuery = 63

// Result tells the caller what a key press asks for beyond the state change.
type Result struct {
	Quit bool
	// Refresh asks for the short wait before the next tick.
	Refresh bool
	// PanelChanged is set when the active panel moved.
	PanelChanged bool
	// Committed is set when Enter ended a search.
	Committed bool
	// Action carries a printable key the machine does not bind while
	// browsing, for the caller to interpret.
	Action rune
}

// Machine holds the navigation state of every panel.
type Machine struct {
	panels      int
	active      int
	searchPanel int
	state       State
	query       string
	committed   string
	rows        []int
	lines       []int
	pending     Command
}

// New returns a machine over panels panels with initial active. Search is
// only available on searchPanel; pass -1 to disable it.
func New(panels, initial, searchPanel int) *Machine {
	if panels < 1 {
		panels = 1
	}
	if initial < 0 || initial >= panels {
		initial = 0
	}
	return &Machine{
		panels:      panels,
		active:      initial,
		searchPanel: searchPanel,
		rows:        make([]int, panels),
		lines:       make([]int, panels),
	}
}

func (m *Machine) Active() int     { return m.active }
func (m *Machine) State() State    { return m.state }
func (m *Machine) Query() string   { return m.query }
func (m *Machine) Row() int        { return m.rows[m.active] }
func (m *Machine) RowOf(p int) int { return m.rows[p] }

// Committed returns the last search confirmed with Enter on the search
// panel, or "" once it has been dismissed.
func (m *Machine) Committed() string { return m.committed }

// Pending returns the queued command without consuming it.
func (m *Machine) Pending() Command { return m.pending }

// TakeCommand returns the queued command and clears it.
func (m *Machine) TakeCommand() Command {
	c := m.pending
	m.pending = None
	return c
}

// SetLines records how many rows panel p shows and clamps its highlight.
func (m *Machine) SetLines(p, n int) {
	if p < 0 || p >= m.panels {
		return
	}
	if n < 0 {
		n = 0
	}
	m.lines[p] = n
	if m.rows[p] >= n {
		m.rows[p] = n - 1
	}
	if m.rows[p] < 0 {
		m.rows[p] = 0
	}
}

// Handle applies one key press.
func (m *Machine) Handle(ev Event) Result {
	switch ev.Key {
	case KeyTab, KeyRight:
		return m.switchPanel(1)
	case KeyShiftTab, KeyLeft:
		return m.switchPanel(-1)
	case KeyUp:
		if m.rows[m.active] > 0 {
			m.rows[m.active]--
		}
		return Result{}
	case KeyDown:
		if m.rows[m.active] < m.lines[m.active]-1 {
			m.rows[m.active]++
		}
		return Result{}
	case KeyEnter:
		if m.state == Searching {
			m.committed = m.query
			m.query = ""
			m.state = Browsing
			return Result{Committed: true}
		}
		m.pending = ToggleExpand
		return Result{}
	case KeyEsc:
		m.cancelSearch()
		m.committed = ""
		return Result{}
	case KeyBackspace:
		if m.state == Searching && m.query != "" {
			_, size := utf8.DecodeLastRuneInString(m.query)
			m.query = m.query[:len(m.query)-size]
		}
		return Result{}
	case KeyRune:
		return m.handleRune(ev.Rune)
	}
	return Result{}
}

func (m *Machine) handleRune(r rune) Result {
	if m.state == Searching {
		if len(m.query)+utf8.RuneLen(r) <= MaxQuery {
			m.query += string(r)
		}
		return Result{}
	}

	switch r {
	case 'q', 'Q':
		return Result{Quit: true}
	case 'r', 'R':
		m.pending = ForceRefresh
		return Result{Refresh: true}
	case '/':
		if m.active == m.searchPanel {
			m.state = Searching
			m.query = ""
			m.committed = ""
			return Result{}
		}
	}
	return Result{Action: r}
}

func (m *Machine) switchPanel(step int) Result {
	m.cancelSearch()
	m.committed = ""
	m.active = ((m.active+step)%m.panels + m.panels) % m.panels
	return Result{PanelChanged: true}
}

func (m *Machine) cancelSearch() {
	m.state = Browsing
	m.query = ""
}
