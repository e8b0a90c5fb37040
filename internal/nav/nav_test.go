package nav

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const clockPanel = 1

func runes(m *Machine, s string) {
	for _, r := range s {
		m.Handle(Event{Key: KeyRune, Rune: r})
	}
}

func TestPanelSwitchWraps(t *testing.T) {
	tests := []struct {
		name string
		keys []Key
		want int
	}{
		{"right", []Key{KeyRight}, 2},
		{"tab wraps", []Key{KeyTab, KeyTab, KeyTab}, 0},
		{"left", []Key{KeyLeft}, 0},
		{"shift tab wraps", []Key{KeyShiftTab, KeyShiftTab}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(4, clockPanel, clockPanel)
			var res Result
			for _, k := range tt.keys {
				res = m.Handle(Event{Key: k})
			}
			assert.Equal(t, tt.want, m.Active())
			assert.True(t, res.PanelChanged)
		})
	}
}

func TestUpDownClamp(t *testing.T) {
	m := New(4, 0, clockPanel)
	m.Handle(Event{Key: KeyUp})
	assert.Equal(t, 0, m.Row(), "up at the top is a no-op")

	m.SetLines(0, 3)
	for i := 0; i < 5; i++ {
		m.Handle(Event{Key: KeyDown})
	}
	assert.Equal(t, 2, m.Row())

	m.SetLines(0, 1)
	assert.Equal(t, 0, m.Row(), "shrinking the list clamps the highlight")

	m.SetLines(0, 0)
	assert.Equal(t, 0, m.Row())
}

func TestRowsArePerPanel(t *testing.T) {
	m := New(2, 0, -1)
	m.SetLines(0, 10)
	m.SetLines(1, 10)
	m.Handle(Event{Key: KeyDown})
	m.Handle(Event{Key: KeyDown})
	m.Handle(Event{Key: KeyTab})
	assert.Equal(t, 0, m.Row())
	assert.Equal(t, 2, m.RowOf(0))
}

func TestEnterQueuesToggleOnce(t *testing.T) {
	m := New(4, 0, clockPanel)
	m.Handle(Event{Key: KeyEnter})
	assert.Equal(t, ToggleExpand, m.Pending())
	assert.Equal(t, ToggleExpand, m.TakeCommand())
	assert.Equal(t, None, m.TakeCommand(), "commands are one-shot")
}

func TestRefreshAndQuit(t *testing.T) {
	m := New(4, 0, clockPanel)
	res := m.Handle(Event{Key: KeyRune, Rune: 'R'})
	assert.True(t, res.Refresh)
	assert.Equal(t, ForceRefresh, m.TakeCommand())

	assert.True(t, m.Handle(Event{Key: KeyRune, Rune: 'q'}).Quit)
	assert.True(t, m.Handle(Event{Key: KeyRune, Rune: 'Q'}).Quit)
}

func TestSearchOnlyOnSearchPanel(t *testing.T) {
	m := New(4, 0, clockPanel)
	res := m.Handle(Event{Key: KeyRune, Rune: '/'})
	assert.Equal(t, Browsing, m.State())
	assert.Equal(t, '/', res.Action)

	m.Handle(Event{Key: KeyTab})
	m.Handle(Event{Key: KeyRune, Rune: '/'})
	assert.Equal(t, Searching, m.State())
	assert.Equal(t, "", m.Query())
}

func TestSearchTyping(t *testing.T) {
	m := New(4, clockPanel, clockPanel)
	runes(m, "/uart")
	assert.Equal(t, "uart", m.Query(), "the opening slash is not text")

	res := m.Handle(Event{Key: KeyRune, Rune: 'q'})
	assert.False(t, res.Quit, "q is text while searching")
	res = m.Handle(Event{Key: KeyRune, Rune: 'r'})
	assert.False(t, res.Refresh)
	assert.Equal(t, "uartqr", m.Query())

	m.Handle(Event{Key: KeyBackspace})
	m.Handle(Event{Key: KeyBackspace})
	assert.Equal(t, "uart", m.Query())

	runes(m, "/x")
	assert.Equal(t, "uart/x", m.Query(), "later slashes are kept")
}

func TestSearchForSlash(t *testing.T) {
	m := New(4, clockPanel, clockPanel)
	runes(m, "/")
	require.Equal(t, Searching, m.State())

	runes(m, "/")
	assert.Equal(t, "/", m.Query(), "a slash typed into an empty search is text")
	runes(m, "/")
	assert.Equal(t, "//", m.Query())
}

func TestSearchBufferLimit(t *testing.T) {
	m := New(4, clockPanel, clockPanel)
	runes(m, "/")
	runes(m, strings.Repeat("a", 80))
	assert.Len(t, m.Query(), MaxQuery)
}

func TestSearchCommitAndCancel(t *testing.T) {
	m := New(4, clockPanel, clockPanel)
	runes(m, "/pll")
	res := m.Handle(Event{Key: KeyEnter})
	assert.True(t, res.Committed)
	assert.Equal(t, Browsing, m.State())
	assert.Equal(t, "pll", m.Committed())
	assert.Equal(t, None, m.TakeCommand(), "committing does not toggle a row")

	m.Handle(Event{Key: KeyEsc})
	assert.Equal(t, "", m.Committed())

	runes(m, "/abc")
	m.Handle(Event{Key: KeyEsc})
	assert.Equal(t, Browsing, m.State())
	assert.Equal(t, "", m.Query())

	runes(m, "/abc")
	m.Handle(Event{Key: KeyRight})
	assert.Equal(t, Browsing, m.State())
	assert.Equal(t, "", m.Query())
	m.Handle(Event{Key: KeyLeft})
	runes(m, "/")
	assert.Equal(t, "", m.Query(), "switching panels clears the buffer")
}

func TestUnboundRunesAreActions(t *testing.T) {
	m := New(4, 3, clockPanel)
	assert.Equal(t, 'd', m.Handle(Event{Key: KeyRune, Rune: 'd'}).Action)
	assert.Equal(t, 'V', m.Handle(Event{Key: KeyRune, Rune: 'V'}).Action)
	assert.Equal(t, rune(0), m.Handle(Event{Key: KeyRune, Rune: 'q'}).Action)
}
