package model

import (
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hwtree/internal/nav"
	"hwtree/internal/render"
	"hwtree/internal/subsystem"
	"hwtree/internal/tree"
	"hwtree/pkg/logging"
)

// stub is a minimal panel.
type stub struct {
	kind subsystem.Kind
}

func (s stub) Kind() subsystem.Kind                { return s.kind }
func (s stub) Root() string                        { return "/stub" }
func (s stub) Load() error                         { return nil }
func (s stub) Refresh() error                      { return nil }
func (s stub) Err() error                          { return nil }
func (s stub) Header() string                      { return "Name" }
func (s stub) Lines() []render.Line                { return nil }
func (s stub) Toggle(tree.Handle)                  {}
func (s stub) NodePath(tree.Handle) (string, bool) { return "", false }
func (s stub) Dump(io.Writer) error                { return nil }
func (s stub) Chain(string) ([]render.Line, bool)  { return nil, false }
func (s stub) Names() []string                     { return nil }

func TestAppModeString(t *testing.T) {
	tests := []struct {
		mode AppMode
		want string
	}{
		{ModeInitializing, "Initializing"},
		{ModeMainDashboard, "MainDashboard"},
		{ModeHelpOverlay, "HelpOverlay"},
		{ModeLogOverlay, "LogOverlay"},
		{ModeQuitting, "Quitting"},
		{AppMode(42), "Unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.mode.String())
		})
	}
}

func TestInitialModelEnablesSearchOnClock(t *testing.T) {
	m := InitialModel(Options{
		Panels:   []subsystem.Subsystem{stub{subsystem.Regulator}, stub{subsystem.Clock}, stub{subsystem.GPIO}},
		Initial:  1,
		Interval: 10 * time.Second,
	})

	assert.Equal(t, ModeInitializing, m.CurrentAppMode)
	assert.Len(t, m.Lines, 3)
	assert.Equal(t, 1, m.Nav.Active())
	assert.Equal(t, subsystem.Clock, m.ActivePanel().Kind())

	m.Nav.Handle(navRune('/'))
	assert.Equal(t, "Searching", m.Nav.State().String())
}

func TestInitialModelWithoutClockHasNoSearch(t *testing.T) {
	m := InitialModel(Options{Panels: []subsystem.Subsystem{stub{subsystem.GPIO}}})

	res := m.Nav.Handle(navRune('/'))
	assert.Equal(t, '/', res.Action)
	assert.Equal(t, "Browsing", m.Nav.State().String())
}

func TestScheduleTickMakesOlderTicksStale(t *testing.T) {
	m := &Model{}
	first := m.ScheduleTick(time.Millisecond)
	second := m.ScheduleTick(3 * time.Second)
	require.NotNil(t, first)
	require.NotNil(t, second)

	assert.Equal(t, 2, m.TickSeq)
	assert.Equal(t, 3*time.Second, m.NextWait)
	msg := first()
	assert.Equal(t, TickMsg{Seq: 1}, msg)
}

func TestSetStatusMessageReplacesPending(t *testing.T) {
	m := &Model{}
	first := m.SetStatusMessage("one", StatusBarInfo, time.Millisecond)
	m.SetStatusMessage("two", StatusBarWarning, time.Hour)

	assert.Equal(t, "two", m.StatusBarMessage)
	assert.Equal(t, StatusBarWarning, m.StatusBarMessageType)
	assert.Nil(t, first(), "the first clear was cancelled")
}

func TestActivityLogIsBounded(t *testing.T) {
	m := &Model{}
	for i := 0; i < MaxActivityLogLines+5; i++ {
		AddRawLineToActivityLog(m, fmt.Sprintf("line %d", i))
	}
	require.Len(t, m.ActivityLog, MaxActivityLogLines)
	assert.Equal(t, "line 5", m.ActivityLog[0])
	assert.True(t, m.ActivityLogDirty)
}

func TestFormatLogEntry(t *testing.T) {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	got := FormatLogEntry(logging.LogEntry{
		Timestamp: ts,
		Level:     logging.LevelWarn,
		Subsystem: "Gpio",
		Message:   "write rejected",
		Err:       errors.New("busy"),
	})
	assert.Equal(t, "03:04:05.000 [WARN] [Gpio] write rejected: busy", got)
}

func TestListenCommands(t *testing.T) {
	assert.Nil(t, ListenForLogEntriesCmd(nil))
	assert.Nil(t, ListenForRebuildsCmd(nil))

	logs := make(chan logging.LogEntry, 1)
	logs <- logging.LogEntry{Message: "hi"}
	msg := ListenForLogEntriesCmd(logs)()
	assert.Equal(t, "hi", msg.(NewLogEntryMsg).Entry.Message)

	rebuilds := make(chan string, 1)
	rebuilds <- "Gpio"
	assert.Equal(t, RebuildMsg{Name: "Gpio"}, ListenForRebuildsCmd(rebuilds)())

	close(rebuilds)
	assert.Nil(t, ListenForRebuildsCmd(rebuilds)())
}

func TestKeyMapHelp(t *testing.T) {
	k := DefaultKeyMap()
	assert.NotEmpty(t, k.ShortHelp())
	for _, group := range k.FullHelp() {
		for _, b := range group {
			assert.NotEmpty(t, b.Help().Key)
		}
	}
}

func TestInitStartsWait(t *testing.T) {
	m := InitialModel(Options{Panels: []subsystem.Subsystem{stub{subsystem.Clock}}, Interval: time.Second})
	assert.NotNil(t, m.Init())
	assert.Equal(t, 1, m.TickSeq)
	assert.Equal(t, time.Second, m.NextWait)
}

func navRune(r rune) nav.Event {
	return nav.Event{Key: nav.KeyRune, Rune: r}
}
