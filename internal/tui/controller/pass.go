package controller

import (
	"errors"
	"time"

	"github.com/sahilm/fuzzy"

	"hwtree/internal/nav"
	"hwtree/internal/render"
	"hwtree/internal/subsystem"
	"hwtree/internal/tree"
	"hwtree/internal/tui/model"
)

// renderPass consumes the pending navigation command and repopulates the
// active panel. reread re-reads the attribute files of every node first.
func renderPass(m *model.Model, reread bool) {
	if len(m.Panels) == 0 {
		return
	}
	p := m.Nav.Active()
	panel := m.Panels[p]
	cmd := m.Nav.TakeCommand()

	if disabled(panel) {
		m.Lines[p] = []render.Line{}
		m.Nav.SetLines(p, 0)
		clearChain(m)
		return
	}

	switch cmd {
	case nav.ToggleExpand:
		if h, ok := highlighted(m); ok {
			panel.Toggle(h)
		}
	case nav.ForceRefresh:
		reloadPanel(panel)
		reread = false
		m.LastRefresh = time.Now()
	}

	if reread && panel.Err() == nil {
		if err := panel.Refresh(); err != nil {
			LogWarn("refreshing %s: %v", panel.Kind(), err)
		}
		m.LastRefresh = time.Now()
	}

	populate(m, p)
	updateChain(m, panel)
}

// populate caches the rows of panel p and clamps its highlight.
func populate(m *model.Model, p int) {
	lines := m.Panels[p].Lines()
	if lines == nil {
		lines = []render.Line{}
	}
	m.Lines[p] = lines
	m.Nav.SetLines(p, len(lines))
}

// disabled reports a panel whose root was missing at load time. It stays
// off for the rest of the session.
func disabled(s subsystem.Subsystem) bool {
	err := s.Err()
	return err != nil && errors.Is(err, tree.ErrNotFound)
}

// highlighted returns the node behind the highlighted row of the active
// panel as of the last render pass. Rows without a node of their own, such
// as sensor readings, report false.
func highlighted(m *model.Model) (tree.Handle, bool) {
	p := m.Nav.Active()
	lines := m.Lines[p]
	row := m.Nav.Row()
	if row < 0 || row >= len(lines) || lines[row].Handle == tree.NoHandle {
		return tree.NoHandle, false
	}
	return lines[row].Handle, true
}

// reloadPanel drops the tree of s and scans it again. Load reads the
// attributes, there is nothing left to refresh.
func reloadPanel(s subsystem.Subsystem) {
	if err := s.Load(); err != nil {
		LogError(err, "reloading %s", s.Kind())
		return
	}
	LogDebug("reloaded %s from %s", s.Kind(), s.Root())
}

// rebuildPanel reloads the panel called name after a hot-plug change.
func rebuildPanel(m *model.Model, name string) {
	for i, panel := range m.Panels {
		if panel.Kind().String() != name || disabled(panel) {
			continue
		}
		LogInfo("%s changed on disk, rescanning", name)
		reloadPanel(panel)
		if i == m.Nav.Active() && m.CurrentAppMode != model.ModeInitializing {
			populate(m, i)
			updateChain(m, panel)
		} else {
			m.Lines[i] = nil
		}
	}
}

// updateChain resolves the committed search of the clock panel.
func updateChain(m *model.Model, panel subsystem.Subsystem) {
	q := m.Nav.Committed()
	s, ok := panel.(subsystem.Searcher)
	if q == "" || !ok {
		clearChain(m)
		return
	}
	m.Chain, m.ChainFound = s.Chain(q)
	m.Suggestions = nil
	if !m.ChainFound {
		m.Suggestions = suggest(q, s.Names())
	}
}

func clearChain(m *model.Model) {
	m.Chain = nil
	m.ChainFound = false
	m.Suggestions = nil
}

// suggest returns the names closest to q, best first.
func suggest(q string, names []string) []string {
	matches := fuzzy.Find(q, names)
	out := make([]string, 0, model.MaxSuggestions)
	for _, match := range matches {
		if len(out) == model.MaxSuggestions {
			break
		}
		out = append(out, match.Str)
	}
	return out
}
