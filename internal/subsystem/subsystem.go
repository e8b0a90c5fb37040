// Package subsystem defines what every hardware panel provides to the
// dashboard and holds the tree plumbing they share.
package subsystem

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/mattn/go-runewidth"

	"hwtree/internal/render"
	"hwtree/internal/tree"
)

// Kind identifies a subsystem. The order of the constants is the panel order.
type Kind int

const (
	Regulator Kind = iota
	Clock
	Sensor
	GPIO
)

// Kinds lists every subsystem in panel order.
var Kinds = []Kind{Regulator, Clock, Sensor, GPIO}

func (k Kind) String() string {
	switch k {
	case Regulator:
		return "Regulators"
	case Clock:
		return "Clocks"
	case Sensor:
		return "Sensors"
	case GPIO:
		return "Gpio"
	default:
		return "Unknown"
	}
}

// ErrUnsupported is returned by Change on a row that cannot be modified.
var ErrUnsupported = errors.New("not supported")

// Subsystem is one hardware hierarchy shown as a panel.
type Subsystem interface {
	Kind() Kind
	// Root is the directory the tree is loaded from.
	Root() string
	// Load rebuilds the tree from scratch and reads every attribute file,
	// so no Refresh is needed right after it. A missing root disables the
	// subsystem: Load returns an error wrapping tree.ErrNotFound and Err
	// keeps returning it until a later Load succeeds.
	Load() error
	// Refresh re-reads the attribute files of every node.
	Refresh() error
	Err() error
	// Header is the column title line of the panel.
	Header() string
	// Lines returns the visible rows honoring the expand state.
	Lines() []render.Line
	Toggle(h tree.Handle)
	// NodePath returns the directory behind a row.
	NodePath(h tree.Handle) (string, bool)
	Dump(w io.Writer) error
}

// Changer is implemented by subsystems whose rows accept key driven writes.
type Changer interface {
	// Change applies the action bound to key on row h. The returned text
	// describes what happened.
	Change(h tree.Handle, key rune) (string, error)
}

// Searcher is implemented by subsystems that can show the ancestors of a
// named node.
type Searcher interface {
	Chain(name string) ([]render.Line, bool)
	Names() []string
}

// Base holds the tree of a subsystem and the operations that do not depend
// on its payload.
type Base[P any] struct {
	kind Kind
	root string
	opts tree.Options[P]
	read tree.Visitor[P]
	tree *tree.Tree[P]
	err  error
}

// NewBase creates an unloaded Base. read refreshes the payload of one node.
func NewBase[P any](kind Kind, root string, opts tree.Options[P], read tree.Visitor[P]) *Base[P] {
	return &Base[P]{kind: kind, root: root, opts: opts, read: read}
}

func (b *Base[P]) Kind() Kind   { return b.kind }
func (b *Base[P]) Root() string { return b.root }
func (b *Base[P]) Err() error   { return b.err }

// Tree returns the current tree, nil before a successful Load.
func (b *Base[P]) Tree() *tree.Tree[P] { return b.tree }

// Load drops the current tree and scans the root again. Expanded nodes stay
// expanded when their path still exists.
func (b *Base[P]) Load() error {
	expanded := b.expandedPaths()
	b.tree.Destroy()
	b.tree = nil

	t, err := tree.Load(b.root, b.opts)
	if err != nil {
		b.err = fmt.Errorf("%s: %w", b.kind, err)
		return b.err
	}
	_ = t.ForEach(func(h tree.Handle, n *tree.Node[P]) error {
		n.Expanded = n.Parent == tree.NoHandle || expanded[n.Path]
		return nil
	})
	b.tree = t
	b.err = nil
	return nil
}

func (b *Base[P]) expandedPaths() map[string]bool {
	paths := map[string]bool{}
	_ = b.tree.ForEach(func(h tree.Handle, n *tree.Node[P]) error {
		if n.Expanded {
			paths[n.Path] = true
		}
		return nil
	})
	return paths
}

// Refresh re-reads every node through the read visitor.
func (b *Base[P]) Refresh() error {
	if b.tree == nil {
		return b.err
	}
	if b.read == nil {
		return nil
	}
	return b.tree.ForEach(b.read)
}

// Toggle expands or collapses row h.
func (b *Base[P]) Toggle(h tree.Handle) {
	b.tree.Toggle(h)
}

// NodePath returns the directory of node h.
func (b *Base[P]) NodePath(h tree.Handle) (string, bool) {
	n := b.tree.Node(h)
	if n == nil {
		return "", false
	}
	return n.Path, true
}

// Flatten returns the visible rows below the root.
func (b *Base[P]) Flatten(format render.FormatFunc[P]) []render.Line {
	if b.tree == nil {
		return nil
	}
	return render.Flatten(b.tree, render.Options[P]{SkipRoot: true, Format: format})
}

// MatchAny returns a filter accepting names that match one of the glob
// patterns. A nil filter is returned for an empty list.
func MatchAny(patterns []string) func(string) bool {
	if len(patterns) == 0 {
		return nil
	}
	return func(name string) bool {
		for _, p := range patterns {
			if ok, _ := filepath.Match(p, name); ok {
				return true
			}
		}
		return false
	}
}

// Column pads s with spaces to width display cells.
func Column(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// Columns joins cells padded to the given widths with single spaces. The
// last cell is not padded.
func Columns(widths []int, cells ...string) string {
	var b strings.Builder
	for i, c := range cells {
		if i > 0 {
			b.WriteByte(' ')
		}
		if i < len(widths) && i < len(cells)-1 {
			b.WriteString(Column(c, widths[i]))
		} else {
			b.WriteString(c)
		}
	}
	return b.String()
}

// IntOrDash formats a tri-state integer, "-" when unknown.
func IntOrDash(v int64) string {
	if v < 0 {
		return "-"
	}
	return fmt.Sprintf("%d", v)
}

// StringOrDash returns "-" for an empty string.
func StringOrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
