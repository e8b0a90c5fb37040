// Package render turns a tree into the ordered, indented lines shown on
// screen or printed by a dump.
package render

import (
	"fmt"
	"strings"

	"hwtree/internal/tree"
)

const (
	barContinue = "|   "
	barBlank    = "    "
	connMiddle  = "|-- "
	connLast    = "`-- "
)

// Line is one visible node after flattening.
type Line struct {
	Handle tree.Handle
	Depth  int
	// Prefix is the tree art drawn before the node name.
	Prefix string
	Text   string
	Bold   bool
}

// FormatFunc produces the text of a line from its tree-art prefix and node.
// The boolean asks for emphasis.
type FormatFunc[P any] func(prefix string, n *tree.Node[P]) (string, bool)

// Options controls Flatten.
type Options[P any] struct {
	// SkipRoot leaves the root out of the output. Its children are always
	// listed, whatever the root's expand flag says.
	SkipRoot bool
	// All ignores expand flags, as a dump does.
	All bool
	// Format defaults to prefix followed by the node name.
	Format FormatFunc[P]
}

func defaultFormat[P any](prefix string, n *tree.Node[P]) (string, bool) {
	return prefix + n.Name, false
}

// Flatten walks t in pre-order and returns one line per visible node. The
// children of a collapsed node are never visited.
func Flatten[P any](t *tree.Tree[P], opts Options[P]) []Line {
	root := t.Root()
	if root == tree.NoHandle {
		return nil
	}
	if opts.Format == nil {
		opts.Format = defaultFormat[P]
	}
	f := flattener[P]{t: t, opts: opts}
	if opts.SkipRoot {
		for _, c := range t.Node(root).Children {
			f.visit(c)
		}
	} else {
		f.visit(root)
	}
	return f.lines
}

type flattener[P any] struct {
	t     *tree.Tree[P]
	opts  Options[P]
	bars  []bool
	lines []Line
}

func (f *flattener[P]) visit(h tree.Handle) {
	n := f.t.Node(h)
	prefix := f.prefix(h, n.Depth)
	text, bold := f.opts.Format(prefix, n)
	f.lines = append(f.lines, Line{
		Handle: h,
		Depth:  n.Depth,
		Prefix: prefix,
		Text:   text,
		Bold:   bold,
	})

	if !f.opts.All && !n.Expanded {
		return
	}
	if len(n.Children) == 0 {
		return
	}

	// bars[d] tells whether the node at depth d still has siblings to come.
	for len(f.bars) <= n.Depth {
		f.bars = append(f.bars, false)
	}
	f.bars[n.Depth] = !f.t.IsLast(h)
	for _, c := range n.Children {
		f.visit(c)
	}
}

// prefix draws the art for a node at depth: one column per ancestor below
// the root and a connector for the immediate parent.
func (f *flattener[P]) prefix(h tree.Handle, depth int) string {
	if depth == 0 {
		return ""
	}
	var b strings.Builder
	for d := 1; d < depth; d++ {
		if d < len(f.bars) && f.bars[d] {
			b.WriteString(barContinue)
		} else {
			b.WriteString(barBlank)
		}
	}
	if f.t.IsLast(h) {
		b.WriteString(connLast)
	} else {
		b.WriteString(connMiddle)
	}
	return b.String()
}

// Continuation turns the prefix of a node into the art of a row drawn
// below it: the connector becomes a bar when siblings follow, blank
// otherwise.
func Continuation(prefix string) string {
	switch {
	case strings.HasSuffix(prefix, connMiddle):
		return strings.TrimSuffix(prefix, connMiddle) + barContinue
	case strings.HasSuffix(prefix, connLast):
		return strings.TrimSuffix(prefix, connLast) + barBlank
	}
	return prefix
}

// Strings returns the text of each line.
func Strings(lines []Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text
	}
	return out
}

// NotFound is the message shown when a lookup by name fails.
func NotFound(kind, name string) string {
	return fmt.Sprintf("%s %q not found", kind, name)
}
