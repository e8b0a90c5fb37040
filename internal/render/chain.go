package render

import (
	"strings"

	"hwtree/internal/tree"
)

// LabelFunc renders the text of one node without any indentation.
type LabelFunc[P any] func(n *tree.Node[P]) string

// Chain renders the ancestors of h from the root down to h itself. Each
// level below the first child of the root is indented by two more columns.
// The line of h is emphasized.
func Chain[P any](t *tree.Tree[P], h tree.Handle, label LabelFunc[P]) []Line {
	if label == nil {
		label = func(n *tree.Node[P]) string { return n.Name }
	}
	handles := t.Ancestors(h)
	lines := make([]Line, 0, len(handles))
	for _, a := range handles {
		n := t.Node(a)
		prefix := ""
		if n.Depth > 0 {
			prefix = strings.Repeat("  ", n.Depth-1) + "`- "
		}
		lines = append(lines, Line{
			Handle: a,
			Depth:  n.Depth,
			Prefix: prefix,
			Text:   prefix + label(n),
			Bold:   a == h,
		})
	}
	return lines
}

// FindChain looks name up with tree.FindFirst and renders its chain. ok is
// false when no node carries that name.
func FindChain[P any](t *tree.Tree[P], name string, label LabelFunc[P]) (lines []Line, ok bool) {
	h := t.FindFirst(name)
	if h == tree.NoHandle {
		return nil, false
	}
	return Chain(t, h, label), true
}
