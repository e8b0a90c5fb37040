package tree

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"hwtree/pkg/logging"
)

const subsystem = "tree"

// Handle addresses a node inside its Tree.
type Handle int

// NoHandle is the parent of the root.
const NoHandle Handle = -1

// Node is one directory of the mirrored hierarchy.
type Node[P any] struct {
	Name     string
	Path     string
	Depth    int
	Parent   Handle
	Children []Handle
	Expanded bool
	Payload  P
}

// IsLeaf reports whether the node has no children.
func (n *Node[P]) IsLeaf() bool {
	return len(n.Children) == 0
}

// Options configures Load.
type Options[P any] struct {
	// Filter returns true for directory names that must not be scanned.
	Filter func(name string) bool
	// NewPayload builds the initial payload of a node before its files are read.
	NewPayload func(name string, depth int) P
	// OnFile is called for each regular file directly inside a node.
	OnFile func(n *Node[P], name, path string)
}

// Tree is an arena of nodes. The zero value is an empty tree.
type Tree[P any] struct {
	nodes []Node[P]
}

// Load scans root recursively and returns the resulting tree.
func Load[P any](root string, opts Options[P]) (*Tree[P], error) {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", root, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w: %v", root, ErrNotFound, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory: %w", root, ErrNotFound)
	}

	t := &Tree[P]{}
	h := t.add(NoHandle, filepath.Base(root), root, 0, opts)
	l := loader[P]{tree: t, opts: opts}
	if err := l.scan(h, []os.FileInfo{info}); err != nil {
		return nil, fmt.Errorf("%s: %w", root, err)
	}
	return t, nil
}

type loader[P any] struct {
	tree *Tree[P]
	opts Options[P]
}

// scan reads the directory of h. ancestors holds the stat results of every
// directory from the root down to h and is used to break symlink cycles.
func (l *loader[P]) scan(h Handle, ancestors []os.FileInfo) error {
	dir := l.tree.nodes[h].Path
	entries, err := os.ReadDir(dir)
	if err != nil {
		if h == 0 {
			return fmt.Errorf("%w: %v", ErrNotFound, err)
		}
		logging.Debug(subsystem, "%v: %s: %v", ErrScanFailure, dir, err)
		return nil
	}

	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		path := filepath.Join(dir, name)

		info, err := os.Stat(path)
		if err != nil {
			logging.Debug(subsystem, "%v: %s: %v", ErrScanFailure, path, err)
			continue
		}

		if info.Mode().IsRegular() {
			if l.opts.OnFile != nil {
				l.opts.OnFile(&l.tree.nodes[h], name, path)
			}
			continue
		}

		if !info.IsDir() {
			continue
		}
		if l.opts.Filter != nil && l.opts.Filter(name) {
			continue
		}
		if loops(info, ancestors) {
			logging.Debug(subsystem, "%v: %s loops back to an ancestor", ErrScanFailure, path)
			continue
		}

		child := l.tree.add(h, name, path, l.tree.nodes[h].Depth+1, l.opts)
		if err := l.scan(child, append(ancestors, info)); err != nil {
			return err
		}
	}
	return nil
}

func loops(info os.FileInfo, ancestors []os.FileInfo) bool {
	for _, a := range ancestors {
		if os.SameFile(a, info) {
			return true
		}
	}
	return false
}

func (t *Tree[P]) add(parent Handle, name, path string, depth int, opts Options[P]) Handle {
	var payload P
	if opts.NewPayload != nil {
		payload = opts.NewPayload(name, depth)
	}
	h := Handle(len(t.nodes))
	t.nodes = append(t.nodes, Node[P]{
		Name:    name,
		Path:    path,
		Depth:   depth,
		Parent:  parent,
		Payload: payload,
	})
	if parent != NoHandle {
		t.nodes[parent].Children = append(t.nodes[parent].Children, h)
	}
	return h
}

// Root returns the handle of the root node, or NoHandle for an empty tree.
func (t *Tree[P]) Root() Handle {
	if t == nil || len(t.nodes) == 0 {
		return NoHandle
	}
	return 0
}

// Len returns the number of nodes.
func (t *Tree[P]) Len() int {
	if t == nil {
		return 0
	}
	return len(t.nodes)
}

// Node returns the node addressed by h. The pointer is valid until the tree
// is destroyed.
func (t *Tree[P]) Node(h Handle) *Node[P] {
	if t == nil || h < 0 || int(h) >= len(t.nodes) {
		return nil
	}
	return &t.nodes[h]
}

// Visitor is called once per node by ForEach.
type Visitor[P any] func(h Handle, n *Node[P]) error

// ForEach walks the tree depth first in pre-order, root included. The first
// error returned by fn stops the walk and is returned, except ErrStop which
// ends the walk successfully.
func (t *Tree[P]) ForEach(fn Visitor[P]) error {
	if t.Len() == 0 {
		return nil
	}
	err := t.walk(0, fn)
	if errors.Is(err, ErrStop) {
		return nil
	}
	return err
}

func (t *Tree[P]) walk(h Handle, fn Visitor[P]) error {
	if err := fn(h, &t.nodes[h]); err != nil {
		return err
	}
	for _, c := range t.nodes[h].Children {
		if err := t.walk(c, fn); err != nil {
			return err
		}
	}
	return nil
}

// Destroy releases every node. It is safe on a nil or empty tree.
func (t *Tree[P]) Destroy() {
	if t == nil {
		return
	}
	t.nodes = nil
}

// IsLast reports whether h is the last child of its parent. The root counts
// as last.
func (t *Tree[P]) IsLast(h Handle) bool {
	n := t.Node(h)
	if n == nil || n.Parent == NoHandle {
		return true
	}
	siblings := t.nodes[n.Parent].Children
	return siblings[len(siblings)-1] == h
}

// Toggle expands a collapsed node, or collapses an expanded one together
// with all of its descendants. Expanding never cascades.
func (t *Tree[P]) Toggle(h Handle) {
	n := t.Node(h)
	if n == nil {
		return
	}
	if n.Expanded {
		t.CollapseAll(h)
		return
	}
	n.Expanded = true
}

// CollapseAll collapses h and every node below it.
func (t *Tree[P]) CollapseAll(h Handle) {
	n := t.Node(h)
	if n == nil {
		return
	}
	n.Expanded = false
	for _, c := range n.Children {
		t.CollapseAll(c)
	}
}

// FindFirst looks name up in two passes: the direct children of the root
// first, then a depth-first search of the whole tree. It returns NoHandle
// when nothing matches.
func (t *Tree[P]) FindFirst(name string) Handle {
	root := t.Root()
	if root == NoHandle {
		return NoHandle
	}
	for _, c := range t.nodes[root].Children {
		if t.nodes[c].Name == name {
			return c
		}
	}
	found := NoHandle
	_ = t.ForEach(func(h Handle, n *Node[P]) error {
		if n.Name == name {
			found = h
			return ErrStop
		}
		return nil
	})
	return found
}

// Ancestors returns the handles from the root down to h, h included.
func (t *Tree[P]) Ancestors(h Handle) []Handle {
	var chain []Handle
	for n := t.Node(h); n != nil; n = t.Node(n.Parent) {
		chain = append(chain, h)
		h = n.Parent
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}
