package tree

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rate struct {
	value int
	seen  []string
}

// mkdirs creates every relative directory path below root.
func mkdirs(t *testing.T, root string, dirs ...string) {
	t.Helper()
	for _, d := range dirs {
		require.NoError(t, os.MkdirAll(filepath.Join(root, d), 0755))
	}
}

func rateOptions(filter func(string) bool) Options[rate] {
	return Options[rate]{
		Filter: filter,
		OnFile: func(n *Node[rate], name, path string) {
			n.Payload.seen = append(n.Payload.seen, name)
			if name != "rate" {
				return
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return
			}
			n.Payload.value, _ = strconv.Atoi(string(data))
		},
	}
}

func TestLoad_StructureAndDepth(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "a/a1/a11", "a/a2", "b", ".hidden/x")
	require.NoError(t, os.WriteFile(filepath.Join(root, "a", "rate"), []byte("1500"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a", "unknown"), []byte("?"), 0644))

	tr, err := Load(root, rateOptions(nil))
	require.NoError(t, err)

	// root + a, a1, a11, a2, b
	assert.Equal(t, 6, tr.Len())

	err = tr.ForEach(func(h Handle, n *Node[rate]) error {
		if n.Parent == NoHandle {
			assert.Equal(t, 0, n.Depth)
			return nil
		}
		assert.Equal(t, tr.Node(n.Parent).Depth+1, n.Depth, n.Path)
		assert.Equal(t, filepath.Join(tr.Node(n.Parent).Path, n.Name), n.Path)
		return nil
	})
	require.NoError(t, err)

	a := tr.FindFirst("a")
	require.NotEqual(t, NoHandle, a)
	assert.Equal(t, 1500, tr.Node(a).Payload.value)
	assert.ElementsMatch(t, []string{"rate", "unknown"}, tr.Node(a).Payload.seen)
}

func TestLoad_ScanOrderIsLexical(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "zeta", "alpha", "mid")

	tr, err := Load(root, rateOptions(nil))
	require.NoError(t, err)

	var names []string
	for _, c := range tr.Node(tr.Root()).Children {
		names = append(names, tr.Node(c).Name)
	}
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, names)
	assert.True(t, tr.IsLast(tr.FindFirst("zeta")))
	assert.False(t, tr.IsLast(tr.FindFirst("alpha")))
	assert.True(t, tr.IsLast(tr.Root()))
}

func TestLoad_FilterPrunesEverythingBelow(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "gpio1/device/deep/deeper", "gpio1/edge", "gpiochip0/x", "gpio2")

	filter := func(name string) bool {
		matched, _ := filepath.Match("*chip*", name)
		return name == "device" || matched
	}
	tr, err := Load(root, rateOptions(filter))
	require.NoError(t, err)

	for _, name := range []string{"device", "deep", "deeper", "gpiochip0", "x"} {
		assert.Equal(t, NoHandle, tr.FindFirst(name), name)
	}
	// root + gpio1, edge, gpio2
	assert.Equal(t, 4, tr.Len())
}

func TestLoad_SymlinkCycleIsSkipped(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "a/b")
	require.NoError(t, os.Symlink(filepath.Join(root, "a"), filepath.Join(root, "a", "b", "up")))

	tr, err := Load(root, rateOptions(nil))
	require.NoError(t, err)
	assert.Equal(t, 3, tr.Len())
	assert.Equal(t, NoHandle, tr.FindFirst("up"))
}

func TestLoad_DanglingSymlinkDegrades(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "a")
	require.NoError(t, os.Symlink(filepath.Join(root, "missing"), filepath.Join(root, "a", "broken")))

	tr, err := Load(root, rateOptions(nil))
	require.NoError(t, err)
	assert.Equal(t, 2, tr.Len())
}

func TestLoad_MissingRoot(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope"), rateOptions(nil))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestForEach_FailFastAndStop(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "a", "b", "c")
	tr, err := Load(root, rateOptions(nil))
	require.NoError(t, err)

	boom := errors.New("boom")
	visited := 0
	err = tr.ForEach(func(h Handle, n *Node[rate]) error {
		visited++
		if n.Name == "a" {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, visited, "root then a")

	visited = 0
	err = tr.ForEach(func(h Handle, n *Node[rate]) error {
		visited++
		if n.Name == "b" {
			return ErrStop
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, visited)
}

func TestDestroy_NilAndEmpty(t *testing.T) {
	var nilTree *Tree[rate]
	assert.NotPanics(t, func() { nilTree.Destroy() })
	assert.NoError(t, nilTree.ForEach(func(Handle, *Node[rate]) error { return errors.New("never") }))

	empty := &Tree[rate]{}
	empty.Destroy()
	assert.Equal(t, 0, empty.Len())
	assert.Equal(t, NoHandle, empty.Root())

	root := t.TempDir()
	mkdirs(t, root, "a")
	tr, err := Load(root, rateOptions(nil))
	require.NoError(t, err)
	tr.Destroy()
	assert.Equal(t, 0, tr.Len())
	assert.Nil(t, tr.Node(0))
}

func TestToggle_CollapseCascades(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "a/b/c", "a/d")
	tr, err := Load(root, rateOptions(nil))
	require.NoError(t, err)

	for h := 0; h < tr.Len(); h++ {
		tr.Node(Handle(h)).Expanded = true
	}

	a := tr.FindFirst("a")
	tr.Toggle(a)
	for _, name := range []string{"a", "b", "c", "d"} {
		assert.False(t, tr.Node(tr.FindFirst(name)).Expanded, name)
	}

	tr.Toggle(a)
	assert.True(t, tr.Node(a).Expanded)
	for _, name := range []string{"b", "c", "d"} {
		assert.False(t, tr.Node(tr.FindFirst(name)).Expanded, "expand must not cascade to %s", name)
	}
}

func TestFindFirst_TwoPhase(t *testing.T) {
	root := t.TempDir()
	// "C" exists deep under A and as a grandchild under B. The deep one is
	// reached first depth-first.
	mkdirs(t, root, "A/X/C", "B/C")
	tr, err := Load(root, rateOptions(nil))
	require.NoError(t, err)

	c := tr.FindFirst("C")
	require.NotEqual(t, NoHandle, c)
	assert.Equal(t, filepath.Join(root, "A", "X", "C"), tr.Node(c).Path)

	mkdirs(t, root, "A/B")
	tr, err = Load(root, rateOptions(nil))
	require.NoError(t, err)
	b := tr.FindFirst("B")
	assert.Equal(t, 1, tr.Node(b).Depth, "root children win over deeper matches")

	assert.Equal(t, NoHandle, tr.FindFirst("Z"))
}

func TestAncestors(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "A", "B/C")
	tr, err := Load(root, rateOptions(nil))
	require.NoError(t, err)

	c := tr.FindFirst("C")
	require.NotEqual(t, NoHandle, c)
	assert.Equal(t, 2, tr.Node(c).Depth)

	var names []string
	for _, h := range tr.Ancestors(c) {
		names = append(names, tr.Node(h).Name)
	}
	assert.Equal(t, []string{filepath.Base(root), "B", "C"}, names)
	assert.Empty(t, tr.Ancestors(NoHandle))
}
