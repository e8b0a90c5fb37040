package clock

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hwtree/internal/render"
	"hwtree/internal/tree"
)

type clk struct {
	path, flags, rate, usecount string
}

func fixture(t *testing.T, clocks ...clk) string {
	t.Helper()
	root := t.TempDir()
	for _, c := range clocks {
		dir := filepath.Join(root, c.path)
		require.NoError(t, os.MkdirAll(dir, 0755))
		for name, v := range map[string]string{"flags": c.flags, "rate": c.rate, "usecount": c.usecount} {
			if v != "" {
				require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(v+"\n"), 0644))
			}
		}
	}
	return root
}

func loaded(t *testing.T, root string) *Clock {
	t.Helper()
	c := New(Options{Root: root})
	require.NoError(t, c.Load())
	return c
}

func standard(t *testing.T) string {
	return fixture(t,
		clk{path: "A", flags: "10", rate: "500", usecount: "1"},
		clk{path: "B", rate: "1500"},
		clk{path: "B/C", rate: "2500000"},
	)
}

func TestLoadAndLines(t *testing.T) {
	c := loaded(t, standard(t))

	lines := c.Lines()
	require.Len(t, lines, 2, "children of B stay hidden until expanded")
	assert.True(t, strings.HasPrefix(lines[0].Text, "|-- A"))
	assert.Contains(t, lines[0].Text, "0x10")
	assert.Contains(t, lines[0].Text, "500.00 Hz")
	assert.True(t, lines[0].Bold, "clock in use")
	assert.False(t, lines[1].Bold)
	assert.Contains(t, lines[1].Text, "1.50 KHz")

	c.Toggle(lines[1].Handle)
	lines = c.Lines()
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[2].Text, "    `-- C"))
	assert.Contains(t, lines[2].Text, "2.50 MHz")

	assert.Contains(t, c.Header(), "Usecount")
	assert.True(t, strings.HasPrefix(c.Header(), "Name "))
}

func TestRefreshReReadsAttributes(t *testing.T) {
	root := standard(t)
	c := loaded(t, root)

	require.NoError(t, os.WriteFile(filepath.Join(root, "A", "rate"), []byte("2000\n"), 0644))
	require.NoError(t, c.Refresh())
	assert.Contains(t, c.Lines()[0].Text, "2.00 KHz")

	// an unreadable value keeps the previous one
	require.NoError(t, os.WriteFile(filepath.Join(root, "A", "rate"), []byte("garbage\n"), 0644))
	require.NoError(t, c.Refresh())
	assert.Contains(t, c.Lines()[0].Text, "2.00 KHz")
}

func TestLoadKeepsExpandState(t *testing.T) {
	root := standard(t)
	c := loaded(t, root)
	c.Toggle(c.Lines()[1].Handle)
	require.Len(t, c.Lines(), 3)

	require.NoError(t, os.MkdirAll(filepath.Join(root, "D"), 0755))
	require.NoError(t, c.Load())
	assert.Len(t, c.Lines(), 4)
}

func TestChain(t *testing.T) {
	c := loaded(t, standard(t))

	lines, ok := c.Chain("C")
	require.True(t, ok)
	assert.Equal(t, []string{
		"/",
		"`- B (flags:0x0,usecount:0,rate: 1.50 KHz)",
		"  `- C (flags:0x0,usecount:0,rate: 2.50 MHz)",
	}, render.Strings(lines))
	assert.True(t, lines[2].Bold)

	_, ok = c.Chain("Z")
	assert.False(t, ok)
	assert.Equal(t, []string{"A", "B", "C"}, c.Names())
}

func TestDump(t *testing.T) {
	c := loaded(t, standard(t))

	var buf bytes.Buffer
	require.NoError(t, c.Dump(&buf))
	assert.Equal(t, `
Clock Tree :
**********
/
|-- A (flags:0x10,usecount:1,rate:500.00 Hz)
`+"`"+`-- B (flags:0x0,usecount:0,rate: 1.50 KHz)
    `+"`"+`-- C (flags:0x0,usecount:0,rate: 2.50 MHz)


`, buf.String())

	buf.Reset()
	require.NoError(t, c.DumpParents(&buf, "Z"))
	assert.Contains(t, buf.String(), `Parents for "Z" Clock :`)
	assert.Contains(t, buf.String(), `Clock "Z" not found`)
}

func TestMissingRootDisables(t *testing.T) {
	c := New(Options{Root: filepath.Join(t.TempDir(), "clock")})
	err := c.Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, tree.ErrNotFound))
	assert.Equal(t, err, c.Err())
	assert.Empty(t, c.Lines())
	assert.Error(t, c.Dump(&bytes.Buffer{}))
	assert.ErrorIs(t, c.Refresh(), tree.ErrNotFound)
}

func TestResolveRoot(t *testing.T) {
	dir := t.TempDir()
	table := filepath.Join(dir, "mounts")
	require.NoError(t, os.WriteFile(table, []byte("debugfs /sys/kernel/debug debugfs rw 0 0\n"), 0644))

	root, err := ResolveRoot(table, "debugfs", "clock", "")
	require.NoError(t, err)
	assert.Equal(t, "/sys/kernel/debug/clock", root)

	root, err = ResolveRoot(table, "debugfs", "clock", "/override")
	require.NoError(t, err)
	assert.Equal(t, "/override", root)

	_, err = ResolveRoot(table, "tracefs", "clock", "")
	assert.Error(t, err)
}
