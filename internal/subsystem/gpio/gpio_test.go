package gpio

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hwtree/internal/subsystem"
	"hwtree/internal/sysfs"
	"hwtree/internal/tree"
)

var defaultFilter = []string{"device", "subsystem", "driver", "*chip*", "power"}

func line(t *testing.T, root, name string, attrs map[string]string) {
	t.Helper()
	dir := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(dir, 0755))
	for k, v := range attrs {
		require.NoError(t, os.WriteFile(filepath.Join(dir, k), []byte(v+"\n"), 0644))
	}
}

func fixture(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	line(t, root, "gpio10", map[string]string{"active_low": "0", "value": "0", "edge": "none", "direction": "in"})
	line(t, root, "gpio11", map[string]string{"active_low": "1", "value": "1", "edge": "rising", "direction": "in"})
	line(t, root, "gpio12", map[string]string{"edge": "none"})
	line(t, root, "gpiochip0", map[string]string{"base": "0"})
	require.NoError(t, os.MkdirAll(filepath.Join(root, "gpio10", "power"), 0755))
	return root
}

func loaded(t *testing.T, root string) *Gpio {
	t.Helper()
	g := New(Options{Root: root, Filter: defaultFilter})
	require.NoError(t, g.Load())
	return g
}

func handle(t *testing.T, g *Gpio, name string) tree.Handle {
	t.Helper()
	h := g.Tree().FindFirst(name)
	require.NotEqual(t, tree.NoHandle, h, name)
	return h
}

func TestLoadReadsAttributes(t *testing.T) {
	g := loaded(t, fixture(t))

	lines := g.Lines()
	require.Len(t, lines, 3, "chips and filtered directories are skipped")
	assert.Equal(t, tree.NoHandle, g.Tree().FindFirst("gpiochip0"))
	assert.Equal(t, tree.NoHandle, g.Tree().FindFirst("power"))

	fields := strings.Fields(lines[0].Text)
	assert.Equal(t, []string{"|--", "gpio10", "0", "0", "none", "in"}, fields)

	fields = strings.Fields(lines[2].Text)
	assert.Equal(t, []string{"`--", "gpio12", "-", "-", "none", "-"}, fields, "unknown values show as dashes")

	p := g.Tree().Node(handle(t, g, "gpio12")).Payload
	assert.Equal(t, sysfs.Unknown, p.Value)
	assert.Equal(t, sysfs.Unknown, p.ActiveLow)
}

func TestChangeDirection(t *testing.T) {
	root := fixture(t)
	g := loaded(t, root)
	h := handle(t, g, "gpio10")

	msg, err := g.Change(h, 'D')
	require.NoError(t, err)
	assert.Equal(t, "gpio10 direction: out", msg)
	got, _ := sysfs.ReadString(filepath.Join(root, "gpio10", "direction"))
	assert.Equal(t, "out", got)
	assert.Equal(t, "out", g.Tree().Node(h).Payload.Direction)

	_, err = g.Change(h, 'd')
	require.NoError(t, err)
	assert.Equal(t, "in", g.Tree().Node(h).Payload.Direction)
}

func TestChangeDirectionRejectedWithEdge(t *testing.T) {
	root := fixture(t)
	g := loaded(t, root)
	h := handle(t, g, "gpio11")

	_, err := g.Change(h, 'D')
	require.Error(t, err)
	assert.True(t, errors.Is(err, tree.ErrWriteRejected))

	got, _ := sysfs.ReadString(filepath.Join(root, "gpio11", "direction"))
	assert.Equal(t, "in", got, "nothing is written")
	assert.Equal(t, "in", g.Tree().Node(h).Payload.Direction)
}

func TestChangeValue(t *testing.T) {
	root := fixture(t)
	g := loaded(t, root)
	h := handle(t, g, "gpio10")

	_, err := g.Change(h, 'V')
	assert.ErrorIs(t, err, tree.ErrWriteRejected, "input lines cannot be driven")

	_, err = g.Change(h, 'D')
	require.NoError(t, err)

	// A plain file does not mirror direction into value, so the read-back
	// disagrees and the displayed value stays the one read.
	_, err = g.Change(h, 'v')
	assert.ErrorIs(t, err, tree.ErrWriteRejected)
	got, _ := sysfs.ReadString(filepath.Join(root, "gpio10", "direction"))
	assert.Equal(t, "high", got)
	assert.Equal(t, int64(0), g.Tree().Node(h).Payload.Value)
}

func TestChangeUnsupported(t *testing.T) {
	g := loaded(t, fixture(t))

	_, err := g.Change(handle(t, g, "gpio10"), 'x')
	assert.ErrorIs(t, err, subsystem.ErrUnsupported)

	_, err = g.Change(g.Tree().Root(), 'd')
	assert.ErrorIs(t, err, subsystem.ErrUnsupported)

	_, err = g.Change(handle(t, g, "gpio12"), 'd')
	assert.ErrorIs(t, err, subsystem.ErrUnsupported, "unknown direction")
}

func TestDump(t *testing.T) {
	g := loaded(t, fixture(t))

	var buf bytes.Buffer
	require.NoError(t, g.Dump(&buf))
	assert.Equal(t, `
Gpio Tree :
***********
/
|-- gpio10 ( active_low:0, value:0, edge:none, direction:in )
|-- gpio11 ( active_low:1, value:1, edge:rising, direction:in )
 `+"`"+`-- gpio12 (, edge:none )


`, buf.String())
}
