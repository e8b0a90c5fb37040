// Package gpio mirrors the exported lines of /sys/class/gpio and lets the
// user flip their direction and output value.
package gpio

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"hwtree/internal/render"
	"hwtree/internal/subsystem"
	"hwtree/internal/sysfs"
	"hwtree/internal/tree"
	"hwtree/pkg/logging"
)

const logSubsystem = "Gpio"

var widths = []int{20, 10, 10, 10, 10}

// Info is the payload of one GPIO line. Integer fields are -1 and strings
// empty when the attribute could not be read.
type Info struct {
	ActiveLow int64
	Value     int64
	Edge      string
	Direction string

	// prefix caches the dump art of this node once computed.
	prefix    string
	hasPrefix bool
}

func newInfo(string, int) Info {
	return Info{ActiveLow: sysfs.Unknown, Value: sysfs.Unknown}
}

// Gpio is the GPIO panel.
type Gpio struct {
	*subsystem.Base[Info]
}

// Options configures New.
type Options struct {
	Root   string
	Filter []string
}

// New returns an unloaded GPIO subsystem.
func New(opts Options) *Gpio {
	topts := tree.Options[Info]{
		Filter:     subsystem.MatchAny(opts.Filter),
		NewPayload: newInfo,
	}
	return &Gpio{Base: subsystem.NewBase(subsystem.GPIO, opts.Root, topts, read)}
}

// Load scans the tree and reads every line.
func (g *Gpio) Load() error {
	if err := g.Base.Load(); err != nil {
		return err
	}
	return g.Refresh()
}

func read(h tree.Handle, n *tree.Node[Info]) error {
	if n.Parent == tree.NoHandle {
		return nil
	}
	p := &n.Payload
	p.ActiveLow = sysfs.IntOr(n.Path, "active_low", sysfs.Unknown)
	p.Value = sysfs.IntOr(n.Path, "value", sysfs.Unknown)
	p.Edge = sysfs.StringOr(n.Path, "edge", "")
	p.Direction = sysfs.StringOr(n.Path, "direction", "")
	return nil
}

// Header returns the column titles.
func (g *Gpio) Header() string {
	return subsystem.Columns(widths, "Name", "Value", "Active_low", "Edge", "Direction")
}

// Lines returns one row per visible line.
func (g *Gpio) Lines() []render.Line {
	return g.Flatten(func(prefix string, n *tree.Node[Info]) (string, bool) {
		p := n.Payload
		return subsystem.Columns(widths,
			prefix+n.Name,
			subsystem.IntOrDash(p.Value),
			subsystem.IntOrDash(p.ActiveLow),
			subsystem.StringOrDash(p.Edge),
			subsystem.StringOrDash(p.Direction)), false
	})
}

// Change handles 'd' (toggle direction) and 'v' (toggle output value). The
// values shown afterwards are always the ones read back from the files.
func (g *Gpio) Change(h tree.Handle, key rune) (string, error) {
	n := g.Tree().Node(h)
	if n == nil || n.Parent == tree.NoHandle {
		return "", subsystem.ErrUnsupported
	}

	switch key {
	case 'd', 'D':
		return changeDirection(n)
	case 'v', 'V':
		return changeValue(n)
	default:
		return "", fmt.Errorf("key %q: %w", key, subsystem.ErrUnsupported)
	}
}

func changeDirection(n *tree.Node[Info]) (string, error) {
	p := &n.Payload
	// A line configured as an interrupt source keeps its direction.
	if p.Edge != "none" {
		return "", fmt.Errorf("%s: edge is %q: %w", n.Name, p.Edge, tree.ErrWriteRejected)
	}

	var want string
	switch p.Direction {
	case "in":
		want = "out"
	case "out":
		want = "in"
	default:
		return "", fmt.Errorf("%s: unknown direction %q: %w", n.Name, p.Direction, subsystem.ErrUnsupported)
	}

	werr := sysfs.WriteString(filepath.Join(n.Path, "direction"), want)
	p.Direction = sysfs.StringOr(n.Path, "direction", "")
	p.Value = sysfs.IntOr(n.Path, "value", sysfs.Unknown)
	if werr != nil || p.Direction != want {
		logging.Warn(logSubsystem, "direction of %s is %q after writing %q: %v", n.Name, p.Direction, want, werr)
		return "", fmt.Errorf("%s: direction %q: %w", n.Name, p.Direction, tree.ErrWriteRejected)
	}
	logging.Info(logSubsystem, "%s direction set to %s", n.Name, want)
	return fmt.Sprintf("%s direction: %s", n.Name, p.Direction), nil
}

func changeValue(n *tree.Node[Info]) (string, error) {
	p := &n.Payload
	if p.Edge != "none" || p.Direction != "out" {
		return "", fmt.Errorf("%s: value only changes on an output without edge: %w", n.Name, tree.ErrWriteRejected)
	}

	// Writing high or low to direction sets the level atomically.
	level, want := "high", int64(1)
	if p.Value != 0 {
		level, want = "low", 0
	}

	werr := sysfs.WriteString(filepath.Join(n.Path, "direction"), level)
	p.Value = sysfs.IntOr(n.Path, "value", sysfs.Unknown)
	if werr != nil || p.Value != want {
		logging.Warn(logSubsystem, "value of %s is %d after driving %s: %v", n.Name, p.Value, level, werr)
		return "", fmt.Errorf("%s: value %d: %w", n.Name, p.Value, tree.ErrWriteRejected)
	}
	logging.Info(logSubsystem, "%s driven %s", n.Name, level)
	return fmt.Sprintf("%s value: %d", n.Name, p.Value), nil
}

// dumpPrefix returns the art drawn before a line in the dump. It is built
// from the parent's prefix the first time it is needed.
func dumpPrefix(t *tree.Tree[Info], h tree.Handle) string {
	n := t.Node(h)
	if n.Payload.hasPrefix {
		return n.Payload.prefix
	}
	var prefix string
	if n.Parent != tree.NoHandle {
		var b strings.Builder
		b.WriteString(dumpPrefix(t, n.Parent))
		if n.Depth > 1 {
			b.WriteString("   ")
		}
		if t.IsLast(h) {
			b.WriteString(" ")
		} else {
			b.WriteString("|")
		}
		prefix = b.String()
	}
	n.Payload.prefix, n.Payload.hasPrefix = prefix, true
	return prefix
}

// Dump prints every line with its readable attributes.
func (g *Gpio) Dump(w io.Writer) error {
	if err := g.Err(); err != nil {
		return err
	}
	t := g.Tree()
	fmt.Fprintf(w, "\nGpio Tree :\n")
	fmt.Fprintf(w, "***********\n")
	err := t.ForEach(func(h tree.Handle, n *tree.Node[Info]) error {
		if n.Parent == tree.NoHandle {
			_, err := fmt.Fprintln(w, "/")
			return err
		}
		var b strings.Builder
		b.WriteString(dumpPrefix(t, h))
		if t.IsLast(h) {
			b.WriteString("`")
		}
		b.WriteString("-- ")
		b.WriteString(n.Name)
		b.WriteString(" (")
		p := n.Payload
		if p.ActiveLow != sysfs.Unknown {
			fmt.Fprintf(&b, " active_low:%d", p.ActiveLow)
		}
		if p.Value != sysfs.Unknown {
			fmt.Fprintf(&b, ", value:%d", p.Value)
		}
		if p.Edge != "" {
			fmt.Fprintf(&b, ", edge:%s", p.Edge)
		}
		if p.Direction != "" {
			fmt.Fprintf(&b, ", direction:%s", p.Direction)
		}
		b.WriteString(" )")
		_, err := fmt.Fprintln(w, b.String())
		return err
	})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "\n\n")
	return err
}
