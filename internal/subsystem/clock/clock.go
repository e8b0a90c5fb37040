// Package clock mirrors the common clock framework tree found in debugfs.
package clock

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"

	"hwtree/internal/render"
	"hwtree/internal/subsystem"
	"hwtree/internal/sysfs"
	"hwtree/internal/tree"
	"hwtree/pkg/logging"
)

const logSubsystem = "Clock"

var widths = []int{55, 6, 12, 12, 12}

// Info is the payload of one clock.
type Info struct {
	Flags    int64
	Rate     int64
	Usecount int64
}

// Clock is the clock tree panel.
type Clock struct {
	*subsystem.Base[Info]
}

// Options configures New.
type Options struct {
	Root   string
	Filter []string
}

// New returns an unloaded clock subsystem rooted at opts.Root.
func New(opts Options) *Clock {
	topts := tree.Options[Info]{
		Filter: subsystem.MatchAny(opts.Filter),
		OnFile: readFile,
	}
	return &Clock{Base: subsystem.NewBase(subsystem.Clock, opts.Root, topts, refresh)}
}

// ResolveRoot returns override when set, otherwise subdir below the first
// mount of type fstype listed in mountTable.
func ResolveRoot(mountTable, fstype, subdir, override string) (string, error) {
	if override != "" {
		return override, nil
	}
	mnt, err := sysfs.FindMount(mountTable, fstype)
	if err != nil {
		return "", fmt.Errorf("locate %s: %w", fstype, err)
	}
	return filepath.Join(mnt, subdir), nil
}

func readFile(n *tree.Node[Info], name, path string) {
	var dst *int64
	read := sysfs.ReadInt
	switch name {
	case "flags":
		dst, read = &n.Payload.Flags, sysfs.ReadHex
	case "rate":
		dst = &n.Payload.Rate
	case "usecount":
		dst = &n.Payload.Usecount
	default:
		return
	}
	v, err := read(path)
	if err != nil {
		logging.Debug(logSubsystem, "read %s: %v", path, err)
		return
	}
	*dst = v
}

func refresh(h tree.Handle, n *tree.Node[Info]) error {
	if n.Parent == tree.NoHandle {
		return nil
	}
	for _, name := range []string{"flags", "rate", "usecount"} {
		readFile(n, name, filepath.Join(n.Path, name))
	}
	return nil
}

// Header returns the column titles.
func (c *Clock) Header() string {
	return subsystem.Columns(widths, "Name", "Flags", "Rate", "Usecount", "Children")
}

// Lines returns one row per visible clock. Clocks in use are emphasized.
func (c *Clock) Lines() []render.Line {
	return c.Flatten(func(prefix string, n *tree.Node[Info]) (string, bool) {
		return fmt.Sprintf("%s 0x%-4x %s %-12d %-12d",
			subsystem.Column(prefix+n.Name, widths[0]),
			n.Payload.Flags,
			subsystem.Column(render.FormatRate(n.Payload.Rate), widths[2]),
			n.Payload.Usecount,
			len(n.Children)), n.Payload.Usecount > 0
	})
}

// label is the text used by the dump and the parent chain.
func label(n *tree.Node[Info]) string {
	if n.Parent == tree.NoHandle {
		return "/"
	}
	rate, unit := render.ScaleRate(float64(n.Payload.Rate))
	return fmt.Sprintf("%s (flags:0x%x,usecount:%d,rate:%5.2f %s)",
		n.Name, n.Payload.Flags, n.Payload.Usecount, rate, unit)
}

// Chain renders the ancestors of the first clock called name.
func (c *Clock) Chain(name string) ([]render.Line, bool) {
	t := c.Tree()
	if t == nil {
		return nil, false
	}
	return render.FindChain(t, name, label)
}

// Names lists every clock name once, sorted.
func (c *Clock) Names() []string {
	seen := map[string]bool{}
	var names []string
	_ = c.Tree().ForEach(func(h tree.Handle, n *tree.Node[Info]) error {
		if n.Parent != tree.NoHandle && !seen[n.Name] {
			seen[n.Name] = true
			names = append(names, n.Name)
		}
		return nil
	})
	sort.Strings(names)
	return names
}

// Dump prints the whole clock tree regardless of the expand state.
func (c *Clock) Dump(w io.Writer) error {
	if err := c.Err(); err != nil {
		return err
	}
	lines := render.Flatten(c.Tree(), render.Options[Info]{
		All: true,
		Format: func(prefix string, n *tree.Node[Info]) (string, bool) {
			return prefix + label(n), false
		},
	})
	fmt.Fprintf(w, "\nClock Tree :\n")
	fmt.Fprintf(w, "**********\n")
	for _, l := range lines {
		fmt.Fprintln(w, l.Text)
	}
	_, err := fmt.Fprintf(w, "\n\n")
	return err
}

// DumpParents prints the chain from the root to the clock called name.
func (c *Clock) DumpParents(w io.Writer, name string) error {
	if err := c.Err(); err != nil {
		return err
	}
	fmt.Fprintf(w, "\nParents for %q Clock :\n\n", name)
	lines, ok := c.Chain(name)
	if !ok {
		fmt.Fprintln(w, render.NotFound("Clock", name))
	}
	for _, l := range lines {
		fmt.Fprintln(w, l.Text)
	}
	_, err := fmt.Fprintf(w, "\n\n")
	return err
}
