// Package regulator mirrors /sys/class/regulator.
package regulator

import (
	"fmt"
	"io"
	"strings"

	"hwtree/internal/render"
	"hwtree/internal/subsystem"
	"hwtree/internal/sysfs"
	"hwtree/internal/tree"
)

var widths = []int{24, 20, 10, 10, 10, 10, 12, 12, 6}

// Info is the payload of one regulator. Integer fields are -1 when absent.
type Info struct {
	Name          string
	Type          string
	Status        string
	State         string
	Opmode        string
	Microvolts    int64
	MinMicrovolts int64
	MaxMicrovolts int64
	Microamps     int64
	NumUsers      int64
}

func newInfo(string, int) Info {
	return Info{
		Microvolts:    sysfs.Unknown,
		MinMicrovolts: sysfs.Unknown,
		MaxMicrovolts: sysfs.Unknown,
		Microamps:     sysfs.Unknown,
		NumUsers:      sysfs.Unknown,
	}
}

// Regulator is the regulator panel.
type Regulator struct {
	*subsystem.Base[Info]
	verbose bool
}

// Options configures New.
type Options struct {
	Root    string
	Filter  []string
	Verbose bool
}

// New returns an unloaded regulator subsystem.
func New(opts Options) *Regulator {
	topts := tree.Options[Info]{
		Filter:     subsystem.MatchAny(opts.Filter),
		NewPayload: newInfo,
	}
	return &Regulator{
		Base:    subsystem.NewBase(subsystem.Regulator, opts.Root, topts, read),
		verbose: opts.Verbose,
	}
}

// Load scans the tree and reads every regulator.
func (r *Regulator) Load() error {
	if err := r.Base.Load(); err != nil {
		return err
	}
	return r.Refresh()
}

func read(h tree.Handle, n *tree.Node[Info]) error {
	if n.Parent == tree.NoHandle {
		return nil
	}
	p := &n.Payload
	p.Name = sysfs.StringOr(n.Path, "name", "")
	p.Type = sysfs.StringOr(n.Path, "type", "")
	p.Status = sysfs.StringOr(n.Path, "status", "")
	p.State = sysfs.StringOr(n.Path, "state", "")
	p.Opmode = sysfs.StringOr(n.Path, "opmode", "")
	p.Microvolts = sysfs.IntOr(n.Path, "microvolts", sysfs.Unknown)
	p.MinMicrovolts = sysfs.IntOr(n.Path, "min_microvolts", sysfs.Unknown)
	p.MaxMicrovolts = sysfs.IntOr(n.Path, "max_microvolts", sysfs.Unknown)
	p.Microamps = sysfs.IntOr(n.Path, "microamps", sysfs.Unknown)
	p.NumUsers = sysfs.IntOr(n.Path, "num_users", sysfs.Unknown)
	return nil
}

// Volts formats a microvolt reading.
func Volts(uv int64) string {
	if uv < 0 {
		return "-"
	}
	return fmt.Sprintf("%.3f V", float64(uv)/1e6)
}

// Amps formats a microamp reading.
func Amps(ua int64) string {
	if ua < 0 {
		return "-"
	}
	return fmt.Sprintf("%.3f A", float64(ua)/1e6)
}

// Header returns the column titles.
func (r *Regulator) Header() string {
	return subsystem.Columns(widths, "Name", "Label", "Status", "State", "Type", "Opmode", "Voltage", "Current", "Users")
}

// Lines returns one row per visible regulator. Enabled regulators are
// emphasized.
func (r *Regulator) Lines() []render.Line {
	return r.Flatten(func(prefix string, n *tree.Node[Info]) (string, bool) {
		p := n.Payload
		return subsystem.Columns(widths,
			prefix+n.Name,
			subsystem.StringOrDash(p.Name),
			subsystem.StringOrDash(p.Status),
			subsystem.StringOrDash(p.State),
			subsystem.StringOrDash(p.Type),
			subsystem.StringOrDash(p.Opmode),
			Volts(p.Microvolts),
			Amps(p.Microamps),
			subsystem.IntOrDash(p.NumUsers)), p.State == "enabled"
	})
}

// Dump prints one block per regulator. Verbose mode adds the limits and
// the operating mode.
func (r *Regulator) Dump(w io.Writer) error {
	if err := r.Err(); err != nil {
		return err
	}
	fmt.Fprintf(w, "\nRegulator Information:\n")
	fmt.Fprintf(w, "*********************\n")
	err := r.Tree().ForEach(func(h tree.Handle, n *tree.Node[Info]) error {
		if n.Parent == tree.NoHandle {
			return nil
		}
		p := n.Payload
		var b strings.Builder
		fmt.Fprintf(&b, "%s:\n", n.Name)
		field := func(name, v string) {
			if v != "" && v != "-" {
				fmt.Fprintf(&b, "\t%s: %s\n", name, v)
			}
		}
		field("name", p.Name)
		field("status", p.Status)
		field("state", p.State)
		field("type", p.Type)
		field("microvolts", Volts(p.Microvolts))
		field("microamps", Amps(p.Microamps))
		field("num_users", subsystem.IntOrDash(p.NumUsers))
		if r.verbose {
			field("opmode", p.Opmode)
			field("min_microvolts", Volts(p.MinMicrovolts))
			field("max_microvolts", Volts(p.MaxMicrovolts))
		}
		_, err := io.WriteString(w, b.String())
		return err
	})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "\n\n")
	return err
}
