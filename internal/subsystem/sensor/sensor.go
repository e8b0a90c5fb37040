// Package sensor mirrors the hwmon class: one node per chip, one reading per
// <kind><n>_<item> attribute file.
package sensor

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"hwtree/internal/render"
	"hwtree/internal/subsystem"
	"hwtree/internal/sysfs"
	"hwtree/internal/tree"
	"hwtree/pkg/logging"
)

const logSubsystem = "Sensor"

var widths = []int{30, 20, 8}

var attrPattern = regexp.MustCompile(`^(in|curr|power|temp|fan|pwm)(\d+)(?:_([a-z_]+))?$`)

var knownItems = map[string]bool{
	"": true, "input": true, "min": true, "max": true, "crit": true,
	"lcrit": true, "average": true, "lowest": true, "highest": true,
	"alarm": true, "target": true, "enable": true, "label": true,
}

// Reading is one attribute of a chip.
type Reading struct {
	Kind  string
	Index string
	Item  string
	Path  string
	Raw   int64
	// Text holds the content of label attributes.
	Text string
	Err  error
}

// Name is the attribute name without the chip path.
func (r Reading) Name() string {
	if r.Item == "" {
		return r.Kind + r.Index
	}
	return r.Kind + r.Index + "_" + r.Item
}

// Value formats the reading in the unit of its kind.
func (r Reading) Value() string {
	switch {
	case r.Err != nil:
		return "-"
	case r.Item == "label":
		return r.Text
	case r.Item == "alarm" || r.Item == "enable":
		return fmt.Sprintf("%d", r.Raw)
	}
	switch r.Kind {
	case "temp":
		return fmt.Sprintf("%.2f °C", float64(r.Raw)/1000)
	case "in":
		return fmt.Sprintf("%.3f V", float64(r.Raw)/1000)
	case "curr":
		return fmt.Sprintf("%.3f A", float64(r.Raw)/1000)
	case "power":
		return fmt.Sprintf("%.3f W", float64(r.Raw)/1e6)
	case "fan":
		return fmt.Sprintf("%d RPM", r.Raw)
	default:
		return fmt.Sprintf("%d", r.Raw)
	}
}

func (r *Reading) load() {
	if r.Item == "label" {
		data, err := os.ReadFile(r.Path)
		r.Text, r.Err = strings.TrimSpace(string(data)), err
		return
	}
	v, err := sysfs.ReadInt(r.Path)
	if err != nil {
		logging.Debug(logSubsystem, "read %s: %v", r.Path, err)
	}
	r.Raw, r.Err = v, err
}

// Info is the payload of one hwmon chip.
type Info struct {
	Chip     string
	Readings []Reading
}

// Sensor is the sensor panel.
type Sensor struct {
	*subsystem.Base[Info]
}

// Options configures New.
type Options struct {
	Root   string
	Filter []string
}

// New returns an unloaded sensor subsystem.
func New(opts Options) *Sensor {
	topts := tree.Options[Info]{
		Filter: subsystem.MatchAny(opts.Filter),
		OnFile: addFile,
	}
	return &Sensor{Base: subsystem.NewBase(subsystem.Sensor, opts.Root, topts, refresh)}
}

func addFile(n *tree.Node[Info], name, path string) {
	if name == "name" {
		n.Payload.Chip = sysfs.StringOr(n.Path, "name", "")
		return
	}
	m := attrPattern.FindStringSubmatch(name)
	if m == nil || !knownItems[m[3]] {
		return
	}
	r := Reading{Kind: m[1], Index: m[2], Item: m[3], Path: path}
	r.load()
	n.Payload.Readings = append(n.Payload.Readings, r)
}

func refresh(h tree.Handle, n *tree.Node[Info]) error {
	for i := range n.Payload.Readings {
		n.Payload.Readings[i].load()
	}
	return nil
}

// Header returns the column titles.
func (s *Sensor) Header() string {
	return subsystem.Columns(widths, "Name", "Chip", "Readings")
}

// Lines returns one row per visible chip followed, when the chip is
// expanded, by one row per reading. Reading rows carry no handle.
func (s *Sensor) Lines() []render.Line {
	nodes := s.Flatten(func(prefix string, n *tree.Node[Info]) (string, bool) {
		return subsystem.Columns(widths,
			prefix+n.Name,
			subsystem.StringOrDash(n.Payload.Chip),
			fmt.Sprintf("%d", len(n.Payload.Readings))), false
	})

	lines := make([]render.Line, 0, len(nodes))
	for _, l := range nodes {
		lines = append(lines, l)
		n := s.Tree().Node(l.Handle)
		if !n.Expanded {
			continue
		}
		prefix := render.Continuation(l.Prefix) + "    "
		for _, r := range n.Payload.Readings {
			lines = append(lines, render.Line{
				Handle: tree.NoHandle,
				Depth:  n.Depth + 1,
				Prefix: prefix,
				Text:   prefix + subsystem.Column(r.Name(), 18) + " " + r.Value(),
			})
		}
	}
	return lines
}

// Dump prints every reading of every chip.
func (s *Sensor) Dump(w io.Writer) error {
	if err := s.Err(); err != nil {
		return err
	}
	fmt.Fprintf(w, "\nSensor Information:\n")
	fmt.Fprintf(w, "******************\n")
	err := s.Tree().ForEach(func(h tree.Handle, n *tree.Node[Info]) error {
		if len(n.Payload.Readings) == 0 {
			return nil
		}
		fmt.Fprintf(w, "%s (%s):\n", n.Name, subsystem.StringOrDash(n.Payload.Chip))
		for _, r := range n.Payload.Readings {
			item := r.Item
			if item == "" {
				item = "value"
			}
			if _, err := fmt.Fprintf(w, "\t'%s' %s sensor %s\t\t%s\n", r.Kind, r.Index, item, r.Value()); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "\n\n")
	return err
}
