// Package manifest parses TOML diagram descriptions.
//
// A manifest declares a title, optional spacing overrides and an ordered
// list of pattern blocks. Each block names a topology pattern and the
// labeled nodes it arranges, optionally wrapped in a named group:
//
//	title = "Order Flow"
//
//	[[sequential]]
//	group = "intake"
//	nodes = ["Receive", "Validate", "Enqueue"]
//
//	[[hub]]
//	hub = "Router"
//	spokes = ["Billing", "Shipping", "Email"]
//
//	[[parallel]]
//	input = "Split"
//	paths = ["Worker 1", "Worker 2"]
//	output = "Join"
//
// Node entries are either plain label strings or inline tables carrying
// style overrides: {label = "Store", shape = "ellipse", fill = "#a5d8ff"}.
package manifest

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/sketchflow/sketchflow/pkg/element"
	"github.com/sketchflow/sketchflow/pkg/errors"
	"github.com/sketchflow/sketchflow/pkg/layout"
)

// Manifest is a parsed diagram description.
type Manifest struct {
	Title      string            `toml:"title"`
	Layout     Spacing           `toml:"layout"`
	Sequential []SequentialBlock `toml:"sequential"`
	Hub        []HubBlock        `toml:"hub"`
	Parallel   []ParallelBlock   `toml:"parallel"`
}

// Spacing carries optional layout overrides. Zero fields keep the
// layout package defaults.
type Spacing struct {
	HGap        float64 `toml:"h_gap"`
	VGap        float64 `toml:"v_gap"`
	ShapeWidth  float64 `toml:"shape_width"`
	ShapeHeight float64 `toml:"shape_height"`
}

// Config converts the overrides into a layout configuration.
func (s Spacing) Config() layout.Config {
	return layout.Config{
		HGap:        s.HGap,
		VGap:        s.VGap,
		ShapeWidth:  s.ShapeWidth,
		ShapeHeight: s.ShapeHeight,
	}
}

// SequentialBlock declares one left-to-right chain.
type SequentialBlock struct {
	Group string     `toml:"group"`
	Nodes []NodeSpec `toml:"nodes"`
}

// HubBlock declares one hub with its spokes.
type HubBlock struct {
	Group  string     `toml:"group"`
	Hub    NodeSpec   `toml:"hub"`
	Spokes []NodeSpec `toml:"spokes"`
}

// ParallelBlock declares one fan-out-fan-in flow.
type ParallelBlock struct {
	Group  string     `toml:"group"`
	Input  NodeSpec   `toml:"input"`
	Paths  []NodeSpec `toml:"paths"`
	Output NodeSpec   `toml:"output"`
}

// NodeSpec is one node entry. In TOML it is either a bare string (the
// label) or an inline table with optional shape and style fields.
type NodeSpec struct {
	Label       string
	Shape       string
	Fill        string
	StrokeWidth int
}

// UnmarshalTOML accepts both the string and the table form.
func (n *NodeSpec) UnmarshalTOML(v any) error {
	switch t := v.(type) {
	case string:
		n.Label = t
		return nil
	case map[string]any:
		if s, ok := t["label"].(string); ok {
			n.Label = s
		}
		if s, ok := t["shape"].(string); ok {
			n.Shape = s
		}
		if s, ok := t["fill"].(string); ok {
			n.Fill = s
		}
		if w, ok := t["stroke_width"].(int64); ok {
			n.StrokeWidth = int(w)
		}
		return nil
	default:
		return errors.New(errors.ErrCodeInvalidManifest, "node entry must be a string or a table, got %T", v)
	}
}

// node converts the spec into a layout node.
func (n NodeSpec) node() layout.Node {
	return layout.Node{
		Label:       n.Label,
		Shape:       element.Type(n.Shape),
		Fill:        n.Fill,
		StrokeWidth: n.StrokeWidth,
	}
}

// validate checks the node spec's fields without resolving defaults.
func (n NodeSpec) validate() error {
	if err := errors.ValidateLabel(n.Label); err != nil {
		return err
	}
	if n.Shape != "" && !element.Type(n.Shape).IsShape() {
		return errors.New(errors.ErrCodeInvalidManifest, "node %q: unknown shape kind %q", n.Label, n.Shape)
	}
	return errors.ValidateColor(n.Fill)
}

// Parse parses a TOML manifest and validates it.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "parse manifest")
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// ParseFile reads and parses a TOML manifest from disk.
func ParseFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "read manifest %s", path)
	}
	return Parse(data)
}

// Validate checks the manifest's declarations. It returns the first
// structural problem found; node labels and colors are checked for every
// block so the error names the offending entry.
func (m *Manifest) Validate() error {
	if err := errors.ValidateTitle(m.Title); err != nil {
		return err
	}
	if len(m.Sequential)+len(m.Hub)+len(m.Parallel) == 0 {
		return errors.New(errors.ErrCodeInvalidManifest, "manifest declares no pattern blocks")
	}
	for i, b := range m.Sequential {
		if len(b.Nodes) == 0 {
			return errors.New(errors.ErrCodeInvalidManifest, "sequential block %d has no nodes", i)
		}
		for _, n := range b.Nodes {
			if err := n.validate(); err != nil {
				return err
			}
		}
	}
	for _, b := range m.Hub {
		if err := b.Hub.validate(); err != nil {
			return err
		}
		for _, n := range b.Spokes {
			if err := n.validate(); err != nil {
				return err
			}
		}
	}
	for _, b := range m.Parallel {
		if err := b.Input.validate(); err != nil {
			return err
		}
		if err := b.Output.validate(); err != nil {
			return err
		}
		for _, n := range b.Paths {
			if err := n.validate(); err != nil {
				return err
			}
		}
	}
	return nil
}

// Blocks returns the number of pattern blocks the manifest declares.
func (m *Manifest) Blocks() int {
	return len(m.Sequential) + len(m.Hub) + len(m.Parallel)
}
