// Package layout computes element positions for named topology patterns.
//
// Three patterns are supported: Sequential (a left-to-right chain),
// HubAndSpoke (one hub fanning out to a vertical column of spokes) and
// Parallel (fan-out from one input across parallel paths, fanning back
// into one output). Each pattern places container shapes with bound
// label text and creates the connectors that join them, all through a
// [diagram.Builder].
//
// Placement is deterministic: the same node list and configuration
// always produce the same positions. Only identifier values vary between
// runs. The engine trusts its own fixed-spacing arithmetic to avoid
// overlapping bounding boxes; externally supplied positions are not
// validated for overlap.
package layout

import (
	"github.com/sketchflow/sketchflow/pkg/diagram"
	"github.com/sketchflow/sketchflow/pkg/element"
	"github.com/sketchflow/sketchflow/pkg/errors"
)

// Default spacing and sizing constants. HGap and VGap are origin-to-origin
// distances between consecutive shapes, so the default sequential chain
// places shapes at x = 50, 250, 450, ...
const (
	DefaultHGap        = 200.0
	DefaultVGap        = 100.0
	DefaultShapeWidth  = 120.0
	DefaultShapeHeight = 60.0
	DefaultStartX      = 50.0
	DefaultStartY      = 50.0
)

// Pattern default shape kinds. The input and output terminals of the
// Parallel pattern render as ellipses so fan-out and fan-in points read
// differently from the worked paths between them.
const (
	defaultChainKind    = element.TypeRectangle
	defaultHubKind      = element.TypeRectangle
	defaultSpokeKind    = element.TypeRectangle
	defaultPathKind     = element.TypeRectangle
	defaultTerminalKind = element.TypeEllipse
)

// Config holds the spacing and sizing parameters for all patterns.
// Zero fields select the package defaults.
type Config struct {
	HGap        float64 // horizontal origin-to-origin distance
	VGap        float64 // vertical origin-to-origin distance
	ShapeWidth  float64
	ShapeHeight float64
	StartX      float64 // origin of the first (or hub/input) shape
	StartY      float64
}

// DefaultConfig returns the package default configuration.
func DefaultConfig() Config {
	return Config{
		HGap:        DefaultHGap,
		VGap:        DefaultVGap,
		ShapeWidth:  DefaultShapeWidth,
		ShapeHeight: DefaultShapeHeight,
		StartX:      DefaultStartX,
		StartY:      DefaultStartY,
	}
}

// WithDefaults returns a copy with zero fields filled in from the
// package defaults.
func (c Config) WithDefaults() Config {
	d := DefaultConfig()
	if c.HGap == 0 {
		c.HGap = d.HGap
	}
	if c.VGap == 0 {
		c.VGap = d.VGap
	}
	if c.ShapeWidth == 0 {
		c.ShapeWidth = d.ShapeWidth
	}
	if c.ShapeHeight == 0 {
		c.ShapeHeight = d.ShapeHeight
	}
	if c.StartX == 0 {
		c.StartX = d.StartX
	}
	if c.StartY == 0 {
		c.StartY = d.StartY
	}
	return c
}

// Node describes one logical node handed to a pattern: a label plus
// optional style overrides. The zero Shape selects the pattern's default
// kind (rectangle for chain/hub/path nodes, ellipse for the input and
// output terminals of the Parallel pattern).
type Node struct {
	Label       string
	Shape       element.Type
	Fill        string // optional fill color, "" keeps the default
	StrokeWidth int    // optional stroke width, 0 keeps the default
}

// style resolves the node's style overrides against the default style.
func (n Node) style() (element.Style, error) {
	s := element.DefaultStyle()
	if n.Fill != "" {
		if err := errors.ValidateColor(n.Fill); err != nil {
			return element.Style{}, err
		}
		s = s.WithFill(n.Fill)
	}
	if n.StrokeWidth > 0 {
		s = s.WithStrokeWidth(n.StrokeWidth)
	}
	return s, nil
}

// kind resolves the node's shape kind against a pattern default.
func (n Node) kind(fallback element.Type) (element.Type, error) {
	if n.Shape == "" {
		return fallback, nil
	}
	if !n.Shape.IsShape() {
		return "", errors.New(errors.ErrCodeInvalidPattern, "node %q: kind %q is not a shape", n.Label, n.Shape)
	}
	return n.Shape, nil
}

// Result collects the elements a pattern produced, separated by role and
// listed in creation order within each slice.
type Result struct {
	Shapes []*element.Element
	Texts  []*element.Element
	Arrows []*element.Element
}

// Engine runs topology patterns against one diagram builder.
type Engine struct {
	b   *diagram.Builder
	cfg Config
}

// NewEngine creates a layout engine writing into b. Zero config fields
// select the package defaults.
func NewEngine(b *diagram.Builder, cfg Config) *Engine {
	return &Engine{b: b, cfg: cfg.WithDefaults()}
}

// placeNode creates one labeled shape for a node at the given position.
func (e *Engine) placeNode(n Node, fallback element.Type, x, y float64, res *Result) (*element.Element, error) {
	kind, err := n.kind(fallback)
	if err != nil {
		return nil, err
	}
	style, err := n.style()
	if err != nil {
		return nil, err
	}
	shape, text, err := e.b.NewLabeledShape(kind, n.Label, x, y, e.cfg.ShapeWidth, e.cfg.ShapeHeight, style)
	if err != nil {
		return nil, err
	}
	res.Shapes = append(res.Shapes, shape)
	res.Texts = append(res.Texts, text)
	return shape, nil
}

// connect creates one arrow between two placed shapes.
func (e *Engine) connect(from, to *element.Element, res *Result) error {
	arrow, err := e.b.Connect(from.ID, to.ID, element.DefaultStyle())
	if err != nil {
		return err
	}
	res.Arrows = append(res.Arrows, arrow)
	return nil
}
