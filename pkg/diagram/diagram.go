// Package diagram implements the sketchflow document builder: element
// creation, the text-in-shape containment contract, the arrow-binding
// protocol, scoped grouping and final document assembly.
//
// A Builder owns one document under construction. Elements are created
// through the builder so that identifiers, paint-order tokens and group
// memberships are assigned consistently; after creation they are value
// objects whose binding fields are mutated only by the binders in this
// package. The builder is synchronous and single-writer: one goroutine
// drives one builder at a time, and independent builders never share state.
//
// # Usage
//
//	b := diagram.New()
//	b.StartGroup("flow")
//	start, _ := b.NewShape(element.TypeRectangle, 50, 50, 120, 60, element.DefaultStyle())
//	end, _ := b.NewShape(element.TypeRectangle, 250, 50, 120, 60, element.DefaultStyle())
//	b.Connect(start.ID, end.ID, element.DefaultStyle())
//	b.EndGroup()
//	doc, err := b.Assemble("My Flow")
package diagram

import (
	"unicode/utf8"

	"github.com/sketchflow/sketchflow/pkg/element"
	"github.com/sketchflow/sketchflow/pkg/errors"
)

// DefaultFontSize is the font size applied to text elements when the
// caller does not specify one.
const DefaultFontSize = 16

// DefaultTitle is used when a document is assembled without a title.
const DefaultTitle = "Generated Diagram"

// Approximate glyph metrics used to size text elements before a real
// text-measuring renderer sees them. The downstream editor resizes text
// on load, so a rough monospace-ish estimate is sufficient.
const (
	charWidthFactor  = 0.6
	lineHeightFactor = 1.25
)

// Group tracks one logical grouping of elements for later selection and
// movement as a unit. Members are element ids in creation order. Parent
// is the id of the enclosing group when the group was opened nested
// inside another one ("" for top-level groups).
type Group struct {
	ID      string   `json:"id" bson:"id"`
	Name    string   `json:"name,omitempty" bson:"name,omitempty"`
	Parent  string   `json:"parent,omitempty" bson:"parent,omitempty"`
	Members []string `json:"members" bson:"members"`
}

// Builder assembles a diagram document incrementally.
// The zero value is not usable - use New.
type Builder struct {
	alloc    *element.Allocator
	elements []*element.Element
	index    map[string]*element.Element
	groups   []*Group
	open     []*Group // stack of currently open groups, outermost first
	prebind  map[string]element.Point // text id → position before containment
}

// New creates an empty diagram builder with a fresh identifier allocator.
func New() *Builder {
	return &Builder{
		alloc:   element.NewAllocator(),
		index:   make(map[string]*element.Element),
		prebind: make(map[string]element.Point),
	}
}

// Len returns the number of elements created so far.
func (b *Builder) Len() int { return len(b.elements) }

// Element returns the element with the given id and true, or nil and
// false if the id is unknown. The returned pointer refers to the actual
// element, so binding mutations are visible to the builder.
func (b *Builder) Element(id string) (*element.Element, bool) {
	e, ok := b.index[id]
	return e, ok
}

// Elements returns a copy of the element sequence in creation order.
// Creation order is the paint order: later elements paint on top.
func (b *Builder) Elements() []element.Element {
	out := make([]element.Element, len(b.elements))
	for i, e := range b.elements {
		out[i] = *e
	}
	return out
}

// Groups returns a copy of every group opened on this builder, in the
// order the groups were started.
func (b *Builder) Groups() []Group {
	out := make([]Group, len(b.groups))
	for i, g := range b.groups {
		out[i] = *g
	}
	return out
}

// NewText creates a standalone text element at the given position.
// A fontSize of 0 selects [DefaultFontSize]. The element's size is
// estimated from the content; the external renderer refines it on load.
func (b *Builder) NewText(content string, x, y, fontSize float64) (*element.Element, error) {
	if err := errors.ValidateLabel(content); err != nil {
		return nil, err
	}
	if fontSize <= 0 {
		fontSize = DefaultFontSize
	}

	w, h := TextSize(content, fontSize)
	e := &element.Element{
		ID:       b.alloc.NextID("text"),
		Type:     element.TypeText,
		X:        x,
		Y:        y,
		Width:    w,
		Height:   h,
		Style:    element.DefaultStyle(),
		Text:     content,
		FontSize: fontSize,
	}
	b.register(e)
	return e, nil
}

// NewShape creates a rectangle or ellipse at the given position.
// Returns an INVALID_INPUT error for non-shape kinds or non-positive
// dimensions.
func (b *Builder) NewShape(kind element.Type, x, y, w, h float64, style element.Style) (*element.Element, error) {
	if !kind.IsShape() {
		return nil, errors.New(errors.ErrCodeInvalidInput, "kind %q is not a shape", kind)
	}
	if w <= 0 || h <= 0 {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, element.ErrNonPositiveSize,
			"shape size %gx%g", w, h)
	}

	prefix := "rect"
	if kind == element.TypeEllipse {
		prefix = "ellipse"
	}
	e := &element.Element{
		ID:     b.alloc.NextID(prefix),
		Type:   kind,
		X:      x,
		Y:      y,
		Width:  w,
		Height: h,
		Style:  style,
	}
	b.register(e)
	return e, nil
}

// NewLabeledShape creates a shape with a text element bound inside it.
// This is the common path for layout patterns: one call yields the shape,
// its contained text, and a consistent mutual binding between them.
func (b *Builder) NewLabeledShape(kind element.Type, label string, x, y, w, h float64, style element.Style) (*element.Element, *element.Element, error) {
	shape, err := b.NewShape(kind, x, y, w, h, style)
	if err != nil {
		return nil, nil, err
	}
	text, err := b.NewText(label, x, y, DefaultFontSize)
	if err != nil {
		return nil, nil, err
	}
	if err := b.BindText(shape, text); err != nil {
		return nil, nil, err
	}
	return shape, text, nil
}

// NewArrow creates an unbound arrow element. The arrow only becomes
// valid once [Builder.BindArrow] attaches it to two endpoints; prefer
// [Builder.Connect] unless custom styling between creation and binding
// is needed.
func (b *Builder) NewArrow(style element.Style) *element.Element {
	e := &element.Element{
		ID:    b.alloc.NextID("arrow"),
		Type:  element.TypeArrow,
		Style: style,
	}
	b.register(e)
	return e
}

// Connect creates an arrow and binds it from startID to endID.
// It fails with INVALID_REFERENCE if either endpoint does not exist or
// is itself a connector.
func (b *Builder) Connect(startID, endID string, style element.Style) (*element.Element, error) {
	arrow := b.NewArrow(style)
	if err := b.BindArrow(arrow, startID, endID); err != nil {
		return nil, err
	}
	return arrow, nil
}

// StartGroup opens a new group scope and returns its id. Every element
// created before the matching EndGroup joins the group. Groups nest:
// opening a group inside another records the outer group as parent, and
// elements created inside both carry both ids, innermost last.
func (b *Builder) StartGroup(name string) string {
	g := &Group{
		ID:   b.alloc.NextID("group"),
		Name: name,
	}
	if len(b.open) > 0 {
		g.Parent = b.open[len(b.open)-1].ID
	}
	b.groups = append(b.groups, g)
	b.open = append(b.open, g)
	return g.ID
}

// EndGroup closes the innermost open group.
// Returns a STATE_ERROR if no group is open.
func (b *Builder) EndGroup() error {
	if len(b.open) == 0 {
		return errors.New(errors.ErrCodeStateError, "no open group to end")
	}
	b.open = b.open[:len(b.open)-1]
	return nil
}

// OpenGroups returns the number of currently open group scopes.
func (b *Builder) OpenGroups() int { return len(b.open) }

// Clear discards every element and group and resets the identifier
// allocator. The builder is afterwards equivalent to a freshly created one.
func (b *Builder) Clear() {
	b.alloc.Reset()
	b.elements = nil
	b.index = make(map[string]*element.Element)
	b.groups = nil
	b.open = nil
	b.prebind = make(map[string]element.Point)
}

// register assigns the paint-order token, applies open group scopes and
// indexes the element. Every element creation funnels through here.
func (b *Builder) register(e *element.Element) {
	e.Order = b.alloc.NextOrderToken()
	for _, g := range b.open {
		e.GroupIDs = append(e.GroupIDs, g.ID)
		g.Members = append(g.Members, e.ID)
	}
	b.elements = append(b.elements, e)
	b.index[e.ID] = e
}

// TextSize estimates the rendered dimensions of a single-line label at
// the given font size.
func TextSize(content string, fontSize float64) (w, h float64) {
	runes := utf8.RuneCountInString(content)
	return float64(runes) * fontSize * charWidthFactor, fontSize * lineHeightFactor
}
