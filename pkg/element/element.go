// Package element defines the visual primitives of a sketchflow diagram.
//
// A diagram is an ordered sequence of elements. Each element is one of four
// variants - text, rectangle, ellipse, or arrow - discriminated by its Type
// tag. Shared geometry, styling and binding state live on the Element struct
// itself; variant-specific fields are populated only for the matching type,
// so validation logic can switch exhaustively over the tag.
//
// Elements are value objects after creation. The only mutations permitted in
// normal operation are the binding fields (ContainerID, ContainedTextID,
// bound refs and arrow geometry) written by the binders in pkg/diagram.
package element

import (
	"errors"
	"slices"
)

var (
	// ErrInvalidElementID is returned by [Element.Validate] when the element
	// has an empty identifier. All elements must have non-empty identifiers.
	ErrInvalidElementID = errors.New("element ID must not be empty")

	// ErrInvalidElementType is returned by [Element.Validate] when the Type
	// tag is not one of the four supported variants.
	ErrInvalidElementType = errors.New("invalid element type")

	// ErrNonPositiveSize is returned by [Element.Validate] for text and shape
	// elements whose width or height is not strictly positive. Arrow sizes
	// are derived from endpoint geometry and may legitimately be zero.
	ErrNonPositiveSize = errors.New("width and height must be positive")

	// ErrMissingEndpoint is returned by [Element.Validate] when an arrow has
	// no start or end element reference. Arrows always bind two elements.
	ErrMissingEndpoint = errors.New("arrow requires start and end element IDs")

	// ErrShortPath is returned by [Element.Validate] when an arrow path has
	// fewer than two points. A route needs at least an origin and a tip.
	ErrShortPath = errors.New("arrow path requires at least two points")

	// ErrFocusOutOfRange is returned by [Element.Validate] when an anchor
	// focus offset lies outside [-1, 1].
	ErrFocusOutOfRange = errors.New("anchor focus must be in [-1, 1]")

	// ErrNegativeGap is returned by [Element.Validate] when an anchor gap is
	// negative. The gap is a clearance distance and cannot be negative.
	ErrNegativeGap = errors.New("anchor gap must not be negative")

	// ErrInvalidOpacity is returned by [Element.Validate] when opacity lies
	// outside [0, 100].
	ErrInvalidOpacity = errors.New("opacity must be in [0, 100]")
)

// Type discriminates the element variants.
type Type string

// Supported element variants.
const (
	TypeText      Type = "text"
	TypeRectangle Type = "rectangle"
	TypeEllipse   Type = "ellipse"
	TypeArrow     Type = "arrow"
)

// Valid reports whether t is one of the supported variants.
func (t Type) Valid() bool {
	switch t {
	case TypeText, TypeRectangle, TypeEllipse, TypeArrow:
		return true
	}
	return false
}

// IsShape reports whether t is a container shape (rectangle or ellipse).
func (t Type) IsShape() bool { return t == TypeRectangle || t == TypeEllipse }

// IsConnector reports whether t is an arrow.
func (t Type) IsConnector() bool { return t == TypeArrow }

// BindingKind identifies the relation recorded by a bound reference.
type BindingKind string

// Relation kinds between bound elements.
const (
	// BindContainsText marks a shape's reference to the text it contains,
	// and the text's back-reference to its container.
	BindContainsText BindingKind = "contains-text"
	// BindArrowStart marks the relation between an arrow and the element
	// its tail is attached to.
	BindArrowStart BindingKind = "connector-start"
	// BindArrowEnd marks the relation between an arrow and the element
	// its head is attached to.
	BindArrowEnd BindingKind = "connector-end"
)

// BoundRef records that another element references this one.
// Both sides of a binding must agree: the binder that writes an arrow's
// endpoint also registers the matching BoundRef on the endpoint element.
type BoundRef struct {
	ElementID string      `json:"element_id" bson:"element_id"`
	Kind      BindingKind `json:"kind" bson:"kind"`
}

// Point is a coordinate pair. Arrow paths store points relative to the
// arrow's own origin; everything else is document space.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Anchor describes where a connector attaches to an endpoint element.
// Focus selects the attachment point along the element boundary (0 is
// center-aligned, the extremes shift towards the element's edges) and Gap
// is the clearance distance kept between the boundary and the arrow tip.
type Anchor struct {
	Focus float64 `json:"focus" bson:"focus"`
	Gap   float64 `json:"gap" bson:"gap"`
}

// Element is one visual primitive in a diagram document.
//
// This is a discriminated union type - check Type to determine which
// variant fields are populated:
//
//	Text ("text"):
//	  - Text, FontSize: content and typography
//	  - ContainerID: the shape this text is nested inside ("" if standalone)
//
//	Shape ("rectangle", "ellipse"):
//	  - ContainedTextID: the text element nested inside ("" if none)
//	  - TopAlignText: request top-aligned instead of centered text placement
//
//	Arrow ("arrow"):
//	  - StartID, EndID: the bound endpoint elements
//	  - Points: route relative to the arrow origin (at least two points)
//	  - StartAnchor, EndAnchor: boundary attachment parameters
//
// Shared fields (all variants): ID, position, size, Style, GroupIDs
// (innermost group last), Bound (who references this element) and Order
// (the paint-order token issued at creation).
type Element struct {
	ID     string  `json:"id" bson:"id"`
	Type   Type    `json:"type" bson:"type"`
	X      float64 `json:"x" bson:"x"`
	Y      float64 `json:"y" bson:"y"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
	Style  Style   `json:"style" bson:"style"`
	Order  string  `json:"order" bson:"order"`

	GroupIDs []string   `json:"group_ids,omitempty" bson:"group_ids,omitempty"`
	Bound    []BoundRef `json:"bound,omitempty" bson:"bound,omitempty"`

	// Text-specific
	Text        string  `json:"text,omitempty" bson:"text,omitempty"`
	FontSize    float64 `json:"font_size,omitempty" bson:"font_size,omitempty"`
	ContainerID string  `json:"container_id,omitempty" bson:"container_id,omitempty"`

	// Shape-specific
	ContainedTextID string `json:"contained_text_id,omitempty" bson:"contained_text_id,omitempty"`
	TopAlignText    bool   `json:"top_align_text,omitempty" bson:"top_align_text,omitempty"`

	// Arrow-specific
	StartID     string  `json:"start_id,omitempty" bson:"start_id,omitempty"`
	EndID       string  `json:"end_id,omitempty" bson:"end_id,omitempty"`
	Points      []Point `json:"points,omitempty" bson:"points,omitempty"`
	StartAnchor Anchor  `json:"start_anchor,omitempty" bson:"start_anchor,omitempty"`
	EndAnchor   Anchor  `json:"end_anchor,omitempty" bson:"end_anchor,omitempty"`
}

// IsShape reports whether the element is a container shape.
func (e *Element) IsShape() bool { return e.Type.IsShape() }

// IsConnector reports whether the element is an arrow.
func (e *Element) IsConnector() bool { return e.Type.IsConnector() }

// Right returns the x coordinate of the element's right edge.
func (e *Element) Right() float64 { return e.X + e.Width }

// Bottom returns the y coordinate of the element's bottom edge.
func (e *Element) Bottom() float64 { return e.Y + e.Height }

// CenterX returns the horizontal center of the element's bounding box.
func (e *Element) CenterX() float64 { return e.X + e.Width/2 }

// CenterY returns the vertical center of the element's bounding box.
func (e *Element) CenterY() float64 { return e.Y + e.Height/2 }

// HasBoundRef reports whether the element already records a reference
// from peer id with the given kind.
func (e *Element) HasBoundRef(id string, kind BindingKind) bool {
	return slices.Contains(e.Bound, BoundRef{ElementID: id, Kind: kind})
}

// AddBoundRef records a reference from peer id with the given kind.
// Adding an already-recorded reference is a no-op, keeping Bound a set.
func (e *Element) AddBoundRef(id string, kind BindingKind) {
	if e.HasBoundRef(id, kind) {
		return
	}
	e.Bound = append(e.Bound, BoundRef{ElementID: id, Kind: kind})
}

// RemoveBoundRefs drops every reference recorded from peer id.
func (e *Element) RemoveBoundRefs(id string) {
	e.Bound = slices.DeleteFunc(e.Bound, func(r BoundRef) bool { return r.ElementID == id })
}

// Validate checks the element's variant invariants and returns nil if valid.
//
// Shared checks: non-empty ID, a known Type tag and opacity within [0, 100].
// Text and shape elements must have strictly positive width and height.
// Arrows must reference both endpoints, carry a path of at least two points
// and have anchors with focus in [-1, 1] and non-negative gap.
func (e *Element) Validate() error {
	if e.ID == "" {
		return ErrInvalidElementID
	}
	if !e.Type.Valid() {
		return ErrInvalidElementType
	}
	if e.Style.Opacity < 0 || e.Style.Opacity > 100 {
		return ErrInvalidOpacity
	}

	switch e.Type {
	case TypeText, TypeRectangle, TypeEllipse:
		if e.Width <= 0 || e.Height <= 0 {
			return ErrNonPositiveSize
		}
	case TypeArrow:
		if e.StartID == "" || e.EndID == "" {
			return ErrMissingEndpoint
		}
		if len(e.Points) < 2 {
			return ErrShortPath
		}
		for _, a := range []Anchor{e.StartAnchor, e.EndAnchor} {
			if a.Focus < -1 || a.Focus > 1 {
				return ErrFocusOutOfRange
			}
			if a.Gap < 0 {
				return ErrNegativeGap
			}
		}
	}

	return nil
}
