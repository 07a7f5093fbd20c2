package diagram

import (
	"math"

	"github.com/sketchflow/sketchflow/pkg/element"
	"github.com/sketchflow/sketchflow/pkg/errors"
)

// DefaultArrowGap is the clearance kept between an arrow tip and the
// boundary of the element it binds to.
const DefaultArrowGap = 1.0

// textTopPadding is the inset applied when a shape requests top-aligned
// text placement instead of vertical centering.
const textTopPadding = 8.0

// BindText attaches text inside shape, implementing the text-in-shape
// containment contract: exactly one text element per shape, with both
// sides of the reference kept consistent.
//
// Preconditions: shape holds no contained text and text has no container.
// Violating either fails with a CONFLICT error - callers must UnbindText
// first. Unknown ids or wrong variants fail with INVALID_REFERENCE.
//
// On success the text is repositioned centered within the shape's
// bounding box (top-aligned vertically when the shape requests it), the
// mutual ContainerID/ContainedTextID references are written, and a
// contains-text bound ref is recorded on both elements. The text's
// original position is remembered so UnbindText can restore it.
func (b *Builder) BindText(shape, text *element.Element) error {
	if err := b.mustOwn(shape, "shape"); err != nil {
		return err
	}
	if err := b.mustOwn(text, "text"); err != nil {
		return err
	}
	if !shape.IsShape() {
		return errors.New(errors.ErrCodeInvalidReference, "element %s is not a shape", shape.ID)
	}
	if text.Type != element.TypeText {
		return errors.New(errors.ErrCodeInvalidReference, "element %s is not a text element", text.ID)
	}
	if shape.ContainedTextID != "" {
		return errors.New(errors.ErrCodeConflict, "shape %s already contains text %s", shape.ID, shape.ContainedTextID)
	}
	if text.ContainerID != "" {
		return errors.New(errors.ErrCodeConflict, "text %s is already contained in shape %s", text.ID, text.ContainerID)
	}

	b.prebind[text.ID] = element.Point{X: text.X, Y: text.Y}
	text.X = shape.CenterX() - text.Width/2
	if shape.TopAlignText {
		text.Y = shape.Y + textTopPadding
	} else {
		text.Y = shape.CenterY() - text.Height/2
	}

	shape.ContainedTextID = text.ID
	text.ContainerID = shape.ID
	shape.AddBoundRef(text.ID, element.BindContainsText)
	text.AddBoundRef(shape.ID, element.BindContainsText)
	return nil
}

// UnbindText releases the containment binding on shape, restoring both
// the shape and its text to their pre-bind state: references and bound
// refs are removed and the text moves back to the position it held
// before BindText centered it. Unbinding a shape that contains no text
// is a no-op.
func (b *Builder) UnbindText(shape *element.Element) error {
	if err := b.mustOwn(shape, "shape"); err != nil {
		return err
	}
	if shape.ContainedTextID == "" {
		return nil
	}

	text, ok := b.index[shape.ContainedTextID]
	if !ok {
		return errors.New(errors.ErrCodeInvalidReference,
			"shape %s references missing text %s", shape.ID, shape.ContainedTextID)
	}

	shape.RemoveBoundRefs(text.ID)
	text.RemoveBoundRefs(shape.ID)
	shape.ContainedTextID = ""
	text.ContainerID = ""
	if at, ok := b.prebind[text.ID]; ok {
		text.X = at.X
		text.Y = at.Y
		delete(b.prebind, text.ID)
	}
	return nil
}

// BindArrow binds an arrow between two endpoint elements, implementing
// the arrow-binding protocol: geometry derived from the endpoints and
// mutual references recorded on all sides.
//
// Anchor points are chosen along the segment connecting the two
// endpoints' centers, clipped to each endpoint's bounding box and pushed
// out by the configured gap. For horizontally aligned shapes this
// degenerates to the right-center of the start element and the
// left-center of the end element, which keeps sequential chains free of
// visual crossings.
//
// Re-binding an already bound arrow is permitted and fully replaces its
// endpoints, path and anchors; stale bound refs on the previous
// endpoints are removed first.
//
// Fails with INVALID_REFERENCE when an endpoint id does not exist in the
// document or names a connector.
func (b *Builder) BindArrow(arrow *element.Element, startID, endID string) error {
	if err := b.mustOwn(arrow, "arrow"); err != nil {
		return err
	}
	if !arrow.IsConnector() {
		return errors.New(errors.ErrCodeInvalidReference, "element %s is not an arrow", arrow.ID)
	}

	start, ok := b.index[startID]
	if !ok {
		return errors.New(errors.ErrCodeInvalidReference, "unknown start element %q", startID)
	}
	end, ok := b.index[endID]
	if !ok {
		return errors.New(errors.ErrCodeInvalidReference, "unknown end element %q", endID)
	}
	if start.IsConnector() || end.IsConnector() {
		return errors.New(errors.ErrCodeInvalidReference, "arrows cannot bind to other connectors")
	}

	// Re-binding replaces the previous binding entirely.
	b.releaseArrow(arrow)

	from := anchorPoint(start, end, DefaultArrowGap)
	to := anchorPoint(end, start, DefaultArrowGap)

	arrow.X = from.X
	arrow.Y = from.Y
	arrow.Width = math.Abs(to.X - from.X)
	arrow.Height = math.Abs(to.Y - from.Y)
	arrow.Points = []element.Point{{X: 0, Y: 0}, {X: to.X - from.X, Y: to.Y - from.Y}}
	arrow.StartID = start.ID
	arrow.EndID = end.ID
	arrow.StartAnchor = element.Anchor{Focus: 0, Gap: DefaultArrowGap}
	arrow.EndAnchor = element.Anchor{Focus: 0, Gap: DefaultArrowGap}

	start.AddBoundRef(arrow.ID, element.BindArrowStart)
	end.AddBoundRef(arrow.ID, element.BindArrowEnd)
	return nil
}

// releaseArrow removes the bound refs an arrow registered on its current
// endpoints, if any. Used before re-binding.
func (b *Builder) releaseArrow(arrow *element.Element) {
	for _, id := range []string{arrow.StartID, arrow.EndID} {
		if id == "" {
			continue
		}
		if peer, ok := b.index[id]; ok {
			peer.RemoveBoundRefs(arrow.ID)
		}
	}
	arrow.StartID = ""
	arrow.EndID = ""
}

// mustOwn verifies that the element pointer belongs to this builder's
// document. Binding elements from a different document would silently
// corrupt both, so it is rejected with INVALID_REFERENCE.
func (b *Builder) mustOwn(e *element.Element, role string) error {
	if e == nil {
		return errors.New(errors.ErrCodeInvalidReference, "%s element is nil", role)
	}
	if owned, ok := b.index[e.ID]; !ok || owned != e {
		return errors.New(errors.ErrCodeInvalidReference, "%s element %q is not part of this document", role, e.ID)
	}
	return nil
}

// anchorPoint computes where an arrow attaches to elem when routed
// towards the center of other. The segment from elem's center to other's
// center is clipped at elem's bounding box, then pushed outward by gap
// along the same direction.
func anchorPoint(elem, other *element.Element, gap float64) element.Point {
	cx, cy := elem.CenterX(), elem.CenterY()
	dx := other.CenterX() - cx
	dy := other.CenterY() - cy

	if dx == 0 && dy == 0 {
		// Coincident centers: fall back to the right edge.
		return element.Point{X: elem.Right() + gap, Y: cy}
	}

	// Scale factor that moves the center point onto the box boundary.
	t := math.Inf(1)
	if dx != 0 {
		t = (elem.Width / 2) / math.Abs(dx)
	}
	if dy != 0 {
		if ty := (elem.Height / 2) / math.Abs(dy); ty < t {
			t = ty
		}
	}

	length := math.Hypot(dx, dy)
	// Unit direction scaled by gap, so the tip clears the boundary.
	gx := dx / length * gap
	gy := dy / length * gap

	return element.Point{X: cx + dx*t + gx, Y: cy + dy*t + gy}
}
