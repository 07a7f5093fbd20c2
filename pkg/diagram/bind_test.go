package diagram

import (
	"testing"

	"github.com/sketchflow/sketchflow/pkg/element"
	"github.com/sketchflow/sketchflow/pkg/errors"
)

func TestBindTextCentersContent(t *testing.T) {
	b := New()
	shape, _ := b.NewShape(element.TypeRectangle, 50, 50, 120, 60, element.DefaultStyle())
	text, _ := b.NewText("Go", 0, 0, 16)

	if err := b.BindText(shape, text); err != nil {
		t.Fatalf("BindText: %v", err)
	}

	if shape.ContainedTextID != text.ID {
		t.Errorf("shape.ContainedTextID = %q, want %q", shape.ContainedTextID, text.ID)
	}
	if text.ContainerID != shape.ID {
		t.Errorf("text.ContainerID = %q, want %q", text.ContainerID, shape.ID)
	}
	if !shape.HasBoundRef(text.ID, element.BindContainsText) {
		t.Error("shape missing contains-text bound ref")
	}
	if !text.HasBoundRef(shape.ID, element.BindContainsText) {
		t.Error("text missing contains-text bound ref")
	}

	wantX := shape.CenterX() - text.Width/2
	wantY := shape.CenterY() - text.Height/2
	if text.X != wantX || text.Y != wantY {
		t.Errorf("text at (%g, %g), want centered (%g, %g)", text.X, text.Y, wantX, wantY)
	}
}

func TestBindTextTopAligned(t *testing.T) {
	b := New()
	shape, _ := b.NewShape(element.TypeRectangle, 0, 0, 200, 100, element.DefaultStyle())
	shape.TopAlignText = true
	text, _ := b.NewText("Header", 0, 0, 16)

	if err := b.BindText(shape, text); err != nil {
		t.Fatalf("BindText: %v", err)
	}
	if want := shape.Y + textTopPadding; text.Y != want {
		t.Errorf("text.Y = %g, want top-aligned %g", text.Y, want)
	}
	if want := shape.CenterX() - text.Width/2; text.X != want {
		t.Errorf("text.X = %g, want horizontally centered %g", text.X, want)
	}
}

func TestBindTextConflicts(t *testing.T) {
	b := New()
	shape, _ := b.NewShape(element.TypeRectangle, 0, 0, 120, 60, element.DefaultStyle())
	other, _ := b.NewShape(element.TypeRectangle, 200, 0, 120, 60, element.DefaultStyle())
	text, _ := b.NewText("one", 0, 0, 16)
	spare, _ := b.NewText("two", 0, 0, 16)

	if err := b.BindText(shape, text); err != nil {
		t.Fatalf("BindText: %v", err)
	}

	// Occupied shape slot.
	if err := b.BindText(shape, spare); !errors.Is(err, errors.ErrCodeConflict) {
		t.Errorf("rebinding occupied shape = %v, want CONFLICT", err)
	}
	// Already contained text.
	if err := b.BindText(other, text); !errors.Is(err, errors.ErrCodeConflict) {
		t.Errorf("rebinding contained text = %v, want CONFLICT", err)
	}

	// Unbind then rebind succeeds.
	if err := b.UnbindText(shape); err != nil {
		t.Fatalf("UnbindText: %v", err)
	}
	if err := b.BindText(shape, spare); err != nil {
		t.Fatalf("BindText after unbind: %v", err)
	}
}

func TestUnbindTextRoundTrip(t *testing.T) {
	b := New()
	shape, _ := b.NewShape(element.TypeRectangle, 500, 500, 120, 60, element.DefaultStyle())
	text, _ := b.NewText("label", 10, 20, 16)

	if err := b.BindText(shape, text); err != nil {
		t.Fatalf("BindText: %v", err)
	}
	if text.X == 10 && text.Y == 20 {
		t.Fatal("binding should have moved the text into the shape")
	}
	if err := b.UnbindText(shape); err != nil {
		t.Fatalf("UnbindText: %v", err)
	}

	if shape.ContainedTextID != "" {
		t.Error("shape should be back to its unbound state")
	}
	if text.ContainerID != "" {
		t.Error("text should be back to its unbound state")
	}
	if len(shape.Bound) != 0 || len(text.Bound) != 0 {
		t.Error("bound refs should be removed on unbind")
	}
	if text.X != 10 || text.Y != 20 {
		t.Errorf("text at (%g, %g) after unbind, want pre-bind (10, 20)", text.X, text.Y)
	}

	// Unbinding an empty slot is a no-op.
	if err := b.UnbindText(shape); err != nil {
		t.Errorf("UnbindText on empty slot = %v, want nil", err)
	}

	// A fresh binding after the round trip records the new position.
	if err := b.BindText(shape, text); err != nil {
		t.Fatalf("rebind: %v", err)
	}
	if err := b.UnbindText(shape); err != nil {
		t.Fatalf("second unbind: %v", err)
	}
	if text.X != 10 || text.Y != 20 {
		t.Errorf("text at (%g, %g) after second round trip, want (10, 20)", text.X, text.Y)
	}
}

func TestBindTextRejectsWrongVariants(t *testing.T) {
	b := New()
	shape, _ := b.NewShape(element.TypeRectangle, 0, 0, 120, 60, element.DefaultStyle())
	text, _ := b.NewText("x", 0, 0, 16)
	otherText, _ := b.NewText("y", 0, 0, 16)

	if err := b.BindText(text, otherText); !errors.Is(err, errors.ErrCodeInvalidReference) {
		t.Errorf("binding into text = %v, want INVALID_REFERENCE", err)
	}
	if err := b.BindText(shape, shape); !errors.Is(err, errors.ErrCodeInvalidReference) {
		t.Errorf("binding shape as text = %v, want INVALID_REFERENCE", err)
	}

	foreign := New()
	fShape, _ := foreign.NewShape(element.TypeRectangle, 0, 0, 120, 60, element.DefaultStyle())
	if err := b.BindText(fShape, text); !errors.Is(err, errors.ErrCodeInvalidReference) {
		t.Errorf("binding foreign shape = %v, want INVALID_REFERENCE", err)
	}
}

func TestBindArrowHorizontal(t *testing.T) {
	b := New()
	start, _ := b.NewShape(element.TypeRectangle, 50, 50, 120, 60, element.DefaultStyle())
	end, _ := b.NewShape(element.TypeRectangle, 250, 50, 120, 60, element.DefaultStyle())

	arrow, err := b.Connect(start.ID, end.ID, element.DefaultStyle())
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}

	// Horizontally aligned shapes anchor right-center → left-center.
	wantY := start.CenterY()
	if arrow.X != start.Right()+DefaultArrowGap || arrow.Y != wantY {
		t.Errorf("arrow origin = (%g, %g), want (%g, %g)",
			arrow.X, arrow.Y, start.Right()+DefaultArrowGap, wantY)
	}
	if len(arrow.Points) != 2 {
		t.Fatalf("path points = %d, want 2", len(arrow.Points))
	}
	if arrow.Points[0] != (element.Point{}) {
		t.Errorf("path must start at the arrow origin, got %+v", arrow.Points[0])
	}
	wantDX := (end.X - DefaultArrowGap) - (start.Right() + DefaultArrowGap)
	if arrow.Points[1].X != wantDX || arrow.Points[1].Y != 0 {
		t.Errorf("path tip = %+v, want {%g 0}", arrow.Points[1], wantDX)
	}

	if arrow.StartID != start.ID || arrow.EndID != end.ID {
		t.Error("arrow endpoint ids not recorded")
	}
	if !start.HasBoundRef(arrow.ID, element.BindArrowStart) {
		t.Error("start element missing connector-start bound ref")
	}
	if !end.HasBoundRef(arrow.ID, element.BindArrowEnd) {
		t.Error("end element missing connector-end bound ref")
	}
	if arrow.StartAnchor.Focus != 0 || arrow.StartAnchor.Gap != DefaultArrowGap {
		t.Errorf("start anchor = %+v", arrow.StartAnchor)
	}
}

func TestBindArrowDiagonalClipsBoundingBox(t *testing.T) {
	b := New()
	hub, _ := b.NewShape(element.TypeRectangle, 0, 0, 100, 100, element.DefaultStyle())
	spoke, _ := b.NewShape(element.TypeRectangle, 300, 300, 100, 100, element.DefaultStyle())

	arrow, err := b.Connect(hub.ID, spoke.ID, element.DefaultStyle())
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}

	// 45° direction: the clipped point leaves through the box corner
	// region, beyond the hub's bounds plus gap on both axes.
	if arrow.X <= hub.Right() || arrow.Y <= hub.Bottom() {
		t.Errorf("arrow origin (%g, %g) should clear the hub's boundary", arrow.X, arrow.Y)
	}
	tip := arrow.Points[1]
	if arrow.X+tip.X >= spoke.X || arrow.Y+tip.Y >= spoke.Y {
		t.Errorf("arrow tip (%g, %g) should stop before the spoke's boundary",
			arrow.X+tip.X, arrow.Y+tip.Y)
	}
}

func TestBindArrowInvalidReferences(t *testing.T) {
	b := New()
	shape, _ := b.NewShape(element.TypeRectangle, 0, 0, 120, 60, element.DefaultStyle())
	other, _ := b.NewShape(element.TypeRectangle, 200, 0, 120, 60, element.DefaultStyle())
	existing, _ := b.Connect(shape.ID, other.ID, element.DefaultStyle())

	tests := []struct {
		name     string
		startID  string
		endID    string
	}{
		{"UnknownStart", "ghost", other.ID},
		{"UnknownEnd", shape.ID, "ghost"},
		{"ConnectorEndpoint", shape.ID, existing.ID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := b.Connect(tt.startID, tt.endID, element.DefaultStyle()); !errors.Is(err, errors.ErrCodeInvalidReference) {
				t.Errorf("Connect = %v, want INVALID_REFERENCE", err)
			}
		})
	}
}

func TestRebindArrowReplacesBinding(t *testing.T) {
	b := New()
	a, _ := b.NewShape(element.TypeRectangle, 0, 0, 100, 50, element.DefaultStyle())
	c, _ := b.NewShape(element.TypeRectangle, 200, 0, 100, 50, element.DefaultStyle())
	d, _ := b.NewShape(element.TypeRectangle, 400, 0, 100, 50, element.DefaultStyle())

	arrow, err := b.Connect(a.ID, c.ID, element.DefaultStyle())
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}

	if err := b.BindArrow(arrow, c.ID, d.ID); err != nil {
		t.Fatalf("rebind: %v", err)
	}

	if arrow.StartID != c.ID || arrow.EndID != d.ID {
		t.Errorf("endpoints = %s→%s, want %s→%s", arrow.StartID, arrow.EndID, c.ID, d.ID)
	}
	// Old endpoint must not keep stale refs.
	if len(a.Bound) != 0 {
		t.Errorf("old start keeps refs: %v", a.Bound)
	}
	if !c.HasBoundRef(arrow.ID, element.BindArrowStart) {
		t.Error("new start missing connector-start ref")
	}
	if !d.HasBoundRef(arrow.ID, element.BindArrowEnd) {
		t.Error("new end missing connector-end ref")
	}

	// Idempotence with respect to final state: rebinding to the same
	// endpoints leaves a single ref pair in place.
	if err := b.BindArrow(arrow, c.ID, d.ID); err != nil {
		t.Fatalf("rebind same: %v", err)
	}
	if len(c.Bound) != 1 || len(d.Bound) != 1 {
		t.Errorf("refs after idempotent rebind: start=%v end=%v", c.Bound, d.Bound)
	}
}
