package element

import (
	"errors"
	"testing"
)

func validShape() Element {
	return Element{
		ID:     "rect-1",
		Type:   TypeRectangle,
		X:      50,
		Y:      50,
		Width:  120,
		Height: 60,
		Style:  DefaultStyle(),
	}
}

func validArrow() Element {
	return Element{
		ID:          "arrow-1",
		Type:        TypeArrow,
		X:           170,
		Y:           80,
		Width:       80,
		Height:      0,
		Style:       DefaultStyle(),
		StartID:     "rect-1",
		EndID:       "rect-2",
		Points:      []Point{{X: 0, Y: 0}, {X: 80, Y: 0}},
		StartAnchor: Anchor{Focus: 0, Gap: 1},
		EndAnchor:   Anchor{Focus: 0, Gap: 1},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Element)
		base    func() Element
		wantErr error
	}{
		{name: "ValidShape", base: validShape, mutate: func(*Element) {}},
		{name: "ValidArrow", base: validArrow, mutate: func(*Element) {}},
		{
			name: "EmptyID", base: validShape,
			mutate:  func(e *Element) { e.ID = "" },
			wantErr: ErrInvalidElementID,
		},
		{
			name: "UnknownType", base: validShape,
			mutate:  func(e *Element) { e.Type = "triangle" },
			wantErr: ErrInvalidElementType,
		},
		{
			name: "ZeroWidth", base: validShape,
			mutate:  func(e *Element) { e.Width = 0 },
			wantErr: ErrNonPositiveSize,
		},
		{
			name: "NegativeHeight", base: validShape,
			mutate:  func(e *Element) { e.Height = -10 },
			wantErr: ErrNonPositiveSize,
		},
		{
			name: "OpacityTooHigh", base: validShape,
			mutate:  func(e *Element) { e.Style.Opacity = 101 },
			wantErr: ErrInvalidOpacity,
		},
		{
			name: "ArrowMissingStart", base: validArrow,
			mutate:  func(e *Element) { e.StartID = "" },
			wantErr: ErrMissingEndpoint,
		},
		{
			name: "ArrowMissingEnd", base: validArrow,
			mutate:  func(e *Element) { e.EndID = "" },
			wantErr: ErrMissingEndpoint,
		},
		{
			name: "ArrowSinglePoint", base: validArrow,
			mutate:  func(e *Element) { e.Points = e.Points[:1] },
			wantErr: ErrShortPath,
		},
		{
			name: "FocusOutOfRange", base: validArrow,
			mutate:  func(e *Element) { e.StartAnchor.Focus = 1.5 },
			wantErr: ErrFocusOutOfRange,
		},
		{
			name: "NegativeGap", base: validArrow,
			mutate:  func(e *Element) { e.EndAnchor.Gap = -1 },
			wantErr: ErrNegativeGap,
		},
		{
			name: "ArrowZeroHeightAllowed", base: validArrow,
			mutate: func(e *Element) { e.Height = 0 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := tt.base()
			tt.mutate(&e)
			err := e.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestGeometryHelpers(t *testing.T) {
	e := validShape()

	if got := e.Right(); got != 170 {
		t.Errorf("Right = %v, want 170", got)
	}
	if got := e.Bottom(); got != 110 {
		t.Errorf("Bottom = %v, want 110", got)
	}
	if got := e.CenterX(); got != 110 {
		t.Errorf("CenterX = %v, want 110", got)
	}
	if got := e.CenterY(); got != 80 {
		t.Errorf("CenterY = %v, want 80", got)
	}
}

func TestBoundRefSet(t *testing.T) {
	e := validShape()

	e.AddBoundRef("text-1", BindContainsText)
	e.AddBoundRef("arrow-1", BindArrowStart)
	e.AddBoundRef("text-1", BindContainsText) // duplicate is a no-op

	if len(e.Bound) != 2 {
		t.Fatalf("bound refs = %d, want 2", len(e.Bound))
	}
	if !e.HasBoundRef("text-1", BindContainsText) {
		t.Error("missing contains-text ref")
	}
	if e.HasBoundRef("text-1", BindArrowStart) {
		t.Error("kind should be part of the set identity")
	}

	e.RemoveBoundRefs("text-1")
	if e.HasBoundRef("text-1", BindContainsText) {
		t.Error("RemoveBoundRefs should drop all refs from the peer")
	}
	if !e.HasBoundRef("arrow-1", BindArrowStart) {
		t.Error("RemoveBoundRefs should not touch other peers")
	}
}

func TestTypePredicates(t *testing.T) {
	tests := []struct {
		typ       Type
		valid     bool
		shape     bool
		connector bool
	}{
		{TypeText, true, false, false},
		{TypeRectangle, true, true, false},
		{TypeEllipse, true, true, false},
		{TypeArrow, true, false, true},
		{Type("triangle"), false, false, false},
	}

	for _, tt := range tests {
		if got := tt.typ.Valid(); got != tt.valid {
			t.Errorf("%s.Valid() = %v, want %v", tt.typ, got, tt.valid)
		}
		if got := tt.typ.IsShape(); got != tt.shape {
			t.Errorf("%s.IsShape() = %v, want %v", tt.typ, got, tt.shape)
		}
		if got := tt.typ.IsConnector(); got != tt.connector {
			t.Errorf("%s.IsConnector() = %v, want %v", tt.typ, got, tt.connector)
		}
	}
}

func TestStyleBuilders(t *testing.T) {
	s := DefaultStyle()
	if s.FillColor != ColorTransparent {
		t.Errorf("default fill = %q, want transparent", s.FillColor)
	}

	filled := s.WithFill(ColorFillAmber)
	if filled.FillColor != ColorFillAmber {
		t.Errorf("WithFill = %q", filled.FillColor)
	}
	if s.FillColor != ColorTransparent {
		t.Error("WithFill must not mutate the receiver")
	}

	dashed := s.Dashed().WithStrokeWidth(4)
	if dashed.StrokeStyle != StrokeDashed || dashed.StrokeWidth != 4 {
		t.Errorf("builder chain = %+v", dashed)
	}
}
