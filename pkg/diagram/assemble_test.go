package diagram

import (
	"reflect"
	"strings"
	"testing"

	"github.com/sketchflow/sketchflow/pkg/element"
	"github.com/sketchflow/sketchflow/pkg/errors"
)

func buildSmallFlow(t *testing.T) *Builder {
	t.Helper()
	b := New()
	start, _, err := b.NewLabeledShape(element.TypeRectangle, "Start", 50, 50, 120, 60, element.DefaultStyle())
	if err != nil {
		t.Fatalf("NewLabeledShape: %v", err)
	}
	end, _, err := b.NewLabeledShape(element.TypeRectangle, "End", 250, 50, 120, 60, element.DefaultStyle())
	if err != nil {
		t.Fatalf("NewLabeledShape: %v", err)
	}
	if _, err := b.Connect(start.ID, end.ID, element.DefaultStyle()); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	return b
}

func TestAssemble(t *testing.T) {
	b := buildSmallFlow(t)

	doc, err := b.Assemble("Flow")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	if doc.Title != "Flow" {
		t.Errorf("title = %q", doc.Title)
	}
	if len(doc.Elements) != 5 {
		t.Errorf("elements = %d, want 5 (2 shapes, 2 texts, 1 arrow)", len(doc.Elements))
	}
}

func TestAssembleDefaultTitle(t *testing.T) {
	b := buildSmallFlow(t)
	doc, err := b.Assemble("")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if doc.Title != DefaultTitle {
		t.Errorf("title = %q, want %q", doc.Title, DefaultTitle)
	}
}

func TestAssembleIdempotent(t *testing.T) {
	b := buildSmallFlow(t)

	first, err := b.Assemble("Flow")
	if err != nil {
		t.Fatalf("first Assemble: %v", err)
	}
	second, err := b.Assemble("Flow")
	if err != nil {
		t.Fatalf("second Assemble: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("assembling an unmodified builder twice must yield identical documents")
	}
}

func TestAssembleEmptyDocument(t *testing.T) {
	doc, err := New().Assemble("Empty")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(doc.Elements) != 0 {
		t.Errorf("elements = %d, want 0", len(doc.Elements))
	}
}

func TestValidateReportsAllViolations(t *testing.T) {
	b := buildSmallFlow(t)
	doc, err := b.Assemble("Flow")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	// Corrupt the document in two independent ways: a dangling arrow
	// endpoint and a dangling containment reference.
	for i := range doc.Elements {
		e := &doc.Elements[i]
		if e.IsConnector() {
			e.EndID = "ghost-arrow-target"
		}
		if e.IsShape() && e.ContainedTextID != "" {
			e.ContainedTextID = "ghost-text"
			break
		}
	}

	err = doc.Validate()
	ve, ok := errors.AsValidation(err)
	if !ok {
		t.Fatalf("Validate = %v, want ValidationError", err)
	}
	if len(ve.Violations) < 2 {
		t.Fatalf("violations = %v, want every problem reported, not just the first", ve.Violations)
	}
}

func TestValidateMutualContainment(t *testing.T) {
	b := New()
	shape, _ := b.NewShape(element.TypeRectangle, 0, 0, 120, 60, element.DefaultStyle())
	text, _ := b.NewText("x", 0, 0, 16)
	if err := b.BindText(shape, text); err != nil {
		t.Fatalf("BindText: %v", err)
	}

	doc, err := b.Assemble("ok")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	// Break one side of the mutual reference.
	for i := range doc.Elements {
		if doc.Elements[i].Type == element.TypeText {
			doc.Elements[i].ContainerID = ""
		}
	}

	err = doc.Validate()
	ve, ok := errors.AsValidation(err)
	if !ok {
		t.Fatalf("Validate = %v, want ValidationError", err)
	}
	found := false
	for _, v := range ve.Violations {
		if strings.Contains(v, "disagree on containment") {
			found = true
		}
	}
	if !found {
		t.Errorf("violations = %v, want containment disagreement", ve.Violations)
	}
}

func TestValidateGroupCycle(t *testing.T) {
	b := New()
	g1 := b.StartGroup("outer")
	g2 := b.StartGroup("inner")
	b.NewShape(element.TypeRectangle, 0, 0, 10, 10, element.DefaultStyle())
	b.EndGroup()
	b.EndGroup()

	doc, err := b.Assemble("grouped")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	// Force a cycle: outer's parent becomes inner, inner's parent is outer.
	for i := range doc.Groups {
		if doc.Groups[i].ID == g1 {
			doc.Groups[i].Parent = g2
		}
	}

	err = doc.Validate()
	ve, ok := errors.AsValidation(err)
	if !ok {
		t.Fatalf("Validate = %v, want ValidationError for group cycle", err)
	}
	found := false
	for _, v := range ve.Violations {
		if strings.Contains(v, "contains itself") {
			found = true
		}
	}
	if !found {
		t.Errorf("violations = %v, want a group cycle report", ve.Violations)
	}
}

func TestValidateSelfParentGroup(t *testing.T) {
	doc := Document{
		Title:  "t",
		Groups: []Group{{ID: "g1", Parent: "g1"}},
	}
	if _, ok := errors.AsValidation(doc.Validate()); !ok {
		t.Fatal("a group that is its own parent must fail validation")
	}
}

func TestValidateDuplicateIDs(t *testing.T) {
	e := element.Element{
		ID: "dup", Type: element.TypeRectangle,
		Width: 10, Height: 10,
		Style: element.DefaultStyle(),
	}
	doc := Document{Title: "t", Elements: []element.Element{e, e}}

	ve, ok := errors.AsValidation(doc.Validate())
	if !ok {
		t.Fatal("duplicate element ids must fail validation")
	}
	found := false
	for _, v := range ve.Violations {
		if strings.Contains(v, "duplicate element id") {
			found = true
		}
	}
	if !found {
		t.Errorf("violations = %v", ve.Violations)
	}
}

func TestValidateGroupMemberExistence(t *testing.T) {
	doc := Document{
		Title:  "t",
		Groups: []Group{{ID: "g1", Members: []string{"missing"}}},
	}
	ve, ok := errors.AsValidation(doc.Validate())
	if !ok {
		t.Fatal("missing group members must fail validation")
	}
	if len(ve.Violations) != 1 {
		t.Errorf("violations = %v", ve.Violations)
	}
}
