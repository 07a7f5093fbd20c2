package manifest

import (
	"testing"

	"github.com/sketchflow/sketchflow/pkg/diagram"
	"github.com/sketchflow/sketchflow/pkg/element"
	"github.com/sketchflow/sketchflow/pkg/errors"
)

const sampleManifest = `
title = "Order Flow"

[layout]
h_gap = 250

[[sequential]]
group = "intake"
nodes = ["Receive", "Validate", "Enqueue"]

[[hub]]
hub = "Router"
spokes = [
  "Billing",
  {label = "Audit Log", shape = "ellipse", fill = "#a5d8ff"},
]
`

func TestParse(t *testing.T) {
	m, err := Parse([]byte(sampleManifest))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if m.Title != "Order Flow" {
		t.Errorf("title = %q", m.Title)
	}
	if m.Layout.HGap != 250 {
		t.Errorf("h_gap = %g", m.Layout.HGap)
	}
	if m.Blocks() != 2 {
		t.Errorf("blocks = %d, want 2", m.Blocks())
	}

	if len(m.Sequential) != 1 || m.Sequential[0].Group != "intake" {
		t.Fatalf("sequential = %+v", m.Sequential)
	}
	if got := m.Sequential[0].Nodes[1].Label; got != "Validate" {
		t.Errorf("nodes[1] = %q", got)
	}

	spokes := m.Hub[0].Spokes
	if len(spokes) != 2 {
		t.Fatalf("spokes = %+v", spokes)
	}
	if spokes[0].Label != "Billing" || spokes[0].Shape != "" {
		t.Errorf("string spoke = %+v", spokes[0])
	}
	if spokes[1].Label != "Audit Log" || spokes[1].Shape != "ellipse" || spokes[1].Fill != "#a5d8ff" {
		t.Errorf("table spoke = %+v", spokes[1])
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"Syntax", `title = `},
		{"NoBlocks", `title = "empty"`},
		{"EmptySequential", "[[sequential]]\nnodes = []"},
		{"BadShape", "[[sequential]]\nnodes = [{label = \"x\", shape = \"arrow\"}]"},
		{"BadColor", "[[sequential]]\nnodes = [{label = \"x\", fill = \"blue-ish\"}]"},
		{"EmptyLabel", "[[hub]]\nhub = \"\"\nspokes = [\"a\"]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.in)); err == nil {
				t.Error("Parse accepted an invalid manifest")
			}
		})
	}
}

func TestParseFileMissing(t *testing.T) {
	if _, err := ParseFile("does/not/exist.toml"); !errors.Is(err, errors.ErrCodeInvalidManifest) {
		t.Errorf("error = %v, want INVALID_MANIFEST", err)
	}
}

func TestBuild(t *testing.T) {
	m, err := Parse([]byte(sampleManifest))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	b := diagram.New()
	if err := m.Build(b); err != nil {
		t.Fatalf("Build: %v", err)
	}

	// 3 chain + 3 hub shapes, each with a label, plus 2 + 2 connectors.
	if b.Len() != 16 {
		t.Errorf("elements = %d, want 16", b.Len())
	}

	groups := b.Groups()
	if len(groups) != 1 || groups[0].Name != "intake" {
		t.Fatalf("groups = %+v, want the intake group", groups)
	}
	// The group holds the chain's shapes, labels and connectors.
	if len(groups[0].Members) != 8 {
		t.Errorf("intake members = %d, want 8", len(groups[0].Members))
	}
}

func TestBuildStacksBlocks(t *testing.T) {
	m, err := Parse([]byte(sampleManifest))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	b := diagram.New()
	if err := m.Build(b); err != nil {
		t.Fatalf("Build: %v", err)
	}

	var chainBottom, hubTop float64
	for _, e := range b.Elements() {
		if !e.IsShape() {
			continue
		}
		if len(e.GroupIDs) > 0 { // the chain is the grouped block
			if e.Bottom() > chainBottom {
				chainBottom = e.Bottom()
			}
		} else if hubTop == 0 || e.Y < hubTop {
			hubTop = e.Y
		}
	}
	if hubTop <= chainBottom {
		t.Errorf("hub block top %g overlaps chain bottom %g", hubTop, chainBottom)
	}
}

func TestBuildAppliesSpacingOverride(t *testing.T) {
	m, err := Parse([]byte(sampleManifest))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	b := diagram.New()
	if err := m.Build(b); err != nil {
		t.Fatalf("Build: %v", err)
	}

	// First two chain shapes sit 250 apart per the [layout] override.
	var xs []float64
	for _, e := range b.Elements() {
		if e.IsShape() && len(e.GroupIDs) > 0 {
			xs = append(xs, e.X)
		}
	}
	if len(xs) < 2 || xs[1]-xs[0] != 250 {
		t.Errorf("chain xs = %v, want 250 apart", xs)
	}
}

func TestDocument(t *testing.T) {
	m, err := Parse([]byte(sampleManifest))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	doc, err := m.Document()
	if err != nil {
		t.Fatalf("Document: %v", err)
	}
	if doc.Title != "Order Flow" {
		t.Errorf("title = %q", doc.Title)
	}
	if len(doc.Elements) != 16 {
		t.Errorf("elements = %d, want 16", len(doc.Elements))
	}

	// The override spoke kept its ellipse kind and fill.
	found := false
	for _, e := range doc.Elements {
		if e.Type == element.TypeEllipse && e.Style.FillColor == "#a5d8ff" {
			found = true
		}
	}
	if !found {
		t.Error("styled spoke not found in the document")
	}
}

func TestDocumentParallel(t *testing.T) {
	src := `
title = "Fan"

[[parallel]]
input = "Split"
paths = ["W1", "W2"]
output = "Join"
`
	m, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	doc, err := m.Document()
	if err != nil {
		t.Fatalf("Document: %v", err)
	}
	// 4 shapes + 4 labels + 4 connectors.
	if len(doc.Elements) != 12 {
		t.Errorf("elements = %d, want 12", len(doc.Elements))
	}
}
