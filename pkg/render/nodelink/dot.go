package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/sketchflow/sketchflow/pkg/diagram"
	"github.com/sketchflow/sketchflow/pkg/element"
	"github.com/sketchflow/sketchflow/pkg/render"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes element ids and positions in node labels.
	// When false, only the label text is shown.
	Detailed bool
}

// ToDOT converts a document's connector graph to Graphviz DOT format.
// Every shape becomes one graph node labeled with its contained text;
// every arrow becomes one edge. Free text and unbound arrows are skipped.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF],
// or [RenderPNG].
func ToDOT(doc diagram.Document, opts Options) string {
	byID := make(map[string]*element.Element, len(doc.Elements))
	for i := range doc.Elements {
		byID[doc.Elements[i].ID] = &doc.Elements[i]
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for i := range doc.Elements {
		e := &doc.Elements[i]
		if !e.Type.IsShape() {
			continue
		}
		label := fmtLabel(e, byID, opts.Detailed)
		attrs := fmtAttrs(e, label)
		fmt.Fprintf(&buf, "  %q [%s];\n", e.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for i := range doc.Elements {
		e := &doc.Elements[i]
		if !e.Type.IsConnector() || e.StartID == "" || e.EndID == "" {
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.StartID, e.EndID)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(e *element.Element, byID map[string]*element.Element, detailed bool) string {
	label := e.ID
	if txt, ok := byID[e.ContainedTextID]; ok && txt.Text != "" {
		label = txt.Text
	}
	if !detailed {
		return label
	}
	return fmt.Sprintf("%s\nid: %s\nat: (%g, %g)", label, e.ID, e.X, e.Y)
}

func fmtAttrs(e *element.Element, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if e.Type == element.TypeEllipse {
		attrs = append(attrs, "shape=ellipse")
	}
	if e.Style.FillColor != element.ColorTransparent {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", e.Style.FillColor))
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with
// [render.ToPDF] or [render.ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPDF].
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPNG].
//
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
