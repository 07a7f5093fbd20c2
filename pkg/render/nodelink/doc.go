// Package nodelink renders diagram documents as directed node-link
// graphs using Graphviz.
//
// The renderer projects a document onto its connector structure: shapes
// become boxes (or ellipses) labeled with their contained text, arrows
// become edges. Positions computed by the layout engine are ignored;
// Graphviz lays the graph out on its own. This makes the output a quick
// structural review format, not a faithful rendering of the scene.
//
// Rendering happens in two stages:
//
//	dot := nodelink.ToDOT(doc, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(dot)
//
// SVG rendering uses the embedded Graphviz engine and needs no external
// tooling. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
