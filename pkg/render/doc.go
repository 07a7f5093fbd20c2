// Package render provides output rendering for diagram documents.
//
// # Overview
//
// This package contains the rendering pipeline that transforms assembled
// diagram documents into output artifacts. It provides:
//
//   - Generic format conversion (SVG to PDF/PNG)
//   - Excalidraw scene files (in [excalidraw] subpackage)
//   - Node-link connector graphs (in [nodelink] subpackage)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). These are used by the
// node-link renderer.
//
//	svg, err := nodelink.RenderSVG(dot)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// # Excalidraw Scenes
//
// The [excalidraw] subpackage serializes documents into the Excalidraw
// scene file format, the primary output of the generation pipeline. The
// result opens directly in the editor with element bindings intact.
//
//	data, err := excalidraw.Marshal(doc)
//
// # Node-Link Diagrams
//
// The [nodelink] subpackage renders the document's connector graph as a
// traditional directed diagram using Graphviz. Shapes appear as boxes
// connected by arrows, useful for quick structural review without
// opening the editor.
//
//	dot := nodelink.ToDOT(doc, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(dot)
//
// [excalidraw]: github.com/sketchflow/sketchflow/pkg/render/excalidraw
// [nodelink]: github.com/sketchflow/sketchflow/pkg/render/nodelink
package render
