// Package pkg provides the core libraries for Sketchflow diagram generation.
//
// # Overview
//
// Sketchflow turns declarative TOML manifests into editable Excalidraw
// scenes. Diagrams are described as pattern blocks (sequential chains,
// hub-and-spoke stars, parallel fan-outs) and laid out automatically on
// a fixed grid, so a manifest diff maps directly onto a diagram diff.
//
// # Architecture
//
// The typical data flow through Sketchflow:
//
//	TOML Manifest
//	     ↓
//	[manifest] package (parse + validate pattern blocks)
//	     ↓
//	[layout] package (place shapes, connect them)
//	     ↓
//	[diagram] package (bind labels and arrows, assemble the document)
//	     ↓
//	[render] package (excalidraw scene, node-link DOT/SVG/PNG)
//
// # Quick Start
//
// Parse a manifest and render the scene:
//
//	import (
//	    "github.com/sketchflow/sketchflow/pkg/manifest"
//	    "github.com/sketchflow/sketchflow/pkg/render/excalidraw"
//	)
//
//	m, _ := manifest.ParseFile("flow.toml")
//	doc, _ := m.Document()
//	scene, _ := excalidraw.Marshal(doc)
//
// # Main Packages
//
// [element] - The element model: ids, geometry, styling, text and arrow
// bindings. Everything downstream manipulates these records.
//
// [diagram] - The builder: creates elements, binds contained text and
// arrow anchors, manages groups, and assembles validated documents.
//
// [layout] - Pattern engines that place shapes on the grid: Sequential,
// HubAndSpoke, and Parallel.
//
// [manifest] - TOML manifest parsing and the block-stacking build that
// turns declared patterns into one document.
//
// [render/excalidraw] - Converts documents into Excalidraw scene files.
//
// [render/nodelink] - Structural node-link projection via Graphviz.
//
// [pipeline] - Complete parse → layout → render pipeline with caching,
// used by both the CLI and the HTTP API.
//
// [cache] - Cache interface with file, Redis, and null backends plus
// content-addressed key derivation.
//
// [store] - Diagram persistence with MongoDB and in-memory backends.
//
// [observability] - Hook interfaces for instrumenting pipeline stages,
// cache traffic, and HTTP handling.
//
// [errors] - Structured errors with machine-readable codes shared by
// the CLI and API.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...       # All tests
//	go test ./pkg/layout    # Specific package
//	go test -run Example    # Examples only
//
// [element]: https://pkg.go.dev/github.com/sketchflow/sketchflow/pkg/element
// [diagram]: https://pkg.go.dev/github.com/sketchflow/sketchflow/pkg/diagram
// [layout]: https://pkg.go.dev/github.com/sketchflow/sketchflow/pkg/layout
// [manifest]: https://pkg.go.dev/github.com/sketchflow/sketchflow/pkg/manifest
// [render/excalidraw]: https://pkg.go.dev/github.com/sketchflow/sketchflow/pkg/render/excalidraw
// [render/nodelink]: https://pkg.go.dev/github.com/sketchflow/sketchflow/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/sketchflow/sketchflow/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/sketchflow/sketchflow/pkg/cache
// [store]: https://pkg.go.dev/github.com/sketchflow/sketchflow/pkg/store
// [observability]: https://pkg.go.dev/github.com/sketchflow/sketchflow/pkg/observability
// [errors]: https://pkg.go.dev/github.com/sketchflow/sketchflow/pkg/errors
package pkg
