package pipeline

import (
	"encoding/json"

	"github.com/sketchflow/sketchflow/pkg/diagram"
	"github.com/sketchflow/sketchflow/pkg/errors"
	"github.com/sketchflow/sketchflow/pkg/render/excalidraw"
	"github.com/sketchflow/sketchflow/pkg/render/nodelink"
)

// renderFormat produces one artifact. The excalidraw and json formats
// are pure serialization; dot projects the connector graph; svg and png
// run Graphviz on that projection.
func renderFormat(doc diagram.Document, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatExcalidraw:
		return excalidraw.Marshal(doc)

	case FormatJSON:
		return json.MarshalIndent(doc, "", "  ")

	case FormatDOT:
		return []byte(nodelink.ToDOT(doc, nodelink.Options{Detailed: opts.Detailed})), nil

	case FormatSVG:
		dot := nodelink.ToDOT(doc, nodelink.Options{Detailed: opts.Detailed})
		return nodelink.RenderSVG(dot)

	case FormatPNG:
		dot := nodelink.ToDOT(doc, nodelink.Options{Detailed: opts.Detailed})
		return nodelink.RenderPNG(dot, opts.PNGScale)

	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q", format)
	}
}
