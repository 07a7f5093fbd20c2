package layout

import "github.com/sketchflow/sketchflow/pkg/element"

// Parallel lays out a fan-out-fan-in flow: one input terminal, K
// parallel path shapes in a vertical column one HGap to the right, and
// one output terminal another HGap beyond. Connectors run from the input
// to every path and from every path to the output, so K paths produce
// 2K connectors. All path shapes share the configured size, which keeps
// the column uniform. Zero paths leave the two terminals unconnected.
func (e *Engine) Parallel(input Node, paths []Node, output Node) (Result, error) {
	var res Result
	in, err := e.placeNode(input, defaultTerminalKind, e.cfg.StartX, e.cfg.StartY, &res)
	if err != nil {
		return Result{}, err
	}

	top := e.cfg.StartY - float64(len(paths)-1)/2*e.cfg.VGap
	x := e.cfg.StartX + e.cfg.HGap
	pathShapes := make([]*element.Element, 0, len(paths))
	for i, n := range paths {
		y := top + float64(i)*e.cfg.VGap
		shape, err := e.placeNode(n, defaultPathKind, x, y, &res)
		if err != nil {
			return Result{}, err
		}
		pathShapes = append(pathShapes, shape)
	}

	out, err := e.placeNode(output, defaultTerminalKind, e.cfg.StartX+2*e.cfg.HGap, e.cfg.StartY, &res)
	if err != nil {
		return Result{}, err
	}

	for _, p := range pathShapes {
		if err := e.connect(in, p, &res); err != nil {
			return Result{}, err
		}
	}
	for _, p := range pathShapes {
		if err := e.connect(p, out, &res); err != nil {
			return Result{}, err
		}
	}
	return res, nil
}
