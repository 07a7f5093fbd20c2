package layout

import "github.com/sketchflow/sketchflow/pkg/element"

// Sequential lays out nodes as a left-to-right chain: N labeled shapes
// spaced HGap apart on a shared baseline, joined by N-1 connectors. An
// empty node list yields an empty result.
func (e *Engine) Sequential(nodes []Node) (Result, error) {
	var res Result
	var prev *element.Element
	for i, n := range nodes {
		x := e.cfg.StartX + float64(i)*e.cfg.HGap
		shape, err := e.placeNode(n, defaultChainKind, x, e.cfg.StartY, &res)
		if err != nil {
			return Result{}, err
		}
		if prev != nil {
			if err := e.connect(prev, shape, &res); err != nil {
				return Result{}, err
			}
		}
		prev = shape
	}
	return res, nil
}
