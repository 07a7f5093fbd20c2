package layout

// HubAndSpoke places the hub at the start position and its spokes in a
// vertical column one HGap to the right, centered on the hub's baseline.
// One connector runs from the hub to each spoke, in spoke order. Zero
// spokes degenerate to the hub shape alone.
func (e *Engine) HubAndSpoke(hub Node, spokes []Node) (Result, error) {
	var res Result
	hubShape, err := e.placeNode(hub, defaultHubKind, e.cfg.StartX, e.cfg.StartY, &res)
	if err != nil {
		return Result{}, err
	}

	// Center the spoke column vertically around the hub's origin row.
	top := e.cfg.StartY - float64(len(spokes)-1)/2*e.cfg.VGap
	x := e.cfg.StartX + e.cfg.HGap
	for i, n := range spokes {
		y := top + float64(i)*e.cfg.VGap
		spoke, err := e.placeNode(n, defaultSpokeKind, x, y, &res)
		if err != nil {
			return Result{}, err
		}
		if err := e.connect(hubShape, spoke, &res); err != nil {
			return Result{}, err
		}
	}
	return res, nil
}
