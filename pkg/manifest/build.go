package manifest

import (
	"github.com/sketchflow/sketchflow/pkg/diagram"
	"github.com/sketchflow/sketchflow/pkg/layout"
)

// Build applies every pattern block to the builder in declaration order.
// Blocks stack vertically so their bounding regions never overlap: each
// block's shapes start one vertical gap below the lowest shape of the
// block before it. A block with a group name wraps its elements in that
// group.
func (m *Manifest) Build(b *diagram.Builder) error {
	return m.BuildWith(b, m.Layout.Config())
}

// BuildWith is Build with an explicit layout configuration, overriding
// the manifest's own [layout] block. Zero config fields fall back to the
// package defaults.
func (m *Manifest) BuildWith(b *diagram.Builder, cfg layout.Config) error {
	cfg = cfg.WithDefaults()
	yCursor := cfg.StartY

	run := func(group string, rows int, place func(e *layout.Engine) error) error {
		if rows < 1 {
			rows = 1
		}
		// Columns are centered on the engine's StartY, so shift the
		// baseline down to keep the column top at the cursor.
		blockCfg := cfg
		blockCfg.StartY = yCursor + float64(rows-1)/2*cfg.VGap

		if group != "" {
			b.StartGroup(group)
		}
		err := place(layout.NewEngine(b, blockCfg))
		if group != "" {
			if endErr := b.EndGroup(); err == nil {
				err = endErr
			}
		}
		if err != nil {
			return err
		}

		yCursor = yCursor + float64(rows-1)*cfg.VGap + cfg.ShapeHeight + cfg.VGap
		return nil
	}

	for _, blk := range m.Sequential {
		err := run(blk.Group, 1, func(e *layout.Engine) error {
			_, err := e.Sequential(nodes(blk.Nodes))
			return err
		})
		if err != nil {
			return err
		}
	}
	for _, blk := range m.Hub {
		err := run(blk.Group, len(blk.Spokes), func(e *layout.Engine) error {
			_, err := e.HubAndSpoke(blk.Hub.node(), nodes(blk.Spokes))
			return err
		})
		if err != nil {
			return err
		}
	}
	for _, blk := range m.Parallel {
		err := run(blk.Group, len(blk.Paths), func(e *layout.Engine) error {
			_, err := e.Parallel(blk.Input.node(), nodes(blk.Paths), blk.Output.node())
			return err
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// Document builds the manifest into a fresh builder and assembles it.
func (m *Manifest) Document() (diagram.Document, error) {
	b := diagram.New()
	if err := m.Build(b); err != nil {
		return diagram.Document{}, err
	}
	return b.Assemble(m.Title)
}

func nodes(specs []NodeSpec) []layout.Node {
	out := make([]layout.Node, len(specs))
	for i, s := range specs {
		out[i] = s.node()
	}
	return out
}
