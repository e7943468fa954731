package voronoi

import (
	"context"

	"go.uber.org/zap"
)

// CreateDiagram runs the whole sweep over sites and clips the result to bbox.
func CreateDiagram(ctx context.Context, sites []Vertex, bbox BoundingBox, opts ...Option) (*Diagram, error) {
	collector := NewCollector()
	b := New(append(opts, WithListener(collector))...)

	b.Logger.Info("[vnoi] Fortune sweep started", zap.Int("sites", len(sites)))
	if err := b.Load(sites); err != nil {
		return nil, err
	}
	if err := b.Run(ctx); err != nil {
		return nil, err
	}

	d, err := collector.Clip(bbox, sites...)
	if err != nil {
		return nil, err
	}
	b.Logger.Info("[vnoi] Diagram clipped",
		zap.Int("edges", len(d.Edges)),
		zap.Int("vertices", len(d.Vertices)),
		zap.Int("cells", len(d.Cells)),
	)
	return d, nil
}
