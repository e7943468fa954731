// Package fov computes field of view on a tile grid by cone splitting.
//
// Tiles are visited in diamond rings of growing Manhattan radius around the
// origin. Each tile covers an angular span seen from the origin; it is visible
// when that span overlaps a cone that is still open, and a visible blocker
// closes the part of the cones it covers for the rings further out.
package fov

import (
	"iter"
	"math"

	"github.com/0x0FACED/gridai/pkg/grid"
	"github.com/0x0FACED/gridai/pkg/logger"
	"go.uber.org/zap"
)

// Caster casts rays from Origin up to Diagonal tiles away (Manhattan).
type Caster struct {
	Origin   grid.Tile
	Diagonal int
	// SourceRadius and TargetRadius widen the angular span of every tile.
	SourceRadius float64
	TargetRadius float64
	// Blocks reports whether a tile stops rays; nil means nothing does.
	Blocks func(grid.Tile) bool
	// Contains limits the cast to a region; nil means unbounded.
	Contains func(grid.Tile) bool

	Logger *logger.ZapLogger
}

type Option func(*Caster)

// WithRadii sets the source and target radii (0 and 0.5 by default).
func WithRadii(source, target float64) Option {
	return func(c *Caster) {
		c.SourceRadius, c.TargetRadius = source, target
	}
}

func WithBlocker(blocks func(grid.Tile) bool) Option {
	return func(c *Caster) { c.Blocks = blocks }
}

// WithBounds restricts the cast to the tiles of g.
func WithBounds[T any](g *grid.Grid[T]) Option {
	return func(c *Caster) { c.Contains = g.Contains }
}

func WithLogger(l *logger.ZapLogger) Option {
	return func(c *Caster) {
		if l != nil {
			c.Logger = l
		}
	}
}

func New(origin grid.Tile, diagonal int, opts ...Option) *Caster {
	c := &Caster{
		Origin:       origin,
		Diagonal:     diagonal,
		TargetRadius: 0.5,
		Logger:       logger.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Caster) inside(t grid.Tile) bool {
	return c.Contains == nil || c.Contains(t)
}

func (c *Caster) blocks(t grid.Tile) bool {
	return c.Blocks != nil && c.Blocks(t)
}

// span returns the angular span of the tile at offset o from the origin.
func (c *Caster) span(o grid.Tile) []arc {
	dx, dy := float64(o.X), float64(o.Y)
	ratio := (c.SourceRadius + c.TargetRadius) / math.Hypot(dx, dy)
	half := math.Pi
	if ratio < 1 {
		half = math.Asin(ratio)
	}
	return span(math.Atan2(dy, dx), half)
}

// ring returns the offsets at Manhattan distance r, counter-clockwise from
// the east.
func ring(r int) []grid.Tile {
	out := make([]grid.Tile, 0, 4*r)
	for k := 0; k < r; k++ {
		out = append(out, grid.Tile{X: r - k, Y: k})
	}
	for k := 0; k < r; k++ {
		out = append(out, grid.Tile{X: -k, Y: r - k})
	}
	for k := 0; k < r; k++ {
		out = append(out, grid.Tile{X: -(r - k), Y: -k})
	}
	for k := 0; k < r; k++ {
		out = append(out, grid.Tile{X: k, Y: -(r - k)})
	}
	return out
}

// Visible yields the origin and then every visible tile, ring by ring.
// Blocking tiles are visible themselves.
func (c *Caster) Visible() iter.Seq[grid.Tile] {
	return func(yield func(grid.Tile) bool) {
		if !c.inside(c.Origin) || !yield(c.Origin) {
			return
		}

		open := fullCircle()
		r := 1
		for ; r <= c.Diagonal && len(open) > 0; r++ {
			var closed []arc
			for _, o := range ring(r) {
				t := c.Origin.Add(o)
				if !c.inside(t) {
					continue
				}
				arcs := c.span(o)
				if !open.overlaps(arcs) {
					continue
				}
				if !yield(t) {
					return
				}
				if c.blocks(t) {
					closed = append(closed, arcs...)
				}
			}
			open = open.subtract(closed)
		}
		c.Logger.Debug("[fov-cast] Cast finished",
			zap.Stringer("origin", c.Origin),
			zap.Int("rings", r-1),
			zap.Float64("open", open.width()),
		)
	}
}

// Compute collects Visible into a set.
func (c *Caster) Compute() map[grid.Tile]bool {
	seen := make(map[grid.Tile]bool)
	for t := range c.Visible() {
		seen[t] = true
	}
	return seen
}
