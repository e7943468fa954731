package astar

import (
	"math"

	"github.com/0x0FACED/gridai/pkg/grid"
)

// GridHeuristic searches the tiles of a grid.Grid. Diagonal moves are only
// allowed when both orthogonal tiles beside the move are passable.
type GridHeuristic[T any] struct {
	Grid *grid.Grid[T]
	// Passable reports whether a tile can be entered; nil means every tile.
	Passable func(T) bool
	// TileCost is the cost of entering a tile; nil means 1. Costs below
	// MinCost make the estimate overshoot.
	TileCost func(T) float64
	MinCost  float64
	Diagonal bool
}

// NewGridHeuristic returns a 4-connected heuristic with unit costs.
func NewGridHeuristic[T any](g *grid.Grid[T], passable func(T) bool) *GridHeuristic[T] {
	return &GridHeuristic[T]{Grid: g, Passable: passable, MinCost: 1}
}

func (h *GridHeuristic[T]) passable(t grid.Tile) bool {
	v, ok := h.Grid.At(t)
	if !ok {
		return false
	}
	return h.Passable == nil || h.Passable(v)
}

func (h *GridHeuristic[T]) Neighbors(t grid.Tile) []grid.Tile {
	dirs := grid.Cardinals()
	if h.Diagonal {
		dirs = grid.All()
	}
	out := make([]grid.Tile, 0, len(dirs))
	for _, d := range dirs {
		n := t.Step(d)
		if !h.passable(n) {
			continue
		}
		if o := d.Offset(); o.X != 0 && o.Y != 0 {
			if !h.passable(grid.Tile{X: n.X, Y: t.Y}) || !h.passable(grid.Tile{X: t.X, Y: n.Y}) {
				continue
			}
		}
		out = append(out, n)
	}
	return out
}

// Estimate is the Manhattan distance, or the Chebyshev distance when diagonal
// moves are allowed, scaled by MinCost.
func (h *GridHeuristic[T]) Estimate(a, b grid.Tile) float64 {
	d := a.Manhattan(b)
	if h.Diagonal {
		d = a.Chebyshev(b)
	}
	return float64(d) * math.Max(h.MinCost, 0)
}

func (h *GridHeuristic[T]) Cost(t grid.Tile) float64 {
	if h.TileCost == nil {
		return 1
	}
	v, _ := h.Grid.At(t)
	return h.TileCost(v)
}
